package domain

type Hall struct {
	ID        string
	Name      string
	Location  string
	Showtimes []string
}

// Halls is the fixed set of screens a movie can be booked in. Every movie plays
// every slot.
var Halls = []Hall{
	{
		ID:        "1",
		Name:      "PVR Cinemas",
		Location:  "Phoenix Mall, Kurla",
		Showtimes: []string{"10:00 AM", "1:30 PM", "5:00 PM", "8:30 PM", "11:00 PM"},
	},
	{
		ID:        "2",
		Name:      "INOX",
		Location:  "R-City Mall, Ghatkopar",
		Showtimes: []string{"9:30 AM", "12:45 PM", "4:15 PM", "7:45 PM", "10:30 PM"},
	},
	{
		ID:        "3",
		Name:      "Cinepolis",
		Location:  "Viviana Mall, Thane",
		Showtimes: []string{"11:00 AM", "2:30 PM", "6:00 PM", "9:15 PM"},
	},
	{
		ID:        "4",
		Name:      "Carnival Cinemas",
		Location:  "Imax Wadala",
		Showtimes: []string{"10:30 AM", "1:45 PM", "5:30 PM", "8:45 PM", "11:30 PM"},
	},
}

func FindHall(id string) (Hall, bool) {
	for _, h := range Halls {
		if h.ID == id {
			return h, true
		}
	}

	return Hall{}, false
}

func (h Hall) HasShowtime(slot string) bool {
	for _, s := range h.Showtimes {
		if s == slot {
			return true
		}
	}

	return false
}

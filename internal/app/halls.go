package app

import (
	"net/http"

	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

func (app *Application) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls := make([]api.Hall, len(domain.Halls))

	for i, h := range domain.Halls {
		halls[i] = api.Hall{
			Id:        h.ID,
			Name:      h.Name,
			Location:  h.Location,
			Showtimes: h.Showtimes,
		}
	}

	err := app.writeJSON(w, http.StatusOK, api.HallListResponse{Halls: halls}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

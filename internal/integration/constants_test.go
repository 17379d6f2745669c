package integration_test

const (
	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserEmail     = "test@example.com"
	TestUserPassword  = "Test123!@#"

	TestMovieTitle       = "Dune: Part Two"
	TestMovieDescription = "Paul Atreides unites with the Fremen."
	TestMoviePosterUrl   = "https://example.com/poster.jpg"
	TestMovieDuration    = 166
)

var (
	TestMovieGenres    = []string{"Sci-Fi", "Adventure"}
	TestMovieLanguages = []string{"English", "Hindi"}
)

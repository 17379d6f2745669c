package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.logRequest)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestUserSession)

	r.Get("/health", app.GetHealth)
	r.Get("/openapi.yaml", app.GetOpenAPIDocument)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.RegisterUser)
		r.Post("/login", app.Login)
		r.Post("/logout", app.Logout)
	})

	r.Get("/movies", app.GetMovies)
	r.Get("/movies/{movieId}", app.GetMovieById)
	r.Get("/halls", app.GetHalls)

	r.Route("/booking/draft", func(r chi.Router) {
		r.Put("/", app.SetBookingDraft)
		r.Get("/", app.GetBookingDraft)
		r.Delete("/", app.CancelBookingDraft)
	})

	// Authentication is checked by the checkout flow itself so that an
	// anonymous payer is redirected with their draft intact.
	r.Get("/checkout", app.EnterCheckout)
	r.Post("/checkout/payment", app.SubmitPayment)

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Get("/bookings", app.GetUserBookings)
		r.Get("/bookings/{bookingId}", app.GetUserBookingById)
	})

	return r
}

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mailer"
	"github.com/metinatakli/cinex-booking/internal/mocks"
	"github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	userRepo    *mocks.MockUserRepo
	movieRepo   *mocks.MockMovieRepo
	bookingRepo *mocks.MockBookingRepo
	gateway     *mocks.MockPaymentGateway
	drafts      *mocks.MemoryDraftStore
	states      *mocks.MemoryFlowStateStore
	mailer      *mailer.MockMailer
}

func (d *testDeps) assertExpectations(t *testing.T) {
	d.userRepo.AssertExpectations(t)
	d.movieRepo.AssertExpectations(t)
	d.bookingRepo.AssertExpectations(t)
	d.gateway.AssertExpectations(t)
}

func newTestApplication(t *testing.T) (*Application, *testDeps) {
	t.Helper()

	states := mocks.NewMemoryFlowStateStore()

	deps := &testDeps{
		userRepo:    new(mocks.MockUserRepo),
		movieRepo:   new(mocks.MockMovieRepo),
		bookingRepo: new(mocks.MockBookingRepo),
		gateway:     new(mocks.MockPaymentGateway),
		drafts:      mocks.NewMemoryDraftStore(states),
		states:      states,
		mailer:      mailer.NewMockMailer(),
	}

	app := NewApp(
		Config{Env: "test"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		nil,
		nil,
		validator.NewValidator(),
		deps.mailer,
		scs.New(),
		deps.userRepo,
		deps.movieRepo,
		deps.bookingRepo,
		deps.drafts,
		deps.states,
		deps.gateway,
	)

	return app, deps
}

// newSession commits a session to the manager's store and returns its token.
// A zero userId yields a guest session.
func newSession(t *testing.T, app *Application, userId int) string {
	t.Helper()

	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	app.sessionManager.Put(ctx, SessionKeyGuest.String(), true)
	if userId != 0 {
		app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)
	}

	token, _, err := app.sessionManager.Commit(ctx)
	require.NoError(t, err)

	return token
}

// serve sends a request through the full router, carrying the session token
// as a cookie when one is given.
func serve(t *testing.T, app *Application, method, url string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")

	if token != "" {
		r.AddCookie(&http.Cookie{Name: app.sessionManager.Cookie.Name, Value: token})
	}

	w := httptest.NewRecorder()
	app.Routes().ServeHTTP(w, r)

	return w
}

func sessionCookie(w *httptest.ResponseRecorder, name string) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}

	return ""
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	require.NoError(t, err, "failed to decode response body")

	return v
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	require.Equal(t, wantStatus, w.Code)

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		validationResp := decodeJSON[api.ValidationErrorResponse](t, w)

		issues := make([]string, 0, len(validationResp.ValidationErrors))
		for _, vErr := range validationResp.ValidationErrors {
			issues = append(issues, vErr.Issue)
		}

		assert.Contains(t, issues, wantErrMessage)

	default:
		errorResp := decodeJSON[api.ErrorResponse](t, w)

		if wantErrMessage != "" {
			assert.Equal(t, wantErrMessage, errorResp.Message)
		}
	}
}

func testMovie() *domain.Movie {
	return &domain.Movie{
		ID:          3,
		Title:       "Dune: Part Two",
		Description: "Paul Atreides unites with the Fremen.",
		PosterUrl:   "https://example.com/dune.jpg",
		Genres:      []string{"Sci-Fi", "Adventure"},
		Languages:   []string{"English"},
		Duration:    166,
		ReleaseDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func tomorrow() time.Time {
	return today().AddDate(0, 0, 1)
}

func ptr[T any](v T) *T {
	return &v
}

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/cinex-booking/internal/app"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"id":        {},
	"reference": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) (*http.Request, error) {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req, nil
}

// compareResponse checks the body against the expected JSON, ignoring the
// fields that change from run to run.
func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	clean(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func clean(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			clean(v[k])
		}
	case []any:
		for _, item := range v {
			clean(item)
		}
	}
}

// do sends a request through the application and waits for its background
// work to finish.
func (a *TestApp) do(t testing.TB, method, path string, body io.Reader, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req, err := prepareRequest(method, path, body, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	a.App.Wait()

	res := rec.Result()
	t.Cleanup(func() { res.Body.Close() })

	return res
}

// session stores a session in redis and returns the cookie that carries it.
// A zero userId yields a guest session.
func (a *TestApp) session(t testing.TB, userId int) *http.Cookie {
	t.Helper()

	ctx, err := a.Sessions.Load(context.Background(), "")
	require.NoError(t, err)

	a.Sessions.Put(ctx, app.SessionKeyGuest.String(), true)
	if userId != 0 {
		a.Sessions.Put(ctx, app.SessionKeyUserId.String(), userId)
	}

	token, _, err := a.Sessions.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: a.Sessions.Cookie.Name, Value: token}
}

func sessionCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func decode[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func insertTestUser(t testing.TB, a *TestApp) *domain.User {
	t.Helper()

	user := &domain.User{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     TestUserEmail,
	}
	require.NoError(t, user.Password.Set(TestUserPassword))

	err := a.DB.QueryRow(context.Background(), `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		user.FirstName, user.LastName, user.Email, user.Password.Hash,
	).Scan(&user.ID, &user.CreatedAt)
	require.NoError(t, err)

	return user
}

func insertTestMovie(t testing.TB, a *TestApp, title string, releaseDate time.Time, genres ...string) int {
	t.Helper()

	if genres == nil {
		genres = TestMovieGenres
	}

	var id int
	err := a.DB.QueryRow(context.Background(), `
		INSERT INTO movies (title, description, poster_url, genres, languages, duration_minutes, release_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		title, TestMovieDescription, TestMoviePosterUrl, genres, TestMovieLanguages, TestMovieDuration, releaseDate,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func countBookings(t testing.TB, a *TestApp, status domain.PaymentStatus) int {
	t.Helper()

	var n int
	err := a.DB.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE payment_status = $1", status).Scan(&n)
	require.NoError(t, err)

	return n
}

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

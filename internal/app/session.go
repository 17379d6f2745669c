package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	SessionKeyGuest  = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(SessionKeyUserId).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

// sessionID identifies the booking draft and checkout state of the caller.
func (app *Application) sessionID(r *http.Request) string {
	return app.sessionManager.Token(r.Context())
}

// currentPrincipal resolves the signed-in user of the session, or nil for a
// guest. A session pointing at a deleted user is treated as a guest.
func (app *Application) currentPrincipal(r *http.Request) (*domain.Principal, error) {
	userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	if userId == 0 {
		return nil, nil
	}

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.contextGetLogger(r).Warn("user id in session but not found in db", "user_id", userId)
			return nil, nil
		}
		return nil, err
	}

	return domain.NewPrincipal(user), nil
}

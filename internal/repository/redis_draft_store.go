package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// moveDraftScript renames the draft key only when it exists. RENAME keeps the
// remaining TTL.
var moveDraftScript = redis.NewScript(`
    -- KEYS = [old draft key, new draft key]
    if redis.call("EXISTS", KEYS[1]) == 0 then
        return 0
    end

    redis.call("RENAME", KEYS[1], KEYS[2])
    return 1
`)

// setIdleDraftScript and clearIdleDraftScript change the draft only while the
// session is not submitting, and put the checkout state back to select.
var setIdleDraftScript = redis.NewScript(`
    -- KEYS = [draft key, checkout state key]
    -- ARGV = [draft json, ttl in milliseconds]
    if redis.call("GET", KEYS[2]) == "submitting" then
        return {err = "submission in progress"}
    end

    redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
    redis.call("SET", KEYS[2], "select", "PX", ARGV[2])
    return "OK"
`)

var clearIdleDraftScript = redis.NewScript(`
    -- KEYS = [draft key, checkout state key]
    -- ARGV = [ttl in milliseconds]
    if redis.call("GET", KEYS[2]) == "submitting" then
        return {err = "submission in progress"}
    end

    if redis.call("DEL", KEYS[1]) == 0 then
        return 0
    end

    redis.call("SET", KEYS[2], "select", "PX", ARGV[1])
    return 1
`)

type RedisDraftStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisDraftStore(client redis.UniversalClient, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisDraftStore) Set(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	draftBytes, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}

	return s.client.Set(ctx, draftKey(sessionID), draftBytes, s.ttl).Err()
}

func (s *RedisDraftStore) Get(ctx context.Context, sessionID string) (*domain.BookingDraft, error) {
	draftBytes, err := s.client.Get(ctx, draftKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var draft domain.BookingDraft

	err = json.Unmarshal(draftBytes, &draft)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking draft for session %s: %w", sessionID, err)
	}

	return &draft, nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, draftKey(sessionID)).Err()
}

func (s *RedisDraftStore) SetIfIdle(ctx context.Context, sessionID string, draft *domain.BookingDraft) error {
	draftBytes, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}

	keys := []string{draftKey(sessionID), flowStateKey(sessionID)}

	err = setIdleDraftScript.Run(ctx, s.client, keys, draftBytes, s.ttlMillis()).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, errSubmitting) {
			return domain.ErrSubmissionInProgress
		}
		return err
	}

	return nil
}

func (s *RedisDraftStore) ClearIfIdle(ctx context.Context, sessionID string) error {
	keys := []string{draftKey(sessionID), flowStateKey(sessionID)}

	removed, err := clearIdleDraftScript.Run(ctx, s.client, keys, s.ttlMillis()).Int()
	if err != nil {
		if redis.HasErrorPrefix(err, errSubmitting) {
			return domain.ErrSubmissionInProgress
		}
		return err
	}

	if removed == 0 {
		return domain.ErrDraftNotFound
	}

	return nil
}

func (s *RedisDraftStore) ttlMillis() int64 {
	return max(s.ttl.Milliseconds(), 1)
}

// Migrate moves the draft of an anonymous session to the session that replaced
// it on login. A missing draft is not an error.
func (s *RedisDraftStore) Migrate(ctx context.Context, oldSessionID, newSessionID string) error {
	if oldSessionID == "" || oldSessionID == newSessionID {
		return nil
	}

	keys := []string{draftKey(oldSessionID), draftKey(newSessionID)}

	err := moveDraftScript.Run(ctx, s.client, keys).Err()
	if err != nil {
		return fmt.Errorf("failed to migrate booking draft for session %s: %w", oldSessionID, err)
	}

	return nil
}

// The session id is a hash tag so a draft and its checkout state share a
// cluster slot.
func draftKey(sessionID string) string {
	return fmt.Sprintf("booking_draft:{%s}", sessionID)
}

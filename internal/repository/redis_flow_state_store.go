package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	errSubmitting = "submission in progress"
	errCompleted  = "flow completed"
)

var beginSubmitScript = redis.NewScript(`
    -- KEYS = [checkout state key]
    -- ARGV = [submitting ttl in milliseconds]
    local current = redis.call("GET", KEYS[1])

    if current == "submitting" then
        return {err = "submission in progress"}
    end

    if current == "success" then
        return {err = "flow completed"}
    end

    redis.call("SET", KEYS[1], "submitting", "PX", ARGV[1])
    return "OK"
`)

// RedisFlowStateStore keeps the checkout state of each session. A session stuck
// in submitting, e.g. after a crash, falls back to select once submitTTL passes.
type RedisFlowStateStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	submitTTL time.Duration
}

func NewRedisFlowStateStore(client redis.UniversalClient, ttl, submitTTL time.Duration) *RedisFlowStateStore {
	return &RedisFlowStateStore{
		client:    client,
		ttl:       ttl,
		submitTTL: submitTTL,
	}
}

func (s *RedisFlowStateStore) Get(ctx context.Context, sessionID string) (domain.FlowState, error) {
	val, err := s.client.Get(ctx, flowStateKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.FlowStateSelect, nil
		}
		return "", err
	}

	state := domain.FlowState(val)

	switch state {
	case domain.FlowStateSelect, domain.FlowStateSubmitting, domain.FlowStateSuccess:
		return state, nil
	default:
		return "", fmt.Errorf("unknown checkout state %q for session %s", val, sessionID)
	}
}

func (s *RedisFlowStateStore) BeginSubmit(ctx context.Context, sessionID string) error {
	ttl := max(s.submitTTL.Milliseconds(), 1)

	err := beginSubmitScript.Run(ctx, s.client, []string{flowStateKey(sessionID)}, ttl).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, errSubmitting) {
			return domain.ErrSubmissionInProgress
		}
		if redis.HasErrorPrefix(err, errCompleted) {
			return domain.ErrFlowCompleted
		}

		return err
	}

	return nil
}

func (s *RedisFlowStateStore) Set(ctx context.Context, sessionID string, state domain.FlowState) error {
	ttl := s.ttl
	if state == domain.FlowStateSubmitting {
		ttl = s.submitTTL
	}

	return s.client.Set(ctx, flowStateKey(sessionID), string(state), ttl).Err()
}

func flowStateKey(sessionID string) string {
	return fmt.Sprintf("checkout_state:{%s}", sessionID)
}

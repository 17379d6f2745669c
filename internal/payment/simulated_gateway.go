package payment

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinex-booking/internal/domain"
)

const (
	DefaultMinDelay = 2000 * time.Millisecond
	DefaultMaxDelay = 3000 * time.Millisecond
)

// SimulatedGateway stands in for a real processor: it waits a random, bounded
// amount of time and approves every payment.
type SimulatedGateway struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu    sync.Mutex
	rand  *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*SimulatedGateway)

// WithRand fixes the random source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(g *SimulatedGateway) {
		g.rand = r
	}
}

// WithSleep replaces the timer used to wait out the simulated latency.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(g *SimulatedGateway) {
		g.sleep = sleep
	}
}

func NewSimulatedGateway(minDelay, maxDelay time.Duration, opts ...Option) *SimulatedGateway {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	g := &SimulatedGateway{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rand:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		sleep:    sleepContext,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *SimulatedGateway) SubmitPayment(ctx context.Context, bookingID string) (domain.GatewayOutcome, error) {
	if bookingID == "" {
		return domain.GatewayOutcome{}, fmt.Errorf("booking ID is required")
	}

	err := g.sleep(ctx, g.delay())
	if err != nil {
		return domain.GatewayOutcome{}, err
	}

	return domain.GatewayOutcome{
		Approved:  true,
		Reference: fmt.Sprintf("sim_txn_%s", uuid.New().String()[:8]),
	}, nil
}

// delay draws uniformly from [minDelay, maxDelay].
func (g *SimulatedGateway) delay() time.Duration {
	span := g.maxDelay - g.minDelay
	if span <= 0 {
		return g.minDelay
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.minDelay + time.Duration(g.rand.Int64N(int64(span)+1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

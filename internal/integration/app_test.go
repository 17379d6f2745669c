package integration_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/internal/app"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mailer"
	"github.com/metinatakli/cinex-booking/internal/payment"
	"github.com/metinatakli/cinex-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type TestApp struct {
	App      *app.Application
	Handler  http.Handler
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Sessions *scs.SessionManager
	Mailer   *mailer.MockMailer
	Gateway  *switchGateway
	Drafts   *repository.RedisDraftStore
	States   *repository.RedisFlowStateStore
}

// switchGateway declines on demand and otherwise defers to the simulated
// processor.
type switchGateway struct {
	*payment.SimulatedGateway
	decline atomic.Bool
}

func (g *switchGateway) SubmitPayment(ctx context.Context, bookingID string) (domain.GatewayOutcome, error) {
	if g.decline.Load() {
		return domain.GatewayOutcome{Approved: false, Reason: "card declined"}, nil
	}

	return g.SimulatedGateway.SubmitPayment(ctx, bookingID)
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient, cfg)

	drafts := repository.NewRedisDraftStore(redisClient, cfg.Session.Lifetime)
	states := repository.NewRedisFlowStateStore(redisClient, cfg.Session.Lifetime, cfg.Session.SubmitTimeout)
	gateway := &switchGateway{
		SimulatedGateway: payment.NewSimulatedGateway(cfg.Gateway.MinDelay, cfg.Gateway.MaxDelay),
	}

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresBookingRepository(db),
		drafts,
		states,
		gateway,
	)

	return &TestApp{
		App:      application,
		Handler:  application.Routes(),
		DB:       db,
		Redis:    redisClient,
		Sessions: sessionManager,
		Mailer:   mockMailer,
		Gateway:  gateway,
		Drafts:   drafts,
		States:   states,
	}, nil
}

func (a *TestApp) Close() {
	a.App.Wait()
	a.Redis.Close()
	a.DB.Close()
}

func (a *TestApp) reset(t testing.TB) {
	t.Helper()

	ctx := context.Background()

	_, err := a.DB.Exec(ctx, "TRUNCATE bookings, movies, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	require.NoError(t, a.Redis.FlushDB(ctx).Err())

	a.Mailer.Reset()
	a.Gateway.decline.Store(false)
}

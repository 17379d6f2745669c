package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinex-booking/api"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/domain"
	"github.com/metinatakli/cinex-booking/internal/mailer"
	"github.com/metinatakli/cinex-booking/internal/payment"
	"github.com/metinatakli/cinex-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinex-booking/internal/validator"
	"github.com/metinatakli/cinex-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "cinex-booking-api"

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	wg             sync.WaitGroup

	userRepo    domain.UserRepository
	movieRepo   domain.MovieRepository
	bookingRepo domain.BookingRepository

	drafts domain.DraftStore
	flow   *booking.Flow
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	userRepo domain.UserRepository,
	movieRepo domain.MovieRepository,
	bookingRepo domain.BookingRepository,
	drafts domain.DraftStore,
	states domain.FlowStateStore,
	gateway domain.PaymentGateway) *Application {

	manager := booking.NewManager(bookingRepo, gateway, logger)

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      validator,
		mailer:         mailer,
		sessionManager: sessionManager,
		userRepo:       userRepo,
		movieRepo:      movieRepo,
		bookingRepo:    bookingRepo,
		drafts:         drafts,
		flow:           booking.NewFlow(drafts, states, manager, logger),
	}
}

func Run(args []string) error {
	cfg, displayVersion, err := LoadConfig(args)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	_, err = api.GetSwagger()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	app := &Application{config: cfg, logger: logger}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	if cfg.Telemetry.CollectorURL != "" {
		logger = slog.New(NewMultiHandler(
			slog.NewTextHandler(os.Stdout, nil),
			otelslog.NewHandler(serviceName),
		))
	}

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	gateway := payment.NewSimulatedGateway(cfg.Gateway.MinDelay, cfg.Gateway.MaxDelay)

	app = NewApp(
		cfg,
		logger,
		db,
		redisClient,
		appvalidator.NewValidator(),
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient, cfg),
		repository.NewPostgresUserRepository(db),
		repository.NewPostgresMovieRepository(db),
		repository.NewPostgresBookingRepository(db),
		repository.NewRedisDraftStore(redisClient, cfg.Session.Lifetime),
		repository.NewRedisFlowStateStore(redisClient, cfg.Session.Lifetime, cfg.Session.SubmitTimeout),
		gateway,
	)

	return app.run()
}

func NewSessionManager(client *redis.Client, cfg Config) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.Lifetime = cfg.Session.Lifetime
	sessionManager.IdleTimeout = cfg.Session.IdleTimeout
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Env == "prod"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

// background runs fn on its own goroutine, tracked so shutdown waits for it.
func (app *Application) background(logger *slog.Logger, fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in background task", "panic", fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}

// Wait blocks until every background task has returned.
func (app *Application) Wait() {
	app.wg.Wait()
}

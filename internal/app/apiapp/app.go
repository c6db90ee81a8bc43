package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/akulikov/tasklist/internal/config"
	"github.com/akulikov/tasklist/internal/jobs/cleanup"
	pgrepo "github.com/akulikov/tasklist/internal/repo/postgres"
	redrepo "github.com/akulikov/tasklist/internal/repo/redis"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	listssvc "github.com/akulikov/tasklist/internal/services/lists"
	"github.com/akulikov/tasklist/internal/services/password"
	ratesvc "github.com/akulikov/tasklist/internal/services/rate"
	taskssvc "github.com/akulikov/tasklist/internal/services/tasks"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	cleanupJob *cleanup.Job
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pgrepo.Migrate(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	var rateLimiter *ratesvc.Limiter
	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("redis init failed, login throttling disabled", zap.Error(err))
		redisClient = nil
	} else {
		rateRepo := redrepo.NewRateRepo(redisClient)
		rateLimiter = ratesvc.NewLimiter(rateRepo, cfg.Login.MaxPerMinute, cfg.Login.MaxPer10Sec)
	}

	userRepo := pgrepo.NewUserRepo(pool)
	listRepo := pgrepo.NewListRepo(pool)
	taskRepo := pgrepo.NewTaskRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	authService := authsvc.NewService(jwtManager, userRepo, hasher, cfg.Auth.RefreshTTLDays)
	listService := listssvc.NewService(listRepo)
	taskService := taskssvc.NewService(taskRepo, listRepo)
	cleanupJob := cleanup.New(userRepo, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	deps := Dependencies{
		AuthService: authService,
		ListService: listService,
		TaskService: taskService,
		Logger:      log,
		Config:      cfg,
	}
	if rateLimiter != nil {
		deps.LoginLimiter = rateLimiter
	}
	RegisterRoutes(r, deps)

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		cleanupJob: cleanupJob,
		httpRouter: r,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))

	go func() {
		if err := a.cleanupJob.RunLoop(ctx, a.cfg.Cleanup.Interval); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("session cleanup loop stopped", zap.Error(err))
		}
	}()

	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

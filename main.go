package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"focototal-be/internal/cache"
	"focototal-be/internal/config"
	"focototal-be/internal/database"
	"focototal-be/internal/jwt"
	"focototal-be/internal/logging"
	"focototal-be/internal/mailer"
	"focototal-be/internal/middleware"
	"focototal-be/internal/ratelimit"
	"focototal-be/internal/repository"
	"focototal-be/internal/repository/gormrepo"
	"focototal-be/internal/router"
	"focototal-be/internal/security"
	"focototal-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Redis is optional: without it the phrase filters are not cached and the
	// login limiter keeps its counters in process memory.
	var (
		cacheClient  cache.Cache
		limiterStore ratelimit.Store
	)
	if cfg.RedisURL != "" {
		var client *redis.Client
		client, err = cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn(ctx, "redis unavailable, continuing without it", "error", err)
		} else {
			defer client.Close()
			cacheClient = cache.NewRedisCache(client)
			limiterStore = ratelimit.NewRedisStore(client, "focototal:")
			logger.Info(ctx, "connected to redis")
		}
	}
	if limiterStore == nil {
		mem := ratelimit.NewMemoryStore()
		go mem.Run(ctx, 5*time.Minute, max(cfg.LoginRateLimitWindow, cfg.LoginRateLimitEmailWindow))
		limiterStore = mem
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		// Tokens will not survive a restart.
		jwtSecret, err = security.RandomToken(32)
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		logger.Warn(ctx, "JWT_SECRET not set, using an ephemeral secret")
	}
	jwtService := jwt.NewJWTService(jwtSecret, cfg.JWTTTL)

	hasher, err := security.NewBcryptHasher(bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to create password hasher: %v", err)
	}

	// Mail goes out asynchronously so a slow provider never holds a request.
	var sender mailer.Sender
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey, fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailSender))
	} else {
		logger.Warn(ctx, "RESEND_API_KEY not set, emails will only be logged")
		sender = mailer.NewLogSender(logger)
	}
	dispatcher := mailer.NewDispatcher(sender, logger, cfg.MailQueueSize, cfg.MailWorkers)
	dispatcher.Start(ctx)
	mail := mailer.New(dispatcher, mailer.Options{
		AppName:     cfg.EmailFromName,
		FrontendURL: cfg.FrontendURL,
		ResetTTL:    cfg.PasswordResetTTL,
	})

	// Initialize services
	authService := service.NewAuthService(store, jwtService, hasher, mail, logger, cfg.PasswordResetTTL)
	userService := service.NewUserService(store.Users(), hasher, mail, logger)
	projectService := service.NewProjectService(store.Projects())
	taskService := service.NewTaskService(store.Tasks(), store.Projects())
	phraseService := service.NewPhraseService(store.Phrases(), cacheClient, logger)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go generalRateLimiter.Run(ctx, time.Minute)
	loginLimiter := middleware.NewLoginLimiter(limiterStore, logger, middleware.LoginLimitConfig{
		IPWindow:    cfg.LoginRateLimitWindow,
		MaxPerIP:    cfg.LoginRateLimitMaxIP,
		EmailWindow: cfg.LoginRateLimitEmailWindow,
		MaxPerEmail: cfg.LoginRateLimitMaxEmail,
	})

	engine := router.New(router.Deps{
		Logger:       logger,
		Tokens:       jwtService,
		DB:           store,
		Auth:         authService,
		Users:        userService,
		Projects:     projectService,
		Tasks:        taskService,
		Phrases:      phraseService,
		RateLimiter:  generalRateLimiter,
		LoginLimiter: loginLimiter,
		CORSOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "server starting", "addr", srv.Addr, "env", cfg.AppEnv, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "http shutdown", "error", err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "mail queue not drained", "error", err)
	}
}

// openStore connects the configured database and brings its schema up to
// date.
func openStore(ctx context.Context, cfg *config.Config, logger *logging.SlogLogger) (repository.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath, logger.Slog())
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "using sqlite store", "path", cfg.SQLitePath)
		return gormrepo.NewStore(db), nil
	default:
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info(ctx, "using postgres store")
		return repository.NewPostgresStore(db), nil
	}
}

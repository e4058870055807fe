package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/clubdesk/clubdesk/internal/app"
	"github.com/clubdesk/clubdesk/internal/athletes"
	"github.com/clubdesk/clubdesk/internal/auth"
	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/categories"
	"github.com/clubdesk/clubdesk/internal/dashboard"
	"github.com/clubdesk/clubdesk/internal/donations"
	"github.com/clubdesk/clubdesk/internal/donors"
	"github.com/clubdesk/clubdesk/internal/employees"
	"github.com/clubdesk/clubdesk/internal/equipment"
	"github.com/clubdesk/clubdesk/internal/events"
	"github.com/clubdesk/clubdesk/internal/observability"
	"github.com/clubdesk/clubdesk/internal/platform/cache"
	"github.com/clubdesk/clubdesk/internal/platform/db"
	"github.com/clubdesk/clubdesk/internal/providers"
	"github.com/clubdesk/clubdesk/internal/purchases"
	"github.com/clubdesk/clubdesk/internal/roles"
	"github.com/clubdesk/clubdesk/internal/shared"
	"github.com/clubdesk/clubdesk/internal/users"
	"github.com/clubdesk/clubdesk/internal/validate"
	"github.com/clubdesk/clubdesk/internal/workforce"
	"github.com/clubdesk/clubdesk/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "clubdesk_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	checker := validate.New()
	auditLogger := shared.NewAuditLogger(dbpool)

	rolesRepo := roles.NewRepository(dbpool)
	rolesService := roles.NewService(rolesRepo)
	authzMiddleware := authz.Middleware{Roles: rolesService, Logger: logger}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, rolesService)
	permissionsHandler := authz.NewHandler(rolesService, cfg.PermRefreshInterval)

	rolesHandler := roles.NewHandler(logger, rolesService, authzMiddleware)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, authzMiddleware, checker)

	dashboardService := dashboard.NewService(dbpool)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, authzMiddleware)

	categoriesService := categories.NewService(categories.NewRepository(dbpool))
	categoriesHandler := categories.NewHandler(logger, categoriesService, authzMiddleware, checker)

	equipmentService := equipment.NewService(equipment.NewRepository(dbpool))
	equipmentHandler := equipment.NewHandler(logger, equipmentService, authzMiddleware, checker)

	athletesService := athletes.NewService(athletes.NewRepository(dbpool))
	athletesHandler := athletes.NewHandler(logger, athletesService, authzMiddleware, checker)

	donorsService := donors.NewService(donors.NewRepository(dbpool))
	donorsHandler := donors.NewHandler(logger, donorsService, authzMiddleware, checker)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queueClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()

	donationsService := donations.NewService(donations.NewRepository(dbpool), auditLogger, queueClient, logger)
	donationsHandler := donations.NewHandler(logger, donationsService, authzMiddleware, checker)

	eventsService := events.NewService(events.NewRepository(dbpool))
	eventsHandler := events.NewHandler(logger, eventsService, authzMiddleware, checker)

	employeesService := employees.NewService(employees.NewRepository(dbpool))
	employeesHandler := employees.NewHandler(logger, employeesService, authzMiddleware, checker)

	workforceService := workforce.NewService(workforce.NewRepository(dbpool))
	workforceHandler := workforce.NewHandler(logger, workforceService, authzMiddleware, checker)

	providersService := providers.NewService(providers.NewRepository(dbpool))
	providersHandler := providers.NewHandler(logger, providersService, authzMiddleware, checker)

	purchasesService := purchases.NewService(purchases.NewRepository(dbpool))
	purchasesHandler := purchases.NewHandler(logger, purchasesService, authzMiddleware, checker)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, authzMiddleware, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		PermissionsHandler: permissionsHandler,
		DashboardHandler:   dashboardHandler,
		RolesHandler:       rolesHandler,
		UsersHandler:       usersHandler,
		CategoriesHandler:  categoriesHandler,
		EquipmentHandler:   equipmentHandler,
		AthletesHandler:    athletesHandler,
		DonorsHandler:      donorsHandler,
		DonationsHandler:   donationsHandler,
		EventsHandler:      eventsHandler,
		EmployeesHandler:   employeesHandler,
		WorkforceHandler:   workforceHandler,
		ProvidersHandler:   providersHandler,
		PurchasesHandler:   purchasesHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

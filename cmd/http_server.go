package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mrsante/records-management/internal"
	"github.com/mrsante/records-management/internal/admin"
	adminPostgres "github.com/mrsante/records-management/internal/admin/postgres"
	"github.com/mrsante/records-management/internal/appointment"
	appointmentPostgres "github.com/mrsante/records-management/internal/appointment/postgres"
	"github.com/mrsante/records-management/internal/auth"
	authPostgres "github.com/mrsante/records-management/internal/auth/postgres"
	"github.com/mrsante/records-management/internal/core/events"
	"github.com/mrsante/records-management/internal/diagnosis"
	diagnosisPostgres "github.com/mrsante/records-management/internal/diagnosis/postgres"
	"github.com/mrsante/records-management/internal/grade"
	gradePostgres "github.com/mrsante/records-management/internal/grade/postgres"
	"github.com/mrsante/records-management/internal/notification"
	"github.com/mrsante/records-management/internal/patient"
	patientPostgres "github.com/mrsante/records-management/internal/patient/postgres"
	"github.com/mrsante/records-management/internal/report"
	reportPostgres "github.com/mrsante/records-management/internal/report/postgres"
	"github.com/mrsante/records-management/internal/transport/rest"
	"github.com/mrsante/records-management/internal/user"
	userPostgres "github.com/mrsante/records-management/internal/user/postgres"
	"github.com/mrsante/records-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Notifier *notification.Client
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		deps.Notifier.Shutdown()
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	engine := auth.NewEngine(config.Security.AdminGradeLevel)
	guards := auth.NewGuards(engine, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	bus := events.NewEventBus(lg)
	notifier := notification.NewClient(notification.Config{
		PoliceURL:    config.Webhook.PoliceURL,
		EMSURL:       config.Webhook.EMSURL,
		Timeout:      config.Webhook.Timeout,
		MaxWorkers:   config.Webhook.Workers,
		JobQueueSize: config.Webhook.QueueSize,
	}, lg)
	notifier.RegisterHandlers(bus)

	gradeRepo := gradePostgres.NewGradeRepository(gormDB)
	gradeService := grade.NewService(gradeRepo, engine, lg)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, gradeRepo, authService, engine, lg)

	patientRepo := patientPostgres.NewPatientRepository(gormDB)
	patientService := patient.NewService(patientRepo, engine, lg)

	reportRepo := reportPostgres.NewReportRepository(gormDB)
	reportService := report.NewService(reportRepo, engine, bus, lg)

	appointmentRepo := appointmentPostgres.NewAppointmentRepository(gormDB)
	appointmentService := appointment.NewService(appointmentRepo, engine, lg)

	diagnosisRepo := diagnosisPostgres.NewRuleRepository(gormDB)
	diagnosisService := diagnosis.NewService(diagnosisRepo, engine, lg)

	adminRepo := adminPostgres.NewStatsRepository(gormDB)
	adminService := admin.NewService(adminRepo, lg)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:        authHandler,
		Guards:      guards,
		User:        user.NewHandler(userService),
		Grade:       grade.NewHandler(gradeService),
		Patient:     patient.NewHandler(patientService),
		Report:      report.NewHandler(reportService),
		Appointment: appointment.NewHandler(appointmentService),
		Diagnosis:   diagnosis.NewHandler(diagnosisService),
		Admin:       admin.NewHandler(adminService),
	}, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		GormDB:   gormDB,
		Router:   router,
		Notifier: notifier,
		Logger:   lg,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-pooled pgx connection so both
// query paths share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}

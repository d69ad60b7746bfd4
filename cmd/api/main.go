package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"recordsapi/docs"
	"recordsapi/internal/config"
	"recordsapi/internal/database"
	"recordsapi/internal/database/migration"
	handlers "recordsapi/internal/http/handler"
	"recordsapi/internal/http/middleware"
	"recordsapi/internal/logging"
	"recordsapi/internal/model"
	"recordsapi/internal/otel"
	"recordsapi/internal/repository/postgres"
	"recordsapi/internal/service"
	"recordsapi/internal/storage"
)

// @title Records API
// @version 1.0
// @description CRUD endpoints for students and events.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.New(os.Stdout, logging.Location(cfg.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			log.WithError(err).Fatal("database migration failed")
		}
	}

	// Object storage is optional; exports answer 503 without it.
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize object storage")
		}
	} else {
		log.Warn("MINIO_ENDPOINT not set, exports disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())
	app.Use(middleware.CORS(cfg.CORS))

	handlers.RegisterRoutes(app, buildDependencies(db, objStore, reg, log, cfg.MinIO))

	// Swagger UI with dynamic host and scheme; APP_HOST covers requests without a Host header
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		host, scheme := swaggerTarget(c.Get("Host"), c.Get("X-Forwarded-Proto"), c.Protocol(), cfg.AppHost)
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server starting")
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.WithError(err).Fatal("failed to start server")
		}
	case <-ctx.Done():
	}

	timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
	log.WithField("timeout", timeout.String()).Info("shutting down")
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.WithError(err).Error("tracing shutdown failed")
	}
}

// swaggerTarget picks the host and scheme advertised by the API document.
func swaggerTarget(host, forwardedProto, protocol, fallbackHost string) (string, string) {
	if host == "" {
		host = fallbackHost
	}
	scheme := protocol
	if forwardedProto != "" {
		scheme = strings.TrimSpace(strings.Split(forwardedProto, ",")[0])
	}
	return host, scheme
}

func buildDependencies(db *sql.DB, objStore storage.Storage, reg *prometheus.Registry, log *logrus.Logger, mc config.MinIOConfig) handlers.Dependencies {
	studentRepo := postgres.NewStudentPostgres(db)
	eventRepo := postgres.NewEventPostgres(db)

	students := service.NewRecordService[model.Student](model.StudentKind, studentRepo)
	events := service.NewRecordService[model.Event](model.EventKind, eventRepo)

	deps := handlers.Dependencies{
		DB:       db,
		Students: students,
		Events:   events,
		Metrics:  reg,
		Log:      log,
	}

	if objStore != nil {
		expiry := time.Duration(mc.URLExpirySec) * time.Second
		deps.StudentExports = service.NewExportService[model.Student](model.StudentKind, students, objStore, expiry)
		deps.EventExports = service.NewExportService[model.Event](model.EventKind, events, objStore, expiry)
	}

	return deps
}

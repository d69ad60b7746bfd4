package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"recordsapi/internal/http/middleware"
	"recordsapi/internal/model"
	"recordsapi/internal/service"
)

// Dependencies are the collaborators the HTTP layer is wired with.
// Export services and Metrics are optional.
type Dependencies struct {
	DB             Pinger
	Students       service.RecordService[model.Student]
	Events         service.RecordService[model.Event]
	StudentExports service.ExportService
	EventExports   service.ExportService
	Metrics        prometheus.Gatherer
	Log            logrus.FieldLogger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	if deps.Metrics != nil {
		app.Get(middleware.MetricsPath, middleware.MetricsHandler(deps.Metrics))
	}

	api := app.Group("/api")
	NewRecordHandler(model.StudentKind, deps.Students, deps.StudentExports, deps.Log).
		Register(api.Group("/" + model.StudentKind.Collection))
	NewRecordHandler(model.EventKind, deps.Events, deps.EventExports, deps.Log).
		Register(api.Group("/" + model.EventKind.Collection))
}

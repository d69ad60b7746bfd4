package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"recordsapi/internal/http/middleware"
	"recordsapi/internal/model"
	"recordsapi/internal/service"
)

// RecordHandler serves the CRUD endpoints of one record kind.
type RecordHandler[T any] struct {
	kind    model.Kind[T]
	svc     service.RecordService[T]
	exports service.ExportService
	log     logrus.FieldLogger
}

// NewRecordHandler builds the handler set for kind. exports may be nil, in which
// case the export endpoint answers 503.
func NewRecordHandler[T any](kind model.Kind[T], svc service.RecordService[T], exports service.ExportService, log logrus.FieldLogger) *RecordHandler[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RecordHandler[T]{kind: kind, svc: svc, exports: exports, log: log}
}

// Register mounts the handlers on r, which is expected to be the kind's base path.
func (h *RecordHandler[T]) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/exports", h.Export)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List returns every record of the kind.
func (h *RecordHandler[T]) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(items)
}

// Get returns one record by id.
func (h *RecordHandler[T]) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	rec, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rec)
}

// Create stores a new record and answers 201 with it.
func (h *RecordHandler[T]) Create(c *fiber.Ctx) error {
	var in T
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON "+h.kind.Name)
	}
	rec, err := h.svc.Create(c.UserContext(), &in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Update overwrites the mutable attributes of a record.
func (h *RecordHandler[T]) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	var in T
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON "+h.kind.Name)
	}
	rec, err := h.svc.Update(c.UserContext(), id, &in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rec)
}

// Delete removes a record and answers 204.
func (h *RecordHandler[T]) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export snapshots the collection into object storage.
func (h *RecordHandler[T]) Export(c *fiber.Ctx) error {
	if h.exports == nil {
		return h.fail(c, service.ErrStorageDisabled)
	}
	exp, err := h.exports.Export(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// fail translates service errors into the standard error envelope.
func (h *RecordHandler[T]) fail(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidID):
		// Ids below 1 are never assigned, so they are simply absent.
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", h.kind.Name+" not found")
	case errors.As(err, &verr):
		return writeErrorDetails(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid "+h.kind.Name, verr.Fields)
	case errors.Is(err, service.ErrConflict):
		return writeError(c, fiber.StatusBadRequest, "DUPLICATE_VALUE", h.kind.UniqueField+" already exists")
	case errors.Is(err, service.ErrInputRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is required")
	case errors.Is(err, service.ErrStorageDisabled):
		return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "exports are not configured")
	}

	h.log.WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFromContext(c.UserContext()),
		"kind":       h.kind.Name,
		"method":     c.Method(),
		"path":       c.Path(),
	}).WithError(err).Error("request failed")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// parseID reads the :id path parameter. ok is false when it is not an integer.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

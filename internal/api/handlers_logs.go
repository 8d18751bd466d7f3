package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/models"
	"github.com/terraincognita07/auragon/internal/services"
)

func (handler *Handler) CreateLog(c *fiber.Ctx) error {
	payload := logPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.normalize()

	if err := handler.validate.Struct(payload); err != nil {
		if fields := validationFields(err); fields != nil {
			return handler.validationError(c, fields)
		}
		return handler.apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	input := logInputFromPayload(payload)
	if input.StartTime.IsZero() {
		input.StartTime = handler.now()
	}
	if input.EndTime != nil && input.EndTime.Before(input.StartTime) {
		return handler.validationError(c, map[string]string{"end_time": errEndBeforeStart.Error()})
	}

	entry, err := handler.logs.InsertLog(input)
	if err != nil {
		return handler.internalError(c, "create migraine log", err)
	}
	return c.Status(fiber.StatusCreated).JSON(handler.buildLogView(currentLanguage(c), entry))
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	query, err := services.ParseLogQuery(c.Query("sort"), c.Query("order"))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid query")
	}

	logs, err := handler.logs.ListLogs(query)
	if err != nil {
		return handler.internalError(c, "list migraine logs", err)
	}
	return c.JSON(handler.buildLogViews(currentLanguage(c), logs))
}

func (handler *Handler) GetLog(c *fiber.Ctx) error {
	entry, err := handler.logs.FindLog(c.Params("id"))
	if errors.Is(err, services.ErrLogNotFound) {
		return handler.apiError(c, fiber.StatusNotFound, "log not found")
	}
	if err != nil {
		return handler.internalError(c, "load migraine log", err)
	}
	return c.JSON(handler.buildLogView(currentLanguage(c), entry))
}

// DeleteLog answers 204 whether or not the log existed.
func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	if _, err := handler.logs.DeleteLog(c.Params("id")); err != nil {
		return handler.internalError(c, "delete migraine log", err)
	}
	return sendNoContent(c)
}

func logInputFromPayload(payload logPayload) services.LogInput {
	input := services.LogInput{
		EndTime:          payload.EndTime,
		Triggers:         payload.Triggers,
		MedicationsTaken: payload.MedicationsTaken,
		ReliefMethods:    payload.ReliefMethods,
		Notes:            payload.Notes,
		RecordedPressure: payload.RecordedPressure,
	}
	if payload.StartTime != nil {
		input.StartTime = *payload.StartTime
	}
	if payload.PainLevel != nil {
		input.PainLevel = *payload.PainLevel
	}
	return input
}

func (handler *Handler) buildLogView(language string, entry models.MigraineLog) logView {
	severity := models.SeverityForPain(entry.PainLevel)
	return logView{
		MigraineLog:   entry,
		Severity:      severity,
		SeverityLabel: handler.i18n.Translate(language, "severity."+severity),
	}
}

func (handler *Handler) buildLogViews(language string, logs []models.MigraineLog) []logView {
	views := make([]logView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, handler.buildLogView(language, entry))
	}
	return views
}

package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errorKeys = map[string]string{
	"internal error":                "error.internal",
	"invalid payload":               "error.invalid_input",
	"invalid query":                 "error.invalid_query",
	"invalid range":                 "error.invalid_range",
	"invalid time":                  "error.invalid_time",
	"log not found":                 "error.log_not_found",
	"option already exists":         "error.option_duplicate",
	"invalid option name":           "error.option_invalid_name",
	"unknown collection":            "error.unknown_collection",
	"onboarding already completed":  "error.onboarding_completed",
	"unknown onboarding suggestion": "error.onboarding_unknown_suggestion",
	"not found":                     "error.not_found",
}

// apiError writes {"error": message, "message": localized}. message is the
// stable machine-readable form.
func (handler *Handler) apiError(c *fiber.Ctx, status int, message string) error {
	payload := fiber.Map{"error": message}
	if key, ok := errorKeys[message]; ok {
		payload["message"] = handler.i18n.Translate(currentLanguage(c), key)
	}
	return c.Status(status).JSON(payload)
}

func (handler *Handler) validationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "invalid payload",
		"message": handler.i18n.Translate(currentLanguage(c), errorKeys["invalid payload"]),
		"fields":  fields,
	})
}

// internalError logs err and answers 500 without leaking details.
func (handler *Handler) internalError(c *fiber.Ctx, operation string, err error) error {
	handler.logger.Error(operation,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return handler.apiError(c, fiber.StatusInternalServerError, "internal error")
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
}

package api

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	summary, err := handler.export.BuildSummary(handler.location)
	if err != nil {
		return handler.internalError(c, "build export summary", err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	entries, err := handler.export.BuildEntries(handler.location)
	if err != nil {
		return handler.internalError(c, "load export entries", err)
	}

	var output bytes.Buffer
	if err := services.WriteExportCSV(&output, entries); err != nil {
		return handler.internalError(c, "build csv export", err)
	}

	now := handler.now().In(handler.location)
	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", services.ExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	entries, err := handler.export.BuildEntries(handler.location)
	if err != nil {
		return handler.internalError(c, "load export entries", err)
	}

	var output bytes.Buffer
	if err := services.WriteExportJSON(&output, entries); err != nil {
		return handler.internalError(c, "build json export", err)
	}

	now := handler.now().In(handler.location)
	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, services.ExportFilename(now, "json"))
	return c.Send(output.Bytes())
}

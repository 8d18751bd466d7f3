package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/models"
	"github.com/terraincognita07/auragon/internal/services"
)

// ListOptions seeds the curated defaults on first visit to an empty
// collection, then lists it A-Z unless ?order=desc.
func (handler *Handler) ListOptions(c *fiber.Ctx) error {
	collection, ok := models.ParseCollection(c.Params("collection"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "unknown collection")
	}
	order, err := services.ParseSortOrder(c.Query("order"), services.SortAscending)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid query")
	}

	if _, err := handler.options.EnsureDefaults(collection); err != nil {
		return handler.internalError(c, "seed default options", err)
	}
	options, err := handler.options.ListOptions(collection, order)
	if err != nil {
		return handler.internalError(c, "list options", err)
	}
	return c.JSON(options)
}

func (handler *Handler) CreateOption(c *fiber.Ctx) error {
	collection, ok := models.ParseCollection(c.Params("collection"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "unknown collection")
	}

	payload := optionPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.Name = trimLabels([]string{payload.Name})[0]
	if err := handler.validate.Struct(payload); err != nil {
		if fields := validationFields(err); fields != nil {
			return handler.validationError(c, fields)
		}
		return handler.apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	option, err := handler.options.AddOption(collection, payload.Name, false)
	switch {
	case errors.Is(err, services.ErrInvalidOptionName):
		return handler.apiError(c, fiber.StatusBadRequest, "invalid option name")
	case errors.Is(err, services.ErrDuplicateOptionName):
		return handler.apiError(c, fiber.StatusConflict, "option already exists")
	case err != nil:
		return handler.internalError(c, "create option", err)
	}
	return c.Status(fiber.StatusCreated).JSON(option)
}

func (handler *Handler) DeleteOption(c *fiber.Ctx) error {
	collection, ok := models.ParseCollection(c.Params("collection"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "unknown collection")
	}
	if _, err := handler.options.DeleteOption(collection, c.Params("id")); err != nil {
		return handler.internalError(c, "delete option", err)
	}
	return sendNoContent(c)
}

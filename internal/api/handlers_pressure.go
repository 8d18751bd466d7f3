package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/pressure"
)

const pressureUnit = "inHg"

// GetPressure returns the forecast series starting now. ?at=RFC3339 adds the
// reading nearest to that moment.
func (handler *Handler) GetPressure(c *fiber.Ctx) error {
	timeRange, err := pressure.ParseTimeRange(c.Query("range"))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	var selectedAt *time.Time
	if raw := c.Query("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return handler.apiError(c, fiber.StatusBadRequest, "invalid time")
		}
		selectedAt = &parsed
	}

	points, err := handler.pressure.Series(c.UserContext(), timeRange, handler.now().In(handler.location).Truncate(time.Hour))
	if errors.Is(err, pressure.ErrUnknownRange) {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid range")
	}
	if err != nil {
		return handler.internalError(c, "build pressure series", err)
	}

	language := currentLanguage(c)
	view := pressureView{
		Range:      timeRange,
		RangeLabel: handler.i18n.Translate(language, timeRange.LabelKey()),
		Title:      handler.i18n.Translate(language, "pressure.title.current"),
		Unit:       pressureUnit,
		Points:     points,
	}
	if summary, ok := pressure.Summarize(points); ok {
		view.Summary = pressureSummary{
			Summary:    summary,
			TrendLabel: handler.i18n.Translate(language, "pressure.trend."+summary.Trend),
		}
	}
	if selectedAt != nil {
		if point, ok := pressure.Nearest(points, *selectedAt); ok {
			view.Selected = &point
			view.Title = handler.i18n.Translate(language, "pressure.title.selected")
		}
	}
	return c.JSON(view)
}

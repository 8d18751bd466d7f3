package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/auragon/internal/models"
	"github.com/terraincognita07/auragon/internal/services"
)

// Launch reports which screen the client opens first. The state is read
// once at startup and updated in memory when onboarding completes.
func (handler *Handler) Launch(c *fiber.Ctx) error {
	return c.JSON(launchView{
		OnboardingComplete: handler.launch.OnboardingComplete(),
		InitialScreen:      handler.launch.InitialScreen(),
	})
}

func (handler *Handler) ShowOnboarding(c *fiber.Ctx) error {
	language := currentLanguage(c)

	stages := make([]onboardingStageView, 0, len(services.WizardStages()))
	for _, stage := range services.WizardStages() {
		prefix := "onboarding.stage." + stage.Key()
		view := onboardingStageView{
			Key:      stage.Key(),
			Title:    handler.i18n.Translate(language, prefix+".title"),
			Subtitle: handler.i18n.Translate(language, prefix+".subtitle"),
			Action:   handler.i18n.Translate(language, prefix+".action"),
		}
		if collection, ok := stage.Collection(); ok {
			view.Collection = string(collection)
			view.Suggestions = models.SuggestedOptionNames(collection)
		}
		stages = append(stages, view)
	}

	return c.JSON(fiber.Map{
		"onboarding_complete": handler.launch.OnboardingComplete(),
		"stages":              stages,
	})
}

// CompleteOnboarding walks a wizard through every stage with the posted
// selections. Nothing is written unless every selection is a suggestion.
func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	payload := onboardingPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	err := services.RunWizard(handler.onboarding, payload.Triggers, payload.Medications)
	switch {
	case errors.Is(err, services.ErrUnknownSuggestion):
		return handler.apiError(c, fiber.StatusBadRequest, "unknown onboarding suggestion")
	case errors.Is(err, services.ErrOnboardingAlreadyCompleted):
		handler.launch.MarkOnboardingComplete()
		return handler.apiError(c, fiber.StatusConflict, "onboarding already completed")
	case err != nil:
		return handler.internalError(c, "complete onboarding", err)
	}

	handler.launch.MarkOnboardingComplete()
	return handler.Launch(c)
}

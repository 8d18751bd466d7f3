package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/auragon/internal/i18n"
	"github.com/terraincognita07/auragon/internal/pressure"
	"github.com/terraincognita07/auragon/internal/services"
	"go.uber.org/zap"
)

type Handler struct {
	logs       *services.LogService
	options    *services.OptionService
	onboarding *services.OnboardingService
	export     *services.ExportService
	pressure   pressure.Provider
	launch     *services.LaunchState
	i18n       *i18n.Manager
	validate   *validator.Validate
	logger     *zap.Logger
	location   *time.Location
	now        func() time.Time
}

// Dependencies is everything the API needs, built once by the serve command.
type Dependencies struct {
	Logs       *services.LogService
	Options    *services.OptionService
	Onboarding *services.OnboardingService
	Export     *services.ExportService
	Pressure   pressure.Provider
	Launch     *services.LaunchState
	I18n       *i18n.Manager
	Logger     *zap.Logger
	Location   *time.Location
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Logs == nil || deps.Options == nil || deps.Onboarding == nil {
		return nil, errors.New("record store services are required")
	}
	if deps.Launch == nil {
		return nil, errors.New("launch state is required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Pressure == nil {
		deps.Pressure = pressure.NewMockProvider(nil)
	}
	if deps.Export == nil {
		deps.Export = services.NewExportService(deps.Logs)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}

	return &Handler{
		logs:       deps.Logs,
		options:    deps.Options,
		onboarding: deps.Onboarding,
		export:     deps.Export,
		pressure:   deps.Pressure,
		launch:     deps.Launch,
		i18n:       deps.I18n,
		validate:   newValidator(),
		logger:     deps.Logger.Named("api"),
		location:   deps.Location,
		now:        time.Now,
	}, nil
}

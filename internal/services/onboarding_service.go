package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/terraincognita07/auragon/internal/models"
	"go.uber.org/zap"
)

var (
	ErrOnboardingAlreadyCompleted = errors.New("onboarding already completed")
	ErrOnboardingStateLoadFailed  = errors.New("load onboarding state failed")
	ErrOnboardingCompleteFailed   = errors.New("complete onboarding failed")
	ErrOnboardingResetFailed      = errors.New("reset onboarding failed")
)

const (
	ScreenOnboarding = "onboarding"
	ScreenMain       = "main"
)

type OnboardingStateRepository interface {
	Get(key string) (string, bool, error)
	Delete(key string) error
	CompleteOnboarding(triggers []models.Option, medications []models.Option) (bool, error)
}

type OnboardingOptions interface {
	BuildDefaultOptions(names []string) []models.Option
	Refresh(collection models.Collection)
}

type OnboardingService struct {
	state   OnboardingStateRepository
	options OnboardingOptions
	logger  *zap.Logger
}

func NewOnboardingService(state OnboardingStateRepository, options OnboardingOptions, logger *zap.Logger) *OnboardingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingService{
		state:   state,
		options: options,
		logger:  logger.Named("onboarding"),
	}
}

func (service *OnboardingService) IsComplete() (bool, error) {
	value, found, err := service.state.Get(models.StateKeyOnboardingComplete)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOnboardingStateLoadFailed, err)
	}
	return found && value == "true", nil
}

// LoadLaunchState reads the persisted flag once, for the startup routine.
func (service *OnboardingService) LoadLaunchState() (*LaunchState, error) {
	complete, err := service.IsComplete()
	if err != nil {
		return nil, err
	}
	return NewLaunchState(complete), nil
}

// Complete replaces both option collections with the selections and raises
// the onboarding flag. It runs at most once; Reset re-arms it.
func (service *OnboardingService) Complete(triggers []string, medications []string) error {
	complete, err := service.IsComplete()
	if err != nil {
		return err
	}
	if complete {
		return ErrOnboardingAlreadyCompleted
	}

	triggerOptions := service.options.BuildDefaultOptions(triggers)
	medicationOptions := service.options.BuildDefaultOptions(medications)
	completed, err := service.state.CompleteOnboarding(triggerOptions, medicationOptions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOnboardingCompleteFailed, err)
	}
	if !completed {
		return ErrOnboardingAlreadyCompleted
	}

	service.logger.Info("onboarding completed",
		zap.Int("triggers", len(triggerOptions)),
		zap.Int("medications", len(medicationOptions)),
	)
	service.options.Refresh(models.CollectionTriggers)
	service.options.Refresh(models.CollectionMedications)
	return nil
}

// Reset clears the onboarding flag so the wizard is shown on next launch.
func (service *OnboardingService) Reset() error {
	if err := service.state.Delete(models.StateKeyOnboardingComplete); err != nil {
		return fmt.Errorf("%w: %v", ErrOnboardingResetFailed, err)
	}
	return nil
}

// LaunchState is the process-wide state read at startup and handed to the
// API explicitly.
type LaunchState struct {
	mu                 sync.RWMutex
	onboardingComplete bool
}

func NewLaunchState(onboardingComplete bool) *LaunchState {
	return &LaunchState{onboardingComplete: onboardingComplete}
}

func (state *LaunchState) OnboardingComplete() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.onboardingComplete
}

func (state *LaunchState) InitialScreen() string {
	if state.OnboardingComplete() {
		return ScreenMain
	}
	return ScreenOnboarding
}

func (state *LaunchState) MarkOnboardingComplete() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.onboardingComplete = true
}

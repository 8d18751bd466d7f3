package services

import (
	"errors"
	"strings"

	"github.com/terraincognita07/auragon/internal/models"
)

var (
	ErrWizardFinished        = errors.New("onboarding wizard has no further stage")
	ErrWizardNotSelecting    = errors.New("onboarding stage has no selection")
	ErrWizardNotConfirmation = errors.New("onboarding wizard is not at confirmation")
	ErrUnknownSuggestion     = errors.New("unknown onboarding suggestion")
)

type WizardStage int

const (
	StageWelcome WizardStage = iota
	StageTriggers
	StageMedications
	StageConfirmation
)

func WizardStages() []WizardStage {
	return []WizardStage{StageWelcome, StageTriggers, StageMedications, StageConfirmation}
}

func (stage WizardStage) Key() string {
	switch stage {
	case StageWelcome:
		return "welcome"
	case StageTriggers:
		return "triggers"
	case StageMedications:
		return "medications"
	case StageConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// Collection is the option collection a selection stage fills.
func (stage WizardStage) Collection() (models.Collection, bool) {
	switch stage {
	case StageTriggers:
		return models.CollectionTriggers, true
	case StageMedications:
		return models.CollectionMedications, true
	default:
		return "", false
	}
}

type OnboardingCompleter interface {
	Complete(triggers []string, medications []string) error
}

// Wizard holds in-progress onboarding choices. Nothing is persisted until
// Complete; navigation only moves forward.
type Wizard struct {
	stage    WizardStage
	selected map[models.Collection]map[string]struct{}
}

func NewWizard() *Wizard {
	selected := make(map[models.Collection]map[string]struct{}, len(models.Collections()))
	for _, collection := range models.Collections() {
		selected[collection] = map[string]struct{}{}
	}
	return &Wizard{stage: StageWelcome, selected: selected}
}

func (wizard *Wizard) Stage() WizardStage {
	return wizard.stage
}

func (wizard *Wizard) Advance() error {
	if wizard.stage == StageConfirmation {
		return ErrWizardFinished
	}
	wizard.stage++
	return nil
}

// Toggle flips item on the current selection stage and reports whether it
// is now selected. Matching against the suggestion list ignores case.
func (wizard *Wizard) Toggle(item string) (bool, error) {
	collection, ok := wizard.stage.Collection()
	if !ok {
		return false, ErrWizardNotSelecting
	}
	name, ok := matchSuggestion(collection, item)
	if !ok {
		return false, ErrUnknownSuggestion
	}

	selection := wizard.selected[collection]
	if _, exists := selection[name]; exists {
		delete(selection, name)
		return false, nil
	}
	selection[name] = struct{}{}
	return true, nil
}

// Selected lists the chosen names of collection in suggestion order.
func (wizard *Wizard) Selected(collection models.Collection) []string {
	selection := wizard.selected[collection]
	result := make([]string, 0, len(selection))
	for _, name := range models.SuggestedOptionNames(collection) {
		if _, ok := selection[name]; ok {
			result = append(result, name)
		}
	}
	return result
}

func (wizard *Wizard) Complete(completer OnboardingCompleter) error {
	if wizard.stage != StageConfirmation {
		return ErrWizardNotConfirmation
	}
	return completer.Complete(
		wizard.Selected(models.CollectionTriggers),
		wizard.Selected(models.CollectionMedications),
	)
}

// RunWizard walks a fresh wizard through every stage with the given
// selections and completes it.
func RunWizard(completer OnboardingCompleter, triggers []string, medications []string) error {
	wizard := NewWizard()
	selections := map[WizardStage][]string{
		StageTriggers:    triggers,
		StageMedications: medications,
	}

	for wizard.Stage() != StageConfirmation {
		if err := wizard.Advance(); err != nil {
			return err
		}
		for _, item := range UniqueLabels(selections[wizard.Stage()]) {
			if _, err := wizard.Toggle(item); err != nil {
				return err
			}
		}
	}
	return wizard.Complete(completer)
}

func matchSuggestion(collection models.Collection, item string) (string, bool) {
	key := normalizeLabel(item)
	for _, name := range models.SuggestedOptionNames(collection) {
		if strings.ToLower(name) == key {
			return name, true
		}
	}
	return "", false
}

package db

import (
	"errors"
	"testing"

	"github.com/terraincognita07/auragon/internal/models"
	"gorm.io/gorm"
)

func TestOptionRepositoryKeepsCollectionsSeparate(t *testing.T) {
	repo := NewOptionRepository(openTestDatabase(t, "auragon-options.db"))

	if err := repo.Create(models.CollectionTriggers, &models.Option{ID: "t1", Name: "stress"}); err != nil {
		t.Fatalf("create trigger: %v", err)
	}
	if err := repo.Create(models.CollectionTriggers, &models.Option{ID: "t2", Name: "Alcohol"}); err != nil {
		t.Fatalf("create trigger: %v", err)
	}
	if err := repo.Create(models.CollectionMedications, &models.Option{ID: "m1", Name: "Water", IsDefault: true}); err != nil {
		t.Fatalf("create medication: %v", err)
	}

	triggers, err := repo.List(models.CollectionTriggers, false)
	if err != nil {
		t.Fatalf("list triggers: %v", err)
	}
	if len(triggers) != 2 || triggers[0].Name != "Alcohol" || triggers[1].Name != "stress" {
		t.Fatalf("expected case-insensitive A-Z triggers, got %#v", triggers)
	}

	medications, err := repo.List(models.CollectionMedications, false)
	if err != nil {
		t.Fatalf("list medications: %v", err)
	}
	if len(medications) != 1 || !medications[0].IsDefault {
		t.Fatalf("expected one default medication, got %#v", medications)
	}

	exists, err := repo.ExistsByNormalizedName(models.CollectionTriggers, "stress")
	if err != nil || !exists {
		t.Fatalf("expected stress to exist, exists=%v err=%v", exists, err)
	}
	exists, err = repo.ExistsByNormalizedName(models.CollectionMedications, "stress")
	if err != nil || exists {
		t.Fatalf("expected stress to be absent from medications, exists=%v err=%v", exists, err)
	}
}

func TestOptionRepositoryCreateBatchIfEmpty(t *testing.T) {
	repo := NewOptionRepository(openTestDatabase(t, "auragon-options-seed.db"))

	seed := []models.Option{{ID: "a", Name: "Stress", IsDefault: true}, {ID: "b", Name: "Dehydration", IsDefault: true}}
	inserted, err := repo.CreateBatchIfEmpty(models.CollectionTriggers, seed)
	if err != nil || !inserted {
		t.Fatalf("expected first seed to insert, inserted=%v err=%v", inserted, err)
	}

	again := []models.Option{{ID: "c", Name: "Stress", IsDefault: true}}
	inserted, err = repo.CreateBatchIfEmpty(models.CollectionTriggers, again)
	if err != nil || inserted {
		t.Fatalf("expected second seed to be skipped, inserted=%v err=%v", inserted, err)
	}

	if count, _ := repo.Count(models.CollectionTriggers); count != 2 {
		t.Fatalf("expected 2 triggers, got %d", count)
	}
}

func TestOptionRepositoryReplaceAndDelete(t *testing.T) {
	repo := NewOptionRepository(openTestDatabase(t, "auragon-options-replace.db"))

	if err := repo.Create(models.CollectionMedications, &models.Option{ID: "old", Name: "Aspirin"}); err != nil {
		t.Fatalf("create medication: %v", err)
	}
	if err := repo.Replace(models.CollectionMedications, []models.Option{{ID: "new", Name: "Magnesium", IsDefault: true}}); err != nil {
		t.Fatalf("replace medications: %v", err)
	}

	medications, err := repo.List(models.CollectionMedications, false)
	if err != nil {
		t.Fatalf("list medications: %v", err)
	}
	if len(medications) != 1 || medications[0].ID != "new" {
		t.Fatalf("expected only the replacement medication, got %#v", medications)
	}

	deleted, err := repo.DeleteByID(models.CollectionMedications, "old")
	if err != nil || deleted {
		t.Fatalf("expected replaced option delete to miss, deleted=%v err=%v", deleted, err)
	}
	deleted, err = repo.DeleteByID(models.CollectionMedications, "new")
	if err != nil || !deleted {
		t.Fatalf("expected delete to hit, deleted=%v err=%v", deleted, err)
	}
}

func TestOptionRepositoryRejectsUnknownCollection(t *testing.T) {
	repo := NewOptionRepository(openTestDatabase(t, "auragon-options-unknown.db"))

	if _, err := repo.List(models.Collection("symptoms"), false); err == nil {
		t.Fatal("expected unknown collection to fail")
	}
}

func TestOptionRepositoryUniqueNormalizedName(t *testing.T) {
	repo := NewOptionRepository(openTestDatabase(t, "auragon-options-unique.db"))

	if err := repo.Create(models.CollectionTriggers, &models.Option{ID: "a", Name: "Ärger"}); err != nil {
		t.Fatalf("create option: %v", err)
	}
	err := repo.Create(models.CollectionTriggers, &models.Option{ID: "b", Name: " ärger"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
	if err := repo.Create(models.CollectionMedications, &models.Option{ID: "c", Name: "Ärger"}); err != nil {
		t.Fatalf("expected the key to be scoped per collection, got %v", err)
	}

	exists, err := repo.ExistsByNormalizedName(models.CollectionTriggers, "ÄRGER")
	if err != nil || !exists {
		t.Fatalf("expected ÄRGER to match, exists=%v err=%v", exists, err)
	}

	err = repo.Replace(models.CollectionMedications, []models.Option{{ID: "d", Name: "Water"}, {ID: "e", Name: "water"}})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected replace with colliding names to fail, got %v", err)
	}
	options, _ := repo.List(models.CollectionMedications, false)
	if len(options) != 1 || options[0].ID != "c" {
		t.Fatalf("expected failed replace to roll back, got %#v", options)
	}
}

func TestRepairOptionKeysRefoldsNonASCIINames(t *testing.T) {
	database := openTestDatabase(t, "auragon-options-repair.db")
	repo := NewOptionRepository(database)

	if err := repo.Create(models.CollectionTriggers, &models.Option{ID: "kept", Name: "öl"}); err != nil {
		t.Fatalf("create option: %v", err)
	}
	legacy := []struct{ id, name, key string }{
		{"legacy", "Ärger", "Ärger"},
		{"legacy-dup", "Öl", "Öl"},
	}
	for _, row := range legacy {
		if err := database.Exec(
			`INSERT INTO trigger_options(id, name, normalized_name, is_default) VALUES (?, ?, ?, 0)`,
			row.id, row.name, row.key,
		).Error; err != nil {
			t.Fatalf("insert legacy row %s: %v", row.id, err)
		}
	}

	changed, err := repairOptionKeys(database)
	if err != nil {
		t.Fatalf("repairOptionKeys() unexpected error: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 changed rows, got %d", changed)
	}

	exists, err := repo.ExistsByNormalizedName(models.CollectionTriggers, "ärger")
	if err != nil || !exists {
		t.Fatalf("expected repaired key for Ärger, exists=%v err=%v", exists, err)
	}
	options, _ := repo.List(models.CollectionTriggers, false)
	if len(options) != 2 {
		t.Fatalf("expected the duplicate legacy row to be removed, got %#v", options)
	}
	for _, option := range options {
		if option.ID == "legacy-dup" {
			t.Fatalf("expected legacy-dup to be removed, got %#v", options)
		}
	}

	if changed, err := repairOptionKeys(database); err != nil || changed != 0 {
		t.Fatalf("expected second repair to be a no-op, changed=%d err=%v", changed, err)
	}
}

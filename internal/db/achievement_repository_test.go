package db

import (
	"testing"
	"time"

	"github.com/oxbowlabs/taper/internal/models"
)

func TestMarkUnlockedIsTerminal(t *testing.T) {
	database := openTestDB(t)
	repo := NewAchievementRepository(database)

	row := models.Achievement{UserID: 1, Code: "steps-10k", Title: "Step Master", Category: models.CategoryActivity, Points: 15}
	if err := repo.Create(&row); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	affected, err := repo.MarkUnlocked(1, "steps-10k", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkUnlocked() unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("MarkUnlocked() affected = %d, want 1", affected)
	}

	// A second unlock attempt matches nothing: the transition is one-way.
	affected, err = repo.MarkUnlocked(1, "steps-10k", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkUnlocked() repeat unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("MarkUnlocked() repeat affected = %d, want 0", affected)
	}

	unlocked, found, err := repo.FindByUserAndCode(1, "steps-10k")
	if err != nil || !found {
		t.Fatalf("FindByUserAndCode() = found %v, err %v", found, err)
	}
	if !unlocked.IsUnlocked || unlocked.UnlockedAt == nil {
		t.Fatalf("row = %+v, want unlocked with timestamp", unlocked)
	}
}

func TestMarkUnlockedMissingRowAffectsNothing(t *testing.T) {
	database := openTestDB(t)
	repo := NewAchievementRepository(database)

	affected, err := repo.MarkUnlocked(1, "never-created", time.Now().UTC())
	if err != nil {
		t.Fatalf("MarkUnlocked() unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("MarkUnlocked() affected = %d, want 0 for missing row", affected)
	}
}

func TestAchievementRowUniquePerUserAndCode(t *testing.T) {
	database := openTestDB(t)
	repo := NewAchievementRepository(database)

	first := models.Achievement{UserID: 1, Code: "first-shot", Title: "First Shot", Category: models.CategoryMedication}
	if err := repo.Create(&first); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	duplicate := models.Achievement{UserID: 1, Code: "first-shot", Title: "First Shot", Category: models.CategoryMedication}
	if err := repo.Create(&duplicate); err == nil {
		t.Fatal("expected unique index violation for duplicate (user, code)")
	}

	other := models.Achievement{UserID: 2, Code: "first-shot", Title: "First Shot", Category: models.CategoryMedication}
	if err := repo.Create(&other); err != nil {
		t.Fatalf("Create() for another user unexpected error: %v", err)
	}
}

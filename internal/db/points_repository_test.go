package db

import (
	"testing"

	"github.com/oxbowlabs/taper/internal/models"
)

func TestAddPointsIncrementsInStore(t *testing.T) {
	database := openTestDB(t)
	repo := NewPointsRepository(database)

	if _, err := repo.FindOrCreateByUser(1); err != nil {
		t.Fatalf("FindOrCreateByUser() unexpected error: %v", err)
	}

	if err := repo.AddPoints(1, 25); err != nil {
		t.Fatalf("AddPoints() unexpected error: %v", err)
	}
	if err := repo.AddPoints(1, 50); err != nil {
		t.Fatalf("AddPoints() unexpected error: %v", err)
	}

	ledger, err := repo.FindOrCreateByUser(1)
	if err != nil {
		t.Fatalf("FindOrCreateByUser() unexpected error: %v", err)
	}
	if ledger.Points != 75 {
		t.Fatalf("points = %d, want 75", ledger.Points)
	}
}

func TestFindOrCreateByUserReturnsExistingRow(t *testing.T) {
	database := openTestDB(t)
	repo := NewPointsRepository(database)

	first, err := repo.FindOrCreateByUser(1)
	if err != nil {
		t.Fatalf("FindOrCreateByUser() unexpected error: %v", err)
	}
	second, err := repo.FindOrCreateByUser(1)
	if err != nil {
		t.Fatalf("FindOrCreateByUser() repeat unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat find created new row: ids %d and %d", first.ID, second.ID)
	}

	var rows int64
	if err := database.Model(&models.PointsLedger{}).Count(&rows).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("ledger rows = %d, want 1", rows)
	}
}

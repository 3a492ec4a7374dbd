package services

import (
	"testing"

	"github.com/oxbowlabs/taper/internal/models"
	"go.uber.org/zap"
)

type stubStreakRepo struct {
	row        models.Streak
	findErr    error
	updated    bool
	countCol   string
	dayCol     string
	count      int
	day        string
	updateErr  error
	updateHits int
}

func (stub *stubStreakRepo) FindOrCreateByUser(uint) (models.Streak, error) {
	return stub.row, stub.findErr
}

func (stub *stubStreakRepo) UpdateCounter(_ uint, countColumn string, count int, dayColumn string, day string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	stub.updated = true
	stub.updateHits++
	stub.countCol = countColumn
	stub.dayCol = dayColumn
	stub.count = count
	stub.day = day
	return nil
}

type recordingPublisher struct {
	events []MetricEvent
}

func (recorder *recordingPublisher) Publish(event MetricEvent) {
	recorder.events = append(recorder.events, event)
}

func TestNextStreakCountTransitions(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		lastDay     string
		day         string
		wantCount   int
		wantChanged bool
	}{
		{"first ever event", 0, "", "2026-01-05", 1, true},
		{"same day repeat", 3, "2026-01-05", "2026-01-05", 3, false},
		{"consecutive day", 3, "2026-01-05", "2026-01-06", 4, true},
		{"gap restarts at touched day", 3, "2026-01-05", "2026-01-08", 1, true},
		{"backfill before head ignored", 3, "2026-01-05", "2026-01-02", 3, false},
	}
	for _, test := range tests {
		count, changed, err := nextStreakCount(test.count, test.lastDay, test.day)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", test.name, err)
		}
		if count != test.wantCount || changed != test.wantChanged {
			t.Fatalf("%s: nextStreakCount() = (%d, %v), want (%d, %v)",
				test.name, count, changed, test.wantCount, test.wantChanged)
		}
	}
}

func TestTouchRunOfDaysThenGap(t *testing.T) {
	repo := &stubStreakRepo{}
	service := NewStreakService(repo, nil, zap.NewNop())

	days := []string{"2026-01-01", "2026-01-02", "2026-01-03"}
	for index, day := range days {
		count, err := service.Touch(7, models.MetricWeight, day)
		if err != nil {
			t.Fatalf("Touch(%s) unexpected error: %v", day, err)
		}
		if count != index+1 {
			t.Fatalf("Touch(%s) = %d, want %d", day, count, index+1)
		}
		repo.row.WeightCount = count
		repo.row.WeightLastDay = day
	}

	// Two missed days break the run; the next event starts a new one.
	count, err := service.Touch(7, models.MetricWeight, "2026-01-06")
	if err != nil {
		t.Fatalf("Touch() after gap unexpected error: %v", err)
	}
	if count != 1 {
		t.Fatalf("Touch() after gap = %d, want 1", count)
	}
	if repo.countCol != "weight_count" || repo.dayCol != "weight_last_day" {
		t.Fatalf("Touch() wrote columns (%s, %s), want weight columns", repo.countCol, repo.dayCol)
	}
}

func TestTouchSameDayDoesNotWrite(t *testing.T) {
	repo := &stubStreakRepo{row: models.Streak{MealsCount: 2, MealsLastDay: "2026-01-02"}}
	service := NewStreakService(repo, nil, zap.NewNop())

	count, err := service.Touch(7, models.MetricMeals, "2026-01-02")
	if err != nil {
		t.Fatalf("Touch() unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("Touch() same day = %d, want 2", count)
	}
	if repo.updated {
		t.Fatal("Touch() same day should not write the row")
	}
}

func TestTouchUntrackedMetricIsNoop(t *testing.T) {
	repo := &stubStreakRepo{}
	service := NewStreakService(repo, nil, zap.NewNop())

	count, err := service.Touch(7, models.MetricProtein, "2026-01-02")
	if err != nil || count != 0 {
		t.Fatalf("Touch() untracked = (%d, %v), want (0, nil)", count, err)
	}
	if repo.updated {
		t.Fatal("Touch() untracked metric should not write")
	}
}

func TestTouchPublishesMilestoneEvents(t *testing.T) {
	repo := &stubStreakRepo{row: models.Streak{LoginCount: 6, LoginLastDay: "2026-01-06"}}
	publisher := &recordingPublisher{}
	service := NewStreakService(repo, publisher, zap.NewNop())

	count, err := service.Touch(7, models.MetricLogin, "2026-01-07")
	if err != nil {
		t.Fatalf("Touch() unexpected error: %v", err)
	}
	if count != 7 {
		t.Fatalf("Touch() = %d, want 7", count)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 milestone event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != models.MetricLoginStreak || event.Value != 7 || event.UserID != 7 {
		t.Fatalf("milestone event = %+v, want login_streak 7 for user 7", event)
	}
}

func TestTouchZeroUserIsNoop(t *testing.T) {
	repo := &stubStreakRepo{}
	service := NewStreakService(repo, nil, zap.NewNop())

	count, err := service.Touch(0, models.MetricWeight, "2026-01-02")
	if err != nil || count != 0 {
		t.Fatalf("Touch() zero user = (%d, %v), want (0, nil)", count, err)
	}
}

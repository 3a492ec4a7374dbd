package models

import "testing"

func TestAchievementCatalogCodesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, definition := range AchievementCatalog() {
		if seen[definition.Code] {
			t.Fatalf("duplicate catalog code %q", definition.Code)
		}
		seen[definition.Code] = true
		if definition.Unlocks == nil {
			t.Fatalf("catalog entry %q has no unlock predicate", definition.Code)
		}
	}
}

func TestWeightLossPredicatesUseStartWeight(t *testing.T) {
	definition, found := AchievementDefinitionByCode("weight-loss-5")
	if !found {
		t.Fatal("weight-loss-5 missing from catalog")
	}

	user := User{StartWeight: 210}
	if !definition.Unlocks(204, user) {
		t.Error("6 lb loss should unlock weight-loss-5")
	}
	if definition.Unlocks(207, user) {
		t.Error("3 lb loss should not unlock weight-loss-5")
	}
	if definition.Unlocks(150, User{}) {
		t.Error("missing start weight should never unlock a loss milestone")
	}
}

func TestStepsMilestoneThreshold(t *testing.T) {
	definition, found := AchievementDefinitionByCode("steps-10k")
	if !found {
		t.Fatal("steps-10k missing from catalog")
	}
	if definition.Trigger != MetricSteps {
		t.Fatalf("trigger = %q, want %q", definition.Trigger, MetricSteps)
	}
	if definition.Unlocks(9999, User{}) {
		t.Error("9999 steps should not unlock steps-10k")
	}
	if !definition.Unlocks(10000, User{}) {
		t.Error("10000 steps should unlock steps-10k")
	}
}

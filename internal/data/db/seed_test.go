package db

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseMealSeedsEmbedded(t *testing.T) {
	meals, err := parseMealSeeds(defaultMealsYAML)
	if err != nil {
		t.Fatalf("parseMealSeeds: %v", err)
	}
	if len(meals) != 4 {
		t.Fatalf("expected 4 default meals, got %d", len(meals))
	}
	if meals[0].Name != "Breakfast" || meals[0].From != datatypes.NewTime(6, 0, 0, 0) || meals[0].To != datatypes.NewTime(10, 0, 0, 0) {
		t.Fatalf("unexpected first meal: %+v", meals[0])
	}
	for i, m := range meals {
		if m.Rank != i {
			t.Fatalf("meal %q rank: want=%d got=%d", m.Name, i, m.Rank)
		}
	}
	if !meals[3].IsAllDay() {
		t.Fatalf("expected %q to be all-day", meals[3].Name)
	}
}

func TestParseMealSeedsRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"missing name": "meals:\n  - from: \"06:00\"\n    to: \"07:00\"\n",
		"bad time":     "meals:\n  - name: X\n    from: \"6am\"\n    to: \"07:00\"\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseMealSeeds([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatalf("nil is not a violation")
	}
}

package prefs

import (
	"context"
	"strconv"
)

const (
	KeyCaloriesGoal       = "calories_goal"
	KeyProteinsGoal       = "proteins_goal"
	KeyCarbohydratesGoal  = "carbohydrates_goal"
	KeyFatsGoal           = "fats_goal"
	KeyTimeBasedSorting   = "time_based_sorting"
	KeyIncludeAllDayMeals = "include_all_day_meals"
	KeySelectedDate       = "selected_date"
)

// Store is a string key/value preference store. Set and Delete are atomic
// across all given keys and notify once per call.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	// GetMany omits keys that are not set.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// Notifier is told which keys changed after a successful write.
type Notifier interface {
	NotifyPreferences(keys ...string)
}

func FormatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func FormatBool(v bool) string { return strconv.FormatBool(v) }

// Float parses values[key]; ok is false when the key is unset or unparsable.
func Float(values map[string]string, key string) (float64, bool) {
	raw, found := values[key]
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func Bool(values map[string]string, key string, def bool) bool {
	raw, found := values[key]
	if !found {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func keysOf(values map[string]string) []string {
	out := make([]string, 0, len(values))
	for k := range values {
		out = append(out, k)
	}
	return out
}

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/foodyou-backend/internal/data/prefs"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

var goalKeys = []string{prefs.KeyCaloriesGoal, prefs.KeyProteinsGoal, prefs.KeyCarbohydratesGoal, prefs.KeyFatsGoal}

func (s *diaryService) ObserveDailyGoals(ctx context.Context) <-chan types.DailyGoals {
	return watch(s, ctx, []string{realtime.ChannelPreferences}, func(ctx context.Context) (types.DailyGoals, bool, error) {
		g, err := s.GetDailyGoals(ctx)
		return g, err == nil, err
	})
}

// GetDailyGoals falls back to the whole default set when any goal is unset.
func (s *diaryService) GetDailyGoals(ctx context.Context) (types.DailyGoals, error) {
	values, err := s.prefs.GetMany(ctx, goalKeys...)
	if err != nil {
		return types.DailyGoals{}, fmt.Errorf("read goals: %w", err)
	}
	calories, okC := prefs.Float(values, prefs.KeyCaloriesGoal)
	proteins, okP := prefs.Float(values, prefs.KeyProteinsGoal)
	carbs, okCh := prefs.Float(values, prefs.KeyCarbohydratesGoal)
	fats, okF := prefs.Float(values, prefs.KeyFatsGoal)
	if !okC || !okP || !okCh || !okF {
		return types.DefaultGoals, nil
	}
	return types.DailyGoals{Calories: calories, Proteins: proteins, Carbohydrates: carbs, Fats: fats}, nil
}

// SetDailyGoals writes all four goals in one atomic store write.
func (s *diaryService) SetDailyGoals(ctx context.Context, goals types.DailyGoals) error {
	if !goals.Valid() {
		return fmt.Errorf("%w: goals must not be negative", domainerr.ErrInvalidArgument)
	}
	return s.prefs.Set(ctx, map[string]string{
		prefs.KeyCaloriesGoal:      prefs.FormatFloat(goals.Calories),
		prefs.KeyProteinsGoal:      prefs.FormatFloat(goals.Proteins),
		prefs.KeyCarbohydratesGoal: prefs.FormatFloat(goals.Carbohydrates),
		prefs.KeyFatsGoal:          prefs.FormatFloat(goals.Fats),
	})
}

func (s *diaryService) ObserveMealsCardSettings(ctx context.Context) <-chan types.MealsCardSettings {
	return watch(s, ctx, []string{realtime.ChannelPreferences}, func(ctx context.Context) (types.MealsCardSettings, bool, error) {
		v, err := s.GetMealsCardSettings(ctx)
		return v, err == nil, err
	})
}

func (s *diaryService) GetMealsCardSettings(ctx context.Context) (types.MealsCardSettings, error) {
	values, err := s.prefs.GetMany(ctx, prefs.KeyTimeBasedSorting, prefs.KeyIncludeAllDayMeals)
	if err != nil {
		return types.MealsCardSettings{}, fmt.Errorf("read meals card settings: %w", err)
	}
	return types.MealsCardSettings{
		TimeBasedSorting:   prefs.Bool(values, prefs.KeyTimeBasedSorting, false),
		IncludeAllDayMeals: prefs.Bool(values, prefs.KeyIncludeAllDayMeals, false),
	}, nil
}

func (s *diaryService) SetMealsCardSettings(ctx context.Context, settings types.MealsCardSettings) error {
	return s.prefs.Set(ctx, map[string]string{
		prefs.KeyTimeBasedSorting:   prefs.FormatBool(settings.TimeBasedSorting),
		prefs.KeyIncludeAllDayMeals: prefs.FormatBool(settings.IncludeAllDayMeals),
	})
}

func (s *diaryService) GetSelectedDate(ctx context.Context) (time.Time, bool, error) {
	raw, ok, err := s.prefs.Get(ctx, prefs.KeySelectedDate)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		s.log.Warn("ignoring malformed selected date", "value", raw)
		return time.Time{}, false, nil
	}
	return d, true, nil
}

func (s *diaryService) SetSelectedDate(ctx context.Context, date time.Time) error {
	return s.prefs.Set(ctx, map[string]string{prefs.KeySelectedDate: types.FormatDate(date)})
}

// SortMealsByTime orders meals for display at now. Without time-based sorting
// the rank order is kept. Otherwise meals in progress come first, then the
// rest by how soon they start, wrapping past midnight. All-day meals count as
// in progress when includeAllDay is set and go last otherwise.
func SortMealsByTime(meals []*types.Meal, now time.Time, settings types.MealsCardSettings) []*types.Meal {
	out := append([]*types.Meal(nil), meals...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	if !settings.TimeBasedSorting {
		return out
	}

	const day = 24 * time.Hour
	nowTOD := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute + time.Duration(now.Second())*time.Second
	score := func(m *types.Meal) (group int, wait time.Duration) {
		if m.IsAllDay() {
			if settings.IncludeAllDayMeals {
				return 0, 0
			}
			return 2, 0
		}
		if m.Contains(now) {
			return 0, 0
		}
		wait = (time.Duration(m.From) - nowTOD + day) % day
		return 1, wait
	}
	sort.SliceStable(out, func(i, j int) bool {
		gi, wi := score(out[i])
		gj, wj := score(out[j])
		if gi != gj {
			return gi < gj
		}
		return wi < wj
	})
	return out
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domainerr.ErrInvalidArgument)
	}
	return name, nil
}

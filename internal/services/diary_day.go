package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

var diaryDayChannels = []string{
	realtime.ChannelMeals,
	realtime.ChannelProducts,
	realtime.ChannelMeasurements,
	realtime.ChannelPreferences,
}

func (s *diaryService) ObserveDiaryDay(ctx context.Context, date time.Time) <-chan *types.DiaryDay {
	return watch(s, ctx, diaryDayChannels, func(ctx context.Context) (*types.DiaryDay, bool, error) {
		d, err := s.GetDiaryDay(ctx, date)
		return d, err == nil, err
	})
}

// GetDiaryDay groups the day's active measurements into one bucket per meal,
// in rank order. A measurement whose meal no longer exists is left out and
// logged.
func (s *diaryService) GetDiaryDay(ctx context.Context, date time.Time) (*types.DiaryDay, error) {
	var (
		meals    []*types.Meal
		measured []types.MeasuredProduct
		goals    types.DailyGoals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		meals, err = s.meals.List(read(gctx))
		return err
	})
	g.Go(func() (err error) {
		measured, err = s.ListMeasurements(gctx, nil, date)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.GetDailyGoals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load diary day: %w", err)
	}

	day := &types.DiaryDay{
		Date:  types.FromEpochDay(types.EpochDay(date)),
		Meals: make([]types.DiaryMeal, len(meals)),
		Goals: goals,
	}
	index := make(map[int64]int, len(meals))
	for i, m := range meals {
		index[m.ID] = i
		day.Meals[i] = types.DiaryMeal{Meal: *m, Products: []types.MeasuredProduct{}}
	}
	for _, mp := range measured {
		i, ok := index[mp.MealID]
		if !ok {
			s.log.Warn("measurement references missing meal; skipped", "measurementID", mp.MeasurementID, "mealID", mp.MealID)
			continue
		}
		day.Meals[i].Products = append(day.Meals[i].Products, mp)
	}
	return day, nil
}

package services

import (
	"context"
	"fmt"

	"gorm.io/datatypes"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

const oneDay = datatypes.Time(24 * 60 * 60 * 1e9)

func (s *diaryService) ObserveMeals(ctx context.Context) <-chan []*types.Meal {
	return watch(s, ctx, []string{realtime.ChannelMeals}, func(ctx context.Context) ([]*types.Meal, bool, error) {
		meals, err := s.meals.List(read(ctx))
		return meals, err == nil, err
	})
}

// ObserveMealByID emits nothing while the meal does not exist.
func (s *diaryService) ObserveMealByID(ctx context.Context, id int64) <-chan *types.Meal {
	return watch(s, ctx, []string{realtime.ChannelMeals}, func(ctx context.Context) (*types.Meal, bool, error) {
		m, err := s.meals.GetByID(read(ctx), id)
		return m, m != nil, err
	})
}

func (s *diaryService) ListMeals(dbc dbctx.Context) ([]*types.Meal, error) {
	return s.meals.List(dbc)
}

func (s *diaryService) GetMeal(dbc dbctx.Context, id int64) (*types.Meal, error) {
	m, err := s.meals.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("meal %d: %w", id, domainerr.ErrNotFound)
	}
	return m, nil
}

func (s *diaryService) CreateMeal(dbc dbctx.Context, name string, from, to datatypes.Time) (*types.Meal, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	m, err := s.meals.Create(dbc, &types.Meal{Name: name, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	s.changed(realtime.ChannelMeals)
	return m, nil
}

func (s *diaryService) UpdateMeal(dbc dbctx.Context, meal *types.Meal) error {
	if meal == nil {
		return fmt.Errorf("%w: meal is required", domainerr.ErrInvalidArgument)
	}
	name, err := normalizeName(meal.Name)
	if err != nil {
		return err
	}
	if err := validateWindow(meal.From, meal.To); err != nil {
		return err
	}
	meal.Name = name
	ok, err := s.meals.Update(dbc, meal)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if !ok {
		return fmt.Errorf("meal %d: %w", meal.ID, domainerr.ErrNotFound)
	}
	s.changed(realtime.ChannelMeals)
	return nil
}

// DeleteMeal removes the meal together with its measurements.
func (s *diaryService) DeleteMeal(dbc dbctx.Context, id int64) error {
	ok, err := s.meals.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if !ok {
		return fmt.Errorf("meal %d: %w", id, domainerr.ErrNotFound)
	}
	s.changed(realtime.ChannelMeals, realtime.ChannelMeasurements)
	return nil
}

func (s *diaryService) UpdateMealsRanks(dbc dbctx.Context, ranks map[int64]int) error {
	if len(ranks) == 0 {
		return nil
	}
	if err := s.meals.UpdateRanks(dbc, ranks); err != nil {
		return fmt.Errorf("update meal ranks: %w", err)
	}
	s.changed(realtime.ChannelMeals)
	return nil
}

func validateWindow(from, to datatypes.Time) error {
	if from < 0 || from >= oneDay || to < 0 || to >= oneDay {
		return fmt.Errorf("%w: meal window must be within one day", domainerr.ErrInvalidArgument)
	}
	return nil
}

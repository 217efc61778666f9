package testutil

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedMeal(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, rank int) *types.Meal {
	tb.Helper()
	m := &types.Meal{
		Name: name,
		From: types.ClockTime(6, 0),
		To:   types.ClockTime(10, 0),
		Rank: rank,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed meal: %v", err)
	}
	return m
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, kcal float64) *types.Product {
	tb.Helper()
	p := &types.Product{
		Name:          name,
		Calories:      kcal,
		Proteins:      10,
		Carbohydrates: 20,
		Fats:          5,
		WeightUnit:    types.WeightUnitGram,
		Source:        types.ProductSourceUser,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedMeasurement(tb testing.TB, ctx context.Context, tx *gorm.DB, mealID, productID int64, date time.Time, kind types.MeasurementKind, qty float64) *types.WeightMeasurement {
	tb.Helper()
	wm := &types.WeightMeasurement{
		MealID:    mealID,
		ProductID: productID,
		EpochDay:  types.EpochDay(date),
		Kind:      kind,
		Quantity:  qty,
		Status:    types.MeasurementActive,
	}
	if err := tx.WithContext(ctx).Create(wm).Error; err != nil {
		tb.Fatalf("seed measurement: %v", err)
	}
	return wm
}

package diary

import (
	"errors"
	"math"
	"testing"
	"time"

	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
)

func f64(v float64) *float64 { return &v }

func TestNewMeasurementResolvesGrams(t *testing.T) {
	p := &Product{PackageWeight: f64(250), ServingWeight: f64(30)}
	cases := []struct {
		kind MeasurementKind
		qty  float64
		want float64
	}{
		{KindWeightUnit, 60, 60},
		{KindPackage, 0.5, 125},
		{KindServing, 2, 60},
	}
	for _, tc := range cases {
		m, err := NewMeasurement(tc.kind, tc.qty, p)
		if err != nil {
			t.Fatalf("%s: %v", tc.kind, err)
		}
		if m.Kind() != tc.kind || m.Amount() != tc.qty {
			t.Fatalf("%s: unexpected variant %+v", tc.kind, m)
		}
		if m.Grams() != tc.want {
			t.Fatalf("%s: grams want=%v got=%v", tc.kind, tc.want, m.Grams())
		}
	}
}

func TestNewMeasurementRequiresProductWeight(t *testing.T) {
	p := &Product{}
	for _, k := range []MeasurementKind{KindPackage, KindServing} {
		if _, err := NewMeasurement(k, 1, p); !errors.Is(err, domainerr.ErrInvalidArgument) {
			t.Fatalf("%s: want ErrInvalidArgument, got %v", k, err)
		}
	}
	if _, err := NewMeasurement("litres", 1, p); !errors.Is(err, domainerr.ErrInvalidArgument) {
		t.Fatalf("unknown kind: want ErrInvalidArgument, got %v", err)
	}
}

func TestDiaryDayTotals(t *testing.T) {
	p := Product{ID: 10, Calories: 155, Proteins: 13, Carbohydrates: 1.1, Fats: 11}
	wm := WeightMeasurement{ID: 1, MealID: 1, ProductID: 10, Kind: KindWeightUnit, Quantity: 60, EpochDay: EpochDay(time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC))}
	mp, err := NewMeasuredProduct(wm, p)
	if err != nil {
		t.Fatalf("NewMeasuredProduct: %v", err)
	}
	day := DiaryDay{Meals: []DiaryMeal{{Meal: Meal{ID: 1, Name: "Breakfast"}, Products: []MeasuredProduct{mp}}}}
	if got := day.Totals().Calories; math.Abs(got-93.0) > 1e-9 {
		t.Fatalf("calories: want=93.0 got=%v", got)
	}
	if FormatDate(mp.Date) != "2024-12-08" {
		t.Fatalf("date round-trip: got %s", FormatDate(mp.Date))
	}
}

func TestHasIncompleteNutrition(t *testing.T) {
	p := Product{Sugars: f64(1), SaturatedFats: f64(1), Salt: f64(1), Sodium: f64(1), Fiber: f64(1)}
	if p.HasIncompleteNutrition() {
		t.Fatalf("expected complete nutrition")
	}
	p.Fiber = nil
	if !p.HasIncompleteNutrition() {
		t.Fatalf("expected incomplete nutrition")
	}
}

func TestMealContains(t *testing.T) {
	breakfast := Meal{From: ClockTime(6, 0), To: ClockTime(10, 0)}
	at := func(h, m int) time.Time { return time.Date(2024, 1, 1, h, m, 0, 0, time.UTC) }
	if !breakfast.Contains(at(7, 30)) || breakfast.Contains(at(10, 0)) {
		t.Fatalf("breakfast window mismatch")
	}
	late := Meal{From: ClockTime(22, 0), To: ClockTime(2, 0)}
	if !late.Contains(at(23, 0)) || !late.Contains(at(1, 0)) || late.Contains(at(12, 0)) {
		t.Fatalf("wrapping window mismatch")
	}
	allDay := Meal{From: ClockTime(0, 0), To: ClockTime(0, 0)}
	if !allDay.IsAllDay() || !allDay.Contains(at(15, 0)) {
		t.Fatalf("all-day meal mismatch")
	}
}

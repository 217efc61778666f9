package diary

import "time"

type DiaryMeal struct {
	Meal     Meal              `json:"meal"`
	Products []MeasuredProduct `json:"products"`
}

func (m DiaryMeal) NutritionFacts() NutritionFacts {
	var out NutritionFacts
	for _, p := range m.Products {
		out = out.Add(p.NutritionFacts())
	}
	return out
}

// DiaryDay buckets are ordered by meal rank.
type DiaryDay struct {
	Date  time.Time   `json:"date"`
	Meals []DiaryMeal `json:"meals"`
	Goals DailyGoals  `json:"goals"`
}

// Totals sums every bucket; it is derived and never stored.
func (d DiaryDay) Totals() NutritionFacts {
	var out NutritionFacts
	for _, m := range d.Meals {
		out = out.Add(m.NutritionFacts())
	}
	return out
}

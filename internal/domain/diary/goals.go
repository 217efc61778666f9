package diary

type DailyGoals struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

var DefaultGoals = DailyGoals{
	Calories:      2000,
	Proteins:      100,
	Carbohydrates: 250,
	Fats:          67,
}

func (g DailyGoals) Valid() bool {
	return g.Calories >= 0 && g.Proteins >= 0 && g.Carbohydrates >= 0 && g.Fats >= 0
}

type MealsCardSettings struct {
	TimeBasedSorting   bool `json:"time_based_sorting"`
	IncludeAllDayMeals bool `json:"include_all_day_meals"`
}

package diary

// NutritionFacts holds absolute or per-100 nutrient amounts. Optional nutrients
// stay nil when no contributing product knows them.
type NutritionFacts struct {
	Calories      float64  `json:"calories"`
	Proteins      float64  `json:"proteins"`
	Carbohydrates float64  `json:"carbohydrates"`
	Fats          float64  `json:"fats"`
	Sugars        *float64 `json:"sugars,omitempty"`
	SaturatedFats *float64 `json:"saturated_fats,omitempty"`
	Salt          *float64 `json:"salt,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
}

// Scale converts per-100 values into the amount contained in grams.
func (n NutritionFacts) Scale(grams float64) NutritionFacts {
	f := grams / 100
	return NutritionFacts{
		Calories:      n.Calories * f,
		Proteins:      n.Proteins * f,
		Carbohydrates: n.Carbohydrates * f,
		Fats:          n.Fats * f,
		Sugars:        scaleOpt(n.Sugars, f),
		SaturatedFats: scaleOpt(n.SaturatedFats, f),
		Salt:          scaleOpt(n.Salt, f),
		Sodium:        scaleOpt(n.Sodium, f),
		Fiber:         scaleOpt(n.Fiber, f),
	}
}

func (n NutritionFacts) Add(o NutritionFacts) NutritionFacts {
	return NutritionFacts{
		Calories:      n.Calories + o.Calories,
		Proteins:      n.Proteins + o.Proteins,
		Carbohydrates: n.Carbohydrates + o.Carbohydrates,
		Fats:          n.Fats + o.Fats,
		Sugars:        addOpt(n.Sugars, o.Sugars),
		SaturatedFats: addOpt(n.SaturatedFats, o.SaturatedFats),
		Salt:          addOpt(n.Salt, o.Salt),
		Sodium:        addOpt(n.Sodium, o.Sodium),
		Fiber:         addOpt(n.Fiber, o.Fiber),
	}
}

func scaleOpt(v *float64, f float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * f
	return &out
}

func addOpt(a, b *float64) *float64 {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		v := *b
		return &v
	case b == nil:
		v := *a
		return &v
	}
	v := *a + *b
	return &v
}

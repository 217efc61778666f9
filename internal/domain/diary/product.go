package diary

import "time"

type ProductSource string

const (
	ProductSourceUser          ProductSource = "user"
	ProductSourceOpenFoodFacts ProductSource = "open_food_facts"
)

type WeightUnit string

const (
	WeightUnitGram       WeightUnit = "g"
	WeightUnitMillilitre WeightUnit = "ml"
)

// Product nutrient values are per 100 units of WeightUnit.
type Product struct {
	ID      int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Brand   *string `json:"brand,omitempty"`
	Barcode *string `gorm:"uniqueIndex" json:"barcode,omitempty"`

	Calories      float64 `gorm:"not null" json:"calories"`
	Proteins      float64 `gorm:"not null" json:"proteins"`
	Carbohydrates float64 `gorm:"not null" json:"carbohydrates"`
	Fats          float64 `gorm:"not null" json:"fats"`

	Sugars        *float64 `json:"sugars,omitempty"`
	SaturatedFats *float64 `json:"saturated_fats,omitempty"`
	Salt          *float64 `json:"salt,omitempty"`
	Sodium        *float64 `json:"sodium,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`

	PackageWeight *float64 `json:"package_weight,omitempty"`
	ServingWeight *float64 `json:"serving_weight,omitempty"`

	WeightUnit WeightUnit    `gorm:"not null;default:'g'" json:"weight_unit"`
	Source     ProductSource `gorm:"not null;default:'user';index" json:"source"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

// HasIncompleteNutrition is true when any optional nutrient is unknown.
func (p Product) HasIncompleteNutrition() bool {
	return p.Sugars == nil || p.SaturatedFats == nil || p.Salt == nil || p.Sodium == nil || p.Fiber == nil
}

// NutritionFacts returns the per-100 values of the product.
func (p Product) NutritionFacts() NutritionFacts {
	return NutritionFacts{
		Calories:      p.Calories,
		Proteins:      p.Proteins,
		Carbohydrates: p.Carbohydrates,
		Fats:          p.Fats,
		Sugars:        p.Sugars,
		SaturatedFats: p.SaturatedFats,
		Salt:          p.Salt,
		Sodium:        p.Sodium,
		Fiber:         p.Fiber,
	}
}

// DefaultMeasurement is the variant offered for a product nobody has logged yet.
func (p Product) DefaultMeasurement() Measurement {
	if p.ServingWeight != nil {
		return Serving{Quantity: DefaultQuantities[KindServing], ServingWeight: *p.ServingWeight}
	}
	if p.PackageWeight != nil {
		return Package{Quantity: DefaultQuantities[KindPackage], PackageWeight: *p.PackageWeight}
	}
	return WeightUnitMeasurement{Weight: DefaultQuantities[KindWeightUnit]}
}

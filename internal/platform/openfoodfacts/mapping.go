package openfoodfacts

import (
	"strings"

	types "github.com/yungbote/foodyou-backend/internal/domain"
)

// ToDomain maps a remote product. ok is false when the product lacks a name,
// a barcode or any of the required macros.
func ToDomain(p Product) (*types.Product, bool) {
	name := strings.TrimSpace(p.ProductName)
	code := strings.TrimSpace(p.Code)
	n := p.Nutriments
	if name == "" || code == "" || !n.EnergyKcal100g.Valid() || !n.Proteins100g.Valid() || !n.Carbohydrates100g.Valid() || !n.Fat100g.Valid() {
		return nil, false
	}

	out := &types.Product{
		Name:          name,
		Barcode:       &code,
		Calories:      float64(*n.EnergyKcal100g),
		Proteins:      float64(*n.Proteins100g),
		Carbohydrates: float64(*n.Carbohydrates100g),
		Fats:          float64(*n.Fat100g),
		Sugars:        n.Sugars100g.ptr(),
		SaturatedFats: n.SaturatedFat100g.ptr(),
		Salt:          n.Salt100g.ptr(),
		Sodium:        n.Sodium100g.ptr(),
		Fiber:         n.Fiber100g.ptr(),
		WeightUnit:    weightUnit(p.ProductQuantityUnit, p.ServingQuantityUnit),
		Source:        types.ProductSourceOpenFoodFacts,
	}
	if brand := firstBrand(p.Brands); brand != "" {
		out.Brand = &brand
	}
	if v := p.ProductQuantity.ptr(); v != nil && *v > 0 {
		out.PackageWeight = v
	}
	if v := p.ServingQuantity.ptr(); v != nil && *v > 0 {
		out.ServingWeight = v
	}
	return out, true
}

// ToDomainList maps and drops unusable products.
func ToDomainList(ps []Product) []*types.Product {
	out := make([]*types.Product, 0, len(ps))
	for _, p := range ps {
		if d, ok := ToDomain(p); ok {
			out = append(out, d)
		}
	}
	return out
}

func firstBrand(brands string) string {
	for _, b := range strings.Split(brands, ",") {
		if b = strings.TrimSpace(b); b != "" {
			return b
		}
	}
	return ""
}

func weightUnit(units ...string) types.WeightUnit {
	for _, u := range units {
		switch strings.ToLower(strings.TrimSpace(u)) {
		case "ml", "l", "cl", "dl":
			return types.WeightUnitMillilitre
		case "g", "kg", "mg":
			return types.WeightUnitGram
		}
	}
	return types.WeightUnitGram
}

package openfoodfacts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Fields is the fixed field selection sent with every request.
const Fields = "product_name,code,nutriments,brands,serving_quantity,serving_quantity_unit,product_quantity,product_quantity_unit"

// Product is the subset of an Open Food Facts product the diary uses. The v1
// search and v2 product endpoints share this shape.
type Product struct {
	ProductName         string     `json:"product_name"`
	Code                string     `json:"code"`
	Brands              string     `json:"brands"`
	Nutriments          Nutriments `json:"nutriments"`
	ServingQuantity     *Number    `json:"serving_quantity"`
	ServingQuantityUnit string     `json:"serving_quantity_unit"`
	ProductQuantity     *Number    `json:"product_quantity"`
	ProductQuantityUnit string     `json:"product_quantity_unit"`
}

type Nutriments struct {
	EnergyKcal100g    *Number `json:"energy-kcal_100g"`
	Proteins100g      *Number `json:"proteins_100g"`
	Carbohydrates100g *Number `json:"carbohydrates_100g"`
	Fat100g           *Number `json:"fat_100g"`
	Sugars100g        *Number `json:"sugars_100g"`
	SaturatedFat100g  *Number `json:"saturated-fat_100g"`
	Salt100g          *Number `json:"salt_100g"`
	Sodium100g        *Number `json:"sodium_100g"`
	Fiber100g         *Number `json:"fiber_100g"`
}

// ProductResponse is the v2 single-product envelope.
type ProductResponse struct {
	Code    string   `json:"code"`
	Status  int      `json:"status"`
	Product *Product `json:"product"`
}

// PageResponse is the v1 search envelope.
type PageResponse struct {
	Count    Number    `json:"count"`
	Page     Number    `json:"page"`
	PageSize Number    `json:"page_size"`
	Products []Product `json:"products"`
}

// Number accepts both JSON numbers and numeric strings; the API mixes them.
// Blank or free-text strings decode to NaN, which Valid reports as absent.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(v, 0) {
			*n = Number(math.NaN())
			return nil
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Valid is false for a missing field and for a value that did not parse.
func (n *Number) Valid() bool {
	return n != nil && !math.IsNaN(float64(*n))
}

func (n *Number) ptr() *float64 {
	if !n.Valid() {
		return nil
	}
	v := float64(*n)
	return &v
}

package diary

import (
	"encoding/json"
	"fmt"
	"time"

	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
)

type MeasurementKind string

const (
	KindWeightUnit MeasurementKind = "weight_unit"
	KindPackage    MeasurementKind = "package"
	KindServing    MeasurementKind = "serving"
)

// MeasurementKinds lists every kind in display order.
var MeasurementKinds = []MeasurementKind{KindWeightUnit, KindPackage, KindServing}

func (k MeasurementKind) Valid() bool {
	switch k {
	case KindWeightUnit, KindPackage, KindServing:
		return true
	}
	return false
}

// DefaultQuantities is the suggested quantity for a kind with no logged history.
var DefaultQuantities = map[MeasurementKind]float64{
	KindWeightUnit: 100,
	KindPackage:    1,
	KindServing:    1,
}

type MeasurementStatus string

const (
	MeasurementActive  MeasurementStatus = "active"
	MeasurementDeleted MeasurementStatus = "deleted"
)

// WeightMeasurement is one logged portion row. CreatedAt is epoch seconds.
type WeightMeasurement struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	MealID    int64             `gorm:"not null;index:idx_weight_measurement_day_meal,priority:2" json:"meal_id"`
	EpochDay  int64             `gorm:"not null;index:idx_weight_measurement_day_meal,priority:1" json:"epoch_day"`
	ProductID int64             `gorm:"not null;index" json:"product_id"`
	Kind      MeasurementKind   `gorm:"not null" json:"kind"`
	Quantity  float64           `gorm:"not null" json:"quantity"`
	CreatedAt int64             `gorm:"not null;autoCreateTime" json:"created_at"`
	Status    MeasurementStatus `gorm:"not null;default:'active';index" json:"status"`
	// RemovedAt is the epoch second of the last removal; nil while active.
	RemovedAt *int64 `gorm:"index" json:"removed_at,omitempty"`
}

func (WeightMeasurement) TableName() string { return "weight_measurement" }

// Measurement is the sealed set of portion variants: WeightUnitMeasurement,
// Package and Serving.
type Measurement interface {
	Kind() MeasurementKind
	// Amount is the stored quantity: the weight for WeightUnitMeasurement, a count otherwise.
	Amount() float64
	// Grams is the absolute weight of the portion.
	Grams() float64
	isMeasurement()
}

type WeightUnitMeasurement struct {
	Weight float64
}

type Package struct {
	Quantity      float64
	PackageWeight float64
}

type Serving struct {
	Quantity      float64
	ServingWeight float64
}

func (WeightUnitMeasurement) Kind() MeasurementKind { return KindWeightUnit }
func (m WeightUnitMeasurement) Amount() float64     { return m.Weight }
func (m WeightUnitMeasurement) Grams() float64      { return m.Weight }
func (WeightUnitMeasurement) isMeasurement()        {}

func (Package) Kind() MeasurementKind { return KindPackage }
func (m Package) Amount() float64     { return m.Quantity }
func (m Package) Grams() float64      { return m.Quantity * m.PackageWeight }
func (Package) isMeasurement()        {}

func (Serving) Kind() MeasurementKind { return KindServing }
func (m Serving) Amount() float64     { return m.Quantity }
func (m Serving) Grams() float64      { return m.Quantity * m.ServingWeight }
func (Serving) isMeasurement()        {}

type measurementJSON struct {
	Kind     MeasurementKind `json:"kind"`
	Quantity float64         `json:"quantity"`
	Grams    float64         `json:"grams"`
}

func (m WeightUnitMeasurement) MarshalJSON() ([]byte, error) { return marshalMeasurement(m) }
func (m Package) MarshalJSON() ([]byte, error)               { return marshalMeasurement(m) }
func (m Serving) MarshalJSON() ([]byte, error)               { return marshalMeasurement(m) }

func marshalMeasurement(m Measurement) ([]byte, error) {
	return json.Marshal(measurementJSON{Kind: m.Kind(), Quantity: m.Amount(), Grams: m.Grams()})
}

// NewMeasurement resolves a stored (kind, quantity) pair against the product it
// was logged for. Package and serving kinds need the matching product weight.
func NewMeasurement(kind MeasurementKind, quantity float64, p *Product) (Measurement, error) {
	switch kind {
	case KindWeightUnit:
		return WeightUnitMeasurement{Weight: quantity}, nil
	case KindPackage:
		if p == nil || p.PackageWeight == nil {
			return nil, fmt.Errorf("%w: product has no package weight", domainerr.ErrInvalidArgument)
		}
		return Package{Quantity: quantity, PackageWeight: *p.PackageWeight}, nil
	case KindServing:
		if p == nil || p.ServingWeight == nil {
			return nil, fmt.Errorf("%w: product has no serving weight", domainerr.ErrInvalidArgument)
		}
		return Serving{Quantity: quantity, ServingWeight: *p.ServingWeight}, nil
	}
	return nil, fmt.Errorf("%w: unknown measurement kind %q", domainerr.ErrInvalidArgument, kind)
}

// MeasuredProduct is an active measurement joined with its product.
type MeasuredProduct struct {
	MeasurementID int64             `json:"measurement_id"`
	MealID        int64             `json:"meal_id"`
	Date          time.Time         `json:"date"`
	CreatedAt     time.Time         `json:"created_at"`
	Status        MeasurementStatus `json:"status"`
	Product       Product           `json:"product"`
	Measurement   Measurement       `json:"measurement"`
}

func (m MeasuredProduct) NutritionFacts() NutritionFacts {
	return m.Product.NutritionFacts().Scale(m.Measurement.Grams())
}

// NewMeasuredProduct fails with ErrInvalidArgument when the row's kind needs a
// product weight the product does not carry.
func NewMeasuredProduct(wm WeightMeasurement, p Product) (MeasuredProduct, error) {
	m, err := NewMeasurement(wm.Kind, wm.Quantity, &p)
	if err != nil {
		return MeasuredProduct{}, err
	}
	return MeasuredProduct{
		MeasurementID: wm.ID,
		MealID:        wm.MealID,
		Date:          FromEpochDay(wm.EpochDay),
		CreatedAt:     time.Unix(wm.CreatedAt, 0).UTC(),
		Status:        wm.Status,
		Product:       p,
		Measurement:   m,
	}, nil
}

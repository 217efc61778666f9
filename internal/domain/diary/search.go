package diary

type SearchEntryKind string

const (
	SearchEntryMeasurement SearchEntryKind = "measurement"
	SearchEntrySuggestion  SearchEntryKind = "suggestion"
)

// ProductWithMeasurement is one local search row: a product plus the measurement
// chosen for it (today's one when present, else the latest one, if any).
type ProductWithMeasurement struct {
	Product           Product            `json:"product"`
	Measurement       *WeightMeasurement `json:"measurement,omitempty"`
	TodaysMeasurement bool               `json:"todays_measurement"`
}

// ProductSearchEntry is a Measurement entry for products already logged to the
// meal and date, and a Suggestion entry otherwise.
type ProductSearchEntry struct {
	Kind          SearchEntryKind `json:"kind"`
	Product       Product         `json:"product"`
	MeasurementID *int64          `json:"measurement_id,omitempty"`
	Measurement   Measurement     `json:"measurement"`
}

type QuantitySuggestion struct {
	Product     Product                     `json:"product"`
	Suggestions map[MeasurementKind]float64 `json:"suggestions"`
}

package domain

import "github.com/yungbote/foodyou-backend/internal/domain/diary"

type (
	Meal                   = diary.Meal
	Product                = diary.Product
	ProductSource          = diary.ProductSource
	WeightUnit             = diary.WeightUnit
	WeightMeasurement      = diary.WeightMeasurement
	MeasurementKind        = diary.MeasurementKind
	MeasurementStatus      = diary.MeasurementStatus
	Measurement            = diary.Measurement
	WeightUnitMeasurement  = diary.WeightUnitMeasurement
	Package                = diary.Package
	Serving                = diary.Serving
	MeasuredProduct        = diary.MeasuredProduct
	NutritionFacts         = diary.NutritionFacts
	DailyGoals             = diary.DailyGoals
	MealsCardSettings      = diary.MealsCardSettings
	DiaryMeal              = diary.DiaryMeal
	DiaryDay               = diary.DiaryDay
	ProductQuery           = diary.ProductQuery
	RemoteKey              = diary.RemoteKey
	Preference             = diary.Preference
	ProductWithMeasurement = diary.ProductWithMeasurement
	ProductSearchEntry     = diary.ProductSearchEntry
	SearchEntryKind        = diary.SearchEntryKind
	QuantitySuggestion     = diary.QuantitySuggestion
)

const (
	ProductSourceUser          = diary.ProductSourceUser
	ProductSourceOpenFoodFacts = diary.ProductSourceOpenFoodFacts

	WeightUnitGram       = diary.WeightUnitGram
	WeightUnitMillilitre = diary.WeightUnitMillilitre

	KindWeightUnit = diary.KindWeightUnit
	KindPackage    = diary.KindPackage
	KindServing    = diary.KindServing

	MeasurementActive  = diary.MeasurementActive
	MeasurementDeleted = diary.MeasurementDeleted

	SearchEntryMeasurement = diary.SearchEntryMeasurement
	SearchEntrySuggestion  = diary.SearchEntrySuggestion
)

var (
	DefaultGoals      = diary.DefaultGoals
	DefaultQuantities = diary.DefaultQuantities
	MeasurementKinds  = diary.MeasurementKinds

	NewMeasurement     = diary.NewMeasurement
	NewMeasuredProduct = diary.NewMeasuredProduct
	EpochDay           = diary.EpochDay
	FromEpochDay       = diary.FromEpochDay
	ParseDate          = diary.ParseDate
	FormatDate         = diary.FormatDate
	ClockTime          = diary.ClockTime
)

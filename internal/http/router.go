package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/foodyou-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodyou-backend/internal/http/middleware"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	GoalsHandler       *httpH.GoalsHandler
	DiaryHandler       *httpH.DiaryHandler
	MealHandler        *httpH.MealHandler
	ProductHandler     *httpH.ProductHandler
	MeasurementHandler *httpH.MeasurementHandler
	SettingsHandler    *httpH.SettingsHandler
	RealtimeHandler    *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Goals
		if cfg.GoalsHandler != nil {
			api.GET("/goals", cfg.GoalsHandler.GetGoals)
			api.PUT("/goals", cfg.GoalsHandler.SetGoals)
			api.GET("/goals/stream", cfg.GoalsHandler.StreamGoals)
		}

		// Diary
		if cfg.DiaryHandler != nil {
			api.GET("/diary/:date", cfg.DiaryHandler.GetDay)
			api.GET("/diary/:date/stream", cfg.DiaryHandler.StreamDay)
		}

		// Meals
		if cfg.MealHandler != nil {
			api.GET("/meals", cfg.MealHandler.ListMeals)
			api.POST("/meals", cfg.MealHandler.CreateMeal)
			api.PUT("/meals/ranks", cfg.MealHandler.UpdateRanks)
			api.GET("/meals/:id", cfg.MealHandler.GetMeal)
			api.PUT("/meals/:id", cfg.MealHandler.UpdateMeal)
			api.DELETE("/meals/:id", cfg.MealHandler.DeleteMeal)
		}

		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products", cfg.ProductHandler.CreateProduct)
			api.GET("/products/search", cfg.ProductHandler.Search)
			api.GET("/products/:id", cfg.ProductHandler.GetProduct)
			api.PUT("/products/:id", cfg.ProductHandler.UpdateProduct)
			api.DELETE("/products/:id", cfg.ProductHandler.DeleteProduct)
			api.GET("/products/:id/quantity-suggestion", cfg.ProductHandler.GetQuantitySuggestion)
			api.GET("/product-queries", cfg.ProductHandler.ListQueries)
		}

		// Measurements
		if cfg.MeasurementHandler != nil {
			api.GET("/measurements", cfg.MeasurementHandler.ListMeasurements)
			api.POST("/measurements", cfg.MeasurementHandler.AddMeasurement)
			api.POST("/measurements/purge", cfg.MeasurementHandler.PurgeDeleted)
			api.GET("/measurements/:id", cfg.MeasurementHandler.GetMeasurement)
			api.PUT("/measurements/:id", cfg.MeasurementHandler.UpdateMeasurement)
			api.GET("/measurements/:id/stream", cfg.MeasurementHandler.StreamMeasurement)
			api.POST("/measurements/:id/remove", cfg.MeasurementHandler.RemoveMeasurement)
			api.POST("/measurements/:id/restore", cfg.MeasurementHandler.RestoreMeasurement)
		}

		// Settings
		if cfg.SettingsHandler != nil {
			api.GET("/settings/meals-card", cfg.SettingsHandler.GetMealsCard)
			api.PUT("/settings/meals-card", cfg.SettingsHandler.SetMealsCard)
			api.GET("/settings/selected-date", cfg.SettingsHandler.GetSelectedDate)
			api.PUT("/settings/selected-date", cfg.SettingsHandler.SetSelectedDate)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}
	}

	return r
}

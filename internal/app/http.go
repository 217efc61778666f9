package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodyou-backend/internal/http"
	httpH "github.com/yungbote/foodyou-backend/internal/http/handlers"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

const serviceName = "foodyou"

type Handlers struct {
	Health      *httpH.HealthHandler
	Goals       *httpH.GoalsHandler
	Diary       *httpH.DiaryHandler
	Meal        *httpH.MealHandler
	Product     *httpH.ProductHandler
	Measurement *httpH.MeasurementHandler
	Settings    *httpH.SettingsHandler
	Realtime    *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(clients.DB),
		Goals:       httpH.NewGoalsHandler(log, services.Diary),
		Diary:       httpH.NewDiaryHandler(log, services.Diary),
		Meal:        httpH.NewMealHandler(log, services.Diary),
		Product:     httpH.NewProductHandler(log, services.Diary),
		Measurement: httpH.NewMeasurementHandler(log, services.Diary),
		Settings:    httpH.NewSettingsHandler(log, services.Diary),
		Realtime:    httpH.NewRealtimeHandler(log, hub),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		ServiceName:        serviceName,
		CORSOrigins:        cfg.CORSOrigins,
		HealthHandler:      handlers.Health,
		GoalsHandler:       handlers.Goals,
		DiaryHandler:       handlers.Diary,
		MealHandler:        handlers.Meal,
		ProductHandler:     handlers.Product,
		MeasurementHandler: handlers.Measurement,
		SettingsHandler:    handlers.Settings,
		RealtimeHandler:    handlers.Realtime,
	})
}

package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodyou-backend/internal/data/repos"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type Repos struct {
	Meal         repos.MealRepo
	Product      repos.ProductRepo
	Measurement  repos.MeasurementRepo
	ProductQuery repos.ProductQueryRepo
	RemoteKey    repos.RemoteKeyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Meal:         repos.NewMealRepo(db, log),
		Product:      repos.NewProductRepo(db, log),
		Measurement:  repos.NewMeasurementRepo(db, log),
		ProductQuery: repos.NewProductQueryRepo(db, log),
		RemoteKey:    repos.NewRemoteKeyRepo(db, log),
	}
}

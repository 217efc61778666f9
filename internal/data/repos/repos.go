package repos

import (
	"github.com/yungbote/foodyou-backend/internal/data/repos/diary"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type MealRepo = diary.MealRepo
type ProductRepo = diary.ProductRepo
type ProductFilter = diary.ProductFilter
type MeasurementRepo = diary.MeasurementRepo
type ProductQueryRepo = diary.ProductQueryRepo
type RemoteKeyRepo = diary.RemoteKeyRepo

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo { return diary.NewMealRepo(db, baseLog) }
func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return diary.NewProductRepo(db, baseLog)
}
func NewMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) MeasurementRepo {
	return diary.NewMeasurementRepo(db, baseLog)
}
func NewProductQueryRepo(db *gorm.DB, baseLog *logger.Logger) ProductQueryRepo {
	return diary.NewProductQueryRepo(db, baseLog)
}
func NewRemoteKeyRepo(db *gorm.DB, baseLog *logger.Logger) RemoteKeyRepo {
	return diary.NewRemoteKeyRepo(db, baseLog)
}

package diary

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type MealRepo interface {
	List(dbc dbctx.Context) ([]*types.Meal, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Meal, error)
	// Create appends the meal after the current last rank.
	Create(dbc dbctx.Context, meal *types.Meal) (*types.Meal, error)
	Update(dbc dbctx.Context, meal *types.Meal) (bool, error)
	// Delete removes the meal and every measurement logged against it.
	Delete(dbc dbctx.Context, id int64) (bool, error)
	UpdateRanks(dbc dbctx.Context, ranks map[int64]int) error
}

type mealRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo {
	return &mealRepo{db: db, log: baseLog.With("repo", "MealRepo")}
}

func (r *mealRepo) List(dbc dbctx.Context) ([]*types.Meal, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Meal
	if err := t.WithContext(dbc.Ctx).
		Order("rank ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mealRepo) GetByID(dbc dbctx.Context, id int64) (*types.Meal, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var m types.Meal
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mealRepo) Create(dbc dbctx.Context, meal *types.Meal) (*types.Meal, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		var maxRank sql.NullInt64
		if err := tx.Model(&types.Meal{}).Select("MAX(rank)").Row().Scan(&maxRank); err != nil {
			return err
		}
		meal.Rank = 0
		if maxRank.Valid {
			meal.Rank = int(maxRank.Int64) + 1
		}
		return tx.Create(meal).Error
	})
	if err != nil {
		return nil, err
	}
	return meal, nil
}

func (r *mealRepo) Update(dbc dbctx.Context, meal *types.Meal) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Meal{}).
		Where("id = ?", meal.ID).
		Updates(map[string]any{
			"name":      meal.Name,
			"from_time": meal.From,
			"to_time":   meal.To,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *mealRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var found bool
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", id).Delete(&types.WeightMeasurement{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&types.Meal{})
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}

func (r *mealRepo) UpdateRanks(dbc dbctx.Context, ranks map[int64]int) error {
	if len(ranks) == 0 {
		return nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		for id, rank := range ranks {
			if err := tx.Model(&types.Meal{}).
				Where("id = ?", id).
				Update("rank", rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

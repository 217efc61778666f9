package diary

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type MeasurementRepo interface {
	Create(dbc dbctx.Context, wm *types.WeightMeasurement) (*types.WeightMeasurement, error)
	GetByID(dbc dbctx.Context, id int64) (*types.WeightMeasurement, error)
	// ListByDay returns measurements of one day in creation order. A nil mealID
	// means every meal; an empty status means every status.
	ListByDay(dbc dbctx.Context, epochDay int64, mealID *int64, status types.MeasurementStatus) ([]*types.WeightMeasurement, error)
	// LatestByKind returns the newest active measurement of each kind logged for a product.
	LatestByKind(dbc dbctx.Context, productID int64) (map[types.MeasurementKind]*types.WeightMeasurement, error)
	// UpdateActive rewrites kind and quantity; it reports false when no active row matched.
	UpdateActive(dbc dbctx.Context, id int64, kind types.MeasurementKind, quantity float64) (bool, error)
	// Transition moves a row from one status to another; it reports false when
	// the row is missing or not in the from status. Moving to deleted stamps
	// removed_at with at, any other target clears it.
	Transition(dbc dbctx.Context, id int64, from, to types.MeasurementStatus, at int64) (bool, error)
	// CountPurgeable counts soft-deleted rows removed before the epoch second cutoff.
	CountPurgeable(dbc dbctx.Context, before int64) (int64, error)
	// PurgeDeleted hard-deletes soft-deleted rows removed before the epoch second cutoff.
	PurgeDeleted(dbc dbctx.Context, before int64) (int64, error)
}

type measurementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) MeasurementRepo {
	return &measurementRepo{db: db, log: baseLog.With("repo", "MeasurementRepo")}
}

func (r *measurementRepo) Create(dbc dbctx.Context, wm *types.WeightMeasurement) (*types.WeightMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if wm.Status == "" {
		wm.Status = types.MeasurementActive
	}
	if err := t.WithContext(dbc.Ctx).Create(wm).Error; err != nil {
		return nil, err
	}
	return wm, nil
}

func (r *measurementRepo) GetByID(dbc dbctx.Context, id int64) (*types.WeightMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var wm types.WeightMeasurement
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).First(&wm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wm, nil
}

func (r *measurementRepo) ListByDay(dbc dbctx.Context, epochDay int64, mealID *int64, status types.MeasurementStatus) ([]*types.WeightMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	q := t.WithContext(dbc.Ctx).Where("epoch_day = ?", epochDay)
	if mealID != nil {
		q = q.Where("meal_id = ?", *mealID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []*types.WeightMeasurement
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *measurementRepo) LatestByKind(dbc dbctx.Context, productID int64) (map[types.MeasurementKind]*types.WeightMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := make(map[types.MeasurementKind]*types.WeightMeasurement)
	for _, kind := range types.MeasurementKinds {
		var wm types.WeightMeasurement
		err := t.WithContext(dbc.Ctx).
			Where("product_id = ? AND kind = ? AND status = ?", productID, kind, types.MeasurementActive).
			Order("created_at DESC, id DESC").
			First(&wm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[kind] = &wm
	}
	return out, nil
}

func (r *measurementRepo) UpdateActive(dbc dbctx.Context, id int64, kind types.MeasurementKind, quantity float64) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.WeightMeasurement{}).
		Where("id = ? AND status = ?", id, types.MeasurementActive).
		Updates(map[string]any{
			"kind":     kind,
			"quantity": quantity,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *measurementRepo) Transition(dbc dbctx.Context, id int64, from, to types.MeasurementStatus, at int64) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var removedAt *int64
	if to == types.MeasurementDeleted {
		removedAt = &at
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.WeightMeasurement{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"removed_at": removedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func purgeable(q *gorm.DB, before int64) *gorm.DB {
	return q.Where("status = ? AND removed_at IS NOT NULL AND removed_at < ?", types.MeasurementDeleted, before)
}

func (r *measurementRepo) CountPurgeable(dbc dbctx.Context, before int64) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	err := purgeable(t.WithContext(dbc.Ctx).Model(&types.WeightMeasurement{}), before).Count(&n).Error
	return n, err
}

func (r *measurementRepo) PurgeDeleted(dbc dbctx.Context, before int64) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := purgeable(t.WithContext(dbc.Ctx), before).
		Delete(&types.WeightMeasurement{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Info("purged deleted measurements", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

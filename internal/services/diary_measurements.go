package services

import (
	"context"
	"fmt"
	"time"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

var measurementChannels = []string{realtime.ChannelMeasurements, realtime.ChannelProducts}

func (s *diaryService) ObserveMeasurements(ctx context.Context, mealID *int64, date time.Time) <-chan []types.MeasuredProduct {
	return watch(s, ctx, measurementChannels, func(ctx context.Context) ([]types.MeasuredProduct, bool, error) {
		out, err := s.ListMeasurements(ctx, mealID, date)
		return out, err == nil, err
	})
}

// ListMeasurements returns the active measurements of a day, optionally for one meal.
func (s *diaryService) ListMeasurements(ctx context.Context, mealID *int64, date time.Time) ([]types.MeasuredProduct, error) {
	rows, err := s.measurements.ListByDay(read(ctx), types.EpochDay(date), mealID, types.MeasurementActive)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return s.joinProducts(ctx, rows)
}

func (s *diaryService) ObserveProductByMeasurementID(ctx context.Context, id int64) <-chan *types.MeasuredProduct {
	return watch(s, ctx, measurementChannels, func(ctx context.Context) (*types.MeasuredProduct, bool, error) {
		mp, err := s.GetMeasurement(ctx, id)
		return mp, mp != nil, err
	})
}

// GetMeasurement returns nil, nil when the measurement or its product is gone.
func (s *diaryService) GetMeasurement(ctx context.Context, id int64) (*types.MeasuredProduct, error) {
	wm, err := s.measurements.GetByID(read(ctx), id)
	if err != nil || wm == nil {
		return nil, err
	}
	joined, err := s.joinProducts(ctx, []*types.WeightMeasurement{wm})
	if err != nil || len(joined) == 0 {
		return nil, err
	}
	return &joined[0], nil
}

func (s *diaryService) AddMeasurement(dbc dbctx.Context, date time.Time, mealID, productID int64, m types.Measurement) (*types.WeightMeasurement, error) {
	if m == nil || m.Amount() <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domainerr.ErrInvalidArgument)
	}

	var wm *types.WeightMeasurement
	err := s.inTx(dbc, func(inner dbctx.Context) error {
		meal, err := s.meals.GetByID(inner, mealID)
		if err != nil {
			return err
		}
		if meal == nil {
			return fmt.Errorf("meal %d: %w", mealID, domainerr.ErrNotFound)
		}
		product, err := s.products.GetByID(inner, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %d: %w", productID, domainerr.ErrNotFound)
		}
		if _, err := types.NewMeasurement(m.Kind(), m.Amount(), product); err != nil {
			return err
		}
		wm, err = s.measurements.Create(inner, &types.WeightMeasurement{
			MealID:    mealID,
			ProductID: productID,
			EpochDay:  types.EpochDay(date),
			Kind:      m.Kind(),
			Quantity:  m.Amount(),
			CreatedAt: s.now().Unix(),
			Status:    types.MeasurementActive,
		})
		if err != nil {
			return fmt.Errorf("add measurement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.changed(realtime.ChannelMeasurements)
	return wm, nil
}

// UpdateMeasurement only applies to an active measurement. A missing or
// deleted target is logged and ignored.
func (s *diaryService) UpdateMeasurement(dbc dbctx.Context, id int64, m types.Measurement) error {
	if m == nil || m.Amount() <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domainerr.ErrInvalidArgument)
	}
	var updated bool
	err := s.inTx(dbc, func(inner dbctx.Context) error {
		wm, err := s.measurements.GetByID(inner, id)
		if err != nil {
			return err
		}
		if wm == nil || wm.Status != types.MeasurementActive {
			return nil
		}
		product, err := s.products.GetByID(inner, wm.ProductID)
		if err != nil {
			return err
		}
		if _, err := types.NewMeasurement(m.Kind(), m.Amount(), product); err != nil {
			return err
		}
		updated, err = s.measurements.UpdateActive(inner, id, m.Kind(), m.Amount())
		if err != nil {
			return fmt.Errorf("update measurement: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !updated {
		s.log.Warn("update of missing or inactive measurement ignored", "measurementID", id)
		return nil
	}
	s.changed(realtime.ChannelMeasurements)
	return nil
}

func (s *diaryService) RemoveMeasurement(dbc dbctx.Context, id int64) error {
	return s.transition(dbc, id, types.MeasurementActive, types.MeasurementDeleted)
}

func (s *diaryService) RestoreMeasurement(dbc dbctx.Context, id int64) error {
	return s.transition(dbc, id, types.MeasurementDeleted, types.MeasurementActive)
}

func (s *diaryService) transition(dbc dbctx.Context, id int64, from, to types.MeasurementStatus) error {
	ok, err := s.measurements.Transition(dbc, id, from, to, s.now().Unix())
	if err != nil {
		return fmt.Errorf("measurement %s -> %s: %w", from, to, err)
	}
	if !ok {
		s.log.Warn("measurement transition ignored", "measurementID", id, "from", from, "to", to)
		return nil
	}
	s.changed(realtime.ChannelMeasurements)
	return nil
}

func (s *diaryService) PurgeDeletedMeasurements(dbc dbctx.Context, before time.Time) (int64, error) {
	n, err := s.measurements.PurgeDeleted(dbc, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("purge measurements: %w", err)
	}
	if n > 0 {
		s.changed(realtime.ChannelMeasurements)
	}
	return n, nil
}

// joinProducts pairs rows with their products. Rows whose product is missing
// or lacks the weight their kind needs are dropped and logged.
func (s *diaryService) joinProducts(ctx context.Context, rows []*types.WeightMeasurement) ([]types.MeasuredProduct, error) {
	out := make([]types.MeasuredProduct, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			ids = append(ids, r.ProductID)
		}
	}
	products, err := s.products.GetByIDs(read(ctx), ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[int64]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, r := range rows {
		p, ok := byID[r.ProductID]
		if !ok {
			s.log.Warn("measurement references missing product; skipped", "measurementID", r.ID, "productID", r.ProductID)
			continue
		}
		mp, err := types.NewMeasuredProduct(*r, *p)
		if err != nil {
			s.log.Warn("measurement not resolvable against product; skipped", "measurementID", r.ID, "productID", r.ProductID, "error", err)
			continue
		}
		out = append(out, mp)
	}
	return out, nil
}

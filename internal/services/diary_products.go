package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/foodyou-backend/internal/data/db"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	domainerr "github.com/yungbote/foodyou-backend/internal/pkg/errors"
	"github.com/yungbote/foodyou-backend/internal/pkg/pointers"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

func (s *diaryService) CreateProduct(dbc dbctx.Context, p *types.Product) (*types.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.ID = 0
	p.Source = types.ProductSourceUser
	out, err := s.products.Create(dbc, p)
	if err != nil {
		return nil, mapWriteErr("create product", err)
	}
	s.changed(realtime.ChannelProducts)
	return out, nil
}

func (s *diaryService) GetProduct(dbc dbctx.Context, id int64) (*types.Product, error) {
	p, err := s.products.GetByID(dbc, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, domainerr.ErrNotFound)
	}
	return p, nil
}

func (s *diaryService) UpdateProduct(dbc dbctx.Context, p *types.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	ok, err := s.products.Update(dbc, p)
	if err != nil {
		return mapWriteErr("update product", err)
	}
	if !ok {
		return fmt.Errorf("product %d: %w", p.ID, domainerr.ErrNotFound)
	}
	s.changed(realtime.ChannelProducts)
	return nil
}

// DeleteProduct removes the product together with its measurements.
func (s *diaryService) DeleteProduct(dbc dbctx.Context, id int64) error {
	ok, err := s.products.Delete(dbc, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !ok {
		return fmt.Errorf("product %d: %w", id, domainerr.ErrNotFound)
	}
	s.changed(realtime.ChannelProducts, realtime.ChannelMeasurements)
	return nil
}

func (s *diaryService) ObserveProduct(ctx context.Context, id int64) <-chan *types.Product {
	return watch(s, ctx, []string{realtime.ChannelProducts}, func(ctx context.Context) (*types.Product, bool, error) {
		p, err := s.products.GetByID(read(ctx), id)
		return p, p != nil, err
	})
}

// ObserveQuantitySuggestionByProductID emits nothing while the product is absent.
func (s *diaryService) ObserveQuantitySuggestionByProductID(ctx context.Context, productID int64) <-chan *types.QuantitySuggestion {
	return watch(s, ctx, []string{realtime.ChannelProducts, realtime.ChannelMeasurements}, func(ctx context.Context) (*types.QuantitySuggestion, bool, error) {
		qs, err := s.GetQuantitySuggestion(ctx, productID)
		return qs, qs != nil, err
	})
}

// GetQuantitySuggestion merges the latest logged quantity per kind over the
// defaults. It returns nil, nil for a missing product.
func (s *diaryService) GetQuantitySuggestion(ctx context.Context, productID int64) (*types.QuantitySuggestion, error) {
	p, err := s.products.GetByID(read(ctx), productID)
	if err != nil || p == nil {
		return nil, err
	}
	latest, err := s.measurements.LatestByKind(read(ctx), productID)
	if err != nil {
		return nil, err
	}
	out := &types.QuantitySuggestion{Product: *p, Suggestions: make(map[types.MeasurementKind]float64, len(types.MeasurementKinds))}
	for _, kind := range types.MeasurementKinds {
		out.Suggestions[kind] = types.DefaultQuantities[kind]
		if wm, ok := latest[kind]; ok && wm != nil {
			out.Suggestions[kind] = wm.Quantity
		}
	}
	return out, nil
}

func (s *diaryService) ObserveProductQueries(ctx context.Context, limit int) <-chan []*types.ProductQuery {
	return watch(s, ctx, []string{realtime.ChannelProductQueries}, func(ctx context.Context) ([]*types.ProductQuery, bool, error) {
		qs, err := s.queries.ListRecent(read(ctx), limit)
		return qs, err == nil, err
	})
}

func (s *diaryService) ListProductQueries(dbc dbctx.Context, limit int) ([]*types.ProductQuery, error) {
	return s.queries.ListRecent(dbc, limit)
}

func validateProduct(p *types.Product) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", domainerr.ErrInvalidArgument)
	}
	name, err := normalizeName(p.Name)
	if err != nil {
		return err
	}
	p.Name = name
	if p.Calories < 0 || p.Proteins < 0 || p.Carbohydrates < 0 || p.Fats < 0 {
		return fmt.Errorf("%w: nutrients must not be negative", domainerr.ErrInvalidArgument)
	}
	for _, w := range []*float64{p.PackageWeight, p.ServingWeight} {
		if w != nil && *w <= 0 {
			return fmt.Errorf("%w: weights must be positive", domainerr.ErrInvalidArgument)
		}
	}
	if p.Barcode != nil {
		code := strings.TrimSpace(*p.Barcode)
		if code == "" {
			p.Barcode = nil
		} else {
			p.Barcode = pointers.String(code)
		}
	}
	switch p.WeightUnit {
	case "":
		p.WeightUnit = types.WeightUnitGram
	case types.WeightUnitGram, types.WeightUnitMillilitre:
	default:
		return fmt.Errorf("%w: unknown weight unit %q", domainerr.ErrInvalidArgument, p.WeightUnit)
	}
	return nil
}

func mapWriteErr(op string, err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domainerr.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

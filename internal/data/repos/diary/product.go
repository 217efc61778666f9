package diary

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, p *types.Product) (*types.Product, error)
	GetByID(dbc dbctx.Context, id int64) (*types.Product, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Product, error)
	GetByBarcode(dbc dbctx.Context, barcode string) (*types.Product, error)
	Update(dbc dbctx.Context, p *types.Product) (bool, error)
	// Delete removes the product and every measurement of it.
	Delete(dbc dbctx.Context, id int64) (bool, error)
	// UpsertRemote inserts remote products keyed by barcode. Existing rows are
	// refreshed only when they came from the remote source too.
	UpsertRemote(dbc dbctx.Context, products []*types.Product) error
	Search(dbc dbctx.Context, f ProductFilter, limit, offset int) ([]*types.ProductWithMeasurement, error)
}

// ProductFilter narrows a product search. Barcode wins over Query when both are set.
// MealID and EpochDay select which measurement counts as today's.
type ProductFilter struct {
	MealID   int64
	EpochDay int64
	Query    string
	Barcode  string
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, p *types.Product) (*types.Product, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) GetByID(dbc dbctx.Context, id int64) (*types.Product, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var p types.Product
	err := t.WithContext(dbc.Ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*types.Product, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Product
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) GetByBarcode(dbc dbctx.Context, barcode string) (*types.Product, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, nil
	}
	var p types.Product
	err := t.WithContext(dbc.Ctx).Where("barcode = ?", barcode).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Update(dbc dbctx.Context, p *types.Product) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Model(&types.Product{}).
		Where("id = ?", p.ID).
		Select(productMutableColumns).
		Updates(p)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) Delete(dbc dbctx.Context, id int64) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var found bool
	err := t.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&types.WeightMeasurement{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&types.Product{})
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}

// Columns a user edit or a remote refresh may overwrite.
var productMutableColumns = []string{
	"name", "brand", "barcode",
	"calories", "proteins", "carbohydrates", "fats",
	"sugars", "saturated_fats", "salt", "sodium", "fiber",
	"package_weight", "serving_weight", "weight_unit", "updated_at",
}

func (r *productRepo) UpsertRemote(dbc dbctx.Context, products []*types.Product) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	rows := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if p == nil || p.Barcode == nil || strings.TrimSpace(*p.Barcode) == "" {
			continue
		}
		p.Source = types.ProductSourceOpenFoodFacts
		rows = append(rows, p)
	}
	if len(rows) == 0 {
		return nil
	}
	updates := make([]string, 0, len(productMutableColumns))
	for _, c := range productMutableColumns {
		if c != "barcode" {
			updates = append(updates, c)
		}
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barcode"}},
			DoUpdates: clause.AssignmentColumns(updates),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Eq{Column: clause.Column{Table: types.Product{}.TableName(), Name: "source"}, Value: string(types.ProductSourceOpenFoodFacts)},
			}},
		}).
		Create(&rows).Error
}

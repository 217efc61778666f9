package diary

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type ProductQueryRepo interface {
	// Upsert records query as used at the given time, deduplicated by text.
	Upsert(dbc dbctx.Context, query string, usedAt time.Time) error
	ListRecent(dbc dbctx.Context, limit int) ([]*types.ProductQuery, error)
}

type productQueryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductQueryRepo(db *gorm.DB, baseLog *logger.Logger) ProductQueryRepo {
	return &productQueryRepo{db: db, log: baseLog.With("repo", "ProductQueryRepo")}
}

func (r *productQueryRepo) Upsert(dbc dbctx.Context, query string, usedAt time.Time) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	row := &types.ProductQuery{Query: query, LastUsedAt: usedAt.Unix()}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_used_at"}),
		}).
		Create(row).Error
}

func (r *productQueryRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.ProductQuery, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if limit <= 0 {
		limit = 20
	}
	var out []*types.ProductQuery
	if err := t.WithContext(dbc.Ctx).
		Order("last_used_at DESC, query ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

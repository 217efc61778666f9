package diary

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type RemoteKeyRepo interface {
	Get(dbc dbctx.Context, queryKey string) (*types.RemoteKey, error)
	Upsert(dbc dbctx.Context, key *types.RemoteKey) error
	Delete(dbc dbctx.Context, queryKey string) error
}

type remoteKeyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRemoteKeyRepo(db *gorm.DB, baseLog *logger.Logger) RemoteKeyRepo {
	return &remoteKeyRepo{db: db, log: baseLog.With("repo", "RemoteKeyRepo")}
}

func (r *remoteKeyRepo) Get(dbc dbctx.Context, queryKey string) (*types.RemoteKey, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var k types.RemoteKey
	err := t.WithContext(dbc.Ctx).Where("query_key = ?", queryKey).First(&k).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *remoteKeyRepo) Upsert(dbc dbctx.Context, key *types.RemoteKey) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "query_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"next_page", "end_of_pagination", "updated_at"}),
		}).
		Create(key).Error
}

func (r *remoteKeyRepo) Delete(dbc dbctx.Context, queryKey string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("query_key = ?", queryKey).Delete(&types.RemoteKey{}).Error
}

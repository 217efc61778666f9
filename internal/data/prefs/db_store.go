package prefs

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type dbStore struct {
	db     *gorm.DB
	log    *logger.Logger
	notify Notifier
}

// NewDBStore keeps preferences in the preference table of db.
func NewDBStore(db *gorm.DB, notify Notifier, baseLog *logger.Logger) Store {
	return &dbStore{db: db, notify: notify, log: baseLog.With("store", "DBPreferenceStore")}
}

func (s *dbStore) Get(ctx context.Context, key string) (string, bool, error) {
	var p types.Preference
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return p.Value, true, nil
}

func (s *dbStore) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var rows []types.Preference
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *dbStore) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]types.Preference, 0, len(values))
	for k, v := range values {
		rows = append(rows, types.Preference{Key: k, Value: v})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return err
	}
	s.changed(keysOf(values))
	return nil
}

func (s *dbStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Delete(&types.Preference{}).Error; err != nil {
		return err
	}
	s.changed(keys)
	return nil
}

func (s *dbStore) changed(keys []string) {
	if s.notify != nil {
		s.notify.NotifyPreferences(keys...)
	}
}

package gormstore

import (
	"context"
	"encoding/json"

	storagedomain "github.com/auroradigital/billingdesk/internal/storage/domain"
	"github.com/auroradigital/billingdesk/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Store struct {
	db   *gorm.DB
	log  *zap.Logger
	repo repository.Repository[storagedomain.Entry]
}

func New(p StoreParam) storagedomain.Store {
	return &Store{
		db:   p.DB,
		log:  p.Log.Named("storage.gorm"),
		repo: repository.ProvideStore[storagedomain.Entry](p.DB),
	}
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := s.repo.FindOne(ctx, &storagedomain.Entry{Key: key})
	if err != nil {
		return nil, false, err
	}
	if entry == nil || len(entry.Value) == 0 {
		return nil, false, nil
	}
	if !json.Valid(entry.Value) {
		// Malformed persisted data is discarded, not surfaced.
		s.log.Warn("discarding malformed blob", zap.String("key", key))
		return nil, false, nil
	}
	return entry.Value, true, nil
}

func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	entry := storagedomain.Entry{
		Key:   key,
		Value: datatypes.JSON(value),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

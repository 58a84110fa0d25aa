package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type item struct {
	Namespace string    `gorm:"column:namespace;type:text;primaryKey"`
	Key       string    `gorm:"column:key;type:text;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz"`
}

func (item) TableName() string { return "local_storage" }

// PostgresBackend keeps items in the local_storage table.
type PostgresBackend struct {
	db *gorm.DB
}

func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Migrate creates or updates the local_storage table.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	return b.db.WithContext(ctx).AutoMigrate(&item{})
}

func (b *PostgresBackend) For(namespace string) LocalStorage {
	return &postgresStorage{db: b.db, ns: namespace}
}

type postgresStorage struct {
	db *gorm.DB
	ns string
}

func (s *postgresStorage) GetItem(ctx context.Context, key string) (string, error) {
	var row item
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.ns, key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoItem
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

func (s *postgresStorage) SetItem(ctx context.Context, key, value string) error {
	row := &item{Namespace: s.ns, Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(row).Error
}

func (s *postgresStorage) RemoveItem(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.ns, key).
		Delete(&item{}).Error
}

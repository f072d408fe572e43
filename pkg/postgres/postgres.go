// Package postgres keeps seed documents as JSONB rows of a single documents table,
// keyed by (collection, id).
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowHater/menu-seeder/pkg/record"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Document is one stored record
type Document struct {
	Collection string `gorm:"primaryKey;type:varchar(255)"`
	ID         string `gorm:"primaryKey;type:varchar(255)"`
	Data       string `gorm:"type:jsonb;not null"`
}

// TableName keeps every collection in the same table
func (Document) TableName() string {
	return "documents"
}

// NewDocument encodes doc as the row stored for collection/id
func NewDocument(collection, id string, doc record.Record) (Document, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return Document{}, fmt.Errorf("Error during encoding %s/%s: %w", collection, id, err)
	}

	return Document{Collection: collection, ID: id, Data: string(b)}, nil
}

type Store struct {
	db *gorm.DB
}

// Connect opens dsn and migrates the documents table
func Connect(ctx context.Context, dsn string) (*Store, error) {
	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("Error during postgres connection: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// migrate creates the documents table. The pool is closed when it fails.
func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&Document{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return fmt.Errorf("Error during migrating documents: %w", err)
	}

	return nil
}

// Set upserts the document on (collection, id)
func (s *Store) Set(ctx context.Context, collection, id string, doc record.Record) error {
	row, err := NewDocument(collection, id, doc)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("Error during upserting %s/%s: %w", collection, id, err)
	}

	return nil
}

func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("Error during fetching %s/%s: %w", collection, id, err)
	}

	return n > 0, nil
}

// Close closes the underlying connection pool
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

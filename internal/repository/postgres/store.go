// Package postgres persists apartment documents as one jsonb blob per row,
// guarded by a revision counter checked on every write.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"society-ledger/internal/domain/society"
)

type apartmentRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Revision  int64     `gorm:"not null"`
	Document  []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (apartmentRow) TableName() string { return "apartments" }

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the apartments table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&apartmentRow{})
}

func (s *Store) List(ctx context.Context) ([]society.Apartment, error) {
	var rows []apartmentRow
	if err := s.db.WithContext(ctx).Order("updated_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]society.Apartment, 0, len(rows))
	for _, row := range rows {
		doc, err := decode(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	return result, nil
}

func (s *Store) Get(ctx context.Context, id string) (*society.Apartment, error) {
	var row apartmentRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, society.ErrApartmentNotFound
		}
		return nil, err
	}
	return decode(row)
}

// Save upserts the whole document. The update only matches when the stored
// revision equals the caller's, so a concurrent writer surfaces as
// ErrStaleDocument instead of a silent last-write-wins.
func (s *Store) Save(ctx context.Context, doc *society.Apartment) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	nextRevision := doc.Revision + 1
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&apartmentRow{}).
			Where("id = ? AND revision = ?", doc.ID, doc.Revision).
			Updates(map[string]any{"revision": nextRevision, "document": payload})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(&apartmentRow{}).Where("id = ?", doc.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return society.ErrStaleDocument
		}

		if err := tx.Create(&apartmentRow{ID: doc.ID, Revision: nextRevision, Document: payload}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return society.ErrStaleDocument
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	doc.Revision = nextRevision
	return nil
}

func decode(row apartmentRow) (*society.Apartment, error) {
	var doc society.Apartment
	if err := json.Unmarshal(row.Document, &doc); err != nil {
		return nil, err
	}
	doc.Revision = row.Revision
	return &doc, nil
}

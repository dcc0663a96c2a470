package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository persists phrase templates in the tabular source.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Migrate creates the phrase_templates table when missing.
func (r *CatalogRepository) Migrate() error {
	return r.db.AutoMigrate(&PhraseRecord{})
}

func (r *CatalogRepository) ListAll(ctx context.Context) ([]PhraseRecord, error) {
	var records []PhraseRecord
	if err := r.db.WithContext(ctx).Order("phase, created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list phrase templates: %w", err)
	}
	return records, nil
}

// ReplaceAll swaps the whole catalog in one transaction, so a running
// import never leaves a half-written bank behind.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, records []PhraseRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&PhraseRecord{}).Error; err != nil {
			return fmt.Errorf("clear phrase templates: %w", err)
		}
		for i := range records {
			if records[i].Id == uuid.Nil {
				records[i].Id = uuid.New()
			}
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(&records).Error; err != nil {
			return fmt.Errorf("insert phrase templates: %w", err)
		}
		return nil
	})
}

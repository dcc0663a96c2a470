package catalog

import (
	"time"

	"github.com/google/uuid"
)

// WelcomePhase is the catalog row group for the first-message bank; it
// sits alongside the five workout phases in the same table.
const WelcomePhase = "welcome"

// PhraseRecord is one curated phrase template in the tabular catalog.
type PhraseRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Phase     string    `gorm:"type:text;not null;index"`
	Intent    string    `gorm:"type:text;not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PhraseRecord) TableName() string {
	return "phrase_templates"
}

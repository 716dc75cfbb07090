package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a single user flag against a freet. Rows are never updated.
type Report struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	FreetID       uuid.UUID `gorm:"type:uuid;not null;index:idx_reports_freet_category" json:"freet_id"`
	Category      string    `gorm:"size:32;not null;index:idx_reports_freet_category" json:"category"`
	Justification string    `gorm:"size:1000" json:"justification,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	Author        User      `gorm:"foreignKey:AuthorID" json:"-"`
}

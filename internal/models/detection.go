package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Detection stores the lexical scan outcome for one freet. The unique index
// on freet_id is what keeps concurrent creates from producing duplicates.
type Detection struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FreetID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"freet_id"`
	Detected     bool           `gorm:"not null" json:"detected"`
	MatchedTerms datatypes.JSON `json:"matched_terms"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

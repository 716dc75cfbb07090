package models

import (
	"time"

	"github.com/google/uuid"
)

// Freet is the content item owned by the post service. Moderation only
// checks existence and reads Content when (re)scanning.
type Freet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Assignment struct {
	ID        uuid.UUID
	Title     string
	CreatedBy uuid.UUID
	Closed    bool
	CreatedAt time.Time
	EditedAt  time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID       `db:"id"`
	Name      string          `db:"name"`
	Type      TransactionType `db:"type"` // income | expense
	Icon      string          `db:"icon"`
	Color     string          `db:"color"`
	ParentID  *uuid.UUID      `db:"parent_id"`
	Sort      int             `db:"sort"`
	CreatedAt time.Time       `db:"created_at"`
}

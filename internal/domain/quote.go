package domain

import (
	"time"
)

// LoveQuote is a shared (non-tenant) inspirational quote shown on the
// dashboard.
type LoveQuote struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Category  string    `json:"category" db:"category"`
	IsActive  bool      `json:"-" db:"is_active"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

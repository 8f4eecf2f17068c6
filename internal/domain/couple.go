package domain

import (
	"time"
)

// Couple is the tenant of the system: two partners sharing one access code.
// The couple code is the isolation boundary for every other record.
type Couple struct {
	ID           int64     `json:"id" db:"id"`
	CoupleCode   string    `json:"coupleCode" db:"couple_code"`
	StartDate    time.Time `json:"startDate" db:"start_date"`
	Partner1Name *string   `json:"partner1Name,omitempty" db:"partner1_name"`
	Partner2Name *string   `json:"partner2Name,omitempty" db:"partner2_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// DaysTogether counts days since the relationship start date, inclusive.
func (c *Couple) DaysTogether(now time.Time) int {
	start := time.Date(c.StartDate.Year(), c.StartDate.Month(), c.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(start) {
		return 0
	}
	return int(today.Sub(start).Hours()/24) + 1
}

// CoupleProfileChanges carries the optional fields of a profile update.
// Nil means the field is left untouched.
type CoupleProfileChanges struct {
	Partner1Name *string
	Partner2Name *string
	StartDate    *time.Time
}

// Empty reports whether the update would change nothing.
func (c CoupleProfileChanges) Empty() bool {
	return c.Partner1Name == nil && c.Partner2Name == nil && c.StartDate == nil
}

// WishStats summarizes a couple's whole wish collection.
type WishStats struct {
	Total          int `json:"totalWishes" db:"total"`
	Completed      int `json:"completedWishes" db:"completed"`
	Pending        int `json:"pendingWishes" db:"pending"`
	CompletionRate int `json:"completionRate"`
}

package domain

import (
	"time"
)

// WishType classifies a wish. Free-form input is validated against this
// closed set before it ever reaches a query.
type WishType string

const (
	WishTypeTravel WishType = "travel"
	WishTypeFood   WishType = "food"
	WishTypeMovie  WishType = "movie"
	WishTypeGift   WishType = "gift"
	WishTypeDate   WishType = "date"
	WishTypeOther  WishType = "other"
)

// ValidWishType reports whether t is one of the recognized wish types.
func ValidWishType(t string) bool {
	switch WishType(t) {
	case WishTypeTravel, WishTypeFood, WishTypeMovie, WishTypeGift, WishTypeDate, WishTypeOther:
		return true
	}
	return false
}

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxCreatedByLen   = 100
)

// Wish is a single couple-owned entry in the shared wishlist.
type Wish struct {
	ID          int64      `json:"id" db:"id"`
	CoupleCode  string     `json:"-" db:"couple_code"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Type        WishType   `json:"type" db:"wish_type"`
	TargetDate  *time.Time `json:"targetDate" db:"target_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	CreatedBy   *string    `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsOverdue reports whether the wish has an unmet target date in the past.
func (w *Wish) IsOverdue(now time.Time) bool {
	return w.TargetDate != nil && !w.Completed && w.TargetDate.Before(now)
}

// DaysUntilTarget returns the number of days until the target date, or
// nil when the wish has no target or is already completed.
func (w *Wish) DaysUntilTarget(now time.Time) *int {
	if w.TargetDate == nil || w.Completed {
		return nil
	}
	diff := w.TargetDate.Sub(now)
	days := int(diff.Hours() / 24)
	// Round up so a target later today still counts as one day away.
	if diff > 0 && diff%(24*time.Hour) != 0 {
		days++
	}
	return &days
}

// WishChanges carries the optional fields of a partial wish update.
// A nil pointer means "leave the column untouched". ClearTargetDate is
// set when the client explicitly empties the target date.
type WishChanges struct {
	Title           *string
	Description     *string
	Type            *WishType
	TargetDate      *time.Time
	ClearTargetDate bool
	Completed       *bool
}

// Empty reports whether the update would change no columns.
func (c WishChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Type == nil &&
		c.TargetDate == nil && !c.ClearTargetDate && c.Completed == nil
}

// WishStatus filters a listing by completion state.
type WishStatus string

const (
	WishStatusAll       WishStatus = "all"
	WishStatusCompleted WishStatus = "completed"
	WishStatusPending   WishStatus = "pending"
)

// WishSort names the recognized sort orders for a listing. The values
// select pre-built ORDER BY clauses; they are never interpolated.
type WishSort string

const (
	WishSortCreatedDesc    WishSort = "created_desc"
	WishSortCreatedAsc     WishSort = "created_asc"
	WishSortTitleAsc       WishSort = "title_asc"
	WishSortTitleDesc      WishSort = "title_desc"
	WishSortTargetDateAsc  WishSort = "target_date_asc"
	WishSortTargetDateDesc WishSort = "target_date_desc"
)

// WishListOptions is the normalized filter set for a wish listing.
// CoupleCode is mandatory; everything else has a default.
type WishListOptions struct {
	CoupleCode string
	Page       int
	PageSize   int
	Status     WishStatus
	Type       string // a WishType value, or "all"
	Sort       WishSort
	Search     string
}

// TypeStat is one row of the per-type breakdown computed over the
// couple's whole collection, independent of the active filters.
type TypeStat struct {
	Type           WishType `json:"type" db:"wish_type"`
	Total          int      `json:"total" db:"total"`
	Completed      int      `json:"completed" db:"completed"`
	CompletionRate int      `json:"completionRate"`
}

package domain

import (
	"time"
)

// ActionType identifies the kind of state change behind an activity
// log entry.
type ActionType string

const (
	ActionLogin      ActionType = "login"
	ActionRegister   ActionType = "register"
	ActionCreateWish ActionType = "create_wish"
	ActionUpdateWish ActionType = "update_wish"
	ActionDeleteWish ActionType = "delete_wish"
)

// ActivityLog is an append-only record of a state-changing operation
// performed on behalf of a couple. Entries are never updated or deleted
// by the application.
type ActivityLog struct {
	ID          int64      `json:"id" db:"id"`
	CoupleCode  string     `json:"-" db:"couple_code"`
	ActionType  ActionType `json:"actionType" db:"action_type"`
	Description string     `json:"description" db:"action_description"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

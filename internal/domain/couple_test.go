package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysTogether(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"started today", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), 1},
		{"started yesterday", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), 2},
		{"started a week ago", time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), 8},
		{"start in the future", time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Couple{StartDate: tt.start}
			assert.Equal(t, tt.want, c.DaysTogether(now))
		})
	}
}

func TestCoupleProfileChangesEmpty(t *testing.T) {
	assert.True(t, CoupleProfileChanges{}.Empty())

	name := "Luna"
	assert.False(t, CoupleProfileChanges{Partner1Name: &name}.Empty())

	start := time.Now()
	assert.False(t, CoupleProfileChanges{StartDate: &start}.Empty())
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		last   string
		streak int
		want   int
	}{
		{"first post", "", 0, 1},
		{"posted yesterday", "2024-02-29", 4, 5},
		{"posted today already", "2024-03-01", 4, 4},
		{"gap of two days", "2024-02-28", 9, 1},
		{"long gap", "2023-01-01", 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.last, tt.streak, today))
		})
	}
}

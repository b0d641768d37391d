package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateWeighing(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		weight  float64
		date    time.Time
		wantErr string // offending field, empty = ok
	}{
		{"ok today", 380, day(2025, 3, 11), ""},
		{"ok past", 380, day(2025, 2, 1), ""},
		{"future date", 380, day(2025, 3, 12), "date"},
		{"zero weight", 0, day(2025, 3, 11), "weight_kg"},
		{"negative weight", -10, day(2025, 3, 11), "weight_kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeighing(tt.weight, tt.date, now)
			if tt.wantErr == "" {
				require.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Equal(t, ErrValidation, err.Kind)
			require.Equal(t, tt.wantErr, err.Field)
		})
	}
}

package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"rfc3339 utc", "2030-03-04T10:00:00Z", time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), true},
		{"rfc3339 offset normalized to utc", "2030-03-04T12:00:00+02:00", time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), true},
		{"sub-second truncated", "2030-03-04T10:00:00.750Z", time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), true},
		{"datetime-local", "2030-03-04T10:00", time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC), true},
		{"date only", "2030-03-04", time.Time{}, false},
		{"garbage", "tomorrow", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

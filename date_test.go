package webharvest_test

import (
	"testing"
	"time"

	"github.com/harvestlabs/webharvest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"datetime", "2025-09-21 06:05:12", time.Date(2025, 9, 21, 6, 5, 12, 0, time.UTC), true},
		{"datetime no seconds", "2025-09-21 06:05", time.Date(2025, 9, 21, 6, 5, 0, 0, time.UTC), true},
		{"iso date", "2025-09-21", time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), true},
		{"slashed date", "2025/09/21", time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), true},
		{"chinese date", "2025年9月21日", time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), true},
		{"date with trailing noise", "2025-09-21 来源:示例网", time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "next tuesday", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := webharvest.ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2025-09-21", webharvest.ResolveDate("2025-09-21", "2025-09-22 10:00:00"))
	assert.Equal(t, "2025-09-22 10:00:00", webharvest.ResolveDate("", "2025-09-22 10:00:00"))
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	t.Run("end date extends to end of day", func(t *testing.T) {
		t.Parallel()

		r, err := webharvest.NewDateRange("2025-09-01", "2025-09-30")
		require.NoError(t, err)

		assert.True(t, r.Contains("2025-09-30 23:59:00"))
		assert.True(t, r.Contains("2025-09-01"))
		assert.False(t, r.Contains("2025-10-01"))
		assert.False(t, r.Contains("2025-08-31"))
	})

	t.Run("unparseable dates are not excluded", func(t *testing.T) {
		t.Parallel()

		r, err := webharvest.NewDateRange("2025-09-01", "2025-09-30")
		require.NoError(t, err)

		assert.True(t, r.Contains("sometime last week"))
		assert.False(t, r.ContainsStrict("sometime last week"))
	})

	t.Run("open bounds", func(t *testing.T) {
		t.Parallel()

		r, err := webharvest.NewDateRange("", "")
		require.NoError(t, err)
		assert.True(t, r.Empty())
		assert.True(t, r.Contains("2025-01-01"))
	})

	t.Run("invalid bound", func(t *testing.T) {
		t.Parallel()

		_, err := webharvest.NewDateRange("not-a-date", "")
		assert.Equal(t, webharvest.EINVALID, webharvest.ErrorCode(err))
	})
}

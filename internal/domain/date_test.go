package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExecutionDate(t *testing.T) {
	valid := []string{"2025-01-01", "2024-02-29", "1000-12-31", "9999-01-01"}
	for _, raw := range valid {
		d, err := ParseExecutionDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, d.Format(dateLayout))
	}

	invalid := []string{"2023-02-29", "2025-13-01", "2025-00-10", "2025-04-31", "0999-01-01", "2025-1-01", "25-01-01", "2025/01/01", "tomorrow", ""}
	for _, raw := range invalid {
		_, err := ParseExecutionDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, raw)
	}
}

func TestUTCDate(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "utc_late_evening", in: time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC), want: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		{name: "offset_after_local_midnight", in: time.Date(2025, 6, 11, 0, 30, 0, 0, lagos), want: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)},
		{name: "already_midnight", in: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(UTCDate(tc.in)))
			assert.Equal(t, time.UTC, UTCDate(tc.in).Location())
		})
	}
}

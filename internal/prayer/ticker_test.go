package prayer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	day *DaySchedule
}

func (s *staticSource) Today(ctx context.Context, date time.Time) *DaySchedule {
	return s.day
}

func TestTicker_Current(t *testing.T) {
	source := &staticSource{day: &DaySchedule{
		Date:  "2026-03-01",
		Times: DefaultSchedule,
		Hijri: DefaultHijriDate,
	}}

	ticker := NewTicker(source, time.Hour)
	ticker.now = func() time.Time {
		return time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	}

	ticker.Start()
	defer ticker.Stop()

	name, day := ticker.Current()
	assert.Equal(t, Isha, name)
	require.NotNil(t, day)
	assert.Equal(t, "2026-03-01", day.Date)
}

func TestTicker_Reevaluates(t *testing.T) {
	source := &staticSource{day: &DaySchedule{Times: DefaultSchedule}}

	ticker := NewTicker(source, 5*time.Millisecond)
	ticker.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	ticker.Start()

	assert.Eventually(t, func() bool {
		name, _ := ticker.Current()
		return name == Dhuhr
	}, time.Second, time.Millisecond)

	// After Stop the designation is frozen.
	ticker.Stop()
	ticker.now = func() time.Time {
		return time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	}
	time.Sleep(20 * time.Millisecond)

	name, _ := ticker.Current()
	assert.Equal(t, Dhuhr, name)
}

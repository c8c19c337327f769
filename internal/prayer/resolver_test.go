package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"24h afternoon", "13:15", 795},
		{"12h afternoon equals 24h", "1:15 PM", 795},
		{"morning", "5:30 AM", 330},
		{"noon stays noon", "12:00 PM", 720},
		{"midnight in 12h form", "12:00 AM", 0},
		{"evening", "8:00 PM", 1200},
		{"24h evening", "20:00", 1200},
		{"lowercase meridiem", "6:30 pm", 1110},
		{"empty string", "", 0},
		{"garbage", "not-a-time", 0},
		{"missing minutes", "13", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClock(tt.input))
		})
	}
}

func TestNext(t *testing.T) {
	t.Run("between two prayers picks the later one", func(t *testing.T) {
		name, ok := Next(DefaultSchedule, ParseClock("19:00"))
		assert.True(t, ok)
		assert.Equal(t, Isha, name)
	})

	t.Run("after the last prayer wraps to tomorrow's Fajr", func(t *testing.T) {
		name, ok := Next(DefaultSchedule, ParseClock("21:00"))
		assert.True(t, ok)
		assert.Equal(t, Fajr, name)
	})

	t.Run("early morning before Fajr", func(t *testing.T) {
		name, ok := Next(DefaultSchedule, ParseClock("4:00 AM"))
		assert.True(t, ok)
		assert.Equal(t, Fajr, name)
	})

	t.Run("sunrise is never selected", func(t *testing.T) {
		// Between Fajr and Sunrise the next prayer is Dhuhr.
		name, ok := Next(DefaultSchedule, ParseClock("6:00 AM"))
		assert.True(t, ok)
		assert.Equal(t, Dhuhr, name)
	})

	t.Run("exactly at a prayer time moves past it", func(t *testing.T) {
		name, ok := Next(DefaultSchedule, ParseClock("1:15 PM"))
		assert.True(t, ok)
		assert.Equal(t, Asr, name)
	})

	t.Run("both clock formats resolve identically", func(t *testing.T) {
		twelve := Schedule{Dhuhr: "1:15 PM", Asr: "4:45 PM"}
		twentyFour := Schedule{Dhuhr: "13:15", Asr: "16:45"}

		n1, _ := Next(twelve, 800)
		n2, _ := Next(twentyFour, 800)
		assert.Equal(t, n1, n2)
	})

	t.Run("empty schedule selects nothing", func(t *testing.T) {
		_, ok := Next(Schedule{}, 600)
		assert.False(t, ok)
	})

	t.Run("sunrise-only schedule selects nothing", func(t *testing.T) {
		_, ok := Next(Schedule{Sunrise: "6:45 AM"}, 600)
		assert.False(t, ok)
	})

	t.Run("every gap between consecutive prayers yields the later prayer", func(t *testing.T) {
		ordered := []struct {
			name  string
			clock string
		}{
			{Fajr, "5:30 AM"},
			{Dhuhr, "1:15 PM"},
			{Asr, "4:45 PM"},
			{Maghrib, "6:30 PM"},
			{Isha, "8:00 PM"},
		}
		for i := 1; i < len(ordered); i++ {
			mid := (ParseClock(ordered[i-1].clock) + ParseClock(ordered[i].clock)) / 2
			name, ok := Next(DefaultSchedule, mid)
			assert.True(t, ok)
			assert.Equal(t, ordered[i].name, name, "at %d minutes", mid)
		}
	})
}

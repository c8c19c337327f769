package prayer

import (
	"strconv"
	"strings"
)

const minutesPerDay = 1440

// Prayer names in canonical order. Sunrise marks the end of the Fajr window
// and is never itself the next prayer.
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

var Names = []string{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// Schedule maps prayer names to wall-clock time strings, either
// "HH:MM" or "HH:MM AM/PM".
type Schedule map[string]string

// ParseClock converts a time-of-day string to minutes since midnight. Both
// 24-hour ("13:15") and 12-hour ("1:15 PM") forms are accepted. Unparseable
// input yields 0; feeds are validated before they reach this point.
func ParseClock(s string) int {
	s = strings.TrimSpace(s)

	var meridiem string
	if fields := strings.Fields(s); len(fields) == 2 {
		s = fields[0]
		meridiem = strings.ToUpper(fields[1])
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0
	}

	switch meridiem {
	case "PM":
		if h < 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	}

	return h*60 + m
}

// Next returns the first prayer due after nowMinutes. Sunrise is skipped.
// When every prayer of the day has passed, the scan wraps to the following
// day and returns the earliest prayer. An empty schedule selects nothing.
func Next(s Schedule, nowMinutes int) (string, bool) {
	best := ""
	bestDelta := 0

	for name, clock := range s {
		if name == Sunrise {
			continue
		}
		delta := ParseClock(clock) - nowMinutes
		if delta <= 0 {
			continue
		}
		if best == "" || delta < bestDelta {
			best = name
			bestDelta = delta
		}
	}
	if best != "" {
		return best, true
	}

	// Past the last prayer of the day: shortest distance into tomorrow wins.
	for name, clock := range s {
		if name == Sunrise {
			continue
		}
		delta := (minutesPerDay - nowMinutes) + ParseClock(clock)
		if best == "" || delta < bestDelta {
			best = name
			bestDelta = delta
		}
	}
	return best, best != ""
}

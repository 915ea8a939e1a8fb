package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "Africa/Accra"

var (
	mu      sync.RWMutex
	current = DefaultTimezone
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Configure sets the application timezone used for "today" and displayed dates.
func Configure(tz string) {
	if !IsValid(tz) {
		tz = DefaultTimezone
	}
	mu.Lock()
	current = tz
	mu.Unlock()
}

func Current() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return Location(current)
}

func Now() time.Time {
	return time.Now().In(Current())
}

// UTCNow is the clock used for persisted timestamps.
func UTCNow() time.Time {
	return time.Now().UTC()
}

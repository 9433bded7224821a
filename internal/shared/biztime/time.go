// Package biztime holds the property's local timezone. Everything stored or
// sent over the wire is UTC; the local zone only drives the scheduler's wall
// clock and the local-date field in check-in logs.
package biztime

import (
	"fmt"
	"sync/atomic"
	"time"
)

// DefaultTimezone is used when server.timezone is empty.
const DefaultTimezone = "Asia/Tokyo"

// LocalDateLayout is the date format used when logging local calendar days.
const LocalDateLayout = "2006-01-02"

var location atomic.Pointer[time.Location]

// Init loads tz (or DefaultTimezone) as the property's zone. It may be called
// again to switch zones, which tests rely on.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	location.Store(loc)
	return nil
}

// Location returns the property's zone, loading DefaultTimezone on first use.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: %v", err))
	}
	return location.Load()
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// LocalDate returns the calendar day t falls on at the property.
func LocalDate(t time.Time) string {
	return t.In(Location()).Format(LocalDateLayout)
}

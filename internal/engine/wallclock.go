package engine

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tartampluch/go-dualclock/internal/config"
)

// WallClock is the human-readable time observed in a given timezone.
type WallClock struct {
	Hour   int // 0-23
	Minute int // 0-59
	Second int // 0-59
}

// NewWallClock builds a WallClock, collapsing the raw midnight hour 24 to 0.
func NewWallClock(hour, minute, second int) WallClock {
	if hour == config.RawMidnightHour {
		hour = 0
	}
	return WallClock{Hour: hour, Minute: minute, Second: second}
}

// WallClockOf returns the wall clock of t in t's own location.
func WallClockOf(t time.Time) WallClock {
	h, m, s := t.Clock()
	return NewWallClock(h, m, s)
}

// Resolver converts an instant and an IANA identifier into a WallClock.
type Resolver struct {
	// Local is the location used when an identifier cannot be resolved.
	// A nil Local means time.Local.
	Local *time.Location
}

// NewResolver returns a resolver falling back to the machine's local zone.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the wall clock of instant in the timezone named tzID.
// An unknown identifier is logged and resolved against the local zone instead;
// Resolve never fails.
func (r *Resolver) Resolve(instant time.Time, tzID string) WallClock {
	loc, err := loadLocation(tzID)
	if err != nil {
		slog.Error(config.ErrTimezoneLookup,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyTimezone, tzID,
			config.LogKeyError, err,
		)
		timezoneFallbacks.WithLabelValues(tzID).Inc()
		loc = r.local()
	}
	return WallClockOf(instant.In(loc))
}

func (r *Resolver) local() *time.Location {
	if r == nil || r.Local == nil {
		return time.Local
	}
	return r.Local
}

// loadLocation wraps time.LoadLocation, rejecting the empty identifier that
// the standard library would otherwise map to UTC.
func loadLocation(tzID string) (*time.Location, error) {
	if tzID == "" {
		return nil, errors.New(config.ErrTimezoneEmpty)
	}
	return time.LoadLocation(tzID)
}

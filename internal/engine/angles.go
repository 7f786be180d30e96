package engine

import (
	"math"
	"time"

	"github.com/tartampluch/go-dualclock/internal/config"
)

// Angles holds the rendering rotation, in degrees, of every hand.
// 0° points toward 3 o'clock and angles grow clockwise on screen.
type Angles struct {
	PrimaryHour   float64
	SecondaryHour float64
	Minute        float64
	Second        float64
}

// ByHand returns the angles keyed by hand type.
func (a Angles) ByHand() map[HandType]float64 {
	return map[HandType]float64{
		HandPrimaryHour:   a.PrimaryHour,
		HandSecondaryHour: a.SecondaryHour,
		HandMinute:        a.Minute,
		HandSecond:        a.Second,
	}
}

// Of returns the angle of hand h. ok is false for an unknown hand type.
func (a Angles) Of(h HandType) (angle float64, ok bool) {
	angle, ok = a.ByHand()[h]
	return angle, ok
}

// SecondAngle wraps every 60 seconds.
func SecondAngle(second int) float64 {
	return float64(second)/config.SecondsPerMin*config.FullTurn + config.RenderOffset
}

// MinuteAngle sweeps smoothly within the minute.
func MinuteAngle(minute, second int) float64 {
	return float64(minute)/config.MinutesPerHour*config.FullTurn +
		float64(second)/config.SecondsPerMin*config.DegreesPerMinuteFraction +
		config.RenderOffset
}

// HourAngle sweeps smoothly within the hour on a 12-hour dial.
func HourAngle(hour, minute int) float64 {
	return float64(hour%config.HoursPerDial)/float64(config.HoursPerDial)*config.FullTurn +
		float64(minute)/config.MinutesPerHour*config.DegreesPerHourFraction +
		config.RenderOffset
}

// ComputeAngles derives the four hand angles. Minute and second come from the
// primary zone for every hand; only the hour is taken per zone.
func ComputeAngles(primary, secondary WallClock) Angles {
	return Angles{
		PrimaryHour:   HourAngle(primary.Hour, primary.Minute),
		SecondaryHour: HourAngle(secondary.Hour, primary.Minute),
		Minute:        MinuteAngle(primary.Minute, primary.Second),
		Second:        SecondAngle(primary.Second),
	}
}

// NormalizeDegrees maps any angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	n := math.Mod(deg, config.FullTurn)
	if n < 0 {
		n += config.FullTurn
	}
	return n
}

// Reading is the full state of the dual clock for one instant.
type Reading struct {
	Instant   time.Time
	Primary   WallClock
	Secondary WallClock
	Angles    Angles
}

// DualClock resolves both timezones and computes angles from scratch on
// every call.
type DualClock struct {
	Resolver          *Resolver
	PrimaryTimezone   string
	SecondaryTimezone string
}

// NewDualClock returns the clock for the configured timezone pair.
func NewDualClock() *DualClock {
	return &DualClock{
		Resolver:          NewResolver(),
		PrimaryTimezone:   config.PrimaryTimezone,
		SecondaryTimezone: config.SecondaryTimezone,
	}
}

// Read resolves instant in both timezones and computes the hand angles.
func (d *DualClock) Read(instant time.Time) Reading {
	primary := d.Resolver.Resolve(instant, d.PrimaryTimezone)
	secondary := d.Resolver.Resolve(instant, d.SecondaryTimezone)
	ticksRendered.Inc()

	return Reading{
		Instant:   instant,
		Primary:   primary,
		Secondary: secondary,
		Angles:    ComputeAngles(primary, secondary),
	}
}

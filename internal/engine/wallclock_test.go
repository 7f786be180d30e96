package engine

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-dualclock/internal/config"
)

func TestNewWallClock_NormalizesRawMidnight(t *testing.T) {
	assert.Equal(t, WallClock{Hour: 0, Minute: 5, Second: 9}, NewWallClock(24, 5, 9))
	assert.Equal(t, WallClock{Hour: 23, Minute: 59, Second: 59}, NewWallClock(23, 59, 59))
	assert.Equal(t, 0, NewWallClock(0, 0, 0).Hour)
}

func TestResolve_HonoursDaylightSaving(t *testing.T) {
	r := NewResolver()

	tests := []struct {
		name    string
		instant time.Time
		tz      string
		want    WallClock
	}{
		{"Warsaw winter (UTC+1)", time.Date(2025, 1, 10, 10, 20, 30, 0, time.UTC), config.PrimaryTimezone, WallClock{11, 20, 30}},
		{"Warsaw summer (UTC+2)", time.Date(2025, 7, 10, 10, 20, 30, 0, time.UTC), config.PrimaryTimezone, WallClock{12, 20, 30}},
		{"Athens winter (UTC+2)", time.Date(2025, 1, 10, 10, 20, 30, 0, time.UTC), config.SecondaryTimezone, WallClock{12, 20, 30}},
		{"Athens summer (UTC+3)", time.Date(2025, 7, 10, 10, 20, 30, 0, time.UTC), config.SecondaryTimezone, WallClock{13, 20, 30}},
		{"Midnight is hour zero", time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC), config.PrimaryTimezone, WallClock{0, 0, 0}},
		{"Just after DST switch", time.Date(2025, 3, 30, 1, 0, 0, 0, time.UTC), config.PrimaryTimezone, WallClock{3, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.instant, tt.tz))
		})
	}
}

func TestResolve_InvalidTimezoneFallsBackToLocal(t *testing.T) {
	local := time.FixedZone("Test/Local", 3*60*60)
	r := &Resolver{Local: local}
	instant := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	before := testutil.ToFloat64(timezoneFallbacks.WithLabelValues("Mars/Olympus_Mons"))

	var got WallClock
	assert.NotPanics(t, func() {
		got = r.Resolve(instant, "Mars/Olympus_Mons")
	})
	assert.Equal(t, WallClock{Hour: 15, Minute: 0, Second: 0}, got)

	after := testutil.ToFloat64(timezoneFallbacks.WithLabelValues("Mars/Olympus_Mons"))
	assert.Equal(t, before+1, after, "fallback must be counted")
}

func TestResolve_DefaultFallbackIsMachineLocalTime(t *testing.T) {
	instant := time.Now()
	got := NewResolver().Resolve(instant, "Not/A_Zone")
	assert.Equal(t, WallClockOf(instant.In(time.Local)), got)
}

func TestResolve_EmptyIdentifierIsNotUTC(t *testing.T) {
	local := time.FixedZone("Test/Local", -5*60*60)
	r := &Resolver{Local: local}
	instant := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, WallClock{Hour: 7}, r.Resolve(instant, ""))
}

func TestDualClock_FallbackOnlyAffectsBrokenZone(t *testing.T) {
	d := &DualClock{
		Resolver:          &Resolver{Local: time.UTC},
		PrimaryTimezone:   config.PrimaryTimezone,
		SecondaryTimezone: "Invalid/Zone",
	}
	reading := d.Read(time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC))

	assert.Equal(t, 13, reading.Primary.Hour)
	assert.Equal(t, 12, reading.Secondary.Hour)
	assert.Equal(t, HourAngle(12, 30), reading.Angles.SecondaryHour)
}

func TestDualClock_CountsTicks(t *testing.T) {
	before := testutil.ToFloat64(ticksRendered)
	NewDualClock().Read(time.Now())
	assert.Equal(t, before+1, testutil.ToFloat64(ticksRendered))
}

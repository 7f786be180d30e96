package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dualclock/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"Commit", config.Commit},
		{"Date", config.Date},
		{"PrimaryTimezone", config.PrimaryTimezone},
		{"SecondaryTimezone", config.SecondaryTimezone},
		{"DefaultPort", config.DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestTimezones_AreValid guards against typos in the hardcoded IANA identifiers.
func TestTimezones_AreValid(t *testing.T) {
	for _, tz := range []string{config.PrimaryTimezone, config.SecondaryTimezone} {
		_, err := time.LoadLocation(tz)
		require.NoError(t, err, "timezone %s must be a valid IANA identifier", tz)
	}
	assert.NotEqual(t, config.PrimaryTimezone, config.SecondaryTimezone)
}

// TestGeometry_Sanity checks the degree constants against each other.
func TestGeometry_Sanity(t *testing.T) {
	assert.Equal(t, config.FullTurn/config.SecondsPerMin, config.DegreesPerMinuteFraction)
	assert.Equal(t, config.FullTurn/float64(config.HoursPerDial), config.DegreesPerHourFraction)
	assert.Equal(t, -90.0, config.RenderOffset)
	assert.Equal(t, time.Second, config.TickInterval)
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.DefaultSnapshotSize, config.MinFaceSize)
	assert.Less(t, config.MinPort, config.MaxPort)
}

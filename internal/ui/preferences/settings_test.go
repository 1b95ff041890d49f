package preferences

import (
	"testing"

	"clockface/internal/core/model"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	settings := DefaultSettings()
	settings.TimezoneOffsetHours = 20
	settings.Theme = "neon"

	err := settings.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
}

func TestClockSettingsRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.TimezoneOffsetHours = -3
	settings.Theme = model.ThemeParty

	clockSettings := settings.ClockSettings()
	assert.Equal(t, -3, clockSettings.TimezoneOffsetHours)
	assert.Equal(t, settings, FromClockSettings(clockSettings))
}

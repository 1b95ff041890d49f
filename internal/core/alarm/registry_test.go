package alarm

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wall(hour, minute, second int) time.Time {
	return time.Date(2026, 6, 1, hour, minute, second, 0, time.UTC)
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	registry := NewRegistry()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		alarm, err := registry.Add(fmt.Sprintf("%02d:%02d", i%24, i))
		require.NoError(t, err)
		require.False(t, seen[alarm.ID], "duplicate id %s", alarm.ID)
		require.True(t, alarm.Enabled)
		seen[alarm.ID] = true
	}
	assert.Len(t, registry.List(), 50)
}

func TestAddRejectsMalformedTime(t *testing.T) {
	registry := NewRegistry()
	for _, value := range []string{"", "7", "24:00", "12:60", "noon", "12-30"} {
		_, err := registry.Add(value)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, value)
	}
	assert.Empty(t, registry.List())
}

func TestAddNormalizesSingleDigitHour(t *testing.T) {
	registry := NewRegistry()
	alarm, err := registry.Add("7:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", alarm.TimeOfDay)
}

func TestCheckDueMatchesHourAndMinute(t *testing.T) {
	registry := NewRegistry()
	alarm, err := registry.Add("14:30")
	require.NoError(t, err)
	_, err = registry.Add("14:31")
	require.NoError(t, err)

	due := registry.CheckDue(wall(14, 30, 0))
	require.Len(t, due, 1)
	assert.Equal(t, alarm.ID, due[0].ID)

	assert.Empty(t, registry.CheckDue(wall(14, 29, 59)))

	// recurring: still due on the next day
	assert.Len(t, registry.CheckDue(wall(14, 30, 0).AddDate(0, 0, 1)), 1)
}

func TestToggleAndRemove(t *testing.T) {
	registry := NewRegistry()
	alarm, err := registry.Add("06:00")
	require.NoError(t, err)

	registry.Toggle(alarm.ID)
	assert.Empty(t, registry.CheckDue(wall(6, 0, 0)))
	registry.Toggle(alarm.ID)
	assert.Len(t, registry.CheckDue(wall(6, 0, 0)), 1)

	registry.Toggle("missing")
	registry.Remove("missing")
	assert.Len(t, registry.List(), 1)

	registry.Remove(alarm.ID)
	assert.Empty(t, registry.List())
	assert.Empty(t, registry.CheckDue(wall(6, 0, 0)))
}

func TestListIsSnapshot(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Add("08:00")
	require.NoError(t, err)

	snapshot := registry.List()
	snapshot[0].Enabled = false
	assert.True(t, registry.List()[0].Enabled)
}

func TestSecondGateAdmitsOncePerSecond(t *testing.T) {
	var gate SecondGate
	base := wall(14, 30, 0)

	assert.True(t, gate.Admit(base))
	assert.False(t, gate.Admit(base.Add(400*time.Millisecond)))
	assert.False(t, gate.Admit(base.Add(999*time.Millisecond)))
	assert.True(t, gate.Admit(base.Add(time.Second)))
	assert.True(t, gate.Admit(base.Add(5*time.Second)))
}

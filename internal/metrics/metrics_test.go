package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	recorder := NewRecorder()
	recorder.FrameRendered(time.Millisecond)
	recorder.FrameRendered(2 * time.Millisecond)
	recorder.AlarmFired()
	recorder.TimerExpired()

	body := scrape(t, recorder)
	assert.Contains(t, body, "clockface_frames_rendered_total 2")
	assert.Contains(t, body, "clockface_frame_duration_seconds_count 2")
	assert.Contains(t, body, "clockface_alarms_fired_total 1")
	assert.Contains(t, body, "clockface_timer_expirations_total 1")
}

func scrape(t *testing.T, recorder *Recorder) string {
	t.Helper()
	response := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, response.Code)
	return response.Body.String()
}

func TestHandlerExposesMetrics(t *testing.T) {
	recorder := NewRecorder()
	recorder.AlarmFired()

	assert.Contains(t, scrape(t, recorder), "clockface_alarms_fired_total 1")
}

func TestNewServerRequiresAddress(t *testing.T) {
	_, err := NewServer("", NewRecorder())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

package timesource

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	"go.uber.org/zap"
)

const (
	defaultSyncInterval = 10 * time.Minute
	backoffInitial      = 5 * time.Second
	backoffMax          = 5 * time.Minute
)

// QueryFunc returns the offset between the host clock and a time server.
type QueryFunc func(server string) (time.Duration, error)

// NTP corrects the host wall clock with an offset obtained from a time server.
// The monotonic reading is never corrected.
type NTP struct {
	mu           sync.Mutex
	base         *System
	server       string
	query        QueryFunc
	logger       *zap.Logger
	offset       time.Duration
	lastSync     time.Duration
	syncing      bool
	syncInterval time.Duration
	backoff      time.Duration
	lastError    error
}

// NewNTP creates an NTP-corrected source. The first query runs before
// returning; a failure is not fatal. Later resyncs run in the background so
// Now never waits on the network.
func NewNTP(server string, syncInterval time.Duration, logger *zap.Logger) *NTP {
	return newNTP(server, syncInterval, queryOffset, logger)
}

func newNTP(server string, syncInterval time.Duration, query QueryFunc, logger *zap.Logger) *NTP {
	if syncInterval <= 0 {
		syncInterval = defaultSyncInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	source := &NTP{
		base:         NewSystem(),
		server:       server,
		query:        query,
		logger:       logger,
		syncInterval: syncInterval,
	}
	offset, err := query(server)
	source.mu.Lock()
	source.applyLocked(offset, err)
	source.mu.Unlock()
	return source
}

func queryOffset(server string) (time.Duration, error) {
	response, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := response.Validate(); err != nil {
		return 0, err
	}
	return response.ClockOffset, nil
}

// Now returns the corrected wall-clock time, resyncing when due.
func (source *NTP) Now() time.Time {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.maybeSyncLocked()
	return source.base.Now().Add(source.offset)
}

func (source *NTP) Monotonic() time.Duration {
	return source.base.Monotonic()
}

// Offset reports the current correction and the last query error.
func (source *NTP) Offset() (time.Duration, error) {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.offset, source.lastError
}

func (source *NTP) maybeSyncLocked() {
	if source.syncing {
		return
	}
	effective := source.syncInterval
	if source.backoff > 0 {
		effective = source.backoff
	}
	if source.base.Monotonic()-source.lastSync < effective {
		return
	}
	source.syncing = true
	go source.resync()
}

func (source *NTP) resync() {
	offset, err := source.query(source.server)
	source.mu.Lock()
	defer source.mu.Unlock()
	source.syncing = false
	source.applyLocked(offset, err)
}

func (source *NTP) applyLocked(offset time.Duration, err error) {
	source.lastSync = source.base.Monotonic()
	if err != nil {
		source.lastError = err
		if source.backoff == 0 {
			source.backoff = backoffInitial
		} else {
			source.backoff *= 2
		}
		if source.backoff > backoffMax {
			source.backoff = backoffMax
		}
		source.logger.Warn("ntp query failed",
			zap.String("server", source.server),
			zap.Duration("retry_in", source.backoff),
			zap.Error(err))
		return
	}

	source.offset = offset
	source.lastError = nil
	source.backoff = 0
	source.logger.Debug("ntp offset updated",
		zap.String("server", source.server),
		zap.Duration("offset", offset))
}

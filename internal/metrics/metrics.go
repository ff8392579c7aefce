package metrics

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Metrics holds the counters of a single run
type Metrics struct {
	mu sync.RWMutex

	// Load metrics
	FilesLoadedTotal       int64
	RecordsLoadedTotal     int64
	RecordsNormalizedTotal int64
	LoadErrorsTotal        int64

	// Output metrics
	ChartsRenderedTotal int64
	ExportsWrittenTotal int64
	AlertsRaisedTotal   int64

	// Timing
	startTime time.Time
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	FilesLoaded       int64         `json:"filesLoaded"`
	RecordsLoaded     int64         `json:"recordsLoaded"`
	RecordsNormalized int64         `json:"recordsNormalized"`
	LoadErrors        int64         `json:"loadErrors"`
	ChartsRendered    int64         `json:"chartsRendered"`
	ExportsWritten    int64         `json:"exportsWritten"`
	AlertsRaised      int64         `json:"alertsRaised"`
	Elapsed           time.Duration `json:"elapsed"`
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{startTime: time.Now()}
	})
	return instance
}

// RecordFileLoaded counts a successfully loaded file
func (m *Metrics) RecordFileLoaded(records, normalized int) {
	m.mu.Lock()
	m.FilesLoadedTotal++
	m.RecordsLoadedTotal += int64(records)
	m.RecordsNormalizedTotal += int64(normalized)
	m.mu.Unlock()
}

// RecordLoadError increments the load error counter
func (m *Metrics) RecordLoadError() {
	m.mu.Lock()
	m.LoadErrorsTotal++
	m.mu.Unlock()
}

// RecordChartRendered increments the rendered chart counter
func (m *Metrics) RecordChartRendered() {
	m.mu.Lock()
	m.ChartsRenderedTotal++
	m.mu.Unlock()
}

// RecordExportWritten increments the export counter
func (m *Metrics) RecordExportWritten() {
	m.mu.Lock()
	m.ExportsWrittenTotal++
	m.mu.Unlock()
}

// RecordAlerts adds n raised alerts
func (m *Metrics) RecordAlerts(n int) {
	m.mu.Lock()
	m.AlertsRaisedTotal += int64(n)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		FilesLoaded:       m.FilesLoadedTotal,
		RecordsLoaded:     m.RecordsLoadedTotal,
		RecordsNormalized: m.RecordsNormalizedTotal,
		LoadErrors:        m.LoadErrorsTotal,
		ChartsRendered:    m.ChartsRenderedTotal,
		ExportsWritten:    m.ExportsWrittenTotal,
		AlertsRaised:      m.AlertsRaisedTotal,
		Elapsed:           time.Since(m.startTime),
	}
}

// Reset zeroes every counter and restarts the clock
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FilesLoadedTotal = 0
	m.RecordsLoadedTotal = 0
	m.RecordsNormalizedTotal = 0
	m.LoadErrorsTotal = 0
	m.ChartsRenderedTotal = 0
	m.ExportsWrittenTotal = 0
	m.AlertsRaisedTotal = 0
	m.startTime = time.Now()
}

// Log writes the counters as a single structured log line
func (m *Metrics) Log(logger zerolog.Logger) {
	s := m.Snapshot()
	logger.Info().
		Int64("files_loaded", s.FilesLoaded).
		Int64("records_loaded", s.RecordsLoaded).
		Int64("records_normalized", s.RecordsNormalized).
		Int64("load_errors", s.LoadErrors).
		Int64("charts_rendered", s.ChartsRendered).
		Int64("exports_written", s.ExportsWritten).
		Int64("alerts_raised", s.AlertsRaised).
		Dur("elapsed", s.Elapsed).
		Msg("run complete")
}

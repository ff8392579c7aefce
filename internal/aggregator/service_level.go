package aggregator

import "github.com/dennisdiepolder/monti/callstats/internal/types"

// DefaultThresholdSecs is the service level target answer time
const DefaultThresholdSecs = 2.0

// SLTracker tracks service level over incoming calls
type SLTracker struct {
	ThresholdSecs float64 // threshold in seconds (e.g., 2)
	AnsweredInSL  int     // incoming calls answered within threshold
	TotalIncoming int     // all incoming calls, including those without a wait value
	waitSum       float64
	waitCount     int
}

// NewSLTracker creates a new SL tracker with the given threshold
func NewSLTracker(thresholdSecs float64) *SLTracker {
	return &SLTracker{ThresholdSecs: thresholdSecs}
}

// Record adds a call. Outgoing calls are ignored; an incoming call without
// a wait value counts against the service level.
func (s *SLTracker) Record(r types.CallRecord) {
	if !r.IsIncoming() {
		return
	}
	s.RecordAnswer(r.IncomingWait)
}

// RecordAnswer records an incoming call answered after wait seconds
func (s *SLTracker) RecordAnswer(wait *float64) {
	s.TotalIncoming++
	if wait == nil {
		return
	}
	s.waitSum += *wait
	s.waitCount++
	if *wait <= s.ThresholdSecs {
		s.AnsweredInSL++
	}
}

// CurrentSL returns the fraction of incoming calls answered within threshold
func (s *SLTracker) CurrentSL() Stat {
	return Ratio(s.AnsweredInSL, s.TotalIncoming)
}

// AverageSpeedOfAnswer returns the mean of the recorded wait values
func (s *SLTracker) AverageSpeedOfAnswer() Stat {
	return MeanOf(s.waitSum, s.waitCount)
}

// ServiceLevelSnapshot is the reportable state of an SLTracker
type ServiceLevelSnapshot struct {
	ThresholdSecs        float64 `json:"thresholdSecs" yaml:"thresholdSecs"`
	AnsweredInSL         int     `json:"answeredInSL" yaml:"answeredInSL"`
	TotalIncoming        int     `json:"totalIncoming" yaml:"totalIncoming"`
	ServiceLevel         Stat    `json:"serviceLevel" yaml:"serviceLevel"`
	AverageSpeedOfAnswer Stat    `json:"averageSpeedOfAnswer" yaml:"averageSpeedOfAnswer"`
}

// Snapshot returns a ServiceLevelSnapshot
func (s *SLTracker) Snapshot() ServiceLevelSnapshot {
	return ServiceLevelSnapshot{
		ThresholdSecs:        s.ThresholdSecs,
		AnsweredInSL:         s.AnsweredInSL,
		TotalIncoming:        s.TotalIncoming,
		ServiceLevel:         s.CurrentSL(),
		AverageSpeedOfAnswer: s.AverageSpeedOfAnswer(),
	}
}

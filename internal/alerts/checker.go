package alerts

import (
	"fmt"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/metrics"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

const (
	RuleAbandonmentLow  = "abandonment_low"
	RuleAbandonmentHigh = "abandonment_high"
	RuleServiceLevelLow = "service_level_low"
)

// Thresholds bound the acceptable KPI ranges. Rates are fractions.
type Thresholds struct {
	AbandonMin         float64
	AbandonMax         float64
	ServiceLevelTarget float64
}

// DefaultThresholds is the 2-5% abandonment band and an 80% service level
var DefaultThresholds = Thresholds{
	AbandonMin:         0.02,
	AbandonMax:         0.05,
	ServiceLevelTarget: 0.80,
}

// CheckSummary evaluates alert rules for every branch, the company and every
// queue, and stores the result in s.Alerts. Undefined KPIs never alert.
func CheckSummary(s *aggregator.Summary, th Thresholds) []types.Alert {
	found := []types.Alert{}

	scopes := append(append([]aggregator.BranchSummary{}, s.Branches...), s.Company)
	for _, b := range scopes {
		found = append(found, checkAbandonment(b.Name, b.AbandonmentRate, th)...)
		found = append(found, checkServiceLevel(b.Name, b.ServiceLevel, th)...)
	}

	for _, q := range s.QueueAbandonment {
		found = append(found, checkAbandonment("Queue "+q.Key, q.Stat, th)...)
	}

	s.Alerts = found
	metrics.Get().RecordAlerts(len(found))
	return found
}

func checkAbandonment(scope string, rate aggregator.Stat, th Thresholds) []types.Alert {
	if !rate.Valid {
		return nil
	}

	switch {
	case rate.Value > th.AbandonMax:
		severity := types.SeverityWarning
		if rate.Value > 2*th.AbandonMax {
			severity = types.SeverityCritical
		}
		return []types.Alert{{
			Rule:     RuleAbandonmentHigh,
			Severity: severity,
			Scope:    scope,
			Message:  fmt.Sprintf("abandonment %s above %s", rate.Percent(), formatPct(th.AbandonMax)),
		}}
	case rate.Value < th.AbandonMin:
		return []types.Alert{{
			Rule:     RuleAbandonmentLow,
			Severity: types.SeverityWarning,
			Scope:    scope,
			Message:  fmt.Sprintf("abandonment %s below %s", rate.Percent(), formatPct(th.AbandonMin)),
		}}
	}
	return nil
}

func checkServiceLevel(scope string, sl aggregator.ServiceLevelSnapshot, th Thresholds) []types.Alert {
	if !sl.ServiceLevel.Valid || sl.ServiceLevel.Value >= th.ServiceLevelTarget {
		return nil
	}

	severity := types.SeverityWarning
	if sl.ServiceLevel.Value < th.ServiceLevelTarget/2 {
		severity = types.SeverityCritical
	}
	return []types.Alert{{
		Rule:     RuleServiceLevelLow,
		Severity: severity,
		Scope:    scope,
		Message: fmt.Sprintf("service level %s within %gs, target %s",
			sl.ServiceLevel.Percent(), sl.ThresholdSecs, formatPct(th.ServiceLevelTarget)),
	}}
}

func formatPct(f float64) string {
	return aggregator.Of(f).Percent()
}

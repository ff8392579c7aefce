package types

// AlertSeverity represents the severity of a KPI alert
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert represents a KPI outside its target range
type Alert struct {
	Rule     string        `json:"rule" yaml:"rule"`
	Severity AlertSeverity `json:"severity" yaml:"severity"`
	Scope    string        `json:"scope" yaml:"scope"` // branch, queue or "Company"
	Message  string        `json:"message" yaml:"message"`
}

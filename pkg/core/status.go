package core

import "fmt"

// Status is the outcome reported to the monitoring supervisor.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

// String returns the level label printed at the start of the plugin output.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	case StatusUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ExitCode maps the status to the plugin exit code contract.
// OK=0, WARNING=1, CRITICAL=2, UNKNOWN=3. Anything out of range is UNKNOWN.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK, StatusWarning, StatusCritical, StatusUnknown:
		return int(s)
	default:
		return int(StatusUnknown)
	}
}

// Thresholds holds the infected file counts at which a run escalates.
// Critical is evaluated before Warning.
type Thresholds struct {
	Warning  int `yaml:"warning" json:"warning"`
	Critical int `yaml:"critical" json:"critical"`
}

// DefaultThresholds reports any infected file as CRITICAL.
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 1, Critical: 1}
}

// Result is the single status emitted per run.
type Result struct {
	Status   Status `json:"status"`
	Message  string `json:"message"`
	Summary  string `json:"summary,omitempty"`  // raw scan summary block, if one was found
	PerfData string `json:"perfdata,omitempty"` // nagios performance data, without the leading pipe
}

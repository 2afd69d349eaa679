package check

import (
	"fmt"

	"github.com/modoterra/check-clamav/pkg/core"
)

// Evaluate compares an infected file count against the thresholds.
// Critical is checked first, so it shadows warning whenever both match.
func Evaluate(count int, t core.Thresholds) core.Result {
	status := core.StatusOK
	switch {
	case count >= t.Critical:
		status = core.StatusCritical
	case count >= t.Warning:
		status = core.StatusWarning
	}
	return core.Result{
		Status:  status,
		Message: fmt.Sprintf("%d infected file(s) detected", count),
	}
}

// Unknown turns a failed precondition into an UNKNOWN result. Callers wrap
// err so its text names the precondition.
func Unknown(err error) core.Result {
	return core.Result{Status: core.StatusUnknown, Message: err.Error()}
}

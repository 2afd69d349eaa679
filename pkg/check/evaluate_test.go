package check

import (
	"errors"
	"fmt"
	"testing"

	"github.com/modoterra/check-clamav/pkg/core"
)

func TestEvaluateDefaultThresholds(t *testing.T) {
	th := core.DefaultThresholds()
	for n := 0; n <= 20; n++ {
		res := Evaluate(n, th)
		want := core.StatusCritical
		if n == 0 {
			want = core.StatusOK
		}
		if res.Status != want {
			t.Errorf("n=%d: got %s, want %s", n, res.Status, want)
		}
	}
}

func TestEvaluateWarningBelowCritical(t *testing.T) {
	th := core.Thresholds{Warning: 2, Critical: 5}
	tests := []struct {
		count int
		want  core.Status
	}{
		{0, core.StatusOK},
		{1, core.StatusOK},
		{2, core.StatusWarning},
		{4, core.StatusWarning},
		{5, core.StatusCritical},
		{100, core.StatusCritical},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			if got := Evaluate(tt.count, th).Status; got != tt.want {
				t.Errorf("Evaluate(%d) = %s, want %s", tt.count, got, tt.want)
			}
		})
	}
}

func TestEvaluateInvertedThresholdsCriticalWins(t *testing.T) {
	th := core.Thresholds{Warning: 10, Critical: 3}
	if got := Evaluate(5, th).Status; got != core.StatusCritical {
		t.Errorf("expected CRITICAL, got %s", got)
	}
	if got := Evaluate(12, th).Status; got != core.StatusCritical {
		t.Errorf("expected CRITICAL, got %s", got)
	}
	if got := Evaluate(2, th).Status; got != core.StatusOK {
		t.Errorf("expected OK, got %s", got)
	}
}

func TestEvaluateZeroThresholds(t *testing.T) {
	if got := Evaluate(0, core.Thresholds{}).Status; got != core.StatusCritical {
		t.Errorf("critical=0 must match a zero count, got %s", got)
	}
}

func TestEvaluateMessage(t *testing.T) {
	tests := []struct {
		count int
		th    core.Thresholds
		line  string
	}{
		{0, core.DefaultThresholds(), "OK: 0 infected file(s) detected"},
		{3, core.DefaultThresholds(), "CRITICAL: 3 infected file(s) detected"},
		{2, core.Thresholds{Warning: 1, Critical: 5}, "WARNING: 2 infected file(s) detected"},
	}
	for _, tt := range tests {
		if got := statusLine(Evaluate(tt.count, tt.th)); got != tt.line {
			t.Errorf("got %q, want %q", got, tt.line)
		}
	}
}

func TestUnknown(t *testing.T) {
	res := Unknown(errors.New("scan summary not found in /tmp/x.log"))
	if res.Status != core.StatusUnknown {
		t.Errorf("expected UNKNOWN, got %s", res.Status)
	}
	if statusLine(res) != "UNKNOWN: scan summary not found in /tmp/x.log" {
		t.Errorf("unexpected line %q", statusLine(res))
	}
}

func statusLine(r core.Result) string {
	return fmt.Sprintf("%s: %s", r.Status, r.Message)
}

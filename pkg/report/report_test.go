package report

import (
	"bytes"
	"testing"

	"github.com/modoterra/check-clamav/pkg/core"
)

const block = "----------- SCAN SUMMARY -----------\nScanned files: 3\nInfected files: 0"

func TestWritePlainWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	res := core.Result{Status: core.StatusOK, Message: "0 infected file(s) detected", Summary: block}
	if err := New(&buf).Write(res, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "OK: 0 infected file(s) detected\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestWriteVerboseAppendsSummary(t *testing.T) {
	var buf bytes.Buffer
	res := core.Result{Status: core.StatusCritical, Message: "3 infected file(s) detected", Summary: block}
	if err := New(&buf).Write(res, true); err != nil {
		t.Fatal(err)
	}
	want := "CRITICAL: 3 infected file(s) detected\n" + block + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteVerboseWithoutSummary(t *testing.T) {
	var buf bytes.Buffer
	res := core.Result{Status: core.StatusUnknown, Message: "scan summary not found in /x"}
	if err := New(&buf).Write(res, true); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "UNKNOWN: scan summary not found in /x\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestWritePerfData(t *testing.T) {
	var buf bytes.Buffer
	res := core.Result{Status: core.StatusWarning, Message: "2 infected file(s) detected", PerfData: "infected=2;1;5;0"}
	if err := New(&buf).Write(res, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "WARNING: 2 infected file(s) detected | infected=2;1;5;0\n" {
		t.Errorf("unexpected output %q", got)
	}
}

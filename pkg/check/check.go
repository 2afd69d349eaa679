// Package check runs the probe: it reads the scanner log, pulls the infected
// file count from the last scan summary and turns it into a plugin status.
package check

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/modoterra/check-clamav/pkg/core"
	"github.com/modoterra/check-clamav/pkg/freshness"
	"github.com/modoterra/check-clamav/pkg/summary"
)

// Config is built once per invocation and handed to the Checker.
type Config struct {
	LogFile    string
	Expiry     string
	Thresholds core.Thresholds
	Verbose    bool
	PerfData   bool
}

// DefaultConfig returns the settings used when no flag or file overrides them.
func DefaultConfig() Config {
	return Config{
		Expiry:     freshness.DefaultExpiry,
		Thresholds: core.DefaultThresholds(),
	}
}

// Checker evaluates one log file.
type Checker struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a checker for cfg.
func New(cfg Config, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{cfg: cfg, logger: logger, now: time.Now}
}

// SetClock replaces the time source used for the freshness check.
func (c *Checker) SetClock(now func() time.Time) {
	c.now = now
}

// Run performs the check and returns exactly one result. Every precondition
// failure ends the run as UNKNOWN before thresholds are looked at.
func (c *Checker) Run() core.Result {
	expiry, err := freshness.ParseExpiry(c.cfg.Expiry)
	if err != nil {
		c.logger.Debug("expiry rejected", "expiry", c.cfg.Expiry, "err", err)
		return Unknown(err)
	}

	f, err := os.Open(c.cfg.LogFile)
	if err != nil {
		c.logger.Debug("open log failed", "path", c.cfg.LogFile, "err", err)
		return Unknown(fmt.Errorf("cannot read log file %s: %w", c.cfg.LogFile, err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown(fmt.Errorf("cannot read log file %s: %w", c.cfg.LogFile, err))
	}
	if info.IsDir() {
		return Unknown(fmt.Errorf("cannot read log file %s: is a directory", c.cfg.LogFile))
	}

	block, err := summary.Extract(f)
	if err != nil {
		c.logger.Debug("summary extraction failed", "path", c.cfg.LogFile, "err", err)
		return Unknown(fmt.Errorf("%w in %s", err, c.cfg.LogFile))
	}
	c.logger.Debug("summary located", "path", c.cfg.LogFile, "lines", len(block.Lines()))

	count, err := block.InfectedFiles()
	if err != nil {
		res := Unknown(err)
		res.Summary = block.Text()
		return res
	}

	if err := freshness.Check(c.cfg.LogFile, info.ModTime(), expiry, c.now()); err != nil {
		c.logger.Debug("log is stale", "path", c.cfg.LogFile, "mtime", info.ModTime(), "expiry", expiry)
		res := Unknown(fmt.Errorf("%w (expiry %s)", err, c.cfg.Expiry))
		res.Summary = block.Text()
		return res
	}

	res := Evaluate(count, c.cfg.Thresholds)
	res.Summary = block.Text()
	if c.cfg.PerfData {
		res.PerfData = PerfData(count, c.cfg.Thresholds, block.Fields())
	}
	c.logger.Debug("evaluated", "infected", count, "warning", c.cfg.Thresholds.Warning,
		"critical", c.cfg.Thresholds.Critical, "status", res.Status)
	return res
}

// perfCounters maps summary fields to performance data labels.
var perfCounters = map[string]string{
	"Scanned files":       "scanned_files",
	"Scanned directories": "scanned_dirs",
	"Known viruses":       "known_viruses",
}

// PerfData renders nagios performance data for a run. The infected count
// carries the thresholds; other integer counters from the summary follow in
// label order.
func PerfData(count int, t core.Thresholds, fields map[string]string) string {
	parts := []string{fmt.Sprintf("infected=%d;%d;%d;0", count, t.Warning, t.Critical)}

	var extra []string
	for key, label := range perfCounters {
		v, ok := fields[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		extra = append(extra, fmt.Sprintf("%s=%d;;;0", label, n))
	}
	sort.Strings(extra)

	return strings.Join(append(parts, extra...), " ")
}

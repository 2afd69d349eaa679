package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/modoterra/check-clamav/internal/buildinfo"
	"github.com/modoterra/check-clamav/pkg/check"
	"github.com/modoterra/check-clamav/pkg/core"
	"github.com/modoterra/check-clamav/pkg/manifest"
	"github.com/modoterra/check-clamav/pkg/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks a bad invocation; usage goes to stderr before exiting UNKNOWN.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

type options struct {
	configPath string
	logFile    string
	expiry     string
	warning    int
	critical   int
	verbose    bool
	perfData   bool
	version    bool
	debug      bool
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := core.StatusOK.ExitCode()

	cmd := newRootCmd(stdout, stderr, &exitCode)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(stderr, cmd.UsageString())
		}
		if werr := report.New(stdout).Write(check.Unknown(err), false); werr != nil {
			newLogger(stderr, false).Error("write report", "err", werr)
		}
		return core.StatusUnknown.ExitCode()
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	defaults := check.DefaultConfig()
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "check_clamav -l <logfile> [flags]",
		Short: "Monitoring plugin that checks the last ClamAV scan summary",
		Long: `check_clamav reads a clamscan log, finds the last "SCAN SUMMARY" block and
reports the number of infected files it lists.

The critical threshold is evaluated before the warning threshold, so with the
defaults (warning=1, critical=1) any infected file is reported as CRITICAL.
A log older than the expiry window is reported as UNKNOWN.

Exit codes: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			if opts.version {
				fmt.Fprintf(c.OutOrStdout(), "check_clamav %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
				return nil
			}

			logger := newLogger(c.ErrOrStderr(), opts.debug)

			cfg, err := buildConfig(c.Flags(), opts)
			if err != nil {
				return err
			}
			logger.Debug("configuration", "logfile", cfg.LogFile, "expiry", cfg.Expiry,
				"warning", cfg.Thresholds.Warning, "critical", cfg.Thresholds.Critical)

			res := check.New(cfg, logger).Run()
			if err := report.New(c.OutOrStdout()).Write(res, cfg.Verbose); err != nil {
				logger.Error("write report", "err", err)
			}
			*exitCode = res.Status.ExitCode()
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.Flags()
	f.StringVarP(&opts.logFile, "logfile", "l", "", "path to the clamscan log file (required)")
	f.StringVarP(&opts.expiry, "expiry", "e", defaults.Expiry, `maximum log age, e.g. "1 hour", "7 days"`)
	f.IntVarP(&opts.warning, "warning", "w", defaults.Thresholds.Warning, "infected files for WARNING")
	f.IntVarP(&opts.critical, "critical", "c", defaults.Thresholds.Critical, "infected files for CRITICAL (checked before warning)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "append the scan summary to the output")
	f.BoolVarP(&opts.version, "version", "V", false, "print version information and exit")
	f.StringVar(&opts.configPath, "config", "", "YAML file with probe defaults")
	f.BoolVar(&opts.perfData, "perfdata", false, "append performance data to the status line")
	f.BoolVar(&opts.debug, "debug", false, "log check progress to stderr")

	return cmd
}

// buildConfig layers the probe file, when given, under the flags that were
// set explicitly on the command line.
func buildConfig(flags *pflag.FlagSet, opts *options) (check.Config, error) {
	probe := manifest.Default()
	if opts.configPath != "" {
		p, err := manifest.Load(opts.configPath)
		if err != nil {
			return check.Config{}, err
		}
		if errs := manifest.Validate(p); len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return check.Config{}, fmt.Errorf("invalid config %s: %s", opts.configPath, strings.Join(msgs, "; "))
		}
		probe = p
	}

	cfg := check.Config{
		LogFile:    probe.LogFile,
		Expiry:     probe.Expiry,
		Thresholds: probe.Thresholds,
		Verbose:    probe.Verbose,
		PerfData:   probe.PerfData,
	}
	if flags.Changed("logfile") {
		cfg.LogFile = opts.logFile
	}
	if flags.Changed("expiry") {
		cfg.Expiry = opts.expiry
	}
	if flags.Changed("warning") {
		cfg.Thresholds.Warning = opts.warning
	}
	if flags.Changed("critical") {
		cfg.Thresholds.Critical = opts.critical
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("perfdata") {
		cfg.PerfData = opts.perfData
	}

	if cfg.LogFile == "" {
		return check.Config{}, usageError{errors.New("missing required option --logfile")}
	}
	if cfg.Thresholds.Warning < 0 || cfg.Thresholds.Critical < 0 {
		return check.Config{}, usageError{fmt.Errorf("thresholds must be >= 0, got warning=%d critical=%d",
			cfg.Thresholds.Warning, cfg.Thresholds.Critical)}
	}
	return cfg, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Package freshness decides whether a log is recent enough to be trusted.
package freshness

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultExpiry is the window used when none is configured.
const DefaultExpiry = "48 hours"

var (
	ErrBadExpiry = errors.New("invalid expiry")
	ErrStale     = errors.New("stale")
)

const day = 24 * time.Hour

var units = map[string]time.Duration{
	"sec":       time.Second,
	"second":    time.Second,
	"min":       time.Minute,
	"minute":    time.Minute,
	"hr":        time.Hour,
	"hour":      time.Hour,
	"day":       day,
	"week":      7 * day,
	"fortnight": 14 * day,
	"month":     30 * day,
	"year":      365 * day,
}

// ParseExpiry turns a human-readable window such as "48 hours", "7 days" or
// "1 day 12 hours" into a duration. Go duration syntax ("36h") is accepted
// too. A unit with no count counts once ("hour" is one hour).
func ParseExpiry(expr string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrBadExpiry)
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("%w %q: negative window", ErrBadExpiry, expr)
		}
		return d, nil
	}

	var (
		total   time.Duration
		count   int64
		pending bool
	)
	for _, tok := range strings.Fields(s) {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			if pending {
				return 0, fmt.Errorf("%w %q: count without a unit", ErrBadExpiry, expr)
			}
			if n < 0 {
				return 0, fmt.Errorf("%w %q: negative window", ErrBadExpiry, expr)
			}
			count, pending = n, true
			continue
		}
		unit, ok := units[strings.TrimSuffix(tok, "s")]
		if !ok {
			return 0, fmt.Errorf("%w %q: unknown unit %q", ErrBadExpiry, expr, tok)
		}
		if !pending {
			count = 1
		}
		if count > math.MaxInt64/int64(unit) {
			return 0, fmt.Errorf("%w %q: out of range", ErrBadExpiry, expr)
		}
		term := time.Duration(count) * unit
		if total > math.MaxInt64-term {
			return 0, fmt.Errorf("%w %q: out of range", ErrBadExpiry, expr)
		}
		total += term
		pending = false
	}
	if pending {
		return 0, fmt.Errorf("%w %q: count without a unit", ErrBadExpiry, expr)
	}
	return total, nil
}

// IsFresh reports whether lastModified (epoch seconds) falls inside the
// window ending at now. The boundary itself is fresh.
func IsFresh(lastModified int64, expiry time.Duration, now time.Time) bool {
	threshold := now.Add(-expiry).Unix()
	return lastModified >= threshold
}

// Check returns an error wrapping ErrStale when the file at path, last
// modified at modTime, is outside the window.
func Check(path string, modTime time.Time, expiry time.Duration, now time.Time) error {
	if IsFresh(modTime.Unix(), expiry, now) {
		return nil
	}
	return fmt.Errorf("log file %s is %w: last modified %s", path, ErrStale, humanize.RelTime(modTime, now, "ago", "from now"))
}

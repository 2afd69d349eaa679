// Package summary locates the last clamscan scan summary in a log and reads
// the counters it carries.
package summary

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Marker opens every summary block clamscan appends to its log.
const Marker = "----------- SCAN SUMMARY -----------"

// InfectedLabel prefixes the line holding the infected file count.
const InfectedLabel = "Infected files:"

var (
	ErrNoSummary        = errors.New("scan summary not found")
	ErrNoInfectedCount  = errors.New("infected file count not found in scan summary")
	ErrBadInfectedCount = errors.New("infected file count is not a valid number")
)

// Block is the text from the last summary marker to the end of the log.
type Block struct {
	lines []string
}

// Extract folds over r once and returns the block that starts at the last
// marker line. Each marker discards whatever was held before it, so only the
// final block survives. A log without a marker yields ErrNoSummary.
func Extract(r io.Reader) (Block, error) {
	var (
		held    []string
		holding bool
	)

	err := scanLines(r, func(line string) {
		if line == Marker {
			held = append(held[:0], line)
			holding = true
			return
		}
		if holding {
			held = append(held, line)
		}
	})
	if err != nil {
		return Block{}, fmt.Errorf("read log: %w", err)
	}
	if !holding {
		return Block{}, ErrNoSummary
	}

	lines := make([]string, len(held))
	copy(lines, held)
	return Block{lines: lines}, nil
}

// Lines returns the block lines, marker first.
func (b Block) Lines() []string {
	return b.lines
}

// Text returns the raw block as it appeared in the log.
func (b Block) Text() string {
	return strings.Join(b.lines, "\n")
}

// InfectedFiles parses the trailing token of the "Infected files:" line.
// A missing line and an unparsable value are distinct errors, and neither
// is ever read as zero.
func (b Block) InfectedFiles() (int, error) {
	for _, line := range b.lines {
		if !strings.HasPrefix(line, InfectedLabel) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, InfectedLabel))
		if len(fields) == 0 {
			return 0, fmt.Errorf("%w: empty value", ErrBadInfectedCount)
		}
		token := fields[len(fields)-1]
		n, err := strconv.Atoi(token)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadInfectedCount, token)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value %d", ErrBadInfectedCount, n)
		}
		return n, nil
	}
	return 0, ErrNoInfectedCount
}

// Fields returns every "Key: value" line of the block. Later duplicates win.
func (b Block) Fields() map[string]string {
	fields := make(map[string]string)
	for _, line := range b.lines {
		if line == Marker {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}

// Package manifest loads the optional YAML file that holds probe defaults.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modoterra/check-clamav/pkg/core"
	"github.com/modoterra/check-clamav/pkg/freshness"
)

// Probe represents a check_clamav.yaml configuration file.
type Probe struct {
	Version    int             `yaml:"version"    json:"version"`
	LogFile    string          `yaml:"logfile"    json:"logfile"`
	Expiry     string          `yaml:"expiry"     json:"expiry"`
	Thresholds core.Thresholds `yaml:"thresholds" json:"thresholds"`
	Verbose    bool            `yaml:"verbose"    json:"verbose"`
	PerfData   bool            `yaml:"perfdata"   json:"perfdata"`
}

// Default returns the probe settings used when no file is given.
func Default() *Probe {
	return &Probe{
		Version:    1,
		Expiry:     freshness.DefaultExpiry,
		Thresholds: core.DefaultThresholds(),
	}
}

// Parse decodes a probe file over the defaults. Unknown keys are rejected.
// Environment references such as ${LOG_DIR} in logfile are expanded.
func Parse(data []byte) (*Probe, error) {
	p := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse probe config: %w", err)
	}

	p.LogFile = os.ExpandEnv(p.LogFile)
	return p, nil
}

// Load reads and parses the probe file at path.
func Load(path string) (*Probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read probe config: %w", err)
	}
	return Parse(data)
}

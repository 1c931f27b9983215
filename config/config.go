// Package config loads the tunable parameters of the heuristic factoring
// dispatcher from a JSON file, with sensible defaults when none is given.
package config

import (
	"encoding/json"
	"os"

	"github.com/hacatu/nut/factor"
	"github.com/pkg/errors"
)

// FactorConfig is the JSON-loadable form of factor.Config, bounding the
// Pollard-rho and Lenstra elliptic-curve stages of the heuristic factoring
// dispatcher.
type FactorConfig struct {
	// PollardMax is the largest cofactor Pollard-Brent is tried on before
	// escalating to Lenstra ECF.
	PollardMax uint64 `json:"pollard_max"`
	// PollardStride is the number of steps batched between gcd checks in
	// Pollard-Brent's cycle detection.
	PollardStride uint64 `json:"pollard_stride"`
	// LenstraMax is the largest cofactor Lenstra ECF is tried on before
	// Heuristic gives up and returns the unfactored remainder.
	LenstraMax uint64 `json:"lenstra_max"`
	// LenstraBFac bounds how many random curves Lenstra ECF tries per
	// cofactor before giving up on it.
	LenstraBFac uint64 `json:"lenstra_bfac"`
}

// DefaultFactorConfig returns the configuration the heuristic dispatcher
// uses when no override is loaded, matching factor.DefaultConfig.
func DefaultFactorConfig() FactorConfig {
	d := factor.DefaultConfig()
	return FactorConfig{
		PollardMax:    d.PollardMax,
		PollardStride: d.PollardStride,
		LenstraMax:    d.LenstraMax,
		LenstraBFac:   uint64(d.LenstraBFac),
	}
}

// ToFactorConfig converts the JSON-loadable configuration into the
// factor.Config value factor.Heuristic actually takes.
func (c FactorConfig) ToFactorConfig() factor.Config {
	return factor.Config{
		PollardMax:    c.PollardMax,
		PollardStride: c.PollardStride,
		LenstraMax:    c.LenstraMax,
		LenstraBFac:   int(c.LenstraBFac),
	}
}

// LoadFactorConfigJSON reads a FactorConfig from a JSON file at path,
// starting from DefaultFactorConfig so an omitted field keeps its default
// rather than zeroing out.
func LoadFactorConfigJSON(path string) (FactorConfig, error) {
	cfg := DefaultFactorConfig()
	file, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "opening factor config %q", path)
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding factor config %q", path)
	}
	return cfg, nil
}

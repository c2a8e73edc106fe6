// Package config loads and validates the processing/solution/file
// configuration the rest of gnssppp runs on, centralizing bounds
// checks that would otherwise be scattered ad hoc across the
// processing pipeline into one go-playground/validator/v10
// struct-tag pass at load time.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gnssppp/internal/gnss"
	"gnssppp/internal/ppp"
)

var validate = validator.New()

// Config bundles the three option groups a processing run needs.
type Config struct {
	Processing gnss.ProcessingOptions `yaml:"processing"`
	Solution   gnss.SolutionOptions   `yaml:"solution"`
	Files      gnss.FileOptions       `yaml:"files"`
}

// Default returns a baseline dual-frequency kinematic PPP
// configuration (GPS-only, 10 degree elevation mask), as a starting
// point for callers that only want to override a few fields.
func Default() Config {
	return Config{
		Processing: gnss.ProcessingOptions{
			Mode:      ppp.ModeKinematic,
			Nf:        2,
			NoIter:    1,
			NavSys:    gnss.SysGPS,
			Elmin:     10.0 * gnss.D2R,
			IonoOpt:   ppp.IonoOptEst,
			TropOpt:   ppp.TropOptEst,
			ThresSlip: 0.05,
			MaxInno:   30.0,
			Prn:       [6]float64{1e-4, 1e-3, 1e-4, 1e-4, 1e-4, 10.0},
		},
		Solution: gnss.SolutionOptions{
			TimeFormat:   1,
			TimeDecimals: 3,
		},
	}
}

// Load reads a YAML configuration file and validates it. Unset fields
// are left at Go's zero value, not merged with Default — callers that
// want defaults should start from Default() and override from the
// parsed struct instead.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate runs struct-tag validation over the processing and
// solution option groups.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg.Processing); err != nil {
		return fmt.Errorf("config: invalid processing options: %w", err)
	}
	if err := validate.Struct(cfg.Solution); err != nil {
		return fmt.Errorf("config: invalid solution options: %w", err)
	}
	return nil
}

package analysis

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CharacteristicConfig holds per-characteristic analysis settings.
// Zero values select defaults.
type CharacteristicConfig struct {
	// UseAbsoluteValues folds the signal to absolute values, correcting
	// known sign defects (e.g. bidirectional sensor noise around zero).
	UseAbsoluteValues bool `yaml:"use_absolute_values"`
	// SubgroupSize for μ-STAB (default: 5).
	SubgroupSize int `yaml:"subgroup_size"`
	// WindowSize for the trend; 0 picks max(20, n/10) per horizon.
	WindowSize int `yaml:"window_size"`
	// Step between trend windows (default: 5).
	Step int `yaml:"step"`
}

// Settings holds the global analysis settings shared by all characteristics.
type Settings struct {
	// ResultsFolder receives the rendered charts.
	ResultsFolder string `yaml:"results_folder"`
	// HorizonsMonths are the trailing reporting horizons (default: 3, 12, 36).
	HorizonsMonths []int `yaml:"horizons_months"`
	// MinSamples is the minimum number of measurements per characteristic
	// and per horizon (default: 10).
	MinSamples int `yaml:"min_samples"`
	// Since optionally discards measurements before this date.
	Since *time.Time `yaml:"since"`
}

// Config is the full analysis run configuration: one QM export combined
// with a mapping from characteristic ID to its settings.
type Config struct {
	ExportPath      string                          `yaml:"export_path"`
	Characteristics map[string]CharacteristicConfig `yaml:"characteristics"`
	Settings        Settings                        `yaml:"settings"`
}

// LoadConfig reads a YAML run configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Settings.applyDefaults()
	return &cfg, nil
}

func (s *Settings) applyDefaults() {
	if len(s.HorizonsMonths) == 0 {
		s.HorizonsMonths = []int{3, 12, 36}
	}
	if s.MinSamples == 0 {
		s.MinSamples = 10
	}
}

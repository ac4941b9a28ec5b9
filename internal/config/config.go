// Package config loads spendwx configuration, including every statistical
// threshold the engine treats as a product-tuning constant.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all spendwx configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Thresholds ThresholdsConfig `toml:"thresholds"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	MaxInsights int    `toml:"max_insights"`
	LedgerPath  string `toml:"ledger_path,omitempty"`
	Currency    string `toml:"currency"`
}

// ThresholdsConfig exposes the engine's tuning constants. These were
// calibrated on real spending data, not derived from first principles;
// override them here rather than editing control flow.
type ThresholdsConfig struct {
	// Anomaly z-score tiers; ties land on the severer side.
	MediumZ float64 `toml:"medium_z"`
	HighZ   float64 `toml:"high_z"`
	// Fraction of the remaining limit one purchase may consume before
	// severity is forced to medium.
	BudgetEscalation float64 `toml:"budget_escalation"`

	// Forecast trend dead-band around the limit.
	TrendDeadBand float64 `toml:"trend_dead_band"`

	// Weather condition ratios.
	StormyRatio        float64 `toml:"stormy_ratio"`
	RainyRatio         float64 `toml:"rainy_ratio"`
	CloudyRatio        float64 `toml:"cloudy_ratio"`
	WeekendCloudyRatio float64 `toml:"weekend_cloudy_ratio"`
	PartlyCloudyRatio  float64 `toml:"partly_cloudy_ratio"`

	// Insight look-ahead horizon and urgency promotion, in days.
	HorizonDays int `toml:"horizon_days"`
	UrgentDays  int `toml:"urgent_days"`

	// History windowing.
	LookbackDays int     `toml:"lookback_days"`
	MaxPoints    int     `toml:"max_points"`
	HalfLifeDays float64 `toml:"half_life_days"`
	UpcomingDays int     `toml:"upcoming_days"`
}

// DefaultConfig returns the shipped configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MaxInsights: 5,
			Currency:    "$",
		},
		Thresholds: ThresholdsConfig{
			MediumZ:            1.5,
			HighZ:              3.0,
			BudgetEscalation:   0.5,
			TrendDeadBand:      0.10,
			StormyRatio:        1.5,
			RainyRatio:         1.2,
			CloudyRatio:        0.9,
			WeekendCloudyRatio: 0.7,
			PartlyCloudyRatio:  0.5,
			HorizonDays:        10,
			UrgentDays:         3,
			LookbackDays:       90,
			MaxPoints:          50,
			HalfLifeDays:       7,
			UpcomingDays:       7,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwx")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spendwx")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the ledger.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "spendwx")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "spendwx")
}

// LedgerPath returns the configured ledger location, or the default under
// the data directory.
func (c Config) LedgerPath() string {
	if c.General.LedgerPath != "" {
		return c.General.LedgerPath
	}
	return filepath.Join(DataDir(), "ledger.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return loadFrom(ConfigPath())
}

func loadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spendwx/spendwx/internal/anomaly"
	"github.com/spendwx/spendwx/internal/config"
	"github.com/spendwx/spendwx/internal/forecast"
	"github.com/spendwx/spendwx/internal/insight"
	"github.com/spendwx/spendwx/internal/pipeline"
	"github.com/spendwx/spendwx/internal/store"
	"github.com/spendwx/spendwx/internal/weather"

	"github.com/spf13/cobra"
)

var (
	flagLedger string
	flagAsOf   string
	flagQuiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "spendwx",
	Short: "Spending weather for your wallet",
	Long:  "Track spending, catch anomalies, forecast budgets, and get a daily financial weather report.",
	RunE:  runWeather,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLedger, "ledger", "", "Ledger database path (default: config or XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Evaluate as of this date (YYYY-MM-DD, default: now)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file, falling back to defaults.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %s\n", err)
	}
	return cfg
}

// openLedger opens the SQLite ledger the commands read and write.
func openLedger(cfg config.Config) (*store.Ledger, error) {
	path := cfg.LedgerPath()
	if flagLedger != "" {
		path = flagLedger
	}
	ledger, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return ledger, nil
}

// newEngine maps the threshold configuration onto the engine components.
// Each component config starts from its shipped defaults, then takes the
// loaded values verbatim: config loading merges the file over defaults, so
// a threshold deliberately set to zero stays zero here.
func newEngine(cfg config.Config) *pipeline.Engine {
	t := cfg.Thresholds

	detectorCfg := anomaly.DefaultConfig()
	detectorCfg.MediumZ = t.MediumZ
	detectorCfg.HighZ = t.HighZ
	detectorCfg.BudgetEscalation = t.BudgetEscalation

	forecasterCfg := forecast.DefaultConfig()
	forecasterCfg.TrendDeadBand = t.TrendDeadBand

	classifierCfg := weather.DefaultConfig()
	classifierCfg.StormyRatio = t.StormyRatio
	classifierCfg.RainyRatio = t.RainyRatio
	classifierCfg.CloudyRatio = t.CloudyRatio
	classifierCfg.WeekendCloudyRatio = t.WeekendCloudyRatio
	classifierCfg.PartlyCloudyRatio = t.PartlyCloudyRatio

	rankerCfg := insight.DefaultConfig()
	rankerCfg.HorizonDays = t.HorizonDays
	rankerCfg.UrgentDays = t.UrgentDays

	return &pipeline.Engine{
		Detector:   anomaly.New(detectorCfg),
		Forecaster: forecast.New(forecasterCfg),
		Classifier: weather.New(classifierCfg),
		Ranker:     insight.New(rankerCfg),
		Window: pipeline.WindowOptions{
			LookbackDays: t.LookbackDays,
			MaxPoints:    t.MaxPoints,
		},
		HalfLifeDays:      t.HalfLifeDays,
		SpendingTrendDays: t.LookbackDays / 3,
		UpcomingDays:      t.UpcomingDays,
		MaxInsights:       cfg.General.MaxInsights,
	}
}

// resolveAsOf parses --as-of, defaulting to now.
func resolveAsOf() (time.Time, error) {
	if flagAsOf == "" {
		return time.Now(), nil
	}
	asOf, err := time.ParseInLocation("2006-01-02", flagAsOf, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD)", flagAsOf)
	}
	return asOf, nil
}

// parseAmount converts a major-unit money string like "12.34" into minor
// units. A bare integer is whole major units.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, ",", "")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var cents int64
	switch len(frac) {
	case 0:
	case 1:
		frac += "0"
		fallthrough
	case 2:
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	default:
		return 0, fmt.Errorf("invalid amount %q: at most two decimal places", s)
	}

	total := major*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/config"
	"github.com/spendwx/spendwx/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	currency := cfg.General.Currency
	maxInsights := cfg.General.MaxInsights
	lookback := cfg.Thresholds.LookbackDays
	var starterBudgets []string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(
					huh.NewOption("$ (dollar)", "$"),
					huh.NewOption("€ (euro)", "€"),
					huh.NewOption("£ (pound)", "£"),
					huh.NewOption("¥ (yen)", "¥"),
				).
				Value(&currency),
			huh.NewSelect[int]().
				Title("Insights to show at once").
				Options(
					huh.NewOption("3", 3),
					huh.NewOption("5 (recommended)", 5),
					huh.NewOption("10", 10),
				).
				Value(&maxInsights),
			huh.NewSelect[int]().
				Title("History window for anomaly baselines").
				Options(
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days (recommended)", 90),
					huh.NewOption("180 days", 180),
				).
				Value(&lookback),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Categories to budget now (set limits after)").
				Options(categoryOptions()...).
				Value(&starterBudgets),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	cfg.General.Currency = currency
	cfg.General.MaxInsights = maxInsights
	cfg.Thresholds.LookbackDays = lookback

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Seed the selected categories with a zero limit so `budgets` lists
	// them as pending setup.
	if len(starterBudgets) > 0 {
		ledger, err := openLedger(cfg)
		if err != nil {
			return err
		}
		defer ledger.Close()

		for _, c := range starterBudgets {
			if err := ledger.SetBudget(model.CategoryID(c), 0); err != nil {
				return fmt.Errorf("seeding budget for %s: %w", c, err)
			}
		}
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	if len(starterBudgets) > 0 {
		fmt.Printf("  Set limits with `spendwx budgets set <category> <limit>` for: %s\n",
			joinCategories(starterBudgets))
	}
	fmt.Println("  Run `spendwx setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		opts = append(opts, huh.NewOption(string(c), string(c)))
	}
	return opts
}

func joinCategories(cats []string) string {
	out := ""
	for i, c := range cats {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

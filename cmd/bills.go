package cmd

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Show recurring fixed costs",
	RunE:  runBills,
}

var billsAddCmd = &cobra.Command{
	Use:   "add <name> <amount> <due-day>",
	Short: "Add a recurring monthly bill",
	Long: `Add a recurring monthly bill. due-day is the day of the month it is
due (1-31); days past the end of a short month clamp to its last day.`,
	Args: cobra.ExactArgs(3),
	RunE: runBillsAdd,
}

func init() {
	billsCmd.AddCommand(billsAddCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	asOf, err := resolveAsOf()
	if err != nil {
		return err
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	bills, err := ledger.FixedCosts(asOf)
	if err != nil {
		return fmt.Errorf("loading fixed costs: %w", err)
	}

	if len(bills) == 0 {
		fmt.Println("\n  No bills configured. Run `spendwx bills add <name> <amount> <due-day>`.")
		return nil
	}

	symbol := cfg.General.Currency

	fmt.Println()
	rows := make([][]string, 0, len(bills))
	var total int64
	for _, b := range bills {
		rows = append(rows, []string{
			b.Name,
			b.DueDate.Format("Mon Jan 2"),
			cli.FormatAmountCompact(b.Amount, symbol),
		})
		total += b.Amount
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatAmountCompact(total, symbol)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recurring bills",
		Headers: []string{"Bill", "Next due", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	name := args[0]
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	dueDay, err := strconv.Atoi(args[2])
	if err != nil || dueDay < 1 || dueDay > 31 {
		return fmt.Errorf("invalid due day %q (want 1-31)", args[2])
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.AddFixedCost(uuid.NewString(), name, amount, dueDay); err != nil {
		return fmt.Errorf("adding bill: %w", err)
	}

	fmt.Printf("  Added %s: %s on day %d of each month.\n",
		name, cli.FormatAmount(amount, cfg.General.Currency), dueDay)
	return nil
}

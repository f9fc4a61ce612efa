package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/format"
	"github.com/spf13/cobra"
)

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the overview of the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeCache, err := a.offlineSession(cmd)
			if err != nil {
				return err
			}
			defer closeCache()

			return printSummary(cmd.OutOrStdout(), svc.Overview())
		},
	}
}

func printSummary(out io.Writer, o aggregate.OverviewData) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	rows := []struct {
		label string
		value string
	}{
		{"Balance", format.Amount(o.Balance)},
		{"Income", format.Amount(o.Transactions.TotalIncome)},
		{"Expenses", format.Amount(o.Transactions.TotalExpenses)},
		{"Budgets", fmt.Sprintf("%s of %s (%s)", format.Amount(o.Budgets.TotalSpent), format.Amount(o.Budgets.TotalLimit), format.Percent(o.Budgets.OverallPercentageUsed))},
		{"Budgets at risk", fmt.Sprint(o.Budgets.AtRisk)},
		{"Budgets exceeded", fmt.Sprint(o.Budgets.Exceeded)},
		{"Saved in pots", fmt.Sprintf("%s of %s", format.Amount(o.Savings.TotalSaved), format.Amount(o.Savings.TotalTarget))},
		{"Savings account", format.Amount(o.SavingsAccount.Balance)},
		{"Bills per month", format.Amount(o.Bills.TotalMonthly)},
		{"Bills unpaid", fmt.Sprintf("%s (%d)", format.Amount(o.Bills.TotalUnpaid), o.Bills.UnpaidCount)},
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.label, r.value); err != nil {
			return err
		}
	}

	return w.Flush()
}

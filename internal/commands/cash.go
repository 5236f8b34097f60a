package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func newCashCommand(opts *rootOptions) *cobra.Command {
	cashCmd := &cobra.Command{
		Use:   "cash",
		Short: "Physical cash book",
	}
	cashCmd.AddCommand(newCashAddCommand(opts), newCashListCommand(opts))
	return cashCmd
}

func newCashAddCommand(opts *rootOptions) *cobra.Command {
	var dateStr, project, desc, method, refNo, in, out, remarks string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a cash book line",
		Long: `Add records a physical cash movement. Exactly one of --in or --out
must be given. The cash book is independent of the journal; use
'sitebook reconcile' to compare the two.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateOrToday(dateStr)
			if err != nil {
				return err
			}

			line := model.CashBookLine{
				Date:        date,
				ProjectCode: project,
				Description: desc,
				Method:      method,
				RefNo:       refNo,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
				Remarks:     remarks,
			}
			if in != "" {
				if line.Debit, err = parseAmount(in); err != nil {
					return err
				}
			}
			if out != "" {
				if line.Credit, err = parseAmount(out); err != nil {
					return err
				}
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			cashID, err := b.RecordCashLine(cmd.Context(), line)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded cash line %d\n", cashID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&project, "project", "", "project code")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&method, "method", "cash", "payment method (cash, bank, transfer, cheque)")
	cmd.Flags().StringVar(&refNo, "ref", "", "receipt or voucher number")
	cmd.Flags().StringVar(&in, "in", "", "cash received")
	cmd.Flags().StringVar(&out, "out", "", "cash paid out")
	cmd.Flags().StringVar(&remarks, "remarks", "", "remarks")

	return cmd
}

func newCashListCommand(opts *rootOptions) *cobra.Command {
	var project, through string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cash book lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			throughDate, err := parseDateOrZero(through)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			lines, err := b.ListCashLines(cmd.Context(), store.CashFilter{
				ProjectCode: project,
				Through:     throughDate,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s%-10s%-28s%-10s%14s%14s\n",
				"DATE", "PROJECT", "DESCRIPTION", "METHOD", "IN", "OUT")
			running := decimal.Zero
			for _, l := range lines {
				running = running.Add(l.Net())
				fmt.Fprintf(w, "%-12s%-10s%-28s%-10s%14s%14s\n",
					l.Date.Format(model.DateLayout),
					l.ProjectCode,
					l.Description,
					l.Method,
					l.Debit.StringFixed(2),
					l.Credit.StringFixed(2))
			}
			fmt.Fprintf(w, "\n%-46s%14s\n", "Balance", running.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "filter by project code")
	cmd.Flags().StringVar(&through, "through", "", "include lines through YYYY-MM-DD")

	return cmd
}

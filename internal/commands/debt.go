package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func newDebtCommand(opts *rootOptions) *cobra.Command {
	debtCmd := &cobra.Command{
		Use:   "debt",
		Short: "Debts and fixed assets register",
	}
	debtCmd.AddCommand(newDebtAddCommand(opts), newDebtListCommand(opts))
	return debtCmd
}

func newDebtAddCommand(opts *rootOptions) *cobra.Command {
	var kind, name, project, amountStr, start, remarks string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a debt or fixed asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}
			startDate, err := parseDateOrToday(start)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			_, err = b.RecordDebt(cmd.Context(), model.DebtOrAsset{
				Kind:        model.DebtKind(kind),
				Name:        name,
				ProjectCode: project,
				Amount:      amount,
				StartDate:   startDate,
				Remarks:     remarks,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s %q for %s\n", kind, name, amount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "debt", "record kind (debt, fixed-asset)")
	cmd.Flags().StringVar(&name, "name", "", "creditor or asset name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&project, "project", "", "project code")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "remarks")

	return cmd
}

func newDebtListCommand(opts *rootOptions) *cobra.Command {
	var kind, project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debts and fixed assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			records, err := b.ListDebts(cmd.Context(), store.DebtFilter{
				ProjectCode: project,
				Kind:        model.DebtKind(kind),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-13s%-28s%-10s%-12s%14s\n",
				"KIND", "NAME", "PROJECT", "START", "AMOUNT")
			for _, d := range records {
				fmt.Fprintf(out, "%-13s%-28s%-10s%-12s%14s\n",
					d.Kind,
					d.Name,
					d.ProjectCode,
					d.StartDate.Format(model.DateLayout),
					d.Amount.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (debt, fixed-asset)")
	cmd.Flags().StringVar(&project, "project", "", "filter by project code")

	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func newInvoiceCommand(opts *rootOptions) *cobra.Command {
	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Client invoices",
	}
	invoiceCmd.AddCommand(
		newInvoiceIssueCommand(opts),
		newInvoiceStatusCommand(opts),
		newInvoiceListCommand(opts),
	)
	return invoiceCmd
}

func newInvoiceIssueCommand(opts *rootOptions) *cobra.Command {
	var dateStr, amountStr, client, desc, remarks string

	cmd := &cobra.Command{
		Use:   "issue <project> <number>",
		Short: "Raise an invoice against a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateOrToday(dateStr)
			if err != nil {
				return err
			}
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			_, err = b.IssueInvoice(cmd.Context(), model.Invoice{
				InvoiceNo:   args[1],
				Date:        date,
				ProjectCode: args[0],
				ClientName:  client,
				Description: desc,
				Amount:      amount,
				Remarks:     remarks,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Issued invoice %s/%s for %s\n", args[0], args[1], amount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "invoice date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "invoice amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&remarks, "remarks", "", "remarks")

	return cmd
}

func newInvoiceStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <number> <draft|issued|paid|cancelled>",
		Short: "Move an invoice along its lifecycle",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			next := model.InvoiceStatus(args[2])
			if err := b.UpdateInvoiceStatus(cmd.Context(), args[0], args[1], next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invoice %s/%s is now %s\n", args[0], args[1], next)
			return nil
		},
	}
}

func newInvoiceListCommand(opts *rootOptions) *cobra.Command {
	var project, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			invoices, err := b.ListInvoices(cmd.Context(), store.InvoiceFilter{
				ProjectCode: project,
				Status:      model.InvoiceStatus(status),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s%-14s%-12s%-11s%-20s%14s\n",
				"PROJECT", "NUMBER", "DATE", "STATUS", "CLIENT", "AMOUNT")
			for _, inv := range invoices {
				fmt.Fprintf(out, "%-10s%-14s%-12s%-11s%-20s%14s\n",
					inv.ProjectCode,
					inv.InvoiceNo,
					inv.Date.Format(model.DateLayout),
					inv.Status,
					inv.ClientName,
					inv.Amount.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "filter by project code")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")

	return cmd
}

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReverseCommand(opts *rootOptions) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "reverse <tx-id>",
		Short: "Reverse a posted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tx id %q", args[0])
			}
			date, err := parseDateOrToday(dateStr)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			revID, err := b.ReverseTransaction(cmd.Context(), txID, date)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reversed transaction %d as transaction %d\n", txID, revID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "reversal date YYYY-MM-DD (default today)")

	return cmd
}

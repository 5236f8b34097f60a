package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/posting"
)

func newPostCommand(opts *rootOptions) *cobra.Command {
	var dateStr, project, desc, ref string
	var lines []string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced transaction to the journal",
		Long: `Post appends a balanced transaction to the journal. Each -l flag adds
one line in CODE:D|C:AMOUNT form; debits must equal credits.

  sitebook post --project P-001 --desc "cement delivery" \
    -l 5010:D:2500 -l 1010:C:2500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateOrToday(dateStr)
			if err != nil {
				return err
			}

			tx := posting.Transaction{Date: date, Reference: ref}
			for _, raw := range lines {
				line, err := parseLine(raw, project, desc)
				if err != nil {
					return err
				}
				tx.Lines = append(tx.Lines, line)
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			txID, err := b.PostTransaction(cmd.Context(), tx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted transaction %d (%d lines)\n", txID, len(tx.Lines))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&project, "project", "", "attribute every line to a project")
	cmd.Flags().StringVar(&desc, "desc", "", "line description")
	cmd.Flags().StringVar(&ref, "ref", "", "reference (generated when empty)")
	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, "journal line CODE:D|C:AMOUNT (repeatable)")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

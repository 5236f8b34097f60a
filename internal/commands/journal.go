package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/model"
	"github.com/sitebook-dev/sitebook/internal/store"
)

func newJournalCommand(opts *rootOptions) *cobra.Command {
	var project, account, through string

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journal entries",
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

			entries, err := b.ListEntries(cmd.Context(), store.EntryFilter{
				ProjectCode: project,
				AccountCode: account,
				Through:     throughDate,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%6s  %-12s%-8s%-28s%14s%14s  %s\n",
				"TX", "DATE", "ACCT", "DESCRIPTION", "DEBIT", "CREDIT", "PROJECT")
			for _, e := range entries {
				fmt.Fprintf(out, "%6d  %-12s%-8s%-28s%14s%14s  %s\n",
					e.TxID,
					e.Date.Format(model.DateLayout),
					e.AccountCode,
					e.Description,
					e.Debit.StringFixed(2),
					e.Credit.StringFixed(2),
					e.ProjectCode)
			}
			fmt.Fprintf(out, "\n%d entries\n", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "filter by project code")
	cmd.Flags().StringVar(&account, "account", "", "filter by account code")
	cmd.Flags().StringVar(&through, "through", "", "include entries through YYYY-MM-DD")

	return cmd
}

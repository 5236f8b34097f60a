package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts",
	}
	accountsCmd.AddCommand(newAccountsListCommand(opts))
	return accountsCmd
}

func newAccountsListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			accounts, err := b.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s%-32s%s\n", "CODE", "NAME", "TYPE")
			for _, a := range accounts {
				fmt.Fprintf(out, "%-8s%-32s%s\n", a.Code, a.Name, a.Type)
			}
			return nil
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/books"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var name string
	var currency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.booksDir
			if len(args) > 0 {
				dir = args[0]
			}

			b, err := books.Init(cmd.Context(), dir, name, currency, opts.actor)
			if err != nil {
				return err
			}
			defer b.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized books for %s at %s\n", name, b.Root())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "", "display currency (default IQD)")

	return cmd
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/books"
	"github.com/sitebook-dev/sitebook/internal/buildinfo"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	booksDir string
	actor    string
}

func (o *rootOptions) open() (*books.Books, error) {
	return books.Open(o.booksDir, o.actor)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "sitebook",
		Short:   "Double-entry books for a construction back office",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.booksDir, "books", ".", "books directory")
	rootCmd.PersistentFlags().StringVar(&opts.actor, "actor", defaultActor(), "name recorded in the audit log")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newProjectCommand(opts),
		newAccountsCommand(opts),
		newPostCommand(opts),
		newReverseCommand(opts),
		newJournalCommand(opts),
		newCashCommand(opts),
		newInvoiceCommand(opts),
		newDebtCommand(opts),
		newReconcileCommand(opts),
		newReportCommand(opts),
		newBackupCommand(opts),
		newExportCommand(opts),
	)

	return rootCmd
}

func defaultActor() string {
	if actor := os.Getenv("SITEBOOK_ACTOR"); actor != "" {
		return actor
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "cli"
}

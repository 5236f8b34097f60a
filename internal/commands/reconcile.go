package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/reconcile"
	"github.com/sitebook-dev/sitebook/internal/report"
)

func newReconcileCommand(opts *rootOptions) *cobra.Command {
	var project, through string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute balances and check the cash book against the journal",
		Long: `Reconcile folds the journal into fresh account balances and compares
the journal's view of cash with the physical cash book, per project.
Differences are reported, never corrected. Exits nonzero when any
project mismatches.`,
		Args: cobra.NoArgs,
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

			snap, err := b.RecomputeBalances(cmd.Context(), reconcile.Filter{
				ProjectCode: project,
				Through:     throughDate,
			})
			if err != nil {
				return err
			}

			if err := report.Render(cmd.OutOrStdout(), snap, b.Config().Company.Currency); err != nil {
				return err
			}

			if n := len(snap.Mismatches()); n > 0 {
				return fmt.Errorf("%d project(s) diverge: %w", n, reconcile.ErrMismatch)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "reconcile a single project")
	cmd.Flags().StringVar(&through, "through", "", "include entries through YYYY-MM-DD")

	return cmd
}

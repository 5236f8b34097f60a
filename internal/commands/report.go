package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/report"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var project, asOfStr string

	cmd := &cobra.Command{
		Use:   "report <pl|cash|invoices|debts|overview|projects>",
		Short: "Render a report",
		Long: `Report renders one of the built-in reports:

  pl        profit & loss, company-wide or per project
  cash      cash position with reconciliation checks
  invoices  outstanding invoices with ages
  debts     debt aging buckets
  overview  company dashboard with ratios and alerts
  projects  per-project profitability`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := report.Kind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("unknown report %q (want %s)", args[0],
					strings.Join([]string{"pl", "cash", "invoices", "debts", "overview", "projects"}, ", "))
			}

			asOf, err := parseDateOrToday(asOfStr)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			rep, err := b.GetReport(cmd.Context(), kind, project, asOf)
			if err != nil {
				return err
			}

			return report.Render(cmd.OutOrStdout(), rep, b.Config().Company.Currency)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "narrow to a project (pl, cash, invoices)")
	cmd.Flags().StringVar(&asOfStr, "as-of", "", "report date YYYY-MM-DD (default today)")

	return cmd
}

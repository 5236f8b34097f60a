package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every table to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			paths, err := b.ExportCSV(cmd.Context(), dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintf(out, "Wrote %s\n", p)
			}
			fmt.Fprintf(out, "%d tables exported to %s\n", len(paths), filepath.Dir(paths[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default exports/ under the books directory)")

	return cmd
}

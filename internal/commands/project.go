package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitebook-dev/sitebook/internal/model"
)

func newProjectCommand(opts *rootOptions) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectCmd.AddCommand(
		newProjectAddCommand(opts),
		newProjectListCommand(opts),
		newProjectStatusCommand(opts),
	)
	return projectCmd
}

func newProjectAddCommand(opts *rootOptions) *cobra.Command {
	var name, client, location, value, start, projectType string

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Register a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contractValue, err := parseAmount(value)
			if err != nil {
				return err
			}
			startDate, err := parseDateOrToday(start)
			if err != nil {
				return err
			}

			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			_, err = b.CreateProject(cmd.Context(), model.Project{
				Code:          args[0],
				Name:          name,
				ClientName:    client,
				Location:      location,
				ContractValue: contractValue,
				StartDate:     startDate,
				Type:          projectType,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added project %s (%s)\n", args[0], name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&location, "location", "", "site location")
	cmd.Flags().StringVar(&value, "value", "0", "contract value")
	cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&projectType, "type", "other", "project type (building, road, infrastructure, other)")

	return cmd
}

func newProjectListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			projects, err := b.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s%-28s%-20s%-12s%16s\n", "CODE", "NAME", "CLIENT", "STATUS", "CONTRACT")
			for _, p := range projects {
				fmt.Fprintf(out, "%-10s%-28s%-20s%-12s%16s\n",
					p.Code, p.Name, p.ClientName, p.Status, p.ContractValue.StringFixed(2))
			}
			return nil
		},
	}
}

func newProjectStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <code> <active|on-hold|completed>",
		Short: "Change a project's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open()
			if err != nil {
				return err
			}
			defer b.Close()

			if err := b.UpdateProjectStatus(cmd.Context(), args[0], model.ProjectStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", args[0], args[1])
			return nil
		},
	}
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yamldoc/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.BuildOptions
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every stage of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ProjectPath = c.project
			return c.app.Build(cmd.Context(), opts)
		},
	}
	addSelectFlag(cmd, &opts.Select)
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Render outputs even when they are up to date")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of documents rendered in parallel (default: number of CPUs)")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "Override a variable as KEY=VALUE (repeatable, dotted keys nest)")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	var opts app.BuildOptions
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build the project and rebuild on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ProjectPath = c.project
			return c.app.Watch(cmd.Context(), opts)
		},
	}
	addSelectFlag(cmd, &opts.Select)
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of documents rendered in parallel (default: number of CPUs)")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "Override a variable as KEY=VALUE (repeatable, dotted keys nest)")
	return cmd
}

func addSelectFlag(cmd *cobra.Command, sel *[]string) {
	cmd.Flags().StringArrayVarP(sel, "select", "s", nil, "Stage group to process (repeatable, default: all)")
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yamldoc/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	var opts app.ListOptions
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List the documents a build would render",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ProjectPath = c.project
			return c.app.List(cmd.Context(), opts)
		},
	}
	addSelectFlag(cmd, &opts.Select)
	return cmd
}

func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty .yaml-doc.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Init(cmd.Context(), c.project)
		},
	}
}

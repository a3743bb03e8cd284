package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/yamldoc/internal/app"
)

func (c *CLI) newRenderCmd() *cobra.Command {
	var opts app.RenderOptions
	cmd := &cobra.Command{
		Use:   "render <source> <destination>",
		Short: "Render a YAML file or directory through a template",
		Long: "Render a YAML file, or every YAML file below a directory, through a template.\n" +
			"Use - as destination to write to standard output.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ProjectPath = c.project
			opts.Source = args[0]
			opts.Destination = args[1]
			return c.app.Render(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "Template file to render")
	cmd.Flags().StringVarP(&opts.Inline, "inline", "i", "", "Template text to render")
	cmd.Flags().StringArrayVar(&opts.Vars, "var", nil, "Override a variable as KEY=VALUE (repeatable, dotted keys nest)")
	cmd.MarkFlagsMutuallyExclusive("template", "inline")
	return cmd
}

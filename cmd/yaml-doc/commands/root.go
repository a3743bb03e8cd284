// Package commands implements the CLI commands for yaml-doc.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/yamldoc/internal/app"
	"go.trai.ch/yamldoc/internal/build"
	"go.trai.ch/zerr"
)

const (
	logFormatPretty = "pretty"
	logFormatJSON   = "json"
)

// CLI represents the command line interface for yaml-doc.
type CLI struct {
	app       Application
	logs      LogFormatter
	rootCmd   *cobra.Command
	project   string
	logFormat string
}

// Application represents the application logic interface.
type Application interface {
	Init(ctx context.Context, projectPath string) error
	List(ctx context.Context, opts app.ListOptions) error
	Build(ctx context.Context, opts app.BuildOptions) error
	Render(ctx context.Context, opts app.RenderOptions) error
	Watch(ctx context.Context, opts app.BuildOptions) error
	Clean(ctx context.Context, projectPath string) error
}

// LogFormatter switches the logger between pretty and JSON output.
type LogFormatter interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogFormatter) *CLI {
	rootCmd := &cobra.Command{
		Use:           "yaml-doc",
		Short:         "Render modular YAML documents through templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.project, "project-path", "p", ".", "Directory holding .yaml-doc.yml")
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", logFormatPretty, "Log format: pretty or json")
	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return c.applyLogFormat()
	}

	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) applyLogFormat() error {
	switch c.logFormat {
	case logFormatPretty, logFormatJSON:
	default:
		return zerr.With(zerr.New("unknown log format"), "format", c.logFormat)
	}
	if c.logs != nil {
		c.logs.SetJSON(c.logFormat == logFormatJSON)
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

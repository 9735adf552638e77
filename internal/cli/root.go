// Package cli implements sigrender, a command line tool that renders
// signature block trees stored as JSON or YAML files.
package cli

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	jsonOutput bool
}

// NewRootCmd builds the sigrender command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "sigrender",
		Version: version,
		Short:   "Render email signature block trees",
		Long: `sigrender renders email signature block trees to the nested-table HTML
pasted into mail clients, or to MJML.

Trees are read from a JSON or YAML file, or from stdin when no file is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newValidateCmd(opts),
		newPaletteCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a tree decodes and has unique block ids",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			tree, err := readTree(path, format, cmd.InOrStdin())
			if err != nil {
				return err
			}

			blocks := signature.CountBlocks(tree)
			if root.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"valid":  true,
					"roots":  len(tree),
					"blocks": blocks,
				})
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("valid tree: %d root blocks, %d blocks in total", len(tree), blocks))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatAuto, "Input format: auto, json or yaml")
	return cmd
}

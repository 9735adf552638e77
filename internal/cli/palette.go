package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

func newPaletteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the block kinds that can be placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := signature.Palette()
			w := cmd.OutOrStdout()
			if root.jsonOutput {
				return printJSON(w, items)
			}

			var category string
			for _, item := range items {
				if item.Category != category {
					category = item.Category
					printHeader(w, category+":")
				}
				fmt.Fprintf(w, "  %-11s %s\n", item.Kind, dimColor.Sprint(item.DisplayName))
			}
			return nil
		},
	}
}

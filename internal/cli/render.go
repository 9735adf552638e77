package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

type renderOptions struct {
	format  string
	output  string
	minify  bool
	mjml    bool
	compile bool
	data    signature.PlaceholderData
}

func (o *renderOptions) hasPlaceholderData() bool {
	return o.data != (signature.PlaceholderData{})
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree to HTML or MJML",
		Long: `Render a block tree to the nested-table signature HTML.

With --mjml the MJML source is printed instead; --compile also runs the MJML
compiler. Placeholder values given with --name, --role, --email or --phone
are substituted into the output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			tree, err := readTree(path, opts.format, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out, err := opts.render(cmd, tree)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, out, root.jsonOutput)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", formatAuto, "Input format: auto, json or yaml")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to a file instead of stdout")
	flags.BoolVar(&opts.minify, "minify", false, "Minify the HTML output")
	flags.BoolVar(&opts.mjml, "mjml", false, "Print MJML instead of HTML")
	flags.BoolVar(&opts.compile, "compile", false, "Compile the MJML export to HTML")
	flags.StringVar(&opts.data.Name, "name", "", "Value for {{name}}")
	flags.StringVar(&opts.data.Role, "role", "", "Value for {{role}}")
	flags.StringVar(&opts.data.Email, "email", "", "Value for {{email}}")
	flags.StringVar(&opts.data.Phone, "phone", "", "Value for {{phone}}")
	cmd.MarkFlagsMutuallyExclusive("mjml", "compile")

	return cmd
}

func (o *renderOptions) render(cmd *cobra.Command, tree signature.Tree) (string, error) {
	ctx := cmd.Context()

	var out string
	switch {
	case o.mjml:
		return signature.ToMJML(tree), nil
	case o.compile:
		result := signature.CompileMJML(ctx, tree)
		if !result.Success {
			msg := "unknown error"
			if result.Error != nil {
				msg = result.Error.Message
			}
			return "", fmt.Errorf("MJML compilation failed: %s", msg)
		}
		out = *result.HTML
	default:
		out = signature.Render(tree)
	}

	if o.hasPlaceholderData() {
		filled, err := signature.ApplyPlaceholders(ctx, out, o.data)
		if err != nil {
			return "", err
		}
		out = filled
	}

	if o.minify {
		minified, err := signature.Minify(out)
		if err != nil {
			return "", err
		}
		out = minified
	}
	return out, nil
}

func writeOutput(stdout io.Writer, path, content string, asJSON bool) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if asJSON {
			return printJSON(stdout, map[string]interface{}{"output": path, "bytes": len(content)})
		}
		printSuccess(stdout, fmt.Sprintf("wrote %d bytes to %s", len(content), path))
		return nil
	}

	if asJSON {
		return printJSON(stdout, map[string]string{"output": content})
	}
	_, err := fmt.Fprintln(stdout, content)
	return err
}

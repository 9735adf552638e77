package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaydesk/relaydesk/pkg/signature"
)

const jsonTree = `[{"id":"h","kind":"heading","content":"{{name}}"},{"id":"s","kind":"spacer","spacerHeight":"8px"}]`

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := runCmd(t, jsonTree, "render")
	require.NoError(t, err)

	tree, err := signature.UnmarshalTree([]byte(jsonTree))
	require.NoError(t, err)
	assert.Equal(t, signature.Render(tree)+"\n", out)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("table").First().Children().Find("tr").Length())
}

func TestRenderCommand_Placeholders(t *testing.T) {
	out, err := runCmd(t, jsonTree, "render", "--name", "Ada <Lovelace>")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada &lt;Lovelace&gt;")
	assert.NotContains(t, out, "{{name}}")
}

func TestRenderCommand_Minify(t *testing.T) {
	full, err := runCmd(t, jsonTree, "render")
	require.NoError(t, err)
	minified, err := runCmd(t, jsonTree, "render", "--minify")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(minified), len(full))
}

func TestRenderCommand_MJML(t *testing.T) {
	out, err := runCmd(t, jsonTree, "render", "--mjml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<mjml>"))

	_, err = runCmd(t, jsonTree, "render", "--mjml", "--compile")
	assert.Error(t, err)
}

func TestRenderCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signature.html")

	out, err := runCmd(t, jsonTree, "render", "-o", path, "--json")
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, path, report["output"])

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "<table")
}

func TestRenderCommand_InvalidTree(t *testing.T) {
	_, err := runCmd(t, `[{"id":"a","kind":"carousel"}]`, "render")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := runCmd(t, yamlTree, "validate", "--json")
	require.NoError(t, err)

	var report struct {
		Valid  bool `json:"valid"`
		Roots  int  `json:"roots"`
		Blocks int  `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.Roots)
	assert.Equal(t, 4, report.Blocks)

	out, err = runCmd(t, yamlTree, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "4 blocks in total")
}

func TestPaletteCommand(t *testing.T) {
	out, err := runCmd(t, "", "palette", "--json")
	require.NoError(t, err)

	var items []signature.PaletteItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Equal(t, signature.Palette(), items)

	out, err = runCmd(t, "", "palette")
	require.NoError(t, err)
	for _, item := range signature.Palette() {
		assert.Contains(t, out, string(item.Kind))
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCmd(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)
}

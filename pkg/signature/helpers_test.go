package signature

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// mustBlock builds a registry block and pins its id so tests can address it.
func mustBlock(t *testing.T, kind Kind, id string) Block {
	t.Helper()
	b, err := DefaultsFor(kind)
	require.NoError(t, err)
	baseOf(b).ID = id
	return b
}

func paragraph(t *testing.T, id, content string) *ParagraphBlock {
	t.Helper()
	p := mustBlock(t, KindParagraph, id).(*ParagraphBlock)
	p.Content = content
	return p
}

func layout(t *testing.T, id string, columns ...[]Block) *LayoutBlock {
	t.Helper()
	l := mustBlock(t, KindLayout, id).(*LayoutBlock)
	l.Columns = columns
	l.ColumnCount = len(columns)
	return l
}

func idsOf(blocks []Block) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.GetID())
	}
	return ids
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// rootRows returns the rows of the outer signature table.
func rootRows(doc *goquery.Document) *goquery.Selection {
	return doc.Find("body > table").First().ChildrenFiltered("tbody").ChildrenFiltered("tr")
}

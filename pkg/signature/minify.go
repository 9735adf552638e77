package signature

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier keeps end tags, quotes and default attribute values, which
// some mail clients need even though browsers do not.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepEndTags:         true,
			KeepQuotes:          true,
			KeepDefaultAttrVals: true,
			KeepDocumentTags:    true,
		})
	})
	return minifier
}

// Minify compacts rendered signature HTML for export.
func Minify(htmlContent string) (string, error) {
	return getMinifier().String("text/html", htmlContent)
}

// RenderMinified renders the tree and minifies the result.
func RenderMinified(tree Tree) (string, error) {
	return Minify(Render(tree))
}

package signature

import (
	"strconv"
	"strings"
)

const (
	// MaxWidth pins the outer table so clients render the signature at a
	// consistent width.
	MaxWidth = 600

	// DefaultImageWidth is used for the width attribute when an image has no
	// pixel width in its content style.
	DefaultImageWidth = 120
)

const tableAttrs = ` role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"`

// Render serializes the tree into nested-table HTML. Output depends only on
// the tree, so rendering an unchanged tree twice yields identical bytes.
func Render(tree Tree) string {
	var b strings.Builder
	b.WriteString(`<table`)
	b.WriteString(tableAttrs)
	b.WriteString(` style="max-width:`)
	b.WriteString(strconv.Itoa(MaxWidth))
	b.WriteString(`px;margin:0 auto;">`)
	renderRows(&b, tree)
	b.WriteString(`</table>`)
	return b.String()
}

// renderRows writes one table row per block.
func renderRows(b *strings.Builder, blocks []Block) {
	for _, block := range blocks {
		b.WriteString(`<tr><td`)
		writeStyleAttr(b, block.GetContainerStyle())
		b.WriteString(`>`)
		renderBlock(b, block)
		b.WriteString(`</td></tr>`)
	}
}

func renderBlock(b *strings.Builder, block Block) {
	switch v := block.(type) {
	case *HeadingBlock:
		b.WriteString(`<h1`)
		writeStyleAttr(b, v.ContentStyle)
		b.WriteString(`>`)
		b.WriteString(textContent(v.Content))
		b.WriteString(`</h1>`)
	case *ParagraphBlock:
		b.WriteString(`<p`)
		writeStyleAttr(b, v.ContentStyle)
		b.WriteString(`>`)
		b.WriteString(textContent(v.Content))
		b.WriteString(`</p>`)
	case *ButtonBlock:
		renderButton(b, v)
	case *ImageBlock:
		b.WriteString(`<img src="`)
		b.WriteString(escapeAttributeValue(safeURL(v.ImageSource, imageSchemes), "src"))
		b.WriteString(`" alt="`)
		b.WriteString(escapeAttributeValue(v.Alt, "alt"))
		b.WriteString(`" width="`)
		b.WriteString(strconv.Itoa(imageWidth(v.ContentStyle)))
		b.WriteString(`"`)
		writeStyleAttr(b, v.ContentStyle)
		b.WriteString(` />`)
	case *SpacerBlock:
		height := escapeAttributeValue(v.SpacerHeight, "style")
		b.WriteString(`<div style="height:`)
		b.WriteString(height)
		b.WriteString(`;line-height:`)
		b.WriteString(height)
		b.WriteString(`;font-size:1px;mso-line-height-rule:exactly;">&nbsp;</div>`)
	case *LayoutBlock:
		renderLayout(b, v)
	}
}

// renderButton wraps the link in a single-cell table so clients with poor
// CSS support still paint the background color.
func renderButton(b *strings.Builder, v *ButtonBlock) {
	b.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0"><tr><td`)
	if bg, ok := v.ContentStyle.Get("backgroundColor"); ok {
		b.WriteString(` bgcolor="`)
		b.WriteString(escapeAttributeValue(bg, "bgcolor"))
		b.WriteString(`"`)
	}
	if radius, ok := v.ContentStyle.Get("borderRadius"); ok {
		b.WriteString(` style="border-radius:`)
		b.WriteString(escapeAttributeValue(radius, "style"))
		b.WriteString(`;"`)
	}
	b.WriteString(`><a href="`)
	b.WriteString(escapeAttributeValue(safeURL(v.LinkTarget, linkSchemes), "href"))
	b.WriteString(`" target="_blank"`)
	writeStyleAttr(b, v.ContentStyle)
	b.WriteString(`>`)
	b.WriteString(textContent(v.Content))
	b.WriteString(`</a></td></tr></table>`)
}

// renderLayout writes one cell per column, empty columns included, so the
// grid keeps its shape while columns are still being filled.
func renderLayout(b *strings.Builder, v *LayoutBlock) {
	width := columnWidth(len(v.Columns))
	b.WriteString(`<table`)
	b.WriteString(tableAttrs)
	b.WriteString(`><tr>`)
	for _, column := range v.Columns {
		b.WriteString(`<td width="`)
		b.WriteString(width)
		b.WriteString(`%" valign="top" style="width:`)
		b.WriteString(width)
		b.WriteString(`%;">`)
		b.WriteString(`<table`)
		b.WriteString(tableAttrs)
		b.WriteString(`>`)
		if len(column) == 0 {
			b.WriteString(`<tr><td height="0" style="height:0;line-height:0;font-size:0;"></td></tr>`)
		} else {
			renderRows(b, column)
		}
		b.WriteString(`</table></td>`)
	}
	b.WriteString(`</tr></table>`)
}

func writeStyleAttr(b *strings.Builder, styles *StyleMap) {
	css := styles.InlineCSS()
	if css == "" {
		return
	}
	b.WriteString(` style="`)
	b.WriteString(escapeAttributeValue(css, "style"))
	b.WriteString(`"`)
}

// columnWidth formats 100/n with at most two decimals ("50", "33.33").
func columnWidth(n int) string {
	if n <= 0 {
		return "100"
	}
	s := strconv.FormatFloat(100/float64(n), 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// imageWidth reads a pixel width ("120px", "120") from the content style.
func imageWidth(styles *StyleMap) int {
	if w, ok := styles.Get("width"); ok {
		if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(w), "px")); err == nil && n > 0 {
			return n
		}
	}
	return DefaultImageWidth
}

// textContent escapes user text and keeps its line breaks. Placeholder
// tokens such as {{name}} pass through unchanged.
func textContent(content string) string {
	return strings.ReplaceAll(escapeContent(content), "\n", "<br />")
}

var (
	linkSchemes  = []string{"http://", "https://", "mailto:", "tel:"}
	imageSchemes = []string{"http://", "https://", "//", "cid:"}
)

// safeURL returns value when it starts with one of the allowed schemes or
// with a placeholder token, and "#" otherwise.
func safeURL(value string, schemes []string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "{{") {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	for _, scheme := range schemes {
		if strings.HasPrefix(lower, scheme) {
			return trimmed
		}
	}
	return "#"
}

// escapeAttributeValue escapes an attribute value. Ampersands in absolute
// URLs placed in src or href are kept so query strings survive.
func escapeAttributeValue(value string, attributeName string) string {
	isURLAttribute := attributeName == "src" || attributeName == "href"
	looksLikeURL := strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")

	if !(isURLAttribute && looksLikeURL) {
		value = strings.ReplaceAll(value, "&", "&amp;")
	}
	value = strings.ReplaceAll(value, "\"", "&quot;")
	value = strings.ReplaceAll(value, "'", "&#39;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}

func escapeContent(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}

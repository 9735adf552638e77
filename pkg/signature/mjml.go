package signature

import (
	"context"
	"fmt"
	"strings"

	mjmlgo "github.com/Boostport/mjml-go"
)

// ToMJML converts the tree to an MJML document. Root blocks become sections
// with a single column and root layouts become sections with one mj-column
// per column. MJML cannot nest sections, so a layout inside a column is
// embedded as raw table HTML.
func ToMJML(tree Tree) string {
	var b strings.Builder
	b.WriteString("<mjml>\n  <mj-body width=\"")
	fmt.Fprintf(&b, "%dpx", MaxWidth)
	b.WriteString("\">\n")
	for _, block := range tree {
		if layout, ok := block.(*LayoutBlock); ok {
			b.WriteString("    <mj-section")
			b.WriteString(formatAttributes(sectionAttributes(layout.ContainerStyle)))
			b.WriteString(">\n")
			width := columnWidth(len(layout.Columns))
			for _, column := range layout.Columns {
				fmt.Fprintf(&b, "      <mj-column width=\"%s%%\">\n", width)
				for _, child := range column {
					b.WriteString(blockToMJML(child, 8))
				}
				b.WriteString("      </mj-column>\n")
			}
			b.WriteString("    </mj-section>\n")
			continue
		}
		b.WriteString("    <mj-section padding=\"0\">\n      <mj-column>\n")
		b.WriteString(blockToMJML(block, 8))
		b.WriteString("      </mj-column>\n    </mj-section>\n")
	}
	b.WriteString("  </mj-body>\n</mjml>")
	return b.String()
}

type mjmlAttr struct {
	name  string
	value string
}

func blockToMJML(block Block, indent int) string {
	pad := strings.Repeat(" ", indent)
	container := containerAttributes(block.GetContainerStyle())

	switch v := block.(type) {
	case *HeadingBlock:
		return fmt.Sprintf("%s<mj-text%s><h1%s>%s</h1></mj-text>\n", pad, formatAttributes(container), styleAttr(v.ContentStyle), textContent(v.Content))
	case *ParagraphBlock:
		return fmt.Sprintf("%s<mj-text%s><p%s>%s</p></mj-text>\n", pad, formatAttributes(container), styleAttr(v.ContentStyle), textContent(v.Content))
	case *ButtonBlock:
		attrs := append(container, mjmlAttr{"href", safeURL(v.LinkTarget, linkSchemes)})
		v.ContentStyle.Each(func(name, value string) {
			switch name {
			case "padding":
				attrs = append(attrs, mjmlAttr{"inner-padding", value})
			case "backgroundColor", "color", "borderRadius", "fontSize", "fontWeight", "fontFamily", "textDecoration":
				attrs = append(attrs, mjmlAttr{CamelToKebab(name), value})
			}
		})
		return fmt.Sprintf("%s<mj-button%s>%s</mj-button>\n", pad, formatAttributes(attrs), textContent(v.Content))
	case *ImageBlock:
		attrs := append(container,
			mjmlAttr{"src", safeURL(v.ImageSource, imageSchemes)},
			mjmlAttr{"alt", v.Alt},
			mjmlAttr{"width", fmt.Sprintf("%dpx", imageWidth(v.ContentStyle))},
		)
		return fmt.Sprintf("%s<mj-image%s />\n", pad, formatAttributes(attrs))
	case *SpacerBlock:
		return fmt.Sprintf("%s<mj-spacer%s />\n", pad, formatAttributes(append(container, mjmlAttr{"height", v.SpacerHeight})))
	case *LayoutBlock:
		var raw strings.Builder
		renderLayout(&raw, v)
		return fmt.Sprintf("%s<mj-raw>%s</mj-raw>\n", pad, raw.String())
	}
	return ""
}

// containerAttributes maps the spacing properties MJML understands on
// content components.
func containerAttributes(styles *StyleMap) []mjmlAttr {
	var attrs []mjmlAttr
	styles.Each(func(name, value string) {
		switch name {
		case "padding", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft":
			attrs = append(attrs, mjmlAttr{CamelToKebab(name), value})
		case "backgroundColor":
			attrs = append(attrs, mjmlAttr{"container-background-color", value})
		case "textAlign":
			attrs = append(attrs, mjmlAttr{"align", value})
		}
	})
	return attrs
}

func sectionAttributes(styles *StyleMap) []mjmlAttr {
	attrs := []mjmlAttr{}
	hasPadding := false
	styles.Each(func(name, value string) {
		switch name {
		case "padding", "paddingTop", "paddingRight", "paddingBottom", "paddingLeft":
			hasPadding = true
			attrs = append(attrs, mjmlAttr{CamelToKebab(name), value})
		case "backgroundColor":
			attrs = append(attrs, mjmlAttr{"background-color", value})
		}
	})
	if !hasPadding {
		attrs = append([]mjmlAttr{{"padding", "0"}}, attrs...)
	}
	return attrs
}

func formatAttributes(attrs []mjmlAttr) string {
	var b strings.Builder
	for _, attr := range attrs {
		if attr.value == "" {
			continue
		}
		fmt.Fprintf(&b, ` %s="%s"`, attr.name, escapeAttributeValue(attr.value, attr.name))
	}
	return b.String()
}

func styleAttr(styles *StyleMap) string {
	var b strings.Builder
	writeStyleAttr(&b, styles)
	return b.String()
}

// CompileResult carries both stages of an MJML compilation.
type CompileResult struct {
	Success bool          `json:"success"`
	MJML    string        `json:"mjml"`
	HTML    *string       `json:"html,omitempty"`
	Error   *mjmlgo.Error `json:"error,omitempty"`
}

// CompileMJML converts the tree to MJML and compiles it with the MJML
// engine. Compilation problems are reported in the result rather than as an
// error, so callers can show the MJML alongside the message.
func CompileMJML(ctx context.Context, tree Tree) *CompileResult {
	source := ToMJML(tree)
	html, err := mjmlgo.ToHTML(ctx, source)
	if err != nil {
		return &CompileResult{
			Success: false,
			MJML:    source,
			Error:   &mjmlgo.Error{Message: err.Error()},
		}
	}
	return &CompileResult{Success: true, MJML: source, HTML: &html}
}

package signature

import (
	"github.com/google/uuid"
)

// PaletteItem describes a block kind as offered in the builder palette.
type PaletteItem struct {
	Kind        Kind   `json:"kind"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
}

type componentDefaults struct {
	item  PaletteItem
	build func(base BaseBlock) Block
}

// registry is ordered as the palette displays it. Each build function
// constructs new style maps on every call so that no two blocks ever share a
// mutable dictionary.
var registry = []componentDefaults{
	{
		item: PaletteItem{Kind: KindHeading, DisplayName: "Heading", Category: "content"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap(
				"fontSize", "22px",
				"fontWeight", "bold",
				"color", "#111827",
				"margin", "0",
			)
			base.ContainerStyle = NewStyleMap("padding", "8px 0")
			return &HeadingBlock{BaseBlock: base, Content: "Your Name"}
		},
	},
	{
		item: PaletteItem{Kind: KindParagraph, DisplayName: "Text", Category: "content"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap(
				"fontSize", "14px",
				"lineHeight", "20px",
				"color", "#4b5563",
				"margin", "0",
			)
			base.ContainerStyle = NewStyleMap("padding", "4px 0")
			return &ParagraphBlock{BaseBlock: base, Content: "Your role at Company"}
		},
	},
	{
		item: PaletteItem{Kind: KindButton, DisplayName: "Button", Category: "content"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap(
				"backgroundColor", "#2563eb",
				"color", "#ffffff",
				"padding", "10px 18px",
				"borderRadius", "4px",
				"textDecoration", "none",
				"display", "inline-block",
				"fontSize", "14px",
			)
			base.ContainerStyle = NewStyleMap("padding", "8px 0")
			return &ButtonBlock{BaseBlock: base, Content: "Book a meeting", LinkTarget: "https://example.com"}
		},
	},
	{
		item: PaletteItem{Kind: KindImage, DisplayName: "Image", Category: "media"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap(
				"width", "120px",
				"height", "auto",
				"display", "block",
				"border", "0",
			)
			base.ContainerStyle = NewStyleMap("padding", "8px 0")
			return &ImageBlock{BaseBlock: base, ImageSource: "https://placehold.co/120x120", Alt: "Logo"}
		},
	},
	{
		item: PaletteItem{Kind: KindSpacer, DisplayName: "Spacer", Category: "layout"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap()
			base.ContainerStyle = NewStyleMap("padding", "0")
			return &SpacerBlock{BaseBlock: base, SpacerHeight: "20px"}
		},
	},
	{
		item: PaletteItem{Kind: KindLayout, DisplayName: "Columns", Category: "layout"},
		build: func(base BaseBlock) Block {
			base.ContentStyle = NewStyleMap()
			base.ContainerStyle = NewStyleMap("padding", "0")
			return &LayoutBlock{BaseBlock: base, ColumnCount: 2, Columns: [][]Block{{}, {}}}
		},
	},
}

// DefaultsFor returns a new block of the given kind with its default content
// and styles and a freshly minted id.
func DefaultsFor(kind Kind) (Block, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	for _, entry := range registry {
		if entry.item.Kind == kind {
			return entry.build(BaseBlock{ID: uuid.NewString(), Kind: kind}), nil
		}
	}
	return nil, ErrUnknownKind
}

// NewBlock handles a palette placement: it parses the kind carried by the
// drop event and builds the block to insert.
func NewBlock(kind string) (Block, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return DefaultsFor(k)
}

// Palette lists the registered block kinds in display order.
func Palette() []PaletteItem {
	items := make([]PaletteItem, len(registry))
	for i, entry := range registry {
		items[i] = entry.item
	}
	return items
}

package signature

import (
	"errors"
	"fmt"
)

// Kind identifies the type of a block.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindButton    Kind = "button"
	KindImage     Kind = "image"
	KindSpacer    Kind = "spacer"
	KindLayout    Kind = "layout"
)

// MaxColumns is the widest layout the builder supports.
const MaxColumns = 4

var (
	ErrUnknownKind = errors.New("unknown block kind")
	ErrInvalidTree = errors.New("invalid signature tree")
)

// ParseKind validates a kind received from the outside.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	switch k {
	case KindHeading, KindParagraph, KindButton, KindImage, KindSpacer, KindLayout:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
}

// Block is a node of the signature tree. The concrete types are
// *HeadingBlock, *ParagraphBlock, *ButtonBlock, *ImageBlock, *SpacerBlock
// and *LayoutBlock; only the layout block has children.
type Block interface {
	GetID() string
	GetKind() Kind
	GetContentStyle() *StyleMap
	GetContainerStyle() *StyleMap

	// shallowCopy returns a copy of the node that shares its children and
	// style maps with the original.
	shallowCopy() Block
}

// BaseBlock holds what every block kind carries.
type BaseBlock struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	ContentStyle   *StyleMap `json:"contentStyle,omitempty"`
	ContainerStyle *StyleMap `json:"containerStyle,omitempty"`
}

func (b *BaseBlock) GetID() string                { return b.ID }
func (b *BaseBlock) GetKind() Kind                { return b.Kind }
func (b *BaseBlock) GetContentStyle() *StyleMap   { return b.ContentStyle }
func (b *BaseBlock) GetContainerStyle() *StyleMap { return b.ContainerStyle }

type HeadingBlock struct {
	BaseBlock
	Content string `json:"content"`
}

type ParagraphBlock struct {
	BaseBlock
	Content string `json:"content"`
}

// ButtonBlock renders Content as the label of a link pointing at LinkTarget.
type ButtonBlock struct {
	BaseBlock
	Content    string `json:"content"`
	LinkTarget string `json:"linkTarget"`
}

type ImageBlock struct {
	BaseBlock
	ImageSource string `json:"imageSource"`
	Alt         string `json:"alt,omitempty"`
}

// SpacerBlock occupies SpacerHeight (a CSS length) of vertical space.
type SpacerBlock struct {
	BaseBlock
	SpacerHeight string `json:"spacerHeight"`
}

// LayoutBlock splits its row into ColumnCount columns, each holding its own
// ordered sequence of blocks. len(Columns) == ColumnCount always holds for
// layouts produced by this package.
type LayoutBlock struct {
	BaseBlock
	ColumnCount int       `json:"columnCount"`
	Columns     [][]Block `json:"columns"`
}

// cloneStyles returns a copy of the base whose style maps are independent
// of b's.
func (b *BaseBlock) cloneStyles() BaseBlock {
	out := *b
	if out.ContentStyle != nil {
		out.ContentStyle = out.ContentStyle.Clone()
	}
	if out.ContainerStyle != nil {
		out.ContainerStyle = out.ContainerStyle.Clone()
	}
	return out
}

func (b *HeadingBlock) shallowCopy() Block   { c := *b; return &c }
func (b *ParagraphBlock) shallowCopy() Block { c := *b; return &c }
func (b *ButtonBlock) shallowCopy() Block    { c := *b; return &c }
func (b *ImageBlock) shallowCopy() Block     { c := *b; return &c }
func (b *SpacerBlock) shallowCopy() Block    { c := *b; return &c }
func (b *LayoutBlock) shallowCopy() Block    { c := *b; return &c }

// withColumn returns a copy of the layout whose column i is replaced.
func (b *LayoutBlock) withColumn(i int, column []Block) *LayoutBlock {
	next := *b
	next.BaseBlock = b.BaseBlock.cloneStyles()
	next.Columns = make([][]Block, len(b.Columns))
	copy(next.Columns, b.Columns)
	next.Columns[i] = column
	return &next
}

// Tree is the root sequence of a signature document.
type Tree []Block

// StringPtr returns a pointer to s, for building a Patch.
func StringPtr(s string) *string {
	return &s
}

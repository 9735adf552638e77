package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsFor(t *testing.T) {
	tests := []struct {
		kind  Kind
		check func(t *testing.T, b Block)
	}{
		{KindHeading, func(t *testing.T, b Block) {
			h := b.(*HeadingBlock)
			assert.Equal(t, "Your Name", h.Content)
		}},
		{KindParagraph, func(t *testing.T, b Block) {
			p := b.(*ParagraphBlock)
			assert.NotEmpty(t, p.Content)
		}},
		{KindButton, func(t *testing.T, b Block) {
			btn := b.(*ButtonBlock)
			assert.NotEmpty(t, btn.Content)
			assert.Equal(t, "https://example.com", btn.LinkTarget)
		}},
		{KindImage, func(t *testing.T, b Block) {
			img := b.(*ImageBlock)
			assert.NotEmpty(t, img.ImageSource)
			width, ok := img.ContentStyle.Get("width")
			assert.True(t, ok)
			assert.Equal(t, "120px", width)
		}},
		{KindSpacer, func(t *testing.T, b Block) {
			assert.Equal(t, "20px", b.(*SpacerBlock).SpacerHeight)
		}},
		{KindLayout, func(t *testing.T, b Block) {
			l := b.(*LayoutBlock)
			assert.Equal(t, 2, l.ColumnCount)
			require.Len(t, l.Columns, 2)
			assert.Empty(t, l.Columns[0])
			assert.Empty(t, l.Columns[1])
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			b, err := DefaultsFor(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, b.GetKind())
			assert.NotEmpty(t, b.GetID())
			assert.NotNil(t, b.GetContentStyle())
			assert.NotNil(t, b.GetContainerStyle())
			tt.check(t, b)
		})
	}
}

func TestDefaultsFor_UnknownKind(t *testing.T) {
	_, err := DefaultsFor(Kind("video"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewBlock("")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDefaultsFor_IndependentInstances(t *testing.T) {
	first, err := DefaultsFor(KindHeading)
	require.NoError(t, err)
	second, err := DefaultsFor(KindHeading)
	require.NoError(t, err)

	assert.NotEqual(t, first.GetID(), second.GetID())
	assert.NotSame(t, first.GetContentStyle(), second.GetContentStyle())
	assert.NotSame(t, first.GetContainerStyle(), second.GetContainerStyle())

	first.GetContentStyle().Set("color", "#ff0000")
	first.GetContainerStyle().Set("padding", "30px")

	color, _ := second.GetContentStyle().Get("color")
	assert.Equal(t, "#111827", color)
	padding, _ := second.GetContainerStyle().Get("padding")
	assert.Equal(t, "8px 0", padding)
}

func TestDefaultsFor_LayoutColumnsNotShared(t *testing.T) {
	first, _ := DefaultsFor(KindLayout)
	second, _ := DefaultsFor(KindLayout)

	first.(*LayoutBlock).Columns[0] = append(first.(*LayoutBlock).Columns[0], paragraph(t, "p", "x"))

	assert.Empty(t, second.(*LayoutBlock).Columns[0])
}

func TestPalette(t *testing.T) {
	items := Palette()
	require.Len(t, items, 6)

	kinds := make([]Kind, len(items))
	for i, item := range items {
		kinds[i] = item.Kind
		assert.NotEmpty(t, item.DisplayName)
		assert.NotEmpty(t, item.Category)
	}
	assert.Equal(t, []Kind{KindHeading, KindParagraph, KindButton, KindImage, KindSpacer, KindLayout}, kinds)

	// callers get their own copy
	items[0].DisplayName = "changed"
	assert.Equal(t, "Heading", Palette()[0].DisplayName)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("spacer")
	require.NoError(t, err)
	assert.Equal(t, KindSpacer, k)

	_, err = ParseKind("Spacer")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

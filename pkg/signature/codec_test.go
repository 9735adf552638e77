package signature

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `[
  {"id":"h","kind":"heading","content":"Ada Lovelace","contentStyle":{"fontSize":"20px","color":"#000"},"containerStyle":{"padding":"4px 0"}},
  {"id":"L","kind":"layout","columnCount":2,"columns":[
    [{"id":"img","kind":"image","imageSource":"https://a.com/logo.png","alt":"Logo"}],
    [{"id":"btn","kind":"button","content":"Call","linkTarget":"tel:123"},{"id":"s","kind":"spacer","spacerHeight":"10px"}]
  ]}
]`

func TestUnmarshalTree(t *testing.T) {
	tree, err := UnmarshalTree([]byte(sampleTree))
	require.NoError(t, err)
	require.Len(t, tree, 2)

	h, ok := tree[0].(*HeadingBlock)
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", h.Content)
	assert.Equal(t, "font-size:20px;color:#000;", h.ContentStyle.InlineCSS())

	l, ok := tree[1].(*LayoutBlock)
	require.True(t, ok)
	assert.Equal(t, 2, l.ColumnCount)
	require.Len(t, l.Columns, 2)
	assert.IsType(t, &ImageBlock{}, l.Columns[0][0])
	assert.Equal(t, "tel:123", l.Columns[1][0].(*ButtonBlock).LinkTarget)
	assert.Equal(t, "10px", l.Columns[1][1].(*SpacerBlock).SpacerHeight)
}

func TestTree_JSONRoundTripRendersIdentically(t *testing.T) {
	tree, err := UnmarshalTree([]byte(sampleTree))
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	again, err := UnmarshalTree(data)
	require.NoError(t, err)

	assert.Equal(t, Render(tree), Render(again))
}

func TestTree_MarshalNil(t *testing.T) {
	data, err := json.Marshal(Tree(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	var tree Tree
	require.NoError(t, json.Unmarshal([]byte("null"), &tree))
	assert.Nil(t, tree)
}

func TestUnmarshalBlock_UnknownKind(t *testing.T) {
	_, err := UnmarshalBlock([]byte(`{"id":"x","kind":"video"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = UnmarshalTree([]byte(`[{"id":"L","kind":"layout","columnCount":1,"columns":[[{"id":"x"}]]}]`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestUnmarshalTree_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"duplicate ids", `[{"id":"a","kind":"spacer"},{"id":"a","kind":"spacer"}]`},
		{"missing id", `[{"kind":"spacer"}]`},
		{"column count mismatch", `[{"id":"L","kind":"layout","columnCount":3,"columns":[[],[]]}]`},
		{"too many columns", `[{"id":"L","kind":"layout","columnCount":5,"columns":[[],[],[],[],[]]}]`},
		{"zero columns", `[{"id":"L","kind":"layout","columnCount":0,"columns":[]}]`},
		{"nested duplicate", `[{"id":"a","kind":"spacer"},{"id":"L","kind":"layout","columnCount":1,"columns":[[{"id":"a","kind":"spacer"}]]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTree([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidTree)
		})
	}
}

func TestUnmarshalTree_Malformed(t *testing.T) {
	_, err := UnmarshalTree([]byte(`{"id":"a"}`))
	assert.Error(t, err)
}

package signature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_Root(t *testing.T) {
	a := paragraph(t, "a", "first")
	b := paragraph(t, "b", "second")

	tree := Insert(nil, a, RootTarget())
	next := Insert(tree, b, RootTarget())

	assert.Equal(t, []string{"a"}, idsOf(tree))
	assert.Equal(t, []string{"a", "b"}, idsOf(next))
	assert.Same(t, a, next[0])
}

func TestInsert_Column(t *testing.T) {
	l := layout(t, "L", []Block{}, []Block{})
	tree := Tree{l}

	next := Insert(tree, paragraph(t, "p", "hello"), ColumnTarget("L", 1))

	got := next[0].(*LayoutBlock)
	assert.Empty(t, got.Columns[0])
	assert.Equal(t, []string{"p"}, idsOf(got.Columns[1]))
	// input untouched
	assert.Empty(t, l.Columns[1])
	assert.NotSame(t, l, got)
}

func TestInsert_NoOps(t *testing.T) {
	l := layout(t, "L", []Block{}, []Block{})
	h := mustBlock(t, KindHeading, "h")
	tree := Tree{l, h}

	tests := []struct {
		name   string
		block  Block
		target Target
	}{
		{"unknown layout", paragraph(t, "p1", "x"), ColumnTarget("missing", 0)},
		{"column out of range", paragraph(t, "p2", "x"), ColumnTarget("L", 2)},
		{"negative column", paragraph(t, "p3", "x"), ColumnTarget("L", -1)},
		{"target is not a layout", paragraph(t, "p4", "x"), ColumnTarget("h", 0)},
		{"duplicate id", paragraph(t, "h", "x"), RootTarget()},
		{"nested duplicate id", layout(t, "L2", []Block{paragraph(t, "h", "x")}), RootTarget()},
		{"nil block", nil, RootTarget()},
		{"layout with fewer columns than declared", &LayoutBlock{
			BaseBlock:   BaseBlock{ID: "short", Kind: KindLayout},
			ColumnCount: 3,
			Columns:     [][]Block{{}, {}},
		}, RootTarget()},
		{"layout reusing an id in its own columns", &LayoutBlock{
			BaseBlock:   BaseBlock{ID: "twice", Kind: KindLayout},
			ColumnCount: 2,
			Columns:     [][]Block{{paragraph(t, "dup", "a")}, {paragraph(t, "dup", "b")}},
		}, RootTarget()},
		{"layout wider than the maximum", layout(t, "wide", nil, nil, nil, nil, nil), RootTarget()},
		{"block without id", &HeadingBlock{BaseBlock: BaseBlock{Kind: KindHeading}}, RootTarget()},
		{"malformed layout into a column", &LayoutBlock{
			BaseBlock:   BaseBlock{ID: "nested-short", Kind: KindLayout},
			ColumnCount: 2,
			Columns:     [][]Block{{}},
		}, ColumnTarget("L", 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Insert(tree, tt.block, tt.target)
			assert.Equal(t, idsOf(tree), idsOf(next))
			assert.Same(t, l, next[0])
			assert.Empty(t, l.Columns[0])
			assert.Empty(t, l.Columns[1])
		})
	}
}

func TestFindByID(t *testing.T) {
	inner := layout(t, "inner", []Block{paragraph(t, "deep", "x")})
	tree := Tree{
		mustBlock(t, KindHeading, "h"),
		layout(t, "L", []Block{paragraph(t, "c0", "x")}, []Block{inner}),
	}

	tests := []struct {
		id    string
		found bool
	}{
		{"h", true},
		{"L", true},
		{"c0", true},
		{"inner", true},
		{"deep", true},
		{"missing", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			b := FindByID(tree, tt.id)
			if !tt.found {
				assert.Nil(t, b)
				return
			}
			require.NotNil(t, b)
			assert.Equal(t, tt.id, b.GetID())
		})
	}
}

func TestFindByID_AfterDeleteReturnsNil(t *testing.T) {
	tree := Tree{layout(t, "L", []Block{paragraph(t, "p", "x")}, []Block{})}

	for _, id := range []string{"p", "L"} {
		next := DeleteByID(tree, id)
		assert.Nil(t, FindByID(next, id))
		assert.NotNil(t, FindByID(tree, id))
	}
}

func TestUpdateByID_ReconstructsPathOnly(t *testing.T) {
	target := paragraph(t, "target", "old")
	sibling := paragraph(t, "sibling", "keep")
	l := layout(t, "L", []Block{target}, []Block{sibling})
	head := mustBlock(t, KindHeading, "h")
	tree := Tree{head, l}

	next := UpdateByID(tree, "target", Patch{
		Content:      StringPtr("new"),
		ContentStyle: NewStyleMap("color", "#ff0000"),
	})

	assert.Same(t, head, next[0])
	nextLayout := next[1].(*LayoutBlock)
	assert.NotSame(t, l, nextLayout)
	assert.Same(t, sibling, nextLayout.Columns[1][0])

	updated := nextLayout.Columns[0][0].(*ParagraphBlock)
	assert.Equal(t, "new", updated.Content)
	color, _ := updated.ContentStyle.Get("color")
	assert.Equal(t, "#ff0000", color)
	// unpatched defaults survive the merge
	size, _ := updated.ContentStyle.Get("fontSize")
	assert.Equal(t, "14px", size)

	assert.Equal(t, "old", target.Content)
	color, _ = target.ContentStyle.Get("color")
	assert.Equal(t, "#4b5563", color)
}

func TestUpdateByID_NewTreeSharesNoStyleMaps(t *testing.T) {
	target := paragraph(t, "p", "old")
	l := layout(t, "L", []Block{target})
	tree := Tree{l}

	next := UpdateByID(tree, "p", Patch{Content: StringPtr("new")})

	updated := FindByID(next, "p").(*ParagraphBlock)
	updated.ContentStyle.Set("color", "red")
	updated.ContainerStyle.Set("padding", "0")
	nextLayout := next[0].(*LayoutBlock)
	nextLayout.ContainerStyle.Set("backgroundColor", "#000000")

	color, _ := target.ContentStyle.Get("color")
	assert.Equal(t, "#4b5563", color)
	padding, _ := target.ContainerStyle.Get("padding")
	assert.Equal(t, "4px 0", padding)
	_, found := l.ContainerStyle.Get("backgroundColor")
	assert.False(t, found)
}

func TestUpdateByID_IgnoresFieldsOfOtherKinds(t *testing.T) {
	tree := Tree{mustBlock(t, KindSpacer, "s")}

	next := UpdateByID(tree, "s", Patch{Content: StringPtr("text"), SpacerHeight: StringPtr("40px")})

	s := next[0].(*SpacerBlock)
	assert.Equal(t, "40px", s.SpacerHeight)
}

func TestUpdateByID_MissingIDReturnsInput(t *testing.T) {
	tree := Tree{paragraph(t, "p", "x")}

	next := UpdateByID(tree, "missing", Patch{Content: StringPtr("y")})

	assert.Same(t, tree[0], next[0])
	assert.Equal(t, "x", next[0].(*ParagraphBlock).Content)
}

func TestDeleteByID_MissingIDReturnsInput(t *testing.T) {
	tree := Tree{
		mustBlock(t, KindHeading, "h"),
		layout(t, "L", []Block{paragraph(t, "p", "x")}, []Block{}),
	}
	before := Render(tree)

	next := DeleteByID(tree, "missing")

	require.Len(t, next, len(tree))
	for i := range tree {
		assert.Same(t, tree[i], next[i])
	}
	assert.Equal(t, before, Render(next))
}

func TestDeleteByID_CascadesThroughLayouts(t *testing.T) {
	inner := layout(t, "inner", []Block{paragraph(t, "deep", "x")})
	tree := Tree{
		paragraph(t, "before", "x"),
		layout(t, "L", []Block{paragraph(t, "c0", "x")}, []Block{inner}),
		paragraph(t, "after", "x"),
	}
	require.Equal(t, 6, CountBlocks(tree))

	next := DeleteByID(tree, "L")

	assert.Equal(t, []string{"before", "after"}, idsOf(next))
	for _, id := range []string{"L", "c0", "inner", "deep"} {
		assert.Nil(t, FindByID(next, id), id)
	}
	assert.Equal(t, 6, CountBlocks(tree))
}

func TestDeleteByID_Nested(t *testing.T) {
	inner := layout(t, "inner", []Block{paragraph(t, "deep", "x"), paragraph(t, "keep", "x")})
	tree := Tree{layout(t, "L", []Block{inner})}

	next := DeleteByID(tree, "deep")

	nextInner := FindByID(next, "inner").(*LayoutBlock)
	assert.Equal(t, []string{"keep"}, idsOf(nextInner.Columns[0]))
	assert.Len(t, inner.Columns[0], 2)
}

func TestResizeColumns_Grow(t *testing.T) {
	l := layout(t, "L", []Block{paragraph(t, "a", "x")}, []Block{paragraph(t, "b", "x")})

	grown := ResizeColumns(l, 4)

	assert.Equal(t, 4, grown.ColumnCount)
	require.Len(t, grown.Columns, 4)
	assert.Equal(t, []string{"a"}, idsOf(grown.Columns[0]))
	assert.Equal(t, []string{"b"}, idsOf(grown.Columns[1]))
	assert.NotNil(t, grown.Columns[2])
	assert.Empty(t, grown.Columns[2])
	assert.Empty(t, grown.Columns[3])
	assert.Equal(t, 2, l.ColumnCount)
	assert.Len(t, l.Columns, 2)
}

func TestResizeColumns_ShrinkKeepsEveryBlock(t *testing.T) {
	// three columns [A], [B], [C] shrink to one: [A, B, C].
	l := layout(t, "L",
		[]Block{paragraph(t, "A", "x")},
		[]Block{paragraph(t, "B", "x")},
		[]Block{paragraph(t, "C", "x")},
	)

	shrunk := ResizeColumns(l, 1)

	assert.Equal(t, 1, shrunk.ColumnCount)
	require.Len(t, shrunk.Columns, 1)
	assert.Equal(t, []string{"A", "B", "C"}, idsOf(shrunk.Columns[0]))
	assert.Len(t, l.Columns, 3)
}

func TestResizeColumns_Property(t *testing.T) {
	seq := 0
	build := func(sizes ...int) *LayoutBlock {
		columns := make([][]Block, len(sizes))
		for i, size := range sizes {
			columns[i] = []Block{}
			for j := 0; j < size; j++ {
				seq++
				columns[i] = append(columns[i], paragraph(t, fmt.Sprintf("b%d", seq), "x"))
			}
		}
		return layout(t, fmt.Sprintf("L%d", seq), columns...)
	}

	layouts := []*LayoutBlock{
		build(0),
		build(2),
		build(1, 0),
		build(0, 3, 1),
		build(2, 2, 0, 1),
	}

	for _, l := range layouts {
		var flat []string
		for _, column := range l.Columns {
			flat = append(flat, idsOf(column)...)
		}
		for n := 1; n <= MaxColumns; n++ {
			t.Run(fmt.Sprintf("%s_%d_to_%d", l.ID, len(l.Columns), n), func(t *testing.T) {
				resized := ResizeColumns(l, n)

				assert.Equal(t, n, resized.ColumnCount)
				assert.Len(t, resized.Columns, n)

				var got []string
				for _, column := range resized.Columns {
					got = append(got, idsOf(column)...)
				}
				assert.Equal(t, flat, got)

				keep := n
				if len(l.Columns) < keep {
					keep = len(l.Columns)
				}
				for i := 0; i < keep-1; i++ {
					assert.Equal(t, idsOf(l.Columns[i]), idsOf(resized.Columns[i]))
				}
			})
		}
	}
}

func TestResizeColumns_OutOfRangeIsNoOp(t *testing.T) {
	l := layout(t, "L", []Block{}, []Block{})

	for _, n := range []int{0, -1, MaxColumns + 1, 2} {
		assert.Same(t, l, ResizeColumns(l, n), "n=%d", n)
	}
	assert.Nil(t, ResizeColumns(nil, 2))
}

func TestResizeColumnsByID(t *testing.T) {
	inner := layout(t, "inner", []Block{paragraph(t, "a", "x")}, []Block{paragraph(t, "b", "x")})
	tree := Tree{mustBlock(t, KindHeading, "h"), layout(t, "L", []Block{inner})}

	next := ResizeColumnsByID(tree, "inner", 1)

	resized := FindByID(next, "inner").(*LayoutBlock)
	assert.Equal(t, 1, resized.ColumnCount)
	assert.Equal(t, []string{"a", "b"}, idsOf(resized.Columns[0]))
	assert.Same(t, tree[0], next[0])

	// not a layout, or missing
	assert.Same(t, tree[1], ResizeColumnsByID(tree, "h", 1)[1])
	assert.Same(t, tree[1], ResizeColumnsByID(tree, "missing", 3)[1])
}

func TestWalk_DocumentOrder(t *testing.T) {
	tree := Tree{
		paragraph(t, "a", "x"),
		layout(t, "L",
			[]Block{paragraph(t, "c0", "x"), layout(t, "inner", []Block{paragraph(t, "deep", "x")})},
			[]Block{paragraph(t, "c1", "x")},
		),
		paragraph(t, "z", "x"),
	}

	var visited []string
	Walk(tree, func(b Block) { visited = append(visited, b.GetID()) })

	assert.Equal(t, []string{"a", "L", "c0", "inner", "deep", "c1", "z"}, visited)
	assert.True(t, Contains(tree[1], "deep"))
	assert.False(t, Contains(tree[0], "deep"))
	assert.False(t, Contains(nil, "a"))
}

func TestInsert_HeadingIntoEmptyTreeRendersOneHeading(t *testing.T) {
	h, err := DefaultsFor(KindHeading)
	require.NoError(t, err)

	tree := Insert(Tree{}, h, RootTarget())

	require.Len(t, tree, 1)
	assert.Equal(t, KindHeading, tree[0].GetKind())
	assert.Equal(t, "Your Name", tree[0].(*HeadingBlock).Content)

	doc := parseHTML(t, Render(tree))
	rows := rootRows(doc)
	assert.Equal(t, 1, rows.Length())
	assert.Equal(t, "Your Name", rows.Find("h1").Text())
}

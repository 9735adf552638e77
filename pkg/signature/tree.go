package signature

// Mutation operations never modify the tree they are given. A change returns
// a new tree in which every container on the path to the changed node is a
// new slice, while untouched siblings are shared with the input. Missing ids
// and out-of-range targets are not errors: the input tree is returned as is,
// because callers are driven by drag and drop events that may be stale.

// Target addresses the sequence a block is inserted into: the root sequence,
// or one column of a layout block.
type Target struct {
	LayoutID string `json:"layout_id,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// RootTarget addresses the root sequence.
func RootTarget() Target {
	return Target{}
}

// ColumnTarget addresses column `column` of the layout identified by layoutID.
func ColumnTarget(layoutID string, column int) Target {
	return Target{LayoutID: layoutID, Column: column}
}

func (t Target) IsRoot() bool {
	return t.LayoutID == ""
}

// Patch lists the attributes to change on a block. Nil fields are left
// alone, fields the block's kind does not carry are ignored, and style
// patches are merged property by property (see StyleMap.Merge).
type Patch struct {
	Content        *string   `json:"content,omitempty"`
	LinkTarget     *string   `json:"linkTarget,omitempty"`
	ImageSource    *string   `json:"imageSource,omitempty"`
	Alt            *string   `json:"alt,omitempty"`
	SpacerHeight   *string   `json:"spacerHeight,omitempty"`
	ContentStyle   *StyleMap `json:"contentStyle,omitempty"`
	ContainerStyle *StyleMap `json:"containerStyle,omitempty"`
}

func (p Patch) apply(b Block) Block {
	next := b.shallowCopy()
	switch v := next.(type) {
	case *HeadingBlock:
		setIf(&v.Content, p.Content)
	case *ParagraphBlock:
		setIf(&v.Content, p.Content)
	case *ButtonBlock:
		setIf(&v.Content, p.Content)
		setIf(&v.LinkTarget, p.LinkTarget)
	case *ImageBlock:
		setIf(&v.ImageSource, p.ImageSource)
		setIf(&v.Alt, p.Alt)
	case *SpacerBlock:
		setIf(&v.SpacerHeight, p.SpacerHeight)
	}
	base := baseOf(next)
	base.ContentStyle = patchStyle(base.ContentStyle, p.ContentStyle)
	base.ContainerStyle = patchStyle(base.ContainerStyle, p.ContainerStyle)
	return next
}

// patchStyle never returns current itself, so the updated block and the
// block it replaces share no style map.
func patchStyle(current, overrides *StyleMap) *StyleMap {
	if overrides != nil {
		return current.Merge(overrides)
	}
	if current == nil {
		return nil
	}
	return current.Clone()
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func baseOf(b Block) *BaseBlock {
	switch v := b.(type) {
	case *HeadingBlock:
		return &v.BaseBlock
	case *ParagraphBlock:
		return &v.BaseBlock
	case *ButtonBlock:
		return &v.BaseBlock
	case *ImageBlock:
		return &v.BaseBlock
	case *SpacerBlock:
		return &v.BaseBlock
	case *LayoutBlock:
		return &v.BaseBlock
	}
	return nil
}

// rewrite looks for the block with the given id at any depth and replaces it
// with fn's result, or removes it when fn returns a nil block. The boolean is
// false when the id is absent or fn declined, in which case blocks itself is
// returned.
func rewrite(blocks []Block, id string, fn func(Block) (Block, bool)) ([]Block, bool) {
	for i, b := range blocks {
		if b.GetID() == id {
			next, ok := fn(b)
			if !ok {
				return blocks, false
			}
			out := make([]Block, 0, len(blocks))
			out = append(out, blocks[:i]...)
			if next != nil {
				out = append(out, next)
			}
			return append(out, blocks[i+1:]...), true
		}

		layout, ok := b.(*LayoutBlock)
		if !ok {
			continue
		}
		for c, column := range layout.Columns {
			nextColumn, changed := rewrite(column, id, fn)
			if !changed {
				continue
			}
			out := make([]Block, len(blocks))
			copy(out, blocks)
			out[i] = layout.withColumn(c, nextColumn)
			return out, true
		}
	}
	return blocks, false
}

// Insert appends block to the end of the sequence addressed by target.
// Nothing happens when the target layout or column does not exist, when the
// block's own subtree is malformed (see Validate), or when the block, or any
// block nested in it, reuses an id already in the tree.
func Insert(tree Tree, block Block, target Target) Tree {
	out, _ := insert(tree, block, target)
	return out
}

func insert(tree Tree, block Block, target Target) (Tree, bool) {
	if block == nil || Validate(Tree{block}) != nil {
		return tree, false
	}
	existing := make(map[string]struct{})
	Walk(tree, func(b Block) { existing[b.GetID()] = struct{}{} })
	clash := false
	Walk(Tree{block}, func(b Block) {
		if _, ok := existing[b.GetID()]; ok {
			clash = true
		}
	})
	if clash {
		return tree, false
	}

	if target.IsRoot() {
		out := make(Tree, len(tree), len(tree)+1)
		copy(out, tree)
		return append(out, block), true
	}

	out, ok := rewrite(tree, target.LayoutID, func(b Block) (Block, bool) {
		layout, isLayout := b.(*LayoutBlock)
		if !isLayout || target.Column < 0 || target.Column >= len(layout.Columns) {
			return nil, false
		}
		current := layout.Columns[target.Column]
		column := make([]Block, len(current), len(current)+1)
		copy(column, current)
		return layout.withColumn(target.Column, append(column, block)), true
	})
	return Tree(out), ok
}

// FindByID returns the block with the given id, searching the root sequence
// first and then every layout's columns in order, or nil.
func FindByID(tree Tree, id string) Block {
	for _, b := range tree {
		if b.GetID() == id {
			return b
		}
		if layout, ok := b.(*LayoutBlock); ok {
			for _, column := range layout.Columns {
				if found := FindByID(column, id); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

// UpdateByID replaces the identified block with a copy carrying patch.
func UpdateByID(tree Tree, id string, patch Patch) Tree {
	out, _ := updateByID(tree, id, patch)
	return out
}

func updateByID(tree Tree, id string, patch Patch) (Tree, bool) {
	out, ok := rewrite(tree, id, func(b Block) (Block, bool) {
		return patch.apply(b), true
	})
	return Tree(out), ok
}

// DeleteByID removes the identified block. Deleting a layout removes every
// block nested in its columns along with it.
func DeleteByID(tree Tree, id string) Tree {
	out, _ := deleteByID(tree, id)
	return out
}

func deleteByID(tree Tree, id string) (Tree, bool) {
	out, ok := rewrite(tree, id, func(Block) (Block, bool) {
		return nil, true
	})
	return Tree(out), ok
}

// ResizeColumns returns a copy of layout with n columns. Growing appends
// empty columns. Shrinking moves the blocks of every removed column, in
// order, to the end of the last remaining column, so no block is lost.
// Counts outside 1..MaxColumns leave the layout unchanged.
func ResizeColumns(layout *LayoutBlock, n int) *LayoutBlock {
	if layout == nil || n < 1 || n > MaxColumns || n == len(layout.Columns) {
		return layout
	}

	columns := make([][]Block, n)
	if n > len(layout.Columns) {
		copy(columns, layout.Columns)
		for i := len(layout.Columns); i < n; i++ {
			columns[i] = []Block{}
		}
	} else {
		copy(columns, layout.Columns[:n-1])
		var merged []Block
		for _, column := range layout.Columns[n-1:] {
			merged = append(merged, column...)
		}
		if merged == nil {
			merged = []Block{}
		}
		columns[n-1] = merged
	}

	next := *layout
	next.BaseBlock = layout.BaseBlock.cloneStyles()
	next.Columns = columns
	next.ColumnCount = n
	return &next
}

// ResizeColumnsByID applies ResizeColumns to the layout with the given id.
func ResizeColumnsByID(tree Tree, layoutID string, n int) Tree {
	out, _ := resizeColumnsByID(tree, layoutID, n)
	return out
}

func resizeColumnsByID(tree Tree, layoutID string, n int) (Tree, bool) {
	out, ok := rewrite(tree, layoutID, func(b Block) (Block, bool) {
		layout, isLayout := b.(*LayoutBlock)
		if !isLayout {
			return nil, false
		}
		resized := ResizeColumns(layout, n)
		return resized, resized != layout
	})
	return Tree(out), ok
}

// Walk visits every block in document order: each block before the contents
// of its columns, columns left to right.
func Walk(tree Tree, fn func(Block)) {
	for _, b := range tree {
		fn(b)
		if layout, ok := b.(*LayoutBlock); ok {
			for _, column := range layout.Columns {
				Walk(column, fn)
			}
		}
	}
}

// Contains reports whether root is, or holds at any depth, the block id.
func Contains(root Block, id string) bool {
	if root == nil {
		return false
	}
	return FindByID(Tree{root}, id) != nil
}

// CountBlocks returns the number of blocks in the tree at every depth.
func CountBlocks(tree Tree) int {
	n := 0
	Walk(tree, func(Block) { n++ })
	return n
}

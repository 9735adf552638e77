package signature

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// UnmarshalBlock decodes one block, dispatching on its "kind" field.
func UnmarshalBlock(data []byte) (Block, error) {
	kind, err := ParseKind(gjson.GetBytes(data, "kind").String())
	if err != nil {
		return nil, err
	}

	var block Block
	switch kind {
	case KindHeading:
		block = &HeadingBlock{}
	case KindParagraph:
		block = &ParagraphBlock{}
	case KindButton:
		block = &ButtonBlock{}
	case KindImage:
		block = &ImageBlock{}
	case KindSpacer:
		block = &SpacerBlock{}
	case KindLayout:
		return unmarshalLayout(data)
	}

	if err := json.Unmarshal(data, block); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s block: %w", kind, err)
	}
	return block, nil
}

func unmarshalLayout(data []byte) (Block, error) {
	aux := struct {
		BaseBlock
		ColumnCount int               `json:"columnCount"`
		Columns     []json.RawMessage `json:"columns"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("failed to unmarshal layout block: %w", err)
	}

	layout := &LayoutBlock{
		BaseBlock:   aux.BaseBlock,
		ColumnCount: aux.ColumnCount,
		Columns:     make([][]Block, len(aux.Columns)),
	}
	for i, raw := range aux.Columns {
		column, err := unmarshalBlocks(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal column %d of layout %s: %w", i, aux.ID, err)
		}
		layout.Columns[i] = column
	}
	return layout, nil
}

func unmarshalBlocks(data []byte) ([]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	blocks := make([]Block, 0, len(raws))
	for _, raw := range raws {
		block, err := UnmarshalBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// UnmarshalJSON decodes a root sequence. Structural invariants are not
// checked here; use UnmarshalTree for untrusted input.
func (t *Tree) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = nil
		return nil
	}
	blocks, err := unmarshalBlocks(data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal tree: %w", err)
	}
	*t = Tree(blocks)
	return nil
}

// MarshalJSON encodes a nil tree as an empty array.
func (t Tree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Block(t))
}

// UnmarshalTree decodes and validates a tree.
func UnmarshalTree(data []byte) (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

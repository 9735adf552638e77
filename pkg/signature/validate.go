package signature

import "fmt"

// Validate checks the structural invariants of a tree: every block has a
// known kind and a non-empty id unique across the whole tree, and every
// layout holds exactly ColumnCount columns within 1..MaxColumns.
func Validate(tree Tree) error {
	seen := make(map[string]struct{})
	return validateBlocks(tree, seen)
}

func validateBlocks(blocks []Block, seen map[string]struct{}) error {
	for _, b := range blocks {
		if b == nil {
			return fmt.Errorf("%w: nil block", ErrInvalidTree)
		}
		id := b.GetID()
		if id == "" {
			return fmt.Errorf("%w: block without id", ErrInvalidTree)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate block id %q", ErrInvalidTree, id)
		}
		seen[id] = struct{}{}

		if err := b.GetKind().Validate(); err != nil {
			return fmt.Errorf("%w: block %q: %v", ErrInvalidTree, id, err)
		}

		layout, ok := b.(*LayoutBlock)
		if !ok {
			continue
		}
		if layout.ColumnCount < 1 || layout.ColumnCount > MaxColumns {
			return fmt.Errorf("%w: layout %q has %d columns, want 1 to %d", ErrInvalidTree, id, layout.ColumnCount, MaxColumns)
		}
		if len(layout.Columns) != layout.ColumnCount {
			return fmt.Errorf("%w: layout %q declares %d columns but holds %d", ErrInvalidTree, id, layout.ColumnCount, len(layout.Columns))
		}
		for _, column := range layout.Columns {
			if err := validateBlocks(column, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

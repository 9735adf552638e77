package signature

import (
	"encoding/json"
	"fmt"
)

// Session is one editing session of the builder: the tree being edited and
// the block currently selected for property editing. A Session is not safe
// for concurrent use.
type Session struct {
	tree       Tree
	selectedID string
}

func NewSession(tree Tree) *Session {
	return &Session{tree: tree}
}

func (s *Session) Tree() Tree {
	return s.tree
}

// Load replaces the tree wholesale and drops the selection.
func (s *Session) Load(tree Tree) {
	s.tree = tree
	s.selectedID = ""
}

// Select marks the block with the given id as selected. Ids that are not in
// the tree are ignored.
func (s *Session) Select(id string) {
	if FindByID(s.tree, id) != nil {
		s.selectedID = id
	}
}

func (s *Session) Clear() {
	s.selectedID = ""
}

func (s *Session) SelectedID() string {
	return s.selectedID
}

// IsSelected compares ids exactly, so a selected block nested in a layout
// column never marks its siblings or its layout as selected.
func (s *Session) IsSelected(id string) bool {
	return id != "" && s.selectedID == id
}

// Selected returns the selected block, or nil.
func (s *Session) Selected() Block {
	if s.selectedID == "" {
		return nil
	}
	return FindByID(s.tree, s.selectedID)
}

// Place builds a block of the given kind from the registry, inserts it at
// target and selects it. It returns nil, leaving the selection alone, when
// the target no longer exists.
func (s *Session) Place(kind string, target Target) (Block, error) {
	block, err := NewBlock(kind)
	if err != nil {
		return nil, err
	}
	if !s.Insert(block, target) {
		return nil, nil
	}
	s.selectedID = block.GetID()
	return block, nil
}

// Insert reports whether the tree changed.
func (s *Session) Insert(block Block, target Target) bool {
	next, changed := insert(s.tree, block, target)
	s.tree = next
	return changed
}

// Update patches a block. The selection is kept.
func (s *Session) Update(id string, patch Patch) bool {
	next, changed := updateByID(s.tree, id, patch)
	s.tree = next
	return changed
}

// Delete removes a block and its descendants, clearing the selection when
// the selected block was among them.
func (s *Session) Delete(id string) bool {
	removed := FindByID(s.tree, id)
	next, changed := deleteByID(s.tree, id)
	s.tree = next
	if changed && Contains(removed, s.selectedID) {
		s.selectedID = ""
	}
	return changed
}

func (s *Session) ResizeColumns(layoutID string, n int) bool {
	next, changed := resizeColumnsByID(s.tree, layoutID, n)
	s.tree = next
	return changed
}

func (s *Session) Render() string {
	return Render(s.tree)
}

type sessionState struct {
	Tree       Tree   `json:"tree"`
	SelectedID string `json:"selected_id,omitempty"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionState{Tree: s.tree, SelectedID: s.selectedID})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if err := Validate(state.Tree); err != nil {
		return err
	}
	s.tree = state.Tree
	s.selectedID = ""
	s.Select(state.SelectedID)
	return nil
}

// Package signature implements the email signature builder: a tree of typed
// blocks (headings, paragraphs, buttons, images, spacers and multi-column
// layouts), the operations that edit it, and the serializer that turns it
// into table-based HTML that mail clients render consistently.
//
// A tree is edited through Insert, UpdateByID, DeleteByID and ResizeColumns,
// each of which returns a new tree and leaves its input untouched. Render
// walks the tree once and is deterministic: the same tree always produces
// the same bytes.
package signature

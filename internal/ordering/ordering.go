// Package ordering computes fractional position keys for drag-and-drop
// reordering. Inserting between two siblings takes the midpoint of their
// keys, so no other sibling ever needs renumbering.
package ordering

// ForIndex returns the position key for an item inserted at index within
// the ordered sibling sequence. positions must be the current sibling keys
// in ascending order, excluding the moving item itself. index refers to
// the slot the item occupies after insertion, so index == len(positions)
// appends at the tail.
//
// Repeated midpoint insertions into the same gap eventually exhaust
// float64 precision; there is no renumbering pass.
func ForIndex(positions []float64, index int) float64 {
	if len(positions) == 0 {
		return 1
	}
	if index <= 0 {
		return positions[0] - 1
	}
	if index >= len(positions) {
		return positions[len(positions)-1] + 1
	}
	return (positions[index-1] + positions[index]) / 2
}

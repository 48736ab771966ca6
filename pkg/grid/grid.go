package grid

// GetGridCoords maps a linear index onto a grid with cols columns, filling
// rows left to right.
func GetGridCoords(index, cols int) (x, y int) {
	if cols <= 0 {
		return 0, index
	}
	return index % cols, index / cols
}

// Rows returns how many rows n cells occupy in a grid with cols columns.
func Rows(n, cols int) int {
	if cols <= 0 {
		return n
	}
	return (n + cols - 1) / cols
}

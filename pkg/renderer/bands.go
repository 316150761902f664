package renderer

// Band is a contiguous run of pixel rows rendered as one unit of parallel
// work. Bands never overlap and together cover the whole image, so each
// band owns a disjoint region of the destination buffer by construction.
type Band struct {
	ID int // Index in submission order, used to track completion
	Y0 int // First row, inclusive
	Y1 int // Last row, exclusive
}

// Rows returns the number of pixel rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows partitions an image of the given height into bands of at most
// bandRows rows each. The last band absorbs the remainder.
func SplitRows(height, bandRows int) []Band {
	if bandRows <= 0 {
		bandRows = 1
	}

	numBands := (height + bandRows - 1) / bandRows // Ceiling division
	bands := make([]Band, 0, numBands)

	for id := 0; id < numBands; id++ {
		y0 := id * bandRows
		y1 := min(y0+bandRows, height)
		bands = append(bands, Band{ID: id, Y0: y0, Y1: y1})
	}

	return bands
}

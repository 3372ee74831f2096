package qrcode

// IsDark reports whether (x, y) is a dark module, treating anything outside
// the matrix (the quiet zone) as light.
func IsDark(m Matrix, x, y int32) bool {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return false
	}
	return m.At(x, y)
}

// RoundedCorners reports, for the dark module at (x, y), which of its four
// corners should be rounded under the "both-neighbors-light" rule shared by
// the raster, vector, and PDF renderers: a corner rounds iff both modules
// orthogonally adjacent to that corner are light, so that flush edges
// between two dark modules stay visually continuous.
func RoundedCorners(m Matrix, x, y int32) (topLeft, topRight, bottomRight, bottomLeft bool) {
	topLeft = !IsDark(m, x-1, y) && !IsDark(m, x, y-1)
	topRight = !IsDark(m, x+1, y) && !IsDark(m, x, y-1)
	bottomRight = !IsDark(m, x+1, y) && !IsDark(m, x, y+1)
	bottomLeft = !IsDark(m, x-1, y) && !IsDark(m, x, y+1)
	return
}

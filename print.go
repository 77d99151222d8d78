package mnist

import (
	"fmt"
	"strings"
)

// FormatImage renders a normalized pixel vector as a text grid with cols
// pixels per line. Pixels above 0.5 print as '*', the rest as '_'.
func FormatImage(pixels []float32, cols int) string {
	if cols <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(pixels) + len(pixels)/cols + 1)
	for i, p := range pixels {
		if p > 0.5 {
			b.WriteByte('*')
		} else {
			b.WriteByte('_')
		}
		if (i+1)%cols == 0 {
			b.WriteByte('\n')
		}
	}
	if len(pixels)%cols != 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// PrintImage writes the grid produced by [FormatImage] to stdout.
func PrintImage(pixels []float32, cols int) {
	fmt.Print(FormatImage(pixels, cols))
}

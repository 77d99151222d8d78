package mnist

import "gonum.org/v1/gonum/mat"

// ImageMatrix copies a pixel vector into a rows×cols dense matrix for use
// with gonum-based consumers. Panics if the vector is shorter than
// rows×cols, matching mat.NewDense semantics.
func ImageMatrix(pixels []float32, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(pixels[i])
	}
	return mat.NewDense(rows, cols, data)
}

// TrainMatrix returns training image i as a dense matrix.
func (r *Reader) TrainMatrix(i int) *mat.Dense {
	return ImageMatrix(r.TrainData[i], r.rows, r.cols)
}

// TestMatrix returns test image i as a dense matrix.
func (r *Reader) TestMatrix(i int) *mat.Dense {
	return ImageMatrix(r.TestData[i], r.rows, r.cols)
}

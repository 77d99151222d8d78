// Package mnist fetches, caches, and decodes the MNIST handwritten-digit
// dataset.
//
// The dataset consists of four gzip-compressed archives in the IDX binary
// layout: training images, training labels, test images, and test labels.
// A [Reader] downloads any archive missing from its data directory, then
// decodes all four fully into memory. Once an archive is on disk it is
// never fetched again, so every load after the first is offline.
//
// # Quick Start
//
//	r, err := mnist.New("mnist-data")
//	if err != nil {
//	    return err
//	}
//	if err := r.Load(context.Background()); err != nil {
//	    return err
//	}
//	fmt.Println("train images:", len(r.TrainData))
//	fmt.Println("first label:", r.TrainLabels[0])
//	mnist.PrintImage(r.TrainData[0], r.Cols())
//
// Pixel values are normalized to [0.0, 1.0]; labels are the raw digit
// classes 0–9.
//
// # Verification
//
// By default a cached archive is trusted by presence alone. Use
// [WithVerify] to check every archive against the published SHA-256
// digests before it is decoded:
//
//	r, err := mnist.New("mnist-data", mnist.WithVerify(true))
package mnist

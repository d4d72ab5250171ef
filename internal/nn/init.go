package nn

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/flint-ml/flint/internal/tensor"
)

// weightSrc is the random source for weight initialization. When nil,
// distuv falls back to the shared global source.
var weightSrc rand.Source

// Xavier (Glorot) initialization for weights.
//
// Fills a new tensor with values drawn independently from the uniform
// distribution U(-bound, bound) with bound = sqrt(6 / (fanIn + fanOut)),
// which keeps activation variance stable across layers.
func Xavier(fanIn, fanOut int, shape tensor.Shape) *tensor.Tensor {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: weightSrc}

	t, err := tensor.New(shape)
	if err != nil {
		panic(err)
	}
	data := t.Data()
	for i := range data {
		data[i] = float32(dist.Rand())
	}
	return t
}

// Zeros creates a zero-filled tensor. Used for bias initialization.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	t, err := tensor.New(shape)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedWeights pins weight initialization to a deterministic source, for
// reproducible runs.
func SeedWeights(seed uint64) {
	weightSrc = rand.NewPCG(seed, seed)
}

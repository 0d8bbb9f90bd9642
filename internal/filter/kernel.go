package filter

import (
	"math"
	"sync"
)

// Kernel returns the normalised 1D Gaussian kernel for sigma.
// It spans three standard deviations on each side, so its length is
// 2*ceil(3*sigma)+1. For sigma <= 0 it is the identity kernel [1].
func Kernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(sigma * 3))
	k := make([]float32, 2*half+1)
	denom := 2 * sigma * sigma

	var sum float64
	for i := range k {
		d := float64(i - half)
		w := math.Exp(-d * d / denom)
		k[i] = float32(w)
		sum += w
	}
	inv := float32(1 / sum)
	for i := range k {
		k[i] *= inv
	}
	return k
}

// Blur sigmas come from layout files and photo settings, so only a handful
// are ever live. The cache is never pruned.
var kernels sync.Map // int (sigma in hundredths) -> []float32

// cachedKernel returns the shared kernel for sigma, quantised to 0.01.
// Callers must not modify the result.
func cachedKernel(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	if k, ok := kernels.Load(key); ok {
		return k.([]float32)
	}
	k, _ := kernels.LoadOrStore(key, Kernel(float64(key)/100))
	return k.([]float32)
}

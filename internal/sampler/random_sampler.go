package sampler

import (
	"math"
	"math/rand"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Uniform random pick without replacement of a fixed fraction of the points
type RandomSampler struct {
	fraction float64
	random   *rand.Rand
}

func NewRandomSampler(fraction float64, seed int64) Sampler {
	return &RandomSampler{
		fraction: fraction,
		random:   rand.New(rand.NewSource(seed)),
	}
}

// Number of points retained out of n
func (s *RandomSampler) SampleSize(n int) int {
	if s.fraction <= 0 || n <= 0 {
		return 0
	}
	size := int(math.Floor(float64(n) * s.fraction))
	if size > n {
		return n
	}
	return size
}

// Draws floor(n*fraction) unique indices in [0,n) with a partial Fisher-Yates shuffle.
// The indices are returned in draw order.
func (s *RandomSampler) SampleIndices(n int) []int {
	size := s.SampleSize(n)
	if size == 0 {
		return []int{}
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < size; i++ {
		j := i + s.random.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices[:size]
}

func (s *RandomSampler) Sample(cloud *data.Cloud) *data.Cloud {
	return SelectIndices(cloud, s.SampleIndices(cloud.Len()))
}

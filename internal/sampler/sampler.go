package sampler

import "github.com/ecopia-map/las_voxelizer/internal/data"

// Selects a subset of the points of a cloud
type Sampler interface {
	// Returns the indices of the selected points among n points
	SampleIndices(n int) []int
	// Returns a new cloud with the selected points, colors following their positions
	Sample(cloud *data.Cloud) *data.Cloud
}

// Builds the cloud made of the points at the given indices, in the order of the indices
func SelectIndices(cloud *data.Cloud, indices []int) *data.Cloud {
	out := data.NewCloud(len(indices), cloud.HasColor())
	for _, i := range indices {
		var c data.Color
		if cloud.HasColor() {
			c = cloud.Colors[i]
		}
		out.Append(cloud.Positions[i], c)
	}
	return out
}

package viewer

import "github.com/ecopia-map/las_voxelizer/internal/data"

// Displays a point cloud to the user. Show returns once the user is done with the visualization.
type Viewer interface {
	Show(cloud *data.Cloud, title string) error
}

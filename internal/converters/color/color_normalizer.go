package color

import (
	"math"

	"github.com/ecopia-map/las_voxelizer/internal/data"
)

// Bit depth of the color channels stored in the source file
type Depth int

const (
	Depth16Bit Depth = 16
	Depth8Bit  Depth = 8
)

// Max channel value for the color depth
func (d Depth) MaxValue() float64 {
	if d == Depth8Bit {
		return math.MaxUint8
	}
	return math.MaxUint16
}

func (d Depth) String() string {
	if d == Depth8Bit {
		return "8bit"
	}
	return "16bit"
}

// Rescales raw colors into the [0,1] interval by a linear division by the max channel value of the
// given depth. Returns nil if raw is nil, so that an absent color stays absent.
func Normalize(raw []data.RawColor, depth Depth) []data.Color {
	if raw == nil {
		return nil
	}

	maxValue := depth.MaxValue()
	colors := make([]data.Color, len(raw))
	for i, c := range raw {
		colors[i] = data.Color{
			R: normalizeChannel(c.R, maxValue),
			G: normalizeChannel(c.G, maxValue),
			B: normalizeChannel(c.B, maxValue),
		}
	}

	return colors
}

// Builds the normalized cloud from a raw cloud. Positions are shared, not copied.
func NormalizeCloud(raw *data.RawCloud, depth Depth) *data.Cloud {
	return &data.Cloud{
		Positions: raw.Positions,
		Colors:    Normalize(raw.RawColors, depth),
	}
}

// 8 bit files declared as 16 bit would exceed 1 after division, clamp them
func normalizeChannel(v uint16, maxValue float64) float64 {
	return math.Min(float64(v)/maxValue, 1)
}

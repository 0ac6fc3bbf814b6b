package proj4_coordinate_converter

const (
	EpsgWGS84           = 4326
	EpsgWGS84Geocentric = 4978
	EpsgRDNew           = 28992
	EpsgWorldMercator   = 3395
	EpsgWebMercator     = 3857
)

// Proj.4 definition of a reference system
type projection struct {
	Definition string
	// coordinates are angles, given in degrees and converted in radians for proj
	LatLong bool
}

var epsgDatabase = map[int]projection{
	EpsgWGS84: {
		Definition: "+proj=longlat +datum=WGS84 +no_defs",
		LatLong:    true,
	},
	EpsgWGS84Geocentric: {
		Definition: "+proj=geocent +datum=WGS84 +units=m +no_defs",
	},
	EpsgRDNew: {
		Definition: "+proj=sterea +lat_0=52.15616055555555 +lon_0=5.38763888888889 +k=0.9999079 +x_0=155000 +y_0=463000 " +
			"+ellps=bessel +towgs84=565.2369,50.0087,465.658,-0.406857330322398,0.350732676542563,-1.8703473836068,4.0812 " +
			"+units=m +no_defs",
	},
	EpsgWorldMercator: {
		Definition: "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	},
	EpsgWebMercator: {
		Definition: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
	},
}

// Returns the EPSG codes known by the converter
func SupportedSrids() []int {
	srids := make([]int, 0, len(epsgDatabase))
	for srid := range epsgDatabase {
		srids = append(srids, srid)
	}
	return srids
}

func IsSupported(srid int) bool {
	_, ok := epsgDatabase[srid]
	return ok
}

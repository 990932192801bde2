package discovery

import "math"

// earthRadiusMiles is the mean Earth radius used by the haversine
// computation.
const earthRadiusMiles = 3958.8

// DistanceUnbounded is the sentinel returned for any degenerate
// geo input. It fails every max-distance comparison, which keeps the
// filter pipeline total: bad coordinates filter a candidate out of
// distance-constrained searches instead of crashing the run.
var DistanceUnbounded = math.Inf(1)

// DistanceMiles computes the great-circle distance between two
// coordinates using the haversine formula. Either input being out of
// range or non-finite yields DistanceUnbounded; the result is otherwise
// always finite and non-negative.
func DistanceMiles(a, b Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return DistanceUnbounded
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	d := earthRadiusMiles * c

	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return DistanceUnbounded
	}
	return d
}

// Package geo provides the great-circle distance used as the routing
// distance proxy throughout the decision core.
package geo

import (
	"math"

	"github.com/rescueline/dispatch-cli/internal/model"
)

// earthRadiusKM is the mean Earth radius.
const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKM(a, b model.Coordinate) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

// PathLengthKM sums consecutive great-circle leg distances along a
// waypoint sequence.
func PathLengthKM(points []model.Coordinate) float64 {
	var total float64
	for i := 0; i < len(points)-1; i++ {
		total += HaversineKM(points[i], points[i+1])
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

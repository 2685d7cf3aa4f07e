package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rescueline/dispatch-cli/internal/model"
)

func TestHaversineKM(t *testing.T) {
	// AIIMS Delhi (28.5672, 77.2100) to Connaught Place (28.6315, 77.2167) ≈ 7.2km.
	d := HaversineKM(
		model.Coordinate{Latitude: 28.5672, Longitude: 77.2100},
		model.Coordinate{Latitude: 28.6315, Longitude: 77.2167},
	)
	assert.InDelta(t, 7.2, d, 0.5)

	// Same point should be 0.
	p := model.Coordinate{Latitude: 28.6, Longitude: 77.2}
	assert.InDelta(t, 0, HaversineKM(p, p), 0.001)
}

func TestHaversineKM_Symmetric(t *testing.T) {
	a := model.Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	b := model.Coordinate{Latitude: 19.0760, Longitude: 72.8777}
	assert.InDelta(t, HaversineKM(a, b), HaversineKM(b, a), 1e-9)
}

func TestPathLengthKM(t *testing.T) {
	a := model.Coordinate{Latitude: 28.60, Longitude: 77.20}
	b := model.Coordinate{Latitude: 28.61, Longitude: 77.21}
	c := model.Coordinate{Latitude: 28.62, Longitude: 77.22}

	total := PathLengthKM([]model.Coordinate{a, b, c})
	assert.InDelta(t, HaversineKM(a, b)+HaversineKM(b, c), total, 1e-9)

	assert.Zero(t, PathLengthKM(nil))
	assert.Zero(t, PathLengthKM([]model.Coordinate{a}))
}

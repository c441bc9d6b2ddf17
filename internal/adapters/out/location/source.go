// Package location provides the GPS stand-in used outside a real device:
// a configured base position with bounded random drift, so location reports
// exercise the same path a device feed would.
package location

import (
	"context"
	"math/rand"

	"courier/internal/core/domain/model/kernel"
)

// maxDriftDegrees bounds each sampled step, roughly a city block.
const maxDriftDegrees = 0.001

// DriftingSource implements ports.LocationSource around a base position.
// Each sample drifts randomly from the previous one, staying valid.
type DriftingSource struct {
	current kernel.GeoPoint
}

// NewDriftingSource creates a source starting at the given position.
func NewDriftingSource(start kernel.GeoPoint) (*DriftingSource, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}

	return &DriftingSource{current: start}, nil
}

// Current returns the next sampled position.
func (s *DriftingSource) Current(_ context.Context) (kernel.GeoPoint, error) {
	lat := s.current.Latitude() + (rand.Float64()-0.5)*2*maxDriftDegrees  //nolint:gosec // not crypto
	lon := s.current.Longitude() + (rand.Float64()-0.5)*2*maxDriftDegrees //nolint:gosec // not crypto

	next, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		// Drifted off the edge of the coordinate space; stay put.
		return s.current, nil
	}

	s.current = next
	return next, nil
}

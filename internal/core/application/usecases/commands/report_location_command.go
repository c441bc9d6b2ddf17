package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand records the courier's current position.
type ReportLocationCommand struct {
	point kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command carrying the sampled position.
func NewReportLocationCommand(point kernel.GeoPoint) (ReportLocationCommand, error) {
	if err := point.Validate(); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		point: point,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Point returns the sampled position.
func (c *ReportLocationCommand) Point() kernel.GeoPoint { return c.point }

// Validate ensures the command was created through the constructor.
func (c *ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

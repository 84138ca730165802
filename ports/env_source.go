package ports

import (
	"context"

	"fiture/domain/life"
)

// EnvironmentSource produces the calendar-aligned daily environment table.
// Implementations read CSV or Excel exports and join them by date.
type EnvironmentSource interface {
	Read(ctx context.Context) (*life.EnvironmentSeries, error)
}

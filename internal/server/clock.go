package server

import (
	"context"

	"github.com/preston-bernstein/esports-sim/internal/clock"
)

// Clock defines the minimal day-runner behavior needed by the server.
type Clock interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() clock.Status
}

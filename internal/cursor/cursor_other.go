//go:build !darwin

package cursor

import (
	"log/slog"

	"github.com/fruitjuice088/mousejump/internal/geometry"
)

type systemActuator struct {
	logger *slog.Logger
}

// NewSystem returns an Actuator that only logs the requested warp.
func NewSystem(logger *slog.Logger) Actuator {
	if logger == nil {
		logger = slog.Default()
	}
	return systemActuator{logger: logger}
}

func (a systemActuator) WarpTo(p geometry.Point) {
	a.logger.Debug("[CURSOR] warp unsupported on this platform", "point", p.String())
}

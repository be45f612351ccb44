//go:build darwin

package cursor

/*
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static int mjWarpCursor(double x, double y) {
	CGError err = CGWarpMouseCursorPosition(CGPointMake(x, y));
	// Warping suppresses mouse deltas for a moment; reattach right away.
	CGAssociateMouseAndMouseCursorPosition(true);
	return (int)err;
}
*/
import "C"

import (
	"log/slog"

	"github.com/fruitjuice088/mousejump/internal/geometry"
)

type systemActuator struct {
	logger *slog.Logger
}

// NewSystem returns an Actuator backed by CGWarpMouseCursorPosition.
func NewSystem(logger *slog.Logger) Actuator {
	if logger == nil {
		logger = slog.Default()
	}
	return systemActuator{logger: logger}
}

func (a systemActuator) WarpTo(p geometry.Point) {
	if rc := C.mjWarpCursor(C.double(p.X), C.double(p.Y)); rc != 0 {
		a.logger.Warn("[CURSOR] warp failed", "point", p.String(), "cgerror", int(rc))
	}
}

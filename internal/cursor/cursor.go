// Package cursor moves the mouse pointer.
package cursor

import "github.com/fruitjuice088/mousejump/internal/geometry"

// Actuator warps the pointer to p. Warps are assumed to succeed.
type Actuator interface {
	WarpTo(p geometry.Point)
}

// ActuatorFunc adapts a function literal to the Actuator interface.
type ActuatorFunc func(p geometry.Point)

// WarpTo calls the underlying function.
func (f ActuatorFunc) WarpTo(p geometry.Point) {
	f(p)
}

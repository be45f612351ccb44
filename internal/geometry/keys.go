package geometry

// Keycode is a macOS virtual keycode (kVK_ANSI_*).
type Keycode uint16

const (
	KeyS Keycode = 1
	KeyD Keycode = 2
	KeyF Keycode = 3
	KeyW Keycode = 13
	KeyE Keycode = 14
	KeyR Keycode = 15
)

// The left hand rests on the home row: W E R address the top edge, S D F the
// bottom corners and the middle.
var landmarks = map[Keycode]Landmark{
	KeyW: TopLeft,
	KeyR: TopRight,
	KeyE: TopCenter,
	KeyS: BottomLeft,
	KeyD: Center,
	KeyF: BottomRight,
}

// Lookup returns the landmark bound to keycode k.
func Lookup(k Keycode) (Landmark, bool) {
	l, ok := landmarks[k]
	return l, ok
}

// Bindings returns a copy of the keycode table.
func Bindings() map[Keycode]Landmark {
	out := make(map[Keycode]Landmark, len(landmarks))
	for k, l := range landmarks {
		out[k] = l
	}
	return out
}

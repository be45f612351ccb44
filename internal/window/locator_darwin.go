//go:build darwin

package window

/*
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>

static int mjIntValue(CFDictionaryRef info, CFStringRef key, int *out) {
	CFNumberRef ref = (CFNumberRef)CFDictionaryGetValue(info, key);
	return ref != NULL && CFNumberGetValue(ref, kCFNumberIntType, out);
}

// mjFrontmostWindows writes the bounds of on-screen windows owned by the
// frontmost application into out, front to back, and returns how many.
// The frontmost application is the owner of the first normal-layer window;
// NSWorkspace is not used because it goes stale without an AppKit run loop.
static int mjFrontmostWindows(CGRect *out, int max) {
	CFArrayRef windows = CGWindowListCopyWindowInfo(
		kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
		kCGNullWindowID);
	if (windows == NULL) {
		return 0;
	}

	int n = 0;
	int front = -1;
	CFIndex count = CFArrayGetCount(windows);
	for (CFIndex i = 0; i < count && n < max; i++) {
		CFDictionaryRef info = (CFDictionaryRef)CFArrayGetValueAtIndex(windows, i);
		int owner = 0, layer = 0;
		if (!mjIntValue(info, kCGWindowOwnerPID, &owner) || !mjIntValue(info, kCGWindowLayer, &layer)) {
			continue;
		}
		if (front < 0) {
			if (layer != 0) {
				continue;
			}
			front = owner;
		}
		if (owner != front) {
			continue;
		}
		CFDictionaryRef boundsRef = (CFDictionaryRef)CFDictionaryGetValue(info, kCGWindowBounds);
		CGRect bounds;
		if (boundsRef == NULL || !CGRectMakeWithDictionaryRepresentation(boundsRef, &bounds)) {
			continue;
		}
		out[n++] = bounds;
	}
	CFRelease(windows);
	return n;
}
*/
import "C"

import (
	"github.com/fruitjuice088/mousejump/internal/geometry"
)

const maxCandidates = 32

type systemLocator struct{}

// NewSystem returns a Locator backed by the window server.
func NewSystem() Locator {
	return systemLocator{}
}

func (systemLocator) FrontmostWindowRect() (geometry.Rect, bool) {
	var buf [maxCandidates]C.CGRect
	n := int(C.mjFrontmostWindows(&buf[0], C.int(maxCandidates)))

	candidates := make([]geometry.Rect, 0, n)
	for i := 0; i < n; i++ {
		b := buf[i]
		candidates = append(candidates, geometry.Rect{
			X:      float64(b.origin.x),
			Y:      float64(b.origin.y),
			Width:  float64(b.size.width),
			Height: float64(b.size.height),
		})
	}
	return firstQualifying(candidates)
}

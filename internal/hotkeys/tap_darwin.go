//go:build darwin

package hotkeys

/*
#cgo darwin LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

extern CGEventRef goTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo);

static CFMachPortRef mjCreateTap(uintptr_t handle) {
	CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
	                   CGEventMaskBit(kCGEventKeyUp) |
	                   CGEventMaskBit(kCGEventFlagsChanged);
	return CGEventTapCreate(kCGSessionEventTap,
	                        kCGHeadInsertEventTap,
	                        kCGEventTapOptionDefault,
	                        mask,
	                        goTapCallback,
	                        (void *)handle);
}

static CFRunLoopSourceRef mjAttachTap(CFMachPortRef tap) {
	CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
	if (source == NULL) {
		return NULL;
	}
	CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
	CGEventTapEnable(tap, true);
	return source;
}

static void mjDetachTap(CFMachPortRef tap, CFRunLoopSourceRef source) {
	CGEventTapEnable(tap, false);
	if (source != NULL) {
		CFRunLoopRemoveSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
		CFRelease(source);
	}
	CFMachPortInvalidate(tap);
	CFRelease(tap);
}

static CFRunLoopRef mjCurrentRunLoop(void) {
	return CFRunLoopGetCurrent();
}

static void mjRunFor(double seconds) {
	CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}

static void mjStopRunLoop(CFRunLoopRef loop) {
	CFRunLoopStop(loop);
}

static int64_t mjKeycode(CGEventRef event) {
	return CGEventGetIntegerValueField(event, kCGKeyboardEventKeycode);
}

static int mjHasOption(CGEventRef event) {
	return (CGEventGetFlags(event) & kCGEventFlagMaskAlternate) != 0;
}
*/
import "C"

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/cgo"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/fruitjuice088/mousejump/internal/geometry"
)

// Supported reports whether this platform has a real event tap.
const Supported = true

// runSlice bounds how long the run loop sleeps between stop-flag checks.
const runSlice = 250 * time.Millisecond

type eventTap struct {
	logger   *slog.Logger
	stopping atomic.Bool
	loop     C.CFRunLoopRef
	done     chan struct{}
}

// SystemHookFactory returns a factory for Quartz session event taps.
func SystemHookFactory(logger *slog.Logger) HookFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return func() Hook {
		return &eventTap{logger: logger}
	}
}

func (t *eventTap) Start(sink Sink) error {
	if t.done != nil {
		return fmt.Errorf("%w: tap already started", ErrTapCreate)
	}
	ready := make(chan error, 1)
	done := make(chan struct{})
	go t.run(sink, ready, done)

	if err := <-ready; err != nil {
		<-done
		return err
	}
	t.done = done
	return nil
}

// run owns the tap for its whole life on one locked OS thread.
func (t *eventTap) run(sink Sink, ready chan<- error, done chan<- struct{}) {
	defer close(done)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	handle := cgo.NewHandle(sink)
	defer handle.Delete()

	tap := C.mjCreateTap(C.uintptr_t(handle))
	if tap == 0 {
		ready <- ErrTapCreate
		return
	}
	source := C.mjAttachTap(tap)
	if source == 0 {
		C.mjDetachTap(tap, 0)
		ready <- fmt.Errorf("%w: run loop source unavailable", ErrTapCreate)
		return
	}
	t.loop = C.mjCurrentRunLoop()
	ready <- nil

	t.logger.Debug("[TAP] run loop started")
	for !t.stopping.Load() {
		C.mjRunFor(C.double(runSlice.Seconds()))
	}
	C.mjDetachTap(tap, source)
	t.logger.Debug("[TAP] run loop exited")
}

func (t *eventTap) Stop() {
	if t.done == nil {
		return
	}
	t.stopping.Store(true)
	C.mjStopRunLoop(t.loop)
	<-t.done
	t.done = nil
}

//export goTapCallback
func goTapCallback(_ C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, userInfo unsafe.Pointer) C.CGEventRef {
	sink, ok := cgo.Handle(uintptr(userInfo)).Value().(Sink)
	if !ok {
		return event
	}

	var kind EventKind
	switch eventType {
	case C.kCGEventTapDisabledByTimeout:
		sink.HookDisabled(DisabledByTimeout)
		return event
	case C.kCGEventTapDisabledByUserInput:
		sink.HookDisabled(DisabledByUserInput)
		return event
	case C.kCGEventKeyDown:
		kind = KeyDown
	case C.kCGEventKeyUp:
		kind = KeyUp
	case C.kCGEventFlagsChanged:
		kind = FlagsChanged
	default:
		return event
	}

	ev := Event{
		Kind:    kind,
		Keycode: geometry.Keycode(C.mjKeycode(event)),
		Option:  C.mjHasOption(event) != 0,
	}
	if sink.HandleEvent(ev) == Swallow {
		return 0
	}
	return event
}

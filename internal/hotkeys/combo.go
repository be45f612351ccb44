package hotkeys

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fruitjuice088/mousejump/internal/cursor"
	"github.com/fruitjuice088/mousejump/internal/geometry"
	"github.com/fruitjuice088/mousejump/internal/window"
)

// DefaultDebounce is how long a solitary Option press may last and still
// count as a tap rather than the start of a chord.
const DefaultDebounce = 300 * time.Millisecond

// ModifierState tracks one Option hold cycle.
type ModifierState struct {
	Held    bool
	Since   time.Time
	Chorded bool
}

// AfterFunc runs f once after d and returns a function that cancels it.
// f must not be called synchronously.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// ComboOptions configures a Combo.
type ComboOptions struct {
	Debounce time.Duration
	Locator  window.Locator
	Actuator cursor.Actuator
	Logger   *slog.Logger
	Clock    func() time.Time
	After    AfterFunc
}

// Combo decides, per keyboard event, whether an Option chord or a solitary
// Option tap should warp the cursor.
type Combo struct {
	debounce time.Duration
	locator  window.Locator
	actuator cursor.Actuator
	logger   *slog.Logger
	now      func() time.Time
	after    AfterFunc

	mu         sync.Mutex
	state      ModifierState
	generation uint64
	// defaultDone is set once the default jump ran for the current cycle.
	defaultDone bool
	cancelCheck func() bool
}

// NewCombo validates options and constructs a Combo.
func NewCombo(opts ComboOptions) (*Combo, error) {
	if opts.Locator == nil {
		return nil, errors.New("window locator is required")
	}
	if opts.Actuator == nil {
		return nil, errors.New("cursor actuator is required")
	}
	if opts.Debounce < 0 {
		return nil, errors.New("debounce must not be negative")
	}
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	after := opts.After
	if after == nil {
		after = timeAfterFunc
	}
	return &Combo{
		debounce: debounce,
		locator:  opts.Locator,
		actuator: opts.Actuator,
		logger:   logger,
		now:      clock,
		after:    after,
	}, nil
}

// State returns a snapshot of the modifier state.
func (c *Combo) State() ModifierState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Handle classifies ev and returns whether the tap should swallow it.
func (c *Combo) Handle(ev Event) Verdict {
	switch ev.Kind {
	case FlagsChanged:
		c.handleFlags(ev.Option)
		return Pass
	case KeyDown:
		return c.handleKeyDown(ev.Keycode, ev.Option)
	default:
		return Pass
	}
}

func (c *Combo) handleFlags(option bool) {
	now := c.now()

	c.mu.Lock()
	switch {
	case option && !c.state.Held:
		c.generation++
		gen := c.generation
		c.state = ModifierState{Held: true, Since: now}
		c.defaultDone = false
		c.cancelCheck = c.after(c.debounce, func() { c.deferredCheck(gen) })
		c.mu.Unlock()

	case !option && c.state.Held:
		fire := !c.state.Chorded && !c.defaultDone
		held := now.Sub(c.state.Since)
		cancel := c.resetLocked()
		c.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if fire {
			c.logger.Debug("[COMBO] option tapped", "held", held)
			c.execute(geometry.DefaultLandmark)
		}

	default:
		c.mu.Unlock()
	}
}

// Reset returns the machine to Idle and invalidates any pending deferred
// check.
func (c *Combo) Reset() {
	c.mu.Lock()
	cancel := c.resetLocked()
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *Combo) resetLocked() func() bool {
	cancel := c.cancelCheck
	c.generation++
	c.state = ModifierState{}
	c.defaultDone = false
	c.cancelCheck = nil
	return cancel
}

// deferredCheck runs when the debounce window of cycle gen elapses.
func (c *Combo) deferredCheck(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || !c.state.Held || c.state.Chorded || c.defaultDone {
		c.mu.Unlock()
		return
	}
	c.defaultDone = true
	c.cancelCheck = nil
	c.mu.Unlock()

	c.logger.Debug("[COMBO] option held alone", "debounce", c.debounce)
	c.execute(geometry.DefaultLandmark)
}

func (c *Combo) handleKeyDown(k geometry.Keycode, option bool) Verdict {
	c.mu.Lock()
	if !c.state.Held {
		c.mu.Unlock()
		return Pass
	}
	if !option {
		// The Option release was never delivered.
		cancel := c.resetLocked()
		c.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		c.logger.Debug("[COMBO] key down without option, cycle dropped", "keycode", int(k))
		return Pass
	}
	c.state.Chorded = true
	c.mu.Unlock()

	l, ok := geometry.Lookup(k)
	if !ok {
		return Pass
	}
	c.execute(l)
	return Swallow
}

func (c *Combo) execute(l geometry.Landmark) {
	r, ok := c.locator.FrontmostWindowRect()
	if !ok {
		c.logger.Debug("[COMBO] no frontmost window", "landmark", l.String())
		return
	}
	p := geometry.Target(l, r)
	c.actuator.WarpTo(p)
	c.logger.Debug("[COMBO] cursor warped", "landmark", l.String(), "window", r.String(), "point", p.String())
}

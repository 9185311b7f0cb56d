package gate

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Rejection reasons, in the order the rules are evaluated. A rejected action
// is dropped, never queued or retried.
var (
	ErrDebounced = errors.New("action repeated too soon")
	ErrBusy      = errors.New("another action is in flight")
	ErrInFlight  = errors.New("action already in flight")
)

const (
	// DefaultDebounce is the minimum gap after an action completes before
	// the same action is admitted again.
	DefaultDebounce = 2000 * time.Millisecond
	// DefaultCooldown holds the action in Settling after completion before
	// its trigger re-enables.
	DefaultCooldown = 500 * time.Millisecond
)

type state int

const (
	stateIdle state = iota
	stateAdmitted
	stateSettling
)

type actionState struct {
	state         state
	lastCompleted time.Time
}

// Gate admits at most one in-flight send per client. Each logical action name
// ("send mood", "send hug", ...) runs a small Idle → Admitted → Settling
// machine with timestamps as transition guards; a single processing slot
// spans all actions so unrelated sends cannot race the same log.
type Gate struct {
	mu         sync.Mutex
	debounce   time.Duration
	cooldown   time.Duration
	processing bool
	actions    map[string]*actionState
	now        func() time.Time
}

// New builds a gate with the given windows; non-positive values fall back to
// the defaults.
func New(debounce, cooldown time.Duration) *Gate {
	return NewWithClock(debounce, cooldown, time.Now)
}

// NewWithClock injects the time source, for deterministic tests.
func NewWithClock(debounce, cooldown time.Duration, now func() time.Time) *Gate {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		debounce: debounce,
		cooldown: cooldown,
		actions:  make(map[string]*actionState),
		now:      now,
	}
}

// Do runs fn under the gate for the named action, or rejects it. The rules
// are checked in order: same-action debounce, global processing slot,
// per-action in-flight. Both flags clear after fn settles, success or not.
func (g *Gate) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	st, err := g.admit(name)
	if err != nil {
		return err
	}

	runErr := fn(ctx)
	g.settle(st)
	return runErr
}

func (g *Gate) admit(name string) (*actionState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.actions[name]
	if !ok {
		st = &actionState{}
		g.actions[name] = st
	}

	now := g.now()
	if st.state == stateSettling ||
		(!st.lastCompleted.IsZero() && now.Sub(st.lastCompleted) < g.debounce) {
		return nil, ErrDebounced
	}
	if g.processing {
		return nil, ErrBusy
	}
	if st.state == stateAdmitted {
		return nil, ErrInFlight
	}

	st.state = stateAdmitted
	g.processing = true
	return st, nil
}

func (g *Gate) settle(st *actionState) {
	g.mu.Lock()
	st.state = stateSettling
	st.lastCompleted = g.now()
	g.processing = false
	g.mu.Unlock()

	time.AfterFunc(g.cooldown, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if st.state == stateSettling {
			st.state = stateIdle
		}
	})
}

package service

import (
	"fmt"
	"sync"
	"time"

	"onthego/internal/domain/model"
)

// ViewCallbacks are the side effects each view transition may trigger. Any
// callback may be nil.
type ViewCallbacks struct {
	// EnsureDefaultCenter is called on first entry into the local view when no
	// search center has been established yet.
	EnsureDefaultCenter func()

	// InvalidateMapSize is called when re-entering the local view; a hidden
	// container can desynchronize the map's internal viewport dimensions.
	InvalidateMapSize func()

	// RefreshView is called after every committed transition with the new view.
	RefreshView func(view string)

	// ApplyPreset is called (debounced) when the time-of-day default preset
	// differs from the current one.
	ApplyPreset func(preset string)
}

// ViewStateMachine tracks which of world/local/travellog is displayed and
// runs the side effects transitions require. Alive for the page's lifetime;
// there is no terminal state.
type ViewStateMachine struct {
	callbacks ViewCallbacks
	hasCenter func() bool
	now       func() time.Time
	debounce  *Debouncer

	mu           sync.Mutex
	current      string
	enteredLocal bool
	preset       string
}

// NewViewStateMachine creates the machine in the world view. hasCenter reports
// whether a search center is established; nil means "never".
func NewViewStateMachine(callbacks ViewCallbacks, hasCenter func() bool) *ViewStateMachine {
	return &ViewStateMachine{
		callbacks: callbacks,
		hasCenter: hasCenter,
		now:       time.Now,
		debounce:  NewDebouncer(200 * time.Millisecond),
		current:   model.ViewWorld,
		preset:    model.PresetClientDinner,
	}
}

// SetClock overrides the clock, for tests.
func (m *ViewStateMachine) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// SetDebounce overrides the preset debounce window, for tests.
func (m *ViewStateMachine) SetDebounce(delay time.Duration) {
	m.mu.Lock()
	m.debounce = NewDebouncer(delay)
	m.mu.Unlock()
}

// Current returns the active view.
func (m *ViewStateMachine) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Preset returns the active search preset.
func (m *ViewStateMachine) Preset() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.preset
}

// SetPreset records an explicit user preset choice.
func (m *ViewStateMachine) SetPreset(preset string) {
	m.mu.Lock()
	m.preset = preset
	m.mu.Unlock()
}

// SetView transitions to the given view and runs its side effects. Setting the
// already-active view is a no-op for world/travellog but re-runs the local
// re-entry effects, matching a container unhide.
func (m *ViewStateMachine) SetView(view string) error {
	if !model.IsValidView(view) {
		return fmt.Errorf("unknown view mode: %q", view)
	}

	m.mu.Lock()
	previous := m.current
	m.current = view
	firstLocal := view == model.ViewLocal && !m.enteredLocal
	if view == model.ViewLocal {
		m.enteredLocal = true
	}
	m.mu.Unlock()

	if view == model.ViewLocal {
		if firstLocal && (m.hasCenter == nil || !m.hasCenter()) {
			m.invoke(m.callbacks.EnsureDefaultCenter)
		}
		if !firstLocal {
			m.invoke(m.callbacks.InvalidateMapSize)
		}
		m.schedulePresetSwitch()
	}

	if m.callbacks.RefreshView != nil && (previous != view || view == model.ViewLocal) {
		m.callbacks.RefreshView(view)
	}
	return nil
}

// schedulePresetSwitch applies the time-of-day default preset, debounced so
// rapid view churn doesn't cause redundant fetches. The switch only happens
// when the default differs from the current preset.
func (m *ViewStateMachine) schedulePresetSwitch() {
	m.mu.Lock()
	suggested := DefaultPresetFor(m.now())
	current := m.preset
	debounce := m.debounce
	m.mu.Unlock()

	if suggested == current {
		return
	}
	debounce.Do(func() {
		m.mu.Lock()
		m.preset = suggested
		m.mu.Unlock()
		m.invokePreset(suggested)
	})
}

// DefaultPresetFor picks the search preset for a wall-clock time: coffee in
// the morning, lunch midday, client dinner otherwise.
func DefaultPresetFor(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return model.PresetCoffee
	case h >= 11 && h < 16:
		return model.PresetLunch
	default:
		return model.PresetClientDinner
	}
}

func (m *ViewStateMachine) invoke(fn func()) {
	if fn != nil {
		fn()
	}
}

func (m *ViewStateMachine) invokePreset(preset string) {
	if m.callbacks.ApplyPreset != nil {
		m.callbacks.ApplyPreset(preset)
	}
}

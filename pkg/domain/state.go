package domain

import (
	"fmt"
	"math"
)

// StateSettings holds the descriptor-configurable fields of every State.
type StateSettings struct {
	Duration float64 `mapstructure:"duration" json:"duration" yaml:"duration"`
}

// Validate rejects negative or non-finite durations.
func (s *StateSettings) Validate() error {
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) || s.Duration < 0 {
		return fmt.Errorf("duration must be a finite value >= 0, got %v", s.Duration)
	}
	return nil
}

// Enterer is called when a State becomes current.
type Enterer interface {
	OnEnter(s *State)
}

// Updater is called on every tick while a State is current.
type Updater interface {
	OnUpdate(s *State, dt float64)
}

// FixedUpdater is called on every fixed-step tick while a State is current.
type FixedUpdater interface {
	OnFixedUpdate(s *State)
}

// Exiter is called when a State stops being current.
type Exiter interface {
	OnExit(s *State)
}

// StateHooks adapts plain functions to the state capability interfaces.
// Nil functions are skipped.
type StateHooks struct {
	Enter       func(s *State)
	Update      func(s *State, dt float64)
	FixedUpdate func(s *State)
	Exit        func(s *State)
}

func (h StateHooks) OnEnter(s *State) {
	if h.Enter != nil {
		h.Enter(s)
	}
}

func (h StateHooks) OnUpdate(s *State, dt float64) {
	if h.Update != nil {
		h.Update(s, dt)
	}
}

func (h StateHooks) OnFixedUpdate(s *State) {
	if h.FixedUpdate != nil {
		h.FixedUpdate(s)
	}
}

func (h StateHooks) OnExit(s *State) {
	if h.Exit != nil {
		h.Exit(s)
	}
}

// State is a timed node. It is done once its elapsed time reaches its duration.
type State struct {
	id       string
	settings StateSettings
	elapsed  float64
	paused   bool

	// behavior may implement any subset of Enterer, Updater, FixedUpdater and Exiter.
	behavior any
}

// NewState creates a State with a zero duration.
// behavior may be nil.
func NewState(id string, behavior any) *State {
	return &State{id: id, behavior: behavior}
}

func (s *State) ID() string     { return s.id }
func (s *State) Kind() NodeKind { return NodeState }
func (s *State) node()          {}

// Settings exposes the configurable fields to the loader.
func (s *State) Settings() any { return &s.settings }

// Behavior returns the user behaviour attached at construction.
func (s *State) Behavior() any { return s.behavior }

func (s *State) Duration() float64 { return s.settings.Duration }

// SetDuration changes the duration. Negative values are rejected.
func (s *State) SetDuration(d float64) error {
	next := StateSettings{Duration: d}
	if err := next.Validate(); err != nil {
		return err
	}
	s.settings = next
	return nil
}

func (s *State) Elapsed() float64 { return s.elapsed }
func (s *State) Paused() bool     { return s.paused }

// IsDone reports whether the timer reached the duration.
func (s *State) IsDone() bool {
	return s.elapsed >= s.settings.Duration
}

// Progress returns elapsed/duration clamped to [0,1], or 1 for zero-length states.
func (s *State) Progress() float64 {
	if s.settings.Duration <= 0 {
		return 1
	}
	p := s.elapsed / s.settings.Duration
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Enter resets the timer, clears the paused flag and runs the enter hook.
func (s *State) Enter() {
	s.elapsed = 0
	s.paused = false
	if h, ok := s.behavior.(Enterer); ok {
		h.OnEnter(s)
	}
}

// Tick advances the timer by dt unless paused, then runs the update hook.
// Non-positive deltas leave the timer unchanged.
func (s *State) Tick(dt float64) {
	if !s.paused && dt > 0 {
		s.elapsed += dt
	}
	if h, ok := s.behavior.(Updater); ok {
		h.OnUpdate(s, dt)
	}
}

// FixedTick runs the fixed-step hook.
func (s *State) FixedTick() {
	if h, ok := s.behavior.(FixedUpdater); ok {
		h.OnFixedUpdate(s)
	}
}

// Exit runs the exit hook.
func (s *State) Exit() {
	if h, ok := s.behavior.(Exiter); ok {
		h.OnExit(s)
	}
}

func (s *State) Pause()  { s.paused = true }
func (s *State) Resume() { s.paused = false }

// Restart rewinds the timer without running the enter hook.
func (s *State) Restart() { s.elapsed = 0 }

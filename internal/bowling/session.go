package bowling

import (
	"arbowling/internal/components"
	"arbowling/internal/engine"
	"arbowling/internal/world"
)

type Mode int

const (
	Placing Mode = iota
	Shooting
)

func (m Mode) String() string {
	switch m {
	case Placing:
		return "placing"
	case Shooting:
		return "shooting"
	}
	return "unknown"
}

// Session is the state of one placement/shooting cycle. A new Session is
// built on every scene load, so nothing it references survives a reset.
type Session struct {
	Mode         Mode
	SurfaceFound bool
	Reticle      *engine.GameObject

	// Lane and the light handles are bound when the lane is placed.
	Lane        *world.Lane
	Ambient     *components.Light
	Directional *components.Light

	Shots int

	// loaded is the hidden lane waiting to be placed
	loaded *world.Lane
}

// NewSession starts in Placing with the freshly loaded lane. lane may be
// nil when loading failed; placement is then impossible.
func NewSession(lane *world.Lane) *Session {
	return &Session{Mode: Placing, loaded: lane}
}

// CurrentLane is the placed lane, or the hidden one before placement.
func (s *Session) CurrentLane() *world.Lane {
	if s.Lane != nil {
		return s.Lane
	}
	return s.loaded
}

func (s *Session) place() *world.Lane {
	s.Lane = s.loaded
	s.Ambient = s.Lane.AmbientLight
	s.Directional = s.Lane.DirectionalLight
	s.Mode = Shooting
	return s.Lane
}

// discard drops every handle so a stale session can do nothing.
func (s *Session) discard() {
	s.Mode = Placing
	s.SurfaceFound = false
	s.Reticle = nil
	s.Lane = nil
	s.Ambient = nil
	s.Directional = nil
	s.loaded = nil
}

package bowling

import (
	"fmt"

	"arbowling/internal/engine"
	"arbowling/internal/physics"

	"github.com/rs/zerolog"
)

// Display shows the pin count.
type Display interface {
	SetText(text string)
}

// Scoring counts standing pins, removes hit ones and resets the game once
// the lane is cleared.
type Scoring struct {
	// PinsChanged fires with the remaining count on every refresh.
	PinsChanged engine.EventWithArg[int]
	// Cleared fires when a reset begins.
	Cleared engine.Event

	stage    Stage
	display  Display
	settings Settings
	reset    func()
	log      zerolog.Logger
}

func NewScoring(stage Stage, display Display, settings Settings, reset func(), log zerolog.Logger) *Scoring {
	return &Scoring{
		stage:    stage,
		display:  display,
		settings: settings,
		reset:    reset,
		log:      log.With().Str("component", "scoring").Logger(),
	}
}

// Remaining is the number of pins under the session's lane.
func (sc *Scoring) Remaining(s *Session) int {
	lane := s.CurrentLane()
	if lane == nil {
		return 0
	}
	return lane.RemainingPins()
}

// Refresh recounts the pins and updates the display. It changes nothing
// else, so calling it repeatedly is harmless.
func (sc *Scoring) Refresh(s *Session) int {
	count := sc.Remaining(s)
	total := 0
	if lane := s.CurrentLane(); lane != nil {
		total = lane.Total
	}
	if sc.display != nil {
		sc.display.SetText(fmt.Sprintf("%d out of %d", count, total))
	}
	sc.PinsChanged.Invoke(count)
	return count
}

// OnCollisionBegin removes the pin in a reported contact right away and
// the other participant after the removal delay. When the other one is a
// pin too, the count is settled again once it is gone.
func (sc *Scoring) OnCollisionBegin(s *Session, c physics.Contact) {
	if s.Mode != Shooting || s.Lane == nil {
		return
	}

	pin, other := c.A, c.B
	if !s.Lane.IsPin(pin) {
		pin, other = c.B, c.A
		if !s.Lane.IsPin(pin) {
			return
		}
	}

	sc.stage.Destroy(pin)
	if s.Lane.IsPin(other) {
		sc.stage.After(sc.settings.PinRemovalDelay, func() {
			sc.stage.Destroy(other)
			sc.settle(s)
		})
	} else {
		sc.stage.DestroyAfter(other, sc.settings.PinRemovalDelay)
	}

	remaining := sc.settle(s)
	sc.log.Info().Str("pin", pin.Name).Int("remaining", remaining).Msg("pin down")
}

// settle refreshes the count and resets once no pin is left. A session
// that was discarded in the meantime is ignored.
func (sc *Scoring) settle(s *Session) int {
	if s.Mode != Shooting || s.Lane == nil {
		return 0
	}
	remaining := sc.Refresh(s)
	if remaining == 0 && sc.reset != nil {
		sc.reset()
	}
	return remaining
}

package match

import (
	"time"

	"github.com/abhisek/knowduel/internal/duel"
)

// Options configures the duel screens.
type Options struct {
	// ComputerDelay paces each computer action so the player can follow it.
	ComputerDelay time.Duration

	// OnResult is called once when a game ends.
	OnResult func(winner duel.Side)
}

// DefaultComputerDelay is the pause before each computer action.
const DefaultComputerDelay = 900 * time.Millisecond

// computerStepMsg triggers the next computer action. Seq guards against
// stale ticks after the player has left or restarted the game.
type computerStepMsg struct {
	Seq int
}

package chargestats

import (
	"sync"

	"github.com/The-PhoenixOS/hardware-google-pixel/internal/errors"
	"github.com/The-PhoenixOS/hardware-google-pixel/internal/source"
)

// Sessions emitted within this window of the last accepted one are
// dropped. Connector flapping otherwise produces a report storm while
// still leaving some stats from the disconnect.
const reportWindowSecs = 15

// ThrottleGate is the rolling-window filter on session emission. One
// instance lives for the whole process.
type ThrottleGate struct {
	clock  source.Clock
	window int64

	mu            sync.Mutex
	lastEventSecs int64
}

func NewThrottleGate(clock source.Clock) *ThrottleGate {
	return &ThrottleGate{
		clock:  clock,
		window: reportWindowSecs,
	}
}

// ShouldReport decides whether a session may be emitted now. Accepting
// moves the window anchor to the current time; rejecting never does.
func (g *ThrottleGate) ShouldReport() (bool, error) {
	now := g.clock.BootTimeSeconds()
	if now == 0 {
		return false, errors.New().New(ErrTimeSourceUnreadable)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastEventSecs == 0 || g.lastEventSecs+g.window <= now {
		g.lastEventSecs = now
		return true, nil
	}

	return false, nil
}

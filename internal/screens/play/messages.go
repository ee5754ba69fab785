package play

import "time"

// settleTickMsg fires after a quiz answer has been shown long enough to read,
// and carries a generation counter so stale ticks from a previous card are
// dropped.
type settleTickMsg struct {
	gen int
}

// recordedMsg is sent when an answer has been persisted and the engine
// advanced.
type recordedMsg struct {
	Err error
}

// settleDelay is how long quiz feedback stays on screen before advancing.
const settleDelay = 900 * time.Millisecond

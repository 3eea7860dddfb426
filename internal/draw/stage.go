package draw

import "fmt"

// Stage is the draw-bias phase of a game.
type Stage int

const (
	// SafeInit keeps every row below WaitingHits for the first kThreshold draws.
	SafeInit Stage = iota
	// WaitingPush feeds players that are not waiting yet.
	WaitingPush
	// NaturalFinish draws without restriction.
	NaturalFinish
)

func (s Stage) String() string {
	switch s {
	case SafeInit:
		return "SAFE_INIT"
	case WaitingPush:
		return "WAITING_PUSH"
	case NaturalFinish:
		return "NATURAL_FINISH"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	switch s {
	case SafeInit, WaitingPush, NaturalFinish:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
}

// StageMachine owns the current stage. It only ever moves forward.
type StageMachine struct {
	stage Stage
	k     int
}

// NewStageMachine starts in SafeInit with the given threshold.
func NewStageMachine(kThreshold int) *StageMachine {
	return &StageMachine{stage: SafeInit, k: kThreshold}
}

// Stage returns the current stage.
func (m *StageMachine) Stage() Stage { return m.stage }

// KThreshold returns the length of the SafeInit phase.
func (m *StageMachine) KThreshold() int { return m.k }

// Advance applies the transition rule before a draw and reports whether the stage changed.
func (m *StageMachine) Advance(allWaiting bool, drawn int) bool {
	next := nextStage(m.stage, allWaiting, drawn, m.k)
	changed := next != m.stage
	m.stage = next
	return changed
}

func nextStage(cur Stage, allWaiting bool, drawn, k int) Stage {
	switch cur {
	case NaturalFinish:
		return NaturalFinish
	case SafeInit:
		if allWaiting {
			return NaturalFinish
		}
		if drawn >= k {
			return WaitingPush
		}
		return SafeInit
	case WaitingPush:
		if allWaiting {
			return NaturalFinish
		}
		return WaitingPush
	default:
		panic(fmt.Sprintf("draw: unknown stage %d", int(cur)))
	}
}

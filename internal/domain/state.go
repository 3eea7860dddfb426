package domain

// Phase represents the lifecycle stage of a Lo To room.
type Phase string

const (
	// PhaseLobby is the pre-game state where players join and pick tickets.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active state where numbers are being called.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after someone called Kinh or the pool ran out.
	PhaseEnded Phase = "ended"
)

const (
	// MinNumber and MaxNumber bound every number printed on a ticket.
	MinNumber = 1
	MaxNumber = 90

	// RowWidth is the number of cells in a printed row.
	RowWidth = 9
	// ActivePerRow is the number of non-blank cells in a row.
	ActivePerRow = 5
	// RowsPerTicket is the layout of a traditional printed ticket.
	RowsPerTicket = 3

	// WaitingHits is the hit count of a row that is one number away from Kinh ("Cho").
	WaitingHits = ActivePerRow - 1
)

// Tier classifies a row by how many of its numbers have been called.
type Tier int

const (
	TierNormal Tier = iota
	TierWaiting
	TierWon
)

// TierFor returns the tier of a row with the given hit count.
func TierFor(hits int) Tier {
	switch {
	case hits >= ActivePerRow:
		return TierWon
	case hits == WaitingHits:
		return TierWaiting
	default:
		return TierNormal
	}
}

func (t Tier) String() string {
	switch t {
	case TierWaiting:
		return "waiting"
	case TierWon:
		return "won"
	default:
		return "normal"
	}
}

// EndReason records why a game finished.
type EndReason string

const (
	// EndReasonKinh means at least one player completed a row and claimed it.
	EndReasonKinh EndReason = "kinh"
	// EndReasonExhausted means every number was called without a valid claim.
	EndReasonExhausted EndReason = "exhausted"
)

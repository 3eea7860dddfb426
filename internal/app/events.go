package app

import (
	"loto/internal/domain"
	"loto/internal/draw"
)

// EventKind identifies emitted game events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventTicketsDealt  EventKind = "tickets_dealt"
	EventNumberDrawn   EventKind = "number_drawn"
	EventStageChanged  EventKind = "stage_changed"
	EventPlayerWaiting EventKind = "player_waiting"
	EventWinClaimed    EventKind = "win_claimed"
	EventGameEnded     EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID  string
	Players []string
}

// TicketsDealtPayload is sent privately to the ticket holder.
type TicketsDealtPayload struct {
	UserID  string
	Tickets [][][]int
}

type NumberDrawnPayload struct {
	Number    int
	Sequence  int
	Remaining int
	Stage     draw.Stage
}

type StageChangedPayload struct {
	From draw.Stage
	To   draw.Stage
}

// PlayerWaitingPayload announces a player's first row one number away from Kinh.
type PlayerWaitingPayload struct {
	UserID string
}

type WinClaimedPayload struct {
	UserIDs []string
	Number  int
}

type GameEndedPayload struct {
	Reason  domain.EndReason
	Winners []string
	Drawn   []int
}

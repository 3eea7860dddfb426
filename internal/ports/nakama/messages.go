package nakama

import (
	"encoding/json"
	"fmt"

	"loto/internal/app"
)

// selectTicketsRequest is the OpSelectTickets payload.
type selectTicketsRequest struct {
	Count int `json:"count"`
}

type seatView struct {
	Seat        int    `json:"seat"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Tickets     int    `json:"tickets"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	Connected   bool   `json:"connected"`
}

type matchStateMessage struct {
	Phase     string     `json:"phase"`
	OwnerSeat int        `json:"owner_seat"`
	Tick      int64      `json:"tick"`
	Seats     []seatView `json:"seats"`
	Drawn     []int      `json:"drawn,omitempty"`
}

type gameStartedMessage struct {
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

type ticketsDealtMessage struct {
	Tickets [][][]int `json:"tickets"`
}

type numberDrawnMessage struct {
	Number    int    `json:"number"`
	Sequence  int    `json:"sequence"`
	Remaining int    `json:"remaining"`
	Stage     string `json:"stage"`
}

type stageChangedMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type playerWaitingMessage struct {
	UserID string `json:"user_id"`
}

type winClaimedMessage struct {
	UserIDs []string `json:"user_ids"`
	Number  int      `json:"number"`
}

type gameEndedMessage struct {
	Reason  string   `json:"reason"`
	Winners []string `json:"winners"`
	Drawn   []int    `json:"drawn"`
}

type gameErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// encodeEvent maps an app event to its op code and wire payload.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	var opCode int64
	var msg any

	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		opCode, msg = OpGameStarted, gameStartedMessage{GameID: p.GameID, Players: p.Players}
	case app.TicketsDealtPayload:
		opCode, msg = OpTicketsDealt, ticketsDealtMessage{Tickets: p.Tickets}
	case app.NumberDrawnPayload:
		opCode, msg = OpNumberDrawn, numberDrawnMessage{
			Number:    p.Number,
			Sequence:  p.Sequence,
			Remaining: p.Remaining,
			Stage:     p.Stage.String(),
		}
	case app.StageChangedPayload:
		opCode, msg = OpStageChanged, stageChangedMessage{From: p.From.String(), To: p.To.String()}
	case app.PlayerWaitingPayload:
		opCode, msg = OpPlayerWaiting, playerWaitingMessage{UserID: p.UserID}
	case app.WinClaimedPayload:
		opCode, msg = OpWinClaimed, winClaimedMessage{UserIDs: p.UserIDs, Number: p.Number}
	case app.GameEndedPayload:
		winners := p.Winners
		if winners == nil {
			winners = []string{}
		}
		opCode, msg = OpGameEnded, gameEndedMessage{Reason: string(p.Reason), Winners: winners, Drawn: p.Drawn}
	default:
		return 0, nil, fmt.Errorf("unknown event %s with payload %T", ev.Kind, ev.Payload)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal %s: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

// matchSignal is the payload other runtime code passes to nk.MatchSignal.
type matchSignal struct {
	Op     string `json:"op"`
	UserID string `json:"user_id,omitempty"`
}

const (
	signalSeated = "seated"

	signalYes = "true"
	signalNo  = "false"
)

package app

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"loto/internal/domain"
	"loto/internal/draw"
	"loto/internal/ports"
	"loto/internal/rng"
)

var (
	ErrNotOwner      = errors.New("actor is not match owner")
	ErrNotInLobby    = errors.New("match not in lobby")
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrMatchNotEnded = errors.New("match not ended")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrUnknownPlayer = errors.New("player not found")
	ErrFalseClaim    = errors.New("no completed row to claim")
	ErrTicketCount   = errors.New("ticket count out of range")
)

// Seat is a participant at game start.
type Seat struct {
	UserID  string
	Tickets int
}

// Game is the state of one Lo To game inside a match.
type Game struct {
	ID         string
	Phase      domain.Phase
	Players    []domain.Player
	Controller *draw.Controller
	StartedAt  time.Time
	EndedAt    time.Time
	Stages     []ports.StageMark
	Winners    []string
	Reason     domain.EndReason

	seatOf   map[string]int
	waiting  map[string]bool
	lastSeen draw.Stage
}

// PlayerIndex returns the position of userID in Players.
func (g *Game) PlayerIndex(userID string) (int, bool) {
	i, ok := g.seatOf[userID]
	return i, ok
}

// Rejection is a claim that did not win.
type Rejection struct {
	UserID string
	Err    error
}

// Service contains Lo To use-cases operating on game state.
type Service struct {
	rng        *rand.Rand
	drawSrc    rng.Source
	minPlayers int
	maxTickets int
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithDrawSource overrides the randomness used for drawing numbers. Dealing always uses the
// service rng.
func WithDrawSource(src rng.Source) Option {
	return func(s *Service) { s.drawSrc = src }
}

// WithMinPlayers sets how many seated players a game needs.
func WithMinPlayers(n int) Option {
	return func(s *Service) { s.minPlayers = n }
}

// WithMaxTickets caps the tickets a seat may hold.
func WithMaxTickets(n int) Option {
	return func(s *Service) { s.maxTickets = min(n, domain.MaxTicketsPerPlayer) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(r *rand.Rand, opts ...Option) *Service {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Service{
		rng:        r,
		minPlayers: MinPlayersToStartGame,
		maxTickets: domain.MaxTicketsPerPlayer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.drawSrc == nil {
		s.drawSrc = s.rng
	}
	return s
}

// MaxTickets returns the per-seat ticket cap.
func (s *Service) MaxTickets() int { return s.maxTickets }

// StartGame deals tickets to the seated players and prepares the draw.
// Empty user IDs are skipped; a ticket count of zero means DefaultTicketsPerPlayer.
func (s *Service) StartGame(seats []Seat) (*Game, []Event, error) {
	var active []Seat
	for _, seat := range seats {
		if seat.UserID == "" {
			continue
		}
		if seat.Tickets == 0 {
			seat.Tickets = DefaultTicketsPerPlayer
		}
		if seat.Tickets < 1 || seat.Tickets > s.maxTickets {
			return nil, nil, fmt.Errorf("%w: %s asked for %d", ErrTicketCount, seat.UserID, seat.Tickets)
		}
		active = append(active, seat)
	}
	if len(active) < s.minPlayers {
		return nil, nil, ErrTooFewPlayers
	}

	game := &Game{
		ID:      uuid.NewString(),
		Phase:   domain.PhasePlaying,
		seatOf:  make(map[string]int, len(active)),
		waiting: make(map[string]bool, len(active)),
	}
	events := make([]Event, 0, len(active)+1)

	ids := make([]string, 0, len(active))
	for _, seat := range active {
		if _, dup := game.seatOf[seat.UserID]; dup {
			return nil, nil, fmt.Errorf("user %s seated twice", seat.UserID)
		}
		tickets, err := domain.DealTickets(s.rng, seat.Tickets)
		if err != nil {
			return nil, nil, fmt.Errorf("deal tickets for %s: %w", seat.UserID, err)
		}
		player, err := domain.NewPlayer(seat.UserID, tickets...)
		if err != nil {
			return nil, nil, err
		}
		game.seatOf[seat.UserID] = len(game.Players)
		game.Players = append(game.Players, player)
		ids = append(ids, seat.UserID)

		grids := make([][][]int, len(tickets))
		for i, t := range tickets {
			grids[i] = t.Grid()
		}
		events = append(events, Event{
			Kind:       EventTicketsDealt,
			Payload:    TicketsDealtPayload{UserID: seat.UserID, Tickets: grids},
			Recipients: []string{seat.UserID},
		})
	}

	ctrl, err := draw.NewController(game.Players, draw.WithSource(s.drawSrc))
	if err != nil {
		return nil, nil, err
	}
	game.Controller = ctrl
	game.StartedAt = s.now()
	game.lastSeen = ctrl.Stage()

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{GameID: game.ID, Players: ids},
	})
	return game, events, nil
}

// Draw calls the next number. Once the pool is exhausted the following Draw ends the game.
func (s *Service) Draw(game *Game) ([]Event, error) {
	if game == nil || game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}

	res, ok := game.Controller.DrawNext()
	if !ok {
		return []Event{s.end(game, domain.EndReasonExhausted, nil)}, nil
	}

	var events []Event
	if len(game.Stages) == 0 || res.Stage != game.lastSeen {
		game.Stages = append(game.Stages, ports.StageMark{Stage: res.Stage.String(), Sequence: res.Sequence})
	}
	if res.Stage != game.lastSeen {
		events = append(events, Event{
			Kind:    EventStageChanged,
			Payload: StageChangedPayload{From: game.lastSeen, To: res.Stage},
		})
		game.lastSeen = res.Stage
	}

	events = append(events, Event{
		Kind: EventNumberDrawn,
		Payload: NumberDrawnPayload{
			Number:    res.Number,
			Sequence:  res.Sequence,
			Remaining: game.Controller.Remaining(),
			Stage:     res.Stage,
		},
	})

	for i, p := range game.Players {
		if game.waiting[p.ID()] || !game.Controller.Status(i).Waiting() {
			continue
		}
		game.waiting[p.ID()] = true
		events = append(events, Event{
			Kind:    EventPlayerWaiting,
			Payload: PlayerWaitingPayload{UserID: p.ID()},
		})
	}
	return events, nil
}

// ResolveClaims checks the Kinh calls that arrived together. Every valid claimer shares the win.
func (s *Service) ResolveClaims(game *Game, userIDs []string) ([]Event, []Rejection) {
	var winners []string
	var rejected []Rejection
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if game == nil || game.Phase != domain.PhasePlaying {
			rejected = append(rejected, Rejection{UserID: id, Err: ErrNotPlaying})
			continue
		}
		i, ok := game.seatOf[id]
		if !ok {
			rejected = append(rejected, Rejection{UserID: id, Err: ErrUnknownPlayer})
			continue
		}
		if !game.Controller.Status(i).Won() {
			rejected = append(rejected, Rejection{UserID: id, Err: ErrFalseClaim})
			continue
		}
		winners = append(winners, id)
	}
	if len(winners) == 0 {
		return nil, rejected
	}

	last := 0
	if drawn := game.Controller.Drawn(); len(drawn) > 0 {
		last = drawn[len(drawn)-1]
	}
	events := []Event{
		{Kind: EventWinClaimed, Payload: WinClaimedPayload{UserIDs: winners, Number: last}},
		s.end(game, domain.EndReasonKinh, winners),
	}
	return events, rejected
}

func (s *Service) end(game *Game, reason domain.EndReason, winners []string) Event {
	game.Phase = domain.PhaseEnded
	game.Reason = reason
	game.Winners = slices.Clone(winners)
	game.EndedAt = s.now()
	return Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			Reason:  reason,
			Winners: slices.Clone(winners),
			Drawn:   game.Controller.Drawn(),
		},
	}
}

// Result builds the persisted record of an ended game.
func (s *Service) Result(game *Game, matchID string) (ports.GameResult, error) {
	if game == nil || game.Phase != domain.PhaseEnded {
		return ports.GameResult{}, ErrMatchNotEnded
	}
	players := make([]string, len(game.Players))
	for i, p := range game.Players {
		players[i] = p.ID()
	}
	return ports.GameResult{
		GameID:     game.ID,
		MatchID:    matchID,
		StartedAt:  game.StartedAt,
		EndedAt:    game.EndedAt,
		Players:    players,
		Drawn:      game.Controller.Drawn(),
		Stages:     slices.Clone(game.Stages),
		KThreshold: game.Controller.KThreshold(),
		Winners:    slices.Clone(game.Winners),
		Reason:     string(game.Reason),
	}, nil
}

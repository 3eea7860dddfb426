package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"loto/internal/app"
	"loto/internal/bot"
	"loto/internal/config"
	"loto/internal/domain"
	"loto/internal/ports"
	"loto/internal/rng"

	"github.com/heroiclabs/nakama-common/runtime"
	"golang.org/x/time/rate"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                []string                    `json:"seats"`                   // User IDs by seat, empty string means seat is empty
	Tickets              map[string]int              `json:"tickets"`                 // Ticket count chosen in the lobby per user
	OwnerSeat            int                         `json:"owner_seat"`              // Seat index of the match owner
	Tick                 int64                       `json:"tick"`                    // Current tick of the match
	Presences            map[string]runtime.Presence `json:"-"`                       // Map UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`                       // Lo To app service
	Game                 *app.Game                   `json:"-"`                       // Current game (nil if in lobby)
	Config               config.GameConfig           `json:"-"`
	BotsEnabled          bool                        `json:"bots_enabled"`            // Whether bots may fill the room
	BotMinDelay          int                         `json:"bot_min_delay"`           // Min ticks before a bot calls Kinh
	BotMaxDelay          int                         `json:"bot_max_delay"`           // Max ticks before a bot calls Kinh
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`     // Ticks to wait before filling a solo lobby
	DrawInterval         int                         `json:"draw_interval"`           // Ticks between two called numbers
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when a single player started waiting
	NextDrawTick         int64                       `json:"next_draw_tick"`
	Bots                 map[string]*bot.Agent       `json:"-"`
	BotRand              rng.Source                  `json:"-"`
	Limiters             map[string]*rate.Limiter    `json:"-"` // Kinh call limiters per user
	Results              ports.ResultStore           `json:"-"`
	MatchID              string                      `json:"match_id"`

	claims []string
}

// SeatOf returns the seat index of userID or -1.
func (ms *MatchState) SeatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat != "" && seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// GetJoinableSeatsCount counts seats a new human could take: empty seats, plus bot seats while in
// the lobby.
func (ms *MatchState) GetJoinableSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" || (ms.Game == nil && isBotUserId(seat)) {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) phase() domain.Phase {
	if ms.Game == nil {
		return domain.PhaseLobby
	}
	return ms.Game.Phase
}

func (ms *MatchState) limiter(userID string) *rate.Limiter {
	l, ok := ms.Limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Limit(ms.Config.ClaimsPerSecond), ms.Config.ClaimBurst)
		ms.Limiters[userID] = l
	}
	return l
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// errorCode maps app errors to the codes carried by OpGameError.
func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotOwner):
		return ErrCodeForbidden
	case errors.Is(err, app.ErrNotInLobby), errors.Is(err, app.ErrNotPlaying):
		return ErrCodeConflict
	default:
		return ErrCodeBadRequest
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return newMatchHandler(), nil
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// envInt overwrites dst with env[key] when it parses as a positive integer.
func envInt(env map[string]string, key string, dst *int) {
	val, ok := env[key]
	if !ok {
		return
	}
	if i, err := strconv.Atoi(val); err == nil && i > 0 {
		*dst = i
	}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	cfg := config.GetGameConfig()
	state := &MatchState{
		Seats:     make([]string, cfg.MaxPlayers),
		Tickets:   make(map[string]int),
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App: app.NewService(nil,
			app.WithDrawSource(rng.New(cfg.RandomSource)),
			app.WithMinPlayers(cfg.MinPlayersToStart),
			app.WithMaxTickets(cfg.MaxTickets),
		),
		Config:           cfg,
		BotMinDelay:      cfg.BotMinReactionSeconds,
		BotMaxDelay:      cfg.BotMaxReactionSeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		DrawInterval:     cfg.DrawIntervalSeconds,
		Bots:             make(map[string]*bot.Agent),
		BotRand:          rng.NewTimeSeeded(),
		Limiters:         make(map[string]*rate.Limiter),
	}
	if nk != nil {
		state.Results = NewResultStoreAdapter(nk)
	}
	if id, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok {
		state.MatchID = id
	}

	// Runtime env overrides
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env[envBotsEnabled]; ok {
			state.BotsEnabled = val == "true"
		}
		envInt(env, envBotMinDelay, &state.BotMinDelay)
		envInt(env, envBotMaxDelay, &state.BotMaxDelay)
		envInt(env, envBotAutoFillDelay, &state.BotAutoFillDelay)
		envInt(env, envDrawInterval, &state.DrawInterval)
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}

	label, err := encodeLabel(state.GetJoinableSeatsCount(), domain.PhaseLobby)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second, draw cadence is counted in ticks
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.SeatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Game != nil {
		return state, false, "Match in progress"
	}
	if matchState.GetJoinableSeatsCount() <= 0 {
		return state, false, "Match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if seat := matchState.SeatOf(userID); seat >= 0 {
			logger.Debug("MatchJoin: User %s rejoined seat %d.", userID, seat)
			if matchState.Game != nil {
				mh.resendTickets(matchState, dispatcher, logger, userID)
			}
			continue
		}

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = userID
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, userID, i)
					delete(matchState.Bots, seatUserId)
					delete(matchState.Tickets, seatUserId)
					matchState.Seats[i] = userID
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats, matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats)
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match. Seats of players in a running
// game are kept so they can reconnect.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		delete(matchState.Limiters, userID)

		if matchState.Game != nil {
			continue
		}
		if seat := matchState.SeatOf(userID); seat >= 0 {
			matchState.Seats[seat] = ""
			delete(matchState.Tickets, userID)
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		}
	}

	if newOwnerSeat := findFirstHumanSeat(matchState.Seats); newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick
	matchState.claims = matchState.claims[:0]

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpSelectTickets:
			mh.handleSelectTickets(matchState, dispatcher, logger, msg)
		case OpCallKinh:
			mh.handleCallKinh(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	if matchState.Game == nil {
		return matchState
	}

	if len(matchState.claims) > 0 {
		events, rejected := matchState.App.ResolveClaims(matchState.Game, matchState.claims)
		for _, r := range rejected {
			logger.Info("MatchLoop: Rejected Kinh from %s: %v", r.UserID, r.Err)
			mh.sendError(matchState, dispatcher, logger, r.UserID, errorCode(r.Err), r.Err.Error())
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	if matchState.Game.Phase == domain.PhasePlaying && matchState.Tick >= matchState.NextDrawTick {
		events, err := matchState.App.Draw(matchState.Game)
		if err != nil {
			logger.Error("MatchLoop: Draw failed: %v", err)
		} else {
			mh.broadcastEvents(matchState, dispatcher, logger, events)
		}
		matchState.NextDrawTick = matchState.Tick + int64(matchState.DrawInterval)
	}

	if matchState.Game.Phase == domain.PhaseEnded {
		mh.finishGame(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Game == nil {
		if state.GetHumanPlayerCount() != 1 {
			state.LastSinglePlayerTick = 0
			return
		}
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		}
		if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
			return
		}

		added := false
		for i, seat := range state.Seats {
			if seat != "" {
				continue
			}
			identity := bot.GetIdentity(i)
			if identity.UserID == "" || state.SeatOf(identity.UserID) >= 0 {
				continue
			}
			agent := bot.NewAgent(identity, state.BotMinDelay, state.BotMaxDelay, state.BotRand)
			state.Seats[i] = agent.ID
			state.Bots[agent.ID] = agent
			state.Tickets[agent.ID] = min(agent.Tickets, state.App.MaxTickets())
			logger.Info("processBots: Added bot %s (%s) to seat %d", agent.Name, agent.ID, i)
			added = true
		}
		if added {
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastMatchState(state, dispatcher, logger)
		}
		state.LastSinglePlayerTick = 0
		return
	}

	// 2. Bots call Kinh once their reaction delay has passed
	if state.Game.Phase != domain.PhasePlaying {
		return
	}
	for userID, agent := range state.Bots {
		i, ok := state.Game.PlayerIndex(userID)
		if !ok {
			continue
		}
		if agent.Observe(state.Tick, state.Game.Controller.Status(i).Won()) {
			logger.Debug("processBots: Bot %s calls Kinh at tick %d", userID, state.Tick)
			state.claims = append(state.claims, userID)
		}
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.SeatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, app.ErrNotInLobby.Error())
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeForbidden, app.ErrNotOwner.Error())
		return
	}

	seats := make([]app.Seat, len(state.Seats))
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		count := state.Tickets[userID]
		if count == 0 {
			count = state.Config.DefaultTickets
		}
		seats[i] = app.Seat{UserID: userID, Tickets: count}
	}

	game, events, err := state.App.StartGame(seats)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	state.Game = game
	state.NextDrawTick = state.Tick + int64(state.DrawInterval)
	for _, agent := range state.Bots {
		agent.Reset()
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)

	logger.Info("StartGame: Game %s started with %d players.", game.ID, len(game.Players))
}

func (mh *matchHandler) handleSelectTickets(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, app.ErrNotInLobby.Error())
		return
	}
	if state.SeatOf(senderID) < 0 {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeForbidden, app.ErrUnknownPlayer.Error())
		return
	}

	var request selectTicketsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleSelectTickets: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "invalid payload")
		return
	}
	if request.Count < 1 || request.Count > state.App.MaxTickets() {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, app.ErrTicketCount.Error())
		return
	}

	state.Tickets[senderID] = request.Count
	mh.broadcastMatchState(state, dispatcher, logger)
}

func (mh *matchHandler) handleCallKinh(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeConflict, app.ErrNotPlaying.Error())
		return
	}
	if !state.limiter(senderID).AllowN(time.Unix(state.Tick, 0), 1) {
		logger.Warn("handleCallKinh: User %s is calling too fast.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeRateLimited, "too many claims")
		return
	}
	state.claims = append(state.claims, senderID)
}

// finishGame persists the ended game and returns the room to the lobby.
func (mh *matchHandler) finishGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	result, err := state.App.Result(state.Game, state.MatchID)
	if err != nil {
		logger.Error("finishGame: Failed to build result: %v", err)
	} else if state.Results != nil {
		if err := state.Results.SaveResult(ctx, result); err != nil {
			logger.Error("finishGame: Failed to save result of game %s: %v", result.GameID, err)
		}
	}
	logger.Info("finishGame: Game %s ended (%s) after %d numbers, winners %v", state.Game.ID, state.Game.Reason, len(result.Drawn), state.Game.Winners)

	state.Game = nil
	state.NextDrawTick = 0

	// Seats of players who disconnected during the game are released now.
	for i, userID := range state.Seats {
		if userID == "" || isBotUserId(userID) {
			continue
		}
		if _, present := state.Presences[userID]; !present {
			state.Seats[i] = ""
			delete(state.Tickets, userID)
		}
	}
	for _, agent := range state.Bots {
		agent.Reset()
	}
	if !isHumanSeat(state.Seats, state.OwnerSeat) {
		state.OwnerSeat = findFirstHumanSeat(state.Seats)
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastMatchState(state, dispatcher, logger)
}

func (mh *matchHandler) resendTickets(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	i, ok := state.Game.PlayerIndex(userID)
	if !ok {
		return
	}
	tickets := state.Game.Players[i].Tickets()
	grids := make([][][]int, len(tickets))
	for j, t := range tickets {
		grids[j] = t.Grid()
	}
	mh.broadcastEvent(state, dispatcher, logger, app.Event{
		Kind:       app.EventTicketsDealt,
		Payload:    app.TicketsDealtPayload{UserID: userID, Tickets: grids},
		Recipients: []string{userID},
	})
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snapshot := matchStateMessage{
		Phase:     string(state.phase()),
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Seats:     make([]seatView, 0, len(state.Seats)),
	}
	if state.Game != nil {
		snapshot.Drawn = state.Game.Controller.Drawn()
	}

	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		isBot := isBotUserId(userId)
		displayName := userId
		p, connected := state.Presences[userId]
		if connected {
			displayName = p.GetUsername()
		} else if name := bot.DisplayName(userId); name != "" {
			displayName = name
		}

		tickets := state.Tickets[userId]
		if tickets == 0 {
			tickets = state.Config.DefaultTickets
		}
		if state.Game != nil {
			if j, ok := state.Game.PlayerIndex(userId); ok {
				tickets = len(state.Game.Players[j].Tickets())
			}
		}

		snapshot.Seats = append(snapshot.Seats, seatView{
			Seat:        i,
			UserID:      userId,
			DisplayName: displayName,
			Tickets:     tickets,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBot,
			Connected:   connected || isBot,
		})
	}

	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, bytes, nil, nil, true); err != nil {
		logger.Error("broadcastMatchState: Failed to broadcast: %v", err)
	}
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, bytes, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to encode event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// Private events for bots or disconnected users must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Debug("Cannot send error to %s: Presence not found", userID)
		return
	}

	bytes, err := json.Marshal(gameErrorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal game error: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.GetJoinableSeatsCount(), state.phase())
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	if matchState, ok := state.(*MatchState); ok && matchState.Game != nil {
		logger.Info("MatchTerminate: Dropping unfinished game %s after %d numbers.", matchState.Game.ID, len(matchState.Game.Controller.Drawn()))
	}
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

// MatchSignal answers queries from RPCs running outside the match loop.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	var sig matchSignal
	if err := json.Unmarshal([]byte(data), &sig); err != nil {
		logger.Warn("MatchSignal: Ignoring malformed signal: %v", err)
		return state, ""
	}
	switch sig.Op {
	case signalSeated:
		if sig.UserID != "" && matchState.SeatOf(sig.UserID) >= 0 {
			return state, signalYes
		}
		return state, signalNo
	default:
		logger.Warn("MatchSignal: Unknown signal op %q", sig.Op)
		return state, ""
	}
}

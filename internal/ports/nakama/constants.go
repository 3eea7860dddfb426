package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable room.
	RpcQuickMatch = "quick_match"
	// RpcHistory lists finished games.
	RpcHistory = "loto_history"
	// RpcVoiceToken issues caller voice channel tokens.
	RpcVoiceToken = "voice_token"

	// MatchNameLoto is the authoritative match handler name registered with Nakama.
	MatchNameLoto = "loto_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame     int64 = 1
	OpSelectTickets int64 = 2
	OpCallKinh      int64 = 3

	// Server -> Client events
	OpMatchState    int64 = 101
	OpGameStarted   int64 = 102
	OpTicketsDealt  int64 = 103 // send privately
	OpNumberDrawn   int64 = 104
	OpStageChanged  int64 = 105
	OpPlayerWaiting int64 = 106
	OpWinClaimed    int64 = 107
	OpGameEnded     int64 = 108
	OpGameError     int64 = 109 // send privately
)

// Error codes carried by OpGameError.
const (
	ErrCodeBadRequest  = 400
	ErrCodeForbidden   = 403
	ErrCodeConflict    = 409
	ErrCodeRateLimited = 429
)

// gRPC status codes returned from RPCs.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codePermissionDenied   = 7
	codeFailedPrecondition = 9
	codeInternal           = 13
	codeUnauthenticated    = 16
)

// Runtime env keys read by the module.
const (
	envBotsEnabled      = "loto_bots_enabled"
	envBotMinDelay      = "loto_bot_min_delay_sec"
	envBotMaxDelay      = "loto_bot_max_delay_sec"
	envBotAutoFillDelay = "loto_bot_auto_fill_delay_sec"
	envDrawInterval     = "loto_draw_interval_sec"
	envVoiceSecret      = "vivox_secret"
	envVoiceIssuer      = "vivox_issuer"
	envVoiceDomain      = "vivox_domain"
)

const (
	resultsCollection = "loto_results"
	gameConfigPath    = "data/loto_config.json"
	botIdentitiesPath = "data/bot_identities.json"
)

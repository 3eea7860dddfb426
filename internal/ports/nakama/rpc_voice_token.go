package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"loto/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService overrides the env-configured service; tests set it.
var voiceService *app.VoiceService

type voiceTokenRequest struct {
	Action  string `json:"action"`
	MatchID string `json:"match_id"`
}

type voiceTokenResponse struct {
	Token   string `json:"token"`
	Channel string `json:"channel,omitempty"`
}

func voiceServiceFor(ctx context.Context) *app.VoiceService {
	if voiceService != nil {
		return voiceService
	}
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	return app.NewVoiceService(env[envVoiceSecret], env[envVoiceIssuer], env[envVoiceDomain])
}

// RpcGetVoiceToken signs a voice token for the caller. A join token targets the room channel the
// caller of the numbers speaks on and is only issued to players seated in that room.
//
// Payload: {"action": "login" | "join", "match_id": "..."}
func RpcGetVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", codeUnauthenticated)
	}

	req := voiceTokenRequest{Action: app.VoiceTokenActionLogin}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}

	var grant app.VoiceGrant
	var err error
	switch req.Action {
	case app.VoiceTokenActionLogin:
		grant, err = voiceServiceFor(ctx).Login(userID)
	case app.VoiceTokenActionJoin:
		if req.MatchID == "" {
			return "", runtime.NewError("match_id is required for join", codeInvalidArgument)
		}
		seated, serr := isSeated(ctx, nk, req.MatchID, userID)
		if serr != nil {
			logger.Warn("RpcGetVoiceToken [User:%s]: Seat check for match %s failed: %v", userID, req.MatchID, serr)
			return "", runtime.NewError("match not found", codeNotFound)
		}
		if !seated {
			return "", runtime.NewError("not seated in this match", codePermissionDenied)
		}
		grant, err = voiceServiceFor(ctx).JoinRoom(userID, req.MatchID)
	default:
		return "", runtime.NewError("unsupported action", codeInvalidArgument)
	}
	if errors.Is(err, app.ErrVoiceUnconfigured) {
		logger.Error("RpcGetVoiceToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("voice chat is not configured", codeFailedPrecondition)
	}
	if err != nil {
		logger.Error("RpcGetVoiceToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("failed to generate token", codeInternal)
	}
	resp := voiceTokenResponse{Token: grant.Token, Channel: grant.Channel}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(b), nil
}

// isSeated asks the match whether userID holds one of its seats.
func isSeated(ctx context.Context, nk runtime.NakamaModule, matchID, userID string) (bool, error) {
	if nk == nil {
		return false, errors.New("nakama module unavailable")
	}
	data, err := json.Marshal(matchSignal{Op: signalSeated, UserID: userID})
	if err != nil {
		return false, err
	}
	answer, err := nk.MatchSignal(ctx, matchID, string(data))
	if err != nil {
		return false, err
	}
	switch answer {
	case signalYes:
		return true, nil
	case signalNo:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected seat answer %q", answer)
	}
}

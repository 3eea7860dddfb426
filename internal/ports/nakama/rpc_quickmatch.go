package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"loto/internal/config"
	"loto/internal/domain"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := config.GetGameConfig().MaxPlayers - 1 // leave a seat for the caller

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", runtime.NewError("failed to list matches", codeInternal)
	}

	resp := QuickMatchResponse{MatchID: pickLobby(matches)}
	if resp.MatchID != "" {
		logger.Info("rpcQuickMatch [User:%s]: Found existing match %s", userID, resp.MatchID)
	} else {
		// Seat/owner assignment happens in MatchJoin (server-authoritative).
		resp.MatchID, err = nk.MatchCreate(ctx, MatchNameLoto, map[string]interface{}{})
		if err != nil {
			logger.Error("rpcQuickMatch [User:%s]: Failed to create match: %v", userID, err)
			return "", runtime.NewError("failed to create match", codeInternal)
		}
		resp.IsNew = true
		logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, resp.MatchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(b), nil
}

// pickLobby returns the first listed match whose label still shows an open lobby. Labels are
// indexed asynchronously, so the listing can lag behind a room that just started.
func pickLobby(matches []*api.Match) string {
	for _, m := range matches {
		open, phase, err := decodeLabel(m.GetLabel().GetValue())
		if err != nil || phase != domain.PhaseLobby || open < 1 {
			continue
		}
		return m.GetMatchId()
	}
	return ""
}

package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"loto/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const defaultHistoryLimit = 20

type historyRequest struct {
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor"`
}

type historyResponse struct {
	Results []ports.GameResult `json:"results"`
	Cursor  string             `json:"cursor,omitempty"`
}

// RpcListHistory pages through finished games, newest first.
//
// Payload: {"limit": n, "cursor": "..."}, both optional.
func RpcListHistory(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	req := historyRequest{Limit: defaultHistoryLimit}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("invalid payload", codeInvalidArgument)
		}
	}
	if req.Limit < 0 || req.Limit > maxHistoryPage {
		return "", runtime.NewError("limit out of range", codeInvalidArgument)
	}
	if req.Limit == 0 {
		req.Limit = defaultHistoryLimit
	}

	results, cursor, err := NewResultStoreAdapter(nk).ListResults(ctx, req.Limit, req.Cursor)
	if err != nil {
		logger.Error("RpcListHistory: %v", err)
		return "", runtime.NewError("failed to list history", codeInternal)
	}

	b, err := json.Marshal(historyResponse{Results: results, Cursor: cursor})
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(b), nil
}

package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/heroiclabs/nakama-common/runtime"

	"loto/internal/ports"
)

const maxHistoryPage = 100

// ResultStoreAdapter implements ports.ResultStore on Nakama storage. Results are system-owned
// and publicly readable.
type ResultStoreAdapter struct {
	nk runtime.NakamaModule
}

// NewResultStoreAdapter creates a new result store adapter.
func NewResultStoreAdapter(nk runtime.NakamaModule) *ResultStoreAdapter {
	return &ResultStoreAdapter{nk: nk}
}

// resultKey sorts newest results first under Nakama's ascending key order.
func resultKey(r ports.GameResult) string {
	return fmt.Sprintf("%019d_%s", math.MaxInt64-r.EndedAt.UnixNano(), r.GameID)
}

// SaveResult writes the result once; a second write of the same game is rejected.
func (a *ResultStoreAdapter) SaveResult(ctx context.Context, result ports.GameResult) error {
	if result.GameID == "" {
		return fmt.Errorf("game id is required")
	}
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      resultsCollection,
			Key:             resultKey(result),
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return fmt.Errorf("result for game %s already stored: %w", result.GameID, err)
		}
		return fmt.Errorf("failed to store game result: %w", err)
	}
	return nil
}

// ListResults pages through stored results, newest first.
func (a *ResultStoreAdapter) ListResults(ctx context.Context, limit int, cursor string) ([]ports.GameResult, string, error) {
	if limit <= 0 || limit > maxHistoryPage {
		limit = maxHistoryPage
	}
	objects, next, err := a.nk.StorageList(ctx, "", "", resultsCollection, limit, cursor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list game results: %w", err)
	}

	results := make([]ports.GameResult, 0, len(objects))
	for _, obj := range objects {
		var r ports.GameResult
		if err := json.Unmarshal([]byte(obj.GetValue()), &r); err != nil {
			return nil, "", fmt.Errorf("failed to decode result %s: %w", obj.GetKey(), err)
		}
		results = append(results, r)
	}
	return results, next, nil
}

var _ ports.ResultStore = (*ResultStoreAdapter)(nil)

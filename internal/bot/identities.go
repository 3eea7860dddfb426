package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Identity is the account profile a bot plays under.
type Identity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarIndex int    `json:"avatar_index"`
	// Tickets is how many tickets the bot buys each game; zero means one.
	Tickets int `json:"tickets"`
}

var (
	identities    []Identity
	byUserID      map[string]Identity
	mu            sync.RWMutex
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var list []Identity
		if err := json.Unmarshal(data, &list); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		identities = list
		byUserID = make(map[string]Identity, len(list))
		for _, identity := range list {
			if identity.UserID != "" {
				byUserID[identity.UserID] = identity
			}
		}
	})
	return loadErr
}

// ProvisionBots makes sure every bot with a device id has a Nakama account tagged is_bot.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		for i := range identities {
			identity := &identities[i]
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			byUserID[userID] = *identity
			logger.Info("ProvisionBots: Bot %s (%s) is ready.", identity.DisplayName, userID)
		}
	})
}

// GetIdentity returns an identity by index (mod pool size). With no pool loaded a synthetic
// identity is returned and registered so IsBot recognizes it.
func GetIdentity(index int) Identity {
	mu.Lock()
	defer mu.Unlock()
	if len(identities) == 0 {
		id := Identity{
			UserID:      fmt.Sprintf("bot-%d", index),
			Username:    fmt.Sprintf("bot%d", index),
			DisplayName: fmt.Sprintf("May %d", index+1),
		}
		if byUserID == nil {
			byUserID = make(map[string]Identity)
		}
		byUserID[id.UserID] = id
		return id
	}
	return identities[index%len(identities)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := byUserID[userID]
	return ok
}

// DisplayName returns the display name for a bot ID, or an empty string if not a bot.
func DisplayName(userID string) string {
	mu.RLock()
	defer mu.RUnlock()
	identity, ok := byUserID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// Lookup returns the identity for a bot ID.
func Lookup(userID string) (Identity, bool) {
	mu.RLock()
	defer mu.RUnlock()
	identity, ok := byUserID[userID]
	return identity, ok
}

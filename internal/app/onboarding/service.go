package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"loto/internal/ports"
)

var (
	flowers = []string{"Sen", "Mai", "Dao", "Lan", "Cuc", "Truc", "Hong", "Que", "Sao", "Tung"}
	colors  = []string{"Vang", "Xanh", "Do", "Tim", "Bac", "Hong", "Lam", "Nau"}
)

// Service handles post-auth onboarding for new players.
type Service struct {
	accounts ports.AccountPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service.
// accounts must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{accounts: accounts, rng: rng}
}

// OnboardNewUser gives a newly created account a friendly table name and returns it.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (string, error) {
	if s.accounts == nil {
		return "", fmt.Errorf("onboarding service not configured")
	}
	if userID == "" {
		return "", fmt.Errorf("userID is required")
	}

	name := s.friendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, name, name); err != nil {
		return "", fmt.Errorf("failed to set profile for %s: %w", userID, err)
	}
	return name, nil
}

func (s *Service) friendlyName() string {
	flower := flowers[s.rng.Intn(len(flowers))]
	color := colors[s.rng.Intn(len(colors))]
	return fmt.Sprintf("%s%s%d", flower, color, s.rng.Intn(9000)+1000)
}

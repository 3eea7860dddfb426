package bot

import (
	"loto/internal/rng"
)

// Agent claims Kinh on behalf of a bot seat after a human-like reaction delay.
type Agent struct {
	ID       string
	Name     string
	Tickets  int
	minDelay int
	maxDelay int
	src      rng.Source
	claimAt  int64
}

// NewAgent builds an agent for a bot seat. Delays are in ticks.
func NewAgent(identity Identity, minDelay, maxDelay int, src rng.Source) *Agent {
	tickets := identity.Tickets
	if tickets <= 0 {
		tickets = 1
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}
	return &Agent{
		ID:       identity.UserID,
		Name:     name,
		Tickets:  tickets,
		minDelay: minDelay,
		maxDelay: maxDelay,
		src:      src,
	}
}

// Observe is called once per tick with whether the bot holds a completed row. It reports true
// on the tick the bot should call Kinh.
func (a *Agent) Observe(tick int64, won bool) bool {
	if !won {
		a.claimAt = 0
		return false
	}
	if a.claimAt == 0 {
		a.claimAt = tick + int64(rng.Between(a.src, a.minDelay, a.maxDelay))
	}
	if tick < a.claimAt {
		return false
	}
	a.claimAt = 0
	return true
}

// Reset forgets a pending claim, e.g. when a new game starts.
func (a *Agent) Reset() { a.claimAt = 0 }

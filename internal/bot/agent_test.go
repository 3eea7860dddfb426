package bot

import (
	"testing"

	"loto/internal/rng"
)

func TestAgentDefaults(t *testing.T) {
	a := NewAgent(Identity{UserID: "b1", Username: "bot1"}, 1, 1, rng.NewSeeded(1))
	if a.Tickets != 1 || a.Name != "bot1" || a.ID != "b1" {
		t.Fatalf("unexpected agent %+v", a)
	}
	b := NewAgent(Identity{UserID: "b2", DisplayName: "Co Ba", Tickets: 3}, 1, 1, rng.NewSeeded(1))
	if b.Tickets != 3 || b.Name != "Co Ba" {
		t.Fatalf("unexpected agent %+v", b)
	}
}

func TestAgentClaimsAfterDelay(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"fixed", 2, 2},
		{"range", 1, 4},
		{"instant", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAgent(Identity{UserID: "b"}, tt.min, tt.max, rng.NewSeeded(5))
			if a.Observe(10, false) {
				t.Fatal("claimed without a completed row")
			}
			var claimed int64
			for tick := int64(11); tick < 11+int64(tt.max)+2; tick++ {
				if a.Observe(tick, true) {
					claimed = tick
					break
				}
			}
			if claimed == 0 {
				t.Fatal("never claimed")
			}
			delay := claimed - 11
			if delay < int64(tt.min) || delay > int64(tt.max) {
				t.Fatalf("delay = %d, want [%d,%d]", delay, tt.min, tt.max)
			}
		})
	}
}

func TestAgentResetDropsPendingClaim(t *testing.T) {
	a := NewAgent(Identity{UserID: "b"}, 3, 3, rng.NewSeeded(1))
	a.Observe(1, true)
	a.Reset()
	if a.Observe(4, true) {
		t.Fatal("claim should restart its delay after Reset")
	}
	if !a.Observe(7, true) {
		t.Fatal("expected claim three ticks after the restart")
	}
}

func TestGetIdentityWithoutPool(t *testing.T) {
	id := GetIdentity(2)
	if id.UserID == "" {
		t.Fatal("expected a synthetic identity")
	}
	if !IsBot(id.UserID) {
		t.Fatalf("%s should be recognized as a bot", id.UserID)
	}
	if DisplayName(id.UserID) == "" {
		t.Fatal("expected a display name")
	}
	if IsBot("human-1") {
		t.Fatal("human recognized as bot")
	}
}

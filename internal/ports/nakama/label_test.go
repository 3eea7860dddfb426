package nakama

import (
	"bytes"
	"encoding/json"
	"testing"

	"loto/internal/domain"
)

func TestEncodeLabel(t *testing.T) {
	tests := []struct {
		name     string
		open     int
		phase    domain.Phase
		expected string
	}{
		{"LobbyState", 3, domain.PhaseLobby, `{"game":"loto","open":3,"phase":"lobby"}`},
		{"PlayingState", 0, domain.PhasePlaying, `{"game":"loto","open":0,"phase":"playing"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			label, err := encodeLabel(test.open, test.phase)
			if err != nil {
				t.Fatalf("Failed to marshal label: %v", err)
			}
			var compact bytes.Buffer
			if err := json.Compact(&compact, []byte(label)); err != nil {
				t.Fatalf("Failed to compact label JSON: %v", err)
			}
			if compact.String() != test.expected {
				t.Errorf("Got %s, want %s", compact.String(), test.expected)
			}

			open, phase, err := decodeLabel(label)
			if err != nil || open != test.open || phase != test.phase {
				t.Fatalf("decodeLabel = %d, %s, %v", open, phase, err)
			}
		})
	}
}

func TestDecodeLabelRejectsOtherGames(t *testing.T) {
	if _, _, err := decodeLabel(`{"game":"poker","open":2}`); err == nil {
		t.Fatal("expected error for foreign label")
	}
	if _, _, err := decodeLabel(`not json`); err == nil {
		t.Fatal("expected error for malformed label")
	}
}

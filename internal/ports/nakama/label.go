package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"loto/internal/domain"
)

const (
	labelGame       = "loto"
	labelKeyGame    = "game"
	labelKeyOpen    = "open"
	labelKeyPhase   = "phase"
	quickMatchQuery = "+label.game:loto +label.phase:lobby +label.open:>=1"
)

// encodeLabel renders the match label Nakama indexes for match listing.
func encodeLabel(open int, phase domain.Phase) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		labelKeyGame:  labelGame,
		labelKeyOpen:  open,
		labelKeyPhase: string(phase),
	})
	if err != nil {
		return "", fmt.Errorf("build label: %w", err)
	}
	b, err := protojson.Marshal(label)
	if err != nil {
		return "", fmt.Errorf("marshal label: %w", err)
	}
	return string(b), nil
}

// decodeLabel is the inverse of encodeLabel.
func decodeLabel(s string) (open int, phase domain.Phase, err error) {
	var label structpb.Struct
	if err := protojson.Unmarshal([]byte(s), &label); err != nil {
		return 0, "", fmt.Errorf("unmarshal label: %w", err)
	}
	fields := label.GetFields()
	if fields[labelKeyGame].GetStringValue() != labelGame {
		return 0, "", fmt.Errorf("label is not a %s room", labelGame)
	}
	return int(fields[labelKeyOpen].GetNumberValue()), domain.Phase(fields[labelKeyPhase].GetStringValue()), nil
}

package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRow(t *testing.T) {
	tests := []struct {
		name    string
		cells   [RowWidth]int
		wantErr string
	}{
		{name: "valid", cells: [RowWidth]int{1, 0, 23, 0, 45, 0, 67, 0, 89}},
		{name: "valid trailing blanks", cells: [RowWidth]int{1, 11, 21, 31, 41, 0, 0, 0, 0}},
		{name: "too few", cells: [RowWidth]int{1, 0, 0, 0, 0, 0, 0, 0, 0}, wantErr: "has 1 numbers"},
		{name: "all blank", cells: [RowWidth]int{}, wantErr: "has 0 numbers"},
		{name: "too many", cells: [RowWidth]int{1, 11, 21, 31, 41, 51, 0, 0, 0}, wantErr: "more than 5"},
		{name: "out of range", cells: [RowWidth]int{1, 11, 21, 31, 91, 0, 0, 0, 0}, wantErr: "outside"},
		{name: "negative", cells: [RowWidth]int{-1, 11, 21, 31, 41, 0, 0, 0, 0}, wantErr: "outside"},
		{name: "duplicate", cells: [RowWidth]int{1, 11, 21, 31, 11, 0, 0, 0, 0}, wantErr: "appears twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := NewRow(tt.cells)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewRow() error = %v", err)
				}
				if row.Cells() != tt.cells {
					t.Fatalf("Cells() = %v, want %v", row.Cells(), tt.cells)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("NewRow() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(ve.Reason, tt.wantErr) {
				t.Fatalf("reason = %q, want it to contain %q", ve.Reason, tt.wantErr)
			}
		})
	}
}

func TestRowNumbersAndContains(t *testing.T) {
	row, err := NewRow([RowWidth]int{0, 10, 0, 30, 0, 50, 0, 70, 90})
	if err != nil {
		t.Fatalf("NewRow() error = %v", err)
	}
	want := [ActivePerRow]int{10, 30, 50, 70, 90}
	if row.Numbers() != want {
		t.Fatalf("Numbers() = %v, want %v", row.Numbers(), want)
	}
	if !row.Contains(50) || row.Contains(51) {
		t.Fatal("Contains() mismatch")
	}
}

func TestNewTicketRejectsZeroRow(t *testing.T) {
	if _, err := NewTicket(); err == nil {
		t.Fatal("expected error for empty ticket")
	}
	if _, err := NewTicket(Row{}); err == nil {
		t.Fatal("expected error for zero-value row")
	}
}

func TestParseTicketReportsRow(t *testing.T) {
	_, err := ParseTicket([][]int{
		{1, 11, 21, 31, 41, 0, 0, 0, 0},
		{2, 12, 22, 0, 0, 0, 0, 0, 0},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ParseTicket() error = %v, want *ValidationError", err)
	}
	if ve.Row != 1 {
		t.Fatalf("Row = %d, want 1", ve.Row)
	}

	_, err = ParseTicket([][]int{{1, 11, 21, 31, 41}})
	if !errors.As(err, &ve) || !strings.Contains(ve.Reason, "cells") {
		t.Fatalf("short line error = %v", err)
	}
}

func TestNewPlayerRejectsDuplicatesAcrossTickets(t *testing.T) {
	_, err := ParsePlayer("p1",
		[][]int{{1, 11, 21, 31, 41, 0, 0, 0, 0}},
		[][]int{{2, 12, 22, 32, 41, 0, 0, 0, 0}},
	)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ParsePlayer() error = %v, want *ValidationError", err)
	}
	if ve.PlayerID != "p1" || ve.Ticket != 1 || ve.Row != 0 {
		t.Fatalf("unexpected position: %+v", ve)
	}
	if !strings.Contains(err.Error(), "player p1 ticket 1 row 0") {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestNewPlayerAllowsSameNumberForDifferentPlayers(t *testing.T) {
	grid := [][]int{{1, 11, 21, 31, 41, 0, 0, 0, 0}}
	a, err := ParsePlayer("a", grid)
	if err != nil {
		t.Fatalf("ParsePlayer(a) error = %v", err)
	}
	b, err := ParsePlayer("b", grid)
	if err != nil {
		t.Fatalf("ParsePlayer(b) error = %v", err)
	}
	if len(a.Rows()) != 1 || len(b.Rows()) != 1 {
		t.Fatal("expected one row each")
	}
	if a.ID() != "a" || len(b.Tickets()) != 1 {
		t.Fatal("accessor mismatch")
	}
}

func TestNewPlayerWithoutTickets(t *testing.T) {
	if _, err := NewPlayer("p"); err == nil {
		t.Fatal("expected error for player without tickets")
	}
	if _, err := NewPlayer("p", Ticket{}); err == nil {
		t.Fatal("expected error for zero-value ticket")
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		hits int
		want Tier
	}{
		{0, TierNormal}, {3, TierNormal}, {4, TierWaiting}, {5, TierWon},
	}
	for _, tt := range tests {
		if got := TierFor(tt.hits); got != tt.want {
			t.Errorf("TierFor(%d) = %v, want %v", tt.hits, got, tt.want)
		}
	}
}

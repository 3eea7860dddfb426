package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed row, ticket or player.
// Ticket and Row are -1 when the error is not tied to a position.
type ValidationError struct {
	PlayerID string
	Ticket   int
	Row      int
	Reason   string
}

func (e *ValidationError) Error() string {
	msg := "invalid card"
	if e.PlayerID != "" {
		msg += " for player " + e.PlayerID
	}
	if e.Ticket >= 0 {
		msg += fmt.Sprintf(" ticket %d", e.Ticket)
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	return msg + ": " + e.Reason
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Ticket: -1, Row: -1, Reason: fmt.Sprintf(format, args...)}
}

// Row is one printed line of a ticket: 9 cells, 5 of them holding numbers.
type Row struct {
	cells   [RowWidth]int
	numbers [ActivePerRow]int
}

// NewRow validates a 9-cell grid line. Zero cells are blanks.
func NewRow(cells [RowWidth]int) (Row, error) {
	var r Row
	r.cells = cells
	n := 0
	for col, v := range cells {
		if v == 0 {
			continue
		}
		if v < MinNumber || v > MaxNumber {
			return Row{}, invalid("cell %d holds %d, outside [%d,%d]", col, v, MinNumber, MaxNumber)
		}
		if n == ActivePerRow {
			return Row{}, invalid("more than %d numbers", ActivePerRow)
		}
		for _, prev := range r.numbers[:n] {
			if prev == v {
				return Row{}, invalid("number %d appears twice", v)
			}
		}
		r.numbers[n] = v
		n++
	}
	if n != ActivePerRow {
		return Row{}, invalid("has %d numbers, want %d", n, ActivePerRow)
	}
	return r, nil
}

// Cells returns the printed grid line including blanks.
func (r Row) Cells() [RowWidth]int { return r.cells }

// Numbers returns the active numbers in column order.
func (r Row) Numbers() [ActivePerRow]int { return r.numbers }

// Contains reports whether n is one of the row's numbers.
func (r Row) Contains(n int) bool {
	for _, v := range r.numbers {
		if v == n {
			return true
		}
	}
	return false
}

// Ticket is an ordered set of rows printed on one card.
type Ticket struct {
	rows []Row
}

// NewTicket builds a ticket from validated rows.
func NewTicket(rows ...Row) (Ticket, error) {
	if len(rows) == 0 {
		return Ticket{}, invalid("ticket has no rows")
	}
	for i, r := range rows {
		if r.numbers[0] == 0 {
			e := invalid("row was not built with NewRow")
			e.Row = i
			return Ticket{}, e
		}
	}
	return Ticket{rows: append([]Row(nil), rows...)}, nil
}

// ParseTicket validates a raw grid where each line has 9 cells.
func ParseTicket(grid [][]int) (Ticket, error) {
	rows := make([]Row, 0, len(grid))
	for i, line := range grid {
		if len(line) != RowWidth {
			e := invalid("has %d cells, want %d", len(line), RowWidth)
			e.Row = i
			return Ticket{}, e
		}
		var cells [RowWidth]int
		copy(cells[:], line)
		r, err := NewRow(cells)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Row = i
			}
			return Ticket{}, err
		}
		rows = append(rows, r)
	}
	return NewTicket(rows...)
}

// Rows returns a copy of the ticket's rows.
func (t Ticket) Rows() []Row { return append([]Row(nil), t.rows...) }

// Grid returns the raw 9-cell lines of the ticket.
func (t Ticket) Grid() [][]int {
	out := make([][]int, len(t.rows))
	for i, r := range t.rows {
		cells := r.cells
		out[i] = cells[:]
	}
	return out
}

// Player is a participant with one or more tickets.
type Player struct {
	id      string
	tickets []Ticket
}

// NewPlayer validates the player's tickets. A number may appear only once across all of them.
func NewPlayer(id string, tickets ...Ticket) (Player, error) {
	if len(tickets) == 0 {
		e := invalid("player has no tickets")
		e.PlayerID = id
		return Player{}, e
	}
	seen := make(map[int]int)
	for ti, t := range tickets {
		if len(t.rows) == 0 {
			e := invalid("ticket has no rows")
			e.PlayerID, e.Ticket = id, ti
			return Player{}, e
		}
		for ri, r := range t.rows {
			for _, n := range r.numbers {
				if prev, dup := seen[n]; dup {
					e := invalid("number %d already used on ticket %d", n, prev)
					e.PlayerID, e.Ticket, e.Row = id, ti, ri
					return Player{}, e
				}
				seen[n] = ti
			}
		}
	}
	return Player{id: id, tickets: append([]Ticket(nil), tickets...)}, nil
}

// ParsePlayer validates raw ticket grids for a player.
func ParsePlayer(id string, grids ...[][]int) (Player, error) {
	tickets := make([]Ticket, 0, len(grids))
	for i, g := range grids {
		t, err := ParseTicket(g)
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.PlayerID, ve.Ticket = id, i
			}
			return Player{}, err
		}
		tickets = append(tickets, t)
	}
	return NewPlayer(id, tickets...)
}

// ID returns the player's identifier.
func (p Player) ID() string { return p.id }

// Tickets returns a copy of the player's tickets.
func (p Player) Tickets() []Ticket { return append([]Ticket(nil), p.tickets...) }

// Rows returns every row across the player's tickets, in ticket order.
func (p Player) Rows() []Row {
	var out []Row
	for _, t := range p.tickets {
		out = append(out, t.rows...)
	}
	return out
}

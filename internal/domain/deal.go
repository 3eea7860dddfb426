package domain

import (
	"fmt"
	"sort"

	"loto/internal/rng"
)

// MaxTicketsPerPlayer bounds how many tickets one player may hold without repeating a number.
const MaxTicketsPerPlayer = 4

// ColumnOf returns the printed column of a number: 1-9 in column 0, 10-19 in column 1, and so on,
// with 90 sharing the last column with 80-89.
func ColumnOf(n int) int {
	if n >= MaxNumber {
		return RowWidth - 1
	}
	return n / 10
}

// DealTickets prints count traditional 3-row tickets for a single player. Every number is unique
// across the returned tickets, and numbers in a ticket column ascend from top to bottom.
func DealTickets(src rng.Source, count int) ([]Ticket, error) {
	if count < 1 || count > MaxTicketsPerPlayer {
		return nil, fmt.Errorf("ticket count %d outside [1,%d]", count, MaxTicketsPerPlayer)
	}

	var pools [RowWidth][]int
	for n := MinNumber; n <= MaxNumber; n++ {
		c := ColumnOf(n)
		pools[c] = append(pools[c], n)
	}
	for c := range pools {
		p := pools[c]
		rng.Shuffle(src, len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	}

	tickets := make([]Ticket, 0, count)
	for t := 0; t < count; t++ {
		var grid [RowsPerTicket][RowWidth]int
		for r := range grid {
			cols := pickColumns(src, &pools)
			if len(cols) < ActivePerRow {
				return nil, fmt.Errorf("ran out of numbers dealing ticket %d", t)
			}
			for _, c := range cols {
				last := len(pools[c]) - 1
				grid[r][c] = pools[c][last]
				pools[c] = pools[c][:last]
			}
		}
		sortColumns(&grid)

		rows := make([]Row, 0, RowsPerTicket)
		for _, cells := range grid {
			row, err := NewRow(cells)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		ticket, err := NewTicket(rows...)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// pickColumns chooses the ActivePerRow columns with the most numbers left, breaking ties randomly.
func pickColumns(src rng.Source, pools *[RowWidth][]int) []int {
	order := make([]int, RowWidth)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(src, len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	sort.SliceStable(order, func(i, j int) bool {
		return len(pools[order[i]]) > len(pools[order[j]])
	})

	cols := make([]int, 0, ActivePerRow)
	for _, c := range order {
		if len(cols) == ActivePerRow {
			break
		}
		if len(pools[c]) > 0 {
			cols = append(cols, c)
		}
	}
	return cols
}

func sortColumns(grid *[RowsPerTicket][RowWidth]int) {
	for c := 0; c < RowWidth; c++ {
		var vals, at []int
		for r := range grid {
			if grid[r][c] != 0 {
				vals = append(vals, grid[r][c])
				at = append(at, r)
			}
		}
		sort.Ints(vals)
		for i, r := range at {
			grid[r][c] = vals[i]
		}
	}
}

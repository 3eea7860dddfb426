package draw

import (
	"iter"

	"loto/internal/domain"
)

// PlayerStatus summarizes one player's rows by their best row.
type PlayerStatus struct {
	Tier     domain.Tier
	BestHits int
}

// Waiting reports whether some row is at most one number away from Kinh. A won row counts.
func (s PlayerStatus) Waiting() bool { return s.Tier >= domain.TierWaiting }

// Won reports whether some row is complete.
func (s PlayerStatus) Won() bool { return s.Tier == domain.TierWon }

type indexedRow struct {
	player  int
	numbers [domain.ActivePerRow]int
}

// Index tracks hit counts for every row of every player. Players and rows are addressed by
// their position in the slice the index was built from.
type Index struct {
	rows     []indexedRow
	hits     []int
	byNumber [domain.MaxNumber + 1][]int
	byPlayer [][]int
	waiting  []int
}

// NewIndex precomputes the rows of players.
func NewIndex(players []domain.Player) *Index {
	x := &Index{
		byPlayer: make([][]int, len(players)),
		waiting:  make([]int, len(players)),
	}
	for p, player := range players {
		for _, row := range player.Rows() {
			id := len(x.rows)
			nums := row.Numbers()
			x.rows = append(x.rows, indexedRow{player: p, numbers: nums})
			x.hits = append(x.hits, 0)
			x.byPlayer[p] = append(x.byPlayer[p], id)
			for _, n := range nums {
				x.byNumber[n] = append(x.byNumber[n], id)
			}
		}
	}
	return x
}

// Players returns the number of indexed players.
func (x *Index) Players() int { return len(x.byPlayer) }

// Rows returns the number of indexed rows.
func (x *Index) Rows() int { return len(x.rows) }

// HitCount returns how many of the row's numbers have been drawn.
func (x *Index) HitCount(row int) int { return x.hits[row] }

// RowNumbers returns the active numbers of a row.
func (x *Index) RowNumbers(row int) [domain.ActivePerRow]int { return x.rows[row].numbers }

// OnDraw records n as drawn. Only rows holding n are touched.
func (x *Index) OnDraw(n int) {
	if n < domain.MinNumber || n > domain.MaxNumber {
		return
	}
	for _, id := range x.byNumber[n] {
		x.hits[id]++
		if x.hits[id] == domain.WaitingHits {
			x.waiting[x.rows[id].player]++
		}
	}
}

// RowsAt yields the rows whose hit count equals hits. With no players given every row is
// considered, otherwise only rows owned by the listed players.
func (x *Index) RowsAt(hits int, players ...int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(players) == 0 {
			for id, h := range x.hits {
				if h == hits && !yield(id) {
					return
				}
			}
			return
		}
		for _, p := range players {
			for _, id := range x.byPlayer[p] {
				if x.hits[id] == hits && !yield(id) {
					return
				}
			}
		}
	}
}

// PlayerWaiting reports whether any row of player p has at least WaitingHits hits.
func (x *Index) PlayerWaiting(p int) bool { return x.waiting[p] > 0 }

// AllWaiting reports whether every player is waiting. It is true when there are no players.
func (x *Index) AllWaiting() bool {
	for p := range x.waiting {
		if x.waiting[p] == 0 {
			return false
		}
	}
	return true
}

// Status returns the summary for player p.
func (x *Index) Status(p int) PlayerStatus {
	var st PlayerStatus
	for _, id := range x.byPlayer[p] {
		st.BestHits = max(st.BestHits, x.hits[id])
	}
	st.Tier = domain.TierFor(st.BestHits)
	return st
}

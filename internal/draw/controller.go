// Package draw decides the order in which numbers are called in a Lo To game.
//
// A game runs through three stages. SafeInit keeps every row below four hits for the first
// kThreshold draws. WaitingPush then feeds the players who have no waiting row yet. Once every
// player is waiting the game enters NaturalFinish and the remaining numbers come out unbiased.
package draw

import (
	"errors"

	"loto/internal/domain"
	"loto/internal/rng"
)

const (
	// MinKThreshold and MaxKThreshold bound the randomly chosen SafeInit length.
	MinKThreshold = 10
	MaxKThreshold = 20
)

// ErrNegativeThreshold is returned when WithKThreshold is given a negative value.
var ErrNegativeThreshold = errors.New("k threshold must not be negative")

// Result describes one drawn number.
type Result struct {
	Number   int
	Stage    Stage
	Pool     CandidatePool
	Sequence int
}

type options struct {
	src rng.Source
	k   int
	set bool
}

// Option configures a Controller.
type Option func(*options)

// WithSource injects the randomness used for the threshold and every draw.
func WithSource(src rng.Source) Option {
	return func(o *options) { o.src = src }
}

// WithKThreshold fixes the SafeInit length instead of picking it at random.
func WithKThreshold(k int) Option {
	return func(o *options) { o.k, o.set = k, true }
}

// Controller owns the state of one game's draw. It is not safe for concurrent use.
type Controller struct {
	players  []domain.Player
	pool     *Pool
	index    *Index
	machine  *StageMachine
	selector *Selector
	drawn    []int
}

// NewController validates players and prepares a fresh game.
func NewController(players []domain.Player, opts ...Option) (*Controller, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.src == nil {
		o.src = rng.NewTimeSeeded()
	}

	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if len(p.Tickets()) == 0 {
			return nil, &domain.ValidationError{PlayerID: p.ID(), Ticket: -1, Row: -1, Reason: "player has no tickets"}
		}
		if _, dup := seen[p.ID()]; dup {
			return nil, &domain.ValidationError{PlayerID: p.ID(), Ticket: -1, Row: -1, Reason: "player listed twice"}
		}
		seen[p.ID()] = struct{}{}
	}

	k := o.k
	if !o.set {
		k = rng.Between(o.src, MinKThreshold, MaxKThreshold)
	} else if k < 0 {
		return nil, ErrNegativeThreshold
	}

	pool := NewPool()
	index := NewIndex(players)
	return &Controller{
		players:  append([]domain.Player(nil), players...),
		pool:     pool,
		index:    index,
		machine:  NewStageMachine(k),
		selector: NewSelector(o.src, pool, index),
		drawn:    make([]int, 0, pool.Len()),
	}, nil
}

// DrawNext calls the next number. It reports false once all numbers have been drawn.
func (c *Controller) DrawNext() (Result, bool) {
	if c.pool.Empty() {
		return Result{}, false
	}
	c.machine.Advance(c.index.AllWaiting(), len(c.drawn))
	stage := c.machine.Stage()

	n, from := c.selector.Pick(stage)
	c.pool.Remove(n)
	c.index.OnDraw(n)
	c.drawn = append(c.drawn, n)

	return Result{Number: n, Stage: stage, Pool: from, Sequence: len(c.drawn)}, true
}

// AllWaiting reports whether every player has a row at four hits or more.
func (c *Controller) AllWaiting() bool { return c.index.AllWaiting() }

// Stage returns the stage of the most recent draw, or SafeInit before the first one.
func (c *Controller) Stage() Stage { return c.machine.Stage() }

// KThreshold returns the SafeInit length of this game.
func (c *Controller) KThreshold() int { return c.machine.KThreshold() }

// Drawn returns the called numbers in order.
func (c *Controller) Drawn() []int { return append([]int(nil), c.drawn...) }

// Remaining returns how many numbers are still undrawn.
func (c *Controller) Remaining() int { return c.pool.Len() }

// Players returns the players in index order.
func (c *Controller) Players() []domain.Player { return append([]domain.Player(nil), c.players...) }

// Status summarizes player i, where i is the player's position in NewController's slice.
func (c *Controller) Status(i int) PlayerStatus { return c.index.Status(i) }

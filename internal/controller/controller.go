// Package controller runs one play session: it owns the card set, shuffles
// and deals it onto the stack model, and routes pointer events to the drag
// machine.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/deal"
	"github.com/lox/solitaire/internal/drag"
	"github.com/lox/solitaire/internal/layout"
	"github.com/lox/solitaire/internal/randutil"
	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/shuffle"
	"github.com/lox/solitaire/internal/view"
)

// ErrNoSnapshot is returned by Restart before any shuffled deal exists.
var ErrNoSnapshot = errors.New("no shuffled deal to restart")

// Controller drives a single game.
type Controller struct {
	game   *rules.Game
	rng    shuffle.Source
	logger *log.Logger
	clock  quartz.Clock
	geom   view.Geometry

	cards    []*cards.Card
	snapshot []*cards.Card

	model   *layout.Model
	board   *view.Board
	machine *drag.Machine

	startedAt time.Time
	dealt     bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the randomness used for shuffling.
func WithRand(src shuffle.Source) Option {
	return func(c *Controller) { c.rng = src }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithClock sets the clock used for elapsed time.
func WithClock(clock quartz.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithGeometry sets the board geometry.
func WithGeometry(g view.Geometry) Option {
	return func(c *Controller) { c.geom = g }
}

// New creates a controller for game with a freshly generated card set.
// Nothing is dealt until BeginGamePlay.
func New(game *rules.Game, opts ...Option) (*Controller, error) {
	c := &Controller{
		game:   game,
		logger: log.Default(),
		clock:  quartz.NewReal(),
		geom:   view.DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = randutil.New(randutil.Seed())
	}
	c.logger = c.logger.WithPrefix("controller").With("game", game.Name())

	cs, err := cards.CreateCards(game.NumDecksInGame(), game.AcesHigh(), game.IncludeJokers())
	if err != nil {
		return nil, fmt.Errorf("create cards: %w", err)
	}
	if game.IncludeJokers() {
		c.logger.Warn("Jokers are not supported yet; dealing without them")
	}
	c.cards = cs
	c.attach(game.StackModel())
	return c, nil
}

// attach makes m the live model and builds its board and drag machine.
func (c *Controller) attach(m *layout.Model) {
	if c.machine != nil {
		c.machine.Abort()
	}
	c.model = m
	c.board = view.NewBoard(m, c.geom)

	var opts []drag.Option
	if o := c.game.Observer(); o != nil {
		opts = append(opts, drag.WithDropObserver(o.CardsDropped))
	}
	c.machine = drag.NewMachine(c.board, c.game.CardsCanDropIntoStack, c.logger, opts...)
}

// BeginGamePlay collects every card into the dealer stack and deals. When
// shuffleAndCopy is set the card set is shuffled first and the shuffled
// order is kept for Restart.
func (c *Controller) BeginGamePlay(shuffleAndCopy bool) error {
	if err := c.beginGamePlay(shuffleAndCopy); err != nil {
		c.logger.Error("Failed to begin game play", "error", err)
		return err
	}
	return nil
}

func (c *Controller) beginGamePlay(shuffleAndCopy bool) error {
	c.machine.Abort()

	if shuffleAndCopy {
		times := shuffle.RepeatCount(c.rng)
		c.cards = shuffle.Shuffle(c.cards, times, c.rng)
		c.snapshot = cards.CloneAll(c.cards)
		c.logger.Debug("Shuffled cards", "times", times, "cards", len(c.cards))
	}

	if c.model.DealerStack() == nil {
		return deal.ErrNoDealer
	}
	if need := deal.NumCardsToDeal(c.model); need > len(c.cards) {
		return fmt.Errorf("%w: need %d, have %d", deal.ErrInsufficientCards, need, len(c.cards))
	}

	if err := deal.CollectAll(c.model, c.cards); err != nil {
		return fmt.Errorf("collect cards: %w", err)
	}
	if err := deal.Deal(c.model, c.cards); err != nil {
		return fmt.Errorf("deal: %w", err)
	}

	c.startedAt = c.clock.Now()
	c.dealt = true
	c.logger.Info("Game dealt",
		"cards", len(c.cards),
		"dealt", deal.NumCardsToDeal(c.model),
		"dealer", c.model.DealerStack().Len())
	return nil
}

// Restart rebuilds the board and deals the saved shuffled order again.
func (c *Controller) Restart() error {
	if c.snapshot == nil {
		return ErrNoSnapshot
	}
	m, err := layout.Build(c.game.Layout())
	if err != nil {
		return fmt.Errorf("rebuild stack model: %w", err)
	}
	c.attach(m)
	c.cards = cards.CloneAll(c.snapshot)
	return c.BeginGamePlay(false)
}

// NewGame rebuilds the board and deals a fresh shuffle.
func (c *Controller) NewGame() error {
	m, err := layout.Build(c.game.Layout())
	if err != nil {
		return fmt.Errorf("rebuild stack model: %w", err)
	}
	c.attach(m)
	return c.BeginGamePlay(true)
}

// Dispatch routes a pointer event to the drag machine.
func (c *Controller) Dispatch(ev drag.Event) ([]drag.Effect, error) {
	return c.machine.Dispatch(ev)
}

// Abort reverts any drag in progress.
func (c *Controller) Abort() []drag.Effect {
	return c.machine.Abort()
}

// Game returns the rules of the game being played.
func (c *Controller) Game() *rules.Game { return c.game }

// Model returns the live stack model.
func (c *Controller) Model() *layout.Model { return c.model }

// Board returns the live board.
func (c *Controller) Board() *view.Board { return c.board }

// Cards returns the controller's card set in its current order.
func (c *Controller) Cards() []*cards.Card { return c.cards }

// DragState returns the state of the drag machine.
func (c *Controller) DragState() drag.State { return c.machine.State() }

// Elapsed returns the time since the last deal, or zero when the game does
// not use a timer or nothing has been dealt.
func (c *Controller) Elapsed() time.Duration {
	if !c.game.UseTimer() || !c.dealt {
		return 0
	}
	return c.clock.Since(c.startedAt)
}

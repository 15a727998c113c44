package game

import (
	"fmt"

	"github.com/peterkuimelis/skirmish/internal/log"
)

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Width  int   // grid columns per side (0 with Height 0 = DefaultWidth)
	Height int   // grid rows per side
	Seed   int64 // RNG seed (0 for random); ignored when Rand is set

	// Layouts overrides dealing with fixed row-major type layouts, indexed
	// by Side. A nil entry is dealt by Generate.
	Layouts [2][]CardType

	Rand    Source          // randomness for dealing and the default planner
	Planner Planner         // automated side; defaults to a GreedyPlanner
	Logger  log.EventLogger // defaults to a MemoryLogger

	// ManualOpponent leaves the match in OpponentTurn after the player's pair
	// resolves until RunOpponentTurn is called.
	ManualOpponent bool
}

// Match is the turn state machine for one game. It owns the board and memory;
// every change to a card goes through SelectCard or RunOpponentTurn.
// A Match is not safe for concurrent use.
type Match struct {
	board   *Board
	memory  *Memory
	planner Planner
	logger  log.EventLogger
	manual  bool
	seed    int64

	state  TurnState
	active Side
	turn   int
	sel    [2]selection
	first  Side // side whose selection opened first in the current pair
	winner Side
}

// NewMatch deals both grids and returns a match awaiting the player's first
// selection. Invalid dimensions or layouts return a *ConfigError.
func NewMatch(cfg MatchConfig) (*Match, error) {
	width, height := cfg.Width, cfg.Height
	if width == 0 && height == 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	rng := cfg.Rand
	if rng != nil {
		seed = 0
	} else {
		if seed == 0 {
			s, err := NewSeed()
			if err != nil {
				return nil, err
			}
			seed = s
		}
		rng = NewSource(seed)
	}

	layouts := cfg.Layouts
	for side := range layouts {
		if layouts[side] != nil {
			continue
		}
		grid, err := Generate(rng, Side(side), width, height)
		if err != nil {
			return nil, err
		}
		layouts[side] = Flatten(grid)
	}

	board, err := NewBoard(width, height, layouts[SidePlayer], layouts[SideOpponent])
	if err != nil {
		return nil, err
	}

	planner := cfg.Planner
	if planner == nil {
		planner = NewGreedyPlanner(rng)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	return &Match{
		board:   board,
		memory:  NewMemory(),
		planner: planner,
		logger:  logger,
		manual:  cfg.ManualOpponent,
		seed:    seed,
		state:   AwaitingFirstSelection,
		active:  SidePlayer,
		turn:    1,
	}, nil
}

func (m *Match) Board() *Board { return m.board }
func (m *Match) Memory() *Memory { return m.memory }
func (m *Match) Logger() log.EventLogger { return m.logger }
func (m *Match) State() TurnState { return m.state }
func (m *Match) ActiveSide() Side { return m.active }
func (m *Match) Turn() int { return m.turn }

// Seed returns the seed the match was dealt from, or 0 if an explicit
// Source was supplied.
func (m *Match) Seed() int64 { return m.seed }

// Winner returns the winning side once the match is over.
func (m *Match) Winner() (Side, bool) {
	if m.state != GameOver {
		return 0, false
	}
	return m.winner, true
}

// Pending returns the position of the side's opened card, if any.
func (m *Match) Pending(side Side) (Position, bool) {
	if !side.valid() || !m.sel[side].opened {
		return Position{}, false
	}
	return m.sel[side].card.Pos, true
}

// SelectCard opens the card of side at pos on behalf of the player. It
// returns false without changing anything when the input does not apply:
// a dead, opened or off-grid card, a side that already has an opened card,
// the automated side's turn, or a finished match.
//
// Completing a pair resolves it immediately and, unless ManualOpponent is
// set, plays the automated side's turn before returning. The error is only
// non-nil when the planner fails.
func (m *Match) SelectCard(side Side, pos Position) (bool, error) {
	if m.state != AwaitingFirstSelection && m.state != AwaitingSecondSelection {
		return false, nil
	}
	return m.open(side, pos)
}

// RunOpponentTurn asks the planner for a pair and plays it through the same
// selection protocol as the player. It does nothing outside OpponentTurn.
func (m *Match) RunOpponentTurn() error {
	if m.state != OpponentTurn {
		return nil
	}
	self := m.active
	own, target, err := m.planner.ChooseTurn(m.board, m.memory)
	if err != nil {
		return fmt.Errorf("opponent turn %d: %w", m.turn, err)
	}
	if !m.selectable(self, own) {
		return fmt.Errorf("opponent turn %d: planner chose unusable own card %s", m.turn, own)
	}
	if !m.selectable(self.Other(), target) {
		return fmt.Errorf("opponent turn %d: planner chose unusable target %s", m.turn, target)
	}

	if _, err := m.open(self, own); err != nil {
		return err
	}
	_, err = m.open(self.Other(), target)
	return err
}

func (m *Match) selectable(side Side, pos Position) bool {
	card := m.board.Card(side, pos)
	return card != nil && card.Alive && !card.Revealed && !m.sel[side].opened
}

// open reveals one card and resolves the pair once both sides have one open.
func (m *Match) open(side Side, pos Position) (bool, error) {
	if !m.selectable(side, pos) {
		return false, nil
	}
	card := m.board.Card(side, pos)
	m.sel[side] = selection{opened: true, card: card}
	card.Revealed = true
	m.memory.Observe(side, card)
	m.log(log.NewCardRevealedEvent(m.turn, int(side), pos.X, pos.Y, card.Type.String()))

	if !m.sel[side.Other()].opened {
		m.first = side
		if m.state == AwaitingFirstSelection {
			m.state = AwaitingSecondSelection
		}
		return true, nil
	}
	return true, m.resolve()
}

// resolve applies the matchup to the opened pair and hands the turn over.
func (m *Match) resolve() error {
	m.state = Resolving
	first := m.sel[m.first].card
	second := m.sel[m.first.Other()].card
	m.sel = [2]selection{}

	switch Resolve(first.Type, second.Type) {
	case Tie:
		m.hide(first)
		m.hide(second)
	case Win:
		m.hide(first)
		m.remove(second)
	case Loss:
		m.remove(first)
		m.hide(second)
	}

	if m.checkGameOver() {
		return nil
	}
	return m.endTurn()
}

func (m *Match) hide(card *Card) {
	card.Revealed = false
	m.log(log.NewCardHiddenEvent(m.turn, int(card.Owner), card.Pos.X, card.Pos.Y))
}

func (m *Match) remove(card *Card) {
	card.Revealed = false
	card.Alive = false
	m.memory.Forget(card.Owner, card)
	m.log(log.NewCardRemovedEvent(m.turn, int(card.Owner), card.Pos.X, card.Pos.Y))
}

// checkGameOver ends the match when either side has no cards left.
func (m *Match) checkGameOver() bool {
	for _, side := range []Side{SidePlayer, SideOpponent} {
		if m.board.AliveCount(side) == 0 {
			m.state = GameOver
			m.winner = side.Other()
			m.log(log.NewMatchEndedEvent(m.turn, int(m.winner)))
			return true
		}
	}
	return false
}

func (m *Match) endTurn() error {
	m.turn++
	m.active = m.active.Other()
	m.log(log.NewTurnChangedEvent(m.turn, int(m.active)))

	if m.active == SidePlayer {
		m.state = AwaitingFirstSelection
		return nil
	}
	m.state = OpponentTurn
	if m.manual {
		return nil
	}
	return m.RunOpponentTurn()
}

func (m *Match) log(event log.GameEvent) {
	m.logger.Log(event)
}

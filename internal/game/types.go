package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Side identifies the owner of a grid and of the turn.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "Player"
	case SideOpponent:
		return "Opponent"
	default:
		return "Unknown"
	}
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) valid() bool {
	return s == SidePlayer || s == SideOpponent
}

// ParseSide accepts "player"/"p" and "opponent"/"o", case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "p":
		return SidePlayer, nil
	case "opponent", "o":
		return SideOpponent, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

type CardType int

const (
	Warrior CardType = iota
	Archer
	Rider

	numCardTypes = 3
)

func (ct CardType) String() string {
	switch ct {
	case Warrior:
		return "Warrior"
	case Archer:
		return "Archer"
	case Rider:
		return "Rider"
	default:
		return "Unknown"
	}
}

// Outcome of a matchup, relative to the first card of the pair.
type Outcome int

const (
	Tie  Outcome = iota
	Win          // first survives, second is removed
	Loss         // first is removed, second survives
)

func (o Outcome) String() string {
	switch o {
	case Tie:
		return "Tie"
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	default:
		return "Unknown"
	}
}

type TurnState int

const (
	AwaitingFirstSelection TurnState = iota
	AwaitingSecondSelection
	Resolving
	OpponentTurn
	GameOver
)

func (s TurnState) String() string {
	switch s {
	case AwaitingFirstSelection:
		return "Awaiting First Selection"
	case AwaitingSecondSelection:
		return "Awaiting Second Selection"
	case Resolving:
		return "Resolving"
	case OpponentTurn:
		return "Opponent Turn"
	case GameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// --- Cards ---

// Position is a grid coordinate; X is the column, Y the row.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Card is one cell of a side's grid. Owner and Pos form its identity.
type Card struct {
	Owner    Side
	Pos      Position
	Type     CardType
	Alive    bool // false once removed from play
	Revealed bool // face-up, awaiting resolution
}

func (c *Card) String() string {
	if c == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s %s %s", c.Owner, c.Pos, c.Type)
}

// selection is the pending opened card of one side within a shared turn.
type selection struct {
	opened bool
	card   *Card
}

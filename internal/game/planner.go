package game

// Planner chooses the automated side's pair for a turn: one of its own cards
// and one of the player's.
type Planner interface {
	ChooseTurn(b *Board, mem *Memory) (own, player Position, err error)
}

// GreedyPlanner plays from memory alone. It takes the first known pair it is
// guaranteed to win and otherwise probes with its first known card, the
// player's first known card, or two random cards, in that order.
type GreedyPlanner struct {
	Rand Source
	Side Side // the automated side; defaults to SideOpponent
}

// NewGreedyPlanner returns a planner for the opponent side.
func NewGreedyPlanner(rng Source) *GreedyPlanner {
	return &GreedyPlanner{Rand: rng, Side: SideOpponent}
}

// ChooseTurn implements Planner.
func (p *GreedyPlanner) ChooseTurn(b *Board, mem *Memory) (Position, Position, error) {
	self := p.Side
	other := self.Other()

	if b.AliveCount(self) == 0 {
		return Position{}, Position{}, &NoValidMoveError{Side: self}
	}
	if b.AliveCount(other) == 0 {
		return Position{}, Position{}, &NoValidMoveError{Side: other}
	}

	ownKnown := mem.KnownAliveCards(self)
	otherKnown := mem.KnownAliveCards(other)

	if len(ownKnown) > 0 && len(otherKnown) > 0 {
		if own, target := findWinningPair(ownKnown, otherKnown); own != nil {
			return own.Pos, target.Pos, nil
		}
	}

	switch {
	case len(ownKnown) > 0:
		return ownKnown[0].Pos, p.pick(b, mem, other).Pos, nil
	case len(otherKnown) > 0:
		return p.pick(b, mem, self).Pos, otherKnown[0].Pos, nil
	default:
		return p.pick(b, mem, self).Pos, p.pick(b, mem, other).Pos, nil
	}
}

// findWinningPair scans own cards outer, targets inner, and returns the first
// pair where the own card beats the target.
func findWinningPair(own, targets []*Card) (*Card, *Card) {
	for _, o := range own {
		for _, t := range targets {
			if Resolve(o.Type, t.Type) == Win {
				return o, t
			}
		}
	}
	return nil, nil
}

// pick draws a uniformly random card of side, preferring ones not seen yet.
func (p *GreedyPlanner) pick(b *Board, mem *Memory, side Side) *Card {
	candidates := mem.Unknown(b, side)
	if len(candidates) == 0 {
		candidates = b.Alive(side)
	}
	return candidates[p.Rand.IntN(len(candidates))]
}

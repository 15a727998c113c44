package game

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Memory tracks, per owner, which cards have been seen face-up and are still
// in play. Both sides watch every reveal, so one set per owner serves as the
// other side's knowledge of it. Iteration follows first-seen order.
type Memory struct {
	known [2]*orderedmap.OrderedMap[Position, *Card]
}

func NewMemory() *Memory {
	return &Memory{
		known: [2]*orderedmap.OrderedMap[Position, *Card]{
			orderedmap.New[Position, *Card](),
			orderedmap.New[Position, *Card](),
		},
	}
}

// Observe records that card, owned by side, has been seen. Re-observing a
// known card keeps its original place in the order. Dead cards are ignored.
func (m *Memory) Observe(side Side, card *Card) {
	if card == nil || !card.Alive {
		return
	}
	if _, ok := m.known[side].Get(card.Pos); ok {
		return
	}
	m.known[side].Set(card.Pos, card)
}

// Forget drops a removed card from the side's known set.
func (m *Memory) Forget(side Side, card *Card) {
	if card == nil {
		return
	}
	m.known[side].Delete(card.Pos)
}

// IsKnown reports whether the card at pos is known and alive.
func (m *Memory) IsKnown(side Side, pos Position) bool {
	c, ok := m.known[side].Get(pos)
	return ok && c.Alive
}

// KnownAliveCards returns the side's known cards that are still alive, in
// the order they were first seen.
func (m *Memory) KnownAliveCards(side Side) []*Card {
	var result []*Card
	for pair := m.known[side].Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Alive {
			result = append(result, pair.Value)
		}
	}
	return result
}

// KnownCount returns the number of known alive cards of a side.
func (m *Memory) KnownCount(side Side) int {
	return len(m.KnownAliveCards(side))
}

// Unknown returns the side's alive cards that have not been seen yet, in
// row-major order.
func (m *Memory) Unknown(b *Board, side Side) []*Card {
	var result []*Card
	for _, c := range b.Alive(side) {
		if !m.IsKnown(side, c.Pos) {
			result = append(result, c)
		}
	}
	return result
}

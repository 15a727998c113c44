package game

// Board holds both sides' grids. Cards live in a fixed arena indexed
// row-major; nothing is ever appended or deleted after construction.
type Board struct {
	Width  int
	Height int
	cards  [2][]Card
}

// NewBoard builds a board from row-major type layouts, one per side.
func NewBoard(width, height int, player, opponent []CardType) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigError{Width: width, Height: height, Reason: "dimensions must be positive"}
	}
	b := &Board{Width: width, Height: height}
	for side, layout := range [2][]CardType{player, opponent} {
		if len(layout) != width*height {
			return nil, &ConfigError{Width: width, Height: height, Reason: "layout size does not match grid"}
		}
		cards := make([]Card, len(layout))
		for i, t := range layout {
			if t < 0 || t >= numCardTypes {
				return nil, &ConfigError{Width: width, Height: height, Reason: "layout has unknown card type"}
			}
			cards[i] = Card{
				Owner: Side(side),
				Pos:   Position{X: i % width, Y: i / width},
				Type:  t,
				Alive: true,
			}
		}
		b.cards[side] = cards
	}
	return b, nil
}

// InBounds reports whether pos lies on the grid.
func (b *Board) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < b.Width && pos.Y >= 0 && pos.Y < b.Height
}

// Card returns the card at pos, or nil if pos is off the grid.
func (b *Board) Card(side Side, pos Position) *Card {
	if !side.valid() || !b.InBounds(pos) {
		return nil
	}
	return &b.cards[side][pos.Y*b.Width+pos.X]
}

// Cards returns every card of a side in row-major order, dead ones included.
func (b *Board) Cards(side Side) []*Card {
	result := make([]*Card, len(b.cards[side]))
	for i := range b.cards[side] {
		result[i] = &b.cards[side][i]
	}
	return result
}

// Alive returns the side's cards still in play, in row-major order.
func (b *Board) Alive(side Side) []*Card {
	var result []*Card
	for i := range b.cards[side] {
		if b.cards[side][i].Alive {
			result = append(result, &b.cards[side][i])
		}
	}
	return result
}

// AliveCount returns the number of the side's cards still in play.
func (b *Board) AliveCount(side Side) int {
	count := 0
	for _, c := range b.cards[side] {
		if c.Alive {
			count++
		}
	}
	return count
}

// TypeCounts returns how many cards of each type the side was dealt.
func (b *Board) TypeCounts(side Side) [numCardTypes]int {
	var counts [numCardTypes]int
	for _, c := range b.cards[side] {
		counts[c.Type]++
	}
	return counts
}

package game

// CardSnapshot is a copy of one card as a host may show it. Type is set only
// while the card is face-up.
type CardSnapshot struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Alive    bool   `json:"alive"`
	Revealed bool   `json:"revealed,omitempty"`
	Known    bool   `json:"known,omitempty"`
	Type     string `json:"type,omitempty"`
}

// SideSnapshot is one side's grid, row-major.
type SideSnapshot struct {
	Cards []CardSnapshot `json:"cards"`
	Alive int            `json:"alive"`
	Known int            `json:"known"`
}

// Snapshot is a detached copy of a match, safe to hand to another goroutine.
type Snapshot struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Turn   int             `json:"turn"`
	State  string          `json:"state"`
	Active string          `json:"active"`
	Over   bool            `json:"over"`
	Winner string          `json:"winner,omitempty"`
	Sides  [2]SideSnapshot `json:"sides"`
}

// Snapshot copies the current board and turn state.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		Width:  m.board.Width,
		Height: m.board.Height,
		Turn:   m.turn,
		State:  m.state.String(),
		Active: m.active.String(),
	}
	if winner, ok := m.Winner(); ok {
		snap.Over = true
		snap.Winner = winner.String()
	}

	for _, side := range []Side{SidePlayer, SideOpponent} {
		ss := SideSnapshot{
			Alive: m.board.AliveCount(side),
			Known: m.memory.KnownCount(side),
		}
		for _, c := range m.board.Cards(side) {
			cs := CardSnapshot{
				X:        c.Pos.X,
				Y:        c.Pos.Y,
				Alive:    c.Alive,
				Revealed: c.Revealed,
				Known:    m.memory.IsKnown(side, c.Pos),
			}
			if c.Revealed {
				cs.Type = c.Type.String()
			}
			ss.Cards = append(ss.Cards, cs)
		}
		snap.Sides[side] = ss
	}
	return snap
}

// Card returns the snapshot of the card at (x, y) on a side.
func (s Snapshot) Card(side Side, x, y int) (CardSnapshot, bool) {
	if !side.valid() || x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return CardSnapshot{}, false
	}
	return s.Sides[side].Cards[y*s.Width+x], true
}

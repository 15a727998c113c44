package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/skirmish/internal/log"
)

// scriptedSource is a Source that returns predefined values in order.
// Used in tests to deterministically drive shuffles and planner picks.
// Once the script runs out it returns 0.
type scriptedSource struct {
	values []int
	pos    int
	calls  []int // the n passed to each IntN call
}

func newScriptedSource(values ...int) *scriptedSource {
	return &scriptedSource{values: values}
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos]
	s.pos++
	if v >= n {
		panic(fmt.Sprintf("scripted value %d out of range for IntN(%d)", v, n))
	}
	return v
}

// ScriptedPlanner is a Planner that plays a fixed list of pairs.
type ScriptedPlanner struct {
	t     *testing.T
	pairs [][2]Position
	pos   int
}

func NewScriptedPlanner(t *testing.T) *ScriptedPlanner {
	return &ScriptedPlanner{t: t}
}

func (sp *ScriptedPlanner) AddPair(own, player Position) *ScriptedPlanner {
	sp.pairs = append(sp.pairs, [2]Position{own, player})
	return sp
}

func (sp *ScriptedPlanner) ChooseTurn(b *Board, mem *Memory) (Position, Position, error) {
	if sp.pos >= len(sp.pairs) {
		sp.t.Fatalf("ScriptedPlanner: no pair scripted for call %d", sp.pos+1)
	}
	p := sp.pairs[sp.pos]
	sp.pos++
	return p[0], p[1], nil
}

// --- Layout helpers ---

// layout parses a row-major layout written as letters: W, A, R.
// Spaces are ignored so rows can be separated for readability.
func layout(s string) []CardType {
	var out []CardType
	for _, r := range s {
		switch r {
		case 'W':
			out = append(out, Warrior)
		case 'A':
			out = append(out, Archer)
		case 'R':
			out = append(out, Rider)
		case ' ':
		default:
			panic(fmt.Sprintf("layout: unknown card letter %q", r))
		}
	}
	return out
}

func pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// newTestMatch builds a match over fixed layouts with a MemoryLogger.
func newTestMatch(t *testing.T, width, height int, player, opponent string, planner Planner) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	m, err := NewMatch(MatchConfig{
		Width:   width,
		Height:  height,
		Layouts: [2][]CardType{layout(player), layout(opponent)},
		Rand:    newScriptedSource(),
		Planner: planner,
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("NewMatch error: %v", err)
	}
	return m, logger
}

// mustSelect selects a card and fails the test unless it was accepted.
func mustSelect(t *testing.T, m *Match, side Side, p Position) {
	t.Helper()
	ok, err := m.SelectCard(side, p)
	if err != nil {
		t.Fatalf("SelectCard(%s, %s) error: %v", side, p, err)
	}
	if !ok {
		t.Fatalf("SelectCard(%s, %s) was ignored in state %s", side, p, m.State())
	}
}

func totalAlive(m *Match) int {
	return m.Board().AliveCount(SidePlayer) + m.Board().AliveCount(SideOpponent)
}

func dumpEvents(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}

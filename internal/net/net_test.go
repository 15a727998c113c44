package net

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/skirmish/internal/game"
)

// fixedPlanner plays a fixed list of (own, player) pairs.
type fixedPlanner struct {
	pairs [][2]game.Position
	next  int
}

func (p *fixedPlanner) ChooseTurn(*game.Board, *game.Memory) (game.Position, game.Position, error) {
	pair := p.pairs[p.next]
	p.next++
	return pair[0], pair[1], nil
}

func at(x, y int) game.Position { return game.Position{X: x, Y: y} }

// newTestServer returns a server whose default match is
//
//	Player: W A R    Opponent: R W A
//
// with the opponent tying both of its turns.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return &Server{
		Logger: logger,
		Defaults: game.MatchConfig{
			Width:  3,
			Height: 1,
			Layouts: [2][]game.CardType{
				{game.Warrior, game.Archer, game.Rider},
				{game.Rider, game.Warrior, game.Archer},
			},
			Rand: game.NewSource(1),
			Planner: &fixedPlanner{pairs: [][2]game.Position{
				{at(1, 0), at(0, 0)}, // Warrior vs Warrior
				{at(2, 0), at(1, 0)}, // Archer vs Archer
			}},
		},
	}
}

func TestPlayLocalToGameOver(t *testing.T) {
	srv := newTestServer(t)
	in := strings.NewReader("p 0 0\no 0 0\np 1 0\no 1 0\np 2 0\no 2 0\n")
	var out bytes.Buffer

	err := PlayLocal(context.Background(), srv, 0, in, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Player card (0,0) revealed: Warrior")
	assert.Contains(t, text, "Opponent card (0,0) removed from play")
	assert.Contains(t, text, "=== Turn 2 (Opponent) ===")
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "Player wins!")
	assert.NotContains(t, text, "Ignored")
}

func TestPlayLocalBadInput(t *testing.T) {
	srv := newTestServer(t)
	in := strings.NewReader("help\nx 1 2\np a b\np 9 9\nq\n")
	var out bytes.Buffer

	err := PlayLocal(context.Background(), srv, 0, in, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "Unknown command")
	assert.Contains(t, text, "Coordinates must be numbers")
	assert.Contains(t, text, "Ignored")
	assert.NotContains(t, text, "GAME OVER")
}

func TestParseCoord(t *testing.T) {
	for in, want := range map[string]int{"0": 0, "00": 0, "7": 7, "08": 8, "010": 10, "-03": -3} {
		got, err := parseCoord(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "a", "0x1", "-", "1e"} {
		_, err := parseCoord(in)
		assert.Error(t, err, in)
	}
}

func TestPlayLocalLeadingZeros(t *testing.T) {
	srv := newTestServer(t)
	in := strings.NewReader("p 02 00\nq\n")
	var out bytes.Buffer

	require.NoError(t, PlayLocal(context.Background(), srv, 0, in, &out))
	assert.Contains(t, out.String(), "Player card (2,0) revealed: Rider")
	assert.NotContains(t, out.String(), "Coordinates must be numbers")
}

func TestPlayLocalEndOfInput(t *testing.T) {
	srv := newTestServer(t)
	var out bytes.Buffer
	err := PlayLocal(context.Background(), srv, 0, strings.NewReader("p 0 0\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[W]")
}

// pipeClient joins srv over a pipe and returns the JSON codec for the client side.
func pipeClient(t *testing.T, srv *Server) (*json.Encoder, *json.Decoder, chan error) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	t.Cleanup(func() { clientConn.Close() })
	done := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		done <- srv.Handle(context.Background(), serverConn)
	}()
	return json.NewEncoder(clientConn), json.NewDecoder(clientConn), done
}

func TestHandleProtocol(t *testing.T) {
	srv := newTestServer(t)
	enc, dec, done := pipeClient(t, srv)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin}))

	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgUpdate, msg.Type)
	assert.NotEmpty(t, msg.MatchID)
	require.NotNil(t, msg.State)
	assert.Equal(t, 3, msg.State.Width)
	assert.Empty(t, msg.Events)

	require.NoError(t, enc.Encode(ClientMessage{Type: "shout"}))
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "shout")

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSelect, Side: "middle"}))
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgError, msg.Type)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSelect, Side: "opponent", X: 2, Y: 0}))
	msg = ServerMessage{}
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgUpdate, msg.Type)
	assert.True(t, msg.Accepted)
	require.Len(t, msg.Events, 1)
	assert.Equal(t, "CardRevealed", msg.Events[0].Type)
	assert.Equal(t, "Opponent", msg.Events[0].Side)
	assert.Equal(t, "Archer", msg.Events[0].Card)

	card, ok := msg.State.Card(game.SideOpponent, 2, 0)
	require.True(t, ok)
	assert.Equal(t, "Archer", card.Type)

	select {
	case err := <-done:
		t.Fatalf("handler exited early: %v", err)
	default:
	}
}

func TestHandleRejectsMissingJoin(t *testing.T) {
	srv := newTestServer(t)
	enc, dec, done := pipeClient(t, srv)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgSelect, Side: "player"}))
	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Error(t, <-done)
}

func TestHandlePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: Small\n    width: 3\n    height: 2\n    seed: 5\n"), 0o644))

	logger, _ := test.NewNullLogger()
	srv := &Server{PresetFile: path, Logger: logger}
	enc, dec, done := pipeClient(t, srv)

	require.NoError(t, enc.Encode(ClientMessage{Type: MsgJoin, Preset: 1}))
	var msg ServerMessage
	require.NoError(t, dec.Decode(&msg))
	require.Equal(t, MsgUpdate, msg.Type)
	assert.Equal(t, 3, msg.State.Width)
	assert.Equal(t, 2, msg.State.Height)
	assert.Equal(t, 6, msg.State.Sides[game.SidePlayer].Alive)

	enc2, dec2, done2 := pipeClient(t, srv)
	require.NoError(t, enc2.Encode(ClientMessage{Type: MsgJoin, Preset: 4}))
	require.NoError(t, dec2.Decode(&msg))
	assert.Equal(t, MsgError, msg.Type)
	assert.Contains(t, msg.Error, "preset 4 not found")
	assert.Error(t, <-done2)

	_ = done
}

func TestServeOverTCP(t *testing.T) {
	srv := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin}))
	var msg ServerMessage
	require.NoError(t, json.NewDecoder(conn).Decode(&msg))
	assert.Equal(t, MsgUpdate, msg.Type)
	assert.Equal(t, "Player", msg.State.Active)

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	// The open connection is closed by the server, not left waiting for the peer.
	var after ServerMessage
	err = json.NewDecoder(conn).Decode(&after)
	assert.ErrorIs(t, err, io.EOF)
}

package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/peterkuimelis/skirmish/internal/game"
)

var errQuit = errors.New("quit")

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   *bufio.Reader
	out  io.Writer
}

// NewClient wraps an established connection. Commands are read from in and
// the board is drawn to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server, sends the preset choice, and runs the REPL on
// the terminal.
func Connect(ctx context.Context, addr string, preset int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	client := NewClient(conn, os.Stdin, os.Stdout)
	if err := client.Join(preset); err != nil {
		return err
	}
	fmt.Println("Connected!")
	return client.RunREPL(ctx)
}

// PlayLocal runs a match against srv in-process, joined over a pipe.
func PlayLocal(ctx context.Context, srv *Server, preset int, in io.Reader, out io.Writer) error {
	clientConn, serverConn := net.Pipe()
	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		errCh <- srv.Handle(ctx, serverConn)
	}()

	client := NewClient(clientConn, in, out)
	err := client.Join(preset)
	if err == nil {
		err = client.RunREPL(ctx)
	}
	clientConn.Close()
	serverErr := <-errCh
	if err != nil {
		return err
	}
	return serverErr
}

// Join sends the handshake.
func (c *Client) Join(preset int) error {
	if err := json.NewEncoder(c.conn).Encode(ClientMessage{Type: MsgJoin, Preset: preset}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}
	return nil
}

// RunREPL reads server messages and handles them interactively. It returns
// nil when the match ends or the user quits.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	sent := false

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case MsgUpdate:
			c.renderEvents(msg.Events)
			if sent && !msg.Accepted {
				fmt.Fprintln(c.out, "Ignored: that card cannot be opened now.")
			}
			if msg.State != nil {
				c.renderState(msg.State)
			}
			if msg.State != nil && msg.State.Over {
				continue // game_over follows
			}

		case MsgError:
			fmt.Fprintf(c.out, "Error: %s\n", msg.Error)

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil

		default:
			continue
		}

		sel, err := c.readSelection()
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := enc.Encode(sel); err != nil {
			return fmt.Errorf("send select: %w", err)
		}
		sent = true
	}
}

func (c *Client) renderEvents(events []EventView) {
	for _, ev := range events {
		fmt.Fprintf(c.out, "T%-3d #%-4d| %s\n", ev.Turn, ev.Seq, ev.Details)
	}
}

func (c *Client) renderState(s *game.Snapshot) {
	fmt.Fprintln(c.out)
	c.renderGrid(s, game.SideOpponent)
	fmt.Fprintln(c.out, "  ──────────────────────────")
	c.renderGrid(s, game.SidePlayer)

	info := fmt.Sprintf("Turn %d | %s | %s", s.Turn, s.Active, s.State)
	fmt.Fprintln(c.out, info)
}

func (c *Client) renderGrid(s *game.Snapshot, side game.Side) {
	ss := s.Sides[side]
	fmt.Fprintf(c.out, "  %s: %d left, %d known\n", strings.ToUpper(side.String()), ss.Alive, ss.Known)
	fmt.Fprint(c.out, "    ")
	for x := 0; x < s.Width; x++ {
		fmt.Fprintf(c.out, " %d ", x)
	}
	fmt.Fprintln(c.out)
	for y := 0; y < s.Height; y++ {
		fmt.Fprintf(c.out, "  %d ", y)
		for x := 0; x < s.Width; x++ {
			cs, _ := s.Card(side, x, y)
			fmt.Fprint(c.out, formatCell(cs))
		}
		fmt.Fprintln(c.out)
	}
}

func formatCell(cs game.CardSnapshot) string {
	switch {
	case !cs.Alive:
		return " . "
	case cs.Revealed && cs.Type != "":
		return "[" + cs.Type[:1] + "]"
	case cs.Known:
		return "[+]"
	default:
		return "[ ]"
	}
}

// readSelection prompts until the user enters "p X Y", "o X Y" or "q".
func (c *Client) readSelection() (ClientMessage, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return ClientMessage{}, errQuit
			}
			return ClientMessage{}, fmt.Errorf("read input: %w", err)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "q", "quit":
			return ClientMessage{}, errQuit
		case "h", "help", "?":
			fmt.Fprintln(c.out, "Commands: p X Y (open your card), o X Y (open an opponent card), q (quit)")
			continue
		}

		side, err := game.ParseSide(parts[0])
		if err != nil || len(parts) != 3 {
			fmt.Fprintln(c.out, "Unknown command. Enter p X Y, o X Y or q.")
			continue
		}
		x, errX := parseCoord(parts[1])
		y, errY := parseCoord(parts[2])
		if errX != nil || errY != nil {
			fmt.Fprintln(c.out, "Coordinates must be numbers.")
			continue
		}
		name := "player"
		if side == game.SideOpponent {
			name = "opponent"
		}
		return ClientMessage{Type: MsgSelect, Side: name, X: x, Y: y}, nil
	}
}

// parseCoord reads a decimal coordinate. Leading zeros are dropped so cast
// does not take "010" as octal.
func parseCoord(s string) (int, error) {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	digits := strings.TrimLeft(s, "0")
	if digits == "" && s != "" {
		digits = "0"
	}
	return cast.ToIntE(sign + digits)
}

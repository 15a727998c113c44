package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/session"
)

// Controller relays one client connection to a session: it reads "select"
// messages and answers each with an "update". The join handshake must be read
// through the same controller.
type Controller struct {
	conn  net.Conn
	enc   *json.Encoder
	dec   *json.Decoder
	sess  *session.Session
	entry *logrus.Entry
	mu    sync.Mutex
}

// NewController creates a controller for the given connection. entry may be nil.
func NewController(conn net.Conn, entry *logrus.Entry) *Controller {
	return &Controller{
		conn:  conn,
		enc:   json.NewEncoder(conn),
		dec:   json.NewDecoder(conn),
		entry: entry,
	}
}

// send sends a server message to the client.
func (c *Controller) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc.Encode(msg)
}

// recv reads a client message.
func (c *Controller) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := c.dec.Decode(&msg)
	return msg, err
}

// SendError reports a problem to the client without ending the match.
func (c *Controller) SendError(text string) error {
	return c.send(ServerMessage{Type: MsgError, Error: text})
}

func (c *Controller) sendUpdate(up session.Update) error {
	state := up.Snapshot
	return c.send(ServerMessage{
		Type:     MsgUpdate,
		MatchID:  c.sess.ID.String(),
		Accepted: up.Accepted,
		Events:   ViewEvents(up.Events),
		State:    &state,
	})
}

func (c *Controller) sendGameOver(up session.Update) error {
	loser := "Opponent"
	if up.Winner == "Opponent" {
		loser = "Player"
	}
	return c.send(ServerMessage{
		Type:    MsgGameOver,
		MatchID: c.sess.ID.String(),
		Winner:  up.Winner,
		Result:  fmt.Sprintf("%s wins! %s has no cards left.", up.Winner, loser),
	})
}

// Run sends the opening state of sess and serves selections until the match
// ends, the client disconnects or ctx is canceled. A clean disconnect
// returns nil.
func (c *Controller) Run(ctx context.Context, sess *session.Session) error {
	c.sess = sess
	up, err := sess.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := c.sendUpdate(up); err != nil {
		return fmt.Errorf("send update: %w", err)
	}

	for {
		msg, err := c.recv()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("recv: %w", err)
		}

		if msg.Type != MsgSelect {
			if err := c.SendError(fmt.Sprintf("unexpected message type %q", msg.Type)); err != nil {
				return fmt.Errorf("send error: %w", err)
			}
			continue
		}
		side, err := game.ParseSide(msg.Side)
		if err != nil {
			if err := c.SendError(err.Error()); err != nil {
				return fmt.Errorf("send error: %w", err)
			}
			continue
		}

		up, err := c.sess.Select(ctx, side, game.Position{X: msg.X, Y: msg.Y})
		if err != nil {
			_ = c.SendError(err.Error())
			return fmt.Errorf("select: %w", err)
		}
		if c.entry != nil && !up.Accepted {
			c.entry.WithFields(logrus.Fields{"side": side.String(), "x": msg.X, "y": msg.Y}).Debug("selection ignored")
		}
		if err := c.sendUpdate(up); err != nil {
			return fmt.Errorf("send update: %w", err)
		}
		if up.Over {
			if err := c.sendGameOver(up); err != nil {
				return fmt.Errorf("send game_over: %w", err)
			}
			return nil
		}
	}
}

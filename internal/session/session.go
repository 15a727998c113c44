// Package session runs a match on its own goroutine so that several callers
// (a TCP connection, a websocket, MCP tool calls) can drive it safely.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// ErrClosed is returned by calls on a session that has been closed.
var ErrClosed = errors.New("session closed")

// Update is what a caller gets back from a session call: the events produced
// since the previous update and a snapshot taken after them.
type Update struct {
	Accepted bool
	Events   []log.GameEvent
	Snapshot game.Snapshot
	Over     bool
	Winner   string
}

// eventSource is an event logger that can hand out the events since a point.
type eventSource interface {
	log.EventLogger
	Since(seq int) []log.GameEvent
	Seq() int
}

type commandKind int

const (
	cmdSelect commandKind = iota
	cmdSnapshot
)

type command struct {
	kind  commandKind
	side  game.Side
	pos   game.Position
	reply chan result
}

type result struct {
	update Update
	err    error
}

// Session owns one match. All access goes through a command channel served
// by a single goroutine.
type Session struct {
	ID uuid.UUID

	cmds      chan command
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	entry     *logrus.Entry
}

// New creates the match and starts its goroutine. Events are mirrored into
// diag at debug level when it is non-nil. cfg.Logger is replaced.
func New(cfg game.MatchConfig, diag *logrus.Logger) (*Session, error) {
	id := uuid.New()

	var events eventSource
	var entry *logrus.Entry
	if diag != nil {
		entry = diag.WithField("match", id.String())
		events = log.NewStructuredLogger(entry)
	} else {
		events = log.NewMemoryLogger()
	}
	cfg.Logger = events

	m, err := game.NewMatch(cfg)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:    id,
		cmds:  make(chan command),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		entry: entry,
	}
	if entry != nil {
		entry.WithFields(logrus.Fields{
			"width":  m.Board().Width,
			"height": m.Board().Height,
			"seed":   m.Seed(),
		}).Info("match started")
	}
	go s.loop(m, events)
	return s, nil
}

func (s *Session) loop(m *game.Match, events eventSource) {
	defer close(s.done)
	seq := events.Seq()
	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.cmds:
			var res result
			if cmd.kind == cmdSelect {
				wasOver := m.State() == game.GameOver
				res.update.Accepted, res.err = m.SelectCard(cmd.side, cmd.pos)
				if res.err != nil && s.entry != nil {
					s.entry.WithError(res.err).Error("select failed")
				}
				if !wasOver && m.State() == game.GameOver && s.entry != nil {
					winner, _ := m.Winner()
					s.entry.WithField("winner", winner.String()).Info("match ended")
				}
			}
			res.update.Events = events.Since(seq)
			seq = events.Seq()
			res.update.Snapshot = m.Snapshot()
			res.update.Over = res.update.Snapshot.Over
			res.update.Winner = res.update.Snapshot.Winner
			cmd.reply <- res
		}
	}
}

// Select opens the card of side at pos. See game.Match.SelectCard.
func (s *Session) Select(ctx context.Context, side game.Side, pos game.Position) (Update, error) {
	return s.do(ctx, command{kind: cmdSelect, side: side, pos: pos})
}

// Snapshot returns the current state and any events not yet handed out.
func (s *Session) Snapshot(ctx context.Context) (Update, error) {
	return s.do(ctx, command{kind: cmdSnapshot})
}

func (s *Session) do(ctx context.Context, cmd command) (Update, error) {
	cmd.reply = make(chan result, 1)
	select {
	case s.cmds <- cmd:
	case <-s.quit:
		return Update{}, ErrClosed
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
	select {
	case res := <-cmd.reply:
		return res.update, res.err
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
}

// Close stops the session goroutine and waits for it to exit. It is safe to
// call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

// Done is closed once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

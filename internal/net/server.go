package net

import (
	"context"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/session"
)

// Server hosts matches for TCP clients, one match per connection.
type Server struct {
	PresetFile string
	Port       string

	// Defaults configures matches joined with preset 0. A Rand or Planner set
	// here is shared by every match, so only set them for a single client.
	Defaults game.MatchConfig

	// Registry, when set, tracks the sessions of live connections.
	Registry *session.Registry

	Logger *logrus.Logger
}

func (s *Server) logger() *logrus.Logger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

// Run listens on Port and serves every client that connects until ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. It closes ln, and
// canceling ctx also closes every accepted connection.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.logger().WithField("addr", ln.Addr().String()).Info("waiting for players")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go func() {
			defer conn.Close()
			stop := context.AfterFunc(ctx, func() { conn.Close() })
			defer stop()
			entry := s.logger().WithField("remote", conn.RemoteAddr().String())
			entry.Info("player connected")
			if err := s.Handle(ctx, conn); err != nil {
				entry.WithError(err).Warn("connection ended with error")
				return
			}
			entry.Info("player left")
		}()
	}
}

// Handle reads the join message from conn, starts a match and relays it until
// it ends. It does not close conn.
func (s *Server) Handle(ctx context.Context, conn net.Conn) error {
	c := NewController(conn, s.logger().WithField("remote", conn.RemoteAddr().String()))

	join, err := c.recv()
	if err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if join.Type != MsgJoin {
		_ = c.SendError(fmt.Sprintf("expected %q message, got %q", MsgJoin, join.Type))
		return fmt.Errorf("expected join message, got %q", join.Type)
	}

	cfg, err := s.matchConfig(join.Preset)
	if err != nil {
		_ = c.SendError(err.Error())
		return err
	}

	sess, err := s.startSession(cfg)
	if err != nil {
		_ = c.SendError(err.Error())
		return fmt.Errorf("start match: %w", err)
	}
	defer s.endSession(sess)

	return c.Run(ctx, sess)
}

func (s *Server) matchConfig(preset int) (game.MatchConfig, error) {
	if preset == 0 {
		return s.Defaults, nil
	}
	p, err := game.PresetByNumber(s.PresetFile, preset)
	if err != nil {
		return game.MatchConfig{}, fmt.Errorf("load preset: %w", err)
	}
	cfg := p.MatchConfig()
	if cfg.Seed == 0 {
		cfg.Seed = s.Defaults.Seed
	}
	return cfg, nil
}

func (s *Server) startSession(cfg game.MatchConfig) (*session.Session, error) {
	if s.Registry != nil {
		return s.Registry.Create(cfg)
	}
	return session.New(cfg, s.logger())
}

func (s *Server) endSession(sess *session.Session) {
	if s.Registry != nil {
		s.Registry.Remove(sess.ID)
		return
	}
	sess.Close()
}

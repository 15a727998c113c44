package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
	"github.com/peterkuimelis/skirmish/internal/session"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	MatchID  string                  `json:"match_id"`
	Events   []skirmishnet.EventView `json:"events"`
	State    *game.Snapshot          `json:"state,omitempty"`
	Accepted bool                    `json:"accepted"`
	GameOver bool                    `json:"game_over"`
	Winner   string                  `json:"winner,omitempty"`
}

// Tools holds the single match an MCP stdio process plays.
type Tools struct {
	PresetFile string
	Logger     *logrus.Logger

	mu     sync.Mutex
	active *session.Session
}

func NewTools(presetFile string, logger *logrus.Logger) *Tools {
	return &Tools{PresetFile: presetFile, Logger: logger}
}

// start begins a new match unless one is already running.
func (t *Tools) start(ctx context.Context, cfg game.MatchConfig) (*ToolResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return nil, fmt.Errorf("a match is already running; use end_match first")
	}
	sess, err := session.New(cfg, t.Logger)
	if err != nil {
		return nil, err
	}
	up, err := sess.Snapshot(ctx)
	if err != nil {
		sess.Close()
		return nil, err
	}
	t.active = sess
	return toolResponse(sess, up), nil
}

// current returns the running match.
func (t *Tools) current() (*session.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil, fmt.Errorf("no match is running; use start_match first")
	}
	return t.active, nil
}

// finish closes sess if it is still the running match.
func (t *Tools) finish(sess *session.Session) {
	t.mu.Lock()
	if t.active == sess {
		t.active = nil
	}
	t.mu.Unlock()
	sess.Close()
}

func toolResponse(sess *session.Session, up session.Update) *ToolResponse {
	state := up.Snapshot
	return &ToolResponse{
		MatchID:  sess.ID.String(),
		Events:   skirmishnet.ViewEvents(up.Events),
		State:    &state,
		Accepted: up.Accepted,
		GameOver: up.Over,
		Winner:   up.Winner,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}

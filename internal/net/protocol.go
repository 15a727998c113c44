package net

import (
	"github.com/peterkuimelis/skirmish/internal/game"
	"github.com/peterkuimelis/skirmish/internal/log"
)

// Message types for the JSON protocol over TCP and websocket.

const (
	MsgUpdate   = "update"
	MsgGameOver = "game_over"
	MsgError    = "error"

	MsgJoin   = "join"
	MsgSelect = "select"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id,omitempty"`

	// For "update"
	Accepted bool           `json:"accepted,omitempty"`
	Events   []EventView    `json:"events,omitempty"`
	State    *game.Snapshot `json:"state,omitempty"`

	// For "game_over"
	Winner string `json:"winner,omitempty"`
	Result string `json:"result,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// EventView is a game event as sent to clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Turn    int    `json:"turn"`
	Type    string `json:"type"`
	Side    string `json:"side"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ViewEvent converts a logged event for the wire.
func ViewEvent(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Type:    e.Type.String(),
		Side:    log.SideName(e.Side),
		X:       e.X,
		Y:       e.Y,
		Card:    e.CardType,
		Details: e.Details,
	}
}

// ViewEvents converts a batch of events; the result is never nil.
func ViewEvents(events []log.GameEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, ViewEvent(e))
	}
	return views
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "join" (initial handshake); 0 uses the server defaults
	Preset int `json:"preset,omitempty"`

	// For "select"
	Side string `json:"side,omitempty"` // "player" or "opponent"
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

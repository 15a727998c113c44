package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/skirmish/internal/game"
)

// RegisterTools adds all match tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startMatchTool(), t.handleStartMatch)
	s.AddTool(selectCardTool(), t.handleSelectCard)
	s.AddTool(getMatchStateTool(), t.handleGetMatchState)
	s.AddTool(endMatchTool(), t.handleEndMatch)
}

// --- Tool definitions ---

func startMatchTool() mcp.Tool {
	return mcp.NewTool("start_match",
		mcp.WithDescription("Start a new skirmish match as the player against the built-in opponent. "+
			"Each side has a hidden grid of Warrior, Archer and Rider cards. Warrior beats Rider, Rider beats Archer, "+
			"Archer beats Warrior. Returns the match state."),
		mcp.WithNumber("preset", mcp.Description("Preset number (1-indexed from presets.yaml); overrides width/height/seed")),
		mcp.WithNumber("width", mcp.Description("Grid columns per side (default 6)")),
		mcp.WithNumber("height", mcp.Description("Grid rows per side (default 6); width*height must be a multiple of 3")),
		mcp.WithNumber("seed", mcp.Description("Seed for dealing and the opponent; 0 for random")),
	)
}

func selectCardTool() mcp.Tool {
	return mcp.NewTool("select_card",
		mcp.WithDescription("Open one card. On your turn open one of your cards and one of the opponent's, in either order; "+
			"the pair resolves as soon as both are open and the opponent then plays its turn. "+
			"Ignored selections return accepted=false."),
		mcp.WithString("side", mcp.Required(), mcp.Description("Whose card to open: 'player' or 'opponent'")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("0-based column")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("0-based row")),
	)
}

func getMatchStateTool() mcp.Tool {
	return mcp.NewTool("get_match_state",
		mcp.WithDescription("Get the current match state and any events not yet returned. Read-only."),
	)
}

func endMatchTool() mcp.Tool {
	return mcp.NewTool("end_match",
		mcp.WithDescription("Abandon the running match so a new one can be started."),
	)
}

// --- Tool handlers ---

func (t *Tools) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := game.MatchConfig{
		Width:  request.GetInt("width", 0),
		Height: request.GetInt("height", 0),
		Seed:   int64(request.GetInt("seed", 0)),
	}
	if preset := request.GetInt("preset", 0); preset > 0 {
		p, err := game.PresetByNumber(t.PresetFile, preset)
		if err != nil {
			return mcp.NewToolResultErrorf("Failed to load preset: %v", err), nil
		}
		cfg = p.MatchConfig()
	}

	resp, err := t.start(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start match: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleSelectCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	side, err := game.ParseSide(request.GetString("side", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Invalid side: %v. Use 'player' or 'opponent'.", err), nil
	}
	x := request.GetInt("x", -1)
	y := request.GetInt("y", -1)
	if x < 0 || y < 0 {
		return mcp.NewToolResultError("x and y must be non-negative integers."), nil
	}

	up, err := sess.Select(ctx, side, game.Position{X: x, Y: y})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return mcp.NewToolResultErrorf("Request canceled: %v", err), nil
	}
	if err != nil {
		t.finish(sess)
		return mcp.NewToolResultErrorf("Match failed: %v", err), nil
	}
	resp := toolResponse(sess, up)
	if up.Over {
		t.finish(sess)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	up, err := sess.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error reading match: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(toolResponse(sess, up))), nil
}

func (t *Tools) handleEndMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.current()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t.finish(sess)
	return mcp.NewToolResultText("Match ended."), nil
}

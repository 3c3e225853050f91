package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/facts"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const version = "1.0.0"

// Server exposes the deterministic fact functions as MCP tools over stdio.
type Server struct {
	mcp    *server.MCPServer
	stdin  io.Reader
	stdout io.Writer
}

func NewServer(stdin io.Reader, stdout io.Writer) *Server {
	s := server.NewMCPServer(core.AppName, version, server.WithToolCapabilities(false))
	registerTools(s)
	return &Server{mcp: s, stdin: stdin, stdout: stdout}
}

// MCP returns the underlying server, for in-process clients.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Start serves until stdin closes or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, s.stdin, s.stdout)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func registerTools(s *server.MCPServer) {
	s.AddTool(mcpproto.NewTool("normalize_date",
		mcpproto.WithDescription("Parse a date written as day-month-year, month-day-year or year-month-day into its canonical YYYY-MM-DD form."),
		mcpproto.WithString("date", mcpproto.Required(), mcpproto.Description("Date such as 29/11/1999 or 1999-11-29")),
	), normalizeDate)

	s.AddTool(mcpproto.NewTool("life_path_number",
		mcpproto.WithDescription("Numerology life path number (1-9, 11, 22 or 33) of a birth date."),
		mcpproto.WithString("birth_date", mcpproto.Required(), mcpproto.Description("Birth date")),
	), lifePathNumber)

	s.AddTool(mcpproto.NewTool("zodiac_sign",
		mcpproto.WithDescription("Western sun sign of a birth date, with its Vietnamese name."),
		mcpproto.WithString("birth_date", mcpproto.Required(), mcpproto.Description("Birth date")),
	), zodiacSign)

	s.AddTool(mcpproto.NewTool("tarot_topic",
		mcpproto.WithDescription("Classify a tarot question as general, love, work, health or relationship."),
		mcpproto.WithString("question", mcpproto.Required(), mcpproto.Description("The querent's question")),
	), tarotTopic)
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcpproto.NewToolResultText(string(b)), nil
}

func parseDateArg(req mcpproto.CallToolRequest, name string) (core.Date, *mcpproto.CallToolResult) {
	raw, err := req.RequireString(name)
	if err != nil {
		return core.Date{}, mcpproto.NewToolResultError(err.Error())
	}
	d, err := facts.NormalizeDate(raw)
	if err != nil {
		return core.Date{}, mcpproto.NewToolResultError(fmt.Sprintf("%s: %q", err, raw))
	}
	return d, nil
}

func normalizeDate(_ context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	d, errResult := parseDateArg(req, "date")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(map[string]string{
		"canonical": d.Canonical(),
		"display":   d.Display(),
	})
}

func lifePathNumber(_ context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	d, errResult := parseDateArg(req, "birth_date")
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(map[string]string{
		"birth_date": d.Canonical(),
		"life_path":  facts.LifePathNumber(d.Day, d.Month, d.Year),
	})
}

func zodiacSign(_ context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	d, errResult := parseDateArg(req, "birth_date")
	if errResult != nil {
		return errResult, nil
	}
	sign := facts.ZodiacSign(d.Day, d.Month)
	return jsonResult(map[string]string{
		"birth_date": d.Canonical(),
		"sign":       sign.String(),
		"name_vi":    sign.KnowledgeName(),
	})
}

func tarotTopic(_ context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	q, err := req.RequireString("question")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{"topic": string(facts.ClassifyTopic(q))})
}

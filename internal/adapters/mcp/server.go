// Package mcp exposes the converter as a Model Context Protocol tool server.
// The same server runs over stdio for local assistants or over in-memory
// transports in tests.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// Identifiers advertised to MCP clients.
const (
	ServerName = "numeral-service"
	ToolName   = "roman_numeral"
)

// ConvertInput is the argument object of the roman_numeral tool.
type ConvertInput struct {
	Value int `json:"value" jsonschema:"integer between 1 and 3999 to convert"`
}

// ConvertOutput is the structured result of the roman_numeral tool.
type ConvertOutput struct {
	Value   int    `json:"value" jsonschema:"the converted integer"`
	Numeral string `json:"numeral" jsonschema:"canonical Roman numeral for value"`
}

// Server is an MCP server with the roman_numeral tool registered.
type Server struct {
	server    *gomcp.Server
	converter ports.ConverterService
	logger    *slog.Logger
}

// NewServer creates a Server that answers tool calls with converter.
// A nil logger discards logs.
func NewServer(converter ports.ConverterService, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		server:    gomcp.NewServer(&gomcp.Implementation{Name: ServerName, Version: version}, nil),
		converter: converter,
		logger:    logger,
	}
	gomcp.AddTool(s.server, convertTool(), s.convert)
	return s
}

// Serve runs the server on transport until ctx is canceled or the client
// disconnects. Cancellation is a normal exit and returns nil.
func (s *Server) Serve(ctx context.Context, transport gomcp.Transport) error {
	s.logger.InfoContext(ctx, "mcp server starting", slog.String("server", ServerName))

	err := s.server.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}

	s.logger.InfoContext(ctx, "mcp server stopped")
	return nil
}

func convertTool() *gomcp.Tool {
	return &gomcp.Tool{
		Name:        ToolName,
		Description: "Converts an integer between 1 and 3999 to its canonical Roman numeral",
	}
}

// convert handles roman_numeral calls. Errors returned here reach the client
// as a tool result with IsError set, so out-of-range input is reported to the
// model instead of failing the protocol exchange.
func (s *Server) convert(ctx context.Context, _ *gomcp.CallToolRequest, in ConvertInput) (*gomcp.CallToolResult, ConvertOutput, error) {
	n, err := s.converter.Convert(ctx, in.Value)
	if err != nil {
		s.logger.DebugContext(ctx, "tool call rejected",
			slog.String("tool", ToolName),
			slog.Int("value", in.Value),
			slog.Any("error", err),
		)
		return nil, ConvertOutput{}, err
	}
	return nil, ConvertOutput{Value: in.Value, Numeral: n.String()}, nil
}

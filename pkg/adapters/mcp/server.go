package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/kefschema/internal/logging"
	"github.com/aretw0/kefschema/pkg/domain"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/aretw0/kefschema/pkg/openapi"
	"github.com/aretw0/kefschema/pkg/ports"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/aretw0/kefschema/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServicesURI is the resource holding the descriptor document.
const ServicesURI = "kefschema://services"

// Server exposes every registry action as an MCP tool.
type Server struct {
	registry   *registry.Registry
	dispatcher ports.Dispatcher
	metrics    *observability.Metrics
	logger     *slog.Logger
	tools      []mcp.Tool
	mcpServer  *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics counts tool-call validations.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// NewServer creates an MCP server forwarding valid tool calls to dispatcher.
func NewServer(reg *registry.Registry, dispatcher ports.Dispatcher, version string, opts ...Option) *Server {
	s := &Server{
		registry:   reg,
		dispatcher: dispatcher,
		logger:     logging.NewNop(),
		mcpServer:  server.NewMCPServer("kefschema-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// Tools returns the registered tool definitions in action order.
func (s *Server) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), s.tools...)
}

func (s *Server) registerTools() {
	for _, def := range s.registry.Actions() {
		tool := NewTool(def)
		s.tools = append(s.tools, tool)
		s.mcpServer.AddTool(tool, s.handler(def))
	}
}

// NewTool maps an action to a tool definition.
func NewTool(def domain.ActionDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Description)}
	for _, f := range def.Fields {
		opts = append(opts, property(f))
	}
	return mcp.NewTool(def.Name, opts...)
}

func property(f domain.FieldDefinition) mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(f.Description)}
	if !f.Optional() {
		props = append(props, mcp.Required())
	}

	switch f.Kind {
	case domain.FieldEntity:
		props = append(props, mcp.Pattern(openapi.EntityPattern))
		return mcp.WithString(f.Name, props...)
	case domain.FieldBoolean:
		return mcp.WithBoolean(f.Name, props...)
	case domain.FieldNumber:
		if b := f.Bounds; b != nil {
			props = append(props, mcp.Min(b.Min), mcp.Max(b.Max))
			if step, ok := b.MultipleOf(); ok {
				props = append(props, mcp.MultipleOf(step))
			}
		}
		return mcp.WithNumber(f.Name, props...)
	default:
		if len(f.Options) > 0 {
			props = append(props, mcp.Enum(f.Options...))
		}
		return mcp.WithString(f.Name, props...)
	}
}

func (s *Server) handler(def domain.ActionDefinition) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.call(ctx, def, request.GetArguments())
	}
}

func (s *Server) call(ctx context.Context, def domain.ActionDefinition, args map[string]any) (*mcp.CallToolResult, error) {
	if args == nil {
		args = map[string]any{}
	}

	err := schema.ValidateInvocation(def, args)
	s.metrics.ObserveValidation(def.Name, err == nil)
	if err != nil {
		s.logger.Warn("MCP tool call rejected", "action", def.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.dispatcher.Dispatch(ctx, def.Name, args); err != nil {
		s.logger.Error("MCP dispatch failed", "action", def.Name, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", def.Name, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s dispatched", def.Name)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(ServicesURI, "KEF service descriptor",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.registry.Actions())
		if err != nil {
			return nil, fmt.Errorf("encoding services: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      ServicesURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

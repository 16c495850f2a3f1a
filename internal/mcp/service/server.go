// Package service wires the pump.fun tools into an MCP server and serves it
// over stdio or HTTP.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "PumpFun MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over JSON-RPC POST requests and SSE.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	RPCEndpoint    string
	KeysDir        string
	DefaultAccount string
	Transport      TransportKind
	HTTPAddr       string // bind address for the HTTP transport
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server backed by the keypair store at
// cfg.KeysDir and the RPC node at cfg.RPCEndpoint.
func New(cfg Config) *Server {
	store := keystore.New(cfg.KeysDir)
	provider := chain.NewProvider(cfg.RPCEndpoint)
	trader := pumpfun.New(provider, store)

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, store, provider, trader, cfg.DefaultAccount)
	registerResources(mcpServer, store)

	return &Server{mcpServer: mcpServer}
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server := New(cfg)
	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		transport := NewHTTPTransport(cfg.HTTPAddr, server.mcpServer)
		return transport.Start(ctx)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
// A context cancellation is a clean shutdown, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

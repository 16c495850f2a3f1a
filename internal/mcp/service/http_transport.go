package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// sessionHeader carries the session identifier between client and server.
const sessionHeader = "X-MCP-Session-ID"

const (
	// sessionIdleTimeout is how long a session may go untouched before the
	// sweeper closes it and drops it from the session map.
	sessionIdleTimeout = 30 * time.Minute

	// sessionSweepPeriod is how often idle sessions are evicted.
	sessionSweepPeriod = time.Minute
)

// HTTPTransport serves MCP over HTTP: JSON-RPC messages arrive as POST
// bodies, streamed server messages leave as Server-Sent Events. Each client
// session gets its own channel-backed mcp.Connection with a dedicated
// server.Run loop.
type HTTPTransport struct {
	addr   string
	server *mcp.Server

	mu       sync.Mutex
	sessions map[string]*httpSession

	serverCtx    context.Context
	serverCancel context.CancelFunc
}

// httpSession is one client's connection plus the bookkeeping around it.
type httpSession struct {
	id       string
	reqChan  chan jsonrpc.Message
	respChan chan jsonrpc.Message
	closed   chan struct{}
	lastUsed time.Time

	closeOnce sync.Once
	runOnce   sync.Once
}

// NewHTTPTransport creates an HTTP transport for the given MCP server.
// An empty addr binds to localhost only.
func NewHTTPTransport(addr string, server *mcp.Server) *HTTPTransport {
	if addr == "" {
		addr = "localhost:8081"
	}
	return &HTTPTransport{
		addr:     addr,
		server:   server,
		sessions: make(map[string]*httpSession),
	}
}

// Start runs the HTTP server until the context ends.
func (t *HTTPTransport) Start(ctx context.Context) error {
	t.serverCtx, t.serverCancel = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp/messages", t.handleMessages)
	mux.HandleFunc("/mcp/sse", t.handleSSE)
	mux.HandleFunc("/mcp/health", t.handleHealth)

	httpServer := &http.Server{Addr: t.addr, Handler: mux}

	go t.sweepIdleSessions()

	log.Printf("serving MCP over HTTP on %s", t.addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		t.serverCancel()
		return nil
	case err := <-errChan:
		t.serverCancel()
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// session returns the session for id, or creates a fresh one when id is
// empty or unknown.
func (t *HTTPTransport) session(id string) *httpSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.sessions[id]; ok {
		s.lastUsed = time.Now()
		return s
	}
	s := &httpSession{
		id:       newSessionID(),
		reqChan:  make(chan jsonrpc.Message, 10),
		respChan: make(chan jsonrpc.Message, 10),
		closed:   make(chan struct{}),
		lastUsed: time.Now(),
	}
	t.sessions[s.id] = s
	return s
}

// sweepIdleSessions evicts idle sessions every sessionSweepPeriod until the
// transport shuts down.
func (t *HTTPTransport) sweepIdleSessions() {
	ticker := time.NewTicker(sessionSweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-t.serverCtx.Done():
			return
		case now := <-ticker.C:
			t.evictIdleSessions(now)
		}
	}
}

// evictIdleSessions closes and removes every session that has been idle
// longer than sessionIdleTimeout.
func (t *HTTPTransport) evictIdleSessions(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, s := range t.sessions {
		if now.Sub(s.lastUsed) > sessionIdleTimeout {
			s.Close()
			delete(t.sessions, id)
		}
	}
}

// run starts the MCP server loop for the session exactly once.
func (t *HTTPTransport) run(s *httpSession) {
	s.runOnce.Do(func() {
		go func() {
			_ = t.server.Run(t.serverCtx, sessionTransport{conn: s})
		}()
	})
}

// handleMessages handles POST /mcp/messages for JSON-RPC requests.
func (t *HTTPTransport) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("read request: %v", err), http.StatusBadRequest)
		return
	}
	msg, err := decodeMessage(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON-RPC message: %v", err), http.StatusBadRequest)
		return
	}

	session := t.session(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, session.id)
	t.run(session)

	select {
	case session.reqChan <- msg:
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	if !expectsResponse(msg) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	select {
	case resp := <-session.respChan:
		w.Header().Set("Content-Type", "application/json")
		data, err := jsonrpc.EncodeMessage(resp)
		if err != nil {
			http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
			return
		}
		w.Write(data)
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
	}
}

// handleSSE handles GET /mcp/sse, streaming server messages for a session.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := t.session(r.URL.Query().Get("session"))
	t.run(session)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(sessionHeader, session.id)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-session.closed:
			return
		case msg := <-session.respChan:
			data, err := jsonrpc.EncodeMessage(msg)
			if err != nil {
				log.Printf("marshal SSE message: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// handleHealth handles GET /mcp/health.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Read implements mcp.Connection. It delivers messages posted over HTTP.
func (s *httpSession) Read(ctx context.Context) (jsonrpc.Message, error) {
	select {
	case msg := <-s.reqChan:
		return msg, nil
	case <-s.closed:
		return nil, fmt.Errorf("session %s closed", s.id)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write implements mcp.Connection. Responses are picked up by the pending
// POST handler or the SSE stream.
func (s *httpSession) Write(ctx context.Context, msg jsonrpc.Message) error {
	select {
	case s.respChan <- msg:
		return nil
	case <-s.closed:
		return fmt.Errorf("session %s closed", s.id)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements mcp.Connection.
func (s *httpSession) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

// SessionID implements mcp.Connection.
func (s *httpSession) SessionID() string {
	return s.id
}

// sessionTransport hands a pre-existing session connection to server.Run.
type sessionTransport struct {
	conn mcp.Connection
}

// Connect implements mcp.Transport.
func (st sessionTransport) Connect(ctx context.Context) (mcp.Connection, error) {
	return st.conn, nil
}

// decodeMessage parses one JSON-RPC message from a request body.
func decodeMessage(body []byte) (jsonrpc.Message, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("body is not valid JSON")
	}
	return jsonrpc.DecodeMessage(body)
}

// expectsResponse reports whether the message is a request that will produce
// a response, as opposed to a notification.
func expectsResponse(msg jsonrpc.Message) bool {
	req, ok := msg.(*jsonrpc.Request)
	if !ok {
		return false
	}
	return req.ID != jsonrpc.ID{}
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf[:])
}

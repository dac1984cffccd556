package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guidant/guidant/commands"
	"github.com/guidant/guidant/utils"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603

	// Server error: the method ran and failed
	ErrCodeServerError = -32000
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// DefaultAddress is where the server listens when --listen is not given.
const DefaultAddress = "localhost:5001"

// screenshotCacheSize bounds how many recent captures stay fetchable
// through GET /screenshots/{id}.
const screenshotCacheSize = 16

var okResponse = map[string]interface{}{"status": "ok"}

// Options configure a Server.
type Options struct {
	EnableCORS bool
	// Token, when set, must be presented as a bearer token on every
	// endpoint except the banner.
	Token string
	// ScreenshotDir is where POST /screenshot writes when the request
	// names no path or a relative one. Defaults to the working directory.
	ScreenshotDir string
}

type storedScreenshot struct {
	format string
	data   []byte
}

// Server exposes the screenshot and click capabilities over HTTP.
type Server struct {
	opts     Options
	shots    *lru.Cache[string, storedScreenshot]
	shutdown chan struct{}
	once     sync.Once
}

func New(opts Options) (*Server, error) {
	if opts.ScreenshotDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		opts.ScreenshotDir = wd
	}

	shots, err := lru.New[string, storedScreenshot](screenshotCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create screenshot cache: %w", err)
	}

	return &Server{
		opts:     opts,
		shots:    shots,
		shutdown: make(chan struct{}),
	}, nil
}

// Handler returns the full route table wrapped in the configured
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", sendBanner)
	mux.HandleFunc("POST /rpc", s.handleJSONRPC)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /screenshot", s.handleScreenshotREST)
	mux.HandleFunc("GET /screenshots/{id}", s.handleStoredScreenshot)
	mux.HandleFunc("POST /click", s.handleClickREST)

	var handler http.Handler = s.guard(mux)
	if s.opts.Token != "" {
		handler = authMiddleware(s.opts.Token, handler)
	}
	if s.opts.EnableCORS {
		handler = corsMiddleware(handler)
	}
	return handler
}

// ShutdownRequested is closed once a client calls server.shutdown.
func (s *Server) ShutdownRequested() <-chan struct{} {
	return s.shutdown
}

func (s *Server) requestShutdown() {
	s.once.Do(func() {
		close(s.shutdown)
	})
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NormalizeAddress accepts "host:port", ":port" or a bare port number.
func NormalizeAddress(addr string) (string, error) {
	if addr == "" {
		return DefaultAddress, nil
	}

	// if host is missing, default to all interfaces
	if !strings.Contains(addr, ":") {
		port, err := strconv.Atoi(addr)
		if err != nil {
			return "", fmt.Errorf("invalid port: %v", err)
		}
		addr = fmt.Sprintf(":%d", port)
	}
	return addr, nil
}

// StartServer listens on addr until the process is interrupted or a
// client calls server.shutdown.
func StartServer(addr string, opts Options) error {
	addr, err := NormalizeAddress(addr)
	if err != nil {
		return err
	}

	s, err := New(opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	if hook := commands.GetShutdownHook(); hook != nil {
		hook.Register("http-server", func() error {
			return shutdownGracefully(httpServer)
		})
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("Starting server on http://%s...", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-s.ShutdownRequested():
		utils.Info("Shutdown requested, stopping server")
		return shutdownGracefully(httpServer)
	}
}

func shutdownGracefully(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxRPCPayload))
	if err != nil {
		writeJSON(w, http.StatusOK, rpcFailure(nil, ErrCodeParseError, "Parse error", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, s.call("HTTP", payload))
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse)
}

package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guidant/guidant/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	tests := map[string]string{
		"":                    "http://localhost:5001",
		"12000":               "http://localhost:12000",
		":9000":               "http://localhost:9000",
		"0.0.0.0:13000":       "http://0.0.0.0:13000",
		"http://127.0.0.1:80": "http://127.0.0.1:80",
	}

	for in, want := range tests {
		assert.Equal(t, want, ServerURL(in), "ServerURL(%q)", in)
	}
}

func TestKillServer_SendsShutdown(t *testing.T) {
	var got server.JSONRPCRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(server.JSONRPCResponse{JSONRPC: "2.0", Result: map[string]string{"status": "ok"}, ID: 1})
	}))
	defer ts.Close()

	require.NoError(t, KillServer(ts.URL, "tok"))
	assert.Equal(t, "server.shutdown", got.Method)
	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, "Bearer tok", auth)
}

func TestKillServer_Errors(t *testing.T) {
	unauthorized := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer unauthorized.Close()
	assert.ErrorContains(t, KillServer(unauthorized.URL, ""), "401")

	rejected := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(server.JSONRPCResponse{JSONRPC: "2.0", Error: &server.JSONRPCError{Code: server.ErrCodeMethodNotFound, Message: "Method not found"}, ID: 1})
	}))
	defer rejected.Close()
	assert.ErrorContains(t, KillServer(rejected.URL, ""), "rejected")
}

func TestKillServer_NotRunning(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	assert.Error(t, KillServer(addr, ""))
}

func TestIsChild(t *testing.T) {
	t.Setenv(DaemonEnvVar, "1")
	assert.True(t, IsChild())

	t.Setenv(DaemonEnvVar, "")
	assert.False(t, IsChild())
}

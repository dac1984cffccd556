package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guidant/guidant/commands"
	"github.com/guidant/guidant/utils"
)

// maxRPCPayload caps a single JSON-RPC request, on either transport.
const maxRPCPayload = 1 << 20

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCError is the error member of a failed response.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("%s (%d): %v", e.Message, e.Code, e.Data)
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
	ID      interface{}   `json:"id"`
}

func rpcFailure(id interface{}, code int, message string, data interface{}) JSONRPCResponse {
	return JSONRPCResponse{
		JSONRPC: "2.0",
		Error:   &JSONRPCError{Code: code, Message: message, Data: data},
		ID:      id,
	}
}

// call decodes one request envelope, runs the method and builds the
// reply. /rpc and /ws both go through here; transport only labels logs.
func (s *Server) call(transport string, payload []byte) JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return rpcFailure(nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
	}

	switch {
	case req.JSONRPC != "2.0":
		return rpcFailure(req.ID, ErrCodeInvalidRequest, "Invalid Request", "'jsonrpc' must be '2.0'")
	case req.ID == nil:
		return rpcFailure(nil, ErrCodeInvalidRequest, "Invalid Request", "'id' field is required")
	case req.Method == "":
		return rpcFailure(req.ID, ErrCodeInvalidRequest, "Invalid Request", "'method' is required")
	}

	utils.Info("%s request ID: %v, Method: %s, Params: %s", transport, req.ID, req.Method, string(req.Params))

	handler, exists := s.methods()[req.Method]
	if !exists {
		return rpcFailure(req.ID, ErrCodeMethodNotFound, "Method not found", fmt.Sprintf("Method '%s' not found", req.Method))
	}

	result, err := handler(req.Params)
	if err != nil {
		utils.Warn("Error executing method %s: %v", req.Method, err)
		code, message := rpcErrorCode(err)
		return rpcFailure(req.ID, code, message, err.Error())
	}

	return JSONRPCResponse{JSONRPC: "2.0", Result: result, ID: req.ID}
}

// rpcErrorCode reports argument problems as invalid params and
// everything else as a server error.
func rpcErrorCode(err error) (int, string) {
	var cmdErr *commands.Error
	if errors.As(err, &cmdErr) && cmdErr.Kind == commands.KindUsage {
		return ErrCodeInvalidParams, "Invalid params"
	}
	if errors.Is(err, errInvalidParams) {
		return ErrCodeInvalidParams, "Invalid params"
	}
	return ErrCodeServerError, "Server error"
}

package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/guidant/guidant/utils"
)

// handleWebSocket serves JSON-RPC over a WebSocket, one text frame per
// request. Requests on a connection run in order, so replies come back
// in the order they were sent and only this loop writes to conn.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.opts.EnableCORS || isSameOrigin(r)
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxRPCPayload)

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			utils.Verbose("WebSocket connection closed: %v", err)
			return
		}

		reply := rpcFailure(nil, ErrCodeInvalidRequest, "Invalid Request", "only text messages accepted for requests")
		if kind == websocket.TextMessage {
			reply = s.call("WebSocket", payload)
		}

		if err := conn.WriteJSON(reply); err != nil {
			utils.Verbose("WebSocket write failed: %v", err)
			return
		}
	}
}

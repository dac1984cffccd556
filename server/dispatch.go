package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guidant/guidant/commands"
)

var errInvalidParams = errors.New("invalid parameters")

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// methods maps JSON-RPC method names to handlers. HTTP and WebSocket
// requests share it.
func (s *Server) methods() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"screenshot":      handleScreenshot,
		"click":           handleClick,
		"displays":        handleDisplays,
		"server.shutdown": s.handleShutdown,
	}
}

// Execute dispatches a method call without going through HTTP.
func (s *Server) Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := s.methods()[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

// ScreenshotParams represents the parameters for the screenshot request
type ScreenshotParams struct {
	Format  string `json:"format,omitempty"`  // "png" or "jpeg"
	Quality int    `json:"quality,omitempty"` // 1-100, only used for JPEG
	Path    string `json:"path,omitempty"`    // when set, save there instead of returning data
}

type ClickParams struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func handleScreenshot(params json.RawMessage) (interface{}, error) {
	var p ScreenshotParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidParams, err)
		}
	}

	data, resp, err := commands.Capture(commands.CaptureOptions{Format: p.Format, Quality: p.Quality})
	if err != nil {
		return nil, err
	}

	if p.Path != "" {
		if err := commands.WriteScreenshot(p.Path, data); err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"format": resp.Format,
			"width":  resp.Width,
			"height": resp.Height,
			"path":   p.Path,
		}, nil
	}

	return map[string]interface{}{
		"format": resp.Format,
		"width":  resp.Width,
		"height": resp.Height,
		"data":   commands.EncodeDataURL(resp.Format, data),
	}, nil
}

func handleClick(params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: 'params' is required with fields: x, y", errInvalidParams)
	}

	var p ClickParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("%w: %v. Expected fields: x, y", errInvalidParams, err)
	}

	if p.X == nil || p.Y == nil {
		return nil, fmt.Errorf("%w: 'x' and 'y' are required", errInvalidParams)
	}

	resp, err := commands.ClickCommand(commands.ClickRequest{X: *p.X, Y: *p.Y})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":  "ok",
		"message": resp.Message,
	}, nil
}

func handleDisplays(json.RawMessage) (interface{}, error) {
	response := commands.DisplaysCommand()
	if response.Status == "error" {
		return nil, fmt.Errorf("%s", response.Error)
	}
	return response.Data, nil
}

func (s *Server) handleShutdown(json.RawMessage) (interface{}, error) {
	s.requestShutdown()
	return okResponse, nil
}

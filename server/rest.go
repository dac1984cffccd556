package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/guidant/guidant/commands"
	"github.com/guidant/guidant/utils"
)

const defaultScreenshotName = "screenshot.png"

// REST request bodies are optional; an empty body means defaults.
type restScreenshotRequest struct {
	Path string `json:"path"`
}

type restClickRequest struct {
	X json.RawMessage `json:"x"`
	Y json.RawMessage `json:"y"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeOptionalBody decodes a JSON body into v; an empty body is fine.
func decodeOptionalBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleScreenshotREST(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var req restScreenshotRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "details": err.Error()})
		return
	}

	path := req.Path
	if path == "" {
		path = defaultScreenshotName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.opts.ScreenshotDir, path)
	}
	utils.Info("[%s] screenshot to %s", id, path)

	data, resp, err := commands.Capture(commands.CaptureOptions{Format: "png"})
	if err == nil {
		err = commands.WriteScreenshot(path, data)
	}
	if err != nil {
		utils.Warn("[%s] screenshot failed: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to take screenshot",
			"details": err.Error(),
		})
		return
	}

	s.shots.Add(id, storedScreenshot{format: resp.Format, data: data})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Screenshot taken successfully",
		"path":    path,
		"id":      id,
		"width":   resp.Width,
		"height":  resp.Height,
	})
}

func (s *Server) handleStoredScreenshot(w http.ResponseWriter, r *http.Request) {
	shot, ok := s.shots.Get(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "screenshot not found"})
		return
	}

	w.Header().Set("Content-Type", "image/"+shot.format)
	w.Header().Set("Content-Length", strconv.Itoa(len(shot.data)))
	_, _ = w.Write(shot.data)
}

func (s *Server) handleClickREST(w http.ResponseWriter, r *http.Request) {
	var req restClickRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body", "details": err.Error()})
		return
	}

	xs, okX := coordinateText(req.X)
	ys, okY := coordinateText(req.Y)
	if !okX || !okY {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y coordinates are required"})
		return
	}

	click, err := commands.ParseClickArgs([]string{xs, ys})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if _, err := commands.ClickCommand(click); err != nil {
		utils.Warn("click at (%v, %v) failed: %v", click.X, click.Y, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to perform click",
			"details": err.Error(),
		})
		return
	}

	// echo the values as the client sent them, not as the CLI formats them
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Clicked at (%s, %s)", xs, ys)})
}

// coordinateText turns a JSON number or numeric string into text for
// the CLI parser. A missing or null value reports false.
func coordinateText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

package server

import (
	"mime"
	"net/http"
	"net/url"

	"github.com/guidant/guidant/utils"
)

// guard turns away requests a page on another site could forge. A
// foreign Origin is refused unless CORS is enabled, and a POST must
// either carry no body or declare it as application/json.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.opts.EnableCORS && !isSameOrigin(r) {
			utils.Warn("Rejected %s %s from origin %s", r.Method, r.URL.Path, r.Header.Get("Origin"))
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "cross-origin requests are not allowed"})
			return
		}

		if r.Method == http.MethodPost && !isJSONBody(r) {
			writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "Content-Type must be application/json"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isSameOrigin accepts requests without an Origin header, which is what
// non-browser clients send.
func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return originURL.Host == r.Host
}

func isJSONBody(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return r.ContentLength == 0
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

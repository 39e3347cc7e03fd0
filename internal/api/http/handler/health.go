package handler

import "net/http"

// Health reports liveness.
type Health struct {
	version string
}

// NewHealth creates a new Health handler.
func NewHealth(version string) *Health {
	return &Health{version: version}
}

// Check returns a static healthy response.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "SkillPass API",
		"version": h.version,
	})
}

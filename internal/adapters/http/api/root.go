package api

import "net/http"

// RootHandler serves the service banner and the JSON 404.
type RootHandler struct {
	version string
}

// NewRootHandler creates a new root handler.
func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

type bannerResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleRoot handles GET / and every unmatched route.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Route not found"})
		return
	}
	writeJSON(w, http.StatusOK, bannerResponse{
		Message: "AI-Driven Software Architecture Decision System API",
		Status:  "Running",
		Version: h.version,
	})
}

package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the frontend files bundled next to the backend.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// Index serves the frontend entry page.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "index.html")
}

// Styles serves the frontend stylesheet.
func (h *StaticHandler) Styles(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "styles.css")
}

// App serves the frontend script.
func (h *StaticHandler) App(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, "app.js")
}

func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	path := filepath.Join(h.dir, name)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Frontend not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

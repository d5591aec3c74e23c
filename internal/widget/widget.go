// Package widget serves the embeddable hotel search page and its static assets.
package widget

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

// PagePath is where the widget page is mounted.
const PagePath = "/widget"

// PublicPrefix is where the static assets are mounted.
const PublicPrefix = "/public/"

const pageFile = "widget.html"

//go:embed public
var assets embed.FS

// Handler serves the widget page and the public directory.
type Handler struct {
	public fs.FS
}

// New creates a Handler backed by the embedded assets.
func New() (*Handler, error) {
	public, err := fs.Sub(assets, "public")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded assets: %w", err)
	}
	return NewWithFS(public)
}

// NewWithFS creates a Handler that serves files from fsys.
func NewWithFS(fsys fs.FS) (*Handler, error) {
	if _, err := fs.Stat(fsys, pageFile); err != nil {
		return nil, fmt.Errorf("widget page missing: %w", err)
	}
	return &Handler{public: fsys}, nil
}

// Page serves the widget HTML document.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, h.public, pageFile)
}

// Static serves files under PublicPrefix.
func (h *Handler) Static() http.Handler {
	return http.StripPrefix(PublicPrefix, http.FileServerFS(h.public))
}

// RedirectToPage sends the root path to the widget.
func RedirectToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PagePath, http.StatusFound)
}

package handlers

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

// Pages served at /<name> from <name>.html.
var Pages = []string{
	"admin", "products", "thcaproducts", "vapedevices", "ejuice", "vaporizers",
	"reviews", "topshelf",
	// brand pages
	"lostmarry", "north", "fogger", "geekbar", "breeze", "ijoy", "razz", "offstamp",
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".webp": "image/webp",
}

// SiteHandler serves the static website out of a directory.
type SiteHandler struct {
	root   fs.FS
	logger *slog.Logger
}

func NewSiteHandler(dir string, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{root: os.DirFS(dir), logger: logger}
}

// Register adds the page routes and the asset catch-all. It must run after
// every API route is registered.
func (h *SiteHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.page("index")).Methods(http.MethodGet, http.MethodHead)
	for _, p := range Pages {
		r.HandleFunc("/"+p, h.page(p)).Methods(http.MethodGet, http.MethodHead)
	}
	r.PathPrefix("/").HandlerFunc(h.Asset).Methods(http.MethodGet, http.MethodHead)
}

func (h *SiteHandler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.serve(w, r, name+".html") {
			notFound(w, r)
		}
	}
}

// Asset serves any other file under the site directory.
func (h *SiteHandler) Asset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if fs.ValidPath(name) && name != "." && h.serve(w, r, name) {
		return
	}

	if _, ok := imageTypes[strings.ToLower(path.Ext(name))]; ok {
		h.logger.Debug("image not found", "path", r.URL.Path)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	notFound(w, r)
}

// serve writes the file and reports whether it existed.
func (h *SiteHandler) serve(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		return false
	}

	if ct, ok := imageTypes[strings.ToLower(path.Ext(name))]; ok {
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "public, max-age=31536000")
	}
	http.ServeContent(w, r, name, info.ModTime(), content)
	return true
}

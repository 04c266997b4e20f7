package presentation

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// The calendar dashboard: index.html plus the app.css and app.js it loads
// from /static/. The page talks to the JSON routes under /api/calendar.
//
//go:embed web/*
var dashboardFS embed.FS

var dashboard = mustSub(dashboardFS, "web")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// MountStatic serves the dashboard page at / and its assets under /static/.
func MountStatic(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, dashboard, "index.html")
	})
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(dashboard))))
}

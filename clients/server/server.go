// Package server provides the fluf web gallery and its HTTP API.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"time"

	"github.com/xob0t/fluf/pkg/config"
	"github.com/xob0t/fluf/pkg/export"
	"github.com/xob0t/fluf/pkg/gallery"
	"github.com/xob0t/fluf/pkg/style"
	"github.com/xob0t/fluf/pkg/wallpaper"
)

//go:embed web/*
var webContent embed.FS

const shutdownTimeout = 5 * time.Second

// ── Server ──

type srv struct {
	cfg   config.Config
	log   *slog.Logger
	cache *renderCache
	now   func() time.Time
}

// New returns the gallery handler: the JSON and image API under /api and
// the embedded web page at /.
func New(cfg config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &srv{
		cfg:   cfg,
		log:   logger,
		cache: newRenderCache(),
		now:   time.Now,
	}

	webFS, err := fs.Sub(webContent, "web")
	if err != nil {
		panic(fmt.Sprintf("embed web: %v", err))
	}

	mux := http.NewServeMux()

	// API routes.
	mux.HandleFunc("GET /api/styles", s.handleStyles)
	mux.HandleFunc("GET /api/styles/{slug}/thumbnail", s.handleThumbnail)
	mux.HandleFunc("GET /api/styles/{slug}/wallpaper", s.handleWallpaper)
	mux.HandleFunc("GET /api/styles/{slug}/download", s.handleDownload)
	mux.HandleFunc("GET /api/sheet", s.handleSheet)

	// Static files.
	mux.Handle("GET /", http.FileServer(http.FS(webFS)))

	return logRequests(logger, mux)
}

// RunServe serves the gallery on cfg.Server.Listen until ctx is done, then
// shuts down gracefully.
func RunServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Listen, err)
	}

	url := "http://" + browserAddr(ln.Addr())
	logger.Info("fluf gallery listening", "url", url)
	if cfg.Server.OpenBrowser {
		go openBrowser(url, logger)
	}

	hs := &http.Server{
		Handler:           New(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		logger.Info("fluf gallery shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// ── Catalog ──

func (s *srv) handleStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(style.Catalog()); err != nil {
		s.log.Warn("encode styles", "err", err)
	}
}

// lookup resolves the {slug} path value or writes a 404.
func (s *srv) lookup(w http.ResponseWriter, r *http.Request) (style.Style, bool) {
	st, ok := style.Lookup(r.PathValue("slug"))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown style %q", r.PathValue("slug")), http.StatusNotFound)
	}
	return st, ok
}

// ── Images ──

func (s *srv) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	st, ok := s.lookup(w, r)
	if !ok {
		return
	}
	data, err := s.cache.get("thumb/"+st.Slug(), func() ([]byte, error) {
		return renderPNG(st, s.cfg.Thumb.Width, s.cfg.Thumb.Height)
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writePNG(w, data)
}

func (s *srv) handleWallpaper(w http.ResponseWriter, r *http.Request) {
	data, _, ok := s.renderFull(w, r)
	if !ok {
		return
	}
	writePNG(w, data)
}

func (s *srv) handleDownload(w http.ResponseWriter, r *http.Request) {
	data, st, ok := s.renderFull(w, r)
	if !ok {
		return
	}
	filename := style.Filename(s.cfg.Prefix, st, s.now())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	writePNG(w, data)
}

// renderFull renders the full-resolution wallpaper for the request, writing
// the error response itself when it fails.
func (s *srv) renderFull(w http.ResponseWriter, r *http.Request) ([]byte, style.Style, bool) {
	st, ok := s.lookup(w, r)
	if !ok {
		return nil, st, false
	}
	opts, err := seedOption(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, st, false
	}

	start := time.Now()
	data, err := renderPNG(st, s.cfg.Full.Width, s.cfg.Full.Height, opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, st, false
	}
	s.log.Debug("rendered wallpaper", "style", st.Name(), "elapsed", time.Since(start))
	return data, st, true
}

func (s *srv) handleSheet(w http.ResponseWriter, r *http.Request) {
	data, err := s.cache.get("sheet", func() ([]byte, error) {
		thumbs, err := gallery.Build(context.WithoutCancel(r.Context()), style.Catalog(), gallery.Options{
			Width:   s.cfg.Thumb.Width,
			Height:  s.cfg.Thumb.Height,
			Workers: s.cfg.Gallery.Workers,
		})
		if err != nil {
			return nil, err
		}
		sheet, err := gallery.Sheet(thumbs, gallery.SheetOptions{
			Columns:  s.cfg.Gallery.Columns,
			FontPath: s.cfg.Gallery.Font,
		})
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := export.Encode(&buf, ".png", sheet); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePNG(w, data)
}

// ── Helpers ──

func seedOption(r *http.Request) ([]wallpaper.Option, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", raw, err)
	}
	return []wallpaper.Option{wallpaper.WithSeed(seed)}, nil
}

func renderPNG(st style.Style, width, height int, opts ...wallpaper.Option) ([]byte, error) {
	surface := wallpaper.Render(st, width, height, opts...)
	var buf bytes.Buffer
	if err := export.Encode(&buf, ".png", surface.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// browserAddr turns a listener address into something a browser can open.
func browserAddr(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func openBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Warn("open browser", "url", url, "err", err)
	}
}

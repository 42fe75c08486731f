package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/palette"
	"github.com/willbeason/mandelbrot/pkg/view"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"
)

// maxSide bounds the raster a request may ask for.
const maxSide = 8192

// Config holds the listen address and the defaults for requests that omit them.
type Config struct {
	Addr string

	// Width and Height are the default raster size.
	Width, Height int
	MaxIter       int32
	Workers       int

	// OriginPatterns are passed to websocket.Accept; empty allows same-origin only.
	OriginPatterns []string

	Log *log.Logger
}

// Server renders views for HTTP clients and websocket viewers.
type Server struct {
	cfg Config
	log *log.Logger
}

// New fills unset Config fields with defaults.
func New(cfg Config) *Server {
	if cfg.Width == 0 {
		cfg.Width = 700
	}
	if cfg.Height == 0 {
		cfg.Height = 500
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = view.DefaultMaxIter
	}

	logger := cfg.Log
	if logger == nil {
		logger = log.Default()
	}

	return &Server{cfg: cfg, log: logger}
}

// Handler routes /render.png, /presets and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render.png", s.handleRender)
	mux.HandleFunc("/presets", s.handlePresets)
	mux.HandleFunc("/ws", s.handleWebsocket)

	return mux
}

// ListenAndServe serves until ctx is done, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		// Websocket sessions outlive Shutdown, so they watch ctx directly.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Printf("listening on %s", s.cfg.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// renderPNG renders one view and encodes it.
func (s *Server) renderPNG(ctx context.Context, g escape.Grid, v escape.Viewport, maxIter int32, flip bool) ([]byte, error) {
	counts, err := escape.Render(ctx, g, v, maxIter, escape.WithWorkers(s.cfg.Workers))
	if err != nil {
		return nil, err
	}

	buf := bytes.Buffer{}
	err = palette.WritePNG(&buf, palette.Image(counts, g.Width, g.Height, maxIter, flip))
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	g, v, maxIter, flip, err := s.parseRenderQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.renderPNG(r.Context(), g, v, maxIter, flip)
	switch {
	case errors.Is(err, escape.ErrInvalidArgument):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.log.Printf("render %s: %v", v, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *Server) parseRenderQuery(r *http.Request) (escape.Grid, escape.Viewport, int32, bool, error) {
	q := r.URL.Query()

	g := escape.Grid{Width: s.cfg.Width, Height: s.cfg.Height}
	v := view.Overview
	maxIter := s.cfg.MaxIter
	flip := false

	if name := q.Get("preset"); name != "" {
		p, err := view.Preset(name)
		if err != nil {
			return g, v, maxIter, flip, err
		}
		v = p
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"min_real", &v.MinReal},
		{"max_real", &v.MaxReal},
		{"min_imag", &v.MinImag},
		{"max_imag", &v.MaxImag},
	}
	for _, f := range floats {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return g, v, maxIter, flip, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = x
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"width", &g.Width},
		{"height", &g.Height},
	}
	for _, f := range ints {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return g, v, maxIter, flip, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}

	if raw := q.Get("iter"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return g, v, maxIter, flip, fmt.Errorf("iter: %w", err)
		}
		if n > view.MaxMaxIter {
			return g, v, maxIter, flip, fmt.Errorf("%w: iteration budget %d exceeds %d", escape.ErrInvalidArgument, n, view.MaxMaxIter)
		}
		maxIter = int32(n)
	}

	if raw := q.Get("flip"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return g, v, maxIter, flip, fmt.Errorf("flip: %w", err)
		}
		flip = b
	}

	if g.Width > maxSide || g.Height > maxSide {
		return g, v, maxIter, flip, fmt.Errorf("%w: grid %dx%d exceeds %dx%d", escape.ErrInvalidArgument, g.Width, g.Height, maxSide, maxSide)
	}

	return g, v, maxIter, flip, nil
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(view.Presets)
	if err != nil {
		s.log.Printf("encoding presets: %v", err)
	}
}

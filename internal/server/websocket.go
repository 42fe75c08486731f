package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/willbeason/mandelbrot/pkg/escape"
	"github.com/willbeason/mandelbrot/pkg/transforms"
	"github.com/willbeason/mandelbrot/pkg/view"
	"net/http"
	"time"
)

// request is one command from a viewer.
type request struct {
	Op string `json:"op"`

	// Pixel for zoom and orbit.
	X int `json:"x"`
	Y int `json:"y"`

	Factor float64 `json:"factor"`

	DX int `json:"dx"`
	DY int `json:"dy"`

	MaxIter  int32            `json:"max_iter"`
	Preset   string           `json:"preset"`
	Viewport *escape.Viewport `json:"viewport,omitempty"`
	Flip     bool             `json:"flip"`
}

// status follows every image sent to a viewer.
type status struct {
	Status    string          `json:"status"`
	Viewport  escape.Viewport `json:"viewport"`
	MaxIter   int32           `json:"max_iter"`
	ElapsedMS int64           `json:"elapsed_ms"`
}

type orbitReply struct {
	Points [][2]float64 `json:"points"`
	Escape int32        `json:"escape"`
}

type errorReply struct {
	Error string `json:"error"`
}

// handleWebsocket runs one viewer session. Each session owns its controller.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.OriginPatterns,
	})
	if err != nil {
		s.log.Printf("websocket accept: %v", err)
		return
	}
	defer c.CloseNow()

	s.log.Printf("viewer connected from %s", r.RemoteAddr)

	sess := &session{
		Server: s,
		conn:   c,
		ctl:    view.New(s.cfg.Width, s.cfg.Height),
	}
	sess.ctl.SetMaxIter(s.cfg.MaxIter)

	err = sess.serve(r.Context())
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		s.log.Printf("viewer %s left", r.RemoteAddr)
		return
	}
	if errors.Is(err, context.Canceled) {
		_ = c.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	s.log.Printf("viewer %s: %v", r.RemoteAddr, err)
	_ = c.Close(websocket.StatusInternalError, "session failed")
}

type session struct {
	*Server

	conn *websocket.Conn
	ctl  *view.Controller
}

func (s *session) serve(ctx context.Context) error {
	for {
		var req request
		err := wsjson.Read(ctx, s.conn, &req)
		if err != nil {
			return err
		}

		err = s.handle(ctx, req)
		if err != nil {
			return err
		}
	}
}

// handle answers one request. Only transport failures are returned; bad
// requests are reported to the viewer.
func (s *session) handle(ctx context.Context, req request) error {
	switch req.Op {
	case "render":
		if req.Viewport != nil {
			if err := s.ctl.SetViewport(*req.Viewport); err != nil {
				return s.replyError(ctx, err)
			}
		}
		if req.MaxIter != 0 {
			s.ctl.SetMaxIter(req.MaxIter)
		}
	case "zoom":
		if err := s.ctl.ZoomAt(req.X, req.Y, req.Factor); err != nil {
			return s.replyError(ctx, err)
		}
	case "pan":
		if err := s.ctl.Pan(req.DX, req.DY); err != nil {
			return s.replyError(ctx, err)
		}
	case "iter":
		s.ctl.SetMaxIter(req.MaxIter)
	case "reset":
		s.ctl.Reset()
	case "preset":
		v, err := view.Preset(req.Preset)
		if err != nil {
			return s.replyError(ctx, err)
		}
		s.ctl.Viewport = v
	case "orbit":
		return s.orbit(ctx, req.X, req.Y)
	default:
		return s.replyError(ctx, fmt.Errorf("unknown op %q", req.Op))
	}

	return s.render(ctx, req.Flip)
}

func (s *session) render(ctx context.Context, flip bool) error {
	start := time.Now()

	data, err := s.renderPNG(ctx, s.ctl.Grid(), s.ctl.Viewport, s.ctl.MaxIter, flip)
	if err != nil {
		if errors.Is(err, escape.ErrInvalidArgument) {
			return s.replyError(ctx, err)
		}
		return err
	}

	err = s.conn.Write(ctx, websocket.MessageBinary, data)
	if err != nil {
		return err
	}

	return wsjson.Write(ctx, s.conn, status{
		Status:    s.ctl.Status(),
		Viewport:  s.ctl.Viewport,
		MaxIter:   s.ctl.MaxIter,
		ElapsedMS: time.Since(start).Milliseconds(),
	})
}

// orbit reports the iterates of the point under pixel (x, y).
func (s *session) orbit(ctx context.Context, x, y int) error {
	c := s.ctl.PixelToPlane(x, y)
	points := transforms.Orbit(transforms.Quadratic{C: c}, 0, int(s.ctl.MaxIter), 2)

	reply := orbitReply{
		Points: make([][2]float64, len(points)),
		Escape: escape.Evaluate(real(c), imag(c), s.ctl.MaxIter),
	}
	for i, z := range points {
		reply.Points[i] = [2]float64{real(z), imag(z)}
	}

	return wsjson.Write(ctx, s.conn, reply)
}

func (s *session) replyError(ctx context.Context, err error) error {
	return wsjson.Write(ctx, s.conn, errorReply{Error: err.Error()})
}

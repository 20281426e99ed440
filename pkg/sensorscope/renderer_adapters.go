package sensorscope

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alx-cc/sensor-scope/internal/domain"
)

// ErrRendererClosed is returned when a channel renderer receives a frame
// after being closed.
var ErrRendererClosed = errors.New("sensorscope: channel renderer closed")

// FrameFunc is invoked with each refresh frame.
type FrameFunc func(Frame) error

// NewCallbackRenderer adapts a FrameFunc into a full Renderer so callers can
// plug arbitrary functions without defining structs.
func NewCallbackRenderer(name string, fn FrameFunc) Renderer {
	if name == "" {
		name = "callback"
	}
	return &callbackRenderer{name: name, fn: fn}
}

// NewChannelRenderer exposes frames via a channel; it returns the renderer,
// the read-only channel, and a close function the caller should invoke during
// shutdown.
func NewChannelRenderer(name string, buffer int) (Renderer, <-chan Frame, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Frame, buffer)
	r := &channelRenderer{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return r, ch, func() { r.close() }
}

type callbackRenderer struct {
	name string
	fn   FrameFunc
}

func (r *callbackRenderer) RenderFrame(f domain.Frame) error {
	if r.fn == nil {
		return fmt.Errorf("callback renderer %q: nil handler", r.name)
	}
	return r.fn(f)
}

func (r *callbackRenderer) Name() string { return r.name }

type channelRenderer struct {
	name   string
	ch     chan Frame
	closed chan struct{}
	once   sync.Once
}

func (r *channelRenderer) RenderFrame(f domain.Frame) error {
	select {
	case <-r.closed:
		return ErrRendererClosed
	default:
	}

	// A full channel drops the frame rather than stalling the refresh
	// schedule; this is a sampling display, not an event log.
	select {
	case <-r.closed:
		return ErrRendererClosed
	case r.ch <- f:
		return nil
	default:
		return nil
	}
}

func (r *channelRenderer) Name() string { return r.name }

func (r *channelRenderer) close() {
	r.once.Do(func() {
		close(r.closed)
		close(r.ch)
	})
}

// Package widget runs the lighting widget: one goroutine owns the controller and
// the scene, and everything else talks to it by posting events.
package widget

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/input"
	"github.com/Faultbox/lightrig/internal/hostsync"
	"github.com/Faultbox/lightrig/internal/presenter"
	"github.com/Faultbox/lightrig/internal/prompt"
)

var (
	ErrStopped        = errors.New("widget stopped")
	ErrAlreadyRunning = errors.New("widget already running")
)

const defaultQueueSize = 64

// Options configures a Widget.
type Options struct {
	Width  float64
	Height float64

	// FrameInterval is the animation tick period. Zero disables animation.
	FrameInterval time.Duration
	ShowFPS       bool
	QueueSize     int

	Relight prompt.RelightOptions

	// Loader resolves image references. Without one every image fails to load.
	Loader presenter.ImageLoader
	Host   hostsync.Emitter
	UI     presenter.Sink
	Logger *zap.Logger
}

// Snapshot is a point-in-time view of the widget for status endpoints.
type Snapshot struct {
	Phase     string            `json:"phase"`
	Display   presenter.Display `json:"display"`
	Relight   string            `json:"relight"`
	Animating bool              `json:"animating"`
	ImageRef  string            `json:"imageRef,omitempty"`
}

// Widget serialises all state changes onto the goroutine running Run.
type Widget struct {
	ctrl  *hostsync.Controller
	scene *presenter.Scene

	events   chan func()
	done     chan struct{}
	started  atomic.Bool
	interval time.Duration
	showFPS  bool

	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger
}

// New creates a widget. Nothing happens until Run is called.
func New(opts Options) *Widget {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.UI == nil {
		opts.UI = presenter.SinkFunc(func(any) {})
	}
	if opts.Host == nil {
		opts.Host = hostsync.EmitterFunc(func(hostsync.Outbound) {})
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		events:   make(chan func(), opts.QueueSize),
		done:     make(chan struct{}),
		interval: opts.FrameInterval,
		showFPS:  opts.ShowFPS,
		ctx:      ctx,
		cancel:   cancel,
		log:      log,
	}

	aspect := 1.0
	if opts.Width > 0 && opts.Height > 0 {
		aspect = opts.Width / opts.Height
	}
	w.scene = presenter.NewScene(ctx, opts.UI, opts.Loader, aspect,
		presenter.WithDispatch(func(fn func()) { w.Post(fn) }),
		presenter.WithLogger(log.Named("scene")))
	w.ctrl = hostsync.NewController(w.scene, opts.Host, hostsync.Options{
		Width:   opts.Width,
		Height:  opts.Height,
		Relight: opts.Relight,
		Logger:  log.Named("hostsync"),
	})
	return w
}

// Run processes events and animation ticks until ctx is cancelled.
func (w *Widget) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(w.done)
	defer w.cancel()

	var ticks <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	w.ctrl.Start()
	w.log.Info("Starting widget loop", zap.Duration("frameInterval", w.interval))

	lastTick := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping widget loop")
			return nil

		case fn := <-w.events:
			fn()

		case now := <-ticks:
			dt := now.Sub(lastTick)
			lastTick = now

			w.ctrl.Tick()

			frameCount++
			if time.Since(fpsTimer) >= time.Second {
				if w.showFPS {
					w.log.Debug("FPS", zap.Int("count", frameCount), zap.Duration("dt", dt))
				}
				frameCount = 0
				fpsTimer = time.Now()
			}
		}
	}
}

// Done is closed when Run returns.
func (w *Widget) Done() <-chan struct{} { return w.done }

// Post queues fn to run on the widget goroutine. It reports false once the widget has stopped.
func (w *Widget) Post(fn func()) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.events <- fn:
		return true
	case <-w.done:
		return false
	}
}

// HostMessage decodes and applies one message from the host. Malformed and
// unknown messages are logged and dropped.
func (w *Widget) HostMessage(data []byte) {
	msg, err := hostsync.Decode(data)
	if err != nil {
		w.log.Debug("Dropping host message", zap.Error(err))
		return
	}
	w.Post(func() { w.ctrl.Handle(msg) })
}

// Pointer feeds a pointer or resize event to the rig.
func (w *Widget) Pointer(e input.Event) {
	w.Post(func() { w.ctrl.HandlePointer(e) })
}

// SetColor applies a color picked in the widget.
func (w *Widget) SetColor(c angle.Color) {
	w.Post(func() { w.ctrl.SetColor(c) })
}

// Reset restores the default angles.
func (w *Widget) Reset() {
	w.Post(w.ctrl.Reset)
}

// SetVisible gates the animation.
func (w *Widget) SetVisible(visible bool) {
	w.Post(func() { w.ctrl.Handle(hostsync.Visibility{Visible: visible}) })
}

// Republish re-sends the whole scene, e.g. after a front end connects.
func (w *Widget) Republish() {
	w.Post(w.scene.Publish)
}

// Snapshot returns the current state as seen from the widget goroutine.
func (w *Widget) Snapshot(ctx context.Context) (Snapshot, error) {
	res := make(chan Snapshot, 1)
	if !w.Post(func() { res <- w.snapshot() }) {
		return Snapshot{}, ErrStopped
	}
	select {
	case s := <-res:
		return s, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-w.done:
		return Snapshot{}, ErrStopped
	}
}

func (w *Widget) snapshot() Snapshot {
	s := w.ctrl.State()
	return Snapshot{
		Phase:     w.ctrl.Phase().String(),
		Display:   presenter.DisplayFor(s, w.ctrl.Prompt()),
		Relight:   w.ctrl.RelightPrompt(),
		Animating: w.ctrl.Animating(),
		ImageRef:  s.ImageRef,
	}
}

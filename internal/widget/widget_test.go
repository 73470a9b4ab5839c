package widget

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/lightrig/internal/engine/input"
	"github.com/Faultbox/lightrig/internal/engine/texture"
	"github.com/Faultbox/lightrig/internal/hostsync"
	"github.com/Faultbox/lightrig/internal/presenter"
)

type loaderFunc func(ctx context.Context, ref string) (*texture.Image, error)

func (f loaderFunc) Load(ctx context.Context, ref string) (*texture.Image, error) { return f(ctx, ref) }

// collector gathers outbound traffic from the widget goroutine.
type collector struct {
	mu     sync.Mutex
	host   []hostsync.Outbound
	scenes []presenter.SceneMessage
	frames int
}

func (c *collector) Emit(msg hostsync.Outbound) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.host = append(c.host, msg)
}

func (c *collector) Present(cmd any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch m := cmd.(type) {
	case presenter.SceneMessage:
		c.scenes = append(c.scenes, m)
	case presenter.FrameMessage:
		c.frames++
	}
}

func (c *collector) hostMessages() []hostsync.Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]hostsync.Outbound(nil), c.host...)
}

func (c *collector) lastScene() presenter.SceneMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scenes) == 0 {
		return presenter.SceneMessage{}
	}
	return c.scenes[len(c.scenes)-1]
}

func (c *collector) frameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

func startWidget(t *testing.T, opts Options) (*Widget, *collector) {
	t.Helper()
	col := &collector{}
	opts.Width, opts.Height = 800, 600
	opts.Host = col
	opts.UI = col
	if opts.Loader == nil {
		opts.Loader = loaderFunc(func(context.Context, string) (*texture.Image, error) {
			return nil, errors.New("no images")
		})
	}
	if opts.FrameInterval == 0 {
		opts.FrameInterval = time.Hour
	}
	w := New(opts)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-errc)
	})
	return w, col
}

func snapshot(t *testing.T, w *Widget) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s, err := w.Snapshot(ctx)
	require.NoError(t, err)
	return s
}

func TestRunAnnouncesReady(t *testing.T) {
	w, col := startWidget(t, Options{})

	s := snapshot(t, w)
	assert.Equal(t, "ready", s.Phase)
	assert.Equal(t, []hostsync.Outbound{hostsync.NewReady()}, col.hostMessages())
}

func TestHostMessagesApplyInOrder(t *testing.T) {
	w, col := startWidget(t, Options{})

	w.HostMessage([]byte(`{"type":"INIT","horizontal":90,"vertical":45,"zoom":8,"useDefaultPrompts":true}`))
	w.HostMessage([]byte(`{"type":"NOT_A_MESSAGE"}`))
	w.HostMessage([]byte(`not json`))

	s := snapshot(t, w)
	assert.Equal(t, 90, s.Display.Azimuth)
	assert.Equal(t, 45, s.Display.Elevation)
	assert.Equal(t, 8.0, s.Display.Distance)
	assert.Equal(t, "structured", s.Display.Mode)
	assert.NotEmpty(t, s.Display.Prompt)
	assert.Contains(t, s.Relight, "RELIGHTING ONLY")
	assert.Len(t, col.hostMessages(), 1, "host input must not be echoed")
}

func TestResetAndColorReportToHost(t *testing.T) {
	w, col := startWidget(t, Options{})

	w.HostMessage([]byte(`{"type":"INIT","horizontal":200}`))
	w.SetColor(0x00FF00)
	w.Reset()
	snapshot(t, w)

	msgs := col.hostMessages()
	require.Len(t, msgs, 3)
	color, ok := msgs[1].(hostsync.AngleUpdate)
	require.True(t, ok)
	assert.Equal(t, 200, color.Horizontal)
	assert.Equal(t, "#00FF00", color.LightColor)

	reset, ok := msgs[2].(hostsync.AngleUpdate)
	require.True(t, ok)
	assert.Equal(t, 0, reset.Horizontal)
	assert.Equal(t, "#00FF00", reset.LightColor)
}

func TestPointerHoverUpdatesCursor(t *testing.T) {
	w, col := startWidget(t, Options{})

	w.Pointer(input.Event{Type: input.EventResize, Width: 400, Height: 300})
	w.Pointer(input.Event{Type: input.EventPointerMove, X: 1, Y: 1})
	snapshot(t, w)

	assert.Equal(t, "default", col.lastScene().Cursor)
	assert.Len(t, col.hostMessages(), 1)
}

func TestImageLoadCompletesOnWidgetGoroutine(t *testing.T) {
	loaded := make(chan struct{})
	loader := loaderFunc(func(_ context.Context, ref string) (*texture.Image, error) {
		defer close(loaded)
		return &texture.Image{Ref: ref, Width: 200, Height: 100, Thumbnail: image.NewNRGBA(image.Rect(0, 0, 2, 1))}, nil
	})
	w, col := startWidget(t, Options{Loader: loader})

	w.HostMessage([]byte(`{"type":"UPDATE_IMAGE","imageUrl":"subject.png"}`))
	<-loaded

	assert.Eventually(t, func() bool {
		_, _ = w.Snapshot(context.Background())
		return col.lastScene().Plane.Ref == "subject.png"
	}, 2*time.Second, 10*time.Millisecond)

	plane := col.lastScene().Plane
	assert.Equal(t, 1.5, plane.Width)
	assert.Equal(t, 0.75, plane.Height)
	assert.Equal(t, "subject.png", snapshot(t, w).ImageRef)
}

func TestImageUpdateWithoutLoader(t *testing.T) {
	col := &collector{}
	w := New(Options{Width: 800, Height: 600, FrameInterval: time.Hour, Host: col, UI: col})
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-errc)
	}()

	w.HostMessage([]byte(`{"type":"UPDATE_IMAGE","imageUrl":"subject.png"}`))
	s := snapshot(t, w)

	plane := col.lastScene().Plane
	assert.True(t, plane.Failed)
	assert.Equal(t, "subject.png", plane.Ref)
	assert.Equal(t, "subject.png", s.ImageRef)
}

func TestTicksAnimateUntilHidden(t *testing.T) {
	w, col := startWidget(t, Options{FrameInterval: time.Millisecond})

	assert.Eventually(t, func() bool { return col.frameCount() >= 3 }, 2*time.Second, 5*time.Millisecond)

	w.SetVisible(false)
	require.False(t, snapshot(t, w).Animating)
	frozen := col.frameCount()
	time.Sleep(20 * time.Millisecond)
	snapshot(t, w)
	assert.Equal(t, frozen, col.frameCount())

	w.HostMessage([]byte(`{"type":"VISIBILITY","visible":true}`))
	assert.Eventually(t, func() bool { return col.frameCount() > frozen }, 2*time.Second, 5*time.Millisecond)
}

func TestRunTwice(t *testing.T) {
	w, _ := startWidget(t, Options{})
	snapshot(t, w)

	assert.ErrorIs(t, w.Run(context.Background()), ErrAlreadyRunning)
}

func TestStoppedWidget(t *testing.T) {
	w := New(Options{Width: 100, Height: 100, FrameInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))

	<-w.Done()
	assert.False(t, w.Post(func() {}))
	_, err := w.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrStopped)
}

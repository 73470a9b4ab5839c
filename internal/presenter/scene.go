package presenter

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/anim"
	"github.com/Faultbox/lightrig/internal/engine/camera"
	"github.com/Faultbox/lightrig/internal/engine/rig"
	"github.com/Faultbox/lightrig/internal/engine/texture"
	"github.com/Faultbox/lightrig/pkg/math"
)

// Image plane look.
const (
	MaxPlaneSize = 1.5

	PlaneColorEmpty angle.Color = 0x3A3A4A
	PlaneColorImage angle.Color = 0xFFFFFF
	PlaneColorError angle.Color = 0xE93D82
)

// Command types sent to the front end.
const (
	CommandScene   = "SCENE"
	CommandDisplay = "DISPLAY"
	CommandFrame   = "FRAME"
)

// ErrNoLoader is reported for image loads on a scene created without a loader.
var ErrNoLoader = errors.New("no image loader configured")

// Sink receives presentation commands. Values are JSON-encodable.
type Sink interface {
	Present(cmd any)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(cmd any)

// Present implements Sink.
func (f SinkFunc) Present(cmd any) { f(cmd) }

// ImageLoader loads subject images.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (*texture.Image, error)
}

// Layers is the visibility set of the rig's scene layers.
type Layers struct {
	Controls   bool `json:"controls"` // rings, arcs, handles and their glows
	Indicator  bool `json:"indicator"`
	Grid       bool `json:"grid"`
	ImageFrame bool `json:"imageFrame"`
}

// HandleState is one handle's drawn state.
type HandleState struct {
	Position math.Vec3 `json:"position"`
	Scale    float64   `json:"scale"`
}

// CameraPose is the active viewpoint.
type CameraPose struct {
	Position math.Vec3 `json:"position"`
	Target   math.Vec3 `json:"target"`
	FovY     float64   `json:"fov"`
	Preview  bool      `json:"preview"`
}

// Plane is the image plane under the subject.
type Plane struct {
	Ref     string  `json:"ref,omitempty"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Color   string  `json:"color"`
	Texture string  `json:"texture,omitempty"` // data URL
	Failed  bool    `json:"failed,omitempty"`
}

// SceneState is the full snapshot the front end renders from.
type SceneState struct {
	Azimuth    HandleState `json:"azimuth"`
	Elevation  HandleState `json:"elevation"`
	Distance   HandleState `json:"distance"`
	Indicator  math.Vec3   `json:"indicator"`
	Cursor     string      `json:"cursor"`
	LightColor string      `json:"lightColor"`
	Layers     Layers      `json:"layers"`
	Camera     CameraPose  `json:"camera"`
	Plane      Plane       `json:"plane"`
}

// SceneMessage carries a scene snapshot.
type SceneMessage struct {
	Type string `json:"type"`
	SceneState
}

// DisplayMessage carries the readouts.
type DisplayMessage struct {
	Type string `json:"type"`
	Display
}

// FrameMessage carries one animation frame.
type FrameMessage struct {
	Type         string  `json:"type"`
	Tick         uint64  `json:"tick"`
	Pulse        float64 `json:"pulse"`
	RingRotation float64 `json:"ringRotation"`
}

// Scene is the headless presenter. It must be used from a single goroutine;
// image loads finish on another goroutine and are handed back through the dispatch func.
type Scene struct {
	ctx      context.Context
	sink     Sink
	loader   ImageLoader
	dispatch func(func())
	log      *zap.Logger

	overview *camera.PerspectiveCamera
	preview  *camera.PerspectiveCamera

	state   SceneState
	display Display
	frame   anim.Frame
	layout  rig.Layout

	pendingRef string
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithDispatch makes image loads asynchronous: the load runs on its own goroutine and
// its result is applied through dispatch, which must run the func on the scene's goroutine.
func WithDispatch(dispatch func(func())) SceneOption {
	return func(s *Scene) { s.dispatch = dispatch }
}

// WithLogger sets the scene's logger.
func WithLogger(log *zap.Logger) SceneOption {
	return func(s *Scene) { s.log = log }
}

// NewScene creates a scene presenting to sink. ctx bounds image loads.
func NewScene(ctx context.Context, sink Sink, loader ImageLoader, aspect float64, opts ...SceneOption) *Scene {
	s := &Scene{
		ctx:      ctx,
		sink:     sink,
		loader:   loader,
		log:      zap.NewNop(),
		overview: camera.NewOverview(aspect),
		preview:  camera.NewPreview(aspect),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.state.LightColor = angle.White.String()
	s.state.Layers = layersFor(false)
	s.state.Plane = emptyPlane()
	s.layout = rig.Place(angle.DefaultAzimuth, angle.DefaultElevation, angle.DefaultDistance)
	s.applyLayout(HandlePose{Layout: s.layout})
	return s
}

var _ Presenter = (*Scene)(nil)

// State returns the current scene snapshot.
func (s *Scene) State() SceneState { return s.state }

// Display returns the current readouts.
func (s *Scene) Display() Display { return s.display }

// Frame returns the last applied animation frame.
func (s *Scene) Frame() anim.Frame { return s.frame }

// Resize updates both cameras' aspect ratio.
func (s *Scene) Resize(width, height float64) {
	s.overview.SetViewport(width, height)
	s.preview.SetViewport(width, height)
	s.updateCamera()
	s.publish()
}

// Publish re-sends the full scene and display, e.g. to a newly connected front end.
func (s *Scene) Publish() {
	s.publish()
	s.sink.Present(DisplayMessage{Type: CommandDisplay, Display: s.display})
}

// SetHandles implements Presenter.
func (s *Scene) SetHandles(p HandlePose) {
	s.applyLayout(p)
	s.publish()
}

func (s *Scene) applyLayout(p HandlePose) {
	s.layout = p.Layout
	scale := func(h rig.Handle) float64 {
		switch h {
		case p.Dragged:
			return rig.ScaleDrag
		case p.Hovered:
			return rig.ScaleHover
		default:
			return rig.ScaleIdle
		}
	}
	s.state.Azimuth = HandleState{Position: p.Layout.Azimuth, Scale: scale(rig.HandleAzimuth)}
	s.state.Elevation = HandleState{Position: p.Layout.Elevation, Scale: scale(rig.HandleElevation)}
	s.state.Distance = HandleState{Position: p.Layout.Distance, Scale: scale(rig.HandleDistance)}
	s.state.Indicator = p.Layout.Indicator
	s.state.Cursor = p.Cursor
	if s.state.Cursor == "" {
		s.state.Cursor = "default"
	}
	s.updateCamera()
}

// SetCameraView implements Presenter.
func (s *Scene) SetCameraView(enabled bool) {
	s.state.Layers = layersFor(enabled)
	s.state.Camera.Preview = enabled
	s.updateCamera()
	s.publish()
}

func layersFor(cameraView bool) Layers {
	return Layers{
		Controls:   !cameraView,
		Indicator:  !cameraView,
		Grid:       !cameraView,
		ImageFrame: !cameraView,
	}
}

func (s *Scene) updateCamera() {
	cam := s.overview
	if s.state.Camera.Preview {
		s.preview.Follow(s.layout.Indicator, rig.Center)
		cam = s.preview
	}
	s.state.Camera.Position = cam.Position
	s.state.Camera.Target = cam.Target
	s.state.Camera.FovY = cam.FovY
}

// SetLightColor implements Presenter.
func (s *Scene) SetLightColor(c angle.Color) {
	s.state.LightColor = c.String()
	s.publish()
}

// SetDisplay implements Presenter.
func (s *Scene) SetDisplay(d Display) {
	s.display = d
	s.sink.Present(DisplayMessage{Type: CommandDisplay, Display: d})
}

// Animate implements Presenter.
func (s *Scene) Animate(f anim.Frame) {
	s.frame = f
	s.sink.Present(FrameMessage{
		Type:         CommandFrame,
		Tick:         f.Tick,
		Pulse:        f.Pulse,
		RingRotation: f.RingRotation,
	})
}

// LoadImage implements Presenter. Only the most recently requested image is applied.
func (s *Scene) LoadImage(ref string) {
	s.pendingRef = ref
	if ref == "" {
		s.state.Plane = emptyPlane()
		s.publish()
		return
	}

	if s.loader == nil {
		s.applyImage(ref, nil, ErrNoLoader)
		return
	}

	if s.dispatch == nil {
		img, err := s.loader.Load(s.ctx, ref)
		s.applyImage(ref, img, err)
		return
	}

	go func() {
		img, err := s.loader.Load(s.ctx, ref)
		s.dispatch(func() { s.applyImage(ref, img, err) })
	}()
}

func (s *Scene) applyImage(ref string, img *texture.Image, err error) {
	if ref != s.pendingRef {
		s.log.Debug("stale image load dropped", zap.String("ref", abbreviate(ref)))
		return
	}

	if err == nil {
		var dataURL string
		dataURL, err = texture.EncodeDataURL(img.Thumbnail)
		if err == nil {
			w, h := FitPlane(img.Aspect(), MaxPlaneSize)
			s.state.Plane = Plane{
				Ref:     ref,
				Width:   w,
				Height:  h,
				Color:   PlaneColorImage.String(),
				Texture: dataURL,
			}
			s.log.Debug("image loaded",
				zap.String("format", img.Format),
				zap.Int("width", img.Width),
				zap.Int("height", img.Height),
			)
			s.publish()
			return
		}
	}

	s.log.Warn("image load failed", zap.String("ref", abbreviate(ref)), zap.Error(err))
	s.state.Plane = Plane{
		Ref:    ref,
		Width:  1,
		Height: 1,
		Color:  PlaneColorError.String(),
		Failed: true,
	}
	s.publish()
}

func emptyPlane() Plane {
	return Plane{Width: 1, Height: 1, Color: PlaneColorEmpty.String()}
}

// FitPlane sizes the image plane to the image aspect ratio with its longer side at maxSize.
func FitPlane(aspect, maxSize float64) (width, height float64) {
	if aspect <= 0 {
		return maxSize, maxSize
	}
	if aspect > 1 {
		return maxSize, maxSize / aspect
	}
	return maxSize * aspect, maxSize
}

func (s *Scene) publish() {
	s.sink.Present(SceneMessage{Type: CommandScene, SceneState: s.state})
}

// abbreviate keeps data URLs out of the logs.
func abbreviate(ref string) string {
	const limit = 64
	if len(ref) <= limit {
		return ref
	}
	return ref[:limit] + "..."
}

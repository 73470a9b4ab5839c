package hostsync

import (
	"go.uber.org/zap"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/anim"
	"github.com/Faultbox/lightrig/internal/engine/input"
	"github.com/Faultbox/lightrig/internal/engine/rig"
	"github.com/Faultbox/lightrig/internal/presenter"
	"github.com/Faultbox/lightrig/internal/prompt"
)

// Phase is the controller's lifecycle phase.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseReady
)

func (p Phase) String() string {
	if p == PhaseReady {
		return "ready"
	}
	return "uninitialized"
}

// Emitter sends outbound messages to the host.
type Emitter interface {
	Emit(msg Outbound)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(msg Outbound)

// Emit implements Emitter.
func (f EmitterFunc) Emit(msg Outbound) { f(msg) }

// Options configures a Controller.
type Options struct {
	Width  float64
	Height float64

	Relight prompt.RelightOptions
	Logger  *zap.Logger
}

// Controller owns the angle state. It applies host messages and local pointer
// input and fans every change out to the presenter and, for local changes, the host.
//
// A Controller is not safe for concurrent use; all calls must come from one goroutine.
type Controller struct {
	state     angle.State
	phase     Phase
	mapper    *input.Mapper
	loop      *anim.Loop
	presenter presenter.Presenter
	emitter   Emitter
	relight   prompt.RelightOptions
	log       *zap.Logger
}

// NewController creates a controller in the Uninitialized phase with default state.
func NewController(p presenter.Presenter, e Emitter, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		state:     angle.New(),
		mapper:    input.NewMapper(opts.Width, opts.Height),
		loop:      anim.New(),
		presenter: p,
		emitter:   e,
		relight:   opts.Relight,
		log:       log,
	}
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// State returns a copy of the angle state.
func (c *Controller) State() angle.State {
	s := c.state
	s.CustomPrompts = s.CustomPrompts.Clone()
	return s
}

// Prompt returns the prompt derived from the current state.
func (c *Controller) Prompt() string { return prompt.Derive(c.state) }

// RelightPrompt returns the relighting prompt for the current state.
func (c *Controller) RelightPrompt() string {
	opts := c.relight
	opts.Custom = c.state.CustomPrompts
	return prompt.Relight(prompt.LightFromState(c.state), opts)
}

// Cursor returns the pointer affordance.
func (c *Controller) Cursor() input.Cursor { return c.mapper.Cursor() }

// Animating reports whether ticks advance the animation.
func (c *Controller) Animating() bool { return c.loop.Visible() }

// Start finishes setup: it presents the initial state and announces readiness.
func (c *Controller) Start() {
	c.refreshDisplay()
	c.refreshVisuals()
	c.becomeReady()
}

func (c *Controller) becomeReady() {
	if c.phase == PhaseReady {
		return
	}
	c.phase = PhaseReady
	c.log.Debug("Controller ready")
	c.emitter.Emit(NewReady())
}

// Handle applies one host message. Host messages never produce an AngleUpdate.
func (c *Controller) Handle(msg Inbound) {
	switch m := msg.(type) {
	case Initialize:
		c.log.Debug("Initialize",
			zap.Float64("azimuth", m.Azimuth),
			zap.Float64("elevation", m.Elevation),
			zap.Float64("distance", m.Distance))
		c.applyAngles(m.Angles)
		c.refreshDisplay()
		c.refreshVisuals()
		c.becomeReady()

	case FullSync:
		c.log.Debug("Full sync", zap.Bool("customTable", m.CustomPrompts != nil))
		c.applyAngles(m.Angles)
		c.state.CustomPrompts = m.CustomPrompts.Clone()
		c.refreshDisplay()
		c.refreshVisuals()

	case ImageUpdate:
		c.log.Debug("Image update", zap.Bool("clear", m.Ref == ""))
		c.state.ImageRef = m.Ref
		c.presenter.LoadImage(m.Ref)

	case CustomPromptsUpdate:
		c.log.Debug("Custom prompts update", zap.Bool("present", m.CustomPrompts != nil))
		c.state.CustomPrompts = m.CustomPrompts.Clone()
		c.refreshDisplay()

	case Visibility:
		c.log.Debug("Visibility", zap.Bool("visible", m.Visible))
		c.loop.SetVisible(m.Visible)

	default:
		c.log.Warn("Ignoring unhandled host message", zap.Any("message", msg))
	}
}

func (c *Controller) applyAngles(a Angles) {
	c.state.SetAzimuth(a.Azimuth)
	c.state.SetElevation(a.Elevation)
	c.state.SetDistance(a.Distance)

	col, err := angle.ParseColor(a.LightColor)
	if err != nil {
		c.log.Debug("Invalid light color, using white", zap.String("color", a.LightColor), zap.Error(err))
		col = angle.White
	}
	c.state.LightColor = col
	c.state.UseStructured = a.UseStructured
	c.state.UseCustom = a.UseCustom

	c.state.CameraView = a.CameraView
	c.mapper.SetHidden(a.CameraView)
	c.presenter.SetCameraView(a.CameraView)
}

// HandlePointer feeds a pointer or resize event through the mapper. A resolved
// drag writes the state and reports it to the host.
func (c *Controller) HandlePointer(e input.Event) {
	if e.Type == input.EventResize {
		c.mapper.Resize(e.Width, e.Height)
		c.presenter.Resize(e.Width, e.Height)
		return
	}

	out := c.mapper.Handle(e)
	if !out.Resolved {
		if out.AffordanceChanged {
			c.presenter.SetHandles(c.pose())
		}
		return
	}

	switch out.Handle {
	case rig.HandleAzimuth:
		c.state.SetAzimuth(out.Value)
	case rig.HandleElevation:
		c.state.SetElevation(out.Value)
	case rig.HandleDistance:
		c.state.SetDistance(out.Value)
	default:
		return
	}
	c.commit()
}

// SetColor sets the light color from the widget's own picker.
func (c *Controller) SetColor(col angle.Color) {
	c.state.LightColor = col
	c.commit()
}

// Reset puts the angles and mode back to their defaults.
func (c *Controller) Reset() {
	c.state.Reset()
	c.commit()
}

// Tick advances the cosmetic animation by one frame while visible.
func (c *Controller) Tick() {
	if f, ok := c.loop.Step(); ok {
		c.presenter.Animate(f)
	}
}

// commit fans a local change out: display, visuals, then the host.
func (c *Controller) commit() {
	c.refreshDisplay()
	c.refreshVisuals()
	c.becomeReady()
	c.emitter.Emit(NewAngleUpdate(c.state))
}

func (c *Controller) refreshDisplay() {
	c.presenter.SetDisplay(presenter.DisplayFor(c.state, prompt.Derive(c.state)))
}

func (c *Controller) refreshVisuals() {
	c.mapper.Sync(c.state.Azimuth, c.state.Elevation, c.state.Distance)
	c.presenter.SetHandles(c.pose())
	c.presenter.SetLightColor(c.state.LightColor)
}

func (c *Controller) pose() presenter.HandlePose {
	r := c.mapper.Rig()
	return presenter.HandlePose{
		Layout:  r.Layout,
		Hovered: r.Hovered,
		Dragged: r.Dragged,
		Cursor:  c.mapper.Cursor().String(),
	}
}

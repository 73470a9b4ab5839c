// Package presenter is the boundary between the widget core and whatever draws the rig.
//
// The core only ever calls the Presenter methods below. Scene is the headless
// implementation: it keeps a model of what should be on screen and streams it as
// commands to the browser front end.
package presenter

import (
	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/anim"
	"github.com/Faultbox/lightrig/internal/engine/rig"
)

// Presenter is the presentation layer the controller drives.
type Presenter interface {
	// SetHandles positions the handles, the light indicator and their affordances.
	SetHandles(p HandlePose)
	// SetCameraView switches between the rig overview and the light's-eye preview,
	// showing or hiding the rig layers accordingly.
	SetCameraView(enabled bool)
	// SetLightColor recolors the light indicator, its glow and the distance line.
	SetLightColor(c angle.Color)
	// LoadImage replaces the subject image. An empty ref clears it.
	LoadImage(ref string)
	// SetDisplay updates the numeric readouts and the prompt preview.
	SetDisplay(d Display)
	// Resize sets the viewport size in pixels.
	Resize(width, height float64)
	// Animate applies a cosmetic animation frame.
	Animate(f anim.Frame)
}

// HandlePose is where the rig's handles are and how they are drawn.
type HandlePose struct {
	Layout  rig.Layout
	Hovered rig.Handle
	Dragged rig.Handle
	Cursor  string
}

// Display is the text shown next to the rig.
type Display struct {
	Azimuth   int     `json:"azimuth"`
	Elevation int     `json:"elevation"`
	Distance  float64 `json:"distance"`
	Color     string  `json:"color"`
	Mode      string  `json:"mode"`
	Prompt    string  `json:"prompt"`
}

// DisplayFor builds the readouts for a state and its derived prompt.
func DisplayFor(s angle.State, prompt string) Display {
	return Display{
		Azimuth:   s.RoundedAzimuth(),
		Elevation: s.RoundedElevation(),
		Distance:  s.RoundedDistance(),
		Color:     s.LightColor.String(),
		Mode:      s.EffectiveMode().String(),
		Prompt:    prompt,
	}
}

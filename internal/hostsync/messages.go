// Package hostsync implements the message protocol between the widget and its host page.
//
// Inbound messages form a closed set: every type implementing Inbound is declared
// in this file, and Controller.Handle switches over all of them.
package hostsync

import (
	"github.com/Faultbox/lightrig/internal/angle"
)

// Wire type tags.
const (
	TypeInit                = "INIT"
	TypeSyncAngles          = "SYNC_ANGLES"
	TypeUpdateImage         = "UPDATE_IMAGE"
	TypeUpdateCustomPrompts = "UPDATE_CUSTOM_PROMPTS"
	TypeVisibility          = "VISIBILITY"

	TypeAngleUpdate = "ANGLE_UPDATE"
	TypeViewerReady = "VIEWER_READY"
)

// Inbound is a message from the host.
type Inbound interface {
	inbound()
}

// Angles is the angle payload shared by Initialize and FullSync.
// Absent wire fields have already been replaced by their defaults.
type Angles struct {
	Azimuth       float64
	Elevation     float64
	Distance      float64
	LightColor    string
	UseStructured bool
	UseCustom     bool
	CameraView    bool
}

// Initialize sets the angles, color and mode flags.
type Initialize struct {
	Angles
}

// FullSync sets everything Initialize does and replaces the custom prompt table.
type FullSync struct {
	Angles
	CustomPrompts *angle.CustomPrompts
}

// ImageUpdate replaces the subject image. An empty Ref clears it.
type ImageUpdate struct {
	Ref string
}

// CustomPromptsUpdate replaces only the custom prompt table.
type CustomPromptsUpdate struct {
	CustomPrompts *angle.CustomPrompts
}

// Visibility reports whether the widget is on screen.
type Visibility struct {
	Visible bool
}

func (Initialize) inbound()          {}
func (FullSync) inbound()            {}
func (ImageUpdate) inbound()         {}
func (CustomPromptsUpdate) inbound() {}
func (Visibility) inbound()          {}

// Outbound is a message to the host.
type Outbound interface {
	outbound()
}

// AngleUpdate reports the state after a local change.
type AngleUpdate struct {
	Type              string               `json:"type"`
	Horizontal        int                  `json:"horizontal"`
	Vertical          int                  `json:"vertical"`
	Zoom              float64              `json:"zoom"`
	LightColor        string               `json:"lightColor"`
	UseDefaultPrompts bool                 `json:"useDefaultPrompts"`
	UseCustomPrompts  bool                 `json:"useCustomPrompts"`
	CustomPrompts     *angle.CustomPrompts `json:"customPrompts"`
}

// Ready tells the host the widget can receive messages.
type Ready struct {
	Type string `json:"type"`
}

func (AngleUpdate) outbound() {}
func (Ready) outbound()       {}

// NewAngleUpdate builds the outbound report for s.
func NewAngleUpdate(s angle.State) AngleUpdate {
	return AngleUpdate{
		Type:              TypeAngleUpdate,
		Horizontal:        s.RoundedAzimuth(),
		Vertical:          s.RoundedElevation(),
		Zoom:              s.RoundedDistance(),
		LightColor:        s.LightColor.String(),
		UseDefaultPrompts: s.UseStructured,
		UseCustomPrompts:  s.UseCustom,
		CustomPrompts:     s.CustomPrompts.Clone(),
	}
}

// NewReady builds the readiness notice.
func NewReady() Ready {
	return Ready{Type: TypeViewerReady}
}

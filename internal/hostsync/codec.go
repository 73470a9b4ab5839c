package hostsync

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Faultbox/lightrig/internal/angle"
)

// ErrUnknownType is returned for messages whose type tag is missing or not recognised.
var ErrUnknownType = errors.New("unknown host message type")

// wireInbound is the union of every inbound field. Pointers tell absent from zero.
type wireInbound struct {
	Type              string               `json:"type"`
	Horizontal        *float64             `json:"horizontal"`
	Vertical          *float64             `json:"vertical"`
	Zoom              *float64             `json:"zoom"`
	LightColor        *string              `json:"lightColor"`
	UseDefaultPrompts *bool                `json:"useDefaultPrompts"`
	UseCustomPrompts  *bool                `json:"useCustomPrompts"`
	CameraView        *bool                `json:"cameraView"`
	CustomPrompts     *angle.CustomPrompts `json:"customPrompts"`
	ImageURL          *string              `json:"imageUrl"`
	Visible           *bool                `json:"visible"`
}

// Decode parses one host message.
func Decode(data []byte) (Inbound, error) {
	var w wireInbound
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode host message: %w", err)
	}

	switch w.Type {
	case TypeInit:
		return Initialize{Angles: w.angles()}, nil
	case TypeSyncAngles:
		return FullSync{Angles: w.angles(), CustomPrompts: w.CustomPrompts}, nil
	case TypeUpdateImage:
		return ImageUpdate{Ref: valueOr(w.ImageURL, "")}, nil
	case TypeUpdateCustomPrompts:
		return CustomPromptsUpdate{CustomPrompts: w.CustomPrompts}, nil
	case TypeVisibility:
		return Visibility{Visible: valueOr(w.Visible, true)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, w.Type)
	}
}

func (w wireInbound) angles() Angles {
	return Angles{
		Azimuth:       valueOr(w.Horizontal, angle.DefaultAzimuth),
		Elevation:     valueOr(w.Vertical, angle.DefaultElevation),
		Distance:      valueOr(w.Zoom, angle.DefaultDistance),
		LightColor:    valueOr(w.LightColor, angle.White.String()),
		UseStructured: valueOr(w.UseDefaultPrompts, false),
		UseCustom:     valueOr(w.UseCustomPrompts, false),
		CameraView:    valueOr(w.CameraView, false),
	}
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Encode serialises an outbound message.
func Encode(msg Outbound) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode host message: %w", err)
	}
	return data, nil
}

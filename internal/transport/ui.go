package transport

import (
	"encoding/json"
	"fmt"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/input"
)

// Front end event types.
const (
	UIPointerDown  = "POINTER_DOWN"
	UIPointerMove  = "POINTER_MOVE"
	UIPointerUp    = "POINTER_UP"
	UIPointerLeave = "POINTER_LEAVE"
	UIResize       = "RESIZE"
	UISetColor     = "SET_COLOR"
	UIReset        = "RESET"
	UIVisibility   = "VISIBILITY"
)

type uiEvent struct {
	Type    string  `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Color   string  `json:"color"`
	Visible *bool   `json:"visible"`
}

// dispatchUI decodes one front end event and applies it to w.
func dispatchUI(w Widget, data []byte) error {
	var e uiEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("decode ui event: %w", err)
	}

	switch e.Type {
	case UIPointerDown:
		w.Pointer(input.Event{Type: input.EventPointerDown, X: e.X, Y: e.Y})
	case UIPointerMove:
		w.Pointer(input.Event{Type: input.EventPointerMove, X: e.X, Y: e.Y})
	case UIPointerUp:
		w.Pointer(input.Event{Type: input.EventPointerUp})
	case UIPointerLeave:
		w.Pointer(input.Event{Type: input.EventPointerLeave})
	case UIResize:
		w.Pointer(input.Event{Type: input.EventResize, Width: e.Width, Height: e.Height})
	case UISetColor:
		c, err := angle.ParseColor(e.Color)
		if err != nil {
			return err
		}
		w.SetColor(c)
	case UIReset:
		w.Reset()
	case UIVisibility:
		w.SetVisible(e.Visible == nil || *e.Visible)
	default:
		return fmt.Errorf("unknown ui event type %q", e.Type)
	}
	return nil
}

package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/lightrig/internal/angle"
	"github.com/Faultbox/lightrig/internal/engine/input"
	"github.com/Faultbox/lightrig/internal/widget"
)

type fakeWidget struct {
	pointers []input.Event
	colors   []angle.Color
	resets   int
	visible  []bool
}

func (f *fakeWidget) HostMessage([]byte) {}
func (f *fakeWidget) Pointer(e input.Event) { f.pointers = append(f.pointers, e) }
func (f *fakeWidget) SetColor(c angle.Color) { f.colors = append(f.colors, c) }
func (f *fakeWidget) Reset() { f.resets++ }
func (f *fakeWidget) SetVisible(visible bool) { f.visible = append(f.visible, visible) }
func (f *fakeWidget) Republish() {}
func (f *fakeWidget) Snapshot(context.Context) (widget.Snapshot, error) {
	return widget.Snapshot{}, nil
}

func TestDispatchUI(t *testing.T) {
	w := &fakeWidget{}
	events := []string{
		`{"type":"POINTER_DOWN","x":10,"y":20}`,
		`{"type":"POINTER_MOVE","x":11,"y":21}`,
		`{"type":"POINTER_UP"}`,
		`{"type":"POINTER_LEAVE"}`,
		`{"type":"RESIZE","width":320,"height":200}`,
		`{"type":"SET_COLOR","color":"#ABCDEF"}`,
		`{"type":"RESET"}`,
		`{"type":"VISIBILITY","visible":false}`,
		`{"type":"VISIBILITY"}`,
	}
	for _, e := range events {
		assert.NoError(t, dispatchUI(w, []byte(e)), e)
	}

	assert.Equal(t, []input.Event{
		{Type: input.EventPointerDown, X: 10, Y: 20},
		{Type: input.EventPointerMove, X: 11, Y: 21},
		{Type: input.EventPointerUp},
		{Type: input.EventPointerLeave},
		{Type: input.EventResize, Width: 320, Height: 200},
	}, w.pointers)
	assert.Equal(t, []angle.Color{0xABCDEF}, w.colors)
	assert.Equal(t, 1, w.resets)
	assert.Equal(t, []bool{false, true}, w.visible)
}

func TestDispatchUIErrors(t *testing.T) {
	w := &fakeWidget{}

	assert.Error(t, dispatchUI(w, []byte(`{"type":"JUMP"}`)))
	assert.Error(t, dispatchUI(w, []byte(`{"type":"SET_COLOR","color":"teal"}`)))
	assert.Error(t, dispatchUI(w, []byte(`[`)))
	assert.Empty(t, w.colors)
}

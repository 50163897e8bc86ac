// Package input turns SDL2 events into the few viewer events the frame loop
// reacts to, and tracks pointer and button state between frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a viewer event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseWheel
)

// Event is one translated SDL event. Only the fields of its Type are set.
type Event struct {
	Type EventType

	Key sdl.Scancode

	Width, Height int

	MouseX, MouseY int
	RelX, RelY     int

	WheelY int
}

// Input collects the events of one frame.
type Input struct {
	events []Event

	mouseX, mouseY int
	buttons        map[uint8]bool
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		buttons: make(map[uint8]bool),
	}
}

// Update drains the SDL queue. Returns true once the window was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		if i.handle(e) {
			return true
		}
	}
	return false
}

// handle records e and reports whether it is a quit request.
func (i *Input) handle(e sdl.Event) bool {
	switch e := e.(type) {
	case *sdl.MouseMotionEvent:
		i.mouseX, i.mouseY = int(e.X), int(e.Y)
	case *sdl.MouseButtonEvent:
		i.buttons[e.Button] = e.Type == sdl.MOUSEBUTTONDOWN
	}

	ev, ok := translate(e)
	if !ok {
		return false
	}
	i.events = append(i.events, ev)
	return ev.Type == EventQuit
}

// translate maps the SDL events the viewer uses. Everything else is dropped.
func translate(e sdl.Event) (Event, bool) {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			RelX:   int(e.XRel),
			RelY:   int(e.YRel),
		}, true
	case *sdl.MouseWheelEvent:
		return Event{Type: EventMouseWheel, WheelY: int(e.Y)}, true
	}
	return Event{}, false
}

// Events returns the events of the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// MousePosition returns the last pointer position in window pixels.
func (i *Input) MousePosition() (int, int) {
	return i.mouseX, i.mouseY
}

// IsButtonDown reports whether a mouse button is held.
func (i *Input) IsButtonDown(button uint8) bool {
	return i.buttons[button]
}

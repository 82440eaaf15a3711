package devices

import (
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/der-antikeks/simplesetup/core"
)

// Input keeps the state of keyboard, mouse and joysticks and publishes their
// events. Platform backends embed it and feed it from their event loops.
// On its own it is a valid Device that never receives any input.
type Input struct {
	mu sync.RWMutex

	keys         *bitset.BitSet
	mousePressed map[MouseButton]bool
	mouseClicked map[MouseButton]bool
	mx, my       int
	axes         map[[2]int]float32

	key       core.Event[KeyboardEventArg]
	mousemove core.Event[MouseMovedEventArg]
	mousebtn  core.Event[MouseButtonEventArg]
	joyaxis   core.Event[JoystickAxisEventArg]
	joybutton core.Event[JoystickButtonEventArg]
}

func NewInput() *Input {
	return &Input{
		keys:         bitset.New(uint(keyCount)),
		mousePressed: map[MouseButton]bool{},
		mouseClicked: map[MouseButton]bool{},
		axes:         map[[2]int]float32{},
	}
}

func (i *Input) Initialize(core.InitializeEventArg) error     { return nil }
func (i *Input) Process(core.ProcessEventArg) error           { return nil }
func (i *Input) Deinitialize(core.DeinitializeEventArg) error { return nil }

func (i *Input) KeyEvent() *core.Event[KeyboardEventArg]                  { return &i.key }
func (i *Input) MouseMovedEvent() *core.Event[MouseMovedEventArg]         { return &i.mousemove }
func (i *Input) MouseButtonEvent() *core.Event[MouseButtonEventArg]       { return &i.mousebtn }
func (i *Input) JoystickAxisEvent() *core.Event[JoystickAxisEventArg]     { return &i.joyaxis }
func (i *Input) JoystickButtonEvent() *core.Event[JoystickButtonEventArg] { return &i.joybutton }

// PushKey records a key press or release and notifies the key event.
func (i *Input) PushKey(arg KeyboardEventArg) error {
	i.mu.Lock()
	switch arg.Type {
	case Pressed:
		i.keys.Set(uint(arg.Sym))
	case Released:
		i.keys.Clear(uint(arg.Sym))
	}
	i.mu.Unlock()

	return i.key.Notify(arg)
}

func (i *Input) IsKeyDown(k Key) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.keys.Test(uint(k))
}

func (i *Input) AnyKeyDown() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.keys.Any()
}

// PushMouseMove records the cursor position; any movement cancels pending clicks.
func (i *Input) PushMouseMove(x, y int) error {
	i.mu.Lock()
	arg := MouseMovedEventArg{X: x, Y: y, DX: x - i.mx, DY: y - i.my}
	i.mx, i.my = x, y
	for b := range i.mouseClicked {
		delete(i.mouseClicked, b)
	}
	i.mu.Unlock()

	return i.mousemove.Notify(arg)
}

func (i *Input) PushMouseButton(b MouseButton, state ButtonState) error {
	i.mu.Lock()
	switch state {
	case Pressed:
		i.mousePressed[b] = true
		i.mouseClicked[b] = false
	case Released:
		delete(i.mousePressed, b)

		if v, ok := i.mouseClicked[b]; ok && !v {
			i.mouseClicked[b] = true
		}
	}
	arg := MouseButtonEventArg{Type: state, Button: b, X: i.mx, Y: i.my}
	i.mu.Unlock()

	return i.mousebtn.Notify(arg)
}

func (i *Input) MousePos() (x, y int) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.mx, i.my
}

func (i *Input) IsMouseDown(b MouseButton) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.mousePressed[b]
}

// mouse up after a down without movement
func (i *Input) IsMouseClick(b MouseButton) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.mouseClicked[b]
}

func (i *Input) PushJoystickAxis(joystick, axis int, value float32) error {
	i.mu.Lock()
	if value < -1 {
		value = -1
	} else if value > 1 {
		value = 1
	}
	i.axes[[2]int{joystick, axis}] = value
	i.mu.Unlock()

	return i.joyaxis.Notify(JoystickAxisEventArg{Joystick: joystick, Axis: axis, Value: value})
}

func (i *Input) PushJoystickButton(joystick, button int, state ButtonState) error {
	return i.joybutton.Notify(JoystickButtonEventArg{Type: state, Joystick: joystick, Button: button})
}

func (i *Input) Axis(joystick, axis int) float32 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.axes[[2]int{joystick, axis}]
}

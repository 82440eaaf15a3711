package devices

import (
	"github.com/der-antikeks/simplesetup/core"
)

type Key uint

const (
	KeyUnknown Key = iota

	KeyEscape
	KeyEnter
	KeyPause
	KeySpace
	KeyTab
	KeyBackspace
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyCount
)

type Modifier uint

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper

	ModNone Modifier = 0
)

type ButtonState int

const (
	Released ButtonState = iota
	Pressed
)

type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

type KeyboardEventArg struct {
	Type ButtonState
	Sym  Key
	Mod  Modifier
}

type MouseMovedEventArg struct {
	X, Y   int
	DX, DY int
}

type MouseButtonEventArg struct {
	Type   ButtonState
	Button MouseButton
	X, Y   int
}

type JoystickAxisEventArg struct {
	Joystick int
	Axis     int
	Value    float32 // -1..1
}

type JoystickButtonEventArg struct {
	Type     ButtonState
	Joystick int
	Button   int
}

type Keyboard interface {
	KeyEvent() *core.Event[KeyboardEventArg]
	IsKeyDown(Key) bool
	AnyKeyDown() bool
}

type Mouse interface {
	MouseMovedEvent() *core.Event[MouseMovedEventArg]
	MouseButtonEvent() *core.Event[MouseButtonEventArg]
	MousePos() (x, y int)
	IsMouseDown(MouseButton) bool
	IsMouseClick(MouseButton) bool
}

type Joystick interface {
	JoystickAxisEvent() *core.Event[JoystickAxisEventArg]
	JoystickButtonEvent() *core.Event[JoystickButtonEventArg]
	Axis(joystick, axis int) float32
}

// Device is a single module serving all input devices.
type Device interface {
	core.Module
	Keyboard
	Mouse
	Joystick
}

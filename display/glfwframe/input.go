package glfwframe

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/logging"
)

var keys = map[glfw.Key]devices.Key{
	glfw.KeyEscape:       devices.KeyEscape,
	glfw.KeyEnter:        devices.KeyEnter,
	glfw.KeyPause:        devices.KeyPause,
	glfw.KeySpace:        devices.KeySpace,
	glfw.KeyTab:          devices.KeyTab,
	glfw.KeyBackspace:    devices.KeyBackspace,
	glfw.KeyLeftShift:    devices.KeyLeftShift,
	glfw.KeyRightShift:   devices.KeyRightShift,
	glfw.KeyLeftControl:  devices.KeyLeftControl,
	glfw.KeyRightControl: devices.KeyRightControl,
	glfw.KeyLeftAlt:      devices.KeyLeftAlt,
	glfw.KeyRightAlt:     devices.KeyRightAlt,
	glfw.KeyUp:           devices.KeyUp,
	glfw.KeyDown:         devices.KeyDown,
	glfw.KeyLeft:         devices.KeyLeft,
	glfw.KeyRight:        devices.KeyRight,
}

func init() {
	for i := 0; i < 26; i++ {
		keys[glfw.KeyA+glfw.Key(i)] = devices.KeyA + devices.Key(i)
	}
	for i := 0; i < 10; i++ {
		keys[glfw.Key0+glfw.Key(i)] = devices.Key0 + devices.Key(i)
	}
	for i := 0; i < 12; i++ {
		keys[glfw.KeyF1+glfw.Key(i)] = devices.KeyF1 + devices.Key(i)
	}
}

func translateKey(k glfw.Key) devices.Key {
	if key, ok := keys[k]; ok {
		return key
	}
	return devices.KeyUnknown
}

func translateMods(m glfw.ModifierKey) devices.Modifier {
	mod := devices.ModNone
	if m&glfw.ModShift != 0 {
		mod |= devices.ModShift
	}
	if m&glfw.ModControl != 0 {
		mod |= devices.ModControl
	}
	if m&glfw.ModAlt != 0 {
		mod |= devices.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		mod |= devices.ModSuper
	}
	return mod
}

func translateButton(b glfw.MouseButton) devices.MouseButton {
	switch b {
	case glfw.MouseButtonLeft:
		return devices.MouseLeft
	case glfw.MouseButtonMiddle:
		return devices.MouseMiddle
	case glfw.MouseButtonRight:
		return devices.MouseRight
	}
	return devices.MouseNone
}

func translateAction(a glfw.Action) devices.ButtonState {
	if a == glfw.Release {
		return devices.Released
	}
	return devices.Pressed
}

// install sets the window callbacks, f.mu is held.
func (f *Frame) install(w *glfw.Window) {
	w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		in := f.device()
		if in == nil || action == glfw.Repeat {
			return
		}
		f.push(in.PushKey(devices.KeyboardEventArg{
			Type: translateAction(action),
			Sym:  translateKey(key),
			Mod:  translateMods(mods),
		}))
	})

	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if in := f.device(); in != nil {
			f.push(in.PushMouseMove(int(x), int(y)))
		}
	})

	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if in := f.device(); in != nil {
			f.push(in.PushMouseButton(translateButton(button), translateAction(action)))
		}
	})

	w.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		in := f.device()
		if in == nil || yoff == 0 {
			return
		}
		b := devices.MouseWheelUp
		if yoff < 0 {
			b = devices.MouseWheelDown
		}
		f.push(in.PushMouseButton(b, devices.Pressed))
		f.push(in.PushMouseButton(b, devices.Released))
	})

	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.opts.Width, f.opts.Height = width, height
	})
}

type joystickState struct {
	axes    []float32
	buttons []glfw.Action
}

const maxJoysticks = 4

// pollJoysticks pushes the axes and buttons that changed since the last
// frame, GLFW has no joystick callbacks for them.
func (f *Frame) pollJoysticks() {
	in := f.device()
	if in == nil {
		return
	}

	for i := 0; i < maxJoysticks; i++ {
		joy := glfw.Joystick1 + glfw.Joystick(i)
		if !joy.Present() {
			delete(f.joysticks, joy)
			continue
		}

		axes, buttons := joy.GetAxes(), joy.GetButtons()

		state, ok := f.joysticks[joy]
		if !ok {
			logging.Infof("joystick %d connected: %s", i, joy.GetName())
			f.joysticks[joy] = &joystickState{
				axes:    append([]float32(nil), axes...),
				buttons: append([]glfw.Action(nil), buttons...),
			}
			continue
		}

		for a, v := range axes {
			if a >= len(state.axes) || state.axes[a] != v {
				f.push(in.PushJoystickAxis(i, a, v))
			}
		}
		state.axes = append(state.axes[:0], axes...)

		for b, v := range buttons {
			if b >= len(state.buttons) || state.buttons[b] != v {
				f.push(in.PushJoystickButton(i, b, translateAction(v)))
			}
		}
		state.buttons = append(state.buttons[:0], buttons...)
	}
}

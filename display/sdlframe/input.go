package sdlframe

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/der-antikeks/simplesetup/devices"
)

var keys = map[sdl.Keycode]devices.Key{
	sdl.K_ESCAPE:    devices.KeyEscape,
	sdl.K_RETURN:    devices.KeyEnter,
	sdl.K_PAUSE:     devices.KeyPause,
	sdl.K_SPACE:     devices.KeySpace,
	sdl.K_TAB:       devices.KeyTab,
	sdl.K_BACKSPACE: devices.KeyBackspace,
	sdl.K_LSHIFT:    devices.KeyLeftShift,
	sdl.K_RSHIFT:    devices.KeyRightShift,
	sdl.K_LCTRL:     devices.KeyLeftControl,
	sdl.K_RCTRL:     devices.KeyRightControl,
	sdl.K_LALT:      devices.KeyLeftAlt,
	sdl.K_RALT:      devices.KeyRightAlt,
	sdl.K_UP:        devices.KeyUp,
	sdl.K_DOWN:      devices.KeyDown,
	sdl.K_LEFT:      devices.KeyLeft,
	sdl.K_RIGHT:     devices.KeyRight,
}

func init() {
	for i := 0; i < 26; i++ {
		keys[sdl.K_a+sdl.Keycode(i)] = devices.KeyA + devices.Key(i)
	}
	for i := 0; i < 10; i++ {
		keys[sdl.K_0+sdl.Keycode(i)] = devices.Key0 + devices.Key(i)
	}
	for i := 0; i < 12; i++ {
		keys[sdl.K_F1+sdl.Keycode(i)] = devices.KeyF1 + devices.Key(i)
	}
}

func translateKey(k sdl.Keycode) devices.Key {
	if key, ok := keys[k]; ok {
		return key
	}
	return devices.KeyUnknown
}

func translateMods(m uint16) devices.Modifier {
	mod := devices.ModNone
	if m&uint16(sdl.KMOD_SHIFT) != 0 {
		mod |= devices.ModShift
	}
	if m&uint16(sdl.KMOD_CTRL) != 0 {
		mod |= devices.ModControl
	}
	if m&uint16(sdl.KMOD_ALT) != 0 {
		mod |= devices.ModAlt
	}
	if m&uint16(sdl.KMOD_GUI) != 0 {
		mod |= devices.ModSuper
	}
	return mod
}

func translateButton(b uint8) devices.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return devices.MouseLeft
	case sdl.BUTTON_MIDDLE:
		return devices.MouseMiddle
	case sdl.BUTTON_RIGHT:
		return devices.MouseRight
	}
	return devices.MouseNone
}

func translateState(s uint8) devices.ButtonState {
	if s == sdl.PRESSED {
		return devices.Pressed
	}
	return devices.Released
}

// axisValue maps a raw axis position to -1..1.
func axisValue(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}
	return float32(v) / 32767
}

func (f *Frame) handle(ev sdl.Event) error {
	f.mu.RLock()
	in := f.input
	f.mu.RUnlock()

	switch e := ev.(type) {
	case *sdl.QuitEvent:
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			f.mu.Lock()
			f.opts.Width, f.opts.Height = int(e.Data1), int(e.Data2)
			f.mu.Unlock()
		}
	}

	if in == nil {
		return nil
	}

	switch e := ev.(type) {
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return nil
		}
		return in.PushKey(devices.KeyboardEventArg{
			Type: translateState(e.State),
			Sym:  translateKey(e.Keysym.Sym),
			Mod:  translateMods(e.Keysym.Mod),
		})

	case *sdl.MouseMotionEvent:
		return in.PushMouseMove(int(e.X), int(e.Y))

	case *sdl.MouseButtonEvent:
		return in.PushMouseButton(translateButton(e.Button), translateState(e.State))

	case *sdl.MouseWheelEvent:
		if e.Y == 0 {
			return nil
		}
		b := devices.MouseWheelUp
		if e.Y < 0 {
			b = devices.MouseWheelDown
		}
		if err := in.PushMouseButton(b, devices.Pressed); err != nil {
			return err
		}
		return in.PushMouseButton(b, devices.Released)

	case *sdl.JoyAxisEvent:
		return in.PushJoystickAxis(int(e.Which), int(e.Axis), axisValue(e.Value))

	case *sdl.JoyButtonEvent:
		return in.PushJoystickButton(int(e.Which), int(e.Button), translateState(e.State))
	}

	return nil
}

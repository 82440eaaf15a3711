package sdlframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key      sdl.Keycode
		expected devices.Key
	}{
		{sdl.K_ESCAPE, devices.KeyEscape},
		{sdl.K_a, devices.KeyA},
		{sdl.K_z, devices.KeyZ},
		{sdl.K_0, devices.Key0},
		{sdl.K_9, devices.Key9},
		{sdl.K_F12, devices.KeyF12},
		{sdl.K_RALT, devices.KeyRightAlt},
		{sdl.K_KP_ENTER, devices.KeyUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, translateKey(tt.key), "key %d", tt.key)
	}
}

func TestAxisValue(t *testing.T) {
	tests := []struct {
		raw      int16
		expected float32
	}{
		{0, 0},
		{32767, 1},
		{-32768, -1},
		{16384, 0.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, axisValue(tt.raw), 1e-4)
	}
}

func TestHandle(t *testing.T) {
	f := NewFrame(display.DefaultFrameOptions())
	in := devices.NewInput()
	f.SetInput(in)

	var keys []devices.KeyboardEventArg
	in.KeyEvent().Attach(core.ListenerFunc[devices.KeyboardEventArg](func(arg devices.KeyboardEventArg) error {
		keys = append(keys, arg)
		return nil
	}))

	events := []sdl.Event{
		&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE, Mod: uint16(sdl.KMOD_LSHIFT)}},
		&sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}},
		&sdl.MouseMotionEvent{X: 10, Y: 20},
		&sdl.MouseButtonEvent{Button: sdl.BUTTON_RIGHT, State: sdl.PRESSED},
		&sdl.JoyAxisEvent{Which: 0, Axis: 1, Value: 32767},
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480},
		&sdl.QuitEvent{},
	}
	for _, ev := range events {
		assert.NoError(t, f.handle(ev))
	}

	assert.Len(t, keys, 1)
	assert.Equal(t, devices.KeyEscape, keys[0].Sym)
	assert.Equal(t, devices.ModShift, keys[0].Mod)
	assert.True(t, in.IsKeyDown(devices.KeyEscape))

	x, y := in.MousePos()
	assert.Equal(t, [2]int{10, 20}, [2]int{x, y})
	assert.True(t, in.IsMouseDown(devices.MouseRight))
	assert.InDelta(t, 1, in.Axis(0, 1), 1e-6)

	assert.Equal(t, 640, f.Width())
	assert.Equal(t, 480, f.Height())
	assert.True(t, f.ShouldClose())
}

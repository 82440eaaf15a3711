package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/simplesetup/core"
)

var _ Device = NewInput()

func TestInput_Keys(t *testing.T) {
	in := NewInput()

	var events []KeyboardEventArg
	in.KeyEvent().Attach(core.ListenerFunc[KeyboardEventArg](func(arg KeyboardEventArg) error {
		events = append(events, arg)
		return nil
	}))

	assert.False(t, in.AnyKeyDown())

	require.NoError(t, in.PushKey(KeyboardEventArg{Type: Pressed, Sym: KeyEscape}))
	require.NoError(t, in.PushKey(KeyboardEventArg{Type: Pressed, Sym: KeyW, Mod: ModShift}))
	assert.True(t, in.IsKeyDown(KeyEscape))
	assert.True(t, in.IsKeyDown(KeyW))
	assert.False(t, in.IsKeyDown(KeyA))
	assert.True(t, in.AnyKeyDown())

	require.NoError(t, in.PushKey(KeyboardEventArg{Type: Released, Sym: KeyEscape}))
	require.NoError(t, in.PushKey(KeyboardEventArg{Type: Released, Sym: KeyW}))
	assert.False(t, in.IsKeyDown(KeyEscape))
	assert.False(t, in.AnyKeyDown())

	require.Len(t, events, 4)
	assert.Equal(t, ModShift, events[1].Mod)
	assert.Equal(t, Released, events[3].Type)
}

func TestInput_MouseClick(t *testing.T) {
	tests := []struct {
		name  string
		moves bool
		click bool
	}{
		{"click without movement", false, true},
		{"drag", true, false},
	}

	for _, c := range tests {
		in := NewInput()
		require.NoError(t, in.PushMouseMove(10, 10))
		require.NoError(t, in.PushMouseButton(MouseLeft, Pressed))
		assert.True(t, in.IsMouseDown(MouseLeft), c.name)

		if c.moves {
			require.NoError(t, in.PushMouseMove(20, 15))
		}
		require.NoError(t, in.PushMouseButton(MouseLeft, Released))

		assert.False(t, in.IsMouseDown(MouseLeft), c.name)
		assert.Equal(t, c.click, in.IsMouseClick(MouseLeft), c.name)
	}
}

func TestInput_MouseMoveDelta(t *testing.T) {
	in := NewInput()

	var last MouseMovedEventArg
	in.MouseMovedEvent().Attach(core.ListenerFunc[MouseMovedEventArg](func(arg MouseMovedEventArg) error {
		last = arg
		return nil
	}))

	require.NoError(t, in.PushMouseMove(5, 7))
	require.NoError(t, in.PushMouseMove(8, 3))
	assert.Equal(t, MouseMovedEventArg{X: 8, Y: 3, DX: 3, DY: -4}, last)

	x, y := in.MousePos()
	assert.Equal(t, 8, x)
	assert.Equal(t, 3, y)
}

func TestInput_Joystick(t *testing.T) {
	in := NewInput()

	var buttons int
	in.JoystickButtonEvent().Attach(core.ListenerFunc[JoystickButtonEventArg](func(arg JoystickButtonEventArg) error {
		buttons++
		return nil
	}))

	require.NoError(t, in.PushJoystickAxis(0, 1, 0.5))
	require.NoError(t, in.PushJoystickAxis(0, 2, 3))
	require.NoError(t, in.PushJoystickButton(0, 4, Pressed))

	assert.Equal(t, float32(0.5), in.Axis(0, 1))
	assert.Equal(t, float32(1), in.Axis(0, 2))
	assert.Equal(t, float32(0), in.Axis(1, 1))
	assert.Equal(t, 1, buttons)
}

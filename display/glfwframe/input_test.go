package glfwframe

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"github.com/der-antikeks/simplesetup/devices"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key      glfw.Key
		expected devices.Key
	}{
		{glfw.KeyEscape, devices.KeyEscape},
		{glfw.KeyA, devices.KeyA},
		{glfw.KeyZ, devices.KeyZ},
		{glfw.Key0, devices.Key0},
		{glfw.Key9, devices.Key9},
		{glfw.KeyF12, devices.KeyF12},
		{glfw.KeyLeftControl, devices.KeyLeftControl},
		{glfw.KeyKPEnter, devices.KeyUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, translateKey(tt.key), "key %d", tt.key)
	}
}

func TestTranslateMods(t *testing.T) {
	assert.Equal(t, devices.ModNone, translateMods(0))
	assert.Equal(t, devices.ModShift|devices.ModAlt, translateMods(glfw.ModShift|glfw.ModAlt))
	assert.Equal(t, devices.ModControl|devices.ModSuper, translateMods(glfw.ModControl|glfw.ModSuper))
}

func TestTranslateButton(t *testing.T) {
	assert.Equal(t, devices.MouseLeft, translateButton(glfw.MouseButtonLeft))
	assert.Equal(t, devices.MouseMiddle, translateButton(glfw.MouseButtonMiddle))
	assert.Equal(t, devices.MouseRight, translateButton(glfw.MouseButtonRight))
	assert.Equal(t, devices.MouseNone, translateButton(glfw.MouseButton5))

	assert.Equal(t, devices.Pressed, translateAction(glfw.Press))
	assert.Equal(t, devices.Pressed, translateAction(glfw.Repeat))
	assert.Equal(t, devices.Released, translateAction(glfw.Release))
}

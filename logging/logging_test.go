package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRegistry(t *testing.T) {
	Reset()
	defer Reset()

	// dropped, nothing registered yet
	Info("lost")

	var a, b bytes.Buffer
	AddLogger(&a)
	AddLogger(&b)

	Errorf("Can not open '%s' for output", "scene.dot")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		assert.Contains(t, buf.String(), "ERROR")
		assert.Contains(t, buf.String(), "Can not open 'scene.dot' for output")
		assert.NotContains(t, buf.String(), "lost")
	}
}

func TestSetLevel(t *testing.T) {
	Reset()
	defer Reset()
	defer SetLevel(zap.InfoLevel)

	var buf bytes.Buffer
	AddLogger(&buf)

	Debug("hidden")
	assert.Empty(t, buf.String())

	lvl, err := ParseLevel("debug")
	assert.NoError(t, err)
	SetLevel(lvl)

	Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestAddCore(t *testing.T) {
	Reset()
	defer Reset()

	core, logs := observer.New(zap.InfoLevel)
	AddCore(core)

	Warnf("%d textures", 3)
	Info("loaded")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "3 textures", entries[0].Message)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, "loaded", entries[1].Message)
	}
}

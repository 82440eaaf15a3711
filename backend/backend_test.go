package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/renderers"
)

type fake struct{}

func (fake) NewFrame(display.FrameOptions) (display.Frame, error)      { return nil, nil }
func (fake) NewInput(display.Frame) (devices.Device, error)            { return devices.NewInput(), nil }
func (fake) NewRenderer(*display.Viewport) (renderers.Renderer, error) { return nil, nil }
func (fake) NewDrawer() renderers.Drawer                               { return nil }

func TestRegistry(t *testing.T) {
	Register("fake-b", fake{})
	Register("fake-a", fake{})
	defer unregister("fake-a")
	defer unregister("fake-b")

	b, err := Lookup("fake-a")
	require.NoError(t, err)
	assert.Equal(t, fake{}, b)

	names := Names()
	assert.Subset(t, names, []string{"fake-a", "fake-b"})
	assert.IsNonDecreasing(t, names)

	_, err = Lookup("missing")
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "fake-a, fake-b")

	assert.Panics(t, func() { Register("fake-a", fake{}) })
	assert.Panics(t, func() { Register("nil", nil) })
}

package main

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/simplesetup/backend"
)

const quad = `v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
`

const config = `title: viewer
backend: headless
frame: {width: 320, height: 200}
engine: {fps: 0}
data: [models/]
debug: {dotfile: graph.dot}
log: {level: warn}
`

func TestCommand(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "models/quad.obj", []byte(quad), 0o644))
	require.NoError(t, afero.WriteFile(fs, "gisp.yaml", []byte(config), 0o644))

	cmd := newCommand(fs)
	cmd.SetArgs([]string{"--config", "gisp.yaml", "--frames", "2", "--debug", "quad.obj"})
	require.NoError(t, cmd.Execute())

	ok, err := afero.Exists(fs, "graph.dot")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommand_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	tests := []struct {
		args []string
		err  error
	}{
		{[]string{"--config", "missing.yaml"}, nil},
		{[]string{"--backend", "missing"}, backend.ErrUnknown},
		{[]string{"--backend", "headless", "--frames", "1", "missing.obj"}, nil},
	}

	for _, tt := range tests {
		cmd := newCommand(fs)
		cmd.SetArgs(tt.args)
		cmd.SilenceErrors = true

		err := cmd.Execute()
		require.Error(t, err, "%v", tt.args)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err)
		}
	}
}

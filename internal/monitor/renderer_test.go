package monitor

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer_AppendsFrames(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf, WithoutClear())

	r.Clear()
	require.NoError(t, r.Render(frameAt(100, 30)))
	require.NoError(t, r.Render(frameAt(100, 30)))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "GitHub"))
	assert.NotContains(t, out, "\x1b[2J")
	assert.Equal(t, 2, r.Frames())
}

func TestPlainRenderer_ClearsScreen(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf)

	r.Clear()
	assert.Contains(t, buf.String(), "\x1b[2J")

	buf.Reset()
	require.NoError(t, r.Render(frameAt(100, 30)))
	assert.NotContains(t, buf.String(), "\x1b[2J", "first frame after an explicit clear")

	buf.Reset()
	require.NoError(t, r.Render(frameAt(100, 30)))
	assert.Contains(t, buf.String(), "\x1b[2J", "later frames replace the previous one")
}

func TestPlainRenderer_Footer(t *testing.T) {
	var buf bytes.Buffer
	r := NewPlainRenderer(&buf, WithoutClear(), WithFooter("Ctrl+C to stop"))

	require.NoError(t, r.Render(frameAt(100, 30)))
	assert.Contains(t, buf.String(), "Ctrl+C to stop")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPlainRenderer_WriteError(t *testing.T) {
	r := NewPlainRenderer(failingWriter{}, WithoutClear())
	err := r.Render(frameAt(100, 30))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write frame")
	assert.Equal(t, 0, r.Frames())
}

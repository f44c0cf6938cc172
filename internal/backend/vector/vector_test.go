package vector

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/source"
)

const square = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20" width="40" height="20">
  <rect x="0" y="0" width="40" height="20" fill="#ff0000"/>
</svg>`

func TestOpenMemory_Rasterises(t *testing.T) {
	src, err := New().OpenMemory([]byte(square))
	require.NoError(t, err)

	var got []source.Result
	src.SetCallback(func(r source.Result) { got = append(got, r) })
	src.LoadFirstFrame()

	require.Len(t, got, 1)
	require.NoError(t, got[0].Err)
	assert.Equal(t, 40, got[0].Bitmap.Width())
	assert.Equal(t, 20, got[0].Bitmap.Height())

	c := color.RGBAModel.Convert(got[0].Bitmap.Image().At(20, 10)).(color.RGBA)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestOpenPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	require.NoError(t, os.WriteFile(path, []byte(square), 0o644))

	src, err := New().OpenPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name())
}

func TestOpen_Unsupported(t *testing.T) {
	_, err := New().OpenMemory([]byte("\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(t, err, backend.ErrUnsupported)
}

func TestCanvasSize(t *testing.T) {
	tests := []struct {
		name  string
		w, h  float64
		wantW int
		wantH int
	}{
		{"plain", 40, 20, 40, 20},
		{"capped wide", 8192, 4096, MaxEdge, MaxEdge / 2},
		{"capped tall", 100, 40960, 10, MaxEdge},
		{"missing viewBox", 0, 0, fallbackEdge, fallbackEdge},
		{"rounds up tiny", 0.2, 0.2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := canvasSize(tt.w, tt.h)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("canvasSize(%v, %v) = %d, %d, want %d, %d",
					tt.w, tt.h, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

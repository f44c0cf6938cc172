package viewer

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/source"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeBackend serves pre-built sources by path.
type fakeBackend struct {
	mu      sync.Mutex
	sources map[string]source.Source
	opened  []string
	memory  [][]byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{sources: map[string]source.Source{}}
}

func (b *fakeBackend) Info() backend.Info             { return backend.Info{Name: "fake"} }
func (b *fakeBackend) Capability() backend.Capability { return backend.Both }

func (b *fakeBackend) OpenPath(path string) (source.Source, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, path)
	src, ok := b.sources[path]
	if !ok {
		return nil, backend.ErrUnsupported
	}
	return src, nil
}

func (b *fakeBackend) OpenMemory(data []byte) (source.Source, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memory = append(b.memory, data)
	return source.NewMock("-"), nil
}

func (b *fakeBackend) add(path string) *source.Mock {
	m := source.NewMock(path)
	b.mu.Lock()
	b.sources[path] = m
	b.mu.Unlock()
	return m
}

func (b *fakeBackend) addAnimated(path string) *source.MockAnimated {
	m := source.NewMockAnimated(path)
	b.mu.Lock()
	b.sources[path] = m
	b.mu.Unlock()
	return m
}

// fakeRenderer records drawn scenes.
type fakeRenderer struct {
	mu     sync.Mutex
	scenes []Scene
}

func (r *fakeRenderer) Draw(s Scene) {
	r.mu.Lock()
	r.scenes = append(r.scenes, s)
	r.mu.Unlock()
}

func (r *fakeRenderer) Size() (int, int) { return 100, 100 }

func (r *fakeRenderer) last() Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.scenes) == 0 {
		return Scene{}
	}
	return r.scenes[len(r.scenes)-1]
}

func (r *fakeRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scenes)
}

type fixture struct {
	v        *Viewer
	backend  *fakeBackend
	renderer *fakeRenderer
}

func newFixture(t *testing.T, opts Options, paths ...string) *fixture {
	t.Helper()
	log, _ := test.NewNullLogger()
	reg := backend.NewRegistry()
	fb := newFakeBackend()
	reg.Install(fb)
	r := &fakeRenderer{}

	v := New(reg, r, opts, log)
	v.SetDispatcher(InlineDispatcher{})
	v.view.SetWindowSize(r.Size())
	for _, p := range paths {
		if err := v.AddPath(p, false); err != nil {
			t.Fatalf("AddPath(%q) error = %v", p, err)
		}
	}
	return &fixture{v: v, backend: fb, renderer: r}
}

func newBitmap(w, h int) *bitmap.Bitmap {
	return bitmap.New(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func command(action string, args ...string) bridge.Command {
	return bridge.Command{Action: action, Args: args}
}

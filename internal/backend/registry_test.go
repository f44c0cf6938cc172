package backend

import (
	"errors"
	"testing"

	"github.com/llehouerou/glimpse/internal/source"
)

type fakeBackend struct {
	name   string
	cap    Capability
	accept bool
	err    error
	calls  int
}

func (f *fakeBackend) Info() Info             { return Info{Name: f.name} }
func (f *fakeBackend) Capability() Capability { return f.cap }

func (f *fakeBackend) OpenPath(path string) (source.Source, error) {
	return f.open(path)
}

func (f *fakeBackend) OpenMemory(data []byte) (source.Source, error) {
	return f.open("memory")
}

func (f *fakeBackend) open(name string) (source.Source, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if !f.accept {
		return nil, ErrUnsupported
	}
	return source.NewMock(f.name + ":" + name), nil
}

func TestResolve_EmptyRegistry(t *testing.T) {
	r := NewRegistry()

	src, b, err := r.Resolve(PathInput("x.png"))

	if !errors.Is(err, ErrNoBackends) {
		t.Errorf("err = %v, want ErrNoBackends", err)
	}
	if src != nil || b != nil {
		t.Error("expected nil source and backend")
	}
}

func TestResolve_MostRecentFirst(t *testing.T) {
	a := &fakeBackend{name: "A", cap: Both, accept: false}
	b := &fakeBackend{name: "B", cap: Both, accept: true}
	r := NewRegistry()
	r.Install(b)
	r.Install(a)

	src, chosen, err := r.Resolve(PathInput("x.png"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if chosen != b {
		t.Errorf("backend = %s, want B", chosen.Info().Name)
	}
	if src.Name() != "B:x.png" {
		t.Errorf("Name() = %q, want %q", src.Name(), "B:x.png")
	}
	if a.calls != 1 {
		t.Errorf("A calls = %d, want 1", a.calls)
	}
}

func TestResolve_FirstAcceptingWins(t *testing.T) {
	first := &fakeBackend{name: "first", cap: Both, accept: true}
	second := &fakeBackend{name: "second", cap: Both, accept: true}
	r := NewRegistry()
	r.Install(second)
	r.Install(first)

	_, chosen, err := r.Resolve(PathInput("x"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if chosen != first {
		t.Errorf("backend = %s, want first", chosen.Info().Name)
	}
	if second.calls != 0 {
		t.Errorf("second calls = %d, want 0", second.calls)
	}
}

func TestResolve_SkipsByCapability(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{"path skips memory-only", PathInput("x"), "path"},
		{"memory skips path-only", MemoryInput("-", []byte{1}), "mem"},
		{"empty buffer is memory", MemoryInput("-", nil), "mem"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pathOnly := &fakeBackend{name: "path", cap: PathOnly, accept: true}
			memOnly := &fakeBackend{name: "mem", cap: MemoryOnly, accept: true}
			r := NewRegistry()
			r.Install(pathOnly)
			r.Install(memOnly)

			_, chosen, err := r.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if chosen.Info().Name != tt.want {
				t.Errorf("backend = %s, want %s", chosen.Info().Name, tt.want)
			}
		})
	}
}

func TestResolve_AllUnsupported(t *testing.T) {
	r := NewRegistry()
	r.Install(&fakeBackend{name: "A", cap: Both})
	r.Install(&fakeBackend{name: "B", cap: PathOnly})

	_, _, err := r.Resolve(PathInput("notes.txt"))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}

	_, _, err = r.Resolve(MemoryInput("-", []byte("x")))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("memory err = %v, want ErrUnsupported", err)
	}
}

func TestResolve_OtherErrorStops(t *testing.T) {
	boom := errors.New("permission denied")
	broken := &fakeBackend{name: "broken", cap: Both, err: boom}
	fallback := &fakeBackend{name: "fallback", cap: Both, accept: true}
	r := NewRegistry()
	r.Install(fallback)
	r.Install(broken)

	_, _, err := r.Resolve(PathInput("x"))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", fallback.calls)
	}
}

func TestBackends_TrialOrder(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		r.Install(&fakeBackend{name: n})
	}

	got := r.Backends()
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Info().Name != want[i] {
			t.Errorf("Backends()[%d] = %s, want %s", i, got[i].Info().Name, want[i])
		}
	}
}

package navigator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_IgnorePathPattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.png", "thumbs/x.png", "deep/thumbs/y.png", "deep/z.png")

	ignore, err := NewIgnore([]string{"**/thumbs"})
	if err != nil {
		t.Fatalf("NewIgnore() error = %v", err)
	}
	got, err := Scan(root, true, ignore)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{filepath.Join(root, "a.png"), filepath.Join(root, "deep/z.png")}
	if len(got) != len(want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope"), true, nil); err == nil {
		t.Error("Scan() of missing root should fail")
	}
}

func TestWalk_Canceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.png", "b.png")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Walk(ctx, root, true, nil, func(string) { calls++ })
	if err != context.Canceled {
		t.Errorf("Walk() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestNewIgnore_BadPattern(t *testing.T) {
	if _, err := NewIgnore([]string{"[unclosed"}); err == nil {
		t.Error("NewIgnore() should reject a malformed pattern")
	}
}

func TestIgnore_NilMatchesNothing(t *testing.T) {
	var ig *Ignore
	if ig.Match("/a/b.png") {
		t.Error("nil Ignore matched")
	}
}

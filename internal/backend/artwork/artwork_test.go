package artwork

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/source"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// id3Bytes builds an ID3v2.3 tag, with an APIC frame when cover is set,
// followed by a few bytes of MPEG audio.
func id3Bytes(cover []byte) []byte {
	var frames bytes.Buffer
	if cover != nil {
		var body bytes.Buffer
		body.WriteByte(0) // ISO-8859-1
		body.WriteString("image/png\x00")
		body.WriteByte(3) // front cover
		body.WriteByte(0) // empty description
		body.Write(cover)

		frames.WriteString("APIC")
		_ = binary.Write(&frames, binary.BigEndian, uint32(body.Len()))
		frames.Write([]byte{0, 0})
		frames.Write(body.Bytes())
	}

	size := frames.Len()
	var out bytes.Buffer
	out.WriteString("ID3")
	out.Write([]byte{3, 0, 0})
	out.Write([]byte{
		byte(size >> 21 & 0x7f),
		byte(size >> 14 & 0x7f),
		byte(size >> 7 & 0x7f),
		byte(size & 0x7f),
	})
	out.Write(frames.Bytes())
	out.Write([]byte{0xff, 0xfb, 0x90, 0x64, 0, 0, 0, 0})
	return out.Bytes()
}

func load(t *testing.T, src source.Source) source.Result {
	t.Helper()
	var got []source.Result
	src.SetCallback(func(r source.Result) { got = append(got, r) })
	src.LoadFirstFrame()
	if len(got) != 1 {
		t.Fatalf("results = %d, want 1", len(got))
	}
	return got[0]
}

func TestOpenMemory_EmbeddedCover(t *testing.T) {
	src, err := New().OpenMemory(id3Bytes(pngBytes(t, 5, 7)))
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}

	r := load(t, src)
	if r.Err != nil {
		t.Fatalf("load error = %v", r.Err)
	}
	if r.Bitmap.Width() != 5 || r.Bitmap.Height() != 7 {
		t.Errorf("size = %dx%d, want 5x7", r.Bitmap.Width(), r.Bitmap.Height())
	}
}

func TestOpenPath_FolderArtFallback(t *testing.T) {
	dir := t.TempDir()
	audio := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(audio, id3Bytes(nil), 0o600); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cover.png"), pngBytes(t, 3, 3), 0o600); err != nil {
		t.Fatalf("write cover: %v", err)
	}

	src, err := New().OpenPath(audio)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}

	r := load(t, src)
	if r.Err != nil {
		t.Fatalf("load error = %v", r.Err)
	}
	if r.Bitmap.Width() != 3 {
		t.Errorf("Width() = %d, want 3", r.Bitmap.Width())
	}
}

func TestOpenPath_NoArtFails(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(audio, id3Bytes(nil), 0o600); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	src, err := New().OpenPath(audio)
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}

	r := load(t, src)
	if r.Err == nil {
		t.Fatal("expected a decode failure")
	}
	if r.Bitmap != nil {
		t.Error("failed load should carry no bitmap")
	}
}

func TestOpen_NotAudio(t *testing.T) {
	_, err := New().OpenMemory(pngBytes(t, 1, 1))
	if err != backend.ErrUnsupported {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

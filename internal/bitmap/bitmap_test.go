package bitmap

import (
	"image"
	"testing"
)

func TestNew_Dimensions(t *testing.T) {
	bmp := New(image.NewRGBA(image.Rect(0, 0, 40, 30)))

	if bmp.Width() != 40 {
		t.Errorf("Width() = %d, want 40", bmp.Width())
	}
	if bmp.Height() != 30 {
		t.Errorf("Height() = %d, want 30", bmp.Height())
	}
	if bmp.Image() == nil {
		t.Error("Image() should not be nil before Free")
	}
}

func TestFree_RunsReleaseOnce(t *testing.T) {
	calls := 0
	bmp := NewWithRelease(image.NewRGBA(image.Rect(0, 0, 1, 1)), func() { calls++ })

	bmp.Free()
	bmp.Free()

	if calls != 1 {
		t.Errorf("release calls = %d, want 1", calls)
	}
	if !bmp.Freed() {
		t.Error("Freed() should be true after Free")
	}
	if bmp.Image() != nil {
		t.Error("Image() should be nil after Free")
	}
	// Dimensions survive release for status display.
	if bmp.Width() != 1 {
		t.Errorf("Width() = %d, want 1", bmp.Width())
	}
}

func TestFree_Nil(t *testing.T) {
	var bmp *Bitmap
	bmp.Free()
	if bmp.Freed() {
		t.Error("nil bitmap should not report freed")
	}
}

package viewer

import (
	"math"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/overlay"
)

func (v *Viewer) handle(msg bridge.Message, now time.Time) {
	switch m := msg.(type) {
	case bridge.FrameReady:
		v.handleFrame(m, now)
	case bridge.DecodeFailed:
		v.handleFailure(m)
	case bridge.NewPath:
		if err := v.nav.Add(m.Path, m.Recursive); err != nil {
			v.log.WithField("path", m.Path).WithError(err).Warn(errmsg.FormatWith(errmsg.OpPathAdd, m.Path, err))
		}
		v.needRedraw = true
	case bridge.ProducerDone:
		v.active--
		entry := v.log.WithField("producer", m.Name)
		if m.Err != nil {
			entry.WithError(m.Err).Warn("producer stopped")
		} else {
			entry.Debug("producer finished")
		}
	case bridge.Command:
		v.execute(m)
	case bridge.Resize:
		v.view.SetWindowSize(m.Width, m.Height)
		if v.displayed != nil {
			v.view.Update(v.image.width, v.image.height)
		}
	default:
		v.log.Warnf("unexpected message %T", msg)
		if r, ok := msg.(bridge.Releaser); ok {
			r.Release()
		}
	}
}

// handleFrame applies a frame from the current source. The first frame a
// source delivers replaces the displayed image; later ones are prefetched
// animation frames.
func (v *Viewer) handleFrame(m bridge.FrameReady, now time.Time) {
	if v.current == nil || m.Origin != v.current {
		m.Release()
		return
	}

	if m.Origin != v.delivered {
		v.delivered = m.Origin
		v.newImage(m, now)
		return
	}

	v.next.Free()
	v.next = m.Bitmap
	v.nextDur = m.FrameTime
}

func (v *Viewer) newImage(m bridge.FrameReady, now time.Time) {
	v.display(m.Bitmap)
	v.releaseNext()
	v.loading = false
	v.needRedraw = true
	v.needRescale = true

	v.nextDue = time.Time{}
	if m.FrameTime > 0 {
		v.nextDue = now.Add(m.FrameTime)
		v.loadNextFrame()
	}
}

func (v *Viewer) handleFailure(m bridge.DecodeFailed) {
	if v.current == nil || m.Origin != v.current {
		return
	}
	path := v.currentPath
	v.log.WithField("path", path).WithError(m.Err).Warn(errmsg.FormatWith(errmsg.OpImageDecode, path, m.Err))

	v.retire()
	v.currentPath = ""
	if v.nav.Selection() == path {
		v.nav.RemoveAt(v.nav.Index())
	} else {
		v.nav.Remove(path)
	}
	v.needRedraw = true
}

// Vars returns the named values available to title and overlay text.
func (v *Viewer) Vars() overlay.Vars {
	index := 0
	if v.nav.Len() > 0 {
		index = v.nav.Index() + 1
	}
	return overlay.Vars{
		overlay.CurrentFile:       v.nav.Selection(),
		overlay.CurrentIndex:      strconv.Itoa(index),
		overlay.FileCount:         strconv.Itoa(v.nav.Len()),
		overlay.FileSize:          v.fileSize,
		overlay.Width:             strconv.Itoa(v.image.width),
		overlay.Height:            strconv.Itoa(v.image.height),
		overlay.Scale:             strconv.Itoa(int(math.Round(v.view.Scale() * 100))),
		overlay.ScalingMode:       v.opts.Scaling.String(),
		overlay.Loading:           boolVar(v.loading),
		overlay.Playing:           boolVar(v.view.Playing()),
		overlay.SlideshowDuration: strconv.Itoa(int(v.slideshow / time.Second)),
		overlay.SlideshowElapsed:  strconv.Itoa(int(v.elapsed / time.Second)),
	}
}

func boolVar(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// logFields describes the current source for log entries.
func (v *Viewer) logFields() logrus.Fields {
	f := logrus.Fields{"path": v.currentPath}
	if v.current != nil {
		f["session"] = v.current.ID()
	}
	return f
}

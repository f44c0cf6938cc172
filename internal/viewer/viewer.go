// Package viewer runs the control loop that ties the backend registry, the
// navigator and decode sessions together.
package viewer

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/bitmap"
	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/navigator"
	"github.com/llehouerou/glimpse/internal/overlay"
	"github.com/llehouerou/glimpse/internal/source"
	"github.com/llehouerou/glimpse/internal/viewport"
)

// DefaultIdleTimeout caps how long the loop sleeps with nothing to do.
const DefaultIdleTimeout = time.Second

// ErrProducerExhausted is the end reason when the viewer stops because it
// ran out of inputs rather than on request.
var ErrProducerExhausted = errors.New("inputs exhausted")

// dueNow is a non-zero timestamp earlier than any real clock reading.
var dueNow = time.Time{}.Add(1)

// Options configures a Viewer.
type Options struct {
	// Loop keeps cycling when navigation runs past either end of the list.
	Loop        bool
	Recursive   bool
	Scaling     viewport.ScalingMode
	Slideshow   time.Duration
	Overlay     bool
	OverlayText string
	TitleText   string
	Ignore      *navigator.Ignore
	IdleTimeout time.Duration
}

// Viewer owns the navigator, the current source and playback state. All of
// them are touched only by the goroutine running Run.
type Viewer struct {
	log      logrus.FieldLogger
	opts     Options
	registry *backend.Registry
	renderer Renderer
	dispatch Dispatcher
	store    SelectionStore

	bridge    *bridge.Bridge
	nav       *navigator.Navigator
	view      *viewport.Viewport
	producers []Producer
	active    int
	stdin     []byte

	current     source.Source
	currentPath string
	fileSize    string
	delivered   source.Source

	displayed *bitmap.Bitmap
	image     displayedImage
	next      *bitmap.Bitmap
	nextDur   time.Duration
	nextDue   time.Time
	loading   bool

	needRescale bool
	needRedraw  bool
	advanced    bool

	slideshow time.Duration
	elapsed   time.Duration
	lastStep  time.Time

	quit   bool
	reason error
}

type displayedImage struct {
	width, height int
}

// New creates a viewer. Background work runs on a GoDispatcher until
// SetDispatcher is called.
func New(registry *backend.Registry, renderer Renderer, opts Options, log logrus.FieldLogger) *Viewer {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.OverlayText == "" {
		opts.OverlayText = overlay.DefaultOverlayText
	}
	if opts.TitleText == "" {
		opts.TitleText = overlay.DefaultTitleText
	}
	return &Viewer{
		log:       log,
		opts:      opts,
		registry:  registry,
		renderer:  renderer,
		dispatch:  NewGoDispatcher(log),
		bridge:    bridge.New(),
		nav:       navigator.New(opts.Ignore),
		view:      viewport.New(),
		slideshow: opts.Slideshow,
	}
}

// SetDispatcher replaces the background task runner.
func (v *Viewer) SetDispatcher(d Dispatcher) { v.dispatch = d }

// SetStore enables persisting each selected path.
func (v *Viewer) SetStore(s SelectionStore) { v.store = s }

// SetStdin provides the image data used for the "-" entry.
func (v *Viewer) SetStdin(data []byte) { v.stdin = data }

// Navigator gives direct access to the input list. Only use it before Run
// or after it returns.
func (v *Viewer) Navigator() *navigator.Navigator { return v.nav }

// AddPath adds a path or directory to the input list.
func (v *Viewer) AddPath(path string, recursive bool) error {
	return v.nav.Add(path, recursive)
}

// AddProducer registers a path producer. It starts when Run is called; the
// viewer stays alive on an empty list while producers are active.
func (v *Viewer) AddProducer(p Producer) {
	v.producers = append(v.producers, p)
	v.active++
}

// Post queues a message for the loop. Safe from any goroutine.
func (v *Viewer) Post(msg bridge.Message) { v.bridge.Post(msg) }

// Reason returns why Run stopped: nil on an explicit quit,
// ErrProducerExhausted when inputs ran out.
func (v *Viewer) Reason() error { return v.reason }

// Run drives the loop until quit, input exhaustion or ctx cancellation.
func (v *Viewer) Run(ctx context.Context) error {
	v.view.SetWindowSize(v.renderer.Size())
	for _, p := range v.producers {
		v.startProducer(ctx, p)
	}
	defer v.shutdown()

	for {
		timeout, done := v.step(time.Now())
		if done {
			return nil
		}
		v.bridge.Wait(ctx, timeout)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (v *Viewer) startProducer(ctx context.Context, p Producer) {
	v.dispatch.Dispatch("producer:"+p.Name(), func() {
		err := p.Run(ctx, v.bridge.Post)
		v.bridge.Post(bridge.ProducerDone{Name: p.Name(), Err: err})
	})
}

// step runs one loop iteration at now and returns how long to wait before
// the next one.
func (v *Viewer) step(now time.Time) (time.Duration, bool) {
	for _, msg := range v.bridge.Drain() {
		v.handle(msg, now)
	}

	if v.finished() {
		return 0, true
	}

	// Pruning unopenable entries can empty or wrap the list.
	if v.resolveSelection() && v.finished() {
		return 0, true
	}
	v.promoteFrame(now)
	v.advanceSlideshow(now)

	if v.needRescale && v.displayed != nil {
		v.needRescale = false
		v.view.Rescale(v.opts.Scaling, v.image.width, v.image.height)
	}
	if v.view.NeedsRedraw() {
		v.needRedraw = true
	}
	if v.needRedraw {
		v.needRedraw = false
		v.renderer.Draw(v.scene())
	}

	return v.waitTimeout(now), false
}

// finished reports whether the loop should stop, recording the reason.
func (v *Viewer) finished() bool {
	if v.quit {
		return true
	}
	if !v.opts.Loop && v.nav.Wrapped() {
		v.log.Info("reached the end of the input list")
		v.reason = ErrProducerExhausted
		return true
	}
	if v.active == 0 && v.nav.Len() == 0 {
		v.log.Info("no input files left")
		v.reason = ErrProducerExhausted
		return true
	}
	return false
}

// resolveSelection opens a source for every selection change, pruning
// entries no backend can open. It reports whether anything was pruned.
func (v *Viewer) resolveSelection() bool {
	pruned := false
	for v.nav.PollChanged() {
		path := v.nav.Selection()
		src, b, err := v.registry.Resolve(v.input(path))
		if err != nil {
			v.log.WithField("path", path).WithError(err).Warn(errmsg.FormatWith(errmsg.OpImageOpen, path, err))
			v.nav.RemoveAt(v.nav.Index())
			pruned = true
			continue
		}

		v.retire()
		v.current = src
		v.currentPath = path
		v.fileSize = fileSize(path)
		v.log.WithFields(logrus.Fields{
			"path":    path,
			"backend": b.Info().Name,
			"session": src.ID(),
		}).Debug("opened input")

		src.SetCallback(func(r source.Result) {
			v.bridge.Post(bridge.FromResult(r))
		})
		v.dispatch.Dispatch("load:"+src.ID(), src.LoadFirstFrame)

		v.loading = true
		v.view.SetPlaying(true)
		v.needRedraw = true
		if v.store != nil {
			v.store.SaveSelection(path)
		}
	}
	return pruned
}

func (v *Viewer) input(path string) backend.Input {
	if path == navigator.StdinPath && v.stdin != nil {
		data := make([]byte, len(v.stdin))
		copy(data, v.stdin)
		return backend.MemoryInput(path, data)
	}
	return backend.PathInput(path)
}

// retire hands the current source to background teardown and drops any
// frame prefetched from it.
func (v *Viewer) retire() {
	if v.current != nil {
		old := v.current
		v.dispatch.Dispatch("free:"+old.ID(), old.Free)
	}
	v.current = nil
	v.delivered = nil
	v.releaseNext()
	v.nextDue = time.Time{}
	v.loading = false
}

func (v *Viewer) releaseNext() {
	v.next.Free()
	v.next = nil
	v.nextDur = 0
}

// promoteFrame shows the prefetched frame once it is due and asks for the
// following one.
func (v *Viewer) promoteFrame(now time.Time) {
	if !v.view.Playing() || v.next == nil || v.nextDue.IsZero() || now.Before(v.nextDue) {
		return
	}

	v.display(v.next)
	v.next = nil
	v.nextDue = now.Add(v.nextDur)
	v.nextDur = 0
	v.needRedraw = true

	v.loadNextFrame()
}

func (v *Viewer) loadNextFrame() bool {
	anim, ok := v.current.(source.Animated)
	if !ok {
		return false
	}
	v.dispatch.Dispatch("next:"+anim.ID(), anim.LoadNextFrame)
	return true
}

func (v *Viewer) display(bmp *bitmap.Bitmap) {
	old := v.displayed
	v.displayed = bmp
	v.image = displayedImage{width: bmp.Width(), height: bmp.Height()}
	if old != bmp {
		old.Free()
	}
}

func (v *Viewer) advanceSlideshow(now time.Time) {
	var dt time.Duration
	if !v.lastStep.IsZero() {
		dt = now.Sub(v.lastStep)
	}
	v.lastStep = now
	v.advanced = false

	if v.slideshow <= 0 {
		return
	}
	v.elapsed += dt
	if v.opts.Overlay {
		v.needRedraw = true
	}
	if v.elapsed >= v.slideshow {
		v.nav.SelectRelative(1)
		v.elapsed = 0
		v.advanced = true
	}
}

func (v *Viewer) waitTimeout(now time.Time) time.Duration {
	if v.advanced {
		return 0
	}
	timeout := v.opts.IdleTimeout
	if v.view.Playing() && v.nextDue.After(now) {
		timeout = min(timeout, v.nextDue.Sub(now))
	}
	if v.slideshow > 0 {
		timeout = min(timeout, max(v.slideshow-v.elapsed, 0))
	}
	return timeout
}

func (v *Viewer) shutdown() {
	v.retire()
	v.displayed.Free()
	v.displayed = nil
	v.bridge.Close()
}

func (v *Viewer) scene() Scene {
	x, y := v.view.Offset()
	s := Scene{
		Scale:   v.view.Scale(),
		X:       x,
		Y:       y,
		Loading: v.loading,
	}
	if _, err := v.nav.Current(); errors.Is(err, navigator.ErrEmpty) {
		s.Empty = true
	}
	if v.displayed != nil {
		s.Image = v.displayed.Image()
	}
	vars := v.Vars()
	s.Title = overlay.Expand(v.opts.TitleText, vars)
	if v.opts.Overlay {
		s.Overlay = overlay.Expand(v.opts.OverlayText, vars)
	}
	return s
}

func fileSize(path string) string {
	if path == navigator.StdinPath {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return humanize.Bytes(uint64(info.Size()))
}

package viewer

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/llehouerou/glimpse/internal/bridge"
	"github.com/llehouerou/glimpse/internal/navigator"
	"github.com/llehouerou/glimpse/internal/viewport"
)

// Command actions understood by the viewer.
const (
	ActionQuit          = "quit"
	ActionNext          = "next"
	ActionPrev          = "prev"
	ActionGoto          = "goto"
	ActionOpen          = "open"
	ActionClose         = "close"
	ActionZoom          = "zoom"
	ActionPan           = "pan"
	ActionCenter        = "center"
	ActionTop           = "top"
	ActionBottom        = "bottom"
	ActionReset         = "reset"
	ActionNextFrame     = "next_frame"
	ActionTogglePlaying = "toggle_playing"
	ActionScaling       = "scaling"
	ActionSlideshow     = "slideshow"
	ActionOverlay       = "overlay"
)

// Actions lists every command action.
var Actions = []string{
	ActionQuit, ActionNext, ActionPrev, ActionGoto, ActionOpen, ActionClose,
	ActionZoom, ActionPan, ActionCenter, ActionTop, ActionBottom, ActionReset,
	ActionNextFrame, ActionTogglePlaying, ActionScaling, ActionSlideshow,
	ActionOverlay,
}

func (v *Viewer) execute(cmd bridge.Command) {
	log := v.log.WithFields(v.logFields()).WithField("command", cmd.Action)

	switch cmd.Action {
	case ActionQuit:
		v.quit = true

	case ActionNext, ActionPrev:
		n := intArg(cmd.Args, 0, 1)
		if cmd.Action == ActionPrev {
			n = -n
		}
		v.nav.SelectRelative(n)
		v.elapsed = 0

	case ActionGoto:
		if len(cmd.Args) != 1 {
			log.Warn("goto needs an index")
			return
		}
		index := intArg(cmd.Args, 0, 1)
		if index > 0 {
			index--
		}
		v.nav.SelectAbsolute(index)
		v.elapsed = 0

	case ActionOpen:
		v.open(cmd.Args)

	case ActionClose:
		v.nav.RemoveAt(v.nav.Index())
		v.elapsed = 0
		if v.nav.Len() == 0 {
			v.retire()
			v.displayed.Free()
			v.displayed = nil
			v.image = displayedImage{}
			v.currentPath = ""
			v.needRedraw = true
		}

	case ActionZoom:
		if v.displayed == nil || len(cmd.Args) != 1 {
			return
		}
		if cmd.Args[0] == "actual" {
			v.view.ScaleToActual(v.image.width, v.image.height)
			return
		}
		v.view.Zoom(v.image.width, v.image.height, intArg(cmd.Args, 0, 0))

	case ActionPan:
		if v.displayed == nil || len(cmd.Args) != 2 {
			return
		}
		v.view.Move(intArg(cmd.Args, 0, 0), intArg(cmd.Args, 1, 0), v.image.width, v.image.height)

	case ActionCenter:
		if v.displayed != nil {
			v.view.Center(v.image.width, v.image.height)
		}

	case ActionTop:
		if v.displayed != nil {
			v.view.Top(v.image.width)
		}

	case ActionBottom:
		if v.displayed != nil {
			v.view.Bottom(v.image.width, v.image.height)
		}

	case ActionReset:
		v.needRescale = true
		v.needRedraw = true

	case ActionNextFrame:
		if v.loadNextFrame() {
			v.nextDue = dueNow
		}

	case ActionTogglePlaying:
		v.view.TogglePlaying()
		v.needRedraw = true

	case ActionScaling:
		if len(cmd.Args) != 1 {
			return
		}
		if cmd.Args[0] == "next" {
			v.opts.Scaling = v.opts.Scaling.Next()
		} else {
			mode, err := viewport.ParseScalingMode(cmd.Args[0])
			if err != nil {
				log.WithError(err).Warn("invalid scaling mode")
				return
			}
			v.opts.Scaling = mode
		}
		v.needRescale = true
		v.needRedraw = true

	case ActionSlideshow:
		if len(cmd.Args) != 1 {
			return
		}
		delta, err := strconv.ParseFloat(cmd.Args[0], 64)
		if err != nil {
			log.WithError(err).Warn("invalid slideshow delta")
			return
		}
		v.slideshow = max(v.slideshow+time.Duration(delta*float64(time.Second)), 0)
		v.needRedraw = true

	case ActionOverlay:
		v.opts.Overlay = !v.opts.Overlay
		v.needRedraw = true

	default:
		log.Warn("unknown command")
	}
}

// open adds paths in the background. Directories are walked off the loop
// goroutine and their files posted back one by one.
func (v *Viewer) open(args []string) {
	recursive := v.opts.Recursive
	if len(args) > 0 && args[0] == "-r" {
		recursive = true
		args = args[1:]
	}
	if len(args) == 0 {
		return
	}

	paths := make([]string, len(args))
	for i, a := range args {
		paths[i] = expandHome(a)
	}
	ignore := v.opts.Ignore
	post := v.bridge.Post

	v.active++
	v.dispatch.Dispatch("open", func() {
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil || !info.IsDir() {
				post(bridge.NewPath{Path: p})
				continue
			}
			_ = navigator.Walk(context.Background(), p, recursive, ignore, func(file string) {
				post(bridge.NewPath{Path: file})
			})
		}
		post(bridge.ProducerDone{Name: "open"})
	})
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func intArg(args []string, i, def int) int {
	if i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return def
	}
	return n
}

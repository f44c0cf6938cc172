package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/llehouerou/glimpse/internal/config"
	"github.com/llehouerou/glimpse/internal/navigator"
	"github.com/llehouerou/glimpse/internal/viewport"
)

type cliFlags struct {
	recursive  bool
	overlay    bool
	noLoop     bool
	listFiles  bool
	resume     bool
	start      string
	scaling    string
	upscaling  string
	background string
	slideshow  float64
	protocol   string
	logLevel   string
	config     string
	watch      []string
	commands   []string
}

func (f *cliFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	fl.BoolVarP(&f.overlay, "overlay", "d", false, "show the overlay")
	fl.BoolVarP(&f.noLoop, "no-loop", "x", false, "exit after the last image instead of wrapping")
	fl.BoolVarP(&f.listFiles, "list-files", "l", false, "print the remaining paths on exit")
	fl.BoolVar(&f.resume, "resume", false, "reopen the last viewed image when no path is given")
	fl.StringVarP(&f.start, "start", "n", "", "start at this path or 1-based index")
	fl.StringVarP(&f.scaling, "scaling", "s", "", "scaling mode: none, shrink or full")
	fl.StringVarP(&f.upscaling, "upscaling", "u", "", "upscaling method: linear or nearest_neighbour")
	fl.StringVarP(&f.background, "background", "b", "", "background: checks or a hex colour")
	fl.Float64VarP(&f.slideshow, "slideshow", "t", 0, "slideshow duration in seconds, 0 to disable")
	fl.StringVar(&f.protocol, "protocol", "", "image protocol: auto, kitty, sixel or blocks")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fl.StringVar(&f.config, "config", "", "extra config file loaded after the defaults")
	fl.StringSliceVar(&f.watch, "watch", nil, "directories to watch for new images")
	fl.StringArrayVarP(&f.commands, "command", "c", nil, "command to run at startup, may be repeated")
}

// apply overrides config values with the flags that were set.
func (f *cliFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if changed("overlay") {
		cfg.Overlay = f.overlay
	}
	if changed("no-loop") {
		loop := !f.noLoop
		cfg.LoopInput = &loop
	}
	if changed("list-files") {
		cfg.ListFilesAtExit = f.listFiles
	}
	if changed("resume") {
		cfg.Resume = f.resume
	}
	if changed("scaling") {
		if _, err := viewport.ParseScalingMode(f.scaling); err != nil {
			return err
		}
		cfg.ScalingMode = f.scaling
	}
	if changed("upscaling") {
		if f.upscaling != config.UpscalingLinear && f.upscaling != config.UpscalingNearest {
			return fmt.Errorf("unknown upscaling method %q", f.upscaling)
		}
		cfg.UpscalingMethod = f.upscaling
	}
	if changed("background") {
		if _, _, err := config.ParseBackground(f.background); err != nil {
			return err
		}
		cfg.Background = f.background
	}
	if changed("slideshow") {
		if f.slideshow < 0 {
			return fmt.Errorf("invalid slideshow duration %v", f.slideshow)
		}
		cfg.SlideshowDuration = f.slideshow
	}
	if changed("protocol") {
		switch f.protocol {
		case config.ProtocolAuto, config.ProtocolKitty, config.ProtocolSixel, config.ProtocolBlocks:
		default:
			return fmt.Errorf("unknown image protocol %q", f.protocol)
		}
		cfg.ImageProtocol = f.protocol
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("watch") {
		for _, dir := range f.watch {
			cfg.Watch = append(cfg.Watch, config.ExpandPath(dir))
		}
	}
	return nil
}

// selectStart moves the cursor to start, a path in the list or a 1-based
// index into it.
func selectStart(nav *navigator.Navigator, start string) error {
	if n, err := strconv.Atoi(start); err == nil {
		if n < 1 || n > nav.Len() {
			return fmt.Errorf("start index %d out of range [1, %d]", n, nav.Len())
		}
		nav.SelectAbsolute(n - 1)
		return nil
	}

	i := nav.Find(start)
	if i < 0 {
		i = nav.Find(filepath.Clean(start))
	}
	if i < 0 {
		return fmt.Errorf("start path %q is not in the input list", start)
	}
	nav.SelectAbsolute(i)
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/glimpse/internal/app"
	"github.com/llehouerou/glimpse/internal/backend"
	"github.com/llehouerou/glimpse/internal/backend/artwork"
	"github.com/llehouerou/glimpse/internal/backend/stdimage"
	"github.com/llehouerou/glimpse/internal/backend/vector"
	"github.com/llehouerou/glimpse/internal/config"
	"github.com/llehouerou/glimpse/internal/errmsg"
	"github.com/llehouerou/glimpse/internal/keymap"
	"github.com/llehouerou/glimpse/internal/logging"
	"github.com/llehouerou/glimpse/internal/navigator"
	"github.com/llehouerou/glimpse/internal/producer"
	"github.com/llehouerou/glimpse/internal/state"
	"github.com/llehouerou/glimpse/internal/stderr"
	"github.com/llehouerou/glimpse/internal/ui/termimg"
	"github.com/llehouerou/glimpse/internal/viewer"
)

var version = "dev"

var errNoInput = errors.New("no input files, see glimpse --help")

func main() {
	if err := newRootCmd(newRegistry()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRegistry installs the backends. The last one installed is tried first.
func newRegistry() *backend.Registry {
	registry := backend.NewRegistry()
	registry.Install(artwork.New())
	registry.Install(vector.New())
	registry.Install(stdimage.New())
	return registry
}

func newRootCmd(registry *backend.Registry) *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:   "glimpse [flags] [path...]",
		Short: "Terminal image viewer",
		Long: `glimpse shows images in the terminal using the Kitty graphics protocol,
Sixel or coloured half blocks.

Paths may be files or directories. With no path, paths are read from stdin,
one per line. A path of "-" reads image data from stdin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, registry, f, args)
		},
	}

	f.register(cmd)
	cmd.SetHelpTemplate(cmd.HelpTemplate() + backendsHelp(registry))
	return cmd
}

// backendsHelp lists the installed backends in trial order.
func backendsHelp(registry *backend.Registry) string {
	var b strings.Builder
	b.WriteString("\nBackends:\n")
	for _, be := range registry.Backends() {
		info := be.Info()
		fmt.Fprintf(&b, "  %-10s %s\n", info.Name, info.Description)
		fmt.Fprintf(&b, "  %-10s %s (%s)\n", "", info.Website, info.License)
	}
	return b.String()
}

func run(cmd *cobra.Command, registry *backend.Registry, f cliFlags, args []string) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if err := f.apply(cmd, cfg); err != nil {
		return err
	}

	log, closer, err := logging.Open(cfg.GetLogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLogOpen, err))
		log = logging.Discard()
	} else {
		defer closer.Close()
	}

	ignore, err := navigator.NewIgnore(cfg.Ignore)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	col, checks, err := cfg.GetBackground()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	renderer := app.NewRenderer()
	v := viewer.New(registry, renderer, viewer.Options{
		Loop:        cfg.GetLoopInput(),
		Recursive:   cfg.Recursive,
		Scaling:     cfg.GetScalingMode(),
		Slideshow:   time.Duration(cfg.GetSlideshowDuration() * float64(time.Second)),
		Overlay:     cfg.Overlay,
		OverlayText: cfg.OverlayText,
		TitleText:   cfg.TitleText,
		Ignore:      ignore,
	}, log)

	store, err := state.Open(log)
	if err != nil {
		log.WithError(err).Warn(errmsg.Format(errmsg.OpStateOpen, err))
	} else {
		defer store.Close()
		v.SetStore(store)
	}

	stdinTaken, err := addInputs(v, cfg, args, store, log)
	if err != nil {
		return err
	}
	if len(cfg.Watch) > 0 {
		v.AddProducer(producer.NewWatch(cfg.Watch, ignore, log))
	} else if !stdinTaken && v.Navigator().Len() == 0 {
		return errNoInput
	}
	if f.start != "" {
		if err := selectStart(v.Navigator(), f.start); err != nil {
			return err
		}
	}
	for _, line := range f.commands {
		cmds, err := keymap.Parse(line)
		if err != nil {
			return errors.New(errmsg.FormatWith(errmsg.OpCommand, line, err))
		}
		for _, c := range cmds {
			v.Post(c)
		}
	}

	resolver := keymap.NewResolver(keymap.Bindings)
	if err := resolver.BindAll(cfg.Binds); err != nil {
		return errors.New(errmsg.Format(errmsg.OpBind, err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		program *tea.Program
		done    = make(chan error, 1)
		started bool
	)
	model := app.New(app.Options{
		Protocol:   termimg.Detect(cfg.GetImageProtocol()),
		Background: termimg.Background{Checks: checks, Color: col},
		Upscaling:  cfg.GetUpscalingMethod(),
		Resolver:   resolver,
		Post:       v.Post,
		Start: func() {
			started = true
			go func() {
				err := v.Run(ctx)
				done <- err
				program.Send(app.DoneMsg{Err: err})
			}()
		},
		Log: log,
	}, renderer)

	if capture, err := stderr.Start(log); err != nil {
		log.WithError(err).Warn("stderr capture unavailable")
	} else {
		defer capture.Stop()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if stdinTaken {
		opts = append(opts, tea.WithInputTTY())
	}
	program = tea.NewProgram(model, opts...)
	renderer.Attach(ctx, program.Send)

	_, uiErr := program.Run()
	cancel()

	var runErr error
	if started {
		runErr = <-done
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return errors.New(errmsg.Format(errmsg.OpTerminal, uiErr))
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	log.WithField("reason", v.Reason()).Info("viewer stopped")
	if cfg.ListFilesAtExit {
		for _, p := range v.Navigator().Paths() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadWith(path)
	}
	return config.Load()
}

// addInputs fills the navigator from the arguments. It reports whether
// stdin was consumed, in which case keys must come from the terminal.
func addInputs(v *viewer.Viewer, cfg *config.Config, args []string, store *state.Manager, log logrus.FieldLogger) (bool, error) {
	stdinTaken := false
	for _, arg := range args {
		if arg == navigator.StdinPath && !stdinTaken {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return false, errors.New(errmsg.Format(errmsg.OpStdinRead, err))
			}
			v.SetStdin(data)
			stdinTaken = true
		}
		if err := v.AddPath(arg, cfg.Recursive); err != nil {
			log.WithError(err).WithField("path", arg).Warn(errmsg.FormatWith(errmsg.OpPathAdd, arg, err))
		}
	}
	if len(args) > 0 {
		return stdinTaken, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		v.AddProducer(producer.NewLines("stdin", os.Stdin, cfg.Recursive))
		return true, nil
	}

	if cfg.Resume && store != nil {
		resume(v, store, cfg.Recursive, log)
	}
	return false, nil
}

// resumeHistory bounds how far back resume looks for a file that still exists.
const resumeHistory = 20

// resume reopens the directory of the last viewed image, selecting it.
func resume(v *viewer.Viewer, store state.Interface, recursive bool, log logrus.FieldLogger) {
	path := resumePath(store)
	if path == "" {
		return
	}
	dir := filepath.Dir(path)
	if err := v.AddPath(dir, recursive); err != nil {
		log.WithError(err).WithField("path", dir).Warn("resume failed")
		return
	}
	if i := v.Navigator().Find(path); i >= 0 {
		v.Navigator().SelectAbsolute(i)
	}
	log.WithField("path", path).Info("resumed")
}

// resumePath returns the last selection, or the most recent history entry
// when that file is gone. It returns "" when nothing viewed still exists.
func resumePath(store state.Interface) string {
	if sel, err := store.LastSelection(); err == nil && sel != nil && exists(sel.Path) {
		return sel.Path
	}
	history, err := store.History(resumeHistory)
	if err != nil {
		return ""
	}
	for _, e := range history {
		if exists(e.Path) {
			return e.Path
		}
	}
	return ""
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

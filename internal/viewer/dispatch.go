package viewer

import (
	"github.com/sirupsen/logrus"
)

// Task is a handle on background work. The viewer loop never waits on it;
// results travel through the bridge.
type Task struct {
	name string
	done chan struct{}
}

// Name returns the label the task was dispatched with.
func (t *Task) Name() string { return t.name }

// Done is closed when the work has returned.
func (t *Task) Done() <-chan struct{} { return t.done }

// Dispatcher runs work off the viewer goroutine.
type Dispatcher interface {
	Dispatch(name string, fn func()) *Task
}

// GoDispatcher runs each task on its own goroutine and recovers panics.
type GoDispatcher struct {
	log logrus.FieldLogger
}

// NewGoDispatcher creates a dispatcher that logs recovered panics to log.
func NewGoDispatcher(log logrus.FieldLogger) *GoDispatcher {
	return &GoDispatcher{log: log}
}

func (d *GoDispatcher) Dispatch(name string, fn func()) *Task {
	t := &Task{name: name, done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				d.log.WithField("task", name).Errorf("task panicked: %v", r)
			}
		}()
		fn()
	}()
	return t
}

// InlineDispatcher runs tasks synchronously on the calling goroutine.
type InlineDispatcher struct{}

func (InlineDispatcher) Dispatch(name string, fn func()) *Task {
	t := &Task{name: name, done: make(chan struct{})}
	fn()
	close(t.done)
	return t
}

// Verify interface compliance at compile time.
var (
	_ Dispatcher = (*GoDispatcher)(nil)
	_ Dispatcher = InlineDispatcher{}
)

package source

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/glimpse/internal/bitmap"
)

// Mock is a test double for Source. Loads are recorded and only produce a
// result when one was queued with QueueFrame or QueueError.
type Mock struct {
	mu         sync.Mutex
	origin     Source
	id         string
	name       string
	cb         Callback
	state      State
	queued     []Result
	firstCalls int
	nextCalls  int
	freeCalls  int
}

// MockAnimated is a Mock that also implements Animated.
type MockAnimated struct {
	*Mock
}

// NewMock creates a still-image mock source.
func NewMock(name string) *Mock {
	m := &Mock{id: uuid.NewString(), name: name}
	m.origin = m
	return m
}

// NewMockAnimated creates an animated mock source.
func NewMockAnimated(name string) *MockAnimated {
	a := &MockAnimated{Mock: NewMock(name)}
	a.origin = a
	return a
}

// QueueFrame queues a frame for the next load call.
func (m *Mock) QueueFrame(bmp *bitmap.Bitmap, frameTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, Result{Bitmap: bmp, FrameTime: frameTime})
}

// QueueError queues a failure for the next load call.
func (m *Mock) QueueError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = append(m.queued, Result{Err: err})
}

// Emit delivers a result immediately, as if a load call had completed.
func (m *Mock) Emit(r Result) {
	m.mu.Lock()
	cb := m.cb
	m.mu.Unlock()
	r.Source = m.origin
	if cb != nil {
		cb(r)
	}
}

func (m *Mock) ID() string { return m.id }

func (m *Mock) Name() string { return m.name }

func (m *Mock) SetCallback(cb Callback) {
	m.mu.Lock()
	m.cb = cb
	m.mu.Unlock()
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) LoadFirstFrame() {
	m.mu.Lock()
	m.firstCalls++
	m.mu.Unlock()
	m.deliverQueued()
}

func (m *MockAnimated) LoadNextFrame() {
	m.mu.Lock()
	m.nextCalls++
	m.mu.Unlock()
	m.deliverQueued()
}

func (m *Mock) deliverQueued() {
	m.mu.Lock()
	if len(m.queued) == 0 || m.state == Freed {
		m.state = Loading
		m.mu.Unlock()
		return
	}
	r := m.queued[0]
	m.queued = m.queued[1:]
	if r.Err != nil {
		m.state = Failed
	} else {
		m.state = Ready
	}
	cb := m.cb
	m.mu.Unlock()

	r.Source = m.origin
	if cb != nil {
		cb(r)
	}
}

func (m *Mock) Free() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.freeCalls++
	m.state = Freed
}

// FirstCalls returns the number of LoadFirstFrame calls.
func (m *Mock) FirstCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firstCalls
}

// NextCalls returns the number of LoadNextFrame calls.
func (m *Mock) NextCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextCalls
}

// FreeCalls returns the number of Free calls.
func (m *Mock) FreeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freeCalls
}

// Verify mocks implement the contracts at compile time.
var (
	_ Source   = (*Mock)(nil)
	_ Animated = (*MockAnimated)(nil)
)

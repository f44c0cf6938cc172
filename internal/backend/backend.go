// Package backend holds the decoder registry. A backend turns a path or an
// in-memory buffer into a source.Source.
package backend

import (
	"errors"

	"github.com/llehouerou/glimpse/internal/source"
)

var (
	// ErrUnsupported is returned when no backend accepts an input.
	ErrUnsupported = errors.New("unsupported input")
	// ErrNoBackends is returned by Resolve on an empty registry.
	ErrNoBackends = errors.New("no backends installed")
)

// Capability describes which input kinds a backend can open.
type Capability int

const (
	PathOnly Capability = iota
	MemoryOnly
	Both
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case PathOnly:
		return "path"
	case MemoryOnly:
		return "memory"
	case Both:
		return "path+memory"
	default:
		return "unknown"
	}
}

// Accepts reports whether the capability covers the input kind.
func (c Capability) Accepts(in Input) bool {
	if in.IsMemory() {
		return c == MemoryOnly || c == Both
	}
	return c == PathOnly || c == Both
}

// Info describes a backend for listings.
type Info struct {
	Name        string
	Description string
	Website     string
	License     string
}

// Backend is a decoder descriptor.
//
// OpenPath and OpenMemory return ErrUnsupported when the input is not in a
// format the backend handles. They are only called for input kinds covered
// by Capability.
type Backend interface {
	Info() Info
	Capability() Capability
	OpenPath(path string) (source.Source, error)
	OpenMemory(data []byte) (source.Source, error)
}

// Input is either a filesystem path or an in-memory buffer.
type Input struct {
	// Name identifies the input in logs and in the source name.
	Name string
	Path string
	Data []byte
}

// PathInput builds a path input.
func PathInput(path string) Input {
	return Input{Name: path, Path: path}
}

// MemoryInput builds a memory input. The backend owns data afterwards.
func MemoryInput(name string, data []byte) Input {
	if data == nil {
		data = []byte{}
	}
	return Input{Name: name, Data: data}
}

// IsMemory reports whether the input is a buffer.
func (in Input) IsMemory() bool {
	return in.Data != nil
}

package file

import (
	"context"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/event"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file/iorequest"
)

// Access is the access mode a handle was opened with.
type Access uint32

const (
	// AccessRead permits read requests through the handle.
	AccessRead Access = 1 << 0
	// AccessWrite permits write requests through the handle.
	AccessWrite Access = 1 << 1
)

// Handle flag bits.
const (
	// FlagNonblock makes I/O fail with a would-block status instead of
	// sleeping.
	FlagNonblock uint32 = 1 << 0
)

// validFlags is the set of flag bits Open and SetFlags accept.
const validFlags = FlagNonblock

// Event codes a file can be waited on for.
const (
	// EventReadable fires when a read can make progress.
	EventReadable uint32 = iota
	// EventWritable fires when a write can make progress.
	EventWritable
	// EventHangup fires when the file's counterpart has gone away.
	EventHangup
)

// Type identifies the kind of object behind a file.
type Type uint8

const (
	// TypeRegular is an ordinary file.
	TypeRegular Type = iota
	// TypePipe is a unidirectional data pipe.
	TypePipe
)

// Info describes a file to stat-like callers.
type Info struct {
	Type      Type
	Links     int
	BlockSize int
}

// Ops is the contract a file implementation plugs into the handle
// layer.
//
// Close is called exactly once per handle, when the handle is released.
// Wait and Unwait manage edge-triggered event subscriptions; IO consumes
// an I/O request under the implementation's own locking.
type Ops interface {
	Close(h *Handle)
	Name(h *Handle) string
	Wait(h *Handle, ev *event.Event) error
	Unwait(h *Handle, ev *event.Event)
	IO(ctx context.Context, h *Handle, req *iorequest.Request) error
	Info(h *Handle) Info
}

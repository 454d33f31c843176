package file

import (
	"context"
	"sync/atomic"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/event"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file/iorequest"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/shared/id"
)

// Handle is one endpoint's reference to a file object. It pins the
// access mode decided at open time, carries the mutable flag word, and
// guarantees the object's Close sees each handle at most once.
type Handle struct {
	id     id.HandleID
	ops    Ops
	access Access
	flags  atomic.Uint32
	closed atomic.Bool
}

// Open binds a new handle to a file implementation.
func Open(ops Ops, access Access, flags uint32) (*Handle, error) {
	if ops == nil {
		return nil, kstatus.ErrInvalidArgument
	}
	if access != AccessRead && access != AccessWrite {
		return nil, kstatus.ErrInvalidArgument
	}
	if flags&^validFlags != 0 {
		return nil, kstatus.ErrInvalidArgument
	}

	h := &Handle{
		id:     id.NewHandleID(),
		ops:    ops,
		access: access,
	}
	h.flags.Store(flags)
	return h, nil
}

// ID returns the handle's debug identifier.
func (h *Handle) ID() id.HandleID {
	return h.id
}

// Access returns the access mode the handle was opened with.
func (h *Handle) Access() Access {
	return h.access
}

// Flags returns the current flag word.
func (h *Handle) Flags() uint32 {
	return h.flags.Load()
}

// SetFlags replaces the flag word. Operations sample flags once at
// entry, so a change applies to subsequent calls only.
func (h *Handle) SetFlags(flags uint32) error {
	if flags&^validFlags != 0 {
		return kstatus.ErrInvalidArgument
	}
	h.flags.Store(flags)
	return nil
}

// Close releases the handle. The underlying object's close runs once;
// closing an already-closed handle reports an invalid argument.
func (h *Handle) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return kstatus.ErrInvalidArgument
	}
	h.ops.Close(h)
	return nil
}

// Name returns the object's debug name for this handle.
func (h *Handle) Name() string {
	return h.ops.Name(h)
}

// Info returns the object's file information.
func (h *Handle) Info() Info {
	return h.ops.Info(h)
}

// Wait subscribes ev to the object. If the event's condition already
// holds it is signalled before Wait returns.
func (h *Handle) Wait(ev *event.Event) error {
	if h.closed.Load() {
		return kstatus.ErrInvalidArgument
	}
	return h.ops.Wait(h, ev)
}

// Unwait removes a subscription. Removing an event that is not
// registered is a no-op.
func (h *Handle) Unwait(ev *event.Event) {
	h.ops.Unwait(h, ev)
}

// IO submits an I/O request. The request direction must match the
// handle's access mode.
func (h *Handle) IO(ctx context.Context, req *iorequest.Request) error {
	if h.closed.Load() {
		return kstatus.ErrInvalidArgument
	}
	switch req.Op {
	case iorequest.Read:
		if h.access&AccessRead == 0 {
			return kstatus.ErrAccessDenied
		}
	case iorequest.Write:
		if h.access&AccessWrite == 0 {
			return kstatus.ErrAccessDenied
		}
	}
	return h.ops.IO(ctx, h, req)
}

// Read fills buf from the object and returns the byte count
// transferred, which may be short on end-of-stream or interruption.
func (h *Handle) Read(ctx context.Context, buf []byte) (int, error) {
	req := iorequest.NewRead(buf)
	err := h.IO(ctx, req)
	return req.Transferred, err
}

// Write sends data to the object and returns the byte count
// transferred.
func (h *Handle) Write(ctx context.Context, data []byte) (int, error) {
	req := iorequest.NewWrite(data)
	err := h.IO(ctx, req)
	return req.Transferred, err
}

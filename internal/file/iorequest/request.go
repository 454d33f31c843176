// Package iorequest carries user buffers in and out of kernel space.
//
// A request pairs a direction and a byte count with the copy routine
// that moves data between the caller's memory and a kernel slice. The
// routine is supplied by the layer that built the request, so transports
// with fallible user-memory access can surface copy faults without the
// consuming object knowing how the bytes move.
package iorequest

// Op is the direction of an I/O request.
type Op uint8

const (
	// Read transfers bytes from the kernel object to the user buffer.
	Read Op = iota
	// Write transfers bytes from the user buffer to the kernel object.
	Write
)

// String returns the direction name.
func (op Op) String() string {
	if op == Read {
		return "read"
	}
	return "write"
}

// CopyFunc moves len(kern) bytes between the request's user memory at
// the given offset and the kernel slice kern. The direction is fixed by
// the request's op. A non-nil error marks the whole slice as not
// transferred.
type CopyFunc func(kern []byte, offset int) error

// Request describes one I/O operation in flight.
type Request struct {
	// Op is the transfer direction.
	Op Op
	// Total is the caller-requested byte count.
	Total int
	// Transferred counts the bytes successfully copied so far.
	Transferred int

	copy CopyFunc
}

// New creates a request with a caller-supplied copy routine.
func New(op Op, total int, fn CopyFunc) *Request {
	return &Request{Op: op, Total: total, copy: fn}
}

// NewRead creates a read request that fills buf.
func NewRead(buf []byte) *Request {
	return New(Read, len(buf), func(kern []byte, offset int) error {
		copy(buf[offset:], kern)
		return nil
	})
}

// NewWrite creates a write request that drains data.
func NewWrite(data []byte) *Request {
	return New(Write, len(data), func(kern []byte, offset int) error {
		copy(kern, data[offset:])
		return nil
	})
}

// Remaining returns the bytes still to transfer.
func (r *Request) Remaining() int {
	return r.Total - r.Transferred
}

// Copy moves len(kern) bytes through the request's copy routine and, on
// success, advances Transferred.
func (r *Request) Copy(kern []byte) error {
	if err := r.copy(kern, r.Transferred); err != nil {
		return err
	}
	r.Transferred += len(kern)
	return nil
}

// Rollback undoes the accounting of n previously transferred bytes.
// Used when the second slice of a split copy fails after the first
// already advanced the count.
func (r *Request) Rollback(n int) {
	r.Transferred -= n
}

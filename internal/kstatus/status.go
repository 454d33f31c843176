// Package kstatus defines the status codes the kernel reports at its
// boundaries.
//
// Statuses are sentinel errors compared with errors.Is. Success is a nil
// error; partial transfers are reported through the io request's
// transferred count, not through the status.
package kstatus

// Status is a kernel status code. It implements error so it can flow
// through ordinary Go error returns.
type Status string

// Error returns the human-readable description of the status.
func (s Status) Error() string { return string(s) }

const (
	// ErrWouldBlock reports a non-blocking operation that could make no
	// progress.
	ErrWouldBlock Status = "operation would block"

	// ErrPipeClosed reports a write to a pipe whose read end has closed.
	ErrPipeClosed Status = "pipe closed"

	// ErrInterrupted reports a sleep aborted by cancellation.
	ErrInterrupted Status = "interrupted"

	// ErrTimedOut reports a sleep aborted by a deadline.
	ErrTimedOut Status = "timed out"

	// ErrNoMemory reports a failed buffer allocation.
	ErrNoMemory Status = "out of memory"

	// ErrInvalidEvent reports a wait for an event a file does not support.
	ErrInvalidEvent Status = "invalid event"

	// ErrInvalidArgument reports a malformed argument such as an unknown
	// flag bit or an already-closed handle.
	ErrInvalidArgument Status = "invalid argument"

	// ErrAccessDenied reports an operation the handle's access mode does
	// not permit.
	ErrAccessDenied Status = "access denied"

	// ErrCopyFault reports a failed copy between user and kernel memory.
	ErrCopyFault Status = "memory copy fault"
)

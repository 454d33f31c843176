// Package pipe implements the kernel's unidirectional in-memory data
// pipe.
//
// A pipe is a single object with a read end and a write end, each
// accessed through its own file handle. Bytes written at the write end
// come back, in order, at the read end. The buffer holds exactly one
// page; transfers no larger than the buffer are atomic with respect to
// other transfers in the same direction, larger ones are split into
// page-sized chunks that may interleave at chunk boundaries.
//
// Key Components:
//   - Pipe: the locked core (ring buffer, end states, wait fabric) and
//     its file.Ops adapter
//   - CreatePair: atomic construction of the matched handle pair
//   - Configure: process-wide defaults for logging and IO tracing
//
// Closing the write end gives readers end-of-stream once the buffer
// drains; closing the read end fails writers with a pipe-closed status.
// The pipe is torn down by whichever close flips the last end shut.
package pipe

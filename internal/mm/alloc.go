// Package mm provides the kernel's backing memory allocator.
//
// Object data buffers come from AllocPages, which guarantees
// page-aligned, zeroed storage so buffer sizes stated in pages hold
// exactly.
package mm

import (
	"unsafe"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
)

// PageSize is the size of one memory page in bytes.
const PageSize = 4096

// AllocPages returns zeroed, page-aligned storage of exactly n bytes.
// n must be a positive multiple of PageSize.
func AllocPages(n int) ([]byte, error) {
	if n <= 0 || n%PageSize != 0 {
		return nil, kstatus.ErrInvalidArgument
	}

	// Over-allocate by a page and slice to the aligned window. The Go
	// allocator gives no alignment guarantee beyond the type's.
	raw := make([]byte, n+PageSize)
	base := uintptr(unsafe.Pointer(&raw[0]))
	off := int((PageSize - base%PageSize) % PageSize)
	return raw[off : off+n : off+n], nil
}

package mm

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
)

func TestAllocPages(t *testing.T) {
	t.Run("aligned and zeroed", func(t *testing.T) {
		buf, err := AllocPages(PageSize)
		require.NoError(t, err)
		require.Len(t, buf, PageSize)

		base := uintptr(unsafe.Pointer(&buf[0]))
		assert.Zero(t, base%PageSize)

		for i, b := range buf {
			if b != 0 {
				t.Fatalf("byte %d not zeroed", i)
			}
		}
	})

	t.Run("multiple pages", func(t *testing.T) {
		buf, err := AllocPages(3 * PageSize)
		require.NoError(t, err)
		assert.Len(t, buf, 3*PageSize)
	})

	t.Run("rejects non page multiples", func(t *testing.T) {
		_, err := AllocPages(100)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)

		_, err = AllocPages(0)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)

		_, err = AllocPages(-PageSize)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)
	})
}

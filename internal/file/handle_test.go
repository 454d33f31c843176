package file

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/event"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file/iorequest"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
)

// fakeOps records the calls a handle routes to its object.
type fakeOps struct {
	closed  int
	ioCalls int
	lastReq *iorequest.Request
}

func (f *fakeOps) Close(h *Handle)       { f.closed++ }
func (f *fakeOps) Name(h *Handle) string { return "fake:0" }

func (f *fakeOps) Wait(h *Handle, ev *event.Event) error { return nil }
func (f *fakeOps) Unwait(h *Handle, ev *event.Event)     {}

func (f *fakeOps) IO(ctx context.Context, h *Handle, req *iorequest.Request) error {
	f.ioCalls++
	f.lastReq = req
	return nil
}

func (f *fakeOps) Info(h *Handle) Info {
	return Info{Type: TypeRegular, Links: 1, BlockSize: 512}
}

func TestOpenValidation(t *testing.T) {
	ops := &fakeOps{}

	t.Run("nil ops", func(t *testing.T) {
		_, err := Open(nil, AccessRead, 0)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)
	})

	t.Run("bad access", func(t *testing.T) {
		_, err := Open(ops, AccessRead|AccessWrite, 0)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)

		_, err = Open(ops, 0, 0)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)
	})

	t.Run("unknown flag bits", func(t *testing.T) {
		_, err := Open(ops, AccessRead, 0xF0)
		assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)
	})

	t.Run("valid", func(t *testing.T) {
		h, err := Open(ops, AccessRead, FlagNonblock)
		require.NoError(t, err)
		assert.Equal(t, AccessRead, h.Access())
		assert.Equal(t, FlagNonblock, h.Flags())
		assert.True(t, strings.HasPrefix(h.ID().String(), "fh_"))
	})
}

func TestSetFlags(t *testing.T) {
	h, err := Open(&fakeOps{}, AccessRead, 0)
	require.NoError(t, err)

	require.NoError(t, h.SetFlags(FlagNonblock))
	assert.Equal(t, FlagNonblock, h.Flags())

	assert.ErrorIs(t, h.SetFlags(0xF0), kstatus.ErrInvalidArgument)
	assert.Equal(t, FlagNonblock, h.Flags())
}

func TestCloseRunsOnce(t *testing.T) {
	ops := &fakeOps{}
	h, err := Open(ops, AccessWrite, 0)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.Equal(t, 1, ops.closed)

	assert.ErrorIs(t, h.Close(), kstatus.ErrInvalidArgument)
	assert.Equal(t, 1, ops.closed)
}

func TestAccessEnforcement(t *testing.T) {
	ctx := context.Background()
	ops := &fakeOps{}

	readH, err := Open(ops, AccessRead, 0)
	require.NoError(t, err)
	writeH, err := Open(ops, AccessWrite, 0)
	require.NoError(t, err)

	_, err = readH.Write(ctx, []byte("x"))
	assert.ErrorIs(t, err, kstatus.ErrAccessDenied)

	_, err = writeH.Read(ctx, make([]byte, 1))
	assert.ErrorIs(t, err, kstatus.ErrAccessDenied)

	assert.Equal(t, 0, ops.ioCalls)

	_, err = writeH.Write(ctx, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, ops.ioCalls)
	assert.Equal(t, iorequest.Write, ops.lastReq.Op)
}

func TestClosedHandleRejectsOperations(t *testing.T) {
	ctx := context.Background()
	h, err := Open(&fakeOps{}, AccessRead, 0)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = h.Read(ctx, make([]byte, 4))
	assert.ErrorIs(t, err, kstatus.ErrInvalidArgument)

	assert.ErrorIs(t, h.Wait(event.NewEvent(EventReadable)), kstatus.ErrInvalidArgument)
}

func TestInfoPassthrough(t *testing.T) {
	h, err := Open(&fakeOps{}, AccessRead, 0)
	require.NoError(t, err)

	info := h.Info()
	assert.Equal(t, TypeRegular, info.Type)
	assert.Equal(t, 512, info.BlockSize)
	assert.Equal(t, "fake:0", h.Name())
}

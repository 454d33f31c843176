package iorequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
)

func TestWriteRequestDrainsUserBuffer(t *testing.T) {
	req := NewWrite([]byte("hello world"))
	assert.Equal(t, Write, req.Op)
	assert.Equal(t, 11, req.Total)
	assert.Equal(t, 11, req.Remaining())

	kern := make([]byte, 5)
	require.NoError(t, req.Copy(kern))
	assert.Equal(t, "hello", string(kern))
	assert.Equal(t, 5, req.Transferred)

	kern = make([]byte, 6)
	require.NoError(t, req.Copy(kern))
	assert.Equal(t, " world", string(kern))
	assert.Equal(t, 0, req.Remaining())
}

func TestReadRequestFillsUserBuffer(t *testing.T) {
	buf := make([]byte, 8)
	req := NewRead(buf)
	assert.Equal(t, Read, req.Op)

	require.NoError(t, req.Copy([]byte("abcd")))
	require.NoError(t, req.Copy([]byte("efgh")))
	assert.Equal(t, "abcdefgh", string(buf))
	assert.Equal(t, 8, req.Transferred)
}

func TestCopyFaultLeavesCountUntouched(t *testing.T) {
	req := New(Write, 8, func(kern []byte, offset int) error {
		return kstatus.ErrCopyFault
	})

	err := req.Copy(make([]byte, 8))
	assert.ErrorIs(t, err, kstatus.ErrCopyFault)
	assert.Equal(t, 0, req.Transferred)
}

func TestRollback(t *testing.T) {
	req := NewWrite(make([]byte, 100))
	require.NoError(t, req.Copy(make([]byte, 60)))
	require.Equal(t, 60, req.Transferred)

	req.Rollback(60)
	assert.Equal(t, 0, req.Transferred)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "read", Read.String())
	assert.Equal(t, "write", Write.String())
}

package pipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/event"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file/iorequest"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/ksync"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/mm"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/monitoring"
)

// Size is the capacity of a pipe's data buffer, one page. Transfers up
// to this size are atomic; callers can observe the value through
// Info.BlockSize.
const Size = mm.PageSize

// Indices for the two ends of a pipe.
const (
	endRead = iota
	endWrite
)

// nextID numbers pipes for debug naming.
var nextID atomic.Uint32

// Pipe is a unidirectional byte pipe. One mutex serializes the ring
// indices, the end states, the condition variables' wait queues, and
// the notifier lists. Pipe implements file.Ops; handles route their
// operations here.
type Pipe struct {
	mu sync.Mutex

	open [2]bool

	spaceCond *ksync.Cond
	dataCond  *ksync.Cond

	spaceNotifier  event.Notifier
	dataNotifier   event.Notifier
	hangupNotifier [2]event.Notifier

	ring      ring
	destroyed bool

	id     uint32
	logger *zap.Logger
	trace  bool
}

func endOf(h *file.Handle) int {
	if h.Access()&file.AccessWrite != 0 {
		return endWrite
	}
	return endRead
}

// Close releases one end of the pipe. Whoever shuts the last end tears
// the pipe down after dropping the lock.
func (p *Pipe) Close(h *file.Handle) {
	end := endOf(h)

	p.mu.Lock()

	if !p.open[end] {
		p.mu.Unlock()
		panic("pipe: close of an end that is not open")
	}
	p.open[end] = false

	if end == endWrite {
		// Readers blocked on data see end-of-stream; readable and
		// hang-up subscribers on the read side wake to re-check.
		p.dataCond.Broadcast()
		p.dataNotifier.Run()
		p.hangupNotifier[endWrite].Run()
	} else {
		// Writers blocked on space fail with pipe-closed; writable and
		// hang-up subscribers on the write side wake to re-check.
		p.spaceCond.Broadcast()
		p.spaceNotifier.Run()
		p.hangupNotifier[endRead].Run()
	}

	destroy := !p.open[endRead] && !p.open[endWrite]
	p.mu.Unlock()

	p.logger.Debug("pipe end closed",
		zap.Uint32("pipe_id", p.id),
		zap.String("handle_id", h.ID().String()),
		zap.Bool("write_end", end == endWrite),
	)

	if destroy {
		p.destroy()
	}
}

// destroy frees the pipe once both ends are closed. Subscribers must
// unwait their events before dropping the last handle.
func (p *Pipe) destroy() {
	if p.destroyed {
		panic("pipe: destroyed twice")
	}
	if !p.spaceNotifier.Empty() || !p.dataNotifier.Empty() ||
		!p.hangupNotifier[endRead].Empty() || !p.hangupNotifier[endWrite].Empty() {
		panic("pipe: destroyed with registered event entries")
	}

	p.destroyed = true
	p.ring.buf = nil

	monitoring.Pipes().PipesActive.Dec()
	p.logger.Debug("pipe destroyed", zap.Uint32("pipe_id", p.id))
}

// Name returns the debug name for one end, for example "pipe:<-7" for
// the read end of pipe 7 and "pipe:->7" for its write end.
func (p *Pipe) Name(h *file.Handle) string {
	dir := "->"
	if h.Access()&file.AccessRead != 0 {
		dir = "<-"
	}
	return fmt.Sprintf("pipe:%s%d", dir, p.id)
}

// Info describes the pipe. BlockSize advertises the atomic transfer
// bound.
func (p *Pipe) Info(h *file.Handle) file.Info {
	return file.Info{
		Type:      file.TypePipe,
		Links:     1,
		BlockSize: Size,
	}
}

// Wait subscribes an event to the pipe. Events whose condition already
// holds are signalled immediately; others are attached to the matching
// notifier list and fire, possibly spuriously, when the state next
// changes in their direction.
func (p *Pipe) Wait(h *file.Handle, ev *event.Event) error {
	end := endOf(h)
	otherEnd := 1 - end

	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case file.EventReadable:
		// Never fires on the write-end handle.
		if end != endRead {
			return nil
		}
		if p.ring.readable() > 0 || !p.open[endWrite] {
			ev.Signal()
		} else {
			p.dataNotifier.Register(ev.Entry())
		}

	case file.EventWritable:
		if end != endWrite {
			return nil
		}
		// A closed read end counts as a wakeup condition: the waiter
		// must learn the pipe is dead rather than sleep forever.
		if p.ring.readable() < Size || !p.open[endRead] {
			ev.Signal()
		} else {
			p.spaceNotifier.Register(ev.Entry())
		}

	case file.EventHangup:
		if !p.open[otherEnd] {
			ev.Signal()
		} else {
			p.hangupNotifier[otherEnd].Register(ev.Entry())
		}

	default:
		return kstatus.ErrInvalidEvent
	}

	return nil
}

// Unwait removes an event subscription. Removing an event that is not
// attached is a no-op.
func (p *Pipe) Unwait(h *file.Handle, ev *event.Event) {
	end := endOf(h)
	otherEnd := 1 - end

	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case file.EventReadable:
		if end == endRead {
			p.dataNotifier.Unregister(ev.Entry())
		}
	case file.EventWritable:
		if end == endWrite {
			p.spaceNotifier.Unregister(ev.Entry())
		}
	case file.EventHangup:
		p.hangupNotifier[otherEnd].Unregister(ev.Entry())
	}
}

// waitData sleeps until the pipe has data or the write end is gone.
// Called with the lock held; the lock is held on return.
func (p *Pipe) waitData(ctx context.Context, nonblock bool) error {
	for p.open[endWrite] && p.ring.readable() == 0 {
		if nonblock {
			monitoring.Pipes().WouldBlock.WithLabelValues("read").Inc()
			return kstatus.ErrWouldBlock
		}
		if err := p.dataCond.Wait(ctx); err != nil {
			countWaitAbort(err)
			return err
		}
	}
	return nil
}

// waitSpace sleeps until at least size bytes of space are free or the
// read end is gone. Called with the lock held; the lock is held on
// return.
func (p *Pipe) waitSpace(ctx context.Context, size int, nonblock bool) error {
	for p.open[endRead] && p.ring.writable() < size {
		if nonblock {
			monitoring.Pipes().WouldBlock.WithLabelValues("write").Inc()
			return kstatus.ErrWouldBlock
		}
		if err := p.spaceCond.Wait(ctx); err != nil {
			countWaitAbort(err)
			return err
		}
	}

	// The read end may have closed while we slept.
	if !p.open[endRead] {
		return kstatus.ErrPipeClosed
	}
	return nil
}

func countWaitAbort(err error) {
	reason := "interrupted"
	if errors.Is(err, kstatus.ErrTimedOut) {
		reason = "timed_out"
	}
	monitoring.Pipes().WaitAborts.WithLabelValues(reason).Inc()
}

// copySpans moves size bytes between the request and the ring at pos,
// splitting across the wrap point when needed. A failure on the second
// slice rolls the first slice's accounting back so nothing partial is
// committed for this chunk.
func (p *Pipe) copySpans(req *iorequest.Request, pos, size int) error {
	first, second := p.ring.spans(pos, size)

	if err := req.Copy(p.ring.buf[first.off : first.off+first.n]); err != nil {
		return err
	}
	if second.n > 0 {
		if err := req.Copy(p.ring.buf[second.off : second.off+second.n]); err != nil {
			req.Rollback(first.n)
			return err
		}
	}
	return nil
}

// IO runs the pipe data plane for one request.
//
// Transfers no larger than the buffer are deposited or drained in one
// lock hold, which makes them atomic against other transfers in the
// same direction. Larger transfers proceed in buffer-sized chunks and
// may interleave at chunk boundaries. The lock is dropped only inside
// the condition variable sleeps.
//
// Readers can legally return fewer bytes than requested: when the write
// end closes, or when a sleep between chunks of a large read is
// aborted. Completed chunks stay accounted in the request either way.
func (p *Pipe) IO(ctx context.Context, h *file.Handle, req *iorequest.Request) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	nonblock := h.Flags()&file.FlagNonblock != 0

	for req.Transferred < req.Total {
		size := min(req.Remaining(), Size)
		var pos int

		if req.Op == iorequest.Read {
			if err := p.waitData(ctx, nonblock); err != nil {
				return err
			}
			// Drained and the write end is gone: end-of-stream.
			size = min(size, p.ring.readable())
			if size == 0 {
				break
			}
			pos = p.ring.readPos()
		} else {
			if err := p.waitSpace(ctx, size, nonblock); err != nil {
				return err
			}
			pos = p.ring.writePos()
		}

		if err := p.copySpans(req, pos, size); err != nil {
			return err
		}

		if req.Op == iorequest.Read {
			p.ring.advanceRead(size)
			p.spaceCond.Broadcast()
			p.spaceNotifier.Run()
			monitoring.Pipes().BytesTransferred.WithLabelValues("read").Add(float64(size))
		} else {
			p.ring.commitWrite(size)
			p.dataCond.Broadcast()
			p.dataNotifier.Run()
			monitoring.Pipes().BytesTransferred.WithLabelValues("write").Add(float64(size))
		}

		if p.trace {
			p.logger.Debug("pipe io chunk",
				zap.Uint32("pipe_id", p.id),
				zap.String("op", req.Op.String()),
				zap.Int("size", size),
				zap.Int("transferred", req.Transferred),
				zap.Int("total", req.Total),
			)
		}
	}

	return nil
}

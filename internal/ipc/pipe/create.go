package pipe

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/kernel/internal/config"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/file"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/kstatus"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/ksync"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/logging"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/mm"
	"github.com/GriffinCanCode/AgentOS/kernel/internal/monitoring"
)

// allocBuffer is swappable so allocation failure paths are testable.
var allocBuffer = mm.AllocPages

// Process-wide defaults applied when CreatePair gets no options.
var (
	defaultsMu    sync.RWMutex
	defaultLogger = zap.NewNop()
	defaultTrace  bool
)

// Configure installs process-wide pipe defaults from configuration:
// the logger built from the logging section and the IO tracing toggle.
func Configure(cfg *config.Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	defaultsMu.Lock()
	defaultLogger = logger.Logger
	defaultTrace = cfg.Pipe.TraceIO
	defaultsMu.Unlock()
	return nil
}

// Option customizes one pipe at creation.
type Option func(*options)

type options struct {
	logger *zap.Logger
	trace  bool
}

// WithLogger attaches a logger to the pipe instead of the process
// default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracing enables per-chunk debug logging for this pipe.
func WithTracing() Option {
	return func(o *options) { o.trace = true }
}

func buildOptions(opts []Option) options {
	defaultsMu.RLock()
	o := options{
		logger: defaultLogger,
		trace:  defaultTrace,
	}
	defaultsMu.RUnlock()

	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CreatePair creates a pipe and returns its two handles, read end
// first. The read handle is opened with readFlags and the write handle
// with writeFlags (file flag bits such as file.FlagNonblock).
//
// Creation is atomic: no observer can see a half-built pipe, and any
// failure after the first handle is bound detaches that handle and
// tears the pipe down before returning.
func CreatePair(readFlags, writeFlags uint32, opts ...Option) (*file.Handle, *file.Handle, error) {
	_, read, write, err := create(readFlags, writeFlags, opts...)
	return read, write, err
}

// create is CreatePair with the pipe itself exposed for in-package
// callers.
func create(readFlags, writeFlags uint32, opts ...Option) (*Pipe, *file.Handle, *file.Handle, error) {
	o := buildOptions(opts)

	buf, err := allocBuffer(Size)
	if err != nil {
		return nil, nil, nil, kstatus.ErrNoMemory
	}

	p := &Pipe{
		id:     nextID.Add(1) - 1,
		logger: o.logger,
		trace:  o.trace,
	}
	p.ring.buf = buf
	p.spaceCond = ksync.NewCond(&p.mu)
	p.dataCond = ksync.NewCond(&p.mu)

	monitoring.Pipes().PipesCreated.Inc()
	monitoring.Pipes().PipesActive.Inc()

	// Both ends stay provisionally closed until both handles are bound,
	// and the lock is held across the binding so no closer can observe
	// a half-built pair.
	p.mu.Lock()

	read, err := file.Open(p, file.AccessRead, readFlags)
	if err != nil {
		p.mu.Unlock()
		p.destroy()
		return nil, nil, nil, err
	}
	p.open[endRead] = true

	write, err := file.Open(p, file.AccessWrite, writeFlags)
	if err != nil {
		p.mu.Unlock()
		// Detaching the read handle finds the write end closed and
		// tears the pipe down.
		_ = read.Close()
		return nil, nil, nil, err
	}
	p.open[endWrite] = true

	p.mu.Unlock()

	p.logger.Debug("pipe created",
		zap.Uint32("pipe_id", p.id),
		zap.String("read_handle", read.ID().String()),
		zap.String("write_handle", write.ID().String()),
	)

	return p, read, write, nil
}

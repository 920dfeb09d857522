package pool

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/utkarsh5026/parpool/internal/backoff"
	"github.com/utkarsh5026/parpool/internal/metrics"
	"github.com/utkarsh5026/parpool/internal/scheduler"
	"github.com/utkarsh5026/parpool/internal/types"
	"golang.org/x/sync/errgroup"
)

// core is the state shared by ThreadPool and PriorityThreadPool. Only the
// queue ordering differs between the two.
//
// queue, busy, seq and shutdown are guarded by mu. workCond is signaled when
// a task is queued or shutdown begins; finishCond is broadcast whenever a
// task finishes or the queue is drained by Close.
type core struct {
	conf *config
	name string

	mu         sync.Mutex
	workCond   *sync.Cond
	finishCond *sync.Cond
	queue      scheduler.Queue
	busy       int
	seq        uint64
	shutdown   bool

	workers int
	group   errgroup.Group
	joined  chan struct{}

	retry   backoff.Strategy
	metrics *metrics.Recorder
}

func (c *core) init(kind scheduler.Kind, opts []Option) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c.conf = cfg
	c.name = cfg.name
	if c.name == "" {
		c.name = uuid.NewString()[:8]
	}
	c.workCond = sync.NewCond(&c.mu)
	c.finishCond = sync.NewCond(&c.mu)
	c.queue = scheduler.New(kind)
	c.workers = cfg.workers()
	c.joined = make(chan struct{})

	if cfg.initialDelay > 0 {
		maxDelay := cfg.maxDelay
		if maxDelay <= 0 {
			maxDelay = defaultMaxDelay
		}
		c.retry = backoff.New(cfg.backoffKind, cfg.initialDelay, maxDelay, cfg.jitter)
	}
	c.metrics = metrics.New(cfg.registerer, c.name)
	c.metrics.SetWorkers(c.workers)

	c.start()
}

func (c *core) start() {
	if c.workers == 0 {
		close(c.joined)
		return
	}

	for id := range c.workers {
		c.group.Go(func() error {
			c.worker(id)
			return nil
		})
	}

	go func() {
		_ = c.group.Wait()
		c.metrics.SetWorkers(0)
		debugLog("pool %s: all %d workers exited", c.name, c.workers)
		close(c.joined)
	}()
}

// submit hands a boxed task to the pool. With no workers the task runs
// before submit returns, on the calling goroutine, as worker 0.
func (c *core) submit(task *types.SubmittedTask) error {
	c.mu.Lock()
	if c.shutdown {
		c.mu.Unlock()
		return ErrPoolClosed
	}

	if c.workers == 0 {
		c.mu.Unlock()
		c.metrics.RecordSubmit(0)
		task.Run(0)
		return nil
	}

	c.seq++
	task.Seq = c.seq
	c.queue.Push(task)
	queued := c.queue.Len()
	c.mu.Unlock()

	c.workCond.Signal()
	c.metrics.RecordSubmit(queued)
	return nil
}

func (c *core) accepting() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shutdown {
		return ErrPoolClosed
	}
	return nil
}

// Name returns the pool name used in metrics and logs.
func (c *core) Name() string {
	return c.name
}

// NumWorkerThreads returns the number of worker goroutines, which may be 0.
func (c *core) NumWorkerThreads() int {
	return c.workers
}

// NumThreads returns the number of goroutines that execute tasks, counting
// the caller of a zero-worker pool as one.
func (c *core) NumThreads() int {
	return max(1, c.workers)
}

// Wait blocks until the queue is empty and no worker is running a task.
// Tasks submitted while Wait is blocked extend the wait. Calling Wait from
// inside a task of the same pool never returns.
func (c *core) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.queue.Len() > 0 || c.busy > 0 {
		c.finishCond.Wait()
	}
}

// Close stops the pool. Running tasks finish; queued tasks are discarded and
// their futures resolve to ErrTaskDropped. Close blocks until every worker
// has exited and is safe to call more than once. Calling Close from inside
// a task of the same pool never returns.
func (c *core) Close() {
	c.mu.Lock()
	c.shutdown = true
	dropped := c.queue.Drain()
	c.mu.Unlock()

	c.workCond.Broadcast()
	c.finishCond.Broadcast()

	for _, task := range dropped {
		task.Drop(ErrTaskDropped)
	}
	if len(dropped) > 0 {
		debugLog("pool %s: dropped %d queued tasks", c.name, len(dropped))
	}
	c.metrics.RecordDropped(len(dropped))

	<-c.joined
}

// Shutdown stops accepting new tasks, lets the workers finish everything
// already queued and waits for them to exit. It returns ErrShutdownTimeout
// if that takes longer than timeout; a timeout <= 0 waits indefinitely.
func (c *core) Shutdown(timeout time.Duration) error {
	c.mu.Lock()
	c.shutdown = true
	pending := c.queue.Len()
	c.mu.Unlock()

	debugLog("pool %s: shutting down with %d queued tasks", c.name, pending)
	c.workCond.Broadcast()
	return waitUntil(c.joined, timeout)
}

func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// ThreadPool runs tasks in submission order on a fixed set of workers.
type ThreadPool struct {
	core
}

// New creates a FIFO pool and starts its workers.
//
//	p := pool.New(pool.WithWorkerCount(4))
//	defer p.Close()
func New(opts ...Option) *ThreadPool {
	p := &ThreadPool{}
	p.init(scheduler.KindFIFO, opts)
	return p
}

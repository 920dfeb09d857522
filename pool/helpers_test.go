package pool

import (
	"testing"
	"time"
)

// poolUnderTest lets a test run against both pool kinds.
type poolUnderTest struct {
	name     string
	ex       Executor
	wait     func()
	close    func()
	shutdown func(time.Duration) error
	submit   func(fn func(worker int) error) (*Future[struct{}], error)
}

func fifoUnderTest(opts ...Option) poolUnderTest {
	p := New(opts...)
	return poolUnderTest{
		name:     "fifo",
		ex:       p,
		wait:     p.Wait,
		close:    p.Close,
		shutdown: p.Shutdown,
		submit: func(fn func(worker int) error) (*Future[struct{}], error) {
			return Go(p, fn)
		},
	}
}

func priorityUnderTest(opts ...Option) poolUnderTest {
	p := NewPriority(opts...)
	return poolUnderTest{
		name:     "priority",
		ex:       p,
		wait:     p.Wait,
		close:    p.Close,
		shutdown: p.Shutdown,
		submit: func(fn func(worker int) error) (*Future[struct{}], error) {
			return GoPriority(p, 0, fn)
		},
	}
}

// runPoolTest runs fn once per pool kind, each with workers workers.
func runPoolTest(t *testing.T, workers int, fn func(t *testing.T, p poolUnderTest), opts ...Option) {
	t.Helper()

	constructors := []func(...Option) poolUnderTest{fifoUnderTest, priorityUnderTest}
	for _, construct := range constructors {
		all := append([]Option{WithWorkerCount(workers)}, opts...)
		p := construct(all...)
		t.Run(p.name, func(t *testing.T) {
			defer p.close()
			fn(t, p)
		})
	}
}

// blockWorker occupies one worker until the returned release function is
// called. It returns once the task is running.
func blockWorker(t *testing.T, p poolUnderTest) (release func(), f *Future[struct{}]) {
	t.Helper()

	started := make(chan struct{})
	gate := make(chan struct{})
	f, err := p.submit(func(int) error {
		close(started)
		<-gate
		return nil
	})
	if err != nil {
		t.Fatalf("failed to submit blocking task: %v", err)
	}

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("blocking task never started")
	}
	return func() { close(gate) }, f
}

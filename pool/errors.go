package pool

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrPoolClosed is returned when work is submitted after Close or Shutdown.
	ErrPoolClosed = errors.New("pool: operation on shut-down pool")

	// ErrTaskDropped resolves the futures of tasks still queued when Close ran.
	ErrTaskDropped = errors.New("pool: task dropped before it ran")

	// ErrShutdownTimeout is returned by Shutdown when the queue did not drain in time.
	ErrShutdownTimeout = errors.New("pool: shutdown timed out")

	// ErrInvalidStep is returned by ForEachStrided for a step that is not positive.
	ErrInvalidStep = errors.New("pool: step must be positive")
)

// PanicError is the error a task resolves to when its function panics.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker panic: %v\nstack trace:\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(r any) *PanicError {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return &PanicError{Value: r, Stack: string(buf[:n])}
}

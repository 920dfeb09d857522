package pool

import "runtime"

// ThreadSetting picks the worker count of a pool relative to the machine.
type ThreadSetting int

const (
	// DefaultThreads spawns one worker per logical CPU.
	DefaultThreads ThreadSetting = iota

	// NiceThreads spawns half as many workers as there are logical CPUs,
	// leaving room for other processes.
	NiceThreads

	// NoThreads spawns no workers; every task runs on the submitting goroutine.
	NoThreads
)

// Workers returns the number of workers the setting stands for.
func (s ThreadSetting) Workers() int {
	switch s {
	case NiceThreads:
		return runtime.NumCPU() / 2
	case NoThreads:
		return 0
	default:
		return runtime.NumCPU()
	}
}

func (s ThreadSetting) String() string {
	switch s {
	case DefaultThreads:
		return "default"
	case NiceThreads:
		return "nice"
	case NoThreads:
		return "none"
	default:
		return "unknown"
	}
}

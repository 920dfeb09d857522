// Package cpu binds pool workers to operating system threads.
//
// A worker that calls LockWorker keeps running on the same OS thread for its
// whole lifetime, so its worker index names a real thread. Pinning further
// restricts that thread to one logical CPU where the platform allows it.
package cpu

import "runtime"

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}

// LockWorker locks the calling goroutine to its OS thread and, when pin is
// true, pins that thread to CPU worker % NumCPU(). The returned function
// undoes the lock and must be called from the same goroutine.
func LockWorker(worker int, pin bool) func() {
	runtime.LockOSThread()
	if pin {
		if err := pinToCore(coreFor(worker)); err != nil {
			debugLog("worker %d: pinning failed: %v", worker, err)
		}
	}

	return func() {
		runtime.UnlockOSThread()
	}
}

func coreFor(worker int) int {
	n := NumCPU()
	if n <= 0 {
		return 0
	}
	if worker < 0 {
		worker = -worker
	}
	return worker % n
}

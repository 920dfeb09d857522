//go:build !debug

package scheduler

// debugLog is a no-op unless built with -tags debug.
func debugLog(string, ...interface{}) {}

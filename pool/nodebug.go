//go:build !debug

package pool

func debugLog(string, ...interface{}) {}

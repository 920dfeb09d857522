//go:build !debug

package cpu

func debugLog(string, ...interface{}) {}

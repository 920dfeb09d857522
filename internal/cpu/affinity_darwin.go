//go:build darwin

package cpu

// pinToCore is a no-op: macOS offers no thread-to-core pinning, so workers
// are only locked to their OS thread.
func pinToCore(int) error {
	return nil
}

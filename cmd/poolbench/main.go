// Command poolbench runs parallel for-each scenarios against the pool and
// compares them with a serial run.
package main

func main() {
	Execute()
}

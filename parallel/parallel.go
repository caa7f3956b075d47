/*package parallel runs embarrassingly-parallel loops over index ranges.

The per-particle passes in this module (density updates, grid fills, neighbor
list construction) all have the same shape: every index writes only its own
slot and reads state that no other index mutates during the pass. That shape
is what makes the fan-out here safe; callers must preserve it.
*/
package parallel

import (
	"runtime"
)

// NumCores is the number of workers used by For. Callers may lower it, e.g.
// from a config file.
var NumCores = runtime.NumCPU()

// For calls f(i) for every i in [0, n), spread across NumCores goroutines.
// It returns after every call has completed. Order of calls is unspecified.
func For(n int, f func(i int)) {
	workers := NumCores
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	per := n / workers
	done := make(chan bool)
	for w := 0; w < workers; w++ {
		start := w * per
		end := start + per
		if w == workers-1 {
			end = n
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				f(i)
			}
			done <- true
		}(start, end)
	}

	for w := 0; w < workers; w++ {
		<-done
	}
}

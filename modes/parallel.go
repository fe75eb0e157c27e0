package modes

import "sync"

// forEachRange splits [0, n) into at most workers contiguous ranges and
// runs fn on each, concurrently when there is more than one.
func forEachRange(n, workers int, fn func(lo, hi int)) {
	workers = min(max(workers, 1), n)
	if workers <= 1 {
		fn(0, n)
		return
	}
	per := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += per {
		hi := min(lo+per, n)
		wg.Go(func() { fn(lo, hi) })
	}
	wg.Wait()
}

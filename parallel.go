package gobrush

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// defaultGrain is the smallest index range worth handing to a goroutine.
const defaultGrain = 64

// parallelFor splits [0, n) into chunks of at least grain indices and runs fn
// over each chunk, returning once every chunk has finished. Callers write
// only to output slots owned by their own range, so no locking is needed.
// Small inputs run inline on the calling goroutine.
func parallelFor(n, grain int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain <= 0 {
		grain = defaultGrain
	}
	workers := runtime.GOMAXPROCS(0)
	if n <= grain || workers == 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	if chunk < grain {
		chunk = grain
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		lo := lo // per-iteration copy; go directive is below 1.22
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

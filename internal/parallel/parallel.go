// Package parallel splits row loops of element-wise matrix maps across
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on concurrent chunks.
	MinChunkSize int  // Minimum rows per goroutine.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Chunks calls f(start, end) over a partition of [0, n) into contiguous
// ranges and returns once every call has finished. The ranges run in
// parallel when cfg allows and n spans at least two chunks; otherwise f is
// called once with (0, n).
func Chunks(n int, cfg Config, f func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := max(cfg.NumWorkers, 1)
	chunkSize := max((n+workers-1)/workers, cfg.MinChunkSize, 1)
	if !cfg.Enabled || chunkSize >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for i in [0, n), chunked as in Chunks.
func For(n int, cfg Config, f func(i int)) {
	Chunks(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}

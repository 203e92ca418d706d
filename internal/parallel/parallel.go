// Package parallel splits elementwise kernels across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how kernels are split.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Upper bound on goroutines per call.
	MinChunkSize int  // Minimum elements per goroutine.
}

// DefaultConfig enables parallelism on multi-core machines. The chunk size
// is large because elementwise float64 work is cheap next to goroutine startup.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a Config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// chunks returns the chunk length to use for n items, or n when the work
// should stay on the calling goroutine.
func (cfg Config) chunks(n int) int {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2*cfg.MinChunkSize {
		return n
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
}

// Range calls f(start, end) over consecutive, disjoint sub-ranges covering
// [0, n). Every index is visited exactly once. Range returns after all calls
// finish.
func Range(n int, cfg Config, f func(start, end int)) {
	if n <= 0 {
		return
	}
	size := cfg.chunks(n)
	if size >= n {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}

// For executes f(i) for every i in [0, n).
func For(n int, cfg Config, f func(i int)) {
	Range(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	})
}

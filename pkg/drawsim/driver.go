package drawsim

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"
)

// NewSeed generates a high-entropy seed for unseeded mode using crypto/rand,
// so unseeded runs are still reportable and reproducible after the fact.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Driver runs the draw engine exactly N times against one pool and
// accumulates how often each combo of groupmates lands with the target team.
// Engine failure is fatal to the whole run: skipping failed draws would bias
// the estimates.
type Driver struct {
	pool   *Pool
	caps   Caps
	target int
	opts   SimOptions
	logger *zap.Logger
}

// NewDriver builds a driver for the given target team.
func NewDriver(pool *Pool, targetTeam string, caps Caps, opts SimOptions) (*Driver, error) {
	target, ok := pool.Index(targetTeam)
	if !ok {
		return nil, ConfigError{
			Field:   "target_team",
			Message: fmt.Sprintf("team %q not found in the pool", targetTeam),
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Driver{
		pool:   pool,
		caps:   caps,
		target: target,
		opts:   opts,
		logger: logger,
	}, nil
}

// Run performs n draws fed by the given stream and returns the combo
// frequency map. With Workers == 1 the stream drives every draw and retry
// sequentially, so a fixed seed replays bit-identically. With more workers
// the master stream only deals one sub-seed per worker; the merged
// frequencies are still deterministic for a fixed seed and worker count, but
// the per-draw sequence is distributed differently across worker counts.
func (d *Driver) Run(n int, rng *rand.Rand) (map[Combo]int, error) {
	if d.opts.Workers > 1 {
		return d.runParallel(n, rng)
	}
	return d.runSequential(n, rng)
}

func (d *Driver) runSequential(n int, rng *rand.Rand) (map[Combo]int, error) {
	engine := NewDrawEngine(d.pool, d.caps, d.opts.MaxAttempts)
	frequencies := make(map[Combo]int)

	for i := 1; i <= n; i++ {
		result, err := engine.Draw(rng)
		if err != nil {
			return nil, fmt.Errorf("draw %d of %d: %w", i, n, err)
		}
		frequencies[result.comboFor(d.target)]++

		if d.opts.LogEvery > 0 && i%d.opts.LogEvery == 0 {
			d.logger.Info("simulation progress",
				zap.Int("completed", i),
				zap.Int("total", n),
				zap.Int("distinct_combos", len(frequencies)))
		}
	}

	return frequencies, nil
}

// runParallel splits n draws over Workers goroutines, each owning an
// independent sub-stream seeded from the master stream, and merges the
// partial maps by key-wise summation.
func (d *Driver) runParallel(n int, rng *rand.Rand) (map[Combo]int, error) {
	workers := d.opts.Workers
	batch := n / workers
	remainder := n % workers

	// Sub-seeds come off the master stream before any goroutine starts, so
	// the seed dealt to worker i is deterministic.
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	frequencies := make(map[Combo]int)
	var firstErr error

	for i := 0; i < workers; i++ {
		size := batch
		if i < remainder {
			size++
		}

		wg.Add(1)
		go func(worker, size int, seed int64) {
			defer wg.Done()

			engine := NewDrawEngine(d.pool, d.caps, d.opts.MaxAttempts)
			local := make(map[Combo]int)
			sub := rand.New(rand.NewSource(seed))

			for j := 1; j <= size; j++ {
				result, err := engine.Draw(sub)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("worker %d, draw %d of %d: %w", worker, j, size, err)
					}
					mu.Unlock()
					return
				}
				local[result.comboFor(d.target)]++
			}

			mu.Lock()
			for combo, count := range local {
				frequencies[combo] += count
			}
			mu.Unlock()

			d.logger.Info("worker finished",
				zap.Int("worker", worker),
				zap.Int("draws", size))
		}(i, size, seeds[i])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return frequencies, nil
}

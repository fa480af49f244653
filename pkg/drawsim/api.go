// Package drawsim simulates the FIFA World Cup 2026 group draw and
// estimates, by repeated sampling, the probability distribution of group
// compositions for one target team.
package drawsim

import (
	"fmt"
	"math/rand"
	"time"
)

// RunSimulation validates the request, runs the Monte Carlo draw loop and
// aggregates the outcome tables. This is the main entry point for the
// drawsim package.
func RunSimulation(request SimRequest) (*SimResult, error) {
	startTime := time.Now()

	// Apply defaults if not provided
	if request.Caps == (Caps{}) {
		request.Caps = DefaultCaps()
	}
	if request.Options == (SimOptions{}) {
		request.Options = DefaultSimOptions()
	}

	if err := validateRequest(request); err != nil {
		return nil, err
	}

	pool, err := NewPool(request.Teams)
	if err != nil {
		return nil, fmt.Errorf("invalid pool: %w", err)
	}

	driver, err := NewDriver(pool, request.TargetTeam, request.Caps, request.Options)
	if err != nil {
		return nil, err
	}

	seeded := request.Seed != nil
	var seed int64
	if seeded {
		seed = *request.Seed
	} else {
		if seed, err = NewSeed(); err != nil {
			return nil, fmt.Errorf("unseeded mode: %w", err)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	frequencies, err := driver.Run(request.Simulations, rng)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}

	aggregation, err := Aggregate(frequencies, request.Simulations, pool, request.TargetTeam, request.Options.TopK)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	target, _ := pool.ByName(request.TargetTeam)

	return &SimResult{
		TargetTeam:     request.TargetTeam,
		TargetPot:      target.Pot,
		Simulations:    request.Simulations,
		Seed:           seed,
		Seeded:         seeded,
		Rankings:       aggregation.Rankings,
		TopK:           aggregation.TopK,
		Marginals:      aggregation.Marginals,
		Summary:        aggregation.Summary,
		ProcessingTime: time.Since(startTime),
	}, nil
}

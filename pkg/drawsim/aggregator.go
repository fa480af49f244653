package drawsim

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation is the full set of tables derived from one simulation run. It
// is pure data; exporting it anywhere is the caller's business.
type Aggregation struct {
	Rankings  []ComboProbability
	TopK      []ComboProbability
	Marginals map[Pot][]TeamMarginal
	Summary   Summary
}

// Aggregate turns the frequency map into ranked probabilities, per-pot
// marginal probabilities and summary statistics. The frequency counts must
// sum to exactly the number of simulations; anything else means draws were
// dropped somewhere and the estimates cannot be trusted.
func Aggregate(frequencies map[Combo]int, simulations int, pool *Pool, targetTeam string, topK int) (*Aggregation, error) {
	if simulations <= 0 {
		return nil, ConfigError{
			Field:   "simulations",
			Message: fmt.Sprintf("must be positive, got %d", simulations),
		}
	}
	target, ok := pool.ByName(targetTeam)
	if !ok {
		return nil, ConfigError{
			Field:   "target_team",
			Message: fmt.Sprintf("team %q not found in the pool", targetTeam),
		}
	}

	total := lo.Sum(lo.Values(frequencies))
	if total != simulations {
		return nil, fmt.Errorf("frequency counts sum to %d, want %d", total, simulations)
	}

	rankings := rankCombos(frequencies, simulations)

	k := topK
	if k > len(rankings) {
		k = len(rankings)
	}

	return &Aggregation{
		Rankings:  rankings,
		TopK:      rankings[:k],
		Marginals: marginalsByPot(rankings, simulations, target.Pot),
		Summary:   summarize(rankings, simulations, topK),
	}, nil
}

// rankCombos orders combos by descending probability, ties broken by the
// ascending canonical combo key so ranking order is deterministic.
func rankCombos(frequencies map[Combo]int, simulations int) []ComboProbability {
	rankings := lo.MapToSlice(frequencies, func(combo Combo, count int) ComboProbability {
		return ComboProbability{
			Combo:       combo,
			Frequency:   count,
			Probability: float64(count) / float64(simulations),
		}
	})

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Frequency != rankings[j].Frequency {
			return rankings[i].Frequency > rankings[j].Frequency
		}
		return rankings[i].Combo.Less(rankings[j].Combo)
	})

	return rankings
}

// marginalsByPot sums each team's combo probabilities into its marginal
// probability of sharing the target's group, one table per non-target pot.
func marginalsByPot(rankings []ComboProbability, simulations int, targetPot Pot) map[Pot][]TeamMarginal {
	slotPots := comboSlotPots(targetPot)

	marginals := make(map[Pot][]TeamMarginal, len(slotPots))
	for slot, pot := range slotPots {
		counts := make(map[string]int)
		for _, row := range rankings {
			counts[row.Combo[slot]] += row.Frequency
		}

		table := lo.MapToSlice(counts, func(team string, count int) TeamMarginal {
			return TeamMarginal{
				Team:        team,
				Frequency:   count,
				Probability: float64(count) / float64(simulations),
			}
		})
		sort.Slice(table, func(i, j int) bool {
			if table[i].Frequency != table[j].Frequency {
				return table[i].Frequency > table[j].Frequency
			}
			return table[i].Team < table[j].Team
		})

		marginals[pot] = table
	}

	return marginals
}

// comboSlotPots maps each combo slot to the pot it holds: the pots 1..4
// minus the target's own, ascending. This mirrors how comboFor fills slots.
func comboSlotPots(targetPot Pot) []Pot {
	pots := make([]Pot, 0, NumPots-1)
	for pot := Pot(1); pot <= NumPots; pot++ {
		if pot != targetPot {
			pots = append(pots, pot)
		}
	}
	return pots
}

// summarize computes the concentration statistics for the distribution.
func summarize(rankings []ComboProbability, simulations, topK int) Summary {
	distinct := len(rankings)
	probs := lo.Map(rankings, func(row ComboProbability, _ int) float64 {
		return row.Probability
	})

	k := topK
	if k > distinct {
		k = distinct
	}

	summary := Summary{
		Simulations:    simulations,
		DistinctCombos: distinct,
		TopK:           topK,
	}
	if distinct == 0 {
		return summary
	}

	summary.MeanProbability = stat.Mean(probs, nil)
	summary.ProbabilityVariance = stat.PopVariance(probs, nil)
	summary.TopKMass = floats.Sum(probs[:k])
	summary.GiniIndex = giniIndex(probs)
	summary.UniformProbability = 1.0 / float64(distinct)
	if distinct > 1 {
		summary.NormalizedEntropy = stat.Entropy(probs) / math.Log(float64(distinct))
	}

	return summary
}

// giniIndex measures concentration of the probability mass: 0 when every
// combo is equally likely, approaching 1 when a single combo dominates.
func giniIndex(probs []float64) float64 {
	n := len(probs)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, probs)
	sort.Float64s(sorted)

	var weighted float64
	for i, p := range sorted {
		weighted += float64(i+1) * p
	}

	total := floats.Sum(sorted)
	if total == 0 {
		return 0
	}
	return 2*weighted/(float64(n)*total) - float64(n+1)/float64(n)
}

package drawsim

import (
	"fmt"
	"math/rand"
)

// drawOrder is the order pots are drawn after pot 1, per the FIFA procedure.
var drawOrder = [...]Pot{4, 3, 2}

// DrawExhaustedError reports that the engine could not complete a valid draw
// within its retry bound. With the real cap structure this is vanishingly
// rare; seeing it usually means the caps are too strict for the pool, so it
// carries enough context to diagnose that.
type DrawExhaustedError struct {
	Attempts int    `json:"attempts"`
	LastPot  Pot    `json:"last_pot"`
	LastTeam string `json:"last_team"`
}

func (e *DrawExhaustedError) Error() string {
	return fmt.Sprintf("draw exhausted after %d attempts (last dead end: %s in %s)",
		e.Attempts, e.LastTeam, e.LastPot)
}

// DrawResult is one complete, constraint-valid draw: every group holds one
// team per pot. Results are created fresh per Draw call.
type DrawResult struct {
	pool      *Pool
	groups    [NumGroups][NumPots]int // pool index per group and pot slot
	placement []Group                 // group per pool index
	counted   []Confederation         // code each team was tallied under
}

// Team returns the team drawn into the given group's pot slot.
func (r *DrawResult) Team(group Group, pot Pot) Team {
	return r.pool.Team(r.groups[group][pot-1])
}

// Group returns the four teams of a group, ordered by pot.
func (r *DrawResult) Group(group Group) [NumPots]Team {
	var out [NumPots]Team
	for slot, idx := range r.groups[group] {
		out[slot] = r.pool.Team(idx)
	}
	return out
}

// GroupOf returns the group the named team was drawn into.
func (r *DrawResult) GroupOf(name string) (Group, bool) {
	idx, ok := r.pool.Index(name)
	if !ok {
		return 0, false
	}
	return r.placement[idx], true
}

// CountedAs returns the confederation code the named team was tallied under.
// For single-confederation teams this is their only code; for playoff teams
// it is whichever of their two codes admitted them.
func (r *DrawResult) CountedAs(name string) (Confederation, bool) {
	idx, ok := r.pool.Index(name)
	if !ok {
		return 0, false
	}
	return r.counted[idx], true
}

// comboFor extracts the canonical combo for the team at the given pool
// index: its three groupmates ordered by ascending pot.
func (r *DrawResult) comboFor(idx int) Combo {
	var combo Combo
	target := r.pool.Team(idx)
	slot := 0
	for pot := Pot(1); pot <= NumPots; pot++ {
		if pot == target.Pot {
			continue
		}
		combo[slot] = r.Team(r.placement[idx], pot).Name
		slot++
	}
	return combo
}

// DrawEngine produces constraint-valid draws for one pool and cap structure.
// All randomness comes from the *rand.Rand handed to Draw, so replays with
// the same stream are bit-identical, retries included. An engine reuses
// internal scratch buffers and is not safe for concurrent use; create one
// engine per goroutine.
type DrawEngine struct {
	pool        *Pool
	caps        Caps
	maxAttempts int

	// scratch, reused across attempts
	order      []int
	candidates []Group
}

// NewDrawEngine builds an engine. maxAttempts bounds the internal retries of
// a single Draw call.
func NewDrawEngine(pool *Pool, caps Caps, maxAttempts int) *DrawEngine {
	return &DrawEngine{
		pool:        pool,
		caps:        caps,
		maxAttempts: maxAttempts,
		order:       make([]int, 0, TeamsPerPot),
		candidates:  make([]Group, 0, NumGroups),
	}
}

// Draw produces one valid DrawResult. A dead end (some team admitted by no
// remaining group) abandons the whole attempt and restarts from pot 1;
// exceeding the retry bound returns *DrawExhaustedError.
func (e *DrawEngine) Draw(rng *rand.Rand) (*DrawResult, error) {
	var lastPot Pot
	var lastTeam string

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		result, failedPot, failedTeam := e.attempt(rng)
		if result != nil {
			return result, nil
		}
		lastPot, lastTeam = failedPot, failedTeam
	}

	return nil, &DrawExhaustedError{
		Attempts: e.maxAttempts,
		LastPot:  lastPot,
		LastTeam: lastTeam,
	}
}

// attempt runs one full draw pass. On a dead end it returns the pot and team
// that could not be placed.
func (e *DrawEngine) attempt(rng *rand.Rand) (*DrawResult, Pot, string) {
	var tally [NumGroups][numConfederations]int
	result := &DrawResult{
		pool:      e.pool,
		placement: make([]Group, e.pool.Len()),
		counted:   make([]Confederation, e.pool.Len()),
	}
	for g := range result.groups {
		for slot := range result.groups[g] {
			result.groups[g][slot] = -1
		}
	}

	place := func(idx int, group Group) {
		team := e.pool.Team(idx)
		result.groups[group][team.Pot-1] = idx
		result.placement[idx] = group
		// Admitted-code policy: the tally counts a playoff team only
		// under the first of its codes with room, not under both.
		code := team.Confederations[0]
		for _, c := range team.Confederations {
			if tally[group][c] < e.caps.For(c) {
				code = c
				break
			}
		}
		tally[group][code]++
		result.counted[idx] = code
	}

	// Pot 1: hosts land in their fixed groups, the rest are shuffled and
	// fill the remaining groups in letter order.
	for _, idx := range e.pool.Hosts() {
		place(idx, *e.pool.Team(idx).HostGroup)
	}

	e.order = e.order[:0]
	for _, idx := range e.pool.PotIndices(1) {
		if !e.pool.Team(idx).IsHost() {
			e.order = append(e.order, idx)
		}
	}
	rng.Shuffle(len(e.order), func(i, j int) {
		e.order[i], e.order[j] = e.order[j], e.order[i]
	})

	next := Group(0)
	for _, idx := range e.order {
		for result.groups[next][0] != -1 {
			next++
		}
		place(idx, next)
	}

	// Pots 4, 3, 2: shuffle the pot, then for each team shuffle the groups
	// still missing a team from this pot and take the first that admits it.
	for _, pot := range drawOrder {
		e.order = append(e.order[:0], e.pool.PotIndices(pot)...)
		rng.Shuffle(len(e.order), func(i, j int) {
			e.order[i], e.order[j] = e.order[j], e.order[i]
		})

		for _, idx := range e.order {
			team := e.pool.Team(idx)

			e.candidates = e.candidates[:0]
			for g := Group(0); g < NumGroups; g++ {
				if result.groups[g][pot-1] == -1 {
					e.candidates = append(e.candidates, g)
				}
			}
			rng.Shuffle(len(e.candidates), func(i, j int) {
				e.candidates[i], e.candidates[j] = e.candidates[j], e.candidates[i]
			})

			placed := false
			for _, g := range e.candidates {
				if e.admits(&tally[g], team) {
					place(idx, g)
					placed = true
					break
				}
			}
			if !placed {
				return nil, pot, team.Name
			}
		}
	}

	return result, 0, ""
}

// admits reports whether at least one of the team's confederation codes has
// remaining room in the group's tally.
func (e *DrawEngine) admits(tally *[numConfederations]int, team Team) bool {
	for _, c := range team.Confederations {
		if tally[c] < e.caps.For(c) {
			return true
		}
	}
	return false
}

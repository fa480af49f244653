package drawsim

import "sort"

// Pool is the immutable set of 48 teams, indexed by name and by pot. It is
// built and validated once before any simulation starts.
type Pool struct {
	teams  []Team
	byName map[string]int
	byPot  [NumPots][]int
	hosts  []int
}

// NewPool validates the team list and builds the pool. Validation failures
// are reported together as ValidationErrors.
func NewPool(teams []Team) (*Pool, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}

	p := &Pool{
		teams:  make([]Team, len(teams)),
		byName: make(map[string]int, len(teams)),
	}
	copy(p.teams, teams)

	for i, team := range p.teams {
		p.byName[team.Name] = i
		p.byPot[team.Pot-1] = append(p.byPot[team.Pot-1], i)
		if team.IsHost() {
			p.hosts = append(p.hosts, i)
		}
	}

	// Pot order follows input order, which keeps draws reproducible for a
	// given team list regardless of map iteration. Hosts sort by group so
	// their pre-placement order is fixed too.
	sort.Slice(p.hosts, func(i, j int) bool {
		return *p.teams[p.hosts[i]].HostGroup < *p.teams[p.hosts[j]].HostGroup
	})

	return p, nil
}

// Len returns the number of teams in the pool.
func (p *Pool) Len() int { return len(p.teams) }

// Team returns the team at the given pool index.
func (p *Pool) Team(i int) Team { return p.teams[i] }

// Index returns the pool index of the named team.
func (p *Pool) Index(name string) (int, bool) {
	i, ok := p.byName[name]
	return i, ok
}

// ByName returns the named team.
func (p *Pool) ByName(name string) (Team, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Team{}, false
	}
	return p.teams[i], true
}

// PotIndices returns the pool indices of the teams in a pot, in input order.
func (p *Pool) PotIndices(pot Pot) []int { return p.byPot[pot-1] }

// Hosts returns the pool indices of the host teams, ordered by their fixed
// group.
func (p *Pool) Hosts() []int { return p.hosts }

// Teams returns a copy of the full team list.
func (p *Pool) Teams() []Team {
	out := make([]Team, len(p.teams))
	copy(out, p.teams)
	return out
}

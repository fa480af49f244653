package drawsim

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfPattern is the per-pot confederation mix used by the synthetic
// pool: 4 UEFA and 8 other-confederation teams per pot, which leaves room
// under the default caps while still exercising every code.
var testConfPattern = [TeamsPerPot]Confederation{
	UEFA, UEFA, UEFA, UEFA,
	CONMEBOL, CONMEBOL,
	CONCACAF,
	CAF, CAF,
	AFC, AFC,
	OFC,
}

// testTeams builds the synthetic 12/12/12/12 pool: hosts on the first three
// pot-1 slots fixed to groups A, B and D, and two dual-confederation playoff
// entries at the tail of pot 4.
func testTeams() []Team {
	var teams []Team
	for pot := Pot(1); pot <= NumPots; pot++ {
		for i, conf := range testConfPattern {
			teams = append(teams, Team{
				Name:           fmt.Sprintf("Team %d-%02d", pot, i+1),
				Pot:            pot,
				Confederations: []Confederation{conf},
			})
		}
	}

	a, b, d := Group(0), Group(1), Group(3)
	teams[0].HostGroup = &a
	teams[1].HostGroup = &b
	teams[2].HostGroup = &d

	// the AFC and OFC tail slots of pot 4 become playoff placeholders
	teams[46].Confederations = []Confederation{AFC, CONMEBOL}
	teams[47].Confederations = []Confederation{OFC, CONCACAF}

	return teams
}

func mustPool(t *testing.T, teams []Team) *Pool {
	t.Helper()
	pool, err := NewPool(teams)
	require.NoError(t, err)
	return pool
}

func TestNewPool(t *testing.T) {
	pool := mustPool(t, testTeams())

	assert.Equal(t, PoolSize, pool.Len())
	for pot := Pot(1); pot <= NumPots; pot++ {
		assert.Len(t, pool.PotIndices(pot), TeamsPerPot)
	}

	require.Len(t, pool.Hosts(), 3)
	groups := []Group{}
	for _, idx := range pool.Hosts() {
		groups = append(groups, *pool.Team(idx).HostGroup)
	}
	assert.Equal(t, []Group{0, 1, 3}, groups, "hosts sorted by fixed group")

	team, ok := pool.ByName("Team 3-05")
	require.True(t, ok)
	assert.Equal(t, Pot(3), team.Pot)

	_, ok = pool.ByName("Atlantis")
	assert.False(t, ok)
}

func TestNewPoolImmutable(t *testing.T) {
	teams := testTeams()
	pool := mustPool(t, teams)

	teams[5].Name = "Mutated"
	_, ok := pool.ByName("Mutated")
	assert.False(t, ok, "pool must copy the input slice")

	copied := pool.Teams()
	copied[0].Name = "Mutated again"
	assert.NotEqual(t, "Mutated again", pool.Team(0).Name)
}

func TestNewPoolValidation(t *testing.T) {
	groupPtr := func(g Group) *Group { return &g }

	tests := []struct {
		name    string
		mutate  func([]Team) []Team
		message string
	}{
		{
			name:    "wrong pool size",
			mutate:  func(teams []Team) []Team { return teams[:40] },
			message: "expected 48 teams",
		},
		{
			name: "duplicate team",
			mutate: func(teams []Team) []Team {
				teams[10].Name = teams[11].Name
				return teams
			},
			message: "duplicate team",
		},
		{
			name: "pot out of range",
			mutate: func(teams []Team) []Team {
				teams[20].Pot = 7
				return teams
			},
			message: "invalid pot",
		},
		{
			name: "no confederations",
			mutate: func(teams []Team) []Team {
				teams[15].Confederations = nil
				return teams
			},
			message: "confederation codes",
		},
		{
			name: "repeated confederation",
			mutate: func(teams []Team) []Team {
				teams[15].Confederations = []Confederation{UEFA, UEFA}
				return teams
			},
			message: "repeats confederation",
		},
		{
			name: "host outside pot 1",
			mutate: func(teams []Team) []Team {
				teams[0].HostGroup = nil
				teams[13].HostGroup = groupPtr(0)
				return teams
			},
			message: "must be in pot 1",
		},
		{
			name: "hosts share a group",
			mutate: func(teams []Team) []Team {
				teams[1].HostGroup = groupPtr(0)
				return teams
			},
			message: "shares group",
		},
		{
			name: "too many hosts",
			mutate: func(teams []Team) []Team {
				teams[3].HostGroup = groupPtr(5)
				return teams
			},
			message: "expected 3 host teams",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPool(tc.mutate(testTeams()))
			require.Error(t, err)

			var verr ValidationErrors
			require.ErrorAs(t, err, &verr)
			assert.ErrorContains(t, err, tc.message)
		})
	}
}

func TestParseConfederation(t *testing.T) {
	for c := Confederation(0); c < numConfederations; c++ {
		parsed, err := ParseConfederation(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseConfederation("ASGARD")
	assert.Error(t, err)
}

func TestParseGroup(t *testing.T) {
	for g := Group(0); g < NumGroups; g++ {
		parsed, err := ParseGroup(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}

	for _, bad := range []string{"", "M", "a", "AB"} {
		_, err := ParseGroup(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestComboLess(t *testing.T) {
	a := Combo{"Alpha", "Beta", "Gamma"}
	b := Combo{"Alpha", "Beta", "Delta"}

	assert.True(t, b.Less(a))
	assert.False(t, a.Less(b))
	assert.False(t, a.Less(a))
}

func TestWorldCup2026Pool(t *testing.T) {
	pool, err := WorldCup2026Pool()
	require.NoError(t, err)
	assert.Equal(t, PoolSize, pool.Len())

	for name, group := range WorldCup2026Hosts {
		team, ok := pool.ByName(name)
		require.True(t, ok)
		require.NotNil(t, team.HostGroup)
		assert.Equal(t, group, *team.HostGroup)
	}

	dual := 0
	for _, team := range pool.Teams() {
		if len(team.Confederations) == 2 {
			dual++
		}
	}
	assert.Equal(t, 2, dual, "two intercontinental playoff placeholders")
}

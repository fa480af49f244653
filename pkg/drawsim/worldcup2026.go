package drawsim

// WorldCup2026Hosts maps the three host teams to their fixed groups.
var WorldCup2026Hosts = map[string]Group{
	"Mexico":        0, // A
	"Canada":        1, // B
	"United States": 3, // D
}

// WorldCup2026Teams returns the 48-team pool for the 2026 draw. The four
// UEFA playoff slots and the two intercontinental playoff slots are
// placeholders; the intercontinental ones carry the two confederation codes
// of their likely finalists, which is what makes the whichever-code-has-room
// cap check matter.
func WorldCup2026Teams() []Team {
	groupPtr := func(g Group) *Group { return &g }

	return []Team{
		// Pot 1
		{Name: "Mexico", Pot: 1, Confederations: []Confederation{CONCACAF}, HostGroup: groupPtr(0)},
		{Name: "Canada", Pot: 1, Confederations: []Confederation{CONCACAF}, HostGroup: groupPtr(1)},
		{Name: "United States", Pot: 1, Confederations: []Confederation{CONCACAF}, HostGroup: groupPtr(3)},
		{Name: "Spain", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "Argentina", Pot: 1, Confederations: []Confederation{CONMEBOL}},
		{Name: "France", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "England", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "Brazil", Pot: 1, Confederations: []Confederation{CONMEBOL}},
		{Name: "Portugal", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "Netherlands", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "Belgium", Pot: 1, Confederations: []Confederation{UEFA}},
		{Name: "Germany", Pot: 1, Confederations: []Confederation{UEFA}},

		// Pot 2
		{Name: "Croatia", Pot: 2, Confederations: []Confederation{UEFA}},
		{Name: "Morocco", Pot: 2, Confederations: []Confederation{CAF}},
		{Name: "Colombia", Pot: 2, Confederations: []Confederation{CONMEBOL}},
		{Name: "Uruguay", Pot: 2, Confederations: []Confederation{CONMEBOL}},
		{Name: "Switzerland", Pot: 2, Confederations: []Confederation{UEFA}},
		{Name: "Japan", Pot: 2, Confederations: []Confederation{AFC}},
		{Name: "Senegal", Pot: 2, Confederations: []Confederation{CAF}},
		{Name: "Iran", Pot: 2, Confederations: []Confederation{AFC}},
		{Name: "South Korea", Pot: 2, Confederations: []Confederation{AFC}},
		{Name: "Ecuador", Pot: 2, Confederations: []Confederation{CONMEBOL}},
		{Name: "Austria", Pot: 2, Confederations: []Confederation{UEFA}},
		{Name: "Australia", Pot: 2, Confederations: []Confederation{AFC}},

		// Pot 3
		{Name: "Norway", Pot: 3, Confederations: []Confederation{UEFA}},
		{Name: "Panama", Pot: 3, Confederations: []Confederation{CONCACAF}},
		{Name: "Egypt", Pot: 3, Confederations: []Confederation{CAF}},
		{Name: "Algeria", Pot: 3, Confederations: []Confederation{CAF}},
		{Name: "Scotland", Pot: 3, Confederations: []Confederation{UEFA}},
		{Name: "Paraguay", Pot: 3, Confederations: []Confederation{CONMEBOL}},
		{Name: "Tunisia", Pot: 3, Confederations: []Confederation{CAF}},
		{Name: "Ivory Coast", Pot: 3, Confederations: []Confederation{CAF}},
		{Name: "Uzbekistan", Pot: 3, Confederations: []Confederation{AFC}},
		{Name: "Qatar", Pot: 3, Confederations: []Confederation{AFC}},
		{Name: "Saudi Arabia", Pot: 3, Confederations: []Confederation{AFC}},
		{Name: "South Africa", Pot: 3, Confederations: []Confederation{CAF}},

		// Pot 4
		{Name: "Jordan", Pot: 4, Confederations: []Confederation{AFC}},
		{Name: "Cape Verde", Pot: 4, Confederations: []Confederation{CAF}},
		{Name: "Ghana", Pot: 4, Confederations: []Confederation{CAF}},
		{Name: "Curacao", Pot: 4, Confederations: []Confederation{CONCACAF}},
		{Name: "Haiti", Pot: 4, Confederations: []Confederation{CONCACAF}},
		{Name: "New Zealand", Pot: 4, Confederations: []Confederation{OFC}},
		{Name: "UEFA Playoff A", Pot: 4, Confederations: []Confederation{UEFA}},
		{Name: "UEFA Playoff B", Pot: 4, Confederations: []Confederation{UEFA}},
		{Name: "UEFA Playoff C", Pot: 4, Confederations: []Confederation{UEFA}},
		{Name: "UEFA Playoff D", Pot: 4, Confederations: []Confederation{UEFA}},
		{Name: "Playoff Tournament 1", Pot: 4, Confederations: []Confederation{CONCACAF, CAF}},
		{Name: "Playoff Tournament 2", Pot: 4, Confederations: []Confederation{CONMEBOL, AFC}},
	}
}

// WorldCup2026Pool returns the validated built-in pool.
func WorldCup2026Pool() (*Pool, error) {
	return NewPool(WorldCup2026Teams())
}

package drawsim

import (
	"fmt"
	"strings"
)

// ValidationError reports one problem with the input data.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every data problem found, so a malformed pool is
// reported in one pass instead of error by error.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}

	messages := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ConfigError reports an invalid configuration value, fatal at startup.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// validateTeams checks the structural input contract: 48 teams in four pots
// of 12, one or two confederation codes per team, and exactly three hosts
// sitting in pot 1 with distinct valid groups.
func validateTeams(teams []Team) error {
	var errs []ValidationError

	if len(teams) != PoolSize {
		errs = append(errs, ValidationError{
			Field:   "teams",
			Message: fmt.Sprintf("expected %d teams, got %d", PoolSize, len(teams)),
		})
	}

	seen := make(map[string]bool, len(teams))
	var potCounts [NumPots + 1]int
	hostGroups := make(map[Group]string)
	hostCount := 0

	for i, team := range teams {
		field := fmt.Sprintf("teams[%d]", i)

		if team.Name == "" {
			errs = append(errs, ValidationError{Field: field, Message: "empty team name"})
			continue
		}
		if seen[team.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate team %q", team.Name),
			})
			continue
		}
		seen[team.Name] = true

		if !team.Pot.Valid() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s has invalid pot %d", team.Name, int(team.Pot)),
			})
		} else {
			potCounts[team.Pot]++
		}

		if n := len(team.Confederations); n < 1 || n > 2 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s has %d confederation codes, want 1 or 2", team.Name, n),
			})
		}
		for _, conf := range team.Confederations {
			if !conf.Valid() {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%s has invalid confederation code %d", team.Name, int(conf)),
				})
			}
		}
		if len(team.Confederations) == 2 && team.Confederations[0] == team.Confederations[1] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s repeats confederation %s", team.Name, team.Confederations[0]),
			})
		}

		if team.IsHost() {
			hostCount++
			group := *team.HostGroup
			if !group.Valid() {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("host %s has invalid group %d", team.Name, int(group)),
				})
			} else if prev, taken := hostGroups[group]; taken {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("host %s shares group %s with %s", team.Name, group, prev),
				})
			} else {
				hostGroups[group] = team.Name
			}
			if team.Pot != 1 {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("host %s must be in pot 1, got %s", team.Name, team.Pot),
				})
			}
		}
	}

	for pot := Pot(1); pot <= NumPots; pot++ {
		if potCounts[pot] != TeamsPerPot && len(teams) == PoolSize {
			errs = append(errs, ValidationError{
				Field:   "teams",
				Message: fmt.Sprintf("%s has %d teams, want %d", pot, potCounts[pot], TeamsPerPot),
			})
		}
	}

	if hostCount != 3 {
		errs = append(errs, ValidationError{
			Field:   "teams",
			Message: fmt.Sprintf("expected 3 host teams, got %d", hostCount),
		})
	}

	if len(errs) > 0 {
		return ValidationErrors{Errors: errs}
	}
	return nil
}

// validateRequest checks the configuration surface of a simulation request.
// Pool-level data problems are reported separately by NewPool.
func validateRequest(request SimRequest) error {
	if request.Simulations <= 0 {
		return ConfigError{
			Field:   "simulations",
			Message: fmt.Sprintf("must be positive, got %d", request.Simulations),
		}
	}
	if request.TargetTeam == "" {
		return ConfigError{Field: "target_team", Message: "must not be empty"}
	}
	if request.Caps.UEFAMax < 1 {
		return ConfigError{
			Field:   "caps.uefa_max",
			Message: fmt.Sprintf("must be at least 1, got %d", request.Caps.UEFAMax),
		}
	}
	if request.Caps.OtherMax < 1 {
		return ConfigError{
			Field:   "caps.other_max",
			Message: fmt.Sprintf("must be at least 1, got %d", request.Caps.OtherMax),
		}
	}
	if request.Options.MaxAttempts < 1 {
		return ConfigError{
			Field:   "options.max_attempts",
			Message: fmt.Sprintf("must be at least 1, got %d", request.Options.MaxAttempts),
		}
	}
	if request.Options.Workers < 1 {
		return ConfigError{
			Field:   "options.workers",
			Message: fmt.Sprintf("must be at least 1, got %d", request.Options.Workers),
		}
	}
	if request.Options.TopK < 1 {
		return ConfigError{
			Field:   "options.top_k",
			Message: fmt.Sprintf("must be at least 1, got %d", request.Options.TopK),
		}
	}
	return nil
}

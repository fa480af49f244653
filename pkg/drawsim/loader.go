package drawsim

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// PoolFile is the single-file YAML pool format:
//
//	teams:
//	  - name: Mexico
//	    pot: 1
//	    confederations: [CONCACAF]
//	    host_group: A
type PoolFile struct {
	Teams []Team `yaml:"teams"`
}

// LoadPoolYAML loads and validates a pool from a YAML file.
func LoadPoolYAML(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pool file: %w", err)
	}

	var file PoolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding pool YAML from %s: %w", path, err)
	}

	return NewPool(file.Teams)
}

// LoadPoolCSV loads and validates a pool from the two-file CSV layout: a
// pots file with Team,Pot columns and a confederations file with
// Team,Confederation columns, one row per code so playoff teams appear
// twice. Host placements are not part of the files and come from the hosts
// map.
func LoadPoolCSV(potsPath, confederationsPath string, hosts map[string]Group) (*Pool, error) {
	potRows, err := readCSV(potsPath, []string{"Team", "Pot"})
	if err != nil {
		return nil, fmt.Errorf("loading pots: %w", err)
	}
	confRows, err := readCSV(confederationsPath, []string{"Team", "Confederation"})
	if err != nil {
		return nil, fmt.Errorf("loading confederations: %w", err)
	}

	confs := make(map[string][]Confederation)
	for _, row := range confRows {
		conf, err := ParseConfederation(row[1])
		if err != nil {
			return nil, fmt.Errorf("confederation row for %s: %w", row[0], err)
		}
		confs[row[0]] = append(confs[row[0]], conf)
	}

	var errs []ValidationError
	teams := make([]Team, 0, len(potRows))
	for _, row := range potRows {
		name := row[0]

		pot, err := parsePot(row[1])
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "pots",
				Message: fmt.Sprintf("%s: %v", name, err),
			})
			continue
		}

		codes, ok := confs[name]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   "confederations",
				Message: fmt.Sprintf("%s has no confederation entry", name),
			})
			continue
		}

		team := Team{Name: name, Pot: pot, Confederations: codes}
		if group, isHost := hosts[name]; isHost {
			g := group
			team.HostGroup = &g
		}
		teams = append(teams, team)
	}

	for host := range hosts {
		if _, ok := confs[host]; ok {
			continue
		}
		found := false
		for _, row := range potRows {
			if row[0] == host {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				Field:   "hosts",
				Message: fmt.Sprintf("host %s not found in pots data", host),
			})
		}
	}

	if len(errs) > 0 {
		return nil, ValidationErrors{Errors: errs}
	}
	return NewPool(teams)
}

// parsePot accepts both "2" and the original "Pot 2" spelling.
func parsePot(s string) (Pot, error) {
	s = strings.TrimPrefix(s, "Pot ")
	n, err := strconv.Atoi(s)
	if err != nil || !Pot(n).Valid() {
		return 0, fmt.Errorf("invalid pot %q", s)
	}
	return Pot(n), nil
}

// readCSV reads a headed CSV file, trims whitespace and checks the header.
func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}

	for i, want := range header {
		if rows[0][i] != want {
			return nil, fmt.Errorf("%s: expected columns %v, got %v", path, header, rows[0])
		}
	}

	return rows[1:], nil
}

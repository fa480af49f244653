package drawsim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"
)

// WriteRankings writes a ranked combo table as CSV. The target team is
// inserted at its own pot position so each row reads as a complete group.
func WriteRankings(w io.Writer, result *SimResult, rankings []ComboProbability) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, NumPots+2)
	for pot := Pot(1); pot <= NumPots; pot++ {
		header = append(header, pot.String())
	}
	header = append(header, "Frequency", "Probability")
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing rankings header: %w", err)
	}

	slotPots := comboSlotPots(result.TargetPot)
	for _, row := range rankings {
		record := make([]string, NumPots, NumPots+2)
		record[result.TargetPot-1] = result.TargetTeam
		for slot, pot := range slotPots {
			record[pot-1] = row.Combo[slot]
		}
		record = append(record,
			strconv.Itoa(row.Frequency),
			formatProbability(row.Probability))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing rankings row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteMarginals writes one per-pot marginal table as CSV.
func WriteMarginals(w io.Writer, table []TeamMarginal) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Team", "Frequency", "Probability"}); err != nil {
		return fmt.Errorf("writing marginals header: %w", err)
	}
	for _, row := range table {
		record := []string{row.Team, strconv.Itoa(row.Frequency), formatProbability(row.Probability)}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing marginals row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummary writes the run metadata and concentration statistics as a
// two-column metric/value CSV.
func WriteSummary(w io.Writer, result *SimResult) error {
	writer := csv.NewWriter(w)

	s := result.Summary
	rows := [][]string{
		{"Metric", "Value"},
		{"Target Team", result.TargetTeam},
		{"Simulations", strconv.Itoa(s.Simulations)},
		{"Seeded", strconv.FormatBool(result.Seeded)},
		{"Seed", strconv.FormatInt(result.Seed, 10)},
		{"Distinct Combinations", strconv.Itoa(s.DistinctCombos)},
		{"Mean Probability", formatProbability(s.MeanProbability)},
		{"Probability Variance", strconv.FormatFloat(s.ProbabilityVariance, 'g', 6, 64)},
		{"Normalized Entropy", formatProbability(s.NormalizedEntropy)},
		{fmt.Sprintf("Top %d Probability Mass", s.TopK), formatProbability(s.TopKMass)},
		{"Gini Index", formatProbability(s.GiniIndex)},
		{"Uniform Probability", formatProbability(s.UniformProbability)},
		{"Processing Time", result.ProcessingTime.String()},
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportResults writes every result table into the given directory: the full
// ranking, the top-K subset, one marginal table per non-target pot and the
// summary.
func ExportResults(dir string, result *SimResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	files := map[string]func(io.Writer) error{
		"rankings.csv": func(w io.Writer) error {
			return WriteRankings(w, result, result.Rankings)
		},
		"top_combinations.csv": func(w io.Writer) error {
			return WriteRankings(w, result, result.TopK)
		},
		"summary.csv": func(w io.Writer) error {
			return WriteSummary(w, result)
		},
	}
	for pot, table := range result.Marginals {
		files[fmt.Sprintf("marginals_pot%d.csv", int(pot))] = func(w io.Writer) error {
			return WriteMarginals(w, table)
		}
	}

	for _, name := range lo.Keys(files) {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := files[name](f); err != nil {
			f.Close()
			return fmt.Errorf("exporting %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
	}

	return nil
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 6, 64)
}

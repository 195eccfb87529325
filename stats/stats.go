package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

type Result string

const (
	ResultPassed  Result = "Passed"
	ResultFailed  Result = "Failed"
	ResultSkipped Result = "Skipped"
)

type StepStats struct {
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
	Result  Result `json:"result,omitempty"`
}

type ScenarioStats struct {
	Name   string       `json:"name"`
	Steps  []*StepStats `json:"steps"`
	Result Result       `json:"result,omitempty"`
}

type FeatureStats struct {
	Name      string           `json:"name"`
	Scenarios []*ScenarioStats `json:"scenarios"`
}

// RunStats is the serializable outcome of a whole suite run.
type RunStats struct {
	RunID            string          `json:"run_id"`
	TotalFeatures    int             `json:"total_features"`
	TotalScenarios   int             `json:"total_scenarios"`
	SkippedScenarios int             `json:"skipped_scenarios"`
	PassedScenarios  int             `json:"passed_scenarios"`
	FailedScenarios  int             `json:"failed_scenarios"`
	Features         []*FeatureStats `json:"features"`
}

// DeriveResult folds the step results into the scenario result: every step
// passed means passed, any failed step means failed, anything else is skipped.
func (s *ScenarioStats) DeriveResult() Result {
	if len(s.Steps) == 0 {
		return ResultSkipped
	}
	allPassed := true
	for _, step := range s.Steps {
		if step.Result == ResultFailed {
			return ResultFailed
		}
		if step.Result != ResultPassed {
			allPassed = false
		}
	}
	if allPassed {
		return ResultPassed
	}
	return ResultSkipped
}

// Result folds the scenario results the same way DeriveResult does for steps.
func (f *FeatureStats) Result() Result {
	if len(f.Scenarios) == 0 {
		return ResultSkipped
	}
	allPassed := true
	for _, sc := range f.Scenarios {
		if sc.Result == ResultFailed {
			return ResultFailed
		}
		if sc.Result != ResultPassed {
			allPassed = false
		}
	}
	if allPassed {
		return ResultPassed
	}
	return ResultSkipped
}

func NewRunStats(features []*FeatureStats) *RunStats {
	stats := &RunStats{
		RunID:         uuid.NewString(),
		TotalFeatures: len(features),
		Features:      features,
	}
	for _, f := range features {
		for _, sc := range f.Scenarios {
			stats.TotalScenarios++
			switch sc.Result {
			case ResultPassed:
				stats.PassedScenarios++
			case ResultFailed:
				stats.FailedScenarios++
			default:
				stats.SkippedScenarios++
			}
		}
	}
	return stats
}

func (s *RunStats) Failed() bool {
	return s.FailedScenarios > 0
}

const separator = "------------------------------------------------"

// Print writes the two-part overview: run totals first, then the
// feature/scenario/step tree with colored statuses.
func (s *RunStats) Print(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Result overview!")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Total features: %d\n", s.TotalFeatures)
	fmt.Fprintf(w, "Total scenarios: %d\n", s.TotalScenarios)
	fmt.Fprintf(w, "Skipped scenarios: %d\n", s.SkippedScenarios)
	fmt.Fprintf(w, "Passed scenarios: %d\n", s.PassedScenarios)
	fmt.Fprintf(w, "Failed scenarios: %d\n", s.FailedScenarios)
	fmt.Fprintln(w, separator)

	if len(s.Features) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feature overview:")
	fmt.Fprintln(w, separator)

	for _, f := range s.Features {
		fmt.Fprintf(w, "Feature: '%s'; Status: '%s'\n", f.Name, colorize(f.Result()))
		fmt.Fprintln(w)
		for _, sc := range f.Scenarios {
			fmt.Fprintf(w, "\tScenario: '%s'; Status: '%s'\n", sc.Name, colorize(sc.Result))
			for _, step := range sc.Steps {
				result := step.Result
				if result == "" {
					result = ResultSkipped
				}
				fmt.Fprintf(w, "\t\tStep: '%s %s'; Status: '%s'\n", step.Keyword, step.Name, colorize(result))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

func colorize(r Result) aurora.Value {
	switch r {
	case ResultPassed:
		return aurora.Green(string(r))
	case ResultFailed:
		return aurora.Red(string(r))
	default:
		return aurora.Yellow(string(r))
	}
}

// WriteFile stores the stats as JSON under ./out.
func (s *RunStats) WriteFile(filename string) error {
	return s.WriteFileTo("out", filename)
}

func (s *RunStats) WriteFileTo(dir string, filename string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create result directory %s", dir)
	}
	output, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to serialize run stats")
	}
	path := filepath.Join(dir, filename)
	if err = os.WriteFile(path, output, 0644); err != nil {
		return errors.Wrapf(err, "failed to write result file %s", path)
	}
	return nil
}

package engine

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/rectpack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario. Err is set when the scenario could not be packed.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.PackResult
	BinsUsed   int
	LowerBound int
	Efficiency float64
	Err        error
}

// Gap returns how many bins the scenario used above the lower bound.
func (r ComparisonResult) Gap() int {
	return r.BinsUsed - r.LowerBound
}

// CompareScenarios packs inst once per scenario and returns the results in
// scenario order. Scenarios run concurrently on independent solutions.
func CompareScenarios(inst model.Instance, scenarios []ComparisonScenario, logger *log.Logger) []ComparisonResult {
	results := make([]ComparisonResult, len(scenarios))

	var wg sync.WaitGroup
	for i, scenario := range scenarios {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runScenario(inst, scenario)
		}()
	}
	wg.Wait()

	if logger != nil {
		for _, r := range results {
			if r.Err != nil {
				logger.Warn("scenario failed", "scenario", r.Scenario.Name, "err", r.Err)
				continue
			}
			logger.Debug("scenario done", "scenario", r.Scenario.Name, "bins", r.BinsUsed, "gap", r.Gap())
		}
	}
	return results
}

func runScenario(inst model.Instance, scenario ComparisonScenario) ComparisonResult {
	res := ComparisonResult{Scenario: scenario}
	sol, err := Solve(inst, scenario.Settings, nil)
	if err != nil {
		res.Err = err
		return res
	}
	res.Result = sol.Result()
	res.BinsUsed = sol.NumberOfBins()
	res.LowerBound = res.Result.LowerBound
	res.Efficiency = res.Result.TotalEfficiency()
	return res
}

// BestScenario returns the successful result with the fewest bins. Earlier
// scenarios win ties.
func BestScenario(results []ComparisonResult) (ComparisonResult, bool) {
	best, found := ComparisonResult{}, false
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if !found || r.BinsUsed < best.BinsUsed {
			best, found = r, true
		}
	}
	return best, found
}

// BuildDefaultScenarios generates one scenario per heuristic and strategy
// combination, keeping rotation, order and seed from baseSettings. The base
// settings come first.
func BuildDefaultScenarios(baseSettings model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	for _, strategy := range model.Strategies {
		for _, heuristic := range model.Heuristics {
			if strategy == baseSettings.Strategy && heuristic == baseSettings.Heuristic {
				continue
			}
			alt := baseSettings
			alt.Strategy = strategy
			alt.Heuristic = heuristic
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("%s / %s", strategy, heuristic),
				Settings: alt,
			})
		}
	}

	// Scenario: flip rotation
	flipped := baseSettings
	flipped.AllowRotation = !baseSettings.AllowRotation
	name := "Rotation Enabled"
	if baseSettings.AllowRotation {
		name = "Rotation Disabled"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: flipped,
	})

	return scenarios
}

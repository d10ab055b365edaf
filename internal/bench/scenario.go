package bench

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidScenario indicates a scenario that cannot be run.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario describes one scripted run.
type Scenario struct {
	Name       string  `json:"name"`
	Items      int     `json:"items"`
	ItemHeight float64 `json:"item_height"`
	// Jitter adds up to this many units to each item height.
	Jitter   float64 `json:"jitter"`
	Viewport float64 `json:"viewport"`
	Buffer   float64 `json:"buffer"`
	Steps    int     `json:"steps"`
	// StepSize is the scroll delta per step. Zero spreads Steps evenly over
	// the content.
	StepSize float64 `json:"step_size"`
	// Mutations is the number of insert, remove or resize operations spread
	// evenly across the steps.
	Mutations int    `json:"mutations"`
	Seed      uint64 `json:"seed"`
}

// Validate checks that the scenario can be run.
func (s Scenario) Validate() error {
	switch {
	case s.Items < 1:
		return fmt.Errorf("%w: %s: items must be >= 1", ErrInvalidScenario, s.Name)
	case s.ItemHeight <= 0:
		return fmt.Errorf("%w: %s: item height must be > 0", ErrInvalidScenario, s.Name)
	case s.Viewport <= 0:
		return fmt.Errorf("%w: %s: viewport must be > 0", ErrInvalidScenario, s.Name)
	case s.Steps < 1:
		return fmt.Errorf("%w: %s: steps must be >= 1", ErrInvalidScenario, s.Name)
	case s.Jitter < 0 || s.Buffer < 0 || s.Mutations < 0:
		return fmt.Errorf("%w: %s: jitter, buffer and mutations must not be negative", ErrInvalidScenario, s.Name)
	}
	return nil
}

// DefaultScenarios returns a spread of uniform, jittered and mutating runs
// over the given item count.
func DefaultScenarios(items, instances, steps int) []Scenario {
	base := Scenario{
		Items:      items,
		ItemHeight: 20,
		Viewport:   600,
		Buffer:     50,
		Steps:      steps,
	}
	out := make([]Scenario, 0, instances)
	for i := range instances {
		s := base
		s.Seed = uint64(i + 1)
		switch i % 3 {
		case 0:
			s.Name = fmt.Sprintf("uniform-%d", i)
		case 1:
			s.Name = fmt.Sprintf("jitter-%d", i)
			s.Jitter = 40
		case 2:
			s.Name = fmt.Sprintf("mutate-%d", i)
			s.Jitter = 10
			s.Mutations = max(steps/4, 1)
		}
		out = append(out, s)
	}
	return out
}

// Result is the outcome of one scenario.
type Result struct {
	Name          string        `json:"name"`
	Items         int           `json:"items"`
	FinalItems    int           `json:"final_items"`
	Steps         int           `json:"steps"`
	Syncs         int           `json:"syncs"`
	Mounts        int           `json:"mounts"`
	Unmounts      int           `json:"unmounts"`
	MaxRendered   int           `json:"max_rendered"`
	Violations    int           `json:"violations"`
	ContentHeight float64       `json:"content_height"`
	Elapsed       time.Duration `json:"elapsed_ns"`
}

package runner

import (
	"time"
)

// TestSuite defines a group of progression requests and their expected outcomes.
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name   string     `yaml:"name"`
	Player int        `yaml:"player,omitempty"`
	Steps  []TestStep `yaml:"steps,omitempty"` // Used for regular tests
	Cases  []string   `yaml:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one POST /v1/progression call.
type TestStep struct {
	Name         string         `yaml:"name,omitempty"`
	Options      map[string]any `yaml:"options,omitempty"`
	Expectations Expectations   `yaml:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Status        *int           `yaml:"status,omitempty"` // Defaults to 200
	ErrorContains string         `yaml:"error_contains,omitempty"`
	VictoryItem   *string        `yaml:"victory_item,omitempty"`
	SlotData      map[string]any `yaml:"slot_data,omitempty"`
	Adjusted      []string       `yaml:"adjusted,omitempty"` // Option names clamped, order independent
	RegionCount   *int           `yaml:"region_count,omitempty"`
	Regions       []string       `yaml:"regions,omitempty"` // Regions that must exist
	PoolTotal     *int           `yaml:"pool_total,omitempty"`
	Progression   *int           `yaml:"progression_items,omitempty"`

	// Access rule of a named location must contain each fragment
	LocationRules map[string][]string `yaml:"location_rules,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Duration time.Duration
	Error    error
}

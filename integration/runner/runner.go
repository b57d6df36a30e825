package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doshyw/celeste-progression/internal/handlers"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running progression API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a YAML file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := yaml.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, suite, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, suite TestSuite, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{TestName: suite.Name, StepName: step.Name}

	stepCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	status, body, err := r.postProgression(stepCtx, suite.Player, step.Options)
	if err == nil {
		err = checkExpectations(step.Expectations, status, body)
	}

	result.Error = err
	result.Success = err == nil
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) postProgression(ctx context.Context, player int, opts map[string]any) (int, []byte, error) {
	payload, err := json.Marshal(map[string]any{"player": player, "options": opts})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/v1/progression", bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func checkExpectations(exp Expectations, status int, body []byte) error {
	want := http.StatusOK
	if exp.Status != nil {
		want = *exp.Status
	}
	if status != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, status, body)
	}

	if status != http.StatusOK {
		var errResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return fmt.Errorf("failed to decode error response: %w", err)
		}
		if exp.ErrorContains != "" && !strings.Contains(errResp.Error, exp.ErrorContains) {
			return fmt.Errorf("expected error containing %q, got %q", exp.ErrorContains, errResp.Error)
		}
		return nil
	}

	var resp handlers.ProgressionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode progression response: %w", err)
	}

	var errs []string
	if exp.VictoryItem != nil && resp.VictoryItem != *exp.VictoryItem {
		errs = append(errs, fmt.Sprintf("victory item: expected %q, got %q", *exp.VictoryItem, resp.VictoryItem))
	}
	for name, v := range exp.SlotData {
		if fmt.Sprint(resp.SlotData[name]) != fmt.Sprint(v) {
			errs = append(errs, fmt.Sprintf("slot data %s: expected %v, got %v", name, v, resp.SlotData[name]))
		}
	}
	if exp.Adjusted != nil {
		var got []string
		for _, a := range resp.Adjustments {
			got = append(got, a.Option)
		}
		slices.Sort(got)
		wantAdj := slices.Clone(exp.Adjusted)
		slices.Sort(wantAdj)
		if !slices.Equal(got, wantAdj) {
			errs = append(errs, fmt.Sprintf("adjusted options: expected %v, got %v", wantAdj, got))
		}
	}
	if exp.RegionCount != nil && len(resp.Regions) != *exp.RegionCount {
		errs = append(errs, fmt.Sprintf("region count: expected %d, got %d", *exp.RegionCount, len(resp.Regions)))
	}

	regions := make(map[string]handlers.RegionView, len(resp.Regions))
	locations := make(map[string]handlers.LocationView)
	for _, rv := range resp.Regions {
		regions[rv.Name] = rv
		for _, lv := range rv.Locations {
			locations[lv.Name] = lv
		}
	}
	for _, name := range exp.Regions {
		if _, ok := regions[name]; !ok {
			errs = append(errs, fmt.Sprintf("region %q missing", name))
		}
	}
	for name, fragments := range exp.LocationRules {
		lv, ok := locations[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("location %q missing", name))
			continue
		}
		for _, f := range fragments {
			if !strings.Contains(lv.AccessRule, f) {
				errs = append(errs, fmt.Sprintf("location %q: rule %q lacks %q", name, lv.AccessRule, f))
			}
		}
	}

	if exp.PoolTotal != nil && resp.Pool.Total != *exp.PoolTotal {
		errs = append(errs, fmt.Sprintf("pool total: expected %d, got %d", *exp.PoolTotal, resp.Pool.Total))
	}
	if exp.Progression != nil && resp.Pool.Progression != *exp.Progression {
		errs = append(errs, fmt.Sprintf("progression items: expected %d, got %d", *exp.Progression, resp.Pool.Progression))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

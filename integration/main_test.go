package integration

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/doshyw/celeste-progression/integration/runner"
	"github.com/doshyw/celeste-progression/internal/handlers"
	"github.com/doshyw/celeste-progression/internal/middleware"
	"github.com/doshyw/celeste-progression/pkg/catalog"
)

var caseFlag = flag.String("case", "", "Name of test case to run (from integration/cases/)")
var errFlag = flag.String("err", "continue", "Error handling mode: 'continue' (run all steps) or 'exit' (stop on first failure)")

// apiBaseURL returns API_BASE_URL, or starts an in-process server when it
// is unset.
func apiBaseURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	log := slog.New(slog.DiscardHandler)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(cat, log))
	mux.Handle("/v1/catalog", handlers.NewCatalogHandler(cat, log))
	mux.Handle("/v1/progression", handlers.NewProgressionHandler(cat, 1, log))

	srv := httptest.NewServer(middleware.Logger(mux))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newRunner(t *testing.T) *runner.Runner {
	r := runner.NewRunner(apiBaseURL(t))
	r.Timeout = time.Duration(getIntEnv("TEST_TIMEOUT_SECONDS", 30)) * time.Second
	r.Logger = func(format string, args ...any) {
		t.Logf(format, args...)
	}
	return r
}

func TestIntegrationSuites(t *testing.T) {
	testRunner := newRunner(t)

	testFiles, err := discoverTestFiles("cases")
	if err != nil {
		t.Fatalf("Failed to discover test files: %v", err)
	}
	if len(testFiles) == 0 {
		t.Fatal("No test files found in cases directory")
	}

	var jobs []runner.TestJob
	for _, file := range testFiles {
		expandedJobs, err := runner.LoadTestSuiteWithExpansion(file, "cases")
		if err != nil {
			t.Errorf("Failed to load test suite %s: %v", file, err)
			continue
		}
		jobs = append(jobs, expandedJobs...)
	}
	if len(jobs) == 0 {
		t.Fatal("No valid test suites loaded")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var failed []string
	for i, job := range jobs {
		t.Logf("[%d/%d] Starting test suite: %s (%d steps)", i+1, len(jobs), job.Name, len(job.Suite.Steps))

		result, err := testRunner.RunSuite(ctx, job.Suite)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", job.Name, err))
			t.Errorf("[%d/%d] FAILED: Test suite '%s' failed: %v", i+1, len(jobs), job.Name, err)
			continue
		}
		t.Logf("[%d/%d] PASSED: Test suite '%s' completed in %v", i+1, len(jobs), job.Name, result.Duration)
	}

	if len(failed) > 0 {
		t.Fatalf("Integration tests failed:\n   - %s", strings.Join(failed, "\n   - "))
	}
}

// TestSingleSuite allows running individual test suites for debugging
// Supports multiple cases comma-separated: -case "case1,case2,case3"
func TestSingleSuite(t *testing.T) {
	if *caseFlag == "" {
		t.Skip("Skipping single suite test (use -case flag to run)")
	}
	if *errFlag != "exit" && *errFlag != "continue" {
		t.Fatalf("Invalid -err flag value: %s (must be 'exit' or 'continue')", *errFlag)
	}

	testRunner := newRunner(t)
	testRunner.ErrorHandlingMode = runner.ErrorHandlingMode(*errFlag)

	for _, caseName := range strings.Split(*caseFlag, ",") {
		caseName = strings.TrimSpace(caseName)
		if caseName == "" {
			continue
		}
		suiteFile := filepath.Join("cases", caseName)
		if !strings.HasSuffix(suiteFile, ".yaml") {
			suiteFile += ".yaml"
		}

		jobs, err := runner.LoadTestSuiteWithExpansion(suiteFile, "cases")
		if err != nil {
			t.Fatalf("Failed to load test suite %s: %v", suiteFile, err)
		}
		for _, job := range jobs {
			if _, err := testRunner.RunSuite(context.Background(), job.Suite); err != nil {
				t.Errorf("Test suite '%s' failed: %v", job.Name, err)
			}
		}
	}
}

func discoverTestFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".yaml") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func getIntEnv(name string, defaultValue int) int {
	str := os.Getenv(name)
	if str == "" {
		return defaultValue
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultValue
	}

	return val
}

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/progression"
	"github.com/doshyw/celeste-progression/pkg/world"
	"gopkg.in/yaml.v3"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog YAML to validate (defaults to the embedded catalog)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-catalog celeste.yaml] [options.yaml ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	v := &Validator{out: os.Stdout}
	if err := v.loadCatalog(*catalogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	failed := false
	if flag.NArg() == 0 {
		v.summarizeGoals()
	}
	for _, path := range flag.Args() {
		if err := v.validateOptionsFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed || len(v.errors) > 0 {
		for _, e := range v.errors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	fmt.Fprintln(v.out, "All files are valid!")
}

// Validator checks a catalog and option documents by building every
// progression they describe.
type Validator struct {
	out     io.Writer
	catalog *catalog.Catalog
	errors  []string
}

func (v *Validator) loadCatalog(path string) error {
	var err error
	if path == "" {
		fmt.Fprintln(v.out, "Validating embedded catalog...")
		v.catalog, err = catalog.Default()
	} else {
		fmt.Fprintf(v.out, "Validating %s...\n", path)
		v.catalog, err = catalog.LoadFile(path)
	}
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	fmt.Fprintf(v.out, "  %d areas, %d entries\n", len(v.catalog.Areas()), len(v.catalog.Entries()))
	return nil
}

// summarizeGoals builds the default options once per goal and reports
// what each goal's world contains. Goals the catalog cannot serve are
// listed, not treated as failures.
func (v *Validator) summarizeGoals() {
	for goal := options.GoalSummitA; goal <= options.GoalCoreC; goal++ {
		opts := options.Defaults()
		opts.GoalLevel = goal

		level, _ := goal.Level()
		summary, err := v.build(opts)
		if errors.Is(err, progression.ErrConfiguration) {
			fmt.Fprintf(v.out, "  goal %d (%s): unavailable: %v\n", goal, level, err)
			continue
		}
		if err != nil {
			v.errors = append(v.errors, fmt.Sprintf("goal %d (%s): %v", goal, level, err))
			continue
		}
		fmt.Fprintf(v.out, "  goal %d (%s): %s\n", goal, level, summary)
	}
}

func (v *Validator) validateOptionsFile(path string) error {
	fmt.Fprintf(v.out, "Validating %s...\n", path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".json" {
		return fmt.Errorf("options file must have .yaml, .yml or .json extension: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	opts := options.Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("file %s failed strict unmarshaling: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}

	summary, err := v.build(opts)
	if err != nil {
		return fmt.Errorf("file %s: %w", path, err)
	}
	fmt.Fprintf(v.out, "  %s\n", summary)
	return nil
}

func (v *Validator) build(opts options.Options) (string, error) {
	p, err := progression.New(v.catalog, opts, slog.New(slog.DiscardHandler))
	if err != nil {
		return "", err
	}
	regions, err := p.Regions(1, world.NewGraph())
	if err != nil {
		return "", err
	}
	pool, err := p.ItemPool(1, nil)
	if err != nil {
		return "", err
	}
	locations, err := p.Locations(1, nil)
	if err != nil {
		return "", err
	}
	if len(pool) != len(locations) {
		return "", fmt.Errorf("item pool has %d items for %d locations", len(pool), len(locations))
	}

	summary := fmt.Sprintf("%d regions, %d locations, victory %q", len(regions), len(locations), p.VictoryItemName())
	for _, a := range p.Adjustments() {
		summary += fmt.Sprintf("; %s clamped %d -> %d", a.Option, a.Requested, a.Applied)
	}
	return summary, nil
}

// Package options holds the resolved per-player option set the progression
// system reads.
package options

import (
	"fmt"
	"os"
	"sort"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// GoalLevel selects the level whose completion is the victory condition.
type GoalLevel int

const (
	GoalSummitA   GoalLevel = 0
	GoalCoreA     GoalLevel = 1
	GoalFarewellA GoalLevel = 2
	GoalSummitB   GoalLevel = 3
	GoalCoreB     GoalLevel = 4
	GoalSummitC   GoalLevel = 5
	GoalCoreC     GoalLevel = 6
)

var goalLevels = map[GoalLevel]catalog.Level{
	GoalSummitA:   {Chapter: catalog.TheSummit, Side: catalog.SideA},
	GoalSummitB:   {Chapter: catalog.TheSummit, Side: catalog.SideB},
	GoalSummitC:   {Chapter: catalog.TheSummit, Side: catalog.SideC},
	GoalCoreA:     {Chapter: catalog.Core, Side: catalog.SideA},
	GoalCoreB:     {Chapter: catalog.Core, Side: catalog.SideB},
	GoalCoreC:     {Chapter: catalog.Core, Side: catalog.SideC},
	GoalFarewellA: {Chapter: catalog.Farewell, Side: catalog.SideA},
}

// Level resolves the goal to a catalog level. ok is false for unmapped values.
func (g GoalLevel) Level() (catalog.Level, bool) {
	l, ok := goalLevels[g]
	return l, ok
}

// ProgressionSystem selects the progression strategy.
type ProgressionSystem int

const (
	DefaultProgression ProgressionSystem = 0
)

// Option names as they appear in option documents and slot data.
const (
	BerriesRequired   = "berries_required"
	CassettesRequired = "cassettes_required"
	HeartsRequired    = "hearts_required"
	LevelsRequired    = "levels_required"
	Goal              = "goal_level"
	System            = "progression_system"
	DisableHeartGates = "disable_heart_gates"
)

// Range is the accepted span of a numeric option.
type Range struct {
	DisplayName string
	Min         int
	Max         int
	Default     int
}

// Ranges documents the numeric options, keyed by option name.
var Ranges = map[string]Range{
	BerriesRequired:   {DisplayName: "Strawberry Requirement", Min: 0, Max: 175},
	CassettesRequired: {DisplayName: "Cassette Requirement", Min: 0, Max: 8},
	HeartsRequired:    {DisplayName: "Crystal Heart Requirement", Min: 0, Max: 24},
	LevelsRequired:    {DisplayName: "Level Completion Requirement", Min: 0, Max: 25},
	Goal:              {DisplayName: "Victory Condition", Min: 0, Max: 6},
	System:            {DisplayName: "Progression System", Min: 0, Max: 0},
}

// Options is a resolved option set for one player.
type Options struct {
	BerriesRequired   int               `json:"berries_required" yaml:"berries_required"`
	CassettesRequired int               `json:"cassettes_required" yaml:"cassettes_required"`
	HeartsRequired    int               `json:"hearts_required" yaml:"hearts_required"`
	LevelsRequired    int               `json:"levels_required" yaml:"levels_required"`
	GoalLevel         GoalLevel         `json:"goal_level" yaml:"goal_level"`
	ProgressionSystem ProgressionSystem `json:"progression_system" yaml:"progression_system"`
	DisableHeartGates bool              `json:"disable_heart_gates" yaml:"disable_heart_gates"`
}

// Defaults returns the option set used when a document omits everything.
func Defaults() Options {
	return Options{GoalLevel: GoalSummitA, ProgressionSystem: DefaultProgression}
}

// LoadFile reads an option document. YAML and JSON are both accepted; fields
// missing from the document keep their defaults.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an option document on top of Defaults.
func Parse(data []byte) (Options, error) {
	opts := Defaults()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("yaml parse: %w", err)
	}
	return opts, nil
}

// Validate range-checks every numeric option. The progression system does
// not call this; hosts validate before handing options over.
func (o Options) Validate() error {
	values := o.Values()
	names := make([]string, 0, len(Ranges))
	for name := range Ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := Ranges[name]
		v := values[name].(int)
		if v < r.Min || v > r.Max {
			return fmt.Errorf("option %s=%d outside %d..%d", name, v, r.Min, r.Max)
		}
	}
	return nil
}

// Get returns an option by name. Numeric options are returned as int and
// toggles as bool.
func (o Options) Get(name string) (any, error) {
	v, ok := o.Values()[name]
	if !ok {
		return nil, fmt.Errorf("unknown option %q", name)
	}
	return v, nil
}

// Values returns every option keyed by name.
func (o Options) Values() map[string]any {
	return map[string]any{
		BerriesRequired:   o.BerriesRequired,
		CassettesRequired: o.CassettesRequired,
		HeartsRequired:    o.HeartsRequired,
		LevelsRequired:    o.LevelsRequired,
		Goal:              int(o.GoalLevel),
		System:            int(o.ProgressionSystem),
		DisableHeartGates: o.DisableHeartGates,
	}
}

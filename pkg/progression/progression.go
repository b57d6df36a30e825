// Package progression turns the content catalog and a player's options into
// the logic a multiworld host needs: the region graph, the item catalog, and
// the access rule of every location.
package progression

import (
	"log/slog"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/rules"
	"github.com/doshyw/celeste-progression/pkg/world"
)

// Item-name groups published for group queries.
const (
	GroupCassettes = "cassettes"
	GroupLevels    = "levels"
	GroupHearts    = "hearts"
	GroupBerries   = "berries"
)

// Progression builds one player's logic. Every builder is memoized: repeated
// calls return the same objects. Builders may be called in any order; each
// builds whatever it depends on first.
type Progression interface {
	// VictoryItemName names the item whose possession completes the game.
	VictoryItemName() string

	Regions(player rules.PlayerID, mw world.Multiworld) ([]*world.Region, error)
	Items(player rules.PlayerID, mw world.Multiworld) (map[int64]*world.Item, error)
	Locations(player rules.PlayerID, mw world.Multiworld) (map[int64]*world.Location, error)

	// ItemPool returns every logical item in catalog order, strawberries
	// individually, for the host fill step to copy from.
	ItemPool(player rules.PlayerID, mw world.Multiworld) ([]*world.Item, error)

	ItemNameToID() (map[string]int64, error)
	LocationNameToID() (map[string]int64, error)
	ItemNameGroups() (map[string][]string, error)

	// SlotData exports the options actually enforced, after clamping.
	SlotData() (map[string]any, error)
	Adjustments() []Adjustment
}

// Adjustment records a required-count option lowered to what the catalog
// can supply.
type Adjustment struct {
	Option    string `json:"option"`
	Requested int    `json:"requested"`
	Applied   int    `json:"applied"`
}

// Constructor builds a Progression for one player's options.
type Constructor func(cat *catalog.Catalog, opts options.Options, logger *slog.Logger) (Progression, error)

var constructors = map[options.ProgressionSystem]Constructor{
	options.DefaultProgression: func(cat *catalog.Catalog, opts options.Options, logger *slog.Logger) (Progression, error) {
		p, err := NewDefault(cat, opts, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	},
}

// Register installs a strategy under an option value. Call it from init;
// the registry is not guarded for concurrent writes.
func Register(system options.ProgressionSystem, ctor Constructor) {
	constructors[system] = ctor
}

// New builds the strategy selected by opts.ProgressionSystem.
func New(cat *catalog.Catalog, opts options.Options, logger *slog.Logger) (Progression, error) {
	ctor, ok := constructors[opts.ProgressionSystem]
	if !ok {
		return nil, &ConfigurationError{
			Option: options.System,
			Value:  int(opts.ProgressionSystem),
			Reason: "no progression system registered",
		}
	}
	return ctor(cat, opts, logger)
}

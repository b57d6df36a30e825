package progression

import (
	"fmt"
	"log/slog"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/rules"
	"github.com/doshyw/celeste-progression/pkg/world"
	"github.com/google/uuid"
)

// stage is one memoized build step.
type stage int

const (
	stageItems stage = iota
	stageLocations
	stageRegions
)

func (s stage) String() string {
	switch s {
	case stageItems:
		return "items"
	case stageLocations:
		return "locations"
	case stageRegions:
		return "regions"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// stageDeps lists what must be built before each stage. Location rules read
// the clamped required counts, and regions attach built locations.
var stageDeps = map[stage][]stage{
	stageLocations: {stageItems},
	stageRegions:   {stageLocations},
}

// Default is the progression of the original game: chapters unlock in
// order, cassettes unlock B-sides, and clearing A and B unlocks the C-side.
type Default struct {
	cat    *catalog.Catalog
	opts   options.Options
	goal   catalog.Level
	runID  uuid.UUID
	logger *slog.Logger

	built  map[stage]bool
	player rules.PlayerID
	bound  bool

	items     map[int64]*world.Item
	pool      []*world.Item
	locations map[int64]*world.Location
	regions   []*world.Region

	itemNameToID     map[string]int64
	locationNameToID map[string]int64
	adjustments      []Adjustment
}

// Ensure Default implements Progression interface
var _ Progression = (*Default)(nil)

// NewDefault validates the goal and returns an unbuilt Default. opts is
// copied; clamping never touches the caller's value.
func NewDefault(cat *catalog.Catalog, opts options.Options, logger *slog.Logger) (*Default, error) {
	if logger == nil {
		logger = slog.Default()
	}

	goal, ok := opts.GoalLevel.Level()
	if !ok {
		return nil, &ConfigurationError{Option: options.Goal, Value: int(opts.GoalLevel), Reason: "unmapped goal level"}
	}
	if !cat.HasLevel(goal) {
		return nil, &ConfigurationError{Option: options.Goal, Value: int(opts.GoalLevel), Reason: fmt.Sprintf("%s is not in the catalog", goal)}
	}
	if _, ok := cat.ItemName(catalog.Completion, goal); !ok {
		return nil, &ConfigurationError{Option: options.Goal, Value: int(opts.GoalLevel), Reason: fmt.Sprintf("%s has no completion item", goal)}
	}

	runID := uuid.New()
	return &Default{
		cat:    cat,
		opts:   opts,
		goal:   goal,
		runID:  runID,
		logger: logger.With("run_id", runID.String(), "goal", goal.String()),
		built:  make(map[stage]bool),
	}, nil
}

// RunID identifies this generation run in logs and slot data.
func (p *Default) RunID() uuid.UUID { return p.runID }

// Goal returns the resolved goal level.
func (p *Default) Goal() catalog.Level { return p.goal }

// Options returns the instance's option view, including any clamping.
func (p *Default) Options() options.Options { return p.opts }

func (p *Default) VictoryItemName() string {
	name, _ := p.cat.ItemName(catalog.Completion, p.goal)
	return name
}

func (p *Default) Items(player rules.PlayerID, mw world.Multiworld) (map[int64]*world.Item, error) {
	if err := p.ensure(stageItems, player, mw); err != nil {
		return nil, err
	}
	return p.items, nil
}

func (p *Default) ItemPool(player rules.PlayerID, mw world.Multiworld) ([]*world.Item, error) {
	if err := p.ensure(stageItems, player, mw); err != nil {
		return nil, err
	}
	return p.pool, nil
}

func (p *Default) Locations(player rules.PlayerID, mw world.Multiworld) (map[int64]*world.Location, error) {
	if err := p.ensure(stageLocations, player, mw); err != nil {
		return nil, err
	}
	return p.locations, nil
}

func (p *Default) Regions(player rules.PlayerID, mw world.Multiworld) ([]*world.Region, error) {
	if err := p.ensure(stageRegions, player, mw); err != nil {
		return nil, err
	}
	return p.regions, nil
}

// ensure builds s and everything it depends on, once.
func (p *Default) ensure(s stage, player rules.PlayerID, mw world.Multiworld) error {
	if p.bound && player != p.player {
		return &PreconditionError{
			Op:     s.String(),
			Reason: fmt.Sprintf("instance is bound to player %d, called for player %d", p.player, player),
		}
	}
	if p.built[s] {
		return nil
	}
	for _, dep := range stageDeps[s] {
		if err := p.ensure(dep, player, mw); err != nil {
			return err
		}
	}

	p.player, p.bound = player, true
	switch s {
	case stageItems:
		p.buildItems(player)
	case stageLocations:
		p.buildLocations(player)
	case stageRegions:
		if mw == nil {
			return &PreconditionError{Op: s.String(), Reason: "a multiworld is required to create regions"}
		}
		if err := p.buildRegions(player, mw); err != nil {
			return err
		}
	}
	p.built[s] = true
	return nil
}

func (p *Default) buildItems(player rules.PlayerID) {
	entries := p.cat.EntriesUpTo(p.goal)

	tally := make(map[catalog.ItemKind]int)
	for _, e := range entries {
		tally[e.Kind]++
	}
	p.clamp(options.BerriesRequired, &p.opts.BerriesRequired, tally[catalog.Strawberry], player)
	p.clamp(options.CassettesRequired, &p.opts.CassettesRequired, tally[catalog.Cassette], player)
	p.clamp(options.HeartsRequired, &p.opts.HeartsRequired, tally[catalog.Gemheart], player)
	p.clamp(options.LevelsRequired, &p.opts.LevelsRequired, tally[catalog.Completion], player)

	p.items = make(map[int64]*world.Item)
	p.pool = make([]*world.Item, 0, len(entries))
	strawberries := 0
	for _, e := range entries {
		classification := world.Progression
		if e.Kind == catalog.Strawberry {
			if strawberries >= p.opts.BerriesRequired {
				classification = world.Filler
			}
			strawberries++
		}

		item := &world.Item{
			Name:           e.ItemName,
			Kind:           e.Kind,
			Level:          e.Level,
			ID:             e.ItemID(),
			Classification: classification,
			Player:         player,
		}
		p.pool = append(p.pool, item)
		// Strawberries share one identity, so the last one wins.
		p.items[item.ID] = item
	}

	p.logger.Debug("Built item catalog",
		"player", player,
		"pool_size", len(p.pool),
		"distinct_items", len(p.items),
		"progression_strawberries", min(strawberries, p.opts.BerriesRequired))
}

func (p *Default) clamp(name string, value *int, available int, player rules.PlayerID) {
	if *value <= available {
		return
	}
	p.adjustments = append(p.adjustments, Adjustment{Option: name, Requested: *value, Applied: available})
	p.logger.Info("Clamped required-count option",
		"option", name,
		"requested", *value,
		"applied", available,
		"player", player)
	*value = available
}

func (p *Default) buildLocations(player rules.PlayerID) {
	p.locations = make(map[int64]*world.Location)
	for _, e := range p.cat.EntriesUpTo(p.goal) {
		p.locations[e.ID] = &world.Location{
			Player: player,
			Level:  e.Level,
			Name:   e.LocationName,
			ID:     e.ID,
			Rule:   p.locationRule(player, e.Level),
		}
	}
	p.logger.Debug("Built location catalog", "player", player, "locations", len(p.locations))
}

func (p *Default) buildRegions(player rules.PlayerID, mw world.Multiworld) error {
	menu := mw.NewRegion("Menu", player)
	hub := mw.NewRegion("Map", player)
	menu.Connect(hub, "", nil)
	regions := []*world.Region{menu, hub}

	for _, level := range p.cat.Levels(p.goal) {
		rule, err := p.regionRule(player, level)
		if err != nil {
			return err
		}
		name := p.cat.RegionName(level)
		region := mw.NewRegion(name, player)
		hub.Connect(region, "Load "+name, rule)
		for _, e := range p.cat.LevelEntries(level) {
			region.AddLocation(p.locations[e.ID])
		}
		regions = append(regions, region)
	}

	p.regions = regions
	p.logger.Debug("Built region graph", "player", player, "regions", len(regions))
	return nil
}

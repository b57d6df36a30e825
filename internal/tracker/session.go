// Package tracker follows one player's run: it holds a collection state over
// a built progression and reports which regions and locations are in logic.
package tracker

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/progression"
	"github.com/doshyw/celeste-progression/pkg/rules"
	"github.com/doshyw/celeste-progression/pkg/state"
	"github.com/doshyw/celeste-progression/pkg/world"
)

// Session is a single player's tracker. It is not safe for concurrent use.
type Session struct {
	player rules.PlayerID
	prog   progression.Progression
	graph  *world.Graph
	menu   *world.Region
	state  *state.Collection
	names  []string
	logger *slog.Logger
}

// Report is a snapshot of what the held items put in logic.
type Report struct {
	Reachable []string       `json:"reachable"`
	Checkable []string       `json:"checkable"`
	Held      map[string]int `json:"held"`
	Locations int            `json:"locations"`
	Complete  bool           `json:"complete"`
}

// NewSession builds the player's world and starts with nothing collected.
func NewSession(cat *catalog.Catalog, opts options.Options, player rules.PlayerID, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p, err := progression.New(cat, opts, logger)
	if err != nil {
		return nil, err
	}

	g := world.NewGraph()
	if _, err := p.Regions(player, g); err != nil {
		return nil, fmt.Errorf("build regions: %w", err)
	}
	items, err := p.Items(player, g)
	if err != nil {
		return nil, fmt.Errorf("build items: %w", err)
	}
	groups, err := p.ItemNameGroups()
	if err != nil {
		return nil, fmt.Errorf("item groups: %w", err)
	}

	menu, ok := g.Region("Menu", player)
	if !ok {
		return nil, fmt.Errorf("progression did not create a Menu region")
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	sort.Strings(names)

	c := state.NewCollection()
	c.SetGroups(player, groups)

	logger.Info("Tracker session started",
		"player", player,
		"victory_item", p.VictoryItemName(),
		"regions", len(g.Regions(player)),
		"items", len(names))

	return &Session{
		player: player,
		prog:   p,
		graph:  g,
		menu:   menu,
		state:  c,
		names:  names,
		logger: logger,
	}, nil
}

// ItemNames lists every collectable item name, sorted.
func (s *Session) ItemNames() []string {
	return append([]string(nil), s.names...)
}

func (s *Session) VictoryItem() string {
	return s.prog.VictoryItemName()
}

// Resolve maps loose input to an item name.
func (s *Session) Resolve(input string) (string, error) {
	return match(input, s.names)
}

// Collect adds n copies of the item input resolves to and returns its name.
func (s *Session) Collect(input string, n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("count must be positive, got %d", n)
	}
	name, err := s.Resolve(input)
	if err != nil {
		return "", err
	}
	s.state.CollectN(s.player, name, n)
	s.logger.Debug("Collected item", "item", name, "count", n, "held", s.state.Count(s.player, name))
	return name, nil
}

// Drop removes one copy of an item.
func (s *Session) Drop(input string) (string, error) {
	name, err := s.Resolve(input)
	if err != nil {
		return "", err
	}
	if !s.state.Remove(s.player, name) {
		return "", fmt.Errorf("%s is not held", name)
	}
	s.logger.Debug("Dropped item", "item", name, "held", s.state.Count(s.player, name))
	return name, nil
}

// Report walks the region graph with the current collection.
func (s *Session) Report() Report {
	r := Report{Held: make(map[string]int)}

	for _, region := range s.graph.Reachable(s.menu, s.state) {
		r.Reachable = append(r.Reachable, region.Name)
	}
	for _, loc := range s.graph.Checkable(s.menu, s.state) {
		r.Checkable = append(r.Checkable, loc.Name)
	}
	for _, name := range s.state.Held(s.player) {
		r.Held[name] = s.state.Count(s.player, name)
	}

	locations, err := s.prog.Locations(s.player, s.graph)
	if err == nil {
		r.Locations = len(locations)
	}
	r.Complete = s.state.Has(s.prog.VictoryItemName(), s.player)
	return r
}

// SlotData returns the enforced options as indented JSON.
func (s *Session) SlotData() ([]byte, error) {
	data, err := s.prog.SlotData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// Adjustments lists options clamped when the session was built.
func (s *Session) Adjustments() []progression.Adjustment {
	return s.prog.Adjustments()
}

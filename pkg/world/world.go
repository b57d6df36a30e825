// Package world provides the graph primitives a progression system builds:
// items, locations, regions and the entrances connecting them.
package world

import (
	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/rules"
)

// Classification tells the fill step how important an item is for logic.
type Classification int

const (
	Filler Classification = iota
	Progression
)

func (c Classification) String() string {
	switch c {
	case Progression:
		return "progression"
	default:
		return "filler"
	}
}

// Item is a logical item owned by a player.
type Item struct {
	Name           string           `json:"name"`
	Kind           catalog.ItemKind `json:"kind"`
	Level          catalog.Level    `json:"level"`
	ID             int64            `json:"id"`
	Classification Classification   `json:"classification"`
	Player         rules.PlayerID   `json:"player"`
}

// Copy returns an independent placeable copy sharing identity and classification.
func (i *Item) Copy() *Item {
	c := *i
	return &c
}

// Location is a spot that can hold an item. Rule is fixed at construction.
type Location struct {
	Player rules.PlayerID `json:"player"`
	Level  catalog.Level  `json:"level"`
	Name   string         `json:"name"`
	ID     int64          `json:"id"`
	Rule   rules.Rule     `json:"rule"`
	Parent *Region        `json:"-"`
}

// CanAccess evaluates the location's own rule. Region reachability is
// checked separately.
func (l *Location) CanAccess(s rules.StateView) bool {
	return l.Rule.Eval(s)
}

// Entrance is a directed edge between regions. A nil Rule is always
// traversable.
type Entrance struct {
	Name   string
	Parent *Region
	Target *Region
	Rule   *rules.Rule
}

// CanTraverse reports whether the entrance's guard holds.
func (e *Entrance) CanTraverse(s rules.StateView) bool {
	return e.Rule == nil || e.Rule.Eval(s)
}

// Region is a node in the graph holding the locations inside it.
type Region struct {
	Name      string
	Player    rules.PlayerID
	Locations []*Location
	Exits     []*Entrance
	Entrances []*Entrance
}

// Connect adds an edge from r to target. An empty name defaults to
// "<from> -> <to>".
func (r *Region) Connect(target *Region, name string, rule *rules.Rule) *Entrance {
	if name == "" {
		name = r.Name + " -> " + target.Name
	}
	e := &Entrance{Name: name, Parent: r, Target: target, Rule: rule}
	r.Exits = append(r.Exits, e)
	target.Entrances = append(target.Entrances, e)
	return e
}

// AddLocation attaches loc to r.
func (r *Region) AddLocation(loc *Location) {
	loc.Parent = r
	r.Locations = append(r.Locations, loc)
}

// Multiworld is the host side of the graph: it owns region creation.
type Multiworld interface {
	NewRegion(name string, player rules.PlayerID) *Region
}

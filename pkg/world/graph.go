package world

import (
	"github.com/doshyw/celeste-progression/pkg/rules"
)

type regionKey struct {
	player rules.PlayerID
	name   string
}

// Graph is an in-memory Multiworld.
type Graph struct {
	regions map[regionKey]*Region
	order   []*Region
}

// Ensure Graph implements Multiworld interface
var _ Multiworld = (*Graph)(nil)

func NewGraph() *Graph {
	return &Graph{regions: make(map[regionKey]*Region)}
}

// NewRegion creates and registers a region. Creating a name twice for the
// same player returns the existing region.
func (g *Graph) NewRegion(name string, player rules.PlayerID) *Region {
	key := regionKey{player: player, name: name}
	if r, ok := g.regions[key]; ok {
		return r
	}
	r := &Region{Name: name, Player: player}
	g.regions[key] = r
	g.order = append(g.order, r)
	return r
}

// Region looks up a region by name.
func (g *Graph) Region(name string, player rules.PlayerID) (*Region, bool) {
	r, ok := g.regions[regionKey{player: player, name: name}]
	return r, ok
}

// Regions returns every region of player in creation order.
func (g *Graph) Regions(player rules.PlayerID) []*Region {
	var out []*Region
	for _, r := range g.order {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out
}

// Reachable walks the graph from origin following every traversable
// entrance and returns the regions visited, origin first.
func (g *Graph) Reachable(origin *Region, s rules.StateView) []*Region {
	seen := map[*Region]bool{origin: true}
	out := []*Region{origin}
	for i := 0; i < len(out); i++ {
		for _, exit := range out[i].Exits {
			if seen[exit.Target] || !exit.CanTraverse(s) {
				continue
			}
			seen[exit.Target] = true
			out = append(out, exit.Target)
		}
	}
	return out
}

// Checkable returns the locations in reachable regions whose rules hold.
func (g *Graph) Checkable(origin *Region, s rules.StateView) []*Location {
	var out []*Location
	for _, r := range g.Reachable(origin, s) {
		for _, loc := range r.Locations {
			if loc.CanAccess(s) {
				out = append(out, loc)
			}
		}
	}
	return out
}

package state

import (
	"sort"

	"github.com/doshyw/celeste-progression/pkg/rules"
)

// Collection is an in-memory record of which items each player holds. It
// implements rules.StateView, counting copies so fungible items such as
// strawberries can be queried by amount.
type Collection struct {
	counts map[rules.PlayerID]map[string]int
	groups map[rules.PlayerID]map[string][]string
}

// Ensure Collection implements StateView interface
var _ rules.StateView = (*Collection)(nil)

func NewCollection() *Collection {
	return &Collection{
		counts: make(map[rules.PlayerID]map[string]int),
		groups: make(map[rules.PlayerID]map[string][]string),
	}
}

// SetGroups installs the item-name groups published for player's game.
func (c *Collection) SetGroups(player rules.PlayerID, groups map[string][]string) {
	installed := make(map[string][]string, len(groups))
	for name, members := range groups {
		installed[name] = dedupe(members)
	}
	c.groups[player] = installed
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Collect adds one copy of item for player.
func (c *Collection) Collect(player rules.PlayerID, item string) {
	c.CollectN(player, item, 1)
}

// CollectN adds n copies of item for player.
func (c *Collection) CollectN(player rules.PlayerID, item string, n int) {
	if n <= 0 {
		return
	}
	held, ok := c.counts[player]
	if !ok {
		held = make(map[string]int)
		c.counts[player] = held
	}
	held[item] += n
}

// Remove drops one copy of item. It reports false when none was held.
func (c *Collection) Remove(player rules.PlayerID, item string) bool {
	held := c.counts[player]
	if held[item] == 0 {
		return false
	}
	held[item]--
	if held[item] == 0 {
		delete(held, item)
	}
	return true
}

// Count returns how many copies of item player holds.
func (c *Collection) Count(player rules.PlayerID, item string) int {
	return c.counts[player][item]
}

// GroupCount sums the copies held of every member of group.
func (c *Collection) GroupCount(group string, player rules.PlayerID) int {
	total := 0
	for _, member := range c.groups[player][group] {
		total += c.counts[player][member]
	}
	return total
}

// Held returns the names player holds, sorted.
func (c *Collection) Held(player rules.PlayerID) []string {
	names := make([]string, 0, len(c.counts[player]))
	for name := range c.counts[player] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Collection) Has(item string, player rules.PlayerID) bool {
	return c.Count(player, item) > 0
}

func (c *Collection) HasAny(items []string, player rules.PlayerID) bool {
	for _, item := range items {
		if c.Has(item, player) {
			return true
		}
	}
	return false
}

func (c *Collection) HasAll(items []string, player rules.PlayerID) bool {
	for _, item := range items {
		if !c.Has(item, player) {
			return false
		}
	}
	return true
}

func (c *Collection) HasGroup(group string, player rules.PlayerID, n int) bool {
	return c.GroupCount(group, player) >= n
}

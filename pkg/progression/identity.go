package progression

import (
	"cmp"
	"slices"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/world"
)

// ItemNameToID maps every built item name to its identity. It fails until
// Items has run.
func (p *Default) ItemNameToID() (map[string]int64, error) {
	if !p.built[stageItems] {
		return nil, &PreconditionError{Op: "item_name_to_id", Reason: "item catalog has not been built"}
	}
	if p.itemNameToID == nil {
		p.itemNameToID = make(map[string]int64, len(p.items))
		for id, item := range p.items {
			p.itemNameToID[item.Name] = id
		}
	}
	return p.itemNameToID, nil
}

// LocationNameToID maps every built location name to its identity. It fails
// until Locations has run.
func (p *Default) LocationNameToID() (map[string]int64, error) {
	if !p.built[stageLocations] {
		return nil, &PreconditionError{Op: "location_name_to_id", Reason: "location catalog has not been built"}
	}
	if p.locationNameToID == nil {
		p.locationNameToID = make(map[string]int64, len(p.locations))
		for id, loc := range p.locations {
			p.locationNameToID[loc.Name] = id
		}
	}
	return p.locationNameToID, nil
}

// ItemNameGroups lists the built item names behind each group query, ordered
// by identity.
func (p *Default) ItemNameGroups() (map[string][]string, error) {
	if !p.built[stageItems] {
		return nil, &PreconditionError{Op: "item_name_groups", Reason: "item catalog has not been built"}
	}

	items := make([]*world.Item, 0, len(p.items))
	for _, item := range p.items {
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b *world.Item) int { return cmp.Compare(a.ID, b.ID) })

	groups := map[string][]string{
		GroupCassettes: {},
		GroupLevels:    {},
		GroupHearts:    {},
		GroupBerries:   {},
	}
	for _, item := range items {
		var g string
		switch item.Kind {
		case catalog.Cassette:
			g = GroupCassettes
		case catalog.Completion:
			g = GroupLevels
		case catalog.Gemheart:
			g = GroupHearts
		case catalog.Strawberry:
			g = GroupBerries
		default:
			continue
		}
		groups[g] = append(groups[g], item.Name)
	}
	return groups, nil
}

// SlotData exports the enforced options. Clamping happens while building
// items, so that stage must have run.
func (p *Default) SlotData() (map[string]any, error) {
	if !p.built[stageItems] {
		return nil, &PreconditionError{Op: "slot_data", Reason: "item catalog has not been built"}
	}
	data := p.opts.Values()
	data["run_id"] = p.runID.String()
	return data, nil
}

// Adjustments lists every option clamped so far.
func (p *Default) Adjustments() []Adjustment {
	return slices.Clone(p.adjustments)
}

package progression

import (
	"fmt"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/rules"
)

// regionRule guards the Map -> level edge. A nil rule means always open.
func (p *Default) regionRule(player rules.PlayerID, level catalog.Level) (*rules.Rule, error) {
	var clause rules.Clause

	switch level.Side {
	case catalog.SideA:
		prev, ok := p.cat.Previous(level.Chapter)
		if !ok {
			return nil, nil
		}
		// Finishing the previous chapter on any side opens the next one.
		clause = rules.HasAny(p.cat.CompletionNames(prev)...)

	case catalog.SideB:
		cassette, ok := p.cat.ItemName(catalog.Cassette, catalog.Level{Chapter: level.Chapter, Side: catalog.SideA})
		if !ok {
			return nil, fmt.Errorf("%s: no A-side cassette in catalog", level)
		}
		clause = rules.Has(cassette)

	case catalog.SideC:
		a, okA := p.cat.ItemName(catalog.Completion, catalog.Level{Chapter: level.Chapter, Side: catalog.SideA})
		b, okB := p.cat.ItemName(catalog.Completion, catalog.Level{Chapter: level.Chapter, Side: catalog.SideB})
		if !okA || !okB {
			return nil, fmt.Errorf("%s: A- and B-side completions missing from catalog", level)
		}
		clause = rules.HasAll(a, b)

	default:
		return nil, nil
	}

	rule := rules.New(player, clause)
	return &rule, nil
}

// locationRule is the conjunction of the level's heart gate and, inside the
// goal level, the four required-count thresholds.
func (p *Default) locationRule(player rules.PlayerID, level catalog.Level) rules.Rule {
	rule := rules.New(player)

	if !p.opts.DisableHeartGates {
		if n, ok := p.cat.HeartGate(level); ok {
			rule = rule.And(rules.HasGroup(GroupHearts, n))
		}
	}

	if level == p.goal {
		rule = rule.And(
			rules.HasGroup(GroupHearts, p.opts.HeartsRequired),
			rules.HasGroup(GroupBerries, p.opts.BerriesRequired),
			rules.HasGroup(GroupLevels, p.opts.LevelsRequired),
			rules.HasGroup(GroupCassettes, p.opts.CassettesRequired),
		)
	}
	return rule
}

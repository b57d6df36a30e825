// Package rules models access predicates as immutable values evaluated
// against a collection-state view supplied at call time.
package rules

import (
	"fmt"
	"strings"
)

// PlayerID identifies a participant in a multiworld.
type PlayerID int

// StateView is the minimal collection-state query interface a rule needs.
// The host's collection state implements it; rules never inspect state any
// other way.
type StateView interface {
	Has(item string, player PlayerID) bool
	HasAny(items []string, player PlayerID) bool
	HasAll(items []string, player PlayerID) bool
	HasGroup(group string, player PlayerID, n int) bool
}

// ClauseKind selects which StateView query a clause performs.
type ClauseKind int

const (
	ClauseHas ClauseKind = iota + 1
	ClauseHasAny
	ClauseHasAll
	ClauseHasGroup
)

// Clause is a single query against the collection state.
type Clause struct {
	Kind  ClauseKind `json:"kind"`
	Items []string   `json:"items,omitempty"`
	Group string     `json:"group,omitempty"`
	Count int        `json:"count,omitempty"`
}

// Has requires a single named item.
func Has(item string) Clause {
	return Clause{Kind: ClauseHas, Items: []string{item}}
}

// HasAny requires at least one of the named items.
func HasAny(items ...string) Clause {
	return Clause{Kind: ClauseHasAny, Items: append([]string(nil), items...)}
}

// HasAll requires every named item.
func HasAll(items ...string) Clause {
	return Clause{Kind: ClauseHasAll, Items: append([]string(nil), items...)}
}

// HasGroup requires at least n items from a named group.
func HasGroup(group string, n int) Clause {
	return Clause{Kind: ClauseHasGroup, Group: group, Count: n}
}

// Eval runs the clause for player.
func (c Clause) Eval(s StateView, player PlayerID) bool {
	switch c.Kind {
	case ClauseHas:
		return s.Has(c.Items[0], player)
	case ClauseHasAny:
		return s.HasAny(c.Items, player)
	case ClauseHasAll:
		return s.HasAll(c.Items, player)
	case ClauseHasGroup:
		// A zero threshold is met without asking the state.
		if c.Count <= 0 {
			return true
		}
		return s.HasGroup(c.Group, player, c.Count)
	}
	panic(fmt.Sprintf("rules: unknown clause kind %d", c.Kind))
}

func (c Clause) String() string {
	switch c.Kind {
	case ClauseHas:
		return fmt.Sprintf("has(%q)", c.Items[0])
	case ClauseHasAny:
		return fmt.Sprintf("any(%s)", quoteAll(c.Items))
	case ClauseHasAll:
		return fmt.Sprintf("all(%s)", quoteAll(c.Items))
	case ClauseHasGroup:
		return fmt.Sprintf("group(%q >= %d)", c.Group, c.Count)
	}
	return fmt.Sprintf("ClauseKind(%d)", c.Kind)
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

// Rule is the conjunction of its clauses for one player. A rule with no
// clauses always holds.
type Rule struct {
	Player  PlayerID `json:"player"`
	Clauses []Clause `json:"clauses,omitempty"`
}

// New builds a rule for player from clauses.
func New(player PlayerID, clauses ...Clause) Rule {
	return Rule{Player: player, Clauses: append([]Clause(nil), clauses...)}
}

// And returns a new rule with extra clauses appended. The receiver is not
// modified.
func (r Rule) And(clauses ...Clause) Rule {
	out := make([]Clause, 0, len(r.Clauses)+len(clauses))
	out = append(out, r.Clauses...)
	out = append(out, clauses...)
	return Rule{Player: r.Player, Clauses: out}
}

// Eval reports whether every clause holds in s.
func (r Rule) Eval(s StateView) bool {
	for _, c := range r.Clauses {
		if !c.Eval(s, r.Player) {
			return false
		}
	}
	return true
}

// IsTrivial reports whether the rule always holds.
func (r Rule) IsTrivial() bool {
	return len(r.Clauses) == 0
}

func (r Rule) String() string {
	if r.IsTrivial() {
		return "always"
	}
	parts := make([]string, len(r.Clauses))
	for i, c := range r.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " and ")
}

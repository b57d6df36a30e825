package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockStateView implements StateView for testing
type mockStateView struct {
	held   map[string]bool
	groups map[string]int
	calls  int
}

func (m *mockStateView) Has(item string, player PlayerID) bool {
	m.calls++
	return m.held[item]
}

func (m *mockStateView) HasAny(items []string, player PlayerID) bool {
	m.calls++
	for _, item := range items {
		if m.held[item] {
			return true
		}
	}
	return false
}

func (m *mockStateView) HasAll(items []string, player PlayerID) bool {
	m.calls++
	for _, item := range items {
		if !m.held[item] {
			return false
		}
	}
	return true
}

func (m *mockStateView) HasGroup(group string, player PlayerID, n int) bool {
	m.calls++
	return m.groups[group] >= n
}

func TestRuleEval(t *testing.T) {
	tests := []struct {
		name     string
		rule     Rule
		state    *mockStateView
		expected bool
	}{
		{
			name:     "empty rule always holds",
			rule:     New(1),
			state:    &mockStateView{},
			expected: true,
		},
		{
			name:     "has satisfied",
			rule:     New(1, Has("key")),
			state:    &mockStateView{held: map[string]bool{"key": true}},
			expected: true,
		},
		{
			name:     "has unsatisfied",
			rule:     New(1, Has("key")),
			state:    &mockStateView{held: map[string]bool{"lamp": true}},
			expected: false,
		},
		{
			name:     "any with one held",
			rule:     New(1, HasAny("a", "b", "c")),
			state:    &mockStateView{held: map[string]bool{"c": true}},
			expected: true,
		},
		{
			name:     "all with one missing",
			rule:     New(1, HasAll("a", "b")),
			state:    &mockStateView{held: map[string]bool{"a": true}},
			expected: false,
		},
		{
			name:     "group threshold met",
			rule:     New(1, HasGroup("hearts", 4)),
			state:    &mockStateView{groups: map[string]int{"hearts": 4}},
			expected: true,
		},
		{
			name:     "group threshold missed by one",
			rule:     New(1, HasGroup("hearts", 4)),
			state:    &mockStateView{groups: map[string]int{"hearts": 3}},
			expected: false,
		},
		{
			name:     "conjunction fails on any clause",
			rule:     New(1, HasGroup("hearts", 1), Has("key")),
			state:    &mockStateView{groups: map[string]int{"hearts": 5}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rule.Eval(tt.state))
		})
	}
}

func TestZeroGroupSkipsState(t *testing.T) {
	state := &mockStateView{}
	assert.True(t, New(1, HasGroup("berries", 0)).Eval(state))
	assert.Equal(t, 0, state.calls)
}

func TestRuleEvaluatedLazily(t *testing.T) {
	rule := New(2, Has("key"))
	state := &mockStateView{held: map[string]bool{}}

	assert.False(t, rule.Eval(state))
	state.held["key"] = true
	assert.True(t, rule.Eval(state))
}

func TestAndDoesNotMutate(t *testing.T) {
	base := New(1, Has("a"))
	extended := base.And(Has("b"))

	assert.Len(t, base.Clauses, 1)
	assert.Len(t, extended.Clauses, 2)
	assert.Equal(t, PlayerID(1), extended.Player)
}

func TestString(t *testing.T) {
	assert.Equal(t, "always", New(1).String())
	assert.Equal(t, `has("a") and group("hearts" >= 4)`, New(1, Has("a"), HasGroup("hearts", 4)).String())
	assert.Equal(t, `any("a", "b")`, HasAny("a", "b").String())
	assert.Equal(t, `all("a", "b")`, HasAll("a", "b").String())
}

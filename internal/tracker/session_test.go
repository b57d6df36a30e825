package tracker

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/doshyw/celeste-progression/pkg/catalog"
	"github.com/doshyw/celeste-progression/pkg/options"
	"github.com/doshyw/celeste-progression/pkg/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, opts options.Options) *Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, err := NewSession(cat, opts, 1, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return s
}

func TestNewSession_InvalidGoal(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	opts := options.Defaults()
	opts.GoalLevel = 42
	_, err = NewSession(cat, opts, 1, nil)
	assert.True(t, errors.Is(err, progression.ErrConfiguration))
}

func TestSession_InitialReport(t *testing.T) {
	s := newTestSession(t, options.Defaults())

	r := s.Report()
	assert.Equal(t, []string{"Menu", "Map", "Chapter 1: Forsaken City A-Side"}, r.Reachable)
	assert.Len(t, r.Checkable, 23, "cassette, completion, heart and 20 strawberries")
	assert.Equal(t, 215, r.Locations)
	assert.Empty(t, r.Held)
	assert.False(t, r.Complete)
}

func TestSession_CollectOpensRegions(t *testing.T) {
	s := newTestSession(t, options.Defaults())

	name, err := s.Collect("completion (chapter 1: forsaken city a-side)", 1)
	require.NoError(t, err)
	assert.Equal(t, "Completion (Chapter 1: Forsaken City A-Side)", name)
	assert.Contains(t, s.Report().Reachable, "Chapter 2: Old Site A-Side")

	_, err = s.Drop(name)
	require.NoError(t, err)
	assert.NotContains(t, s.Report().Reachable, "Chapter 2: Old Site A-Side")

	_, err = s.Drop(name)
	assert.Error(t, err, "nothing left to drop")

	_, err = s.Collect("Strawberry", 0)
	assert.Error(t, err)
}

func TestSession_Complete(t *testing.T) {
	s := newTestSession(t, options.Defaults())

	_, err := s.Collect(s.VictoryItem(), 1)
	require.NoError(t, err)
	assert.True(t, s.Report().Complete)
}

func TestSession_Exec(t *testing.T) {
	s := newTestSession(t, options.Defaults())

	res, err := s.Exec("collect strawberry x5")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Collected Strawberry x5")
	assert.Equal(t, 5, s.Report().Held["Strawberry"])

	res, err = s.Exec("- strawberry")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Dropped Strawberry")
	assert.Equal(t, 4, s.Report().Held["Strawberry"])

	res, err = s.Exec("held")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "• Strawberry x4")

	res, err = s.Exec("status")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Goal: Completion (Chapter 7: The Summit A-Side)")
	assert.Contains(t, res.Text, "In logic (23/215)")

	res, err = s.Exec("find old site b")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Completion (Chapter 2: Old Site B-Side)")

	res, err = s.Exec("copy")
	require.NoError(t, err)
	var slot map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Copy), &slot))
	assert.NotEmpty(t, slot["run_id"])

	res, err = s.Exec("quit")
	require.NoError(t, err)
	assert.True(t, res.Quit)

	_, err = s.Exec("jump")
	assert.Error(t, err)

	res, err = s.Exec("")
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestSession_Adjustments(t *testing.T) {
	opts := options.Defaults()
	opts.CassettesRequired = 8
	s := newTestSession(t, opts)

	require.Len(t, s.Adjustments(), 1)
	assert.Equal(t, 7, s.Adjustments()[0].Applied)

	data, err := s.SlotData()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cassettes_required": 7`)
}

func TestSplitCount(t *testing.T) {
	tests := []struct {
		in   string
		item string
		n    int
	}{
		{"strawberry x12", "strawberry", 12},
		{"strawberry X2", "strawberry", 2},
		{"strawberry", "strawberry", 1},
		{"strawberry x0", "strawberry x0", 1},
		{"crystal heart (chapter 1: forsaken city a-side)", "crystal heart (chapter 1: forsaken city a-side)", 1},
	}
	for _, tt := range tests {
		item, n := splitCount(tt.in)
		assert.Equal(t, tt.item, item, tt.in)
		assert.Equal(t, tt.n, n, tt.in)
	}
}

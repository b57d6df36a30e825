package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newValidator(t *testing.T) (*Validator, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	v := &Validator{out: &buf}
	require.NoError(t, v.loadCatalog(""))
	return v, &buf
}

func TestValidateOptionsFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
		wantOut string
	}{
		{
			name:    "valid",
			file:    "player.yaml",
			content: "goal_level: 1\nhearts_required: 4\n",
			wantOut: `victory "Completion (Chapter 9: Core A-Side)"`,
		},
		{
			name:    "clamped",
			file:    "player.yaml",
			content: "berries_required: 175\n",
			wantOut: "berries_required clamped 175 -> 170",
		},
		{
			name:    "json document",
			file:    "player.json",
			content: `{"goal_level": 2}`,
			wantOut: "Farewell",
		},
		{
			name:    "empty document",
			file:    "player.yaml",
			content: "",
			wantOut: "Summit",
		},
		{
			name:    "unknown field",
			file:    "player.yaml",
			content: "goal: 1\n",
			wantErr: "strict unmarshaling",
		},
		{
			name:    "out of range",
			file:    "player.yaml",
			content: "cassettes_required: 9\n",
			wantErr: "cassettes_required",
		},
		{
			name:    "bad extension",
			file:    "player.txt",
			content: "goal_level: 1\n",
			wantErr: "extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, out := newValidator(t)
			err := v.validateOptionsFile(writeFile(t, tt.file, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestSummarizeGoals(t *testing.T) {
	v, out := newValidator(t)
	v.summarizeGoals()

	assert.Empty(t, v.errors)
	assert.Contains(t, out.String(), "goal 0 (the_summit/A): 21 regions")
	assert.Contains(t, out.String(), "goal 6 (core/C)")
}

func TestSummarizeGoals_PartialCatalog(t *testing.T) {
	path := writeFile(t, "small.yaml", "areas:\n  - chapter: forsaken_city\n    sides:\n      a: { cassette: 1, completion: 1, strawberry: 3 }\n")

	var buf bytes.Buffer
	v := &Validator{out: &buf}
	require.NoError(t, v.loadCatalog(path))
	v.summarizeGoals()

	assert.Empty(t, v.errors)
	assert.Contains(t, buf.String(), "goal 0 (the_summit/A): unavailable")
}

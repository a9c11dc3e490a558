package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/platinummonkey/apiman/pkg/docs/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Identical(t *testing.T) {
	dir := t.TempDir()
	old := writeInput(t, dir, "old.yaml", circleAPI)
	updated := writeInput(t, dir, "new.yaml", circleAPI)

	out, _, err := run(t, "", "diff", old, updated)

	require.NoError(t, err)
	assert.Equal(t, "0 breaking, 0 warning, 0 non-breaking\n", out)
}

func TestDiff_BreakingChange(t *testing.T) {
	dir := t.TempDir()
	old := writeInput(t, dir, "old.yaml", circleAPI)
	updated := writeInput(t, dir, "new.yaml", strings.Replace(circleAPI, "type: Num", "type: Int", 1))

	out, _, err := run(t, "", "diff", old, updated)

	require.ErrorIs(t, err, ErrBreakingChanges)
	assert.Contains(t, out, "breaking     Circle.area: Entry 'Circle.area' return type changed from 'Num' to 'Int'")
	assert.Contains(t, out, "1 breaking, 0 warning, 0 non-breaking")
}

func TestDiff_JSON(t *testing.T) {
	dir := t.TempDir()
	old := writeInput(t, dir, "old.yaml", circleAPI)
	updated := writeInput(t, dir, "new.yaml", circleAPI+"max:\n  description: Maximum.\n  return:\n    type: Int\n")

	out, _, err := run(t, "", "diff", "-format", "json", old, updated)
	require.NoError(t, err)

	var result diff.DiffResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Changes, 1)
	assert.Equal(t, diff.EntryAdded, result.Changes[0].Type)
	assert.Equal(t, diff.NonBreaking, result.Changes[0].Severity)
	assert.Equal(t, "max", result.Changes[0].Location)
}

func TestDiff_Usage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no files", []string{"diff"}, "usage: apiman diff"},
		{"one file", []string{"diff", "a.yaml"}, "usage: apiman diff"},
		{"bad format", []string{"diff", "-format", "xml", "a.yaml", "b.yaml"}, "unknown format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

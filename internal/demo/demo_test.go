package demo

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) Env {
	t.Helper()
	return Env{
		Seed:   1,
		DBPath: filepath.Join(t.TempDir(), "demo.db"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAll_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range All() {
		assert.False(t, seen[s.Name], "duplicate scenario %s", s.Name)
		assert.NotEmpty(t, s.Summary, s.Name)
		assert.NotNil(t, s.Run, s.Name)
		seen[s.Name] = true
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("teleport")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "teleport"`)
}

func TestScenarios_AllSucceed(t *testing.T) {
	// Every scenario runs cleanly and produces at least one step; the
	// error path is reserved for genuine failures, not the expected
	// refusals the scenarios demonstrate.
	env := testEnv(t)
	for _, s := range All() {
		steps, err := s.Run(context.Background(), env)
		require.NoError(t, err, s.Name)
		assert.NotEmpty(t, steps, s.Name)
	}
}

func TestRunCopy_Deterministic(t *testing.T) {
	// Same seed, same keystrokes: the copy scenario reports identical
	// steps across runs.
	env := testEnv(t)
	a, err := runCopy(context.Background(), env)
	require.NoError(t, err)
	b, err := runCopy(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunShape_RejectsSquareBind(t *testing.T) {
	steps, err := runShape(context.Background(), testEnv(t))
	require.NoError(t, err)

	var found bool
	for _, s := range steps {
		if s.Label == "bind square as rectangle" {
			found = true
			assert.Contains(t, s.Detail, "does not satisfy")
		}
	}
	assert.True(t, found)
}

func TestRunSettings_UsesDBPath(t *testing.T) {
	t.Setenv("CAPKIT_SETTING_THEME", "dark")
	env := testEnv(t)

	steps, err := runSettings(context.Background(), env)
	require.NoError(t, err)
	require.NotEmpty(t, steps)
	assert.Contains(t, steps[0].Detail, "synced 1 keys")
}

func TestRun_RendersAllScenarios(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), &buf, nil, testEnv(t)))

	out := buf.String()
	for _, s := range All() {
		assert.Contains(t, out, s.Name)
	}
}

func TestRun_SelectedScenario(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), &buf, []string{"power"}, testEnv(t)))

	out := buf.String()
	assert.Contains(t, out, "power")
	assert.False(t, strings.Contains(out, "checkout via card"))
}

func TestRun_UnknownScenario(t *testing.T) {
	var buf bytes.Buffer
	err := Run(context.Background(), &buf, []string{"nope"}, testEnv(t))
	require.Error(t, err)
}

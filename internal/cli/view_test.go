package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/gridscope/internal/config"
)

func writeFixtureCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.csv")
	data := "name,budget\napple,300\nbanana,100\ncherry,200\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// TestViewCmd_NoInteractive verifies the plain rendering path end to end:
// load, build, print.
func TestViewCmd_NoInteractive(t *testing.T) {
	path := writeFixtureCSV(t)

	out, err := execute(t, "view", path, "--no-interactive")
	require.NoError(t, err)

	assert.Contains(t, out, "name")
	assert.Contains(t, out, "banana")
	assert.Contains(t, out, "300")
}

// TestViewCmd_MissingFile verifies load failures surface as command errors.
func TestViewCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "view", filepath.Join(t.TempDir(), "absent.csv"), "--no-interactive")
	assert.Error(t, err)
}

// TestViewCmd_RequiresArgs verifies at least one file is required.
func TestViewCmd_RequiresArgs(t *testing.T) {
	_, err := execute(t, "view")
	assert.Error(t, err)
}

// TestApplyTableFlags verifies flag overlays on config defaults.
func TestApplyTableFlags(t *testing.T) {
	cfg := config.Default().Table

	applyTableFlags(&cfg, viewOptions{height: 0, rowHeight: 0, overscan: -1})
	assert.Equal(t, config.Default().Table, cfg, "zero values keep defaults")

	applyTableFlags(&cfg, viewOptions{height: 400, rowHeight: 40, overscan: 2})
	assert.InDelta(t, 400.0, cfg.Height, 1e-9)
	assert.InDelta(t, 40.0, cfg.RowHeight, 1e-9)
	assert.Equal(t, 2, cfg.Overscan)
}

// TestViewTitle verifies the title derivation from file paths.
func TestViewTitle(t *testing.T) {
	assert.Equal(t, "a.csv", viewTitle([]string{"/tmp/a.csv"}))
	assert.Equal(t, "a.csv + b.json", viewTitle([]string{"x/a.csv", "y/b.json"}))
}

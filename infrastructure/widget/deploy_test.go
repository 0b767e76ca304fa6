package widget_test

import (
	"os"
	"path/filepath"
	"testing"

	"rating-dashboard/infrastructure/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy_CopiesScriptAndMap(t *testing.T) {
	dist := t.TempDir()
	public := filepath.Join(t.TempDir(), "public")
	require.NoError(t, os.WriteFile(filepath.Join(dist, widget.ScriptName), []byte("js"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, widget.SourceMapName), []byte("map"), 0o644))

	report, err := widget.Deploy(dist, public)
	require.NoError(t, err)
	assert.True(t, report.OK())
	require.Len(t, report.Files, 2)
	assert.True(t, report.Files[0].Copied)
	assert.True(t, report.Files[1].Copied)

	got, err := os.ReadFile(filepath.Join(public, widget.ScriptName))
	require.NoError(t, err)
	assert.Equal(t, "js", string(got))
}

func TestDeploy_MapIsOptional(t *testing.T) {
	dist := t.TempDir()
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dist, widget.ScriptName), []byte("js"), 0o644))

	report, err := widget.Deploy(dist, public)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.True(t, report.Files[1].Skipped)
	assert.NoFileExists(t, filepath.Join(public, widget.SourceMapName))
}

func TestDeploy_MissingScriptIsReported(t *testing.T) {
	report, err := widget.Deploy(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.False(t, report.Files[0].Copied)
	assert.NotEmpty(t, report.Files[0].Error)
}

func TestWriteScript(t *testing.T) {
	public := filepath.Join(t.TempDir(), "nested")
	result, err := widget.WriteScript(public, []byte("bundled"))
	require.NoError(t, err)
	assert.True(t, result.Copied)

	got, err := os.ReadFile(filepath.Join(public, widget.ScriptName))
	require.NoError(t, err)
	assert.Equal(t, "bundled", string(got))
}

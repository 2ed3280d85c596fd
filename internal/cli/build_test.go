package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_WritesPage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "index.html")

	stdout, _, err := execute(t, "build", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Built "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(data)
	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "<style>*{margin:0;")
	assert.Contains(t, page, `<script type="module">`)
	assert.True(t, strings.HasSuffix(page, "</footer></main>"))
}

func TestBuild_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "page.html")

	stdout, _, err := execute(t, "build", "-o", out, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   BuildResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, out, resp.Data.Output)
	assert.Positive(t, resp.Data.Bytes)
}

func TestBuild_WithConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "plain.cue")
	require.NoError(t, os.WriteFile(cfg, []byte(`style: body: color: "red"`), 0o644))
	out := filepath.Join(dir, "index.html")

	_, _, err := execute(t, "build", "--config", cfg, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<style>body{color:red}</style>")
}

func TestBuild_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(cfg, []byte(`widget: period: "soon"`), 0o644))
	out := filepath.Join(dir, "index.html")

	_, stderr, err := execute(t, "build", "--config", cfg, "-o", out)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E101]")
	assert.NoFileExists(t, out)
}

func TestBuild_UnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "index.html")

	_, stderr, err := execute(t, "build", "-o", out)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E007]")
}

func TestBuild_UnusableWidget(t *testing.T) {
	tests := map[string]string{
		"unknown zone":    `widget: zone: "Mars/Olympus_Mons"`,
		"unknown weekday": `widget: target: "Funday"`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := filepath.Join(dir, "widget.cue")
			require.NoError(t, os.WriteFile(cfg, []byte(src), 0o644))
			out := filepath.Join(dir, "index.html")

			_, stderr, err := execute(t, "build", "--config", cfg, "-o", out)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, "Error [E103]")
			assert.NoFileExists(t, out)
		})
	}
}

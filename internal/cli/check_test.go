package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Text(t *testing.T) {
	stdout, _, err := execute(t, "check", "--at", "2026-10-16T09:00:00-07:00")
	require.NoError(t, err)
	assert.Equal(t, "Yes\nFriday, October 16, 2026\n9:00:00 AM PDT\n", stdout)
}

func TestCheck_NotFriday(t *testing.T) {
	// 06:59 UTC on Friday is still Thursday in California.
	stdout, _, err := execute(t, "check", "--at", "2026-10-16T06:59:00Z")
	require.NoError(t, err)
	assert.Equal(t, "No\nThursday, October 15, 2026\n11:59:00 PM PDT\n", stdout)
}

func TestCheck_JSON(t *testing.T) {
	stdout, _, err := execute(t, "check", "--at", "2026-10-16T09:00:00-07:00", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, true, resp.Data["match"])
	assert.Equal(t, "Yes", resp.Data["answer"])
	assert.Equal(t, "Friday, October 16, 2026", resp.Data["date"])
	assert.Equal(t, "9:00:00 AM PDT", resp.Data["time"])
}

func TestCheck_Config(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "berlin.cue")
	require.NoError(t, os.WriteFile(cfg, []byte(`
widget: {
	zone:   "Europe/Berlin"
	locale: "de"
	yes: text: "Ja"
}
`), 0o644))

	stdout, _, err := execute(t, "check", "--config", cfg, "--at", "2026-10-16T18:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "Ja\nFreitag, 16. Oktober 2026\n18:00:00 CEST\n", stdout)
}

func TestCheck_BadInstant(t *testing.T) {
	_, stderr, err := execute(t, "check", "--at", "friday")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "parse --at")
}

func TestCheck_BadZone(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "nowhere.cue")
	require.NoError(t, os.WriteFile(cfg, []byte(`widget: zone: "Nowhere/Special"`), 0o644))

	_, stderr, err := execute(t, "check", "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E103]")
}

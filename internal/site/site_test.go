package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/friday/internal/calendar"
	"github.com/roach88/friday/internal/widget"
)

const stockCSS = `*{margin:0;padding:0;font-family:sans-serif;font-variant-numeric:tabular-nums}` +
	`main{display:flex;flex-flow:column;align-items:center;justify-content:center;inset:0;position:absolute}` +
	`h1{font-size:10rem;text-transform:uppercase}` +
	`h2{font-size:2rem;font-weight:normal}` +
	`span{font-size:1rem}` +
	`img{height:240px;width:auto}` +
	`footer{position:absolute;inset:0;top:auto;text-align:center;padding-bottom:.5rem}` +
	`a{text-decoration:none}` +
	`a:hover{text-decoration:underline}`

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, stockCSS, cfg.Style.CSS())

	w := cfg.Widget
	assert.Equal(t, "US/Pacific", w.Zone)
	assert.Equal(t, "", w.Locale)
	assert.Equal(t, "en-US", w.MatchLocale)
	assert.Equal(t, "Friday", w.Target)
	assert.Equal(t, 3, w.PrefixLen)
	assert.Equal(t, time.Second, w.Period)
	assert.Equal(t, "main", w.Container)
	assert.Equal(t, 480, w.ImageWidth)
	assert.Equal(t, 480, w.ImageHeight)
	assert.Equal(t, "Yes", w.Yes.Text)
	assert.Equal(t, "./yes.jpg", w.Yes.Src)
	assert.Equal(t, "A cop and two nurses are looking at you and saying: Today is Friday in California.", w.Yes.Alt)
	assert.Equal(t, "No", w.No.Text)
	assert.Equal(t, "./no.jpg", w.No.Src)

	assert.Equal(t, Footer{Text: "Kudos to", Href: "https://twitter.com/fridaypacific", Label: "@fridaypacific"}, cfg.Footer)
}

func TestLoadConfig_EmptyPathIsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, stockCSS, cfg.Style.CSS())
}

func TestParse_WidgetOverrideKeepsDefaultStyle(t *testing.T) {
	cfg, err := Parse("berlin.cue", []byte(`
widget: {
	zone:   "Europe/Berlin"
	locale: "de"
	period: "5s"
	yes: text: "Ja"
}
`))
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Widget.Zone)
	assert.Equal(t, "de", cfg.Widget.Locale)
	assert.Equal(t, 5*time.Second, cfg.Widget.Period)
	assert.Equal(t, "Ja", cfg.Widget.Yes.Text)
	assert.Equal(t, "./yes.jpg", cfg.Widget.Yes.Src)
	assert.Equal(t, stockCSS, cfg.Style.CSS())
}

func TestParse_StyleOverride(t *testing.T) {
	cfg, err := Parse("plain.cue", []byte(`style: { p: { color: "red", lineHeight: 1.5 }, div: {} }`))
	require.NoError(t, err)
	assert.Equal(t, "p{color:red;line-height:1.5}", cfg.Style.CSS())
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":     `extra: 1`,
		"unknown widget":    `widget: colour: "red"`,
		"bad period":        `widget: period: "soon"`,
		"negative period":   `widget: period: "-1s"`,
		"zero image":        `widget: image: width: 0`,
		"kebab property":    `style: p: "font-size": "1rem"`,
		"non-scalar value":  `style: p: color: ["red"]`,
		"syntax":            `widget: {`,
		"wrong prefix type": `widget: prefixLen: "three"`,
		"zero prefix":       `widget: prefixLen: 0`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(name+".cue", []byte(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWidgetSettings_Resolve(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	wc, err := cfg.Widget.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "US/Pacific", wc.Zone.String())
	assert.Equal(t, time.Second, wc.Period)
	assert.Equal(t, "Friday", wc.Target)

	cfg.Widget.Zone = "Mars/Olympus_Mons"
	_, err = cfg.Widget.Resolve()
	assert.ErrorIs(t, err, calendar.ErrZoneUnavailable)
}

func TestBuild_Default(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	out, err := Build(cfg)
	require.NoError(t, err)
	html := string(out)

	prefix := `<!doctype html><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<style>` + stockCSS + `</style><script type="module">`
	suffix := `</script><main><footer>Kudos to <a href="https://twitter.com/fridaypacific">@fridaypacific</a></footer></main>`
	assert.True(t, strings.HasPrefix(html, prefix), html)
	assert.True(t, strings.HasSuffix(html, suffix), html)

	script := strings.TrimSuffix(strings.TrimPrefix(html, prefix), suffix)
	assert.Contains(t, script, "Intl.DateTimeFormat")
	assert.Contains(t, script, "US/Pacific")
	assert.Contains(t, script, "./yes.jpg")
	assert.NotContains(t, script, "\n\t")
}

func TestRender_ScriptCompileError(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	_, err = Render(cfg, []byte("const = ;"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScriptCompile)
}

func TestRender_UnsetPrefixLenUsesDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Widget.PrefixLen = 0

	out, err := Build(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "prefixLen:3")
	assert.NotContains(t, string(out), "prefixLen:0")
}

func TestBuild_RejectsUnusableWidget(t *testing.T) {
	tests := map[string]struct {
		src  string
		want error
	}{
		"unknown zone":    {`widget: zone: "Mars/Olympus_Mons"`, calendar.ErrZoneUnavailable},
		"unknown weekday": {`widget: target: "Funday"`, widget.ErrUnknownWeekday},
		"ambiguous":       {`widget: {target: "Tuesday", prefixLen: 1}`, widget.ErrAmbiguousWeekday},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse(name+".cue", []byte(tt.src))
			require.NoError(t, err)

			_, err = Build(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrWidget)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

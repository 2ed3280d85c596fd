package site

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"

	"github.com/roach88/friday/internal/widget"
)

//go:embed assets/widget.js
var widgetScript []byte

// ErrScriptCompile means the browser script could not be minified.
var ErrScriptCompile = errors.New("script compile failed")

// DefaultOutput is where Build output goes unless told otherwise.
const DefaultOutput = "index.html"

const scriptType = "text/javascript"

var page = template.Must(template.New("page").Parse(`<!doctype html>` +
	`<meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1">` +
	`<style>{{.CSS}}</style>` +
	`<script type="module">{{.Script}}</script>` +
	`<main><footer>{{.Footer.Text}} <a href="{{.Footer.Href}}">{{.Footer.Label}}</a></footer></main>`))

type pageData struct {
	CSS    template.CSS
	Script template.JS
	Footer Footer
}

// scriptConfig is what the browser script reads as its global config.
type scriptConfig struct {
	Zone        string         `json:"zone"`
	Locale      string         `json:"locale"`
	MatchLocale string         `json:"matchLocale"`
	Target      string         `json:"target"`
	PrefixLen   int            `json:"prefixLen"`
	Period      int64          `json:"period"` // milliseconds
	Container   string         `json:"container"`
	Image       scriptImage    `json:"image"`
	Yes         widget.Variant `json:"yes"`
	No          widget.Variant `json:"no"`
}

type scriptImage struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Build renders the page with the embedded browser script.
func Build(cfg *Config) ([]byte, error) {
	return Render(cfg, widgetScript)
}

// Render renders the page around script. script may read the global
// config constant that Render prepends. Widget settings that fail Check
// are rejected before anything is rendered.
func Render(cfg *Config, script []byte) ([]byte, error) {
	if err := cfg.Widget.Check(); err != nil {
		return nil, err
	}

	compiled, err := compileScript(cfg.Widget, script)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, pageData{
		CSS:    template.CSS(cfg.Style.CSS()),
		Script: template.JS(compiled),
		Footer: cfg.Footer,
	})
	if err != nil {
		return nil, fmt.Errorf("site: render: %w", err)
	}
	return buf.Bytes(), nil
}

func compileScript(w WidgetSettings, script []byte) (string, error) {
	prefixLen := w.PrefixLen
	if prefixLen <= 0 {
		prefixLen = widget.DefaultPrefixLen
	}
	conf, err := json.Marshal(scriptConfig{
		Zone:        w.Zone,
		Locale:      w.Locale,
		MatchLocale: w.MatchLocale,
		Target:      w.Target,
		PrefixLen:   prefixLen,
		Period:      w.Period.Milliseconds(),
		Container:   w.Container,
		Image:       scriptImage{Width: w.ImageWidth, Height: w.ImageHeight},
		Yes:         w.Yes,
		No:          w.No,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScriptCompile, err)
	}

	var src bytes.Buffer
	src.WriteString("const config = ")
	src.Write(conf)
	src.WriteString(";\n")
	src.Write(script)

	m := minify.New()
	m.AddFunc(scriptType, js.Minify)

	var out bytes.Buffer
	if err := m.Minify(scriptType, &out, &src); err != nil {
		return "", fmt.Errorf("%w: %v", ErrScriptCompile, err)
	}
	return out.String(), nil
}

package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/friday/internal/calendar"
	"github.com/roach88/friday/internal/style"
	"github.com/roach88/friday/internal/widget"
)

var (
	//go:embed schema.cue
	schemaSource string

	//go:embed site.cue
	defaultSource []byte
)

// ErrInvalidConfig means a site description failed to parse or validate.
var ErrInvalidConfig = errors.New("invalid site config")

// ErrWidget means the widget settings parse but no widget can be built
// from them.
var ErrWidget = errors.New("unusable widget settings")

// ConfigError locates a config problem. It matches ErrInvalidConfig.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// WidgetSettings is the widget block of a site description.
type WidgetSettings struct {
	Zone        string
	Locale      string
	MatchLocale string
	Target      string
	PrefixLen   int
	Period      time.Duration
	Container   string
	ImageWidth  int
	ImageHeight int
	Yes         widget.Variant
	No          widget.Variant
}

// Resolve loads the zone and returns a widget.Config.
func (s WidgetSettings) Resolve() (widget.Config, error) {
	zone, err := calendar.LoadZone(s.Zone)
	if err != nil {
		return widget.Config{}, err
	}
	return widget.Config{
		Zone:        zone,
		Locale:      s.Locale,
		MatchLocale: s.MatchLocale,
		Target:      s.Target,
		PrefixLen:   s.PrefixLen,
		Yes:         s.Yes,
		No:          s.No,
		ImageWidth:  s.ImageWidth,
		ImageHeight: s.ImageHeight,
		Container:   s.Container,
		Period:      s.Period,
	}, nil
}

// Check builds the widget's samplers once so a zone, locale or target that
// the widget would reject fails here. Errors match ErrWidget.
func (s WidgetSettings) Check() error {
	wc, err := s.Resolve()
	if err == nil {
		_, err = widget.Evaluate(wc, time.Now())
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWidget, err)
	}
	return nil
}

// Footer is the credit line under the widget.
type Footer struct {
	Text  string
	Href  string
	Label string
}

// Config is a validated site description.
type Config struct {
	Widget WidgetSettings
	Style  style.Sheet
	Footer Footer
}

// Default returns the embedded site description.
func Default() (*Config, error) {
	return Parse("site.cue", defaultSource)
}

// LoadConfig reads a site description from path, or the embedded default
// when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("site: read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates src against the site schema. A description without a
// style block gets the embedded default style.
func Parse(name string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(style.Schema+schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("site: schema: %w", err)
	}

	user := ctx.CompileBytes(src, cue.Filename(name))
	if err := user.Err(); err != nil {
		return nil, configError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Site")).Unify(user)
	stylePath := cue.ParsePath("style")
	if !user.LookupPath(stylePath).Exists() {
		def := ctx.CompileBytes(defaultSource, cue.Filename("site.cue"))
		v = v.FillPath(stylePath, def.LookupPath(stylePath))
	}
	if err := v.Validate(); err != nil {
		return nil, configError(err)
	}

	return decode(v)
}

func decode(v cue.Value) (*Config, error) {
	f := &fields{v: v}
	cfg := &Config{
		Widget: WidgetSettings{
			Zone:        f.str("widget.zone"),
			Locale:      f.str("widget.locale"),
			MatchLocale: f.str("widget.matchLocale"),
			Target:      f.str("widget.target"),
			PrefixLen:   f.integer("widget.prefixLen"),
			Period:      f.duration("widget.period"),
			Container:   f.str("widget.container"),
			ImageWidth:  f.integer("widget.image.width"),
			ImageHeight: f.integer("widget.image.height"),
			Yes:         f.variant("widget.yes"),
			No:          f.variant("widget.no"),
		},
		Footer: Footer{
			Text:  f.str("footer.text"),
			Href:  f.str("footer.href"),
			Label: f.str("footer.label"),
		},
	}
	if f.err != nil {
		return nil, f.err
	}

	sheet, err := style.FromValue(v.LookupPath(cue.ParsePath("style")))
	if err != nil {
		return nil, &ConfigError{Field: "style", Message: err.Error()}
	}
	cfg.Style = sheet
	return cfg, nil
}

// fields extracts concrete values, keeping the first failure.
type fields struct {
	v   cue.Value
	err error
}

func (f *fields) lookup(path string) cue.Value {
	val := f.v.LookupPath(cue.ParsePath(path))
	if d, ok := val.Default(); ok {
		val = d
	}
	return val
}

func (f *fields) fail(path string, err error) {
	if f.err == nil {
		f.err = &ConfigError{Field: path, Message: err.Error(), Pos: f.v.LookupPath(cue.ParsePath(path)).Pos()}
	}
}

func (f *fields) str(path string) string {
	s, err := f.lookup(path).String()
	if err != nil {
		f.fail(path, err)
	}
	return s
}

func (f *fields) integer(path string) int {
	n, err := f.lookup(path).Int64()
	if err != nil {
		f.fail(path, err)
	}
	return int(n)
}

func (f *fields) duration(path string) time.Duration {
	s := f.str(path)
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		f.fail(path, err)
		return 0
	}
	if d <= 0 {
		f.fail(path, fmt.Errorf("must be positive, got %s", s))
	}
	return d
}

func (f *fields) variant(path string) widget.Variant {
	return widget.Variant{
		Text: f.str(path + ".text"),
		Src:  f.str(path + ".src"),
		Alt:  f.str(path + ".alt"),
	}
}

// configError keeps the first CUE error and its position.
func configError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Field: "cue", Message: err.Error()}
	}
	first := errs[0]
	ce := &ConfigError{Field: "cue", Message: first.Error()}
	if pos := cueerrors.Positions(first); len(pos) > 0 {
		ce.Pos = pos[0]
	}
	return ce
}

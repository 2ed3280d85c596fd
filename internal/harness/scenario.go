package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/friday/internal/site"
	"github.com/roach88/friday/internal/widget"
)

// Scenario is one replayable widget run.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Widget overrides the default widget settings.
	Widget WidgetOverrides `yaml:"widget,omitempty"`

	// Ticks are the instants fed to the widget, in order.
	Ticks []string `yaml:"ticks"`

	// Assertions validate the recorded mutations and final snapshot.
	Assertions []Assertion `yaml:"assertions"`
}

// WidgetOverrides replaces the non-empty fields of the default settings.
type WidgetOverrides struct {
	Zone        string       `yaml:"zone,omitempty"`
	Locale      string       `yaml:"locale,omitempty"`
	MatchLocale string       `yaml:"match_locale,omitempty"`
	Target      string       `yaml:"target,omitempty"`
	PrefixLen   int          `yaml:"prefix_len,omitempty"`
	Container   string       `yaml:"container,omitempty"`
	Yes         *VariantSpec `yaml:"yes,omitempty"`
	No          *VariantSpec `yaml:"no,omitempty"`
}

// VariantSpec overrides one answer's text and image.
type VariantSpec struct {
	Text string `yaml:"text,omitempty"`
	Src  string `yaml:"src,omitempty"`
	Alt  string `yaml:"alt,omitempty"`
}

// Assertion validates the trace or the final snapshot.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Node is the node name (mutation_count, mutation_sequence, final_value).
	Node string `yaml:"node,omitempty"`

	// Count is the expected number of writes (mutation_count).
	Count int `yaml:"count,omitempty"`

	// Values are the expected writes in order (mutation_sequence).
	Values []string `yaml:"values,omitempty"`

	// Value is the expected last write (final_value).
	Value string `yaml:"value,omitempty"`

	// Match, Date and Time are compared against the snapshot when set.
	Match *bool  `yaml:"match,omitempty"`
	Date  string `yaml:"date,omitempty"`
	Time  string `yaml:"time,omitempty"`
}

// Assertion type constants.
const (
	AssertMutationCount    = "mutation_count"
	AssertMutationSequence = "mutation_sequence"
	AssertFinalValue       = "final_value"
	AssertSnapshot         = "snapshot"
)

// Node names.
const (
	NodeImage     = "image"
	NodePrimary   = "primary"
	NodeSecondary = "secondary"
	NodeTertiary  = "tertiary"
)

func validNode(name string) bool {
	switch name {
	case NodeImage, NodePrimary, NodeSecondary, NodeTertiary:
		return true
	}
	return false
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// Times resolves the tick list to instants.
func (s *Scenario) Times() ([]time.Time, error) {
	times := make([]time.Time, 0, len(s.Ticks))
	for i, raw := range s.Ticks {
		if strings.HasPrefix(raw, "+") {
			if i == 0 {
				return nil, fmt.Errorf("ticks[0]: first tick must be an instant, got offset %q", raw)
			}
			d, err := time.ParseDuration(raw[1:])
			if err != nil {
				return nil, fmt.Errorf("ticks[%d]: %w", i, err)
			}
			times = append(times, times[i-1].Add(d))
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("ticks[%d]: %w", i, err)
		}
		times = append(times, t)
	}
	return times, nil
}

// WidgetConfig applies the overrides to the embedded site defaults.
func (s *Scenario) WidgetConfig() (widget.Config, error) {
	def, err := site.Default()
	if err != nil {
		return widget.Config{}, err
	}

	w := def.Widget
	o := s.Widget
	w.Zone = orDefault(o.Zone, w.Zone)
	w.Locale = orDefault(o.Locale, w.Locale)
	w.MatchLocale = orDefault(o.MatchLocale, w.MatchLocale)
	w.Target = orDefault(o.Target, w.Target)
	w.Container = orDefault(o.Container, w.Container)
	if o.PrefixLen > 0 {
		w.PrefixLen = o.PrefixLen
	}
	w.Yes = overrideVariant(w.Yes, o.Yes)
	w.No = overrideVariant(w.No, o.No)

	return w.Resolve()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func overrideVariant(v widget.Variant, o *VariantSpec) widget.Variant {
	if o == nil {
		return v
	}
	return widget.Variant{
		Text: orDefault(o.Text, v.Text),
		Src:  orDefault(o.Src, v.Src),
		Alt:  orDefault(o.Alt, v.Alt),
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Ticks) == 0 {
		return fmt.Errorf("ticks list is required and must be non-empty")
	}
	if _, err := s.Times(); err != nil {
		return err
	}
	if s.Widget.PrefixLen < 0 {
		return fmt.Errorf("widget.prefix_len must be non-negative")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertMutationCount, AssertMutationSequence, AssertFinalValue:
		if !validNode(a.Node) {
			return fmt.Errorf("assertions[%d]: unknown node %q for %s", index, a.Node, a.Type)
		}
	case AssertSnapshot:
		if a.Match == nil && a.Date == "" && a.Time == "" {
			return fmt.Errorf("assertions[%d]: snapshot needs at least one of match, date, time", index)
		}
		return nil
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	switch a.Type {
	case AssertMutationCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for mutation_count", index)
		}
	case AssertMutationSequence:
		if len(a.Values) == 0 {
			return fmt.Errorf("assertions[%d]: values list is required for mutation_sequence", index)
		}
	case AssertFinalValue:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for final_value", index)
		}
	}
	return nil
}

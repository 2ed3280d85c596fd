// Package style renders a declarative selector → properties description to
// a compact stylesheet.
//
// Property names are written in camelCase and emitted hyphenated
// (fontFamily → font-family). Rule and property order is preserved.
package style

import (
	"strings"
)

// Property is one declaration.
type Property struct {
	Name  string `json:"name"`  // camelCase, as written
	Value string `json:"value"` // rendered verbatim
}

// Rule is a selector and its declarations.
type Rule struct {
	Selector   string     `json:"selector"`
	Properties []Property `json:"properties"`
}

// Sheet is an ordered list of rules.
type Sheet []Rule

// P is shorthand for a Property literal.
func P(name, value string) Property {
	return Property{Name: name, Value: value}
}

// Add appends a rule.
func (s Sheet) Add(selector string, props ...Property) Sheet {
	return append(s, Rule{Selector: selector, Properties: props})
}

// Hyphenate rewrites every ASCII capital as '-' plus its lower case.
func Hyphenate(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(c + ('a' - 'A'))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// CSS renders the rule, or "" if it has no declarations.
func (r Rule) CSS() string {
	if len(r.Properties) == 0 {
		return ""
	}
	decls := make([]string, len(r.Properties))
	for i, p := range r.Properties {
		decls[i] = Hyphenate(p.Name) + ":" + p.Value
	}
	return r.Selector + "{" + strings.Join(decls, ";") + "}"
}

// CSS renders every rule in order with no separators.
func (s Sheet) CSS() string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(r.CSS())
	}
	return b.String()
}

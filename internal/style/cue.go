package style

import (
	"fmt"
	"strconv"

	"cuelang.org/go/cue"
)

// Schema constrains a style description. Property names must be camelCase
// identifiers and values strings or numbers.
const Schema = `
#Value: string | number
#Declarations: {[=~"^[a-z][a-zA-Z]*$"]: #Value}
#Style: {[string]: #Declarations}
`

// FromValue converts a CUE struct of selector → declarations into a Sheet,
// keeping declaration order.
func FromValue(v cue.Value) (Sheet, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	rules, err := v.Fields()
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}

	var sheet Sheet
	for rules.Next() {
		selector := rules.Selector().Unquoted()
		decls, err := rules.Value().Fields()
		if err != nil {
			return nil, fmt.Errorf("style: %s: %w", selector, err)
		}

		rule := Rule{Selector: selector}
		for decls.Next() {
			name := decls.Selector().Unquoted()
			val, err := scalar(decls.Value())
			if err != nil {
				return nil, fmt.Errorf("style: %s.%s: %w", selector, name, err)
			}
			rule.Properties = append(rule.Properties, P(name, val))
		}
		sheet = append(sheet, rule)
	}
	return sheet, nil
}

// scalar renders a concrete string or number.
func scalar(v cue.Value) (string, error) {
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.Kind() {
	case cue.StringKind:
		return v.String()
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("value must be a concrete string or number, got %v", v.IncompleteKind())
	}
}

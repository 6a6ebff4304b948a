package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single "property: value" pair. Declarations are kept in
// source order since they are later expanded into inline style attributes.
type Declaration struct {
	Property string
	Value    string
}

// String returns declaration in the form used by inline style attributes.
func (d Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

// Selector represents a parsed simple CSS selector.
type Selector struct {
	Raw     string // Original selector string
	Element string // Element name (e.g., "section") or empty for class-only
	Class   string // Class name without dot (e.g., "p-normal") or empty
}

// IsSimple returns true if this is a simple selector (element, class, or element.class).
func (s Selector) IsSimple() bool {
	return s.Element != "" || s.Class != ""
}

// IsClass returns true for class-only selectors like ".p-normal".
func (s Selector) IsClass() bool {
	return s.Element == "" && s.Class != ""
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// Property returns the last value declared for the property.
func (r Rule) Property(name string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == name {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule   // All plain rules in source order
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, rule := range s.Rules {
		if rule.Selector.Raw == selector {
			matches = append(matches, rule)
		}
	}
	return matches
}

// ClassDeclarations merges declarations of all class-only rules per class
// name. When the same property is declared again the later value replaces
// the earlier one in place, so the first declaration position is kept.
func (s *Stylesheet) ClassDeclarations() map[string][]Declaration {
	res := make(map[string][]Declaration)
	for _, rule := range s.Rules {
		if !rule.Selector.IsClass() {
			continue
		}
		decls := res[rule.Selector.Class]
	next:
		for _, d := range rule.Declarations {
			for i := range decls {
				if decls[i].Property == d.Property {
					decls[i].Value = d.Value
					continue next
				}
			}
			decls = append(decls, d)
		}
		res[rule.Selector.Class] = decls
	}
	return res
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the stylesheet as CSS text.
func (s *Stylesheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	total, err := fmt.Fprintf(w, "%s {\n", rule.Selector.Raw)
	if err != nil {
		return total, err
	}
	for _, d := range rule.Declarations {
		n, err := fmt.Fprintf(w, "  %s\n", d.String())
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err := fmt.Fprint(w, "}\n")
	return total + n, err
}

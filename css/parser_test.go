package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"htmlcoder/css"
)

func TestParser_ElementSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`section { margin: 0; }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	rule := sheet.Rules[0]
	if rule.Selector.Element != "section" || rule.Selector.Class != "" {
		t.Errorf("unexpected selector %+v", rule.Selector)
	}
	if rule.Selector.IsClass() {
		t.Error("element selector reported as class selector")
	}
	if v, ok := rule.Property("margin"); !ok || v != "0" {
		t.Errorf("margin = %q, %v", v, ok)
	}
}

func TestParser_ClassSelector(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.p-normal { text-indent: 2em; line-height:1.75em }`))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}

	rule := sheet.Rules[0]
	if !rule.Selector.IsClass() || rule.Selector.Class != "p-normal" {
		t.Errorf("unexpected selector %+v", rule.Selector)
	}
	want := []css.Declaration{
		{Property: "text-indent", Value: "2em"},
		{Property: "line-height", Value: "1.75em"},
	}
	if len(rule.Declarations) != len(want) {
		t.Fatalf("got %d declarations, want %d", len(rule.Declarations), len(want))
	}
	for i := range want {
		if rule.Declarations[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, rule.Declarations[i], want[i])
		}
	}
}

func TestParser_GroupedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`.p-h1, .p-count { font-weight: bold; }`))
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Selector.Class != "p-h1" || sheet.Rules[1].Selector.Class != "p-count" {
		t.Errorf("unexpected selectors %q, %q", sheet.Rules[0].Selector.Raw, sheet.Rules[1].Selector.Raw)
	}
}

func TestParser_UnsupportedSkipped(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		warning string
	}{
		{name: "media", input: `@media print { .p-br { display: none; } }`, warning: "unsupported @-rule"},
		{name: "import", input: `@import url("x.css");`, warning: "unsupported @-rule"},
		{name: "descendant", input: `.div-body .p-br { margin: 0; }`, warning: "unsupported descendant selector"},
		{name: "child", input: `.div-body > .p-br { margin: 0; }`, warning: "unsupported combinator selector"},
		{name: "pseudo", input: `.p-br:first-child { margin: 0; }`, warning: "unsupported pseudo selector"},
		{name: "attribute", input: `img[src] { margin: 0; }`, warning: "unsupported attribute selector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := css.NewParser(zap.NewNop()).Parse([]byte(tt.input + "\n.hr { border: 0; }"))

			if len(sheet.Rules) != 1 || sheet.Rules[0].Selector.Class != "hr" {
				t.Errorf("expected only .hr rule to survive, got %+v", sheet.Rules)
			}
			found := false
			for _, w := range sheet.Warnings {
				if strings.HasPrefix(w, tt.warning) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings %v do not contain %q", sheet.Warnings, tt.warning)
			}
		})
	}
}

func TestParser_ValueWhitespaceCollapsed(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte(".p-hr { border-top :  1px   solid  #ccc ; }"))
	if len(sheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(sheet.Rules))
	}
	if v, _ := sheet.Rules[0].Property("border-top"); v != "1px solid #ccc" {
		t.Errorf("border-top = %q", v)
	}
}

func TestParser_Comments(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte("/* head */ .p-br { /* inner */ margin: 0; }"))
	if len(sheet.Rules) != 1 || len(sheet.Rules[0].Declarations) != 1 {
		t.Fatalf("unexpected rules %+v", sheet.Rules)
	}
}

func TestStylesheet_ClassDeclarations(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte(`
.p-br { margin: 0; color: black; }
section { margin: 4px; }
.p-br { color: red; padding: 0; }
`))

	got := sheet.ClassDeclarations()
	if len(got) != 1 {
		t.Fatalf("expected 1 class, got %d", len(got))
	}
	want := "margin: 0; color: red; padding: 0;"
	var parts []string
	for _, d := range got["p-br"] {
		parts = append(parts, d.String())
	}
	if s := strings.Join(parts, " "); s != want {
		t.Errorf("p-br = %q, want %q", s, want)
	}
}

func TestRulesBySelector(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte(".a { x: 1; } .b { x: 2; } .a { y: 3; }"))
	if got := len(sheet.RulesBySelector(".a")); got != 2 {
		t.Errorf("RulesBySelector(.a) = %d rules, want 2", got)
	}
	if got := len(sheet.RulesBySelector(".c")); got != 0 {
		t.Errorf("RulesBySelector(.c) = %d rules, want 0", got)
	}
}

func TestStylesheet_String(t *testing.T) {
	sheet := css.NewParser(zap.NewNop()).Parse([]byte(".a { x: 1; } .b { y: 2; }"))
	want := ".a {\n  x: 1;\n}\n\n.b {\n  y: 2;\n}\n"
	if got := sheet.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			// Inline styles cannot express any of the block @-rules
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "unsupported @-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.AtRuleGrammar:
			sheet.Warnings = append(sheet.Warnings, "unsupported @-rule: "+string(data))
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)

			for _, selStr := range selectors {
				sel := p.parseSelector(selStr, sheet)
				if !sel.IsSimple() {
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{
					Selector:     sel,
					Declarations: append([]Declaration(nil), decls...),
				})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			decls = append(decls, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    joinTokens(values),
			})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) cannot be resolved inline
			continue
		}
	}
}

// joinTokens builds raw value string collapsing whitespace runs into a single space.
func joinTokens(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

// parseSelector parses a single selector string into a Selector.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	switch {
	case strings.ContainsAny(selStr, "+~>"):
		sheet.Warnings = append(sheet.Warnings, "unsupported combinator selector: "+selStr)
		p.log.Debug("Skipping combinator selector", zap.String("selector", selStr))
		return sel
	case strings.Contains(selStr, "["):
		sheet.Warnings = append(sheet.Warnings, "unsupported attribute selector: "+selStr)
		p.log.Debug("Skipping attribute selector", zap.String("selector", selStr))
		return sel
	case strings.ContainsAny(selStr, " \t\n"):
		sheet.Warnings = append(sheet.Warnings, "unsupported descendant selector: "+selStr)
		p.log.Debug("Skipping descendant selector", zap.String("selector", selStr))
		return sel
	case strings.Contains(selStr, ":"):
		sheet.Warnings = append(sheet.Warnings, "unsupported pseudo selector: "+selStr)
		p.log.Debug("Skipping pseudo selector", zap.String("selector", selStr))
		return sel
	}

	if element, class, found := strings.Cut(selStr, "."); found {
		sel.Element = element
		sel.Class = class
	} else {
		sel.Element = selStr
	}
	return sel
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

package markup

import (
	_ "embed"
	"strings"

	"go.uber.org/zap"

	"htmlcoder/css"
)

//go:embed style.css
var defaultStylesheet []byte

// DefaultStylesheet returns embedded stylesheet with all presentation classes.
func DefaultStylesheet() []byte {
	return defaultStylesheet
}

// StyleTable maps presentation class to its inline style string, for example
// "p-br" -> "margin: 0; line-height: 1.75em;".
type StyleTable map[string]string

// NewStyleTable builds inline style strings from class-only rules of the
// parsed stylesheet keeping declaration order.
func NewStyleTable(sheet *css.Stylesheet) StyleTable {
	st := make(StyleTable)
	for class, decls := range sheet.ClassDeclarations() {
		parts := make([]string, 0, len(decls))
		for _, d := range decls {
			parts = append(parts, d.String())
		}
		st[class] = strings.Join(parts, " ")
	}
	return st
}

// ParseStyleTable parses CSS text into style table.
func ParseStyleTable(data []byte, log *zap.Logger) StyleTable {
	if log == nil {
		log = zap.NewNop()
	}
	sheet := css.NewParser(log).Parse(data, "style table")
	for _, w := range sheet.Warnings {
		log.Debug("Stylesheet warning", zap.String("warning", w))
	}
	return NewStyleTable(sheet)
}

// Missing returns presentation classes of the vocabulary without style.
func (st StyleTable) Missing() []string {
	var res []string
	for _, class := range Classes() {
		if _, ok := st[class]; !ok {
			res = append(res, class)
		}
	}
	return res
}

package coder

import (
	"regexp"
)

// Control lines of the template grammar. Whitespace classes include Unicode
// separators so that full-width space typed by authors is accepted.
var (
	commentRe = regexp.MustCompile(`^[#＃]`)
	paramRe   = regexp.MustCompile(`^[@＠][\s\p{Z}]*([^\s\p{Z}]+)[\s\p{Z}]*=[\s\p{Z}]*([^\s\p{Z}]+).*$`)
	zoneRe    = regexp.MustCompile(`^[\s\p{Z}]*\{%[\s\p{Z}]*([^\s\p{Z}]+)[\s\p{Z}]*%\}.*$`)
	zoneEndRe = regexp.MustCompile(`^END([^\s\p{Z}]+)$`)
)

type lineKind int

const (
	lineContent lineKind = iota
	lineComment
	lineParam
	lineZone
)

// line is classified paragraph text.
type line struct {
	kind lineKind
	// key and value of parameter directive
	key, value string
	// zone marker name, without END prefix
	zone string
	end  bool
}

func classify(text string) line {
	if commentRe.MatchString(text) {
		return line{kind: lineComment}
	}
	if m := paramRe.FindStringSubmatch(text); m != nil {
		return line{kind: lineParam, key: m[1], value: m[2]}
	}
	if m := zoneRe.FindStringSubmatch(text); m != nil {
		if e := zoneEndRe.FindStringSubmatch(m[1]); e != nil {
			return line{kind: lineZone, zone: e[1], end: true}
		}
		return line{kind: lineZone, zone: m[1]}
	}
	return line{kind: lineContent}
}

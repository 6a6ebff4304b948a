package coder

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"htmlcoder/markup"
)

func (m *machine) reporter(f Facts) {
	if f.Text == "" {
		return
	}
	text := fullWidth(f.Text)
	if f.Bold {
		m.blocks.Reporter.Append(markup.Blank(), markup.NewWithText(markup.RoleReporter, text, true))
		return
	}
	m.blocks.Reporter.Append(markup.NewWithText(markup.RoleReporter, text, false))
}

func (m *machine) body(i int, f Facts) {
	body := m.blocks.Body

	if f.Image != nil {
		if m.nextToImage(i) {
			// consecutive pictures are glued together
			body.RemoveLast(markup.RoleBlank)
		}
		body.Append(markup.Image(f.Image.URL), markup.Blank())
		m.counters.Pictures++
		return
	}
	if f.Text == "" {
		return
	}

	switch {
	case f.Bold:
		body.Append(markup.NewWithText(markup.RoleHeading, f.Text, false), markup.Blank())
	case f.Align == AlignCenter:
		// caption sticks to the picture above
		body.RemoveLast(markup.RoleBlank)
		body.Append(
			markup.New(markup.RoleImageNote, markup.NoteMarker(), markup.New(markup.RoleSpan, markup.NewText(f.Text))),
			markup.Blank())
	case f.Align == AlignRight:
		body.Append(markup.NewWithText(markup.RoleRightNote, f.Text, false), markup.Blank())
	default:
		body.Append(markup.NewWithText(markup.RoleParagraph, f.Text, false), markup.Blank())
	}
	m.counters.Words += utf8.RuneCountInString(f.Text)
}

func (m *machine) ending(f Facts) {
	if f.Text == "" {
		return
	}
	m.blocks.Ending.Append(markup.NewWithText(markup.RoleEndNote, fullWidth(f.Text), false))
}

// note fills editor and reporter note blocks, right aligned text is a
// signature.
func (m *machine) note(box *markup.Tag, f Facts) {
	if f.Text == "" {
		return
	}
	role := markup.RoleParagraph
	if f.Align == AlignRight {
		role = markup.RoleRightNote
	}
	box.Append(markup.NewWithText(role, f.Text, false), markup.Blank())
}

func (m *machine) reference(f Facts) {
	if f.Text == "" {
		return
	}
	if f.Bold {
		m.blocks.Reference.Append(markup.New(markup.RoleReference, markup.New(markup.RoleRed16, markup.NewText(f.Text))))
		return
	}
	m.blocks.Reference.Append(markup.NewWithText(markup.RoleReference, f.Text, false))
}

// fullWidth collapses runs of half-width spaces and vertical bars into
// single full-width characters dropping them at both ends.
func fullWidth(s string) string {
	for _, r := range []rune{' ', '|'} {
		parts := strings.FieldsFunc(s, func(c rune) bool { return c == r })
		s = strings.Join(parts, width.Widen.String(string(r)))
	}
	return s
}

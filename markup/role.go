package markup

import "fmt"

// Role is the closed vocabulary of container nodes. Every role is bound to
// exactly one element name and at most one presentation class.
type Role int

const (
	RoleSpan Role = iota
	RoleLineBreak
	RoleImageSource

	RoleBlank
	RoleParagraph
	RoleRightNote
	RoleImageNote
	RoleEndNote
	RoleCount
	RoleReporter
	RoleReference
	RoleHeading
	RoleImage
	RoleRuleLine
	RoleRule

	RoleRed15
	RoleRed16
	RoleNoteSymbol

	RoleHeadBox
	RoleBodyBox
	RoleEndingBox
	RoleReporterBox
	RoleEditorNoteBox
	RoleReporterNoteBox
	RoleReferenceBox
	RoleCountBox
	RoleWrapBox

	roleCount
)

type roleInfo struct {
	name  string
	tag   string
	class string
	void  bool
}

// NOTE: article platforms strip <div>, so every block is a <section>.
var roles = [roleCount]roleInfo{
	RoleSpan:        {name: "span", tag: "span"},
	RoleLineBreak:   {name: "line-break", tag: "br", void: true},
	RoleImageSource: {name: "image-source", tag: "img", class: "img", void: true},

	RoleBlank:     {name: "blank", tag: "section", class: "p-br"},
	RoleParagraph: {name: "paragraph", tag: "section", class: "p-normal"},
	RoleRightNote: {name: "right-note", tag: "section", class: "p-right-note"},
	RoleImageNote: {name: "image-note", tag: "section", class: "p-image-note"},
	RoleEndNote:   {name: "end-note", tag: "section", class: "p-end-note"},
	RoleCount:     {name: "count", tag: "section", class: "p-count"},
	RoleReporter:  {name: "reporter", tag: "section", class: "p-reporter"},
	RoleReference: {name: "reference", tag: "section", class: "p-reference"},
	RoleHeading:   {name: "heading", tag: "section", class: "p-h1"},
	RoleImage:     {name: "image", tag: "section", class: "p-img"},
	RoleRuleLine:  {name: "rule-line", tag: "section", class: "p-hr"},
	RoleRule:      {name: "rule", tag: "section", class: "hr"},

	RoleRed15:      {name: "red-15", tag: "span", class: "span-red-15"},
	RoleRed16:      {name: "red-16", tag: "span", class: "span-red-16"},
	RoleNoteSymbol: {name: "note-symbol", tag: "span", class: "span-note-syb"},

	RoleHeadBox:         {name: "head-box", tag: "section", class: "div-head"},
	RoleBodyBox:         {name: "body-box", tag: "section", class: "div-body"},
	RoleEndingBox:       {name: "ending-box", tag: "section", class: "div-ending"},
	RoleReporterBox:     {name: "reporter-box", tag: "section", class: "div-reporter"},
	RoleEditorNoteBox:   {name: "editor-note-box", tag: "section", class: "div-editornote"},
	RoleReporterNoteBox: {name: "reporter-note-box", tag: "section", class: "div-reporternote"},
	RoleReferenceBox:    {name: "reference-box", tag: "section", class: "div-reference"},
	RoleCountBox:        {name: "count-box", tag: "section", class: "div-count"},
	RoleWrapBox:         {name: "wrap-box", tag: "section", class: "div-wrap"},
}

func (r Role) info() roleInfo {
	if r < 0 || r >= roleCount {
		// this should never happen
		panic(fmt.Sprintf("unknown markup role %d", int(r)))
	}
	return roles[r]
}

// String returns role name.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roles[r].name
}

// Element returns HTML element name the role renders to.
func (r Role) Element() string {
	return r.info().tag
}

// Class returns presentation class bound to the role, empty if none.
func (r Role) Class() string {
	return r.info().class
}

// Void reports whether the element never has content (br, img).
func (r Role) Void() bool {
	return r.info().void
}

// Classes returns all presentation classes used by the vocabulary.
func Classes() []string {
	res := make([]string, 0, roleCount)
	for _, ri := range roles {
		if ri.class != "" {
			res = append(res, ri.class)
		}
	}
	return res
}

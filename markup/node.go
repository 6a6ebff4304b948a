// Package markup is a minimal typed DOM for article fragments: text nodes and
// container nodes bound to presentation classes, rendered deterministically
// to HTML with classes expanded into inline styles.
package markup

import "slices"

// Node is either *Text or *Tag.
type Node interface {
	isNode()
}

// Text is a leaf with character content, rendered inside <strong> when bold.
type Text struct {
	Content string
	Bold    bool
}

func (*Text) isNode() {}

// Attr is an additional element attribute (class and style are derived from
// the role and never stored here).
type Attr struct {
	Key   string
	Value string
}

// Tag is a container node. Children are exclusively owned by the tag.
type Tag struct {
	role     Role
	attrs    []Attr
	children []Node
}

func (*Tag) isNode() {}

// NewText returns plain text node.
func NewText(s string) *Text {
	return &Text{Content: s}
}

// NewBoldText returns text node rendered as <strong>.
func NewBoldText(s string) *Text {
	return &Text{Content: s, Bold: true}
}

// New creates container of the given role with children in order.
func New(role Role, children ...Node) *Tag {
	t := &Tag{role: role}
	return t.Append(children...)
}

// NewWithText creates container holding a single text node.
func NewWithText(role Role, s string, bold bool) *Tag {
	return New(role, &Text{Content: s, Bold: bold})
}

// Blank returns blank line paragraph.
func Blank() *Tag {
	return New(RoleBlank, New(RoleLineBreak))
}

// Image returns image paragraph pointing to src.
func Image(src string) *Tag {
	img := New(RoleImageSource)
	img.SetAttr("src", src)
	return New(RoleImage, img)
}

// RuleLine returns paragraph holding horizontal rule.
func RuleLine() *Tag {
	return New(RoleRuleLine, New(RoleRule))
}

// NoteSymbol is the marker glyph preceding image captions.
const NoteSymbol = "△"

// NoteMarker returns caption marker span.
func NoteMarker() *Tag {
	return New(RoleNoteSymbol, NewText(NoteSymbol))
}

// Role returns role of the tag.
func (t *Tag) Role() Role {
	return t.role
}

// Attrs returns additional attributes in insertion order.
func (t *Tag) Attrs() []Attr {
	return t.attrs
}

// SetAttr sets or replaces an additional attribute.
func (t *Tag) SetAttr(key, value string) *Tag {
	for i := range t.attrs {
		if t.attrs[i].Key == key {
			t.attrs[i].Value = value
			return t
		}
	}
	t.attrs = append(t.attrs, Attr{Key: key, Value: value})
	return t
}

// Attr returns value of additional attribute.
func (t *Tag) Attr(key string) (string, bool) {
	for _, a := range t.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns direct children. Returned slice must not be modified.
func (t *Tag) Children() []Node {
	return t.children
}

// Len returns number of direct children.
func (t *Tag) Len() int {
	return len(t.children)
}

// HasChildren reports whether tag has any direct children.
func (t *Tag) HasChildren() bool {
	return len(t.children) > 0
}

// Append adds children to the end preserving their order. Nil children are
// skipped. Returns tag itself for chaining.
func (t *Tag) Append(children ...Node) *Tag {
	for _, c := range children {
		if c == nil {
			continue
		}
		t.children = append(t.children, c)
	}
	return t
}

// Insert places children at index preserving their order, index is clamped
// to [0, Len()].
func (t *Tag) Insert(index int, children ...Node) *Tag {
	index = max(0, min(index, len(t.children)))
	nodes := slices.DeleteFunc(slices.Clone(children), func(n Node) bool { return n == nil })
	t.children = slices.Insert(t.children, index, nodes...)
	return t
}

// RemoveLast removes the most recently added child tag with the given role
// scanning from the end. Reports whether anything was removed, absence of a
// matching child is not an error.
func (t *Tag) RemoveLast(role Role) bool {
	for i := len(t.children) - 1; i >= 0; i-- {
		if tag, ok := t.children[i].(*Tag); ok && tag.role == role {
			t.children = slices.Delete(t.children, i, i+1)
			return true
		}
	}
	return false
}

// Document is the sole root of the rendered tree. Its children are rendered
// inside a minimal html/head/body shell.
type Document struct {
	Title    string
	children []Node
}

// NewDocument returns empty document.
func NewDocument(title string) *Document {
	return &Document{Title: title}
}

// Append adds top level children in order, nil children are skipped.
func (d *Document) Append(children ...Node) *Document {
	for _, c := range children {
		if c != nil {
			d.children = append(d.children, c)
		}
	}
	return d
}

// Children returns top level children. Returned slice must not be modified.
func (d *Document) Children() []Node {
	return d.children
}

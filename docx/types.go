package docx

import "strings"

// WordprocessingML namespaces.
const (
	nsW    = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRels = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// Parts of the container this package reads.
const (
	PartDocument = "word/document.xml"
	PartStyles   = "word/styles.xml"
	PartRels     = "word/_rels/document.xml.rels"
	mediaPrefix  = "word/media/"
)

// StyleKind tells where style reference was attached.
type StyleKind int

const (
	// ParagraphStyle is w:pPr/w:pStyle reference.
	ParagraphStyle StyleKind = iota
	// RunStyle is w:rPr/w:rStyle reference.
	RunStyle
)

func (k StyleKind) String() string {
	if k == RunStyle {
		return "run"
	}
	return "paragraph"
}

// StyleRef is a style id referenced from paragraph content.
type StyleRef struct {
	ID   string
	Kind StyleKind
}

// Paragraph is raw content of a single w:p element. Presentation facts are
// left unresolved: Bold and Align only describe what the paragraph itself
// declares.
type Paragraph struct {
	// Ordinal is position in the document paragraph sequence.
	Ordinal int
	// Text is concatenation of all text runs with surrounding space trimmed.
	Text string
	// StyleRefs lists pStyle and rStyle references in document order.
	StyleRefs []StyleRef
	// Bold is the last explicit bold flag, nil when paragraph has none.
	Bold *bool
	// Align is the paragraph justification, empty when not declared.
	Align string
	// ImageRefs lists relationship ids of embedded pictures in document
	// order, duplicates are kept.
	ImageRefs []string
}

// HasImages reports whether paragraph embeds any picture.
func (p *Paragraph) HasImages() bool {
	return len(p.ImageRefs) > 0
}

// Style carries presentation facts of a style definition.
type Style struct {
	ID    string
	Name  string
	Bold  *bool
	Align string
}

// Image is a picture part referenced from the document.
type Image struct {
	// ID is relationship id used by paragraphs.
	ID string
	// Part is the full part name inside the container.
	Part string
	Data []byte
}

// FileName returns base name of the image part.
func (i *Image) FileName() string {
	return i.Part[strings.LastIndexByte(i.Part, '/')+1:]
}

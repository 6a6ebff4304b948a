package coder

import (
	"fmt"
	"slices"

	"htmlcoder/docx"
)

// Alignment values used by handlers.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Asset is an uploaded picture.
type Asset struct {
	URL string
	// Hash identifies picture content, different references to the same
	// bytes share it.
	Hash string
}

// AssetLookup resolves image references (docx relationship ids and
// illustration names) to assets. Resolution must be complete before the
// document is built.
type AssetLookup interface {
	Lookup(ref string) (Asset, bool)
}

// Assets is in-memory AssetLookup.
type Assets map[string]Asset

func (a Assets) Lookup(ref string) (Asset, bool) {
	v, ok := a[ref]
	return v, ok
}

// Facts are paragraph presentation facts resolved against styles and
// assets.
type Facts struct {
	Ordinal int
	Text    string
	Bold    bool
	Align   string
	// Image is the paragraph picture, nil when paragraph has none.
	Image *Asset
}

// ResolveFacts computes facts of a single paragraph. Among several styles
// the last one declaring a value wins, paragraph level declarations always
// win over styles. Alignment is only inherited from paragraph styles.
func ResolveFacts(p *docx.Paragraph, styles map[string]docx.Style, assets AssetLookup) (Facts, error) {
	f := Facts{Ordinal: p.Ordinal, Text: p.Text, Align: AlignLeft}

	for _, ref := range p.StyleRefs {
		s, ok := styles[ref.ID]
		if !ok {
			return f, fmt.Errorf("%w %q (%s)", ErrUnknownStyle, ref.ID, ref.Kind)
		}
		if s.Bold != nil {
			f.Bold = *s.Bold
		}
		if ref.Kind == docx.ParagraphStyle && s.Align != "" {
			f.Align = normalizeAlign(s.Align)
		}
	}
	if p.Bold != nil {
		f.Bold = *p.Bold
	}
	if p.Align != "" {
		f.Align = normalizeAlign(p.Align)
	}

	img, err := resolveImage(p.ImageRefs, assets)
	if err != nil {
		return f, err
	}
	f.Image = img
	return f, nil
}

// resolveImage returns the single picture referenced by refs. Repeated
// references to the same content are allowed.
func resolveImage(refs []string, assets AssetLookup) (*Asset, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	var (
		first  *Asset
		hashes []string
	)
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true

		a, ok := assets.Lookup(ref)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownImage, ref)
		}
		if first == nil {
			first = &a
		}
		if !slices.Contains(hashes, a.Hash) {
			hashes = append(hashes, a.Hash)
		}
	}
	if len(hashes) > 1 {
		return nil, fmt.Errorf("%w: %d pictures", ErrMultiPictureConflict, len(hashes))
	}
	return first, nil
}

// normalizeAlign maps ST_Jc values of both transitional and strict
// vocabularies to handler values.
func normalizeAlign(jc string) string {
	switch jc {
	case "start":
		return AlignLeft
	case "end":
		return AlignRight
	case "both", "distribute":
		return AlignJustify
	}
	return jc
}

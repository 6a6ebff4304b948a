package coder

import (
	"fmt"
	"strconv"

	"htmlcoder/markup"
)

// Names under which note block illustrations are resolved.
const (
	IllustrationEditorNote   = "editornote"
	IllustrationReporterNote = "reporternote"
)

// Illustrations lists all illustration names.
func Illustrations() []string {
	return []string{IllustrationEditorNote, IllustrationReporterNote}
}

// Summary texts.
const (
	summaryPrefix   = "全文共"
	summaryWords    = "字，阅读大约需要"
	summaryPictures = "张图，阅读大约需要"
	summarySuffix   = "分钟。"
)

// Minimal sizes of blocks worth attaching: reporter block with a lone bold
// title has a blank line and the title, reference block with only a title
// has one entry.
const (
	reporterSkeleton  = 2
	referenceSkeleton = 1
)

// Assembly is the input of Assemble.
type Assembly struct {
	Title    string
	Blocks   Blocks
	Counters Counters
	Params   Params
	// Assets resolves note block illustrations.
	Assets AssetLookup
	// PoweredBy is put on every wrapper box when not empty.
	PoweredBy string
}

// Assemble builds the final document from traversal results. Blocks are
// consumed: they become part of the returned tree.
func Assemble(a Assembly) (*markup.Document, error) {
	b := a.Blocks

	if b.Reporter.Len() > reporterSkeleton {
		b.Head.Append(b.Reporter)
	}

	if summary := summary(a.Params, a.Counters); summary != nil {
		b.Head.Insert(0, summary, markup.Blank())
	}
	// room for banner picture
	b.Head.Insert(0, markup.Blank())
	b.Head.Append(markup.RuleLine())

	if b.Reference.Len() > referenceSkeleton {
		b.Ending.Insert(0, markup.Blank(), b.Reference)
	}
	b.Ending.Append(markup.Blank())

	for _, n := range []struct {
		box  *markup.Tag
		name string
	}{
		{b.ReporterNote, IllustrationReporterNote},
		{b.EditorNote, IllustrationEditorNote},
	} {
		if !n.box.HasChildren() {
			continue
		}
		asset, ok := a.Assets.Lookup(n.name)
		if !ok {
			return nil, documentError(fmt.Errorf("%w: illustration %q", ErrUnknownImage, n.name))
		}
		n.box.Insert(0, markup.Image(asset.URL))
		n.box.Append(markup.RuleLine())
	}

	doc := markup.NewDocument(a.Title)
	wrap := func(box *markup.Tag) {
		w := markup.New(markup.RoleWrapBox, box)
		if a.PoweredBy != "" {
			w.SetAttr("powered-by", a.PoweredBy)
		}
		doc.Append(w)
	}
	wrap(b.Head)
	if b.EditorNote.HasChildren() {
		wrap(b.EditorNote)
	}
	if b.ReporterNote.HasChildren() {
		wrap(b.ReporterNote)
	}
	wrap(b.Body)
	wrap(b.Ending)
	return doc, nil
}

// summary returns reading time block or nil when no counting mode is active.
func summary(p Params, c Counters) *markup.Tag {
	minutes, count, ok := p.ReadingTime(c)
	if !ok {
		return nil
	}
	unit := summaryWords
	if !p.CountWord {
		unit = summaryPictures
	}
	red := func(n int) markup.Node {
		return markup.New(markup.RoleRed16, markup.NewText(strconv.Itoa(n)))
	}
	return markup.New(markup.RoleCountBox,
		markup.New(markup.RoleCount,
			markup.New(markup.RoleSpan, markup.NewText(summaryPrefix)),
			red(count),
			markup.New(markup.RoleSpan, markup.NewText(unit)),
			red(minutes),
			markup.New(markup.RoleSpan, markup.NewText(summarySuffix)),
		))
}

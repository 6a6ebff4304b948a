// Package coder turns document paragraphs into article markup following the
// template grammar: comment lines, parameter directives and zone markers
// around content.
//
// Building is single pass and synchronous, all assets must be resolved
// beforehand. Every grammar violation aborts the whole conversion with a
// *ParagraphError.
package coder

import (
	"fmt"

	"go.uber.org/zap"

	"htmlcoder/docx"
	"htmlcoder/markup"
)

// Options control presentation of the built document.
type Options struct {
	// Title of the document shell.
	Title string
	// Styles expands presentation classes, embedded stylesheet is used when
	// nil.
	Styles markup.StyleTable
	// PoweredBy is put on every wrapper box when not empty.
	PoweredBy string
}

// Result of a successful build.
type Result struct {
	Document *markup.Document
	HTML     string
	Params   Params
	Counters Counters
}

// Build classifies paragraphs, assembles and renders the document. No I/O
// happens here.
func Build(paragraphs []docx.Paragraph, styles map[string]docx.Style, assets AssetLookup, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if assets == nil {
		assets = Assets{}
	}

	m := newMachine(paragraphs, styles, assets, log)
	if err := m.run(); err != nil {
		return nil, err
	}

	doc, err := Assemble(Assembly{
		Title:     opts.Title,
		Blocks:    m.blocks,
		Counters:  m.counters,
		Params:    m.params,
		Assets:    assets,
		PoweredBy: opts.PoweredBy,
	})
	if err != nil {
		return nil, err
	}

	st := opts.Styles
	if st == nil {
		st = markup.ParseStyleTable(markup.DefaultStylesheet(), log)
	}
	html, err := markup.NewRenderer(st).RenderDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to render document: %w", err)
	}

	log.Debug("Document built",
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("words", m.counters.Words),
		zap.Int("pictures", m.counters.Pictures),
		zap.Bool("count_word", m.params.CountWord),
		zap.Bool("count_picture", m.params.CountPicture))

	return &Result{
		Document: doc,
		HTML:     html,
		Params:   m.params,
		Counters: m.counters,
	}, nil
}

// BuildDocument is Build over parsed docx container.
func BuildDocument(d *docx.Document, assets AssetLookup, opts Options, log *zap.Logger) (*Result, error) {
	if opts.Title == "" {
		opts.Title = d.Name
	}
	return Build(d.Paragraphs, d.Styles, assets, opts, log)
}

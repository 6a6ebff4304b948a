package coder

import (
	"fmt"

	"go.uber.org/zap"

	"htmlcoder/docx"
	"htmlcoder/markup"
)

// Blocks are per zone trees populated by a traversal.
type Blocks struct {
	Head         *markup.Tag
	Body         *markup.Tag
	Ending       *markup.Tag
	Reporter     *markup.Tag
	EditorNote   *markup.Tag
	ReporterNote *markup.Tag
	Reference    *markup.Tag
}

// NewBlocks returns empty blocks.
func NewBlocks() Blocks {
	return Blocks{
		Head:         markup.New(markup.RoleHeadBox),
		Body:         markup.New(markup.RoleBodyBox),
		Ending:       markup.New(markup.RoleEndingBox),
		Reporter:     markup.New(markup.RoleReporterBox),
		EditorNote:   markup.New(markup.RoleEditorNoteBox),
		ReporterNote: markup.New(markup.RoleReporterNoteBox),
		Reference:    markup.New(markup.RoleReferenceBox),
	}
}

// machine walks paragraphs once classifying them and populating blocks. All
// state is owned by a single traversal.
type machine struct {
	log        *zap.Logger
	paragraphs []docx.Paragraph
	styles     map[string]docx.Style
	assets     AssetLookup

	stack    zoneStack
	entered  bool
	params   Params
	counters Counters
	blocks   Blocks
}

func newMachine(paragraphs []docx.Paragraph, styles map[string]docx.Style, assets AssetLookup, log *zap.Logger) *machine {
	return &machine{
		log:        log,
		paragraphs: paragraphs,
		styles:     styles,
		assets:     assets,
		params:     DefaultParams(),
		blocks:     NewBlocks(),
	}
}

func (m *machine) run() error {
	for i := range m.paragraphs {
		if err := m.step(i); err != nil {
			return err
		}
	}
	return m.finish()
}

func (m *machine) fail(i int, err error) error {
	return paragraphError(m.paragraphs[i].Ordinal, m.paragraphs[i].Text, err)
}

func (m *machine) step(i int) error {
	p := &m.paragraphs[i]

	switch l := classify(p.Text); l.kind {
	case lineComment:
		return nil
	case lineParam:
		return m.param(i, l)
	case lineZone:
		return m.zone(i, l)
	}

	top, ok := m.stack.top()
	if !ok || top.zone == ZoneIgnore {
		return nil
	}

	f, err := ResolveFacts(p, m.styles, m.assets)
	if err != nil {
		return m.fail(i, err)
	}
	m.dispatch(top.zone, i, f)
	return nil
}

func (m *machine) param(i int, l line) error {
	if m.entered {
		return m.fail(i, fmt.Errorf("%w: %s", ErrParamDefinedTooLate, l.key))
	}
	if err := m.params.set(l.key, l.value); err != nil {
		return m.fail(i, err)
	}
	m.log.Debug("Parameter set", zap.String("key", l.key), zap.String("value", l.value), zap.Int("paragraph", m.paragraphs[i].Ordinal))
	return nil
}

func (m *machine) zone(i int, l line) error {
	z, ok := ParseZone(l.zone)
	if !ok {
		return m.fail(i, fmt.Errorf("%w %q", ErrUnknownZone, l.zone))
	}
	top, open := m.stack.top()

	if l.end {
		switch {
		case !open:
			return m.fail(i, fmt.Errorf("%w: END%s outside of any zone", ErrUnexpectedZoneEnd, z))
		case top.zone == ZoneIgnore && z != ZoneIgnore:
			// markers inside ignored content are swallowed
		case top.zone != z:
			return m.fail(i, fmt.Errorf("%w: END%s, current zone is %s", ErrZoneMismatch, z, top.zone))
		default:
			m.stack.pop()
			m.log.Debug("Zone closed", zap.Stringer("zone", z), zap.Int("paragraph", m.paragraphs[i].Ordinal))
		}
		return nil
	}

	if open && top.zone == ZoneIgnore {
		// ignore zones do not nest
		return nil
	}
	m.stack.push(z, i)
	m.entered = true
	m.log.Debug("Zone opened", zap.Stringer("zone", z), zap.Int("paragraph", m.paragraphs[i].Ordinal))
	return nil
}

func (m *machine) dispatch(z Zone, i int, f Facts) {
	switch z {
	case ZoneIgnore:
	case ZoneReporter:
		m.reporter(f)
	case ZoneBody:
		m.body(i, f)
	case ZoneEnding:
		m.ending(f)
	case ZoneEditorNote:
		m.note(m.blocks.EditorNote, f)
	case ZoneReporterNote:
		m.note(m.blocks.ReporterNote, f)
	case ZoneReference:
		m.reference(f)
	default:
		// this should never happen
		panic(fmt.Sprintf("unhandled zone %s", z))
	}
}

func (m *machine) finish() error {
	if top, ok := m.stack.top(); ok {
		return m.fail(top.at, fmt.Errorf("%w %s: missing {%% END%s %%}", ErrUnclosedZone, top.zone, top.zone))
	}
	if m.params.CountWord && m.params.CountPicture {
		return documentError(ErrConflictingCounters)
	}
	return nil
}

// nextToImage reports whether the closest preceding paragraph with any
// content is a picture paragraph. Blank paragraphs are skipped.
func (m *machine) nextToImage(i int) bool {
	for j := i - 1; j >= 0; j-- {
		p := &m.paragraphs[j]
		switch {
		case p.Text != "":
			return false
		case p.HasImages():
			return true
		}
	}
	return false
}

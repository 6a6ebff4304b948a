package docx

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

func is(e *etree.Element, ns, local string) bool {
	return e.Tag == local && e.NamespaceURI() == ns
}

func attr(e *etree.Element, ns, local string) (string, bool) {
	for i := range e.Attr {
		if e.Attr[i].Key == local && e.Attr[i].NamespaceURI() == ns {
			return e.Attr[i].Value, true
		}
	}
	return "", false
}

// walk visits all descendants of e in document order.
func walk(e *etree.Element, visit func(el *etree.Element)) {
	for _, c := range e.ChildElements() {
		visit(c)
		walk(c, visit)
	}
}

// onOff interprets ST_OnOff value, absent value means on.
func onOff(e *etree.Element) bool {
	v, ok := attr(e, nsW, "val")
	if !ok {
		return true
	}
	switch strings.ToLower(v) {
	case "false", "0", "off":
		return false
	}
	return true
}

// presentation collects bold and justification declared anywhere under e:
// the last w:rPr/w:b wins, the first w:pPr/w:jc is taken.
func presentation(e *etree.Element) (bold *bool, align string) {
	walk(e, func(el *etree.Element) {
		parent := el.Parent()
		if parent == nil {
			return
		}
		switch {
		case is(el, nsW, "b") && is(parent, nsW, "rPr"):
			v := onOff(el)
			bold = &v
		case align == "" && is(el, nsW, "jc") && is(parent, nsW, "pPr"):
			align, _ = attr(el, nsW, "val")
		}
	})
	return bold, align
}

// parseParagraphs returns every w:p of the document in document order,
// paragraphs nested in text boxes included.
func parseParagraphs(doc *etree.Document) []Paragraph {
	var res []Paragraph
	walk(doc.Root(), func(el *etree.Element) {
		if !is(el, nsW, "p") {
			return
		}
		p := parseParagraph(el)
		p.Ordinal = len(res)
		res = append(res, p)
	})
	return res
}

func parseParagraph(el *etree.Element) Paragraph {
	var (
		p    Paragraph
		text strings.Builder
	)
	p.Bold, p.Align = presentation(el)

	var visit func(e *etree.Element, inDrawing, inPict bool)
	visit = func(e *etree.Element, inDrawing, inPict bool) {
		for _, c := range e.ChildElements() {
			switch {
			case is(c, nsW, "t"):
				text.WriteString(c.Text())
			case is(c, nsW, "pStyle"):
				if id, ok := attr(c, nsW, "val"); ok {
					p.StyleRefs = append(p.StyleRefs, StyleRef{ID: id, Kind: ParagraphStyle})
				}
			case is(c, nsW, "rStyle"):
				if id, ok := attr(c, nsW, "val"); ok {
					p.StyleRefs = append(p.StyleRefs, StyleRef{ID: id, Kind: RunStyle})
				}
			}
			if inDrawing {
				if id, ok := attr(c, nsR, "embed"); ok {
					p.ImageRefs = append(p.ImageRefs, id)
				}
			} else if inPict {
				if id, ok := attr(c, nsR, "id"); ok {
					p.ImageRefs = append(p.ImageRefs, id)
				}
			}
			visit(c, inDrawing || is(c, nsW, "drawing"), inPict || is(c, nsW, "pict"))
		}
	}
	visit(el, false, false)

	p.Text = strings.TrimSpace(text.String())
	return p
}

func parseStyles(doc *etree.Document, log *zap.Logger) map[string]Style {
	styles := make(map[string]Style)
	for _, el := range doc.Root().ChildElements() {
		if !is(el, nsW, "style") {
			continue
		}
		id, ok := attr(el, nsW, "styleId")
		if !ok {
			log.Debug("Style without id, ignoring")
			continue
		}
		s := Style{ID: id}
		for _, c := range el.ChildElements() {
			if is(c, nsW, "name") {
				s.Name, _ = attr(c, nsW, "val")
			}
		}
		s.Bold, s.Align = presentation(el)
		styles[id] = s
	}
	return styles
}

// parseImageRels returns relationship id to target for picture parts.
func parseImageRels(doc *etree.Document) map[string]string {
	res := make(map[string]string)
	for _, el := range doc.Root().ChildElements() {
		if el.Tag != "Relationship" {
			continue
		}
		if ns := el.NamespaceURI(); ns != "" && ns != nsRels {
			continue
		}
		target := strings.TrimPrefix(el.SelectAttrValue("Target", ""), "/word/")
		if !strings.HasPrefix(target, "media/image") {
			continue
		}
		res[el.SelectAttrValue("Id", "")] = target
	}
	return res
}

package markup

import (
	"fmt"

	"github.com/beevik/etree"
)

// Renderer serializes trees to HTML. Rendering is pure: the same tree and
// style table always produce the same string.
type Renderer struct {
	styles   StyleTable
	settings etree.WriteSettings
}

// NewRenderer returns renderer expanding presentation classes using styles.
func NewRenderer(styles StyleTable) *Renderer {
	return &Renderer{
		styles: styles,
		settings: etree.WriteSettings{
			CanonicalText:    true,
			CanonicalAttrVal: true,
		},
	}
}

// Render serializes a single node (fragment, no document shell).
func (r *Renderer) Render(n Node) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = r.settings
	r.renderNode(&doc.Element, n)
	return doc.WriteToString()
}

// RenderDocument serializes document with doctype and html/head/body shell.
func (r *Renderer) RenderDocument(d *Document) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings = r.settings
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	title := head.CreateElement("title")
	title.CreateText(d.Title)

	body := html.CreateElement("body")
	for _, c := range d.children {
		r.renderNode(body, c)
	}
	closeEmpty(body)

	s, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to serialize document: %w", err)
	}
	return s, nil
}

func (r *Renderer) renderNode(parent *etree.Element, n Node) {
	switch n := n.(type) {
	case *Text:
		if n.Bold {
			parent.CreateElement("strong").CreateText(n.Content)
			return
		}
		parent.CreateText(n.Content)
	case *Tag:
		el := parent.CreateElement(n.role.Element())
		if class := n.role.Class(); class != "" {
			el.CreateAttr("class", class)
			if style, ok := r.styles[class]; ok {
				el.CreateAttr("style", style)
			}
		}
		for _, a := range n.attrs {
			el.CreateAttr(a.Key, a.Value)
		}
		for _, c := range n.children {
			r.renderNode(el, c)
		}
		if !n.role.Void() {
			closeEmpty(el)
		}
	default:
		// this should never happen
		panic(fmt.Sprintf("unexpected markup node %T", n))
	}
}

// closeEmpty makes sure non-void element gets explicit end tag, HTML parsers
// do not treat "<section/>" as empty element.
func closeEmpty(el *etree.Element) {
	if len(el.Child) == 0 {
		el.CreateText("")
	}
}

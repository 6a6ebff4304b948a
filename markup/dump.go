package markup

import (
	"htmlcoder/utils/debug"
)

// Dump returns indented textual representation of the document tree for
// debug reports. Style expansion is not applied, only roles are shown.
func Dump(d *Document) string {
	tw := debug.NewTreeWriter()
	tw.Element(0, "document", "title", d.Title)
	for _, c := range d.children {
		dumpNode(tw, 1, c)
	}
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, depth int, n Node) {
	switch n := n.(type) {
	case *Text:
		label := "text"
		if n.Bold {
			label = "strong"
		}
		tw.TextBlock(depth, label, n.Content)
	case *Tag:
		kv := make([]string, 0, 2+2*len(n.attrs))
		if class := n.role.Class(); class != "" {
			kv = append(kv, "class", class)
		}
		for _, a := range n.attrs {
			kv = append(kv, a.Key, a.Value)
		}
		tw.Element(depth, n.role.Element(), kv...)
		for _, c := range n.children {
			dumpNode(tw, depth+1, c)
		}
	}
}

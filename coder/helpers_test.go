package coder

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"htmlcoder/docx"
	"htmlcoder/markup"
)

func ptrBool(v bool) *bool {
	return &v
}

func txt(s string) docx.Paragraph {
	return docx.Paragraph{Text: s}
}

func boldTxt(s string) docx.Paragraph {
	return docx.Paragraph{Text: s, Bold: ptrBool(true)}
}

func alignTxt(s, align string) docx.Paragraph {
	return docx.Paragraph{Text: s, Align: align}
}

func img(refs ...string) docx.Paragraph {
	return docx.Paragraph{ImageRefs: refs}
}

// seq numbers paragraphs the way document source does.
func seq(ps ...docx.Paragraph) []docx.Paragraph {
	for i := range ps {
		ps[i].Ordinal = i
	}
	return ps
}

var testAssets = Assets{
	"rId1":                   {URL: "https://img.example/1.png", Hash: "h1"},
	"rId2":                   {URL: "https://img.example/2.png", Hash: "h2"},
	"rId1dup":                {URL: "https://img.example/1-copy.png", Hash: "h1"},
	IllustrationEditorNote:   {URL: "https://img.example/editornote.png", Hash: "he"},
	IllustrationReporterNote: {URL: "https://img.example/reporternote.png", Hash: "hr"},
}

func run(t *testing.T, ps []docx.Paragraph) (*machine, error) {
	t.Helper()
	m := newMachine(ps, nil, testAssets, zaptest.NewLogger(t))
	return m, m.run()
}

func mustRun(t *testing.T, ps []docx.Paragraph) *machine {
	t.Helper()
	m, err := run(t, ps)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	return m
}

func childRoles(tag *markup.Tag) []markup.Role {
	var res []markup.Role
	for _, c := range tag.Children() {
		if t, ok := c.(*markup.Tag); ok {
			res = append(res, t.Role())
		}
	}
	return res
}

func equalRoles(t *testing.T, what string, got, want []markup.Role) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s roles = %v, want %v", what, got, want)
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s roles = %v, want %v", what, got, want)
			return
		}
	}
}

// textOf concatenates all text under node.
func textOf(n markup.Node) string {
	switch n := n.(type) {
	case *markup.Text:
		return n.Content
	case *markup.Tag:
		var s string
		for _, c := range n.Children() {
			s += textOf(c)
		}
		return s
	}
	return ""
}

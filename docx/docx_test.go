package docx

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

const testStyles = `
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/>
  <w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:b/></w:rPr></w:style>
<w:style w:type="character" w:styleId="Plain"><w:rPr><w:b w:val="false"/></w:rPr></w:style>
<w:style w:type="character" w:styleId="Zero"><w:rPr><w:b w:val="0"/><w:b/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Normal"/>
`

func TestRead_Paragraphs(t *testing.T) {
	body := TestText("  first  ", "") +
		TestText("heading", `<w:pStyle w:val="Heading1"/><w:jc w:val="right"/>`) +
		`<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr>` +
		`<w:r><w:rPr><w:rStyle w:val="Plain"/><w:b/></w:rPr><w:t>a</w:t></w:r>` +
		`<w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t xml:space="preserve"> b</w:t></w:r></w:p>` +
		TestDrawing("rId1", "rId1") +
		TestPict("rId2") +
		`<w:p/>`

	data := TestContainer(t, body, testStyles,
		TestImage{ID: "rId1", Name: "image1.png", Data: []byte("one")},
		TestImage{ID: "rId2", Name: "image2.png", Data: []byte("two")},
	)

	d, err := Read(data, "/tmp/input/My Article.docx", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if d.Name != "My Article" {
		t.Errorf("Name = %q, want %q", d.Name, "My Article")
	}
	if len(d.Paragraphs) != 6 {
		t.Fatalf("got %d paragraphs, want 6", len(d.Paragraphs))
	}
	for i, p := range d.Paragraphs {
		if p.Ordinal != i {
			t.Errorf("paragraph %d has ordinal %d", i, p.Ordinal)
		}
	}

	p := d.Paragraphs[0]
	if p.Text != "first" || p.Bold != nil || p.Align != "" || len(p.StyleRefs) != 0 {
		t.Errorf("plain paragraph = %+v", p)
	}

	p = d.Paragraphs[1]
	if p.Align != "right" {
		t.Errorf("paragraph alignment = %q, want right", p.Align)
	}
	if len(p.StyleRefs) != 1 || p.StyleRefs[0] != (StyleRef{ID: "Heading1", Kind: ParagraphStyle}) {
		t.Errorf("style refs = %+v", p.StyleRefs)
	}

	p = d.Paragraphs[2]
	if p.Text != "a b" {
		t.Errorf("text = %q, want %q", p.Text, "a b")
	}
	if p.Bold == nil || *p.Bold {
		t.Errorf("last bold flag should be explicit false, got %v", p.Bold)
	}
	want := []StyleRef{{ID: "Normal", Kind: ParagraphStyle}, {ID: "Plain", Kind: RunStyle}}
	if len(p.StyleRefs) != len(want) || p.StyleRefs[0] != want[0] || p.StyleRefs[1] != want[1] {
		t.Errorf("style refs = %+v, want %+v", p.StyleRefs, want)
	}

	p = d.Paragraphs[3]
	if len(p.ImageRefs) != 2 || p.ImageRefs[0] != "rId1" || p.ImageRefs[1] != "rId1" {
		t.Errorf("drawing refs = %v", p.ImageRefs)
	}
	if p = d.Paragraphs[4]; len(p.ImageRefs) != 1 || p.ImageRefs[0] != "rId2" {
		t.Errorf("pict refs = %v", p.ImageRefs)
	}
	if p = d.Paragraphs[5]; p.Text != "" || p.HasImages() {
		t.Errorf("empty paragraph = %+v", p)
	}
}

func ptrBool(v bool) *bool {
	return &v
}

func TestRead_Styles(t *testing.T) {
	d, err := Read(TestContainer(t, TestText("x", ""), testStyles), "a.docx", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	tests := []struct {
		id    string
		bold  *bool
		align string
	}{
		{id: "Heading1", bold: ptrBool(true), align: "center"},
		{id: "Plain", bold: ptrBool(false)},
		{id: "Zero", bold: ptrBool(true)},
		{id: "Normal"},
	}
	for _, tt := range tests {
		s, ok := d.Styles[tt.id]
		if !ok {
			t.Errorf("style %s not found", tt.id)
			continue
		}
		if (s.Bold == nil) != (tt.bold == nil) || (s.Bold != nil && *s.Bold != *tt.bold) {
			t.Errorf("style %s bold = %v, want %v", tt.id, s.Bold, tt.bold)
		}
		if s.Align != tt.align {
			t.Errorf("style %s align = %q, want %q", tt.id, s.Align, tt.align)
		}
	}
	if d.Styles["Heading1"].Name != "heading 1" {
		t.Errorf("style name = %q", d.Styles["Heading1"].Name)
	}
}

func TestRead_ImagesNaturalOrder(t *testing.T) {
	data := TestContainer(t, TestText("x", ""), "",
		TestImage{ID: "rId10", Name: "image10.png", Data: []byte("10")},
		TestImage{ID: "rId2", Name: "image2.png", Data: []byte("2")},
		TestImage{ID: "rId1", Name: "image1.jpeg", Data: []byte("1")},
	)
	d, err := Read(data, "a.docx", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var got []string
	for _, img := range d.Images {
		got = append(got, img.FileName())
	}
	want := []string{"image1.jpeg", "image2.png", "image10.png"}
	if len(got) != len(want) {
		t.Fatalf("images = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("images = %v, want %v", got, want)
			break
		}
	}

	img, ok := d.Image("rId2")
	if !ok || string(img.Data) != "2" {
		t.Errorf("Image(rId2) = %+v, %v", img, ok)
	}
	if _, ok := d.Image("rId3"); ok {
		t.Error("Image(rId3) found")
	}
	if len(d.Styles) != 0 {
		t.Errorf("styles without styles part = %v", d.Styles)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "article.docx")
	if err := os.WriteFile(path, TestContainer(t, TestText("hello", ""), ""), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := Open(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if d.Name != "article" || len(d.Paragraphs) != 1 || d.Paragraphs[0].Text != "hello" {
		t.Errorf("Open() = %+v", d)
	}
	if _, ok := d.Parts[PartDocument]; !ok {
		t.Error("raw document part not kept")
	}
}

func TestRead_Errors(t *testing.T) {
	log := zaptest.NewLogger(t)
	if _, err := Read([]byte("not a zip"), "a.docx", log); err == nil {
		t.Error("expected error for invalid container")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.docx"), log); err == nil {
		t.Error("expected error for missing file")
	}
}

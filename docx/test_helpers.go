package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// TestImage is a picture placed into container built by TestContainer.
type TestImage struct {
	ID   string
	Name string
	Data []byte
}

// TestContainer assembles minimal docx in memory. Body is inner XML of
// w:body, styles is inner XML of w:styles (part is omitted when empty).
func TestContainer(t testing.TB, body, styles string, images ...TestImage) []byte {
	t.Helper()

	const decl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	parts := map[string]string{
		"[Content_Types].xml": decl + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		PartDocument: decl + `<w:document xmlns:w="` + nsW + `" xmlns:r="` + nsR +
			`" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
			` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
			` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
			` xmlns:v="urn:schemas-microsoft-com:vml"><w:body>` + body + `</w:body></w:document>`,
	}
	if styles != "" {
		parts[PartStyles] = decl + `<w:styles xmlns:w="` + nsW + `">` + styles + `</w:styles>`
	}
	var rels strings.Builder
	rels.WriteString(decl + `<Relationships xmlns="` + nsRels + `">`)
	rels.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, img := range images {
		fmt.Fprintf(&rels, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s"/>`, img.ID, img.Name)
	}
	rels.WriteString(`</Relationships>`)
	parts[PartRels] = rels.String()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	write := func(name string, data []byte) {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	for name, content := range parts {
		write(name, []byte(content))
	}
	seen := make(map[string]bool)
	for _, img := range images {
		if seen[img.Name] {
			continue
		}
		seen[img.Name] = true
		write(mediaPrefix+img.Name, img.Data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close container: %v", err)
	}
	return buf.Bytes()
}

// TestText returns paragraph XML with a single run. Props is inner XML of
// w:pPr, may be empty.
func TestText(text, props string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	if props != "" {
		b.WriteString("<w:pPr>" + props + "</w:pPr>")
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">` + xmlEscape(text) + `</w:t></w:r></w:p>`)
	return b.String()
}

// TestDrawing returns paragraph XML embedding pictures through DrawingML.
func TestDrawing(ids ...string) string {
	var b strings.Builder
	b.WriteString("<w:p>")
	for _, id := range ids {
		b.WriteString(`<w:r><w:drawing><wp:inline><a:graphic><a:graphicData><pic:pic><pic:blipFill>`)
		b.WriteString(`<a:blip r:embed="` + id + `"/>`)
		b.WriteString(`</pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`)
	}
	b.WriteString("</w:p>")
	return b.String()
}

// TestPict returns paragraph XML embedding picture through legacy VML.
func TestPict(id string) string {
	return `<w:p><w:r><w:pict><v:shape><v:imagedata r:id="` + id + `"/></v:shape></w:pict></w:r></w:p>`
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

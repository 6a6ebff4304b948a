// Package docx reads the parts of a WordprocessingML container needed to
// code an article: paragraphs, styles and embedded pictures.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"htmlcoder/archive"
)

// Document is the parsed content of a docx container.
type Document struct {
	// Name is the source file name without extension.
	Name       string
	Paragraphs []Paragraph
	Styles     map[string]Style
	// Images are ordered naturally by part name (image2 before image10).
	Images []Image
	// Parts keeps raw XML parts for debug reports.
	Parts map[string][]byte
}

// Image returns picture by relationship id.
func (d *Document) Image(id string) (*Image, bool) {
	for i := range d.Images {
		if d.Images[i].ID == id {
			return &d.Images[i], true
		}
	}
	return nil, false
}

// Open reads and parses docx file.
func Open(path string, log *zap.Logger) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read docx: %w", err)
	}
	return Read(data, path, log)
}

// Read parses docx container from memory. Name is used to derive document
// name only.
func Read(data []byte, name string, log *zap.Logger) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unable to open docx container: %w", err)
	}

	parts := make(map[string][]byte)
	media := make(map[string][]byte)
	err = archive.WalkReader(zr, "word/", func(entry string, f *zip.File) error {
		switch {
		case entry == PartDocument, entry == PartStyles, entry == PartRels:
		case strings.HasPrefix(entry, mediaPrefix):
		default:
			return nil
		}
		data, err := archive.ReadEntry(f)
		if err != nil {
			return err
		}
		if strings.HasPrefix(entry, mediaPrefix) {
			media[entry] = data
		} else {
			parts[entry] = data
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read docx container: %w", err)
	}

	base := filepath.Base(name)
	d := &Document{
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Styles: make(map[string]Style),
		Parts:  parts,
	}

	content, ok := parts[PartDocument]
	if !ok {
		return nil, fmt.Errorf("docx container has no %s", PartDocument)
	}
	doc, err := readXML(content)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", PartDocument, err)
	}
	d.Paragraphs = parseParagraphs(doc)

	if content, ok := parts[PartStyles]; ok {
		doc, err := readXML(content)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", PartStyles, err)
		}
		d.Styles = parseStyles(doc, log)
	} else {
		log.Debug("Document has no styles part")
	}

	if content, ok := parts[PartRels]; ok {
		doc, err := readXML(content)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", PartRels, err)
		}
		for id, target := range parseImageRels(doc) {
			part := "word/" + target
			data, ok := media[part]
			if !ok {
				log.Warn("Image relationship points to missing part, ignoring", zap.String("id", id), zap.String("part", part))
				continue
			}
			d.Images = append(d.Images, Image{ID: id, Part: part, Data: data})
		}
	}
	slices.SortFunc(d.Images, func(a, b Image) int {
		switch {
		case a.Part == b.Part:
			return strings.Compare(a.ID, b.ID)
		case natural.Less(a.Part, b.Part):
			return -1
		default:
			return 1
		}
	})

	log.Debug("Docx parsed",
		zap.String("name", d.Name),
		zap.Int("paragraphs", len(d.Paragraphs)),
		zap.Int("styles", len(d.Styles)),
		zap.Int("images", len(d.Images)))

	return d, nil
}

func readXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("no root element")
	}
	return doc, nil
}

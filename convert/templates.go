package convert

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"htmlcoder/config"
	"htmlcoder/docx"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	// Name is source file name without extension.
	Name  string
	Title string
	Date  time.Time
	RunID string
	// Paragraphs and Images describe the source document.
	Paragraphs int
	Images     int
}

func newValues(d *docx.Document, runID string, now time.Time) Values {
	return Values{
		Name:       d.Name,
		Title:      d.Name,
		Date:       now,
		RunID:      runID,
		Paragraphs: len(d.Paragraphs),
		Images:     len(d.Images),
	}
}

func expandTemplate(values Values, name config.TemplateFieldName, field string) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return buf.String(), nil
}

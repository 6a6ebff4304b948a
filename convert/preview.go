package convert

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"htmlcoder/config"
	"htmlcoder/misc"
	"htmlcoder/state"
)

//go:embed preview.html.tmpl
var previewTemplate string

const previewTimeFormat = "2006-01-02 15:04:05"

var previewPage = template.Must(template.New("preview").Funcs(sprig.FuncMap()).Parse(previewTemplate))

type previewValues struct {
	App       string
	Title     string
	Src       string
	Timestamp string
	RunID     string
}

// writePreview produces page which shows article fragment in a frame of the
// publishing width. Fragment is referenced relative to the page.
func writePreview(previewName, outputName string, values Values, env *state.LocalEnv, log *zap.Logger) error {
	title := values.Title
	if tmpl := env.Cfg.Document.Preview.TitleTemplate; tmpl != "" {
		expanded, err := expandTemplate(values, config.PreviewTitleTemplateFieldName, tmpl)
		if err != nil {
			log.Warn("Unable to prepare preview title", zap.Error(err))
		} else if expanded != "" {
			title = expanded
		}
	}

	src, err := filepath.Rel(filepath.Dir(previewName), outputName)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := previewPage.Execute(buf, previewValues{
		App:       misc.GetAppName() + " " + misc.GetVersion(),
		Title:     title,
		Src:       "./" + filepath.ToSlash(src),
		Timestamp: values.Date.Format(previewTimeFormat),
		RunID:     values.RunID,
	}); err != nil {
		return fmt.Errorf("unable to expand preview template: %w", err)
	}
	if err := os.WriteFile(previewName, buf.Bytes(), 0644); err != nil {
		return err
	}
	env.Rpt.Store(fmt.Sprintf("preview/%s", filepath.Base(previewName)), previewName)
	log.Debug("Preview written", zap.String("file", previewName))
	return nil
}

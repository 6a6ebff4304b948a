package convert

import (
	"path"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"htmlcoder/config"
	"htmlcoder/state"
)

// buildOutputName returns base name (no directory, no extension) shared by
// article fragment and preview page. It uses either source file name or
// user-defined template, cleans up result and if requested transliterates
// it.
func buildOutputName(values Values, env *state.LocalEnv, log *zap.Logger) string {
	name := values.Name
	if tmpl := env.Cfg.Document.OutputNameTemplate; tmpl != "" {
		expanded, err := expandTemplate(values, config.OutputNameTemplateFieldName, tmpl)
		switch {
		case err != nil:
			log.Warn("Unable to prepare output filename", zap.Error(err))
		case strings.TrimSpace(expanded) == "":
			log.Warn("Output filename template produced empty name, using source name")
		default:
			name = expanded
		}
	}
	return cleanName(name, env.Cfg.Document.FileNameTransliterate)
}

// cleanName flattens any path the template may have produced, fragment and
// preview page must stay next to each other.
func cleanName(name string, transliterate bool) string {
	name = strings.TrimSpace(path.Base(strings.ReplaceAll(name, "\\", "/")))
	if transliterate {
		name = slug.Make(name)
	}
	return config.CleanFileName(name)
}

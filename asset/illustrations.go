package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"htmlcoder/coder"
	"htmlcoder/config"
	"htmlcoder/utils/images"
)

// LoadIllustrations returns picture bytes for every built-in illustration.
// Configured files take precedence, otherwise default SVG is rasterized to
// PNG of configured width. SVG files given in configuration are rasterized
// the same way.
func LoadIllustrations(cfg *config.IllustrationsConfig, defaults map[string][]byte, log *zap.Logger) (map[string][]byte, error) {
	overrides := map[string]string{
		coder.IllustrationEditorNote:   cfg.EditorNotePath,
		coder.IllustrationReporterNote: cfg.ReporterNotePath,
	}

	res := make(map[string][]byte, len(defaults))
	for name, svg := range defaults {
		if path := overrides[name]; path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("unable to read illustration %s: %w", name, err)
			}
			if strings.EqualFold(filepath.Ext(path), ".svg") {
				if data, err = images.RasterizeSVGToPNG(data, cfg.Width, 0); err != nil {
					return nil, fmt.Errorf("unable to rasterize illustration %s: %w", name, err)
				}
			}
			log.Debug("Using configured illustration", zap.String("name", name), zap.String("path", path))
			res[name] = data
			continue
		}
		data, err := images.RasterizeSVGToPNG(svg, cfg.Width, 0)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize default illustration %s: %w", name, err)
		}
		res[name] = data
	}
	return res, nil
}

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"htmlcoder/asset"
	"htmlcoder/coder"
	"htmlcoder/config"
	"htmlcoder/docx"
	"htmlcoder/markup"
	"htmlcoder/state"
)

// srcDir keeps article fragments, preview pages live one level up.
const srcDir = "src"

// pipeline holds everything shared by documents of a single run.
type pipeline struct {
	log           *zap.Logger
	env           *state.LocalEnv
	styles        markup.StyleTable
	illustrations map[string][]byte
	resolver      *asset.Resolver
	cache         *asset.Cache
}

func newPipeline(env *state.LocalEnv, dst string, log *zap.Logger) (*pipeline, error) {
	p := &pipeline{log: log, env: env}

	sheet := markup.DefaultStylesheet()
	if path := env.Cfg.Document.StylesheetPath; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read stylesheet from %q: %w", path, err)
		}
		sheet = data
		if err := env.Rpt.StoreCopy("config/stylesheet.css", path); err != nil {
			log.Warn("Unable to store stylesheet in debug report", zap.Error(err))
		}
	}
	p.styles = markup.ParseStyleTable(sheet, log)
	if missing := p.styles.Missing(); len(missing) > 0 {
		log.Warn("Stylesheet does not define some presentation classes", zap.Strings("classes", missing))
	}

	var err error
	if p.illustrations, err = asset.LoadIllustrations(&env.Cfg.Document.Illustrations, env.DefaultIllustrations, log); err != nil {
		return nil, err
	}

	host, err := p.newHost(&env.Cfg.Assets, dst)
	if err != nil {
		return nil, err
	}
	p.resolver = asset.NewResolver(host, p.cache, asset.PrepareOptions{
		MaxWidth:    env.Cfg.Document.Images.MaxWidth,
		JPEGQuality: env.Cfg.Document.Images.JPEGQuality,
	}, log)
	return p, nil
}

// newHost selects image host. Links cache is only used for remote hosts:
// local files belong to particular destination and are cheap to rewrite.
func (p *pipeline) newHost(cfg *config.AssetsConfig, dst string) (asset.Host, error) {
	switch cfg.Host {
	case config.HostKindLocal:
		dir := cfg.Local.Directory
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(dst, dir)
		}
		rel, err := filepath.Rel(filepath.Join(dst, srcDir), dir)
		if err != nil {
			return nil, fmt.Errorf("unable to locate images directory %q: %w", dir, err)
		}
		return asset.NewLocalHost(dir, rel, cfg.Local.BaseURL, p.log), nil
	case config.HostKindSmms:
		cache, err := asset.OpenCache(cfg.CachePath, cfg.CacheTTL, p.log)
		if err != nil {
			return nil, err
		}
		if _, err := cache.Purge(); err != nil {
			p.log.Warn("Unable to purge links cache", zap.Error(err))
		}
		p.cache = cache
		return asset.NewSMMSHost(&cfg.SMMS, p.log), nil
	}
	return nil, fmt.Errorf("unsupported assets host %s", cfg.Host)
}

func (p *pipeline) Close() error {
	return p.cache.Close()
}

// processDocument converts single docx file into article fragment under
// <dst>/src and preview page under <dst>.
func (p *pipeline) processDocument(ctx context.Context, path, dst string) (rerr error) {
	env, log := p.env, p.log

	var outputName string

	log.Info("Conversion starting", zap.String("from", path))
	defer func(start time.Time) {
		// NOTE: image libraries may panic on broken pictures, when directory
		// is processed we do not want to stop.
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	d, err := docx.Open(path, log)
	if err != nil {
		return fmt.Errorf("unable to parse docx source (%s): %w", path, err)
	}
	if env.Rpt != nil {
		for name, data := range d.Parts {
			env.Rpt.StoreData(fmt.Sprintf("source/%s/%s", d.Name, name), data)
		}
	}

	values := newValues(d, env.RunID.String(), time.Now())
	name := buildOutputName(values, env, log)
	outputName = filepath.Join(dst, srcDir, name+".html")
	previewName := filepath.Join(dst, name+".html")

	preview := !env.NoPreview && env.Cfg.Document.Preview.Enable

	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if preview {
		if err := prepareOutput(previewName, env.Overwrite, log); err != nil {
			return err
		}
	}

	assets, err := p.resolver.ResolveDocument(ctx, d, p.illustrations)
	if err != nil {
		return fmt.Errorf("unable to publish images: %w", err)
	}

	res, err := coder.BuildDocument(d, assets, coder.Options{
		Title:     values.Title,
		Styles:    p.styles,
		PoweredBy: env.Cfg.Document.PoweredBy,
	}, log)
	if err != nil {
		return fmt.Errorf("unable to build article: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("article/%s.tree.txt", d.Name), []byte(markup.Dump(res.Document)))
	}

	if err := os.WriteFile(outputName, []byte(res.HTML), 0644); err != nil {
		return fmt.Errorf("unable to write article: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("article/%s.html", d.Name), outputName)

	minutes, count, _ := res.Params.ReadingTime(res.Counters)
	log.Info("Article built",
		zap.String("file", outputName), zap.Int("reading_minutes", minutes), zap.Int("counted", count))

	if !preview {
		return nil
	}
	if err := writePreview(previewName, outputName, values, env, log); err != nil {
		return fmt.Errorf("unable to write preview: %w", err)
	}
	return nil
}

// prepareOutput makes sure file can be written.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return os.Remove(name)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"htmlcoder/state"
)

const docxExt = ".docx"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite, env.NoPreview, env.Latest = cmd.Bool("overwrite"), cmd.Bool("nopreview"), cmd.Bool("latest")

	p, err := newPipeline(env, dst, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, p.Close())
	}()

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("run", env.RunID))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("uploaded", p.resolver.Uploaded()))
	}(time.Now())

	return process(ctx, p, src, dst, env.Latest, log)
}

// process handles the core conversion logic independently of CLI framework.
// Single file errors are returned, when directory is processed failures are
// logged and the rest of documents is still converted.
func process(ctx context.Context, p *pipeline, src, dst string, latest bool, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsRegular() {
		if !isDocument(src) {
			return fmt.Errorf("input was not recognized as docx document (%s)", src)
		}
		return p.processDocument(ctx, src, dst)
	}
	if !fi.IsDir() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	files, err := findDocuments(src, latest)
	if err != nil {
		return fmt.Errorf("unable to process directory: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no docx documents found in %s", src)
	}

	failed := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processDocument(ctx, file, dst); err != nil {
			failed++
			log.Error("Unable to process file", zap.String("file", file), zap.Error(err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

// findDocuments returns docx files directly under dir in natural order, or
// just the most recently modified one when latest is requested.
func findDocuments(dir string, latest bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var (
		files      []string
		newest     string
		newestTime time.Time
	)
	for _, e := range entries {
		if !e.Type().IsRegular() || !isDocument(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		files = append(files, path)
		if !latest {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
	}
	if latest {
		if newest == "" {
			return nil, nil
		}
		return []string{newest}, nil
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}

// isDocument filters by extension skipping lock files word leaves next to
// opened documents.
func isDocument(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(name), docxExt) && !strings.HasPrefix(name, "~$")
}

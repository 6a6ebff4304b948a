package asset

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// Host publishes prepared pictures and returns address under which article
// readers will see them.
type Host interface {
	// Name identifies host in links cache, links published by one host are
	// never offered for another.
	Name() string
	Upload(ctx context.Context, hash string, img *Prepared) (string, error)
}

// LocalHost stores pictures as <hash><ext> files in a directory. Produced
// links are either relative to article fragment or rooted at BaseURL.
type LocalHost struct {
	log     *zap.Logger
	dir     string
	relDir  string
	baseURL string
}

// NewLocalHost returns host writing into dir. When baseURL is empty links
// are built from relDir, path of dir as seen from the article fragment.
func NewLocalHost(dir, relDir, baseURL string, log *zap.Logger) *LocalHost {
	return &LocalHost{
		log:     log.Named("local"),
		dir:     dir,
		relDir:  filepath.ToSlash(relDir),
		baseURL: baseURL,
	}
}

func (h *LocalHost) Name() string {
	if h.baseURL != "" {
		return "local:" + h.baseURL
	}
	return "local:" + h.relDir
}

func (h *LocalHost) Upload(_ context.Context, hash string, img *Prepared) (string, error) {
	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return "", fmt.Errorf("unable to create images directory: %w", err)
	}
	name := hash + img.Ext
	fname := filepath.Join(h.dir, name)

	if _, err := os.Stat(fname); err == nil {
		h.log.Debug("Image already stored", zap.String("file", fname))
	} else if err := os.WriteFile(fname, img.Data, 0644); err != nil {
		return "", fmt.Errorf("unable to store image: %w", err)
	} else {
		h.log.Debug("Image stored", zap.String("file", fname), zap.Int("size", len(img.Data)))
	}

	if h.baseURL != "" {
		return url.JoinPath(h.baseURL, name)
	}
	return path.Join(h.relDir, name), nil
}

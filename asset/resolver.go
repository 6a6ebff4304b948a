package asset

import (
	"context"
	"fmt"
	"maps"
	"slices"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"htmlcoder/coder"
	"htmlcoder/docx"
)

// Source is a picture to be published and found later under Ref.
type Source struct {
	Ref  string
	Name string
	Data []byte
}

// Resolver publishes pictures through a host. Every distinct content is
// prepared and uploaded at most once per resolver, persistent cache (when
// present) extends that across program runs.
type Resolver struct {
	log   *zap.Logger
	host  Host
	cache *Cache
	opts  PrepareOptions
	memo  *gocache.Cache

	uploaded int
}

// NewResolver returns resolver for host. Cache may be nil.
func NewResolver(host Host, cache *Cache, opts PrepareOptions, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		log:   log.Named("asset"),
		host:  host,
		cache: cache,
		opts:  opts,
		memo:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Uploaded returns number of pictures actually sent to the host.
func (r *Resolver) Uploaded() int {
	return r.uploaded
}

// Resolve publishes all sources and returns complete lookup table. Any
// failure is fatal, partial tables are never returned.
func (r *Resolver) Resolve(ctx context.Context, sources []Source) (coder.Assets, error) {
	assets := make(coder.Assets, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := r.resolve(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("unable to publish %s: %w", src.Name, err)
		}
		assets[src.Ref] = a
	}
	return assets, nil
}

// ResolveDocument publishes document pictures (keyed by relationship id) and
// illustrations (keyed by name).
func (r *Resolver) ResolveDocument(ctx context.Context, d *docx.Document, illustrations map[string][]byte) (coder.Assets, error) {
	sources := make([]Source, 0, len(d.Images)+len(illustrations))
	for _, img := range d.Images {
		sources = append(sources, Source{Ref: img.ID, Name: img.Part, Data: img.Data})
	}

	for _, name := range slices.Sorted(maps.Keys(illustrations)) {
		sources = append(sources, Source{Ref: name, Name: "illustration " + name, Data: illustrations[name]})
	}
	return r.Resolve(ctx, sources)
}

func (r *Resolver) resolve(ctx context.Context, src Source) (coder.Asset, error) {
	hash := Hash(src.Data)
	if v, ok := r.memo.Get(hash); ok {
		return coder.Asset{URL: v.(string), Hash: hash}, nil
	}

	link, err := r.publish(ctx, hash, src)
	if err != nil {
		return coder.Asset{}, err
	}
	r.memo.Set(hash, link, gocache.NoExpiration)
	return coder.Asset{URL: link, Hash: hash}, nil
}

func (r *Resolver) publish(ctx context.Context, hash string, src Source) (string, error) {
	host := r.host.Name()

	if r.cache != nil {
		link, ok, err := r.cache.Get(host, hash)
		if err != nil {
			return "", err
		}
		if ok {
			r.log.Debug("Image link found in cache", zap.String("image", src.Name), zap.String("url", link))
			return link, nil
		}
	}

	img, err := Prepare(src.Data, r.opts, r.log)
	if err != nil {
		return "", err
	}

	r.log.Info("Publishing image", zap.String("image", src.Name), zap.String("host", host))
	link, err := r.host.Upload(ctx, hash, img)
	if err != nil {
		return "", err
	}
	r.uploaded++

	if r.cache != nil {
		if err := r.cache.Put(host, hash, link); err != nil {
			return "", err
		}
	}
	return link, nil
}

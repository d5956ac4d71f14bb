// Package repodata fetches and indexes channel metadata.
package repodata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	repoDataFile     = "repodata.json"
	repoDataZstdFile = "repodata.json.zst"
	responseTimeout  = 60 * time.Second
)

var _ ports.RepositoryFetcher = (*Fetcher)(nil)

// errVariantMissing marks a 404 for an optional repodata variant.
var errVariantMissing = errors.New("repodata variant not published")

// Fetcher implements ports.RepositoryFetcher over HTTP with an on-disk cache.
type Fetcher struct {
	client      *http.Client
	cache       *diskCache
	concurrency int
	logger      ports.Logger
	tracer      ports.Tracer
}

// NewHTTPClient builds the client shared by fetches and downloads. Every request goes
// through the authentication middleware, and file:// URLs are served from disk.
func NewHTTPClient(store *AuthStore) *http.Client {
	base, ok := http.DefaultTransport.(*http.Transport)
	var transport *http.Transport
	if ok {
		transport = base.Clone()
	} else {
		transport = &http.Transport{}
	}
	transport.ResponseHeaderTimeout = responseTimeout
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	return &http.Client{
		Transport: &AuthTransport{Base: transport, Store: store},
	}
}

// NewFetcher creates a Fetcher. A concurrency below one means one fetch per CPU.
func NewFetcher(
	client *http.Client,
	cacheDir string,
	concurrency int,
	logger ports.Logger,
	tracer ports.Tracer,
) *Fetcher {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	return &Fetcher{
		client:      client,
		cache:       newDiskCache(cacheDir),
		concurrency: concurrency,
		logger:      logger,
		tracer:      tracer,
	}
}

// Fetch downloads the repodata of every channel for the requested platforms and noarch.
func (f *Fetcher) Fetch(
	ctx context.Context,
	channels []domain.Channel,
	platforms ...domain.Platform,
) (*http.Client, ports.MetadataIndex, error) {
	ctx, span := f.tracer.Start(ctx, "fetch repodata")
	defer span.End()

	keys := metadataKeys(domain.NewChannelSet(channels...), withNoArch(platforms))
	span.SetAttribute("repodata.count", len(keys))

	index := make(ports.MetadataIndex, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, key := range keys {
		g.Go(func() error {
			rd, err := f.fetchOne(gctx, key)
			if err != nil {
				return err
			}
			index[i] = rd
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, nil, err
	}
	return f.client, index, nil
}

func withNoArch(platforms []domain.Platform) []domain.Platform {
	if len(platforms) == 0 {
		platforms = []domain.Platform{domain.CurrentPlatform()}
	}

	seen := make(map[domain.Platform]struct{}, len(platforms)+1)
	out := make([]domain.Platform, 0, len(platforms)+1)
	for _, p := range append(platforms, domain.PlatformNoArch) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func metadataKeys(set *domain.ChannelSet, platforms []domain.Platform) []domain.MetadataKey {
	keys := make([]domain.MetadataKey, 0, set.Len()*len(platforms))
	for _, c := range set.Channels() {
		for _, p := range platforms {
			keys = append(keys, domain.MetadataKey{Channel: c, Platform: p})
		}
	}
	return keys
}

func (f *Fetcher) fetchOne(ctx context.Context, key domain.MetadataKey) (*SparseRepoData, error) {
	base := key.String()
	variants := []string{base + "/" + repoDataZstdFile, base + "/" + repoDataFile}
	if key.Channel.IsLocal() {
		variants = variants[1:]
	}

	var lastErr error
	for i, u := range variants {
		data, err := f.fetchVariant(ctx, key, u, i < len(variants)-1)
		if errors.Is(err, errVariantMissing) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		return NewSparseRepoData(key, data)
	}
	return nil, fetchError(key, base, lastErr)
}

func (f *Fetcher) fetchVariant(ctx context.Context, key domain.MetadataKey, url string, optional bool) ([]byte, error) {
	cached, etag, err := f.cache.load(url)
	if err != nil {
		f.logger.Warn(fmt.Sprintf("ignoring unreadable repodata cache for %s: %v", key, err))
		cached, etag = nil, ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fetchError(key, url, err)
	}
	if cached != nil && etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetchError(key, url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		return cached, nil
	case resp.StatusCode == http.StatusNotFound && optional:
		return nil, errVariantMissing
	case resp.StatusCode != http.StatusOK:
		return nil, fetchError(key, url, zerr.With(zerr.New("unexpected status "+resp.Status), "status_code", resp.StatusCode))
	}

	data, err := readBody(resp.Body, url)
	if err != nil {
		return nil, fetchError(key, url, err)
	}

	if !key.Channel.IsLocal() {
		if err := f.cache.store(url, data, resp.Header.Get("ETag")); err != nil {
			f.logger.Warn(fmt.Sprintf("could not write repodata cache for %s: %v", key, err))
		}
	}
	return data, nil
}

func readBody(r io.Reader, url string) ([]byte, error) {
	if !strings.HasSuffix(url, repoDataZstdFile) {
		return io.ReadAll(r)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

func fetchError(key domain.MetadataKey, url string, cause error) error {
	err := zerr.Wrap(errors.Join(domain.ErrNetwork, cause), "failed to fetch repodata for "+key.String())
	err = zerr.With(err, "channel", key.Channel.String())
	err = zerr.With(err, "platform", key.Platform.String())
	return zerr.With(err, "url", url)
}

// Package installer downloads conda packages and links them into environment prefixes.
package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/burrow/internal/adapters/fs"
	"go.trai.ch/burrow/internal/adapters/prefix"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer on top of a shared package cache.
type Installer struct {
	pkgsDir     string
	store       *prefix.Store
	walker      *fs.Walker
	concurrency int
	logger      ports.Logger
	tracer      ports.Tracer
	now         func() time.Time

	// extracting serializes extraction per archive across concurrent installs.
	extracting sync.Map
}

// New creates an Installer caching archives below pkgsDir. A concurrency below one
// uses the number of CPUs.
func New(
	pkgsDir string,
	store *prefix.Store,
	walker *fs.Walker,
	concurrency int,
	logger ports.Logger,
	tracer ports.Tracer,
) *Installer {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}
	return &Installer{
		pkgsDir:     pkgsDir,
		store:       store,
		walker:      walker,
		concurrency: concurrency,
		logger:      logger,
		tracer:      tracer,
		now:         time.Now,
	}
}

type unpacked struct {
	archive   string
	extracted string
}

// Install replaces the contents of req.Prefix with req.Records. Records are linked in
// the order given, which the resolver guarantees is dependency order.
func (i *Installer) Install(ctx context.Context, req ports.InstallRequest) ([]domain.PrefixRecord, error) {
	ctx, span := i.tracer.Start(ctx, "install packages")
	defer span.End()
	span.SetAttribute("prefix", req.Prefix)
	span.SetAttribute("packages", len(req.Records))

	// The previous installation stays untouched until every archive is unpacked.
	pkgs, err := i.fetchAll(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := i.clearPrefix(ctx, req.Prefix); err != nil {
		span.RecordError(err)
		return nil, err
	}

	records := make([]domain.PrefixRecord, 0, len(req.Records))
	for idx := range req.Records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec := &req.Records[idx]
		files, err := i.linkPackage(pkgs[idx].extracted, req.Prefix)
		if err != nil {
			err = zerr.With(
				zerr.Wrap(errors.Join(domain.ErrLinkFailed, err), "could not link "+rec.DistName()),
				"prefix", req.Prefix,
			)
			span.RecordError(err)
			return nil, err
		}

		pr := domain.PrefixRecord{
			RepoDataRecord:         *rec,
			Files:                  files,
			ExtractedPackageDir:    pkgs[idx].extracted,
			PackageTarballFullPath: pkgs[idx].archive,
			InstalledAt:            i.now().UnixMilli(),
		}
		if req.Spec.HasName() && rec.Name.Equal(req.Spec.Name) {
			pr.RequestedSpec = req.Spec.String()
		}

		if err := i.store.WriteRecord(req.Prefix, &pr); err != nil {
			span.RecordError(err)
			return nil, err
		}
		records = append(records, pr)
	}

	return records, nil
}

// clearPrefix removes the files and records of a previous installation.
func (i *Installer) clearPrefix(ctx context.Context, prefixDir string) error {
	existing, err := i.store.InstalledPackages(ctx, prefixDir)
	if err != nil {
		return err
	}
	for _, rec := range existing {
		if err := unlinkFiles(prefixDir, rec.Files); err != nil {
			return zerr.With(
				zerr.Wrap(errors.Join(domain.ErrLinkFailed, err), "could not remove "+rec.DistName()),
				"prefix", prefixDir,
			)
		}
	}
	return i.store.RemoveRecords(prefixDir)
}

// fetchAll downloads and extracts every record concurrently. Results keep the record order.
func (i *Installer) fetchAll(ctx context.Context, req ports.InstallRequest) ([]unpacked, error) {
	client := req.Client
	if client == nil {
		return nil, zerr.Wrap(domain.ErrDownloadFailed, "no http client provided")
	}

	results := make([]unpacked, len(req.Records))
	var transferred atomic.Uint64
	var downloaded atomic.Int64

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx := range req.Records {
		rec := &req.Records[idx]
		g.Go(func() error {
			stem, ok := archiveStem(rec.FileName)
			if !ok {
				return zerr.With(
					zerr.Wrap(domain.ErrUnsupportedArchive, "unsupported package archive"),
					"file", rec.FileName,
				)
			}

			archive, fresh, err := i.fetchArchive(groupCtx, client, rec)
			if err != nil {
				return err
			}
			if fresh {
				downloaded.Add(1)
				transferred.Add(rec.Size)
			}

			extracted := filepath.Join(i.pkgsDir, stem)
			if err := i.extract(archive, extracted); err != nil {
				return err
			}
			results[idx] = unpacked{archive: archive, extracted: extracted}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := downloaded.Load(); n > 0 {
		i.logger.Info(fmt.Sprintf("downloaded %d packages (%s)", n, humanize.Bytes(transferred.Load())))
	}
	return results, nil
}

func (i *Installer) extract(archive, dest string) error {
	v, _ := i.extracting.LoadOrStore(dest, &sync.Mutex{})
	mu, _ := v.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()
	return extractArchive(archive, dest)
}

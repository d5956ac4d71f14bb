package app

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"go.trai.ch/burrow/internal/adapters/telemetry"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	// Channels overrides the configured default channels.
	Channels []string
	// Platform overrides the platform to fetch metadata for.
	Platform string
	// Verbose reports the duration of every fetch, resolve and install step.
	Verbose bool
}

// InstallResult describes one installed package.
type InstallResult struct {
	Record *domain.PrefixRecord
	Prefix string
	Shims  []string
}

// Install installs every spec into its own environment. Specs are installed concurrently;
// the first failure cancels the others.
func (a *App) Install(ctx context.Context, rawSpecs []string, opts InstallOptions) ([]InstallResult, error) {
	if opts.Verbose {
		shutdown := telemetry.Install(telemetry.NewBridge(a.logger))
		defer func() {
			_ = shutdown(context.WithoutCancel(ctx))
		}()
	}

	specs, err := parseSpecs(rawSpecs)
	if err != nil {
		return nil, err
	}

	channels, err := a.channels(opts.Channels, specs)
	if err != nil {
		return nil, err
	}

	var platforms []domain.Platform
	if opts.Platform != "" {
		p, err := domain.ParsePlatform(opts.Platform)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, p)
	}

	binDir, err := a.dirs.Ensure(ctx, domain.ShimDir{})
	if err != nil {
		return nil, err
	}

	client, index, err := a.fetcher.Fetch(ctx, channels, platforms...)
	if err != nil {
		return nil, err
	}

	results := make([]InstallResult, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			res, err := a.installOne(gctx, client, index, binDir, spec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		msg := fmt.Sprintf("installed %s %s", res.Record.Name.Source(), res.Record.Version)
		if len(res.Shims) > 0 {
			msg += fmt.Sprintf(" (exposed %s)", strings.Join(res.Shims, ", "))
		}
		a.logger.Info(msg)
	}
	return results, nil
}

func (a *App) installOne(
	ctx context.Context,
	client *http.Client,
	index ports.MetadataIndex,
	binDir string,
	spec domain.MatchSpec,
) (InstallResult, error) {
	records, err := a.resolver.Resolve(ctx, spec, index)
	if err != nil {
		return InstallResult{}, err
	}

	prefix, err := a.dirs.Ensure(ctx, domain.EnvDir{Package: spec.Name})
	if err != nil {
		return InstallResult{}, err
	}

	installed, err := a.installer.Install(ctx, ports.InstallRequest{
		Client:  client,
		Prefix:  prefix,
		Records: records,
		Spec:    spec,
	})
	if err != nil {
		return InstallResult{}, err
	}

	var requested *domain.PrefixRecord
	for i := range installed {
		if installed[i].Name.Equal(spec.Name) {
			requested = &installed[i]
			break
		}
	}
	if requested == nil {
		return InstallResult{}, zerr.With(
			zerr.Wrap(domain.ErrNotFoundInPrefix, "could not find "+spec.Name.Source()+" in prefix"),
			"prefix", prefix,
		)
	}

	shims, err := a.shims.WriteShims(ctx, binDir, prefix, requested)
	if err != nil {
		return InstallResult{}, err
	}

	return InstallResult{Record: requested, Prefix: prefix, Shims: shims}, nil
}

// parseSpecs parses the requested specs and rejects nameless and duplicate requests.
func parseSpecs(raw []string) ([]domain.MatchSpec, error) {
	if len(raw) == 0 {
		return nil, domain.ErrNoPackagesSpecified
	}

	specs := make([]domain.MatchSpec, 0, len(raw))
	seen := make(map[string]string, len(raw))
	for _, s := range raw {
		spec, err := domain.ParseMatchSpec(s)
		if err != nil {
			return nil, err
		}
		if !spec.HasName() {
			return nil, zerr.With(
				zerr.Wrap(domain.ErrMissingName, "could not find package name in MatchSpec "+s),
				"spec", s,
			)
		}

		key := spec.Name.Normalized()
		if prev, ok := seen[key]; ok {
			err := zerr.Wrap(domain.ErrDuplicatePackage, "package "+spec.Name.Source()+" is requested more than once")
			return nil, zerr.With(zerr.With(err, "first", prev), "second", s)
		}
		seen[key] = s
		specs = append(specs, spec)
	}
	return specs, nil
}

// channels returns the channels to fetch: the explicit ones or the configured defaults,
// followed by any channel named inside a spec.
func (a *App) channels(explicit []string, specs []domain.MatchSpec) ([]domain.Channel, error) {
	names := explicit
	if len(names) == 0 {
		names = a.config.DefaultChannels
	}
	if len(names) == 0 {
		names = []string{domain.DefaultChannel}
	}

	names = slices.Clone(names)
	for _, spec := range specs {
		if spec.Channel != "" {
			names = append(names, spec.Channel)
		}
	}

	channels := make([]domain.Channel, 0, len(names))
	for _, name := range names {
		c, err := domain.ParseChannel(name, a.config.ChannelAlias)
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, nil
}

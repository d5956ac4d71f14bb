package app_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/app"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/core/ports"
	"go.trai.ch/burrow/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var testRoot = filepath.Join("/home", "user", ".burrow")

type fixture struct {
	dirs      *mocks.MockInstallDirectories
	fetcher   *mocks.MockRepositoryFetcher
	resolver  *mocks.MockDependencyResolver
	installer *mocks.MockInstaller
	shims     *mocks.MockShimWriter
	locator   *mocks.MockPackageLocator
	logger    *mocks.MockLogger
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		dirs:      mocks.NewMockInstallDirectories(ctrl),
		fetcher:   mocks.NewMockRepositoryFetcher(ctrl),
		resolver:  mocks.NewMockDependencyResolver(ctrl),
		installer: mocks.NewMockInstaller(ctrl),
		shims:     mocks.NewMockShimWriter(ctrl),
		locator:   mocks.NewMockPackageLocator(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.app = app.New(
		domain.NewLayout(testRoot),
		domain.DefaultConfig(),
		f.dirs,
		f.fetcher,
		f.resolver,
		f.installer,
		f.shims,
		f.locator,
		f.logger,
	)
	return f
}

func repoRecord(name, version string) domain.RepoDataRecord {
	return domain.RepoDataRecord{
		PackageRecord: domain.PackageRecord{
			Name:    domain.MustPackageName(name),
			Version: domain.MustParseVersion(version),
			Build:   "0",
		},
		FileName: name + "-" + version + "-0.conda",
		Channel:  "https://conda.anaconda.org/conda-forge",
	}
}

func installed(records []domain.RepoDataRecord, spec domain.MatchSpec) []domain.PrefixRecord {
	out := make([]domain.PrefixRecord, 0, len(records))
	for _, r := range records {
		pr := domain.PrefixRecord{RepoDataRecord: r, Files: []string{"bin/" + r.Name.Normalized()}}
		if r.Name.Equal(spec.Name) {
			pr.RequestedSpec = spec.String()
		}
		out = append(out, pr)
	}
	return out
}

func TestInstall_InstallsEverySpec(t *testing.T) {
	f := newFixture(t)
	client := &http.Client{}
	index := ports.MetadataIndex{}
	binDir := filepath.Join(testRoot, "bin")

	solved := map[string][]domain.RepoDataRecord{
		"ripgrep": {repoRecord("libgcc-ng", "13.2.0"), repoRecord("ripgrep", "14.1.0")},
		"bat":     {repoRecord("bat", "0.24.0")},
	}

	f.dirs.EXPECT().Ensure(gomock.Any(), domain.ShimDir{}).Return(binDir, nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Len(1)).DoAndReturn(
		func(_ context.Context, channels []domain.Channel, platforms ...domain.Platform) (*http.Client, ports.MetadataIndex, error) {
			assert.Equal(t, "conda-forge", channels[0].Name)
			assert.Empty(t, platforms)
			return client, index, nil
		})
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, spec domain.MatchSpec, _ ports.MetadataIndex) ([]domain.RepoDataRecord, error) {
			return solved[spec.Name.Normalized()], nil
		})
	f.dirs.EXPECT().Ensure(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, dir domain.InstallDir) (string, error) {
			env, ok := dir.(domain.EnvDir)
			require.True(t, ok)
			return filepath.Join(testRoot, "envs", env.Package.Normalized()), nil
		})
	f.installer.EXPECT().Install(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, req ports.InstallRequest) ([]domain.PrefixRecord, error) {
			assert.Same(t, client, req.Client)
			assert.Equal(t, filepath.Join(testRoot, "envs", req.Spec.Name.Normalized()), req.Prefix)
			return installed(req.Records, req.Spec), nil
		})
	f.shims.EXPECT().WriteShims(gomock.Any(), binDir, gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, _, _ string, rec *domain.PrefixRecord) ([]string, error) {
			return []string{rec.Name.Normalized()}, nil
		})
	f.logger.EXPECT().Info("installed ripgrep 14.1.0 (exposed ripgrep)")
	f.logger.EXPECT().Info("installed bat 0.24.0 (exposed bat)")

	results, err := f.app.Install(context.Background(), []string{"ripgrep", "bat"}, app.InstallOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "ripgrep", results[0].Record.Name.Normalized())
	assert.Equal(t, "ripgrep", results[0].Record.RequestedSpec)
	assert.Equal(t, []string{"bat"}, results[1].Shims)
}

func TestInstall_ChannelsAndPlatform(t *testing.T) {
	f := newFixture(t)

	f.dirs.EXPECT().Ensure(gomock.Any(), domain.ShimDir{}).Return(filepath.Join(testRoot, "bin"), nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Len(2), domain.PlatformOSXArm64).DoAndReturn(
		func(_ context.Context, channels []domain.Channel, _ ...domain.Platform) (*http.Client, ports.MetadataIndex, error) {
			assert.Equal(t, "bioconda", channels[0].Name)
			assert.Equal(t, "https://repo.example.com/tools", channels[1].String())
			return nil, nil, zerr.Wrap(domain.ErrNetwork, "offline")
		})

	_, err := f.app.Install(context.Background(), []string{"https://repo.example.com/tools::jq"}, app.InstallOptions{
		Channels: []string{"bioconda"},
		Platform: "osx-arm64",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestInstall_RejectsBadRequestsBeforeAnyWork(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		opts  app.InstallOptions
		want  error
	}{
		{name: "no specs", specs: nil, want: domain.ErrNoPackagesSpecified},
		{name: "nameless spec", specs: []string{">=1.0"}, want: domain.ErrMissingName},
		{name: "duplicate", specs: []string{"ripgrep", "RipGrep >=14"}, want: domain.ErrDuplicatePackage},
		{name: "invalid spec", specs: []string{"rip$grep"}, want: domain.ErrInvalidMatchSpec},
		{name: "invalid platform", specs: []string{"bat"}, opts: app.InstallOptions{Platform: "amiga"}, want: domain.ErrInvalidPlatform},
		{name: "invalid channel", specs: []string{"bat"}, opts: app.InstallOptions{Channels: []string{" "}}, want: domain.ErrInvalidChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.app.Install(context.Background(), tt.specs, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "unexpected error: %v", err)
		})
	}
}

func TestInstall_ResolveFailureStopsInstall(t *testing.T) {
	f := newFixture(t)

	f.dirs.EXPECT().Ensure(gomock.Any(), domain.ShimDir{}).Return(filepath.Join(testRoot, "bin"), nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&http.Client{}, ports.MetadataIndex{}, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrUnsatisfiable, "nothing provides libfoo"))

	_, err := f.app.Install(context.Background(), []string{"foo"}, app.InstallOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsatisfiable))
}

func TestInstall_Verbose(t *testing.T) {
	f := newFixture(t)

	f.dirs.EXPECT().Ensure(gomock.Any(), domain.ShimDir{}).
		Return("", zerr.Wrap(domain.ErrDirectoryCreateFailed, "read-only"))

	_, err := f.app.Install(context.Background(), []string{"bat"}, app.InstallOptions{Verbose: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDirectoryCreateFailed))
}

func prefixRecord(name, version, build, channel, fn string, size uint64) *domain.PrefixRecord {
	return &domain.PrefixRecord{
		RepoDataRecord: domain.RepoDataRecord{
			PackageRecord: domain.PackageRecord{
				Name:    domain.MustPackageName(name),
				Version: domain.MustParseVersion(version),
				Build:   build,
				Size:    size,
			},
			FileName: fn,
			Channel:  channel,
		},
	}
}

func listFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t)

	bat := prefixRecord("bat", "0.24.0", "h3bba108_1", "https://conda.anaconda.org/conda-forge",
		"bat-0.24.0-h3bba108_1.conda", 2_621_440)
	bat.RequestedSpec = "bat"
	rg := prefixRecord("ripgrep", "14.1.0", "he8a937b_0", "https://repo.example.com/tools",
		"ripgrep-14.1.0-he8a937b_0.tar.bz2", 1_572_864)

	f.dirs.EXPECT().ListEnvironments(gomock.Any()).Return([]domain.PackageName{
		domain.MustPackageName("bat"),
		domain.MustPackageName("ghost"),
		domain.MustPackageName("ripgrep"),
	}, nil)
	f.locator.EXPECT().Locate(gomock.Any(), domain.MustPackageName("bat")).Return(bat, nil).AnyTimes()
	f.locator.EXPECT().Locate(gomock.Any(), domain.MustPackageName("ripgrep")).Return(rg, nil).AnyTimes()
	f.locator.EXPECT().Locate(gomock.Any(), domain.MustPackageName("ghost")).
		Return(nil, zerr.Wrap(domain.ErrNotFoundInPrefix, "could not find ghost in prefix")).AnyTimes()
	return f
}

func TestList_Table(t *testing.T) {
	f := listFixture(t)
	f.logger.EXPECT().Warn("skipping ghost: environment holds no record of the package")

	var buf bytes.Buffer
	require.NoError(t, f.app.List(context.Background(), &buf, app.ListOptions{SortBy: app.SortBySize}))

	g := goldie.New(t)
	g.Assert(t, "list_table", buf.Bytes())
}

func TestList_JSON(t *testing.T) {
	f := listFixture(t)
	f.logger.EXPECT().Warn(gomock.Any())

	var buf bytes.Buffer
	require.NoError(t, f.app.List(context.Background(), &buf, app.ListOptions{JSON: true}))

	g := goldie.New(t)
	g.Assert(t, "list_json", buf.Bytes())
}

func TestList_Filter(t *testing.T) {
	f := listFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.app.List(context.Background(), &buf, app.ListOptions{Regex: "^rip", JSONPretty: true}))

	assert.Contains(t, buf.String(), `"name": "ripgrep"`)
	assert.NotContains(t, buf.String(), "bat")
}

func TestList_NoPackages(t *testing.T) {
	f := newFixture(t)
	f.dirs.EXPECT().ListEnvironments(gomock.Any()).Return(nil, nil)
	f.logger.EXPECT().Warn("No packages found.")

	var buf bytes.Buffer
	require.NoError(t, f.app.List(context.Background(), &buf, app.ListOptions{}))
	assert.Empty(t, buf.String())
}

func TestList_InvalidOptions(t *testing.T) {
	f := newFixture(t)

	err := f.app.List(context.Background(), &bytes.Buffer{}, app.ListOptions{Regex: "("})
	assert.True(t, errors.Is(err, domain.ErrInvalidRegex))

	err = f.app.List(context.Background(), &bytes.Buffer{}, app.ListOptions{SortBy: "kind"})
	assert.True(t, errors.Is(err, domain.ErrInvalidSortKey))
}

func TestList_LocateFailure(t *testing.T) {
	f := newFixture(t)
	f.dirs.EXPECT().ListEnvironments(gomock.Any()).Return([]domain.PackageName{domain.MustPackageName("bat")}, nil)
	f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrPrefixReadFailed, "corrupt"))

	err := f.app.List(context.Background(), &bytes.Buffer{}, app.ListOptions{})
	assert.True(t, errors.Is(err, domain.ErrPrefixReadFailed))
}

func TestInfo_Text(t *testing.T) {
	f := newFixture(t)

	rec := prefixRecord("bat", "0.24.0", "h3bba108_1", "https://conda.anaconda.org/conda-forge",
		"bat-0.24.0-h3bba108_1.conda", 2_621_440)
	rec.Subdir = "linux-64"
	rec.License = "Apache-2.0 OR MIT"
	rec.RequestedSpec = "bat"
	rec.InstalledAt = 1700000000000
	rec.Files = []string{"bin/bat", "share/man/man1/bat.1"}
	rec.Depends = []string{"__glibc >=2.17,<3.0.a0", "libgcc-ng >=12"}

	f.locator.EXPECT().Locate(gomock.Any(), gomock.Cond(func(n domain.PackageName) bool {
		return n.Normalized() == "bat"
	})).Return(rec, nil)

	var buf bytes.Buffer
	require.NoError(t, f.app.Info(context.Background(), &buf, "Bat", app.InfoOptions{}))

	g := goldie.New(t)
	g.Assert(t, "info_text", buf.Bytes())
}

func TestInfo_JSON(t *testing.T) {
	f := newFixture(t)
	rec := prefixRecord("jq", "1.7.1", "hd590300_0", "https://conda.anaconda.org/conda-forge", "jq-1.7.1-hd590300_0.conda", 0)
	f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(rec, nil)

	var buf bytes.Buffer
	require.NoError(t, f.app.Info(context.Background(), &buf, "jq", app.InfoOptions{JSON: true}))
	assert.Contains(t, buf.String(), `"fn": "jq-1.7.1-hd590300_0.conda"`)
	assert.Contains(t, buf.String(), `"version": "1.7.1"`)
}

func TestInfo_Errors(t *testing.T) {
	f := newFixture(t)

	err := f.app.Info(context.Background(), &bytes.Buffer{}, "not/valid", app.InfoOptions{})
	assert.True(t, errors.Is(err, domain.ErrInvalidPackageName))

	f.locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrNotInstalled, "package bat is not globally installed"))
	err = f.app.Info(context.Background(), &bytes.Buffer{}, "bat", app.InfoOptions{})
	assert.True(t, errors.Is(err, domain.ErrNotInstalled))
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.app.Home(context.Background(), &buf))
	assert.Equal(t, testRoot, strings.TrimSpace(buf.String()))
}

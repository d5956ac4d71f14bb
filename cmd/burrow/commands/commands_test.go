package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/cmd/burrow/commands"
	"go.trai.ch/burrow/internal/app"
	"go.trai.ch/burrow/internal/build"
)

type mockApp struct {
	installFunc func(ctx context.Context, specs []string, opts app.InstallOptions) ([]app.InstallResult, error)
	listFunc    func(ctx context.Context, w io.Writer, opts app.ListOptions) error
	infoFunc    func(ctx context.Context, w io.Writer, name string, opts app.InfoOptions) error
	homeFunc    func(ctx context.Context, w io.Writer) error
}

func (m *mockApp) Install(ctx context.Context, specs []string, opts app.InstallOptions) ([]app.InstallResult, error) {
	if m.installFunc != nil {
		return m.installFunc(ctx, specs, opts)
	}
	return nil, nil
}

func (m *mockApp) List(ctx context.Context, w io.Writer, opts app.ListOptions) error {
	if m.listFunc != nil {
		return m.listFunc(ctx, w, opts)
	}
	return nil
}

func (m *mockApp) Info(ctx context.Context, w io.Writer, name string, opts app.InfoOptions) error {
	if m.infoFunc != nil {
		return m.infoFunc(ctx, w, name, opts)
	}
	return nil
}

func (m *mockApp) Home(ctx context.Context, w io.Writer) error {
	if m.homeFunc != nil {
		return m.homeFunc(ctx, w)
	}
	return nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Install(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedSpecs []string
		var capturedOpts app.InstallOptions

		mock := &mockApp{
			installFunc: func(_ context.Context, specs []string, opts app.InstallOptions) ([]app.InstallResult, error) {
				capturedSpecs = specs
				capturedOpts = opts
				return nil, nil
			},
		}

		_, err := execute(t, mock,
			"install", "ripgrep", "python >=3.11",
			"-c", "conda-forge", "--channel", "bioconda",
			"--platform", "linux-aarch64", "-v",
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"ripgrep", "python >=3.11"}, capturedSpecs)
		assert.Equal(t, app.InstallOptions{
			Channels: []string{"conda-forge", "bioconda"},
			Platform: "linux-aarch64",
			Verbose:  true,
		}, capturedOpts)
	})

	t.Run("returns error on install failure", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, []string, app.InstallOptions) ([]app.InstallResult, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "install", "ripgrep")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no specs provided", func(t *testing.T) {
		mock := &mockApp{
			installFunc: func(context.Context, []string, app.InstallOptions) ([]app.InstallResult, error) {
				panic("should not be called")
			},
		}

		out, err := execute(t, mock, "install")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
		assert.Contains(t, out, "install <spec>...")
	})
}

func TestCommands_List(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var captured app.ListOptions
		mock := &mockApp{
			listFunc: func(_ context.Context, _ io.Writer, opts app.ListOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "list")
		require.NoError(t, err)
		assert.Equal(t, app.ListOptions{SortBy: app.SortByName}, captured)
	})

	t.Run("wires regex and flags", func(t *testing.T) {
		var captured app.ListOptions
		mock := &mockApp{
			listFunc: func(_ context.Context, w io.Writer, opts app.ListOptions) error {
				captured = opts
				_, err := io.WriteString(w, "table")
				return err
			},
		}

		out, err := execute(t, mock, "list", "^rip", "--sort-by", "size", "--json", "--json-pretty")
		require.NoError(t, err)
		assert.Equal(t, "table", out)
		assert.Equal(t, app.ListOptions{
			Regex:      "^rip",
			SortBy:     app.SortBySize,
			JSON:       true,
			JSONPretty: true,
		}, captured)
	})

	t.Run("rejects more than one pattern", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "list", "a", "b")
		require.Error(t, err)
	})
}

func TestCommands_Info(t *testing.T) {
	var capturedName string
	var capturedOpts app.InfoOptions
	mock := &mockApp{
		infoFunc: func(_ context.Context, _ io.Writer, name string, opts app.InfoOptions) error {
			capturedName = name
			capturedOpts = opts
			return nil
		},
	}

	_, err := execute(t, mock, "info", "bat", "--json")
	require.NoError(t, err)
	assert.Equal(t, "bat", capturedName)
	assert.True(t, capturedOpts.JSON)

	_, err = execute(t, mock, "info")
	require.Error(t, err)
}

func TestCommands_Home(t *testing.T) {
	mock := &mockApp{
		homeFunc: func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "/home/user/.burrow\n")
			return err
		},
	}

	out, err := execute(t, mock, "home")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.burrow\n", out)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "burrow version "+build.Version)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "burrow version "+build.Version)
	assert.Contains(t, out, "commit: "+build.Commit)
}

//go:build e2e

package e2e_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/burrow/internal/core/domain"
)

var burrowBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "burrow-e2e-*")
	if err != nil {
		panic(err)
	}

	burrowBinary = filepath.Join(tmpDir, "burrow")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", burrowBinary, "./cmd/burrow")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build burrow binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	burrowHome := filepath.Join(env.WorkDir, ".burrow")
	binDir := filepath.Dir(burrowBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+
		filepath.Join(burrowHome, "bin")+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv(domain.HomeEnvVar, burrowHome)

	channel := filepath.Join(env.WorkDir, "channel")
	if err := writeChannel(channel); err != nil {
		return err
	}
	env.Setenv("CHANNEL", channel)

	return nil
}

// writeChannel lays out a local channel holding a single noarch package "hello".
func writeChannel(dir string) error {
	const fn = "hello-1.0-0.conda"

	archive, err := helloArchive()
	if err != nil {
		return err
	}
	sum := sha256.Sum256(archive)

	noarch := filepath.Join(dir, domain.PlatformNoArch.String())
	if err := os.MkdirAll(noarch, 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(noarch, fn), archive, 0o600); err != nil {
		return err
	}
	if err := writeRepoData(noarch, domain.PlatformNoArch.String(), map[string]any{
		fn: map[string]any{
			"name":         "hello",
			"version":      "1.0",
			"build":        "0",
			"build_number": 0,
			"depends":      []string{},
			"noarch":       "generic",
			"subdir":       "noarch",
			"license":      "MIT",
			"sha256":       hex.EncodeToString(sum[:]),
			"size":         len(archive),
		},
	}); err != nil {
		return err
	}

	native := filepath.Join(dir, domain.CurrentPlatform().String())
	if err := os.MkdirAll(native, 0o750); err != nil {
		return err
	}
	return writeRepoData(native, domain.CurrentPlatform().String(), map[string]any{})
}

func writeRepoData(dir, subdir string, condaPackages map[string]any) error {
	data, err := json.Marshal(map[string]any{
		"info":           map[string]any{"subdir": subdir},
		"packages":       map[string]any{},
		"packages.conda": condaPackages,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "repodata.json"), data, 0o600)
}

func helloArchive() ([]byte, error) {
	const placeholder = "/opt/anaconda1anaconda2anaconda3"

	pkg, err := zstdTar(map[string]string{
		"bin/hello": "#!/bin/sh\necho hello from " + placeholder + "\n",
	})
	if err != nil {
		return nil, err
	}
	paths, err := json.Marshal(map[string]any{
		"paths_version": 1,
		"paths": []map[string]any{{
			"_path":              "bin/hello",
			"path_type":          "hardlink",
			"file_mode":          "text",
			"prefix_placeholder": placeholder,
		}},
	})
	if err != nil {
		return nil, err
	}
	info, err := zstdTar(map[string]string{"info/paths.json": string(paths)})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string][]byte{
		"metadata.json":            []byte(`{"conda_pkg_format_version": 2}`),
		"pkg-hello-1.0-0.tar.zst":  pkg,
		"info-hello-1.0-0.tar.zst": info,
	} {
		w, err := zw.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zstdTar(files map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for name, body := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}); err != nil {
			return nil, err
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = enc.Close()
	}()
	return enc.EncodeAll(buf.Bytes(), nil), nil
}

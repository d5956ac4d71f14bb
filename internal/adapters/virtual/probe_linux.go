//go:build linux

package virtual

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

func systemProbes() Probes {
	return Probes{
		LinuxVersion: kernelRelease,
		GlibcVersion: glibcVersion,
	}
}

func kernelRelease(_ context.Context) (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}

// glibcVersion parses the first line of `ldd --version`, e.g.
// "ldd (Ubuntu GLIBC 2.35-0ubuntu3.4) 2.35". musl's ldd fails the call.
func glibcVersion(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ldd", "--version").Output()
	if err != nil {
		return "", err
	}

	line, _, _ := bytes.Cut(out, []byte("\n"))
	if !bytes.Contains(bytes.ToLower(line), []byte("glibc")) && !bytes.Contains(line, []byte("GNU libc")) {
		return "", errors.New("not a glibc system")
	}

	sc := bufio.NewScanner(bytes.NewReader(line))
	sc.Split(bufio.ScanWords)
	var last string
	for sc.Scan() {
		last = sc.Text()
	}
	return strings.TrimSpace(last), nil
}

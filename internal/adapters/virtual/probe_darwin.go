//go:build darwin

package virtual

import (
	"context"

	"golang.org/x/sys/unix"
)

func systemProbes() Probes {
	return Probes{
		OSXVersion: productVersion,
	}
}

func productVersion(_ context.Context) (string, error) {
	return unix.Sysctl("kern.osproductversion")
}

//go:build !linux && !darwin

package virtual

func systemProbes() Probes {
	return Probes{}
}

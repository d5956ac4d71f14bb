package repodata

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"net"
	"net/http"
	"os"
	"strings"

	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/zerr"
)

// BasicHTTP holds a username and password for HTTP basic authentication.
type BasicHTTP struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Credential is one entry of the credentials file. Exactly one field is expected to be set.
type Credential struct {
	BearerToken string     `json:"BearerToken,omitempty"`
	BasicHTTP   *BasicHTTP `json:"BasicHTTP,omitempty"`
	CondaToken  string     `json:"CondaToken,omitempty"`
}

// AuthStore maps hosts to credentials. Keys are either a host ("repo.example.com",
// "localhost:8080") or a wildcard suffix ("*.example.com").
type AuthStore struct {
	entries map[string]Credential
}

// NewAuthStore creates an AuthStore from explicit entries.
func NewAuthStore(entries map[string]Credential) *AuthStore {
	normalized := make(map[string]Credential, len(entries))
	for host, cred := range entries {
		normalized[strings.ToLower(strings.TrimSpace(host))] = cred
	}
	return &AuthStore{entries: normalized}
}

// LoadAuthStore reads the credentials file at path. A missing file yields an empty store.
func LoadAuthStore(path string) (*AuthStore, error) {
	if path == "" {
		return NewAuthStore(nil), nil
	}

	//nolint:gosec // Path comes from the user's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return NewAuthStore(nil), nil
		}
		return nil, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrAuthReadFailed, err), "could not read credentials"),
			"path", path,
		)
	}

	var entries map[string]Credential
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, zerr.With(
			zerr.Wrap(errors.Join(domain.ErrAuthReadFailed, err), "could not parse credentials"),
			"path", path,
		)
	}
	return NewAuthStore(entries), nil
}

// Lookup returns the credential for host. An exact match wins over the longest wildcard suffix.
func (s *AuthStore) Lookup(host string) (Credential, bool) {
	if s == nil || len(s.entries) == 0 {
		return Credential{}, false
	}

	host = strings.ToLower(host)
	if c, ok := s.entries[host]; ok {
		return c, true
	}

	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
		if c, ok := s.entries[hostname]; ok {
			return c, true
		}
	}

	var (
		best    Credential
		bestLen int
	)
	for key, c := range s.entries {
		suffix, ok := strings.CutPrefix(key, "*")
		if !ok || !strings.HasSuffix(hostname, suffix) {
			continue
		}
		if len(suffix) > bestLen {
			best, bestLen = c, len(suffix)
		}
	}
	return best, bestLen > 0
}

// AuthTransport is an http.RoundTripper that attaches stored credentials to every request.
type AuthTransport struct {
	Base  http.RoundTripper
	Store *AuthStore
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	cred, ok := t.Store.Lookup(req.URL.Host)
	if !ok {
		return base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	switch {
	case cred.BearerToken != "":
		authed.Header.Set("Authorization", "Bearer "+cred.BearerToken)
	case cred.BasicHTTP != nil:
		authed.SetBasicAuth(cred.BasicHTTP.Username, cred.BasicHTTP.Password)
	case cred.CondaToken != "":
		prefix := "/t/" + cred.CondaToken
		if !strings.HasPrefix(authed.URL.Path, prefix+"/") {
			authed.URL.Path = prefix + authed.URL.Path
			authed.URL.RawPath = ""
		}
	}
	return base.RoundTrip(authed)
}

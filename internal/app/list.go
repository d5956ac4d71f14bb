package app

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/ui/style"
	"go.trai.ch/zerr"
)

// Sort keys accepted by List.
const (
	SortByName    = "name"
	SortBySize    = "size"
	SortByVersion = "version"
)

// ListOptions configuration for the List method.
type ListOptions struct {
	// Regex keeps only packages whose name matches.
	Regex string
	// SortBy is one of SortByName, SortBySize or SortByVersion. Empty sorts by name.
	SortBy string
	// JSON prints machine-readable output.
	JSON bool
	// JSONPretty prints indented JSON.
	JSONPretty bool
}

// PackageSummary is one row of the global package list.
type PackageSummary struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Build         string `json:"build"`
	SizeBytes     uint64 `json:"size_bytes"`
	Channel       string `json:"channel"`
	Source        string `json:"source"`
	RequestedSpec string `json:"requested_spec,omitempty"`

	version domain.Version
}

// List prints every globally installed package.
func (a *App) List(ctx context.Context, w io.Writer, opts ListOptions) error {
	var filter *regexp.Regexp
	if opts.Regex != "" {
		re, err := regexp.Compile(opts.Regex)
		if err != nil {
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrInvalidRegex, err), "invalid regex"), "regex", opts.Regex)
		}
		filter = re
	}

	sortBy := cmp.Or(opts.SortBy, SortByName)
	if !slices.Contains([]string{SortByName, SortBySize, SortByVersion}, sortBy) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidSortKey, "cannot sort by "+sortBy), "allowed", "name, size, version")
	}

	names, err := a.dirs.ListEnvironments(ctx)
	if err != nil {
		return err
	}

	rows := make([]PackageSummary, 0, len(names))
	for _, name := range names {
		if filter != nil && !filter.MatchString(name.Normalized()) {
			continue
		}

		rec, err := a.locator.Locate(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFoundInPrefix) {
				a.logger.Warn(fmt.Sprintf("skipping %s: environment holds no record of the package", name.Source()))
				continue
			}
			return err
		}
		rows = append(rows, a.summarize(rec))
	}

	if len(rows) == 0 {
		a.logger.Warn("No packages found.")
		return nil
	}

	sortSummaries(rows, sortBy)

	if opts.JSON || opts.JSONPretty {
		return writeJSON(w, rows, opts.JSONPretty)
	}
	return writeTable(w, rows)
}

func (a *App) summarize(rec *domain.PrefixRecord) PackageSummary {
	return PackageSummary{
		Name:          rec.Name.Source(),
		Version:       rec.Version.String(),
		Build:         rec.Build,
		SizeBytes:     rec.Size,
		Channel:       domain.FriendlyChannelName(rec.Channel, a.config.ChannelAlias),
		Source:        rec.FileName,
		RequestedSpec: rec.RequestedSpec,
		version:       rec.Version,
	}
}

func sortSummaries(rows []PackageSummary, sortBy string) {
	slices.SortStableFunc(rows, func(x, y PackageSummary) int {
		switch sortBy {
		case SortBySize:
			if c := cmp.Compare(x.SizeBytes, y.SizeBytes); c != 0 {
				return c
			}
		case SortByVersion:
			if c := x.version.Compare(y.version); c != 0 {
				return c
			}
		}
		return strings.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
	})
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func writeTable(w io.Writer, rows []PackageSummary) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "Package\tVersion\tBuild\tSize\tChannel\tSource")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Version, r.Build, humanize.Bytes(r.SizeBytes), r.Channel, r.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	header, body, _ := strings.Cut(buf.String(), "\n")
	_, err := fmt.Fprintf(w, "%s\n%s", style.Header.Render(strings.TrimRight(header, " ")), body)
	return err
}

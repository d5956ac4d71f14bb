package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.trai.ch/burrow/internal/core/domain"
	"go.trai.ch/burrow/internal/ui/style"
)

// InfoOptions configuration for the Info method.
type InfoOptions struct {
	JSON bool
}

// Info prints the installed record of one globally installed package.
func (a *App) Info(ctx context.Context, w io.Writer, name string, opts InfoOptions) error {
	pkg, err := domain.NewPackageName(name)
	if err != nil {
		return err
	}

	rec, err := a.locator.Locate(ctx, pkg)
	if err != nil {
		return err
	}

	if opts.JSON {
		return writeJSON(w, rec, true)
	}

	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%-14s %s\n", label+":", value)
	}

	b.WriteString(style.Header.Render(rec.Name.Source()) + "\n")
	field("Version", rec.Version.String())
	field("Build", rec.Build)
	field("Channel", domain.FriendlyChannelName(rec.Channel, a.config.ChannelAlias))
	field("Subdir", rec.Subdir)
	field("License", rec.License)
	if rec.Size > 0 {
		field("Size", humanize.Bytes(rec.Size))
	}
	field("Requested", rec.RequestedSpec)
	if rec.InstalledAt > 0 {
		field("Installed", time.UnixMilli(rec.InstalledAt).UTC().Format(time.RFC3339))
	}
	field("Prefix", a.layout.EnvDir(pkg))
	field("Files", fmt.Sprint(len(rec.Files)))
	if len(rec.Depends) > 0 {
		b.WriteString("Dependencies:\n")
		for _, d := range rec.Depends {
			fmt.Fprintf(&b, "  %s %s\n", style.Arrow, d)
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}

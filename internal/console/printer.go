// Package console renders events for an interactive terminal. It is the
// callback the CLI registers with the emitter.
package console

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"pkgevent/internal/event"
	"pkgevent/pkg/types"
)

// Printer writes progress lines to out and routes diagnostics through log.
type Printer struct {
	out   io.Writer
	log   zerolog.Logger
	quiet bool
}

// NewPrinter returns a Printer. With quiet set, progress lines are suppressed
// and only diagnostics are logged.
func NewPrinter(out io.Writer, log zerolog.Logger, quiet bool) *Printer {
	return &Printer{out: out, log: log, quiet: quiet}
}

// Callback is the event.Callback for a *Printer registration context.
func Callback(data any, ev event.Event) error {
	p, ok := data.(*Printer)
	if !ok || p == nil {
		return fmt.Errorf("console: unexpected callback data %T", data)
	}
	return p.Handle(ev)
}

// Handle renders one event.
func (p *Printer) Handle(ev event.Event) error {
	switch e := ev.(type) {
	case event.InstallBeginEvent:
		return p.progress("Installing %s...", pkgID(e.Pkg))
	case event.InstallFinishedEvent:
		if err := p.progress(" done\n"); err != nil {
			return err
		}
		if msg := pkgMessage(e.Pkg); msg != "" {
			return p.progress("%s\n", msg)
		}
	case event.DeinstallBeginEvent:
		return p.progress("Deinstalling %s...", pkgID(e.Pkg))
	case event.UpgradeBeginEvent:
		return p.progress("Upgrading %s from %s to %s...", pkgName(e.Pkg), pkgOldVersion(e.Pkg), pkgVersion(e.Pkg))
	case event.DeinstallFinishedEvent, event.UpgradeFinishedEvent, event.IntegrityCheckFinishedEvent:
		return p.progress(" done\n")
	case event.IntegrityCheckBeginEvent:
		return p.progress("Checking integrity...")
	case event.FetchingEvent:
		if e.Total <= 0 {
			return nil
		}
		end := ""
		if e.Done >= e.Total {
			end = "\n"
		}
		return p.progress("\rFetching %s: %3d%%%s", e.URL, e.Done*100/e.Total, end)
	case event.IntegrityCheckConflictEvent:
		for _, c := range e.Conflicts {
			p.log.Warn().Str("path", e.Path).Str("pkg", e.Name+"-"+e.Version).
				Str("conflicts_with", c.Name+"-"+c.Version).Msg("integrity conflict")
		}
	case event.ErrorEvent:
		p.log.Error().Msg(e.Msg)
	case event.DeveloperModeEvent:
		p.log.Error().Bool("developer_mode", true).Msg(e.Msg)
	case event.ErrnoEvent:
		p.log.Error().Int("errno", int(e.Errno)).Msgf("%s(%s): %s", e.Func, e.Arg, e.Strerror())
	case event.NoticeEvent:
		p.log.Info().Msg(e.Msg)
	case event.DebugEvent:
		p.log.Debug().Int("debug_level", e.Level).Msg(e.Msg)
	case event.LockedEvent:
		p.log.Error().Str("pkg", pkgID(e.Pkg)).Msg("package is locked")
	case event.RequiredEvent:
		var by []string
		if e.Pkg != nil {
			for d := range e.Pkg.Dependents() {
				by = append(by, depID(d))
			}
		}
		l := p.log.Error()
		if e.Force {
			l = p.log.Warn()
		}
		l.Str("pkg", pkgID(e.Pkg)).Strs("required_by", by).Bool("force", e.Force).Msg("package is required by other packages")
	case event.AlreadyInstalledEvent:
		p.log.Info().Str("pkg", pkgID(e.Pkg)).Msg("package is already installed")
	case event.MissingDepEvent:
		p.log.Error().Str("dep", depID(e.Dep)).Msg("missing dependency")
	case event.NoRemoteDBEvent:
		p.log.Error().Str("repo", e.Repo).Msg("repository catalogue unavailable, run update first")
	case event.NoLocalDBEvent:
		p.log.Error().Msg("local package database unavailable")
	case event.NewPkgVersionEvent:
		p.log.Info().Msg("new version of the package manager available, it will be upgraded first")
	case event.FileMismatchEvent:
		p.log.Warn().Str("pkg", pkgID(e.Pkg)).Str("path", filePath(e.File)).Msg("checksum mismatch")
	case event.PluginErrnoEvent:
		p.log.Error().Str("plugin", pluginName(e.Plugin)).Int("errno", int(e.Errno)).Msgf("%s(%s): %s", e.Func, e.Arg, e.Strerror())
	case event.PluginErrorEvent:
		p.log.Error().Str("plugin", pluginName(e.Plugin)).Msg(e.Msg)
	case event.PluginInfoEvent:
		p.log.Info().Str("plugin", pluginName(e.Plugin)).Msg(e.Msg)
	case event.NotFoundEvent:
		p.log.Warn().Str("pkg", e.Name).Msg("no package matches")
	case event.IncrementalUpdateEvent:
		p.log.Info().Int("updated", e.Updated).Int("removed", e.Removed).Int("added", e.Added).
			Int("processed", e.Processed).Msg("catalogue updated")
	}
	return nil
}

func (p *Printer) progress(format string, args ...any) error {
	if p.quiet {
		return nil
	}
	_, err := fmt.Fprintf(p.out, format, args...)
	return err
}

// Handles may be nil; they render as empty strings.

func pkgName(p types.Package) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

func pkgVersion(p types.Package) string {
	if p == nil {
		return ""
	}
	return p.Version()
}

func pkgOldVersion(p types.Package) string {
	if p == nil {
		return ""
	}
	return p.OldVersion()
}

func pkgMessage(p types.Package) string {
	if p == nil {
		return ""
	}
	return p.Message()
}

func pkgID(p types.Package) string { return pkgName(p) + "-" + pkgVersion(p) }

func depID(d types.Dependency) string {
	if d == nil {
		return "-"
	}
	return d.Name() + "-" + d.Version()
}

func filePath(f types.File) string {
	if f == nil {
		return ""
	}
	return f.Path()
}

func pluginName(pl types.Plugin) string {
	if pl == nil {
		return ""
	}
	return pl.Name()
}

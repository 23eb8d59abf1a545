package event

import (
	"errors"
	"fmt"
	"syscall"
	"time"

	"pkgevent/pkg/types"
)

// Error reports a domain error.
func (e *Emitter) Error(format string, args ...any) {
	e.dispatch(ErrorEvent{Msg: fmt.Sprintf(format, args...)})
}

// Notice reports an informational message.
func (e *Emitter) Notice(format string, args ...any) {
	e.dispatch(NoticeEvent{Msg: fmt.Sprintf(format, args...)})
}

// DeveloperMode reports a packaging assertion.
func (e *Emitter) DeveloperMode(format string, args ...any) {
	e.dispatch(DeveloperModeEvent{Msg: fmt.Sprintf(format, args...)})
}

// Errno reports that fn(arg) failed with err. The errno is taken from err when
// it wraps a syscall.Errno.
func (e *Emitter) Errno(fn, arg string, err error) {
	no, rest := splitErrno(err)
	e.dispatch(ErrnoEvent{Func: fn, Arg: arg, Errno: no, Err: rest})
}

func (e *Emitter) AlreadyInstalled(p types.Package) {
	e.dispatch(AlreadyInstalledEvent{Pkg: p})
}

// Fetching reports that done of total bytes of url have been fetched.
func (e *Emitter) Fetching(url string, total, done int64, elapsed time.Duration) {
	e.dispatch(FetchingEvent{URL: url, Total: total, Done: done, Elapsed: elapsed})
}

func (e *Emitter) InstallBegin(p types.Package) {
	e.dispatch(InstallBeginEvent{Pkg: p})
}

// InstallFinished also writes "<name>-<version> installed" to syslog when enabled.
func (e *Emitter) InstallFinished(p types.Package) {
	e.logFinished(p, "installed")
	e.dispatch(InstallFinishedEvent{Pkg: p})
}

func (e *Emitter) IntegrityCheckBegin() {
	e.dispatch(IntegrityCheckBeginEvent{})
}

func (e *Emitter) IntegrityCheckFinished() {
	e.dispatch(IntegrityCheckFinishedEvent{})
}

// IntegrityCheckConflict reports that path of name-version (origin) is also
// claimed by conflicts.
func (e *Emitter) IntegrityCheckConflict(name, version, origin, path string, conflicts []types.Conflict) {
	e.dispatch(IntegrityCheckConflictEvent{
		Name:      name,
		Version:   version,
		Origin:    origin,
		Path:      path,
		Conflicts: conflicts,
	})
}

func (e *Emitter) DeinstallBegin(p types.Package) {
	e.dispatch(DeinstallBeginEvent{Pkg: p})
}

// DeinstallFinished also writes "<name>-<version> deinstalled" to syslog when enabled.
func (e *Emitter) DeinstallFinished(p types.Package) {
	e.logFinished(p, "deinstalled")
	e.dispatch(DeinstallFinishedEvent{Pkg: p})
}

func (e *Emitter) UpgradeBegin(p types.Package) {
	e.dispatch(UpgradeBeginEvent{Pkg: p})
}

// UpgradeFinished also writes the upgrade/downgrade/reinstall line to syslog when enabled.
func (e *Emitter) UpgradeFinished(p types.Package) {
	e.logUpgrade(p)
	e.dispatch(UpgradeFinishedEvent{Pkg: p})
}

func (e *Emitter) MissingDep(p types.Package, d types.Dependency) {
	e.dispatch(MissingDepEvent{Pkg: p, Dep: d})
}

func (e *Emitter) Locked(p types.Package) {
	e.dispatch(LockedEvent{Pkg: p})
}

// Required reports that p is still needed by its dependents.
func (e *Emitter) Required(p types.Package, force bool) {
	e.dispatch(RequiredEvent{Pkg: p, Force: force})
}

func (e *Emitter) NoLocalDB() {
	e.dispatch(NoLocalDBEvent{})
}

func (e *Emitter) NoRemoteDB(repo string) {
	e.dispatch(NoRemoteDBEvent{Repo: repo})
}

func (e *Emitter) NewPkgVersion() {
	e.dispatch(NewPkgVersionEvent{})
}

func (e *Emitter) FileMismatch(p types.Package, f types.File, newsum string) {
	e.dispatch(FileMismatchEvent{Pkg: p, File: f, NewSum: newsum})
}

// PluginErrno reports that plugin p failed calling fn(arg).
func (e *Emitter) PluginErrno(p types.Plugin, fn, arg string, err error) {
	no, rest := splitErrno(err)
	e.dispatch(PluginErrnoEvent{Plugin: p, Func: fn, Arg: arg, Errno: no, Err: rest})
}

func (e *Emitter) PluginError(p types.Plugin, format string, args ...any) {
	e.dispatch(PluginErrorEvent{Plugin: p, Msg: fmt.Sprintf(format, args...)})
}

func (e *Emitter) PluginInfo(p types.Plugin, format string, args ...any) {
	e.dispatch(PluginInfoEvent{Plugin: p, Msg: fmt.Sprintf(format, args...)})
}

// NotFound reports that no package matched name.
func (e *Emitter) NotFound(name string) {
	e.dispatch(NotFoundEvent{Name: name})
}

func (e *Emitter) IncrementalUpdate(updated, removed, added, processed int) {
	e.dispatch(IncrementalUpdateEvent{
		Updated:   updated,
		Removed:   removed,
		Added:     added,
		Processed: processed,
	})
}

// splitErrno extracts the errno carried by err. When there is none, err is
// returned so its text can stand in for strerror.
func splitErrno(err error) (syscall.Errno, error) {
	var no syscall.Errno
	if errors.As(err, &no) {
		return no, nil
	}
	return 0, err
}

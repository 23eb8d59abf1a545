package event

import (
	"strings"
	"syscall"
	"time"

	"pkgevent/pkg/types"
)

// Event is one notification. The set of implementations is closed: every
// variant lives in this file and the serializer switches over all of them.
// Payloads are only valid for the duration of the dispatch that delivers them.
type Event interface {
	Kind() Kind
	event()
}

// ErrorEvent is a free-form domain error.
type ErrorEvent struct{ Msg string }

// NoticeEvent is an informational message.
type NoticeEvent struct{ Msg string }

// DeveloperModeEvent is a packaging assertion raised in developer mode.
type DeveloperModeEvent struct{ Msg string }

// ErrnoEvent reports a failed OS call: Func(Arg) failed with Errno.
type ErrnoEvent struct {
	Func  string
	Arg   string
	Errno syscall.Errno
	// Err is the original error when it did not carry an errno.
	Err error
}

// DebugEvent is a trace message that passed the debug gate.
type DebugEvent struct {
	Level int
	Msg   string
}

// FetchingEvent reports download progress.
type FetchingEvent struct {
	URL     string
	Total   int64
	Done    int64
	Elapsed time.Duration
}

type InstallBeginEvent struct{ Pkg types.Package }

type InstallFinishedEvent struct{ Pkg types.Package }

type DeinstallBeginEvent struct{ Pkg types.Package }

type DeinstallFinishedEvent struct{ Pkg types.Package }

// UpgradeBeginEvent carries a package whose OldVersion is the installed one.
type UpgradeBeginEvent struct{ Pkg types.Package }

type UpgradeFinishedEvent struct{ Pkg types.Package }

type IntegrityCheckBeginEvent struct{}

// IntegrityCheckConflictEvent reports a path claimed by several packages.
// Conflicts is owned by the caller and only read.
type IntegrityCheckConflictEvent struct {
	Name      string
	Version   string
	Origin    string
	Path      string
	Conflicts []types.Conflict
}

type IntegrityCheckFinishedEvent struct{}

type LockedEvent struct{ Pkg types.Package }

// RequiredEvent reports that Pkg cannot be removed because others depend on it.
type RequiredEvent struct {
	Pkg   types.Package
	Force bool
}

type AlreadyInstalledEvent struct{ Pkg types.Package }

type MissingDepEvent struct {
	Pkg types.Package
	Dep types.Dependency
}

// NoRemoteDBEvent reports an unavailable repository catalogue.
type NoRemoteDBEvent struct{ Repo string }

type NoLocalDBEvent struct{}

type NewPkgVersionEvent struct{}

// FileMismatchEvent reports an installed file whose checksum differs from the manifest.
type FileMismatchEvent struct {
	Pkg    types.Package
	File   types.File
	NewSum string
}

type PluginErrnoEvent struct {
	Plugin types.Plugin
	Func   string
	Arg    string
	Errno  syscall.Errno
	Err    error
}

type PluginErrorEvent struct {
	Plugin types.Plugin
	Msg    string
}

type PluginInfoEvent struct {
	Plugin types.Plugin
	Msg    string
}

// NotFoundEvent reports a package name that matched nothing.
type NotFoundEvent struct{ Name string }

// IncrementalUpdateEvent summarises a repository catalogue update.
type IncrementalUpdateEvent struct {
	Updated   int
	Removed   int
	Added     int
	Processed int
}

func (ErrorEvent) Kind() Kind                  { return KindError }
func (NoticeEvent) Kind() Kind                 { return KindNotice }
func (DeveloperModeEvent) Kind() Kind          { return KindDeveloperMode }
func (ErrnoEvent) Kind() Kind                  { return KindErrno }
func (DebugEvent) Kind() Kind                  { return KindDebug }
func (FetchingEvent) Kind() Kind               { return KindFetching }
func (InstallBeginEvent) Kind() Kind           { return KindInstallBegin }
func (InstallFinishedEvent) Kind() Kind        { return KindInstallFinished }
func (DeinstallBeginEvent) Kind() Kind         { return KindDeinstallBegin }
func (DeinstallFinishedEvent) Kind() Kind      { return KindDeinstallFinished }
func (UpgradeBeginEvent) Kind() Kind           { return KindUpgradeBegin }
func (UpgradeFinishedEvent) Kind() Kind        { return KindUpgradeFinished }
func (IntegrityCheckBeginEvent) Kind() Kind    { return KindIntegrityCheckBegin }
func (IntegrityCheckConflictEvent) Kind() Kind { return KindIntegrityCheckConflict }
func (IntegrityCheckFinishedEvent) Kind() Kind { return KindIntegrityCheckFinished }
func (LockedEvent) Kind() Kind                 { return KindLocked }
func (RequiredEvent) Kind() Kind               { return KindRequired }
func (AlreadyInstalledEvent) Kind() Kind       { return KindAlreadyInstalled }
func (MissingDepEvent) Kind() Kind             { return KindMissingDep }
func (NoRemoteDBEvent) Kind() Kind             { return KindNoRemoteDB }
func (NoLocalDBEvent) Kind() Kind              { return KindNoLocalDB }
func (NewPkgVersionEvent) Kind() Kind          { return KindNewPkgVersion }
func (FileMismatchEvent) Kind() Kind           { return KindFileMismatch }
func (PluginErrnoEvent) Kind() Kind            { return KindPluginErrno }
func (PluginErrorEvent) Kind() Kind            { return KindPluginError }
func (PluginInfoEvent) Kind() Kind             { return KindPluginInfo }
func (NotFoundEvent) Kind() Kind               { return KindNotFound }
func (IncrementalUpdateEvent) Kind() Kind      { return KindIncrementalUpdate }

func (ErrorEvent) event()                  {}
func (NoticeEvent) event()                 {}
func (DeveloperModeEvent) event()          {}
func (ErrnoEvent) event()                  {}
func (DebugEvent) event()                  {}
func (FetchingEvent) event()               {}
func (InstallBeginEvent) event()           {}
func (InstallFinishedEvent) event()        {}
func (DeinstallBeginEvent) event()         {}
func (DeinstallFinishedEvent) event()      {}
func (UpgradeBeginEvent) event()           {}
func (UpgradeFinishedEvent) event()        {}
func (IntegrityCheckBeginEvent) event()    {}
func (IntegrityCheckConflictEvent) event() {}
func (IntegrityCheckFinishedEvent) event() {}
func (LockedEvent) event()                 {}
func (RequiredEvent) event()               {}
func (AlreadyInstalledEvent) event()       {}
func (MissingDepEvent) event()             {}
func (NoRemoteDBEvent) event()             {}
func (NoLocalDBEvent) event()              {}
func (NewPkgVersionEvent) event()          {}
func (FileMismatchEvent) event()           {}
func (PluginErrnoEvent) event()            {}
func (PluginErrorEvent) event()            {}
func (PluginInfoEvent) event()             {}
func (NotFoundEvent) event()               {}
func (IncrementalUpdateEvent) event()      {}

// Strerror is the OS description of the failure, capitalised like strerror(3).
func (e ErrnoEvent) Strerror() string { return strerror(e.Errno, e.Err) }

// Strerror is the OS description of the failure, capitalised like strerror(3).
func (e PluginErrnoEvent) Strerror() string { return strerror(e.Errno, e.Err) }

func strerror(no syscall.Errno, err error) string {
	var s string
	switch {
	case no != 0:
		s = no.Error()
	case err != nil:
		return err.Error()
	default:
		return ""
	}
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

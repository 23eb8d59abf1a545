package event

import (
	"errors"
	"strings"
	"syscall"
	"time"

	"pkgevent/pkg/types"
)

// fakeSettings answers the configuration reads with fixed values.
type fakeSettings struct {
	syslog bool
	level  int64
}

func (f fakeSettings) SyslogEnabled() bool { return f.syslog }
func (f fakeSettings) DebugLevel() int64   { return f.level }

// fakeSyslog collects NOTICE lines.
type fakeSyslog struct{ lines []string }

func (f *fakeSyslog) Notice(m string) error {
	f.lines = append(f.lines, m)
	return nil
}

// failingWriter fails every write.
type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("broken pipe")
}

func samplePkg() *types.Pkg {
	return types.NewPkg("foo", "2.0",
		types.WithOldVersion("1.0"),
		types.WithOrigin("misc/foo"),
		types.WithMessage(`run "foo --init"`),
		types.WithDependents(types.NewDep("bar", "1.1"), types.NewDep("baz", "3")),
	)
}

// sampleEvents returns one event per kind, indexed by kind.
func sampleEvents() map[Kind]Event {
	p := samplePkg()
	plug := types.NamedPlugin("stats")
	return map[Kind]Event{
		KindError:                  ErrorEvent{Msg: "boom"},
		KindNotice:                 NoticeEvent{Msg: "hello"},
		KindDeveloperMode:          DeveloperModeEvent{Msg: "bad plist"},
		KindErrno:                  ErrnoEvent{Func: "open", Arg: "/tmp/x", Errno: syscall.ENOENT},
		KindDebug:                  DebugEvent{Level: 1, Msg: "trace"},
		KindFetching:               FetchingEvent{URL: "http://pkg/foo.txz", Total: 100, Done: 40, Elapsed: time.Second},
		KindInstallBegin:           InstallBeginEvent{Pkg: p},
		KindInstallFinished:        InstallFinishedEvent{Pkg: p},
		KindDeinstallBegin:         DeinstallBeginEvent{Pkg: p},
		KindDeinstallFinished:      DeinstallFinishedEvent{Pkg: p},
		KindUpgradeBegin:           UpgradeBeginEvent{Pkg: p},
		KindUpgradeFinished:        UpgradeFinishedEvent{Pkg: p},
		KindIntegrityCheckBegin:    IntegrityCheckBeginEvent{},
		KindIntegrityCheckConflict: IntegrityCheckConflictEvent{Name: "foo", Version: "2.0", Origin: "misc/foo", Path: "/usr/local/bin/foo"},
		KindIntegrityCheckFinished: IntegrityCheckFinishedEvent{},
		KindLocked:                 LockedEvent{Pkg: p},
		KindRequired:               RequiredEvent{Pkg: p, Force: true},
		KindAlreadyInstalled:       AlreadyInstalledEvent{Pkg: p},
		KindMissingDep:             MissingDepEvent{Pkg: p, Dep: types.NewDep("libbar", "1.0")},
		KindNoRemoteDB:             NoRemoteDBEvent{Repo: "FreeBSD"},
		KindNoLocalDB:              NoLocalDBEvent{},
		KindNewPkgVersion:          NewPkgVersionEvent{},
		KindFileMismatch:           FileMismatchEvent{Pkg: p, File: types.PkgFile("/usr/local/bin/foo"), NewSum: "abc"},
		KindPluginErrno:            PluginErrnoEvent{Plugin: plug, Func: "stat", Arg: "/var/db", Errno: syscall.EACCES},
		KindPluginError:            PluginErrorEvent{Plugin: plug, Msg: "failed"},
		KindPluginInfo:             PluginInfoEvent{Plugin: plug, Msg: "loaded"},
		KindNotFound:               NotFoundEvent{Name: "nope"},
		KindIncrementalUpdate:      IncrementalUpdateEvent{Updated: 1, Removed: 2, Added: 3, Processed: 6},
	}
}

// pipeLines splits what was written to the pipe into lines without the newline.
func pipeLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

package event

import (
	"bytes"
	"fmt"

	"pkgevent/pkg/types"
)

// Marshal renders ev as the single-line JSON document written to the event
// pipe, without the trailing newline. The second result is false for kinds
// that have no pipe representation (debug, not-found).
func Marshal(ev Event) ([]byte, bool) {
	var (
		msg bytes.Buffer
		esc escaper
	)
	switch e := ev.(type) {
	case ErrnoEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR", "data": {"msg": "%s(%s): %s","errno": %d}}`,
			esc.escape(e.Func), esc.escape(e.Arg), esc.escape(e.Strerror()), int(e.Errno))
	case ErrorEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR", "data": {"msg": "%s"}}`, esc.escape(e.Msg))
	case NoticeEvent:
		fmt.Fprintf(&msg, `{ "type": "NOTICE", "data": {"msg": "%s"}}`, esc.escape(e.Msg))
	case DeveloperModeEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR", "data": {"msg": "DEVELOPER_MODE: %s"}}`, esc.escape(e.Msg))
	case FetchingEvent:
		fmt.Fprintf(&msg, `{ "type": "INFO_FETCH", "data": { "url": "%s", "fetched": %d, "total": %d}}`,
			esc.escape(e.URL), e.Done, e.Total)
	case InstallBeginEvent:
		writeNameVersion(&msg, &esc, e.Kind(), e.Pkg)
	case InstallFinishedEvent:
		fmt.Fprintf(&msg, `{ "type": "INFO_INSTALL_FINISHED", "data": { "pkgname": "%s", `, esc.escape(pkgName(e.Pkg)))
		fmt.Fprintf(&msg, `"pkgversion": "%s", `, esc.escape(pkgVersion(e.Pkg)))
		fmt.Fprintf(&msg, `"message": "%s"}}`, esc.escape(pkgMessage(e.Pkg)))
	case IntegrityCheckBeginEvent:
		msg.WriteString(`{ "type": "INFO_INTEGRITYCHECK_BEGIN", "data": {}}`)
	case IntegrityCheckConflictEvent:
		writeConflict(&msg, &esc, e)
	case IntegrityCheckFinishedEvent:
		msg.WriteString(`{ "type": "INFO_INTEGRITYCHECK_FINISHED", "data": {}}`)
	case DeinstallBeginEvent:
		writeNameVersion(&msg, &esc, e.Kind(), e.Pkg)
	case DeinstallFinishedEvent:
		writeNameVersion(&msg, &esc, e.Kind(), e.Pkg)
	case UpgradeBeginEvent:
		writeUpgrade(&msg, &esc, e.Kind(), e.Pkg)
	case UpgradeFinishedEvent:
		writeUpgrade(&msg, &esc, e.Kind(), e.Pkg)
	case LockedEvent:
		writeNameVersion(&msg, &esc, e.Kind(), e.Pkg)
	case RequiredEvent:
		writeRequired(&msg, &esc, e)
	case AlreadyInstalledEvent:
		writeNameVersion(&msg, &esc, e.Kind(), e.Pkg)
	case MissingDepEvent:
		var name, ver string
		if e.Dep != nil {
			name, ver = e.Dep.Name(), e.Dep.Version()
		}
		fmt.Fprintf(&msg, `{ "type": "ERROR_MISSING_DEP", "data": { "depname": "%s", `, esc.escape(name))
		fmt.Fprintf(&msg, `"depversion": "%s"}}`, esc.escape(ver))
	case NoRemoteDBEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR_NOREMOTEDB", "data": { "url": "%s" }}`, esc.escape(e.Repo))
	case NoLocalDBEvent:
		msg.WriteString(`{ "type": "ERROR_NOLOCALDB", "data": {}}`)
	case NewPkgVersionEvent:
		msg.WriteString(`{ "type": "INFO_NEWPKGVERSION", "data": {}}`)
	case FileMismatchEvent:
		var path string
		if e.File != nil {
			path = e.File.Path()
		}
		fmt.Fprintf(&msg, `{ "type": "ERROR_FILE_MISMATCH", "data": { "pkgname": "%s", `, esc.escape(pkgName(e.Pkg)))
		fmt.Fprintf(&msg, `"pkgversion": "%s", `, esc.escape(pkgVersion(e.Pkg)))
		fmt.Fprintf(&msg, `"path": "%s"}}`, esc.escape(path))
	case PluginErrnoEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR_PLUGIN", "data": {"plugin": "%s", `, esc.escape(pluginName(e.Plugin)))
		fmt.Fprintf(&msg, `"msg": "%s(%s): %s","errno": %d}}`,
			esc.escape(e.Func), esc.escape(e.Arg), esc.escape(e.Strerror()), int(e.Errno))
	case PluginErrorEvent:
		fmt.Fprintf(&msg, `{ "type": "ERROR_PLUGIN", "data": {"plugin": "%s", `, esc.escape(pluginName(e.Plugin)))
		fmt.Fprintf(&msg, `"msg": "%s"}}`, esc.escape(e.Msg))
	case PluginInfoEvent:
		fmt.Fprintf(&msg, `{ "type": "INFO_PLUGIN", "data": {"plugin": "%s", `, esc.escape(pluginName(e.Plugin)))
		fmt.Fprintf(&msg, `"msg": "%s"}}`, esc.escape(e.Msg))
	case IncrementalUpdateEvent:
		fmt.Fprintf(&msg, `{ "type": "INFO_INCREMENTAL_UPDATE", "data": {"updated": %d, "removed": %d, "added": %d, "processed": %d}}`,
			e.Updated, e.Removed, e.Added, e.Processed)
	case DebugEvent, NotFoundEvent:
		return nil, false
	default:
		return nil, false
	}
	return msg.Bytes(), true
}

// writeNameVersion covers every kind whose data is just the package identity.
func writeNameVersion(msg *bytes.Buffer, esc *escaper, k Kind, p types.Package) {
	fmt.Fprintf(msg, `{ "type": "%s", "data": { "pkgname": "%s", `, k.Tag(), esc.escape(pkgName(p)))
	fmt.Fprintf(msg, `"pkgversion": "%s"}}`, esc.escape(pkgVersion(p)))
}

// writeUpgrade emits the installed (old) version as pkgversion and the
// incoming one as pkgnewversion.
func writeUpgrade(msg *bytes.Buffer, esc *escaper, k Kind, p types.Package) {
	var old string
	if p != nil {
		old = p.OldVersion()
	}
	fmt.Fprintf(msg, `{ "type": "%s", "data": { "pkgname": "%s", `, k.Tag(), esc.escape(pkgName(p)))
	fmt.Fprintf(msg, `"pkgversion": "%s" ,`, esc.escape(old))
	fmt.Fprintf(msg, `"pkgnewversion": "%s"}}`, esc.escape(pkgVersion(p)))
}

// writeRequired appends every dependent followed by ", " and trims the last
// separator once the list is known to be non-empty.
func writeRequired(msg *bytes.Buffer, esc *escaper, e RequiredEvent) {
	fmt.Fprintf(msg, `{ "type": "ERROR_REQUIRED", "data": { "pkgname": "%s", `, esc.escape(pkgName(e.Pkg)))
	fmt.Fprintf(msg, `"pkgversion": "%s", "force": %t, "required_by": [`, esc.escape(pkgVersion(e.Pkg)), e.Force)
	n := 0
	if e.Pkg != nil {
		for d := range e.Pkg.Dependents() {
			fmt.Fprintf(msg, `{ "pkgname": "%s", `, esc.escape(d.Name()))
			fmt.Fprintf(msg, `"pkgversion": "%s" }, `, esc.escape(d.Version()))
			n++
		}
	}
	if n > 0 {
		msg.Truncate(msg.Len() - len(", "))
	}
	msg.WriteString("]}}")
}

// writeConflict separates entries by looking ahead, so the last one is
// written without a trailing comma.
func writeConflict(msg *bytes.Buffer, esc *escaper, e IntegrityCheckConflictEvent) {
	fmt.Fprintf(msg, `{ "type": "INFO_INTEGRITYCHECK_CONFLICT","data": { "pkgname": "%s", `, esc.escape(e.Name))
	fmt.Fprintf(msg, `"pkgversion": "%s", `, esc.escape(e.Version))
	fmt.Fprintf(msg, `"pkgorigin": "%s", `, esc.escape(e.Origin))
	fmt.Fprintf(msg, `"pkgpath": "%s", "conflicts": [`, esc.escape(e.Path))
	for i, c := range e.Conflicts {
		fmt.Fprintf(msg, `{"name":"%s",`, esc.escape(c.Name))
		fmt.Fprintf(msg, `"version":"%s",`, esc.escape(c.Version))
		fmt.Fprintf(msg, `"origin":"%s"}`, esc.escape(c.Origin))
		if i < len(e.Conflicts)-1 {
			msg.WriteByte(',')
		}
	}
	msg.WriteString("]}}")
}

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

func pkgMessage(p types.Package) string {
	if p == nil {
		return ""
	}
	return p.Message()
}

func pluginName(p types.Plugin) string {
	if p == nil {
		return ""
	}
	return p.Name()
}

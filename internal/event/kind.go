package event

import "fmt"

// Kind identifies an event variant.
type Kind int

const (
	KindError Kind = iota
	KindNotice
	KindDeveloperMode
	KindErrno
	KindDebug
	KindFetching
	KindInstallBegin
	KindInstallFinished
	KindDeinstallBegin
	KindDeinstallFinished
	KindUpgradeBegin
	KindUpgradeFinished
	KindIntegrityCheckBegin
	KindIntegrityCheckConflict
	KindIntegrityCheckFinished
	KindLocked
	KindRequired
	KindAlreadyInstalled
	KindMissingDep
	KindNoRemoteDB
	KindNoLocalDB
	KindNewPkgVersion
	KindFileMismatch
	KindPluginErrno
	KindPluginError
	KindPluginInfo
	KindNotFound
	KindIncrementalUpdate

	numKinds
)

var kindNames = [numKinds]string{
	KindError:                  "error",
	KindNotice:                 "notice",
	KindDeveloperMode:          "developer_mode",
	KindErrno:                  "errno",
	KindDebug:                  "debug",
	KindFetching:               "fetching",
	KindInstallBegin:           "install_begin",
	KindInstallFinished:        "install_finished",
	KindDeinstallBegin:         "deinstall_begin",
	KindDeinstallFinished:      "deinstall_finished",
	KindUpgradeBegin:           "upgrade_begin",
	KindUpgradeFinished:        "upgrade_finished",
	KindIntegrityCheckBegin:    "integritycheck_begin",
	KindIntegrityCheckConflict: "integritycheck_conflict",
	KindIntegrityCheckFinished: "integritycheck_finished",
	KindLocked:                 "locked",
	KindRequired:               "required",
	KindAlreadyInstalled:       "already_installed",
	KindMissingDep:             "missing_dep",
	KindNoRemoteDB:             "noremotedb",
	KindNoLocalDB:              "nolocaldb",
	KindNewPkgVersion:          "newpkgversion",
	KindFileMismatch:           "file_mismatch",
	KindPluginErrno:            "plugin_errno",
	KindPluginError:            "plugin_error",
	KindPluginInfo:             "plugin_info",
	KindNotFound:               "not_found",
	KindIncrementalUpdate:      "incremental_update",
}

// Wire tags written in the "type" field of pipe lines. Several kinds share a
// tag; debug and not-found have none and are never written to the pipe.
var kindTags = [numKinds]string{
	KindError:                  "ERROR",
	KindNotice:                 "NOTICE",
	KindDeveloperMode:          "ERROR",
	KindErrno:                  "ERROR",
	KindFetching:               "INFO_FETCH",
	KindInstallBegin:           "INFO_INSTALL_BEGIN",
	KindInstallFinished:        "INFO_INSTALL_FINISHED",
	KindDeinstallBegin:         "INFO_DEINSTALL_BEGIN",
	KindDeinstallFinished:      "INFO_DEINSTALL_FINISHED",
	KindUpgradeBegin:           "INFO_UPGRADE_BEGIN",
	KindUpgradeFinished:        "INFO_UPGRADE_FINISHED",
	KindIntegrityCheckBegin:    "INFO_INTEGRITYCHECK_BEGIN",
	KindIntegrityCheckConflict: "INFO_INTEGRITYCHECK_CONFLICT",
	KindIntegrityCheckFinished: "INFO_INTEGRITYCHECK_FINISHED",
	KindLocked:                 "ERROR_LOCKED",
	KindRequired:               "ERROR_REQUIRED",
	KindAlreadyInstalled:       "ERROR_ALREADY_INSTALLED",
	KindMissingDep:             "ERROR_MISSING_DEP",
	KindNoRemoteDB:             "ERROR_NOREMOTEDB",
	KindNoLocalDB:              "ERROR_NOLOCALDB",
	KindNewPkgVersion:          "INFO_NEWPKGVERSION",
	KindFileMismatch:           "ERROR_FILE_MISMATCH",
	KindPluginErrno:            "ERROR_PLUGIN",
	KindPluginError:            "ERROR_PLUGIN",
	KindPluginInfo:             "INFO_PLUGIN",
	KindIncrementalUpdate:      "INFO_INCREMENTAL_UPDATE",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Tag returns the pipe "type" value for k, or "" when k is not written to the pipe.
func (k Kind) Tag() string {
	if k < 0 || k >= numKinds {
		return ""
	}
	return kindTags[k]
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a kind name as returned by String back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

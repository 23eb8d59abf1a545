package event

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pkgevent/pkg/types"
)

func TestMarshal_Lines(t *testing.T) {
	ev := sampleEvents()
	cases := []struct {
		kind Kind
		want string
	}{
		{KindError, `{ "type": "ERROR", "data": {"msg": "boom"}}`},
		{KindNotice, `{ "type": "NOTICE", "data": {"msg": "hello"}}`},
		{KindDeveloperMode, `{ "type": "ERROR", "data": {"msg": "DEVELOPER_MODE: bad plist"}}`},
		{KindFetching, `{ "type": "INFO_FETCH", "data": { "url": "http://pkg/foo.txz", "fetched": 40, "total": 100}}`},
		{KindInstallBegin, `{ "type": "INFO_INSTALL_BEGIN", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`},
		{KindInstallFinished, `{ "type": "INFO_INSTALL_FINISHED", "data": { "pkgname": "foo", "pkgversion": "2.0", "message": "run \"foo --init\""}}`},
		{KindDeinstallBegin, `{ "type": "INFO_DEINSTALL_BEGIN", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`},
		{KindDeinstallFinished, `{ "type": "INFO_DEINSTALL_FINISHED", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`},
		{KindUpgradeBegin, `{ "type": "INFO_UPGRADE_BEGIN", "data": { "pkgname": "foo", "pkgversion": "1.0" ,"pkgnewversion": "2.0"}}`},
		{KindUpgradeFinished, `{ "type": "INFO_UPGRADE_FINISHED", "data": { "pkgname": "foo", "pkgversion": "1.0" ,"pkgnewversion": "2.0"}}`},
		{KindIntegrityCheckBegin, `{ "type": "INFO_INTEGRITYCHECK_BEGIN", "data": {}}`},
		{KindIntegrityCheckFinished, `{ "type": "INFO_INTEGRITYCHECK_FINISHED", "data": {}}`},
		{KindLocked, `{ "type": "ERROR_LOCKED", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`},
		{KindRequired, `{ "type": "ERROR_REQUIRED", "data": { "pkgname": "foo", "pkgversion": "2.0", "force": true, "required_by": [{ "pkgname": "bar", "pkgversion": "1.1" }, { "pkgname": "baz", "pkgversion": "3" }]}}`},
		{KindAlreadyInstalled, `{ "type": "ERROR_ALREADY_INSTALLED", "data": { "pkgname": "foo", "pkgversion": "2.0"}}`},
		{KindMissingDep, `{ "type": "ERROR_MISSING_DEP", "data": { "depname": "libbar", "depversion": "1.0"}}`},
		{KindNoRemoteDB, `{ "type": "ERROR_NOREMOTEDB", "data": { "url": "FreeBSD" }}`},
		{KindNoLocalDB, `{ "type": "ERROR_NOLOCALDB", "data": {}}`},
		{KindNewPkgVersion, `{ "type": "INFO_NEWPKGVERSION", "data": {}}`},
		{KindFileMismatch, `{ "type": "ERROR_FILE_MISMATCH", "data": { "pkgname": "foo", "pkgversion": "2.0", "path": "/usr/local/bin/foo"}}`},
		{KindPluginError, `{ "type": "ERROR_PLUGIN", "data": {"plugin": "stats", "msg": "failed"}}`},
		{KindPluginInfo, `{ "type": "INFO_PLUGIN", "data": {"plugin": "stats", "msg": "loaded"}}`},
		{KindIncrementalUpdate, `{ "type": "INFO_INCREMENTAL_UPDATE", "data": {"updated": 1, "removed": 2, "added": 3, "processed": 6}}`},
	}
	for _, c := range cases {
		got, ok := Marshal(ev[c.kind])
		if !ok {
			t.Fatalf("%s: no pipe line", c.kind)
		}
		if string(got) != c.want {
			t.Fatalf("%s:\n got %s\nwant %s", c.kind, got, c.want)
		}
	}
}

func TestMarshal_Errno(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("errno strings differ on windows")
	}
	got, _ := Marshal(sampleEvents()[KindErrno])
	want := `{ "type": "ERROR", "data": {"msg": "open(/tmp/x): No such file or directory","errno": 2}}`
	if string(got) != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
	got, _ = Marshal(sampleEvents()[KindPluginErrno])
	want = `{ "type": "ERROR_PLUGIN", "data": {"plugin": "stats", "msg": "stat(/var/db): Permission denied","errno": 13}}`
	if string(got) != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}
}

func TestMarshal_EveryTaggedKindIsValidJSON(t *testing.T) {
	for k, ev := range sampleEvents() {
		line, ok := Marshal(ev)
		if ok != (k.Tag() != "") {
			t.Fatalf("%s: Marshal ok=%v but tag=%q", k, ok, k.Tag())
		}
		if !ok {
			continue
		}
		var rec types.EventLine
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("%s: invalid JSON %s: %v", k, line, err)
		}
		if rec.Type != k.Tag() {
			t.Fatalf("%s: type=%q, want %q", k, rec.Type, k.Tag())
		}
	}
	if len(sampleEvents()) != len(Kinds()) {
		t.Fatalf("sample events cover %d of %d kinds", len(sampleEvents()), len(Kinds()))
	}
}

func TestMarshal_RequiredBy(t *testing.T) {
	type dep struct {
		Name    string `json:"pkgname"`
		Version string `json:"pkgversion"`
	}
	cases := []struct {
		name string
		deps []types.Dependency
		want []dep
	}{
		{"none", nil, []dep{}},
		{"one", []types.Dependency{types.NewDep("a", "1")}, []dep{{"a", "1"}}},
		{"many", []types.Dependency{types.NewDep("a", "1"), types.NewDep("b", "2"), types.NewDep("c", "3")},
			[]dep{{"a", "1"}, {"b", "2"}, {"c", "3"}}},
	}
	for _, c := range cases {
		p := types.NewPkg("foo", "1.0", types.WithDependents(c.deps...))
		line, _ := Marshal(RequiredEvent{Pkg: p})
		var rec struct {
			Data struct {
				Force      bool  `json:"force"`
				RequiredBy []dep `json:"required_by"`
			} `json:"data"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("%s: invalid JSON %s: %v", c.name, line, err)
		}
		if rec.Data.Force {
			t.Fatalf("%s: force should be false", c.name)
		}
		if diff := cmp.Diff(c.want, rec.Data.RequiredBy); diff != "" {
			t.Fatalf("%s: required_by mismatch (-want +got):\n%s", c.name, diff)
		}
	}

	line, _ := Marshal(RequiredEvent{Pkg: types.NewPkg("foo", "1.0")})
	if want := `"force": false, "required_by": []}}`; string(line[len(line)-len(want):]) != want {
		t.Fatalf("empty list rendered as %s", line)
	}
}

func TestMarshal_Conflicts(t *testing.T) {
	all := []types.Conflict{
		{Name: "a", Version: "1", Origin: "x/a"},
		{Name: "b", Version: "2", Origin: "x/b"},
		{Name: "c", Version: "3", Origin: "x/c"},
	}
	for n := 0; n <= len(all); n++ {
		ev := IntegrityCheckConflictEvent{Name: "foo", Version: "1", Origin: "x/foo", Path: `/a "b"`, Conflicts: all[:n]}
		line, _ := Marshal(ev)
		var rec struct {
			Data struct {
				Path      string           `json:"pkgpath"`
				Conflicts []types.Conflict `json:"conflicts"`
			} `json:"data"`
		}
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("n=%d: invalid JSON %s: %v", n, line, err)
		}
		if rec.Data.Path != `/a "b"` {
			t.Fatalf("n=%d: path=%q", n, rec.Data.Path)
		}
		want := all[:n]
		if n == 0 {
			want = []types.Conflict{}
		}
		if diff := cmp.Diff(want, rec.Data.Conflicts); diff != "" {
			t.Fatalf("n=%d: conflicts mismatch (-want +got):\n%s", n, diff)
		}
	}
	line, _ := Marshal(IntegrityCheckConflictEvent{Conflicts: all[:1]})
	want := `{ "type": "INFO_INTEGRITYCHECK_CONFLICT","data": { "pkgname": "", "pkgversion": "", "pkgorigin": "", "pkgpath": "", "conflicts": [{"name":"a","version":"1","origin":"x/a"}]}}`
	if string(line) != want {
		t.Fatalf("got %s\nwant %s", line, want)
	}
}

func TestMarshal_NilHandlesDegradeToEmpty(t *testing.T) {
	cases := []Event{
		InstallBeginEvent{},
		InstallFinishedEvent{},
		RequiredEvent{},
		MissingDepEvent{},
		FileMismatchEvent{},
		PluginErrorEvent{},
		ErrnoEvent{},
	}
	for _, ev := range cases {
		line, ok := Marshal(ev)
		if !ok || !json.Valid(line) {
			t.Fatalf("%s: got %s ok=%v", ev.Kind(), line, ok)
		}
	}
}

func TestMarshal_UntaggedKinds(t *testing.T) {
	for _, ev := range []Event{DebugEvent{Level: 2, Msg: "x"}, NotFoundEvent{Name: "foo"}} {
		if line, ok := Marshal(ev); ok || line != nil {
			t.Fatalf("%s: expected no pipe line, got %q", ev.Kind(), line)
		}
	}
}

func TestMarshal_TypedNilPkg(t *testing.T) {
	var p *types.Pkg
	cases := []Event{
		InstallBeginEvent{Pkg: p},
		UpgradeFinishedEvent{Pkg: p},
		RequiredEvent{Pkg: p, Force: true},
		FileMismatchEvent{Pkg: p},
	}
	for _, ev := range cases {
		line, ok := Marshal(ev)
		if !ok || !json.Valid(line) {
			t.Fatalf("%s: got %s ok=%v", ev.Kind(), line, ok)
		}
	}
	line, _ := Marshal(RequiredEvent{Pkg: p})
	if !strings.Contains(string(line), `"required_by": []`) {
		t.Fatalf("required line = %s", line)
	}
}

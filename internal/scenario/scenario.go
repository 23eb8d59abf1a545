// Package scenario replays a scripted sequence of emissions through an
// event.Emitter. Scenarios drive the CLI and end-to-end tests.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"pkgevent/internal/event"
	"pkgevent/pkg/types"
)

// File is a scenario document.
type File struct {
	Packages []Package `json:"packages" yaml:"packages"`
	Steps    []Step    `json:"steps" yaml:"steps"`
}

// Package declares a package referenced by steps through its name.
type Package struct {
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version" yaml:"version"`
	OldVersion string `json:"old_version" yaml:"old_version"`
	Origin     string `json:"origin" yaml:"origin"`
	Message    string `json:"message" yaml:"message"`
	RequiredBy []Ref  `json:"required_by" yaml:"required_by"`
}

// Ref names a dependency.
type Ref struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Step is one emission. Emit is a kind name (see event.Kind.String); the
// other fields are read according to the kind.
type Step struct {
	Emit      string           `json:"emit" yaml:"emit"`
	Pkg       string           `json:"pkg" yaml:"pkg"`
	Msg       string           `json:"msg" yaml:"msg"`
	Level     int              `json:"level" yaml:"level"`
	URL       string           `json:"url" yaml:"url"`
	Total     int64            `json:"total" yaml:"total"`
	Done      int64            `json:"done" yaml:"done"`
	ElapsedMS int64            `json:"elapsed_ms" yaml:"elapsed_ms"`
	Func      string           `json:"func" yaml:"func"`
	Arg       string           `json:"arg" yaml:"arg"`
	Errno     int              `json:"errno" yaml:"errno"`
	Force     bool             `json:"force" yaml:"force"`
	Dep       Ref              `json:"dep" yaml:"dep"`
	Path      string           `json:"path" yaml:"path"`
	NewSum    string           `json:"newsum" yaml:"newsum"`
	Plugin    string           `json:"plugin" yaml:"plugin"`
	Repo      string           `json:"repo" yaml:"repo"`
	Conflicts []types.Conflict `json:"conflicts" yaml:"conflicts"`
	Updated   int              `json:"updated" yaml:"updated"`
	Removed   int              `json:"removed" yaml:"removed"`
	Added     int              `json:"added" yaml:"added"`
	Processed int              `json:"processed" yaml:"processed"`
}

// Load reads a scenario from a .yaml/.yml or .json file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, filepath.Ext(path))
}

// Parse decodes a scenario; ext selects the format (".json" or YAML otherwise).
func Parse(b []byte, ext string) (*File, error) {
	var f File
	var err error
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(b, &f)
	} else {
		err = yaml.Unmarshal(b, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &f, nil
}

// Run validates every step, then emits them in order. Nothing is emitted
// when validation fails.
func (f *File) Run(em *event.Emitter) error {
	pkgs := make(map[string]types.Package, len(f.Packages))
	for _, p := range f.Packages {
		pkgs[p.Name] = p.build()
	}
	calls := make([]func(), 0, len(f.Steps))
	for i, s := range f.Steps {
		call, err := s.bind(em, pkgs)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		calls = append(calls, call)
	}
	for _, call := range calls {
		call()
	}
	return nil
}

func (p Package) build() types.Package {
	deps := make([]types.Dependency, 0, len(p.RequiredBy))
	for _, r := range p.RequiredBy {
		deps = append(deps, types.NewDep(r.Name, r.Version))
	}
	return types.NewPkg(p.Name, p.Version,
		types.WithOldVersion(p.OldVersion),
		types.WithOrigin(p.Origin),
		types.WithMessage(p.Message),
		types.WithDependents(deps...),
	)
}

// bind resolves a step into the emission call it stands for.
func (s Step) bind(em *event.Emitter, pkgs map[string]types.Package) (func(), error) {
	kind, ok := event.ParseKind(s.Emit)
	if !ok {
		return nil, unknownKindError{kind: s.Emit}
	}
	var pkg types.Package
	if needsPkg(kind) {
		if pkg, ok = pkgs[s.Pkg]; !ok {
			return nil, unknownPackageError{name: s.Pkg}
		}
	}
	plug := types.NamedPlugin(s.Plugin)
	switch kind {
	case event.KindError:
		return func() { em.Error("%s", s.Msg) }, nil
	case event.KindNotice:
		return func() { em.Notice("%s", s.Msg) }, nil
	case event.KindDeveloperMode:
		return func() { em.DeveloperMode("%s", s.Msg) }, nil
	case event.KindErrno:
		return func() { em.Errno(s.Func, s.Arg, s.err()) }, nil
	case event.KindDebug:
		return func() { em.Debug(s.Level, "%s", s.Msg) }, nil
	case event.KindFetching:
		elapsed := time.Duration(s.ElapsedMS) * time.Millisecond
		return func() { em.Fetching(s.URL, s.Total, s.Done, elapsed) }, nil
	case event.KindInstallBegin:
		return func() { em.InstallBegin(pkg) }, nil
	case event.KindInstallFinished:
		return func() { em.InstallFinished(pkg) }, nil
	case event.KindDeinstallBegin:
		return func() { em.DeinstallBegin(pkg) }, nil
	case event.KindDeinstallFinished:
		return func() { em.DeinstallFinished(pkg) }, nil
	case event.KindUpgradeBegin:
		return func() { em.UpgradeBegin(pkg) }, nil
	case event.KindUpgradeFinished:
		return func() { em.UpgradeFinished(pkg) }, nil
	case event.KindIntegrityCheckBegin:
		return em.IntegrityCheckBegin, nil
	case event.KindIntegrityCheckConflict:
		return func() {
			em.IntegrityCheckConflict(pkg.Name(), pkg.Version(), pkg.Origin(), s.Path, s.Conflicts)
		}, nil
	case event.KindIntegrityCheckFinished:
		return em.IntegrityCheckFinished, nil
	case event.KindLocked:
		return func() { em.Locked(pkg) }, nil
	case event.KindRequired:
		return func() { em.Required(pkg, s.Force) }, nil
	case event.KindAlreadyInstalled:
		return func() { em.AlreadyInstalled(pkg) }, nil
	case event.KindMissingDep:
		dep := types.NewDep(s.Dep.Name, s.Dep.Version)
		return func() { em.MissingDep(pkg, dep) }, nil
	case event.KindNoRemoteDB:
		return func() { em.NoRemoteDB(s.Repo) }, nil
	case event.KindNoLocalDB:
		return em.NoLocalDB, nil
	case event.KindNewPkgVersion:
		return em.NewPkgVersion, nil
	case event.KindFileMismatch:
		return func() { em.FileMismatch(pkg, types.PkgFile(s.Path), s.NewSum) }, nil
	case event.KindPluginErrno:
		return func() { em.PluginErrno(plug, s.Func, s.Arg, s.err()) }, nil
	case event.KindPluginError:
		return func() { em.PluginError(plug, "%s", s.Msg) }, nil
	case event.KindPluginInfo:
		return func() { em.PluginInfo(plug, "%s", s.Msg) }, nil
	case event.KindNotFound:
		return func() { em.NotFound(s.Pkg) }, nil
	case event.KindIncrementalUpdate:
		return func() { em.IncrementalUpdate(s.Updated, s.Removed, s.Added, s.Processed) }, nil
	}
	return nil, unknownKindError{kind: s.Emit}
}

// err builds the failure of an errno step: the errno when set, else Msg.
func (s Step) err() error {
	if s.Errno != 0 {
		return syscall.Errno(s.Errno)
	}
	if s.Msg != "" {
		return errors.New(s.Msg)
	}
	return nil
}

func needsPkg(k event.Kind) bool {
	switch k {
	case event.KindInstallBegin, event.KindInstallFinished,
		event.KindDeinstallBegin, event.KindDeinstallFinished,
		event.KindUpgradeBegin, event.KindUpgradeFinished,
		event.KindIntegrityCheckConflict, event.KindLocked, event.KindRequired,
		event.KindAlreadyInstalled, event.KindMissingDep, event.KindFileMismatch:
		return true
	}
	return false
}

package types

import (
	"iter"
	"slices"
)

// Pkg is a plain in-memory Package.
type Pkg struct {
	name       string
	version    string
	oldVersion string
	origin     string
	message    string
	requiredBy []Dependency
}

// PkgOption configures optional Pkg fields.
type PkgOption func(*Pkg)

// WithOldVersion sets the version being replaced.
func WithOldVersion(v string) PkgOption { return func(p *Pkg) { p.oldVersion = v } }

// WithOrigin sets the package origin, e.g. "ports-mgmt/pkg".
func WithOrigin(o string) PkgOption { return func(p *Pkg) { p.origin = o } }

// WithMessage sets the post-install message.
func WithMessage(m string) PkgOption { return func(p *Pkg) { p.message = m } }

// WithDependents sets the packages depending on this one, in order.
func WithDependents(deps ...Dependency) PkgOption {
	return func(p *Pkg) { p.requiredBy = append([]Dependency(nil), deps...) }
}

func NewPkg(name, version string, opts ...PkgOption) *Pkg {
	p := &Pkg{name: name, version: version}
	for _, o := range opts {
		o(p)
	}
	return p
}

// The accessors are safe on a nil *Pkg and return zero values.

func (p *Pkg) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

func (p *Pkg) Version() string {
	if p == nil {
		return ""
	}
	return p.version
}

func (p *Pkg) OldVersion() string {
	if p == nil {
		return ""
	}
	return p.oldVersion
}

func (p *Pkg) Origin() string {
	if p == nil {
		return ""
	}
	return p.origin
}

func (p *Pkg) Message() string {
	if p == nil {
		return ""
	}
	return p.message
}

func (p *Pkg) Dependents() iter.Seq[Dependency] {
	if p == nil {
		return func(func(Dependency) bool) {}
	}
	return slices.Values(p.requiredBy)
}

// Dep is a plain Dependency.
type Dep struct{ name, version string }

func NewDep(name, version string) Dep { return Dep{name: name, version: version} }

func (d Dep) Name() string    { return d.name }
func (d Dep) Version() string { return d.version }

// PkgFile is a plain File.
type PkgFile string

func (f PkgFile) Path() string { return string(f) }

// NamedPlugin is a Plugin known only by name.
type NamedPlugin string

func (n NamedPlugin) Name() string { return string(n) }

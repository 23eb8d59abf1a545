package types

import "iter"

// Package is the read-only view of a package the event core needs.
// Implementations are owned by the package database layer.
type Package interface {
	Name() string
	Version() string
	// OldVersion is the version being replaced during an upgrade; empty when unknown.
	OldVersion() string
	Origin() string
	// Message is the post-install message shipped with the package.
	Message() string
	// Dependents yields the packages that depend on this one. Each call starts a
	// fresh iteration.
	Dependents() iter.Seq[Dependency]
}

// Dependency identifies a package by name and version.
type Dependency interface {
	Name() string
	Version() string
}

// File is a file entry of an installed package.
type File interface {
	Path() string
}

// Plugin is the identity of a loaded plugin.
type Plugin interface {
	Name() string
}

// Conflict is one package identity colliding with another during an integrity check.
type Conflict struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Origin  string `json:"origin" yaml:"origin"`
}

// Change classifies a version transition.
type Change int

const (
	Downgrade Change = iota
	Reinstall
	Upgrade
)

// Action returns the past-tense verb used in logs for the change.
func (c Change) Action() string {
	switch c {
	case Downgrade:
		return "downgraded"
	case Reinstall:
		return "reinstalled"
	default:
		return "upgraded"
	}
}

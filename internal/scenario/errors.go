package scenario

import "errors"

// unknownKindError is returned for a step naming no event kind.
type unknownKindError struct{ kind string }

func (e unknownKindError) Error() string { return "unknown event kind: " + e.kind }

// IsUnknownKind reports whether err is caused by an unknown event kind.
func IsUnknownKind(err error) bool {
	var target unknownKindError
	return errors.As(err, &target)
}

// unknownPackageError is returned for a step referencing an undeclared package.
type unknownPackageError struct{ name string }

func (e unknownPackageError) Error() string { return "unknown package: " + e.name }

// IsUnknownPackage reports whether err is caused by an undeclared package.
func IsUnknownPackage(err error) bool {
	var target unknownPackageError
	return errors.As(err, &target)
}

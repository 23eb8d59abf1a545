// Package version classifies version transitions of installed packages.
package version

import (
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"pkgevent/pkg/types"
)

// Compare returns -1, 0 or 1 when a is older than, equal to, or newer than b.
// Semantic versions are compared with go-version; anything it rejects
// (e.g. "1.2_1,1") falls back to epoch, then dotted segments, then port revision.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	pa, pb := parse(a), parse(b)
	if c := cmpInt(pa.epoch, pb.epoch); c != 0 {
		return c
	}
	if c := cmpSegments(pa.segments, pb.segments); c != 0 {
		return c
	}
	return cmpInt(pa.revision, pb.revision)
}

// ChangeOf classifies the move from old to cur. An empty old version counts as an upgrade.
func ChangeOf(old, cur string) types.Change {
	if old == "" {
		return types.Upgrade
	}
	switch Compare(old, cur) {
	case 1:
		return types.Downgrade
	case 0:
		return types.Reinstall
	default:
		return types.Upgrade
	}
}

type parsed struct {
	epoch    int
	revision int
	segments []string
}

func parse(s string) parsed {
	var p parsed
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		p.epoch, _ = strconv.Atoi(s[i+1:])
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		p.revision, _ = strconv.Atoi(s[i+1:])
		s = s[:i]
	}
	p.segments = strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == '-' || r == '+' })
	return p
}

func cmpSegments(a, b []string) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y string
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if c := cmpSegment(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// cmpSegment orders numeric segments numerically and everything else lexically;
// a missing segment sorts before a present one.
func cmpSegment(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmpInt(na, nb)
	}
	return strings.Compare(a, b)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

package event

import (
	"fmt"

	"pkgevent/internal/version"
	"pkgevent/pkg/types"
)

func (e *Emitter) logFinished(p types.Package, verb string) {
	if !e.syslogEnabled() || p == nil {
		return
	}
	_ = e.syslog.Notice(fmt.Sprintf("%s-%s %s", p.Name(), p.Version(), verb))
}

// upgradeLine formats "<name> <action>: <old> -> <new> ". With no old version
// the new one takes its place and the arrow is dropped, leaving two trailing spaces.
func upgradeLine(p types.Package) string {
	name, old, cur := p.Name(), p.OldVersion(), p.Version()
	action := version.ChangeOf(old, cur).Action()
	if old == "" {
		return fmt.Sprintf("%s %s: %s  ", name, action, cur)
	}
	return fmt.Sprintf("%s %s: %s -> %s ", name, action, old, cur)
}

func (e *Emitter) logUpgrade(p types.Package) {
	if !e.syslogEnabled() || p == nil {
		return
	}
	_ = e.syslog.Notice(upgradeLine(p))
}

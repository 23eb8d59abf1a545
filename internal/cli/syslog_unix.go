//go:build !windows && !plan9

package cli

import (
	"log/syslog"
)

func openSyslog() (syslogWriter, error) {
	return syslog.New(syslog.LOG_NOTICE|syslog.LOG_USER, "pkgevent")
}

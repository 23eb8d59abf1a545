//go:build windows || plan9

package cli

import (
	"errors"
)

func openSyslog() (syslogWriter, error) {
	return nil, errors.New("syslog is not supported on this platform")
}

package event

import "bytes"

// escaper makes strings safe to place between JSON double quotes by
// backslash-escaping '"' and '\'. Control characters pass through unchanged.
// The scratch buffer is reused across calls.
type escaper struct {
	buf bytes.Buffer
}

func (e *escaper) escape(s string) string {
	e.buf.Reset()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			e.buf.WriteByte('\\')
		}
		e.buf.WriteByte(c)
	}
	return e.buf.String()
}

// Escape returns s with every '"' and '\' preceded by a backslash.
func Escape(s string) string {
	var e escaper
	return e.escape(s)
}

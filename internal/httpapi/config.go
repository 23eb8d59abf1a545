package httpapi

// streamBuffer is the number of lines queued per /events subscriber before
// lines are dropped for it.
var streamBuffer = 256

// SetStreamBuffer configures the per-subscriber queue length.
func SetStreamBuffer(n int) {
	if n <= 0 {
		streamBuffer = 256
		return
	}
	streamBuffer = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyComponentID = "component_id"
	KeyBuildID     = "build_id"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyPath        = "path"
	KeyKey         = "key"
	KeyBucket      = "bucket"
	KeyTool        = "tool"
	KeyExitCode    = "exit_code"
	KeyMethod      = "method"
	KeyStatus      = "status"
	KeyUserAgent   = "user_agent"
	KeyRemoteAddr  = "remote_addr"
	KeyRequestID   = "request_id"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ComponentID(id string) slog.Attr { return slog.String(KeyComponentID, id) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Key(k string) slog.Attr          { return slog.String(KeyKey, k) }
func Bucket(b string) slog.Attr       { return slog.String(KeyBucket, b) }
func Tool(t string) slog.Attr         { return slog.String(KeyTool, t) }
func ExitCode(c int) slog.Attr        { return slog.Int(KeyExitCode, c) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(s int) slog.Attr          { return slog.Int(KeyStatus, s) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPage       = "page"
	KeyContainer  = "container"
	KeyPrefix     = "prefix"
	KeySelector   = "selector"
	KeyCount      = "count"
	KeyPageID     = "page_id"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyOperation  = "operation"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Page(name string) slog.Attr      { return slog.String(KeyPage, name) }
func Container(name string) slog.Attr { return slog.String(KeyContainer, name) }
func Prefix(p string) slog.Attr       { return slog.String(KeyPrefix, p) }
func Selector(s string) slog.Attr     { return slog.String(KeySelector, s) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func PageID(id string) slog.Attr      { return slog.String(KeyPageID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

package publish

import "path/filepath"

// MediaTypeFor derives the content type from a file name's extension.
// Deterministic and total: unknown extensions map to the generic binary type.
func MediaTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

package driver

import (
	"fmt"
	"os"
	"strings"
)

const byteOrderMark = "\uFEFF"

// LoadSource reads a script from disk. A leading byte order mark is dropped
// and CRLF line endings become LF so positions count lines the same way on
// every platform.
func LoadSource(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("source: empty path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("source: read %s: %w", path, err)
	}
	return NormalizeSource(string(data)), nil
}

// NormalizeSource applies the same cleanup as LoadSource to in-memory text.
func NormalizeSource(text string) string {
	text = strings.TrimPrefix(text, byteOrderMark)
	return strings.ReplaceAll(text, "\r\n", "\n")
}

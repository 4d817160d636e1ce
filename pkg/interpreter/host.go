package interpreter

import (
	"fmt"
	"io"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/driver"
)

// Host is the slice of the operating system the built-ins touch.
type Host interface {
	ReadFile(path string) (string, error)
	Clear(w io.Writer) error
}

// OSHost talks to the real filesystem and terminal.
type OSHost struct{}

func (OSHost) ReadFile(path string) (string, error) {
	return driver.LoadSource(path)
}

// Clear homes the cursor and erases the screen with ANSI escapes.
func (OSHost) Clear(w io.Writer) error {
	if _, err := fmt.Fprint(w, "\x1b[H\x1b[2J"); err != nil {
		return fmt.Errorf("clear screen: %w", err)
	}
	return nil
}

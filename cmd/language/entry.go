package main

import (
	"fmt"
	"log/slog"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/driver"
)

func (c *cli) runEntry(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(c.stderr, "usage: language run <file>")
		return 1
	}
	path := args[0]
	source, err := driver.LoadSource(path)
	if err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return 1
	}

	interp := c.newInterpreter()
	if _, err := interp.Run(path, source); err != nil {
		c.reportError(err)
		return 1
	}
	return 0
}

// runCheck lexes, parses and validates without evaluating anything.
func (c *cli) runCheck(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(c.stderr, "usage: language check <file>...")
		return 1
	}
	status := 0
	for _, path := range args {
		source, err := driver.LoadSource(path)
		if err != nil {
			fmt.Fprintf(c.stderr, "%v\n", err)
			status = 1
			continue
		}
		program, err := c.newInterpreter().Check(path, source)
		if err != nil {
			c.reportError(err)
			status = 1
			continue
		}
		c.logger.Debug("checked", slog.String("path", path), slog.Int("statements", len(program.Statements)))
		fmt.Fprintf(c.stdout, "%s: ok\n", path)
	}
	return status
}

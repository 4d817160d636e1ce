package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  language [--config path] [--debug] <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run <file>        run a script")
	fmt.Fprintln(w, "  check <file>...   parse and validate scripts without running them")
	fmt.Fprintln(w, "  repl              start the interactive shell (default)")
	fmt.Fprintln(w, "  version           print the tool version")
	fmt.Fprintln(w, "  help              show this message")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "A bare file argument is the same as `run <file>`.")
	fmt.Fprintln(w, "Configuration is read from the nearest language.yml; LANGUAGE_LOG_LEVEL overrides log_level.")
}

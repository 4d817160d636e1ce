package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/interpreter"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

const defaultHistoryFile = ".language_history"

func (c *cli) runRepl(args []string) int {
	if len(args) != 0 {
		fmt.Fprintln(c.stderr, "usage: language repl")
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := c.historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				c.logger.Warn("history not saved", slog.String("path", histPath), slog.Any("error", err))
			}
		}()
	}

	stop := watchSignals(func() {
		ln.Close()
		os.Exit(130)
	})
	defer stop()

	interp := c.newInterpreter()
	interp.SetInput(&linerInput{ln: ln})

	for {
		line, err := ln.Prompt(c.cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.stdout)
			return 0
		}
		if err != nil {
			fmt.Fprintf(c.stderr, "repl: %v\n", err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		c.evalLine(interp, line)
	}
}

// watchSignals calls onSignal when the process is asked to terminate. The
// returned stop function unregisters the handler and ends the watcher.
func watchSignals(onSignal func()) (stop func()) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		defer close(exited)
		select {
		case <-sigc:
			onSignal()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigc)
		close(done)
		<-exited
	}
}

func (c *cli) historyPath() string {
	if c.cfg.HistoryFile != "" {
		return c.cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultHistoryFile)
}

// evalLine runs one line against the shared globals and echoes its value.
func (c *cli) evalLine(interp *interpreter.Interpreter, line string) {
	value, err := interp.Run(c.cfg.SourceName, line)
	if err != nil {
		c.reportError(err)
		return
	}
	if text, ok := formatReplValue(value); ok {
		fmt.Fprintf(c.stdout, ">>> %s\n", text)
	}
}

// formatReplValue shows a single statement's value on its own and a line of
// several statements as the list of their values.
func formatReplValue(value runtime.Value) (string, bool) {
	list, ok := value.(runtime.ListValue)
	if !ok {
		return runtime.Repr(value), true
	}
	switch list.Len() {
	case 0:
		return "", false
	case 1:
		return runtime.Repr(list.Elements()[0]), true
	}
	return runtime.Repr(list), true
}

// linerInput feeds `input()` one prompted line at a time so it does not race
// the shell for buffered stdin.
type linerInput struct {
	ln      *liner.State
	pending []byte
}

func (r *linerInput) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, err := r.ln.Prompt("")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return 0, io.EOF
			}
			return 0, err
		}
		r.pending = []byte(line + "\n")
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/driver"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/interpreter"
)

const cliToolVersion = "language 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := &cli{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   os.Stdin,
		workDir: ".",
		lookup:  os.LookupEnv,
	}
	return c.run(args)
}

type cli struct {
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
	workDir string
	lookup  func(string) (string, bool)

	cfg    *driver.Config
	logger *slog.Logger
}

func (c *cli) run(args []string) int {
	fs := flag.NewFlagSet("language", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { printUsage(c.stderr) }
	configPath := fs.String("config", "", "path to a language.yml file")
	debug := fs.Bool("debug", false, "log evaluation at debug level")
	version := fs.Bool("version", false, "print the tool version")
	fs.BoolVar(version, "V", false, "print the tool version")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := fs.Args()

	if *version || (len(rest) > 0 && rest[0] == "version") {
		fmt.Fprintln(c.stdout, cliToolVersion)
		return 0
	}
	if len(rest) > 0 && rest[0] == "help" {
		printUsage(c.stdout)
		return 0
	}

	if err := c.configure(*configPath, *debug); err != nil {
		fmt.Fprintf(c.stderr, "%v\n", err)
		return 1
	}

	if len(rest) == 0 {
		return c.runRepl(nil)
	}
	switch rest[0] {
	case "run":
		return c.runEntry(rest[1:])
	case "check":
		return c.runCheck(rest[1:])
	case "repl":
		return c.runRepl(rest[1:])
	default:
		return c.runEntry(rest)
	}
}

func (c *cli) configure(configPath string, debug bool) error {
	cfg, err := driver.ResolveConfig(configPath, c.workDir)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(c.lookup); err != nil {
		return err
	}
	if debug {
		cfg.LogLevel = slog.LevelDebug
	}
	c.cfg = cfg
	c.logger = slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cfg.Path != "" {
		c.logger.Debug("loaded config", slog.String("path", cfg.Path))
	}
	return nil
}

func (c *cli) newInterpreter() *interpreter.Interpreter {
	interp := interpreter.New()
	interp.SetOutput(c.stdout)
	interp.SetInput(c.stdin)
	interp.SetLogger(c.logger)
	return interp
}

// reportError prints language diagnostics with their snippet and traceback,
// and anything else as its plain message.
func (c *cli) reportError(err error) {
	msg := err.Error()
	var diag *diagnostics.Error
	if errors.As(err, &diag) {
		msg = diag.Render()
	}
	if c.cfg != nil && c.cfg.Color {
		msg = red(msg)
	}
	fmt.Fprintln(c.stderr, msg)
}

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

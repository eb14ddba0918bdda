// Command canon reads expressions one per line and prints their canonical
// form: bound variables renamed to a, b, c, ... in binding order.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/smasher164/synth/dedup"
	"github.com/smasher164/synth/expr"
	"github.com/smasher164/synth/internal/config"
	"github.com/smasher164/synth/logging"
	"github.com/smasher164/synth/ops"
)

func usage(w io.Writer) {
	fmt.Fprint(w, "usage: canon [-config file] [-dedup] [-size] [-ops] [file]\n\n")
	fmt.Fprint(w, "canon prints the canonical form of each expression in file (or stdin),\n")
	fmt.Fprint(w, "one per line. Lines starting with ';' are comments.\n\n")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("canon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		usage(stderr)
		fs.PrintDefaults()
	}
	var (
		configPath = fs.String("config", "", "YAML configuration file")
		dedupFlag  = fs.Bool("dedup", false, "drop expressions alpha-equivalent to an earlier line")
		sizeFlag   = fs.Bool("size", false, "prefix each line with the expression size")
		opsFlag    = fs.Bool("ops", false, "print the operator table as YAML and exit")
		logLevel   = fs.String("log-level", "", "log level (debug, info, warn, error)")
		logFormat  = fs.String("log-format", "", "log format (text, json)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dedup":
			cfg.Dedup = *dedupFlag
		case "size":
			cfg.Size = *sizeFlag
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := newLogger(cfg, stderr)

	if *opsFlag {
		if err := ops.WriteCatalog(stdout, cfg.Operators()...); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	in := stdin
	if fs.NArg() == 1 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	}

	c := &canon{cfg: cfg, log: log, out: bufio.NewWriter(stdout), set: dedup.New(dedup.WithLogger(log))}
	failed, err := c.process(in)
	if ferr := c.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.Info("done", "unique", c.set.Len(), "duplicates", c.set.Dropped(), "errors", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func newLogger(cfg config.Config, stderr io.Writer) logging.Logger {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	format := cfg.Log.Format
	if format == "" {
		format = "json"
		if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			format = "text"
		}
	}
	return logging.NewLogger(&logging.Config{Level: level, Format: format, Output: stderr})
}

type canon struct {
	cfg config.Config
	log logging.Logger
	out *bufio.Writer
	set *dedup.Set
}

// process handles every line of in and returns how many lines were rejected.
func (c *canon) process(in io.Reader) (int, error) {
	allowed := c.cfg.Operators()
	sc := bufio.NewScanner(in)
	failed := 0
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		e, err := expr.Parse(line, expr.WithOperators(allowed))
		if err == nil {
			err = expr.Validate(e)
		}
		if err != nil {
			failed++
			c.log.Warn("rejected expression", "line", lineno, "error", err)
			fmt.Fprintf(c.out, "line %d: %v\n", lineno, err)
			continue
		}
		if c.cfg.Dedup {
			if _, added := c.set.Add(e); !added {
				continue
			}
		}
		if c.cfg.Size {
			fmt.Fprintf(c.out, "%d\t", expr.Size(e))
		}
		fmt.Fprintln(c.out, expr.Normalize(e))
	}
	return failed, sc.Err()
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	calc "github.com/zephyrtronium/powercalc"
)

const usage = `usage: powercalc [options] [expr ...]

Evaluates each expr in order, or lines from standard input if there are none.

options:
  -e file  load settings from a dotenv file (default .env if present)
  -n       disable colored output
  -v       print rule traces and syntax error details to stderr
  -h       show this help
`

type config struct {
	envfile string
	nocolor bool
	verbose bool
}

func main() {
	log.SetFlags(0)
	cfg, args := options(os.Args)
	if cfg.nocolor {
		color.NoColor = true
	}

	var opts []calc.SessionOption
	if cfg.verbose {
		opts = append(opts, calc.Trace(func(r calc.Reduction, v calc.Result) {
			log.Printf("%v => %s", r, v.Expr())
		}))
	}
	t := calc.NewTranscript(opts...)
	if err := run(t, args, os.Stdin, cfg.verbose); err != nil {
		log.Fatal(err)
	}
}

// run enters each argument, or each non-empty line of in if there are no
// arguments. Both go through Expand.
func run(t *calc.Transcript, args []string, in io.Reader, verbose bool) error {
	if len(args) > 0 {
		for _, arg := range args {
			enter(t, t.Expand(arg), verbose)
		}
		return nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if sc.Text() == "" {
			continue
		}
		enter(t, t.Expand(sc.Text()), verbose)
	}
	return sc.Err()
}

// options reads the command line and the environment. Command-line flags
// override POWERCALC_COLOR and POWERCALC_VERBOSE.
func options(argv []string) (config, []string) {
	var cfg config
	opts, optind, err := getopt.Getopts(argv, "e:nvh")
	if err != nil {
		log.Fatalln(err)
	}
	for _, opt := range opts {
		if opt.Option == 'e' {
			cfg.envfile = opt.Value
		}
	}
	if cfg.envfile != "" {
		if err := godotenv.Load(cfg.envfile); err != nil {
			log.Fatalf("loading %s: %v", cfg.envfile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}
	cfg.nocolor = !envbool("POWERCALC_COLOR", true)
	cfg.verbose = envbool("POWERCALC_VERBOSE", false)
	for _, opt := range opts {
		switch opt.Option {
		case 'e': // already done
		case 'n':
			cfg.nocolor = true
		case 'v':
			cfg.verbose = true
		default: // case 'h':
			fmt.Print(usage)
			os.Exit(0)
		}
	}
	return cfg, argv[optind:]
}

func envbool(name string, def bool) bool {
	s, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	return b
}

var (
	echo = color.New(color.FgHiBlack)
	bad  = color.New(color.FgRed)
)

func enter(t *calc.Transcript, line string, verbose bool) {
	e := t.Enter(line)
	echo.Println(e.Input)
	if e.Err == nil {
		fmt.Println(e.Output)
		return
	}
	bad.Println(e.Output)
	var se *calc.SyntaxError
	if verbose && errors.As(e.Err, &se) {
		log.Println(se.Detail())
	}
	var ie *calc.InternalError
	if errors.As(e.Err, &ie) && t.Session().Broken() {
		cause := error(ie)
		if ie.Err != nil {
			cause = ie.Err
		}
		log.Fatalf("session stopped: %v", cause)
	}
}

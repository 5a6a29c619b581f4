// clcheck lexes, parses and type-checks CL programs. Without a file it reads
// programs interactively.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/peterh/liner"

	"github.com/susji/cl/analyze"
	"github.com/susji/cl/config"
	"github.com/susji/cl/lex"
	"github.com/susji/cl/node"
	"github.com/susji/cl/parse"
)

const (
	exitOk       = 0
	exitFailed   = 1
	exitInternal = 2
)

type options struct {
	Config      string `short:"c" long:"config" description:"properties file with settings" default:"cl.properties"`
	Trace       bool   `short:"t" long:"trace" description:"trace the analysis to stderr"`
	Color       bool   `long:"color" description:"colorize diagnostics"`
	Context     bool   `long:"context" description:"show the source line of each diagnostic"`
	Dump        bool   `short:"d" long:"dump" description:"dump the annotated tree"`
	Tokens      bool   `long:"tokens" description:"dump lexed tokens"`
	MaxErrors   int    `long:"max-errors" description:"emit at most this many diagnostics, 0 for all" default:"-1"`
	LegacyCalls bool   `long:"legacy-calls" description:"calls always evaluate to the error type"`
	Args        struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

func fatal(f string, va ...interface{}) {
	fmt.Fprintf(os.Stderr, "fatal: "+f+"\n", va...)
	os.Exit(exitInternal)
}

func perr(f string, va ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+f+"\n", va...)
}

func note(f string, va ...interface{}) {
	fmt.Fprintf(os.Stdout, "[] "+f+"\n", va...)
}

func dumper(n node.Node, depth int) bool {
	i := ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	ie := 4 * depth
	if ie > len(i)-1 {
		ie = len(i) - 1
	}
	what := fmt.Sprintf("%T", n)
	switch n.(type) {
	case *node.Ident, *node.IntLit, *node.BoolLit, *node.BasicType:
		what = fmt.Sprintf("%s %s", what, n)
	}
	ref := ""
	if n.Ref() {
		ref = " ref"
	}
	fmt.Printf("%s %d: %s : %s%s\n", i[0:ie], n.Line(), what, n.Type(), ref)
	return true
}

// settings merges the configuration file with the command line, which takes
// precedence.
func settings(opts *options) *config.Config {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		fatal("config: %s", err)
	}
	cfg.Trace = cfg.Trace || opts.Trace
	cfg.Color = cfg.Color || opts.Color
	cfg.Context = cfg.Context || opts.Context
	cfg.ErrorCallResult = cfg.ErrorCallResult || opts.LegacyCalls
	if opts.MaxErrors >= 0 {
		cfg.MaxErrors = opts.MaxErrors
	}
	return cfg
}

type checker struct {
	opts *options
	cfg  *config.Config
}

// analyze returns the internal error of the analyzer, if any.
func (c *checker) analyze(a *analyze.Analyzer, root *node.Program) (ierr *analyze.InternalError) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if ierr, ok = r.(*analyze.InternalError); !ok {
				panic(r)
			}
		}
	}()
	a.Analyze(root)
	return nil
}

func (c *checker) check(fn string, src []rune) int {
	toks, lerrs := lex.Lex(src)
	for _, e := range lerrs {
		perr("%s: lex: %s", fn, e)
	}
	if c.opts.Tokens {
		fmt.Println(toks)
	}
	p := parse.NewFile(fn)
	root, err := p.Parse(toks)
	if err != nil {
		for _, e := range p.Errors() {
			perr("parse: %s", e)
		}
	}
	if len(lerrs) > 0 || err != nil {
		return exitFailed
	}

	aopts := c.cfg.Options()
	if c.cfg.Trace {
		aopts = append(aopts, analyze.WithTrace(log.New(os.Stderr, "", 0)))
	}
	a := analyze.New(fn, aopts...)
	if ierr := c.analyze(a, root); ierr != nil {
		perr("%s: %s", a.Fn(), ierr)
		return exitInternal
	}
	if c.opts.Dump {
		node.Walk(root, dumper)
	}
	if _, err := c.cfg.Emitter(os.Stdout, src).Emit(a.Diagnostics().Errors()); err != nil {
		perr("%s", err)
		return exitInternal
	}
	if a.Failed() {
		note("%s: %d errors", a.Fn(), a.Diagnostics().Len())
		return exitFailed
	}
	note("%s: ok", a.Fn())
	return exitOk
}

// readProgram collects lines until one ends the program.
func readProgram(ln *liner.State, i int) (string, error) {
	var b strings.Builder
	prompt := fmt.Sprintf("[%d] >> ", i)
	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		ln.AppendHistory(line)
		b.WriteString(line)
		b.WriteByte('\n')
		if strings.TrimSpace(line) == "endprogram" {
			return b.String(), nil
		}
		prompt = "   .. "
	}
}

func (c *checker) loop() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	for i := 0; ; i++ {
		src, err := readProgram(ln, i)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return exitOk
		}
		if err != nil {
			perr("%s", err)
			return exitInternal
		}
		c.check(fmt.Sprintf("<%d>", i), []rune(src))
	}
}

func main() {
	opts := &options{}
	if _, err := flags.Parse(opts); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(exitOk)
		}
		os.Exit(exitInternal)
	}
	c := &checker{opts: opts, cfg: settings(opts)}
	if opts.Args.File == "" {
		os.Exit(c.loop())
	}
	src, err := os.ReadFile(opts.Args.File)
	if err != nil {
		fatal("cannot open %s: %s", opts.Args.File, err)
	}
	os.Exit(c.check(opts.Args.File, bytes.Runes(src)))
}

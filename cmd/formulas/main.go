package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"github.com/zephyrtronium/formulas"
)

const usage = `usage: formulas [-aemh] [-D name=value]... [-f file] [formula...]

  -D name=value  placeholder definition (any number of times); value is
                 true, false, or a formula using earlier definitions
  -f file        read one formula per line from file (- for stdin; default
                 stdin if no formulas are given)
  -a             arithmetic operators only, no logic
  -m             enable math functions (exp, ln, log, sqrt, pow, pi, e)
  -e             print compiled trees
  -h             show this help`

func main() {
	log.SetFlags(0)
	var (
		inname string
		with   [][2]string
		echo   bool
		arith  bool
		math   bool
	)
	args, optind, err := getopt.Getopts(os.Args, "D:f:aemh")
	if err != nil {
		log.Fatalf("%v\n%s", err, usage)
	}
	for _, opt := range args {
		switch opt.Option {
		case 'D':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				log.Fatalf(`placeholder definitions must be "name=value", not %q`, opt.Value)
			}
			with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		case 'f':
			inname = opt.Value
		case 'a':
			arith = true
		case 'e':
			echo = true
		case 'm':
			math = true
		case 'h':
			fmt.Println(usage)
			return
		}
	}
	srcs := os.Args[optind:]
	var opts []formulas.Option
	if arith {
		opts = append(opts, formulas.WithOperators(formulas.ArithmeticOperators()...), formulas.WithFunctions())
	}
	if math {
		opts = append(opts, formulas.WithMath())
	}

	ev, err := formulas.NewEvaluator(opts...)
	if err != nil {
		log.Fatal(err)
	}
	for _, d := range with {
		v, err := define(ev, d[1], opts)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ev.Set(d[0], v)
	}

	if inname != "" || len(srcs) == 0 {
		lines, err := readLines(inname)
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, lines...)
	}

	failed := false
	for _, src := range srcs {
		ev.Formula = src
		if err := ev.Compile(); err != nil {
			diagnose(os.Stdout, src, err)
			failed = true
			continue
		}
		if echo {
			fmt.Printf("%v : ", ev.Expr())
		}
		r, err := ev.Evaluate()
		if err != nil {
			diagnose(os.Stdout, src, err)
			failed = true
			continue
		}
		fmt.Println(r)
	}
	if failed {
		os.Exit(1)
	}
}

// define computes the value of a placeholder definition.
func define(ev *formulas.Evaluator, src string, opts []formulas.Option) (formulas.Value, error) {
	switch src {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	e, err := formulas.Compile(src, opts...)
	if err != nil {
		return nil, err
	}
	return e.Eval(ev.Vars)
}

func readLines(inname string) ([]string, error) {
	var f io.Reader = os.Stdin
	if inname != "" && inname != "-" {
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	}
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) == "" {
			continue
		}
		lines = append(lines, s.Text())
	}
	return lines, s.Err()
}

var (
	caret = color.New(color.FgRed, color.Bold)
	faint = color.New(color.Faint)
)

// diagnose prints err, pointing at the failing part of src if err has a
// position.
func diagnose(w io.Writer, src string, err error) {
	var ie formulas.InputError
	if !errors.As(err, &ie) {
		fmt.Fprintln(w, caret.Sprint("error: ")+err.Error())
		return
	}
	fmt.Fprintln(w, faint.Sprint(src))
	fmt.Fprintln(w, strings.Repeat(" ", ie.Offset())+caret.Sprint("^ ")+err.Error())
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	calc "github.com/aatukaj/ferricalc"
)

const historyFile = ".ferricalc_history"

func main() {
	log.SetFlags(0)
	var (
		digits int
		hist   string
	)
	flag.IntVar(&digits, "digits", calc.DisplayDigits, "significant digits in displayed results")
	flag.StringVar(&hist, "history", defaultHistory(), "command history file (interactive mode)")
	flag.Parse()
	if digits < 1 {
		log.Fatalf("digits (%d) must be positive", digits)
	}

	in := calc.NewInterp()
	if flag.NArg() > 0 {
		// Non-interactive: evaluate each argument as one statement,
		// sharing the session environment across all of them.
		for _, arg := range flag.Args() {
			r, err := eval(in, arg)
			if err != nil {
				log.Fatal(errLines(arg, err))
			}
			in.SetAns(r)
			fmt.Println(calc.FormatFloat(r, digits))
		}
		return
	}
	repl(in, digits, hist)
}

func repl(in *calc.Interp, digits int, hist string) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		start, ok := calc.IdentRange(line, len(line))
		if !ok {
			return nil
		}
		var out []string
		in.Env().Search(line[start:], func(name string, _ calc.MemberKind) bool {
			out = append(out, line[:start]+name)
			return true
		})
		return out
	})

	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				continue
			}
			// io.EOF (Ctrl+D) or a terminal failure: leave the loop.
			fmt.Println()
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err := eval(in, line)
		if err != nil {
			fmt.Println(errLines(line, err))
			continue
		}
		in.SetAns(r)
		fmt.Println("= " + calc.FormatFloat(r, digits))
		ln.AppendHistory(line)
	}
}

// eval runs one committed statement through the whole pipeline.
func eval(in *calc.Interp, src string) (*big.Float, error) {
	stmt, err := calc.Parse(calc.Scan(src), src)
	if err != nil {
		return nil, err
	}
	return in.Eval(stmt, true)
}

// errLines renders an error, adding the source line with a caret under the
// offending byte when the error carries a position.
func errLines(src string, err error) string {
	var ie calc.InputError
	if errors.As(err, &ie) {
		return src + "\n" + strings.Repeat(" ", ie.Pos()) + "^ " + err.Error()
	}
	return err.Error()
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

/*
 * backend - Main process.
 *
 * Copyright (c) 2026, cclang contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/cclang/backend/codegen"
	"github.com/cclang/backend/config"
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/il"
	"github.com/cclang/backend/inssel"
	"github.com/cclang/backend/logger"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run does all the work and returns the process exit code, so every
// deferred file close runs before main calls os.Exit (spec.md §5: a
// run never leaks an open handle on any exit path).
func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		config.Usage()
		return exitCode(err)
	}
	if cfg.Help {
		config.Usage()
		return 0
	}

	log := logger.New(slog.LevelInfo, nil)
	slog.SetDefault(log)

	if cfg.Interactive {
		runInteractive(log)
		return 0
	}

	in, err := os.Open(cfg.Input)
	if err != nil {
		log.Error("cannot open input file", "file", cfg.Input, "err", err)
		return int(errcode.BadArgs)
	}
	defer in.Close()

	out, err := os.Create(cfg.Output)
	if err != nil {
		log.Error("cannot create output file", "file", cfg.Output, "err", err)
		return int(errcode.WriteFailed)
	}
	defer out.Close()

	tab := symtab.New()
	genErr := codegen.Generate(tab, in, out, codegen.WithDebug(buildDebug(cfg)))

	if cfg.PrintSymtab {
		// Generate's own per-function flush already cleared every
		// function's locals by the time it returns; only the constant
		// pool, shared across the whole run, survives to be dumped.
		dumpSymtab(os.Stderr, tab)
	}

	if genErr != nil {
		log.Error(genErr.Error())
		return exitCode(genErr)
	}
	log.Info("wrote assembly", "file", cfg.Output)
	return 0
}

func exitCode(err error) int {
	if ce, ok := err.(*errcode.Error); ok {
		return int(ce.Code)
	}
	return int(errcode.BadArgs)
}

func buildDebug(cfg *config.Config) *codegen.Debug {
	d := &codegen.Debug{}
	if cfg.PrintCFG {
		d.CFG = os.Stderr
	}
	if cfg.PrintIG {
		d.IG = os.Stderr
	}
	if cfg.PrintInfo {
		d.Info = os.Stderr
	}
	return d
}

func dumpSymtab(w io.Writer, tab *symtab.Table) {
	fmt.Fprintln(w, "symtab:")
	for _, id := range tab.Constants() {
		fmt.Fprintf(w, "  const %s\n", tab.Get(id).Name)
	}
}

// runInteractive is the -i IL REPL (SPEC_FULL.md §4.14): one IL
// statement per line, echoing the PASM the instruction-selection
// macro table expands it to. Operands stay unresolved symbol names
// since no register allocation runs over a REPL session.
func runInteractive(log *slog.Logger) {
	tab := symtab.New()
	ing := il.NewIngester(tab)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("ccgen interactive IL REPL -- one statement at a time, 'quit' to exit")
	for {
		input, err := line.Prompt("il> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			log.Error("error reading line", "err", err)
			return
		}
		line.AppendHistory(input)

		if strings.TrimSpace(input) == "quit" {
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		stmt, err := ing.Parse(input)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		out, err := inssel.Select(tab, stmt, nil)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		for _, s := range out {
			fmt.Println(renderStatement(tab, s))
		}
	}
}

func renderStatement(tab *symtab.Table, s pasm.Statement) string {
	parts := []string{s.Op.String()}
	for _, op := range s.Operands() {
		parts = append(parts, renderOperand(tab, op))
	}
	return strings.Join(parts, " ")
}

func renderOperand(tab *symtab.Table, op pasm.Operand) string {
	switch op.Kind {
	case pasm.KindImmediate:
		return strconv.FormatInt(op.Value, 10)
	case pasm.KindLabel:
		return op.Label
	case pasm.KindLocation:
		return op.Loc.String()
	default: // KindUnresolved: no register allocation has run yet
		name := tab.Get(op.Sym).Name
		if op.Deref {
			return "[" + name + "]"
		}
		return name
	}
}

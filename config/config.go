/*
 * backend - CLI flag parsing.
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

// Package config parses ccgen's command line (spec.md §6.3, SPEC_FULL.md
// §4.14), in the same getopt idiom the teacher's own main.go uses.
package config

import (
	"fmt"

	getopt "github.com/pborman/getopt/v2"

	"github.com/cclang/backend/errcode"
)

// Config is the fully parsed command line.
type Config struct {
	Input string // positional input IL file path

	Output string // -o, default "imm3"

	PrintCFG    bool // -dprint-cfg
	PrintIG     bool // -dprint-ig
	PrintInfo   bool // -dprint-info
	PrintSymtab bool // -dprint-symtab

	Interactive bool // -i, additive flag from SPEC_FULL.md §4.14

	Help bool // -h
}

// Parse parses args (excluding the program name, i.e. os.Args[1:]) into
// a Config. A missing positional input path is BadArgs (spec.md §7).
func Parse(args []string) (*Config, error) {
	set := getopt.New()

	output := set.StringLong("output", 'o', "imm3", "output file path")
	printCFG := set.BoolLong("dprint-cfg", 0, "dump CFG after liveness")
	printIG := set.BoolLong("dprint-ig", 0, "dump interference graph after coloring")
	printInfo := set.BoolLong("dprint-info", 0, "verbose allocator info")
	printSymtab := set.BoolLong("dprint-symtab", 0, "dump symbol table on exit")
	interactive := set.BoolLong("interactive", 'i', "enter the interactive IL REPL instead of batch mode")
	help := set.BoolLong("help", 'h', "show this help")

	if err := set.Getopt(args, nil); err != nil {
		return nil, errcode.New(errcode.BadArgs).WithToken(err.Error())
	}

	cfg := &Config{
		Output:      *output,
		PrintCFG:    *printCFG,
		PrintIG:     *printIG,
		PrintInfo:   *printInfo,
		PrintSymtab: *printSymtab,
		Interactive: *interactive,
		Help:        *help,
	}

	rest := set.Args()
	if cfg.Help {
		return cfg, nil
	}
	if cfg.Interactive {
		// The REPL reads IL from standard input line by line; a
		// positional file is neither required nor accepted.
		return cfg, nil
	}
	if len(rest) < 1 {
		return nil, errcode.New(errcode.BadArgs).WithToken("missing input IL file path")
	}
	cfg.Input = rest[0]
	return cfg, nil
}

// Usage writes the flag summary to getopt's configured writer (stderr
// by default), matching the teacher's getopt.Usage() call.
func Usage() {
	getopt.Usage()
}

// Synopsis is a one-line usage string for -h / BadArgs diagnostics.
func Synopsis(prog string) string {
	return fmt.Sprintf("usage: %s [-o PATH] [-dprint-cfg] [-dprint-ig] [-dprint-info] [-dprint-symtab] [-i] FILE", prog)
}

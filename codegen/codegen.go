/*
 * backend - Per-function pipeline orchestration.
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
 */

// Package codegen drives the per-function pipeline end to end: IL
// ingestion, CFG construction, instruction selection, register
// allocation, spill-code insertion, peephole cleanup, and assembly
// emission (spec.md §4, §5, §7). Each function runs to completion
// before the next begins and the symbol table resets between them,
// matching the single-threaded, single-function-at-a-time resource
// model spec.md §5 describes.
package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/emit"
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/il"
	"github.com/cclang/backend/inssel"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/peephole"
	"github.com/cclang/backend/regalloc"
	"github.com/cclang/backend/symtab"
	"github.com/cclang/backend/sysv"
)

// Debug collects the -dprint-* diagnostic streams (spec.md §6.3): a
// nil field skips that dump entirely. PrintSymtab is handled by the
// caller after Generate returns, since the table is reset between
// functions and only the constant pool survives to the end of a run.
type Debug struct {
	CFG  io.Writer // -dprint-cfg: each block's labels/IL/PASM after liveness
	IG   io.Writer // -dprint-ig: the interference graph after coloring
	Info io.Writer // -dprint-info: spill costs and loop depth per block
}

// Option configures a Generate run.
type Option func(*genOptions)

type genOptions struct {
	debug *Debug
}

// WithDebug attaches diagnostic dump streams to a Generate run.
func WithDebug(d *Debug) Option {
	return func(o *genOptions) { o.debug = d }
}

// Generate reads a whole translation unit's textual IL from r and
// writes the generated assembly for every function it defines to w,
// in the order they appear. It returns the first *errcode.Error any
// function's pipeline raises; per spec.md §7, an error aborts the
// current function and the run -- Generate does not attempt later
// functions once one has failed.
func Generate(tab *symtab.Table, r io.Reader, w io.Writer, opts ...Option) error {
	var o genOptions
	for _, opt := range opts {
		opt(&o)
	}

	scanner := bufio.NewScanner(r)
	ing := il.NewIngester(tab)

	var fn symtab.SymbolId
	var body []il.Statement
	haveFunc := false

	flush := func() error {
		if !haveFunc {
			return nil
		}
		if err := compileFunction(tab, fn, body, w, o.debug); err != nil {
			return err
		}
		tab.Clear()
		body = nil
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		stmt, err := ing.Parse(line)
		if err != nil {
			return err
		}
		if stmt.Op == il.Func {
			if err := flush(); err != nil {
				return err
			}
			fn = stmt.Args[0]
			haveFunc = true
			params := append([]symtab.SymbolId(nil), stmt.Args[1:stmt.N]...)
			if err := sysv.AssignParams(tab, params); err != nil {
				return err
			}
			continue
		}
		body = append(body, stmt)
	}
	if err := scanner.Err(); err != nil {
		return errcode.New(errcode.WriteFailed)
	}
	return flush()
}

// compileFunction runs one function's IL body through the full
// pipeline and writes its rendered assembly to w.
func compileFunction(tab *symtab.Table, fn symtab.SymbolId, body []il.Statement, w io.Writer, debug *Debug) error {
	g, err := cfg.Build(tab, fn, body)
	if err != nil {
		return err
	}

	if err := selectInstructions(tab, g); err != nil {
		return err
	}

	cfg.ComputeUseDef(tab, g)
	if err := cfg.Dataflow(g); err != nil {
		return err
	}
	cfg.StatementLiveness(tab, g)
	cfg.EstimateLoopDepth(g)

	name := tab.Get(fn).Name

	if debug != nil && debug.CFG != nil {
		dumpCFG(debug.CFG, tab, name, g)
	}

	ig := regalloc.Build(tab, g)
	regalloc.Precolor(tab, ig, g)
	regalloc.Coalesce(ig, g)
	regalloc.ScoreSaveRestore(ig, g)
	regalloc.AccumulateSpillCost(ig, g)
	regalloc.Color(ig)
	regalloc.Apply(tab, ig)

	if debug != nil && debug.IG != nil {
		dumpIG(debug.IG, tab, name, ig)
	}
	if debug != nil && debug.Info != nil {
		dumpInfo(debug.Info, name, g)
	}

	frame := emit.BuildFrame(tab, g)
	if err := emit.Resolve(tab, frame, g); err != nil {
		return err
	}
	if err := regalloc.InsertSpillCode(g); err != nil {
		return err
	}
	for _, b := range g.Blocks {
		b.PASM = peephole.Run(b.PASM)
	}

	text := emit.Function(tab, name, frame, g)
	if _, err := io.WriteString(w, text); err != nil {
		return errcode.New(errcode.WriteFailed).WithToken(name)
	}
	return nil
}

// selectInstructions fills every block's PASM from its IL statements,
// in order, via the macro-table instruction selector. il.Ret's macro
// case only expands the "move the result into loc_a" half of a
// return (see package inssel); the zero-operand pasm.OpRet terminator
// itself -- which package emit expands into leave+ret -- is inserted
// here, once per IL ret, since only the caller knows which IL
// statement actually ended the function.
func selectInstructions(tab *symtab.Table, g *cfg.Graph) error {
	reachable := reachableBlocks(g)
	for _, b := range g.Blocks {
		var out []pasm.Statement
		for _, stmt := range b.IL {
			var err error
			out, err = inssel.Select(tab, stmt, out)
			if err != nil {
				return err
			}
			if stmt.Op == il.Ret {
				out = append(out, pasm.Statement{Op: pasm.OpRet})
			}
		}
		if reachable[b] && len(b.Successors()) == 0 && (len(out) == 0 || out[len(out)-1].Op != pasm.OpRet) {
			// Every reachable exit block -- including an empty
			// function body's untouched entry block -- gets the
			// epilogue even when the IL never said ret explicitly
			// (spec.md's "empty function body" boundary case). The
			// dangling block cfg.Build always opens after a
			// terminator (in case a label later attaches to it) is
			// excluded here since an unreachable block emits nothing.
			out = append(out, pasm.Statement{Op: pasm.OpRet})
		}
		b.PASM = out
	}
	return nil
}

// reachableBlocks finds every block reachable from the entry,
// following successor edges.
func reachableBlocks(g *cfg.Graph) map[*cfg.Block]bool {
	seen := map[*cfg.Block]bool{g.Entry: true}
	stack := []*cfg.Block{g.Entry}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, s := range b.Successors() {
			if !seen[s] {
				seen[s] = true
				stack = append(stack, s)
			}
		}
	}
	return seen
}

// dumpCFG writes one line per block: its labels, IL statement count,
// and PASM statement count, plus the successor labels it falls or
// jumps to. -dprint-cfg's intent is locating a miscompiled block
// quickly, not reproducing the full statement text.
func dumpCFG(w io.Writer, tab *symtab.Table, fn string, g *cfg.Graph) {
	fmt.Fprintf(w, "cfg %s:\n", fn)
	for i, b := range g.Blocks {
		labels := blockLabelNames(tab, b)
		var succ []string
		for _, s := range b.Successors() {
			succ = append(succ, blockLabelNames(tab, s)...)
		}
		fmt.Fprintf(w, "  block %d labels=%v il=%d pasm=%d loopdepth=%d -> %v\n",
			i, labels, len(b.IL), len(b.PASM), b.LoopDepth, succ)
	}
}

func blockLabelNames(tab *symtab.Table, b *cfg.Block) []string {
	names := make([]string, 0, len(b.Labels))
	for _, l := range b.Labels {
		names = append(names, tab.Get(l).Name)
	}
	return names
}

// dumpIG writes one line per surviving interference-graph node: its
// member symbols (coalescing may have merged several into one),
// assigned location, spill cost, and neighbor count.
func dumpIG(w io.Writer, tab *symtab.Table, fn string, ig *regalloc.Graph) {
	fmt.Fprintf(w, "ig %s:\n", fn)
	for _, n := range ig.Nodes() {
		names := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			names = append(names, tab.Get(m).Name)
		}
		fmt.Fprintf(w, "  %v loc=%s spillcost=%d neighbors=%d\n",
			names, n.Loc, n.SpillCost, len(n.Neighbors))
	}
}

// dumpInfo writes verbose per-block allocator bookkeeping: loop
// depth and live-in/live-out set sizes, the figures that drive spill
// cost weighting (package regalloc).
func dumpInfo(w io.Writer, fn string, g *cfg.Graph) {
	fmt.Fprintf(w, "info %s:\n", fn)
	for i, b := range g.Blocks {
		fmt.Fprintf(w, "  block %d loopdepth=%d livein=%d liveout=%d\n",
			i, b.LoopDepth, len(b.In), len(b.Out))
	}
}

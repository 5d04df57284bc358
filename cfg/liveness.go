/*
 * backend - Per-block and per-statement liveness analysis.
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

package cfg

import (
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/symtab"
)

// maxDataflowIterations bounds the block-level fixed-point iteration;
// exceeding it means the dataflow never stabilized and is an internal
// error rather than silently wrong liveness sets.
const maxDataflowIterations = 10

// ComputeUseDef fills Use/Def for every block from its PASM statements
// in a single backward pass: defs remove from use(B) and add to
// def(B); non-constant uses are then added to use(B).
func ComputeUseDef(tab *symtab.Table, g *Graph) {
	for _, b := range g.Blocks {
		b.Use = b.Use[:0]
		b.Def = b.Def[:0]
		used := make(map[symtab.SymbolId]bool)
		defined := make(map[symtab.SymbolId]bool)

		for i := len(b.PASM) - 1; i >= 0; i-- {
			s := b.PASM[i]
			var defs, uses []symtab.SymbolId
			defs = s.DefinesSymbols(defs)
			uses = s.UsesSymbols(uses)

			for _, d := range defs {
				if !defined[d] {
					defined[d] = true
					b.Def = append(b.Def, d)
				}
				delete(used, d)
			}
			for _, u := range uses {
				if isConstantOperand(tab, u) {
					continue
				}
				if !used[u] {
					used[u] = true
					b.Use = append(b.Use, u)
				}
			}
		}
	}
}

func isConstantOperand(tab *symtab.Table, id symtab.SymbolId) bool {
	return tab.Get(id).IsConstantSym()
}

// Dataflow runs the block-level fixed-point liveness computation
// (spec.md §4.3): on each iteration, DFS from the entry block and on
// each block's post-order visit, update OUT[B] from successors' IN
// and IN[B] from use(B) ∪ (OUT[B] − def(B)). Stops when no OUT[B]
// grows, aborting past maxDataflowIterations.
func Dataflow(g *Graph) error {
	for iter := 0; iter < maxDataflowIterations; iter++ {
		visited := make(map[*Block]bool)
		grew := false
		var visit func(b *Block)
		visit = func(b *Block) {
			if visited[b] {
				return
			}
			visited[b] = true
			for _, s := range b.Successors() {
				visit(s)
			}
			newOut := unionOfIn(b.Successors())
			if !setEqual(newOut, b.Out) {
				grew = true
			}
			b.Out = newOut
			b.In = setUnion(b.Use, setSubtract(b.Out, b.Def))
		}
		visit(g.Entry)
		if !grew {
			return nil
		}
	}
	return errcode.New(errcode.OutOfMemory)
}

// StatementLiveness runs the backward per-statement pass over every
// block: live-set starts at OUT[B]; walking statements in reverse,
// each statement's live-out is the current live-set, then its def is
// removed and its uses added back in to produce its live-in.
func StatementLiveness(tab *symtab.Table, g *Graph) {
	for _, b := range g.Blocks {
		live := append([]symtab.SymbolId(nil), b.Out...)
		for i := len(b.PASM) - 1; i >= 0; i-- {
			s := &b.PASM[i]
			s.LiveOut = append([]symtab.SymbolId(nil), live...)

			var defs []symtab.SymbolId
			defs = s.DefinesSymbols(defs)
			live = setSubtract(live, defs)

			var uses []symtab.SymbolId
			uses = s.UsesSymbols(uses)
			for _, u := range uses {
				if !isConstantOperand(tab, u) {
					live = setUnion(live, []symtab.SymbolId{u})
				}
			}
			s.LiveIn = append([]symtab.SymbolId(nil), live...)
		}
	}
}

func unionOfIn(blocks []*Block) []symtab.SymbolId {
	var out []symtab.SymbolId
	for _, b := range blocks {
		out = setUnion(out, b.In)
	}
	return out
}

func setUnion(a, b []symtab.SymbolId) []symtab.SymbolId {
	seen := make(map[symtab.SymbolId]bool, len(a))
	out := append([]symtab.SymbolId(nil), a...)
	for _, x := range a {
		seen[x] = true
	}
	for _, x := range b {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

func setSubtract(a, b []symtab.SymbolId) []symtab.SymbolId {
	remove := make(map[symtab.SymbolId]bool, len(b))
	for _, x := range b {
		remove[x] = true
	}
	var out []symtab.SymbolId
	for _, x := range a {
		if !remove[x] {
			out = append(out, x)
		}
	}
	return out
}

func setEqual(a, b []symtab.SymbolId) bool {
	if len(a) != len(b) {
		return false
	}
	inA := make(map[symtab.SymbolId]bool, len(a))
	for _, x := range a {
		inA[x] = true
	}
	for _, x := range b {
		if !inA[x] {
			return false
		}
	}
	return true
}

/*
 * backend - Stack frame layout.
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

// Package emit renders a function's colored PASM into x86-64 AT&T-ish
// assembly text (spec.md §4.12): stack frame layout, the Resolve pass
// that turns unresolved symbol operands into concrete
// register/stack-slot operands, and text formatting.
package emit

import (
	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/symtab"
)

// Frame is the stack-slot assignment for one function: every
// Stack-resident symbol's byte offset from rbp (negative, growing
// downward), and the total frame size to subtract from rsp in the
// prologue.
type Frame struct {
	Offset map[symtab.SymbolId]int
	Size   int
}

// BuildFrame assigns a distinct, packed rbp-relative offset to every
// symbol the allocator colored to Stack, summing byte sizes exactly
// (spec.md §4.12 permits any rounding scheme; this implementation
// takes the simplest one, an exact sum, matching the reference).
func BuildFrame(tab *symtab.Table, g *cfg.Graph) *Frame {
	f := &Frame{Offset: make(map[symtab.SymbolId]int)}
	offset := 0
	for _, sym := range stackSymbols(tab, g) {
		offset += tab.Get(sym).Bytes()
		f.Offset[sym] = -offset
	}
	f.Size = offset
	return f
}

func stackSymbols(tab *symtab.Table, g *cfg.Graph) []symtab.SymbolId {
	seen := make(map[symtab.SymbolId]bool)
	var out []symtab.SymbolId
	for _, b := range g.Blocks {
		for _, stmt := range b.PASM {
			for _, op := range stmt.Operands() {
				if op.Kind != 0 { // pasm.KindUnresolved == 0
					continue
				}
				sym := op.Sym
				if seen[sym] {
					continue
				}
				if tab.Get(sym).Loc == symtab.LocStack {
					seen[sym] = true
					out = append(out, sym)
				}
			}
		}
	}
	return out
}

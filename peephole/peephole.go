/*
 * backend - Peephole cleanup after register allocation.
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

// Package peephole drops dead moves left behind once register
// allocation has resolved every operand to a physical location
// (spec.md §4.11): this must run after coloring and spill-code
// insertion, and before assembly emission.
package peephole

import "github.com/cclang/backend/pasm"

// Run drops every mov whose destination and source resolve to the
// same physical location with the same dereference flag -- a
// same-location mov is a no-op once allocation is done, whether it
// came from move coalescing leaving a stray identity mov or from two
// symbols having been colored to the same register.
func Run(stmts []pasm.Statement) []pasm.Statement {
	out := stmts[:0]
	for _, s := range stmts {
		if isDeadMov(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func isDeadMov(s pasm.Statement) bool {
	if s.Op != pasm.OpMov {
		return false
	}
	if s.Dst.Kind != pasm.KindLocation || s.Src.Kind != pasm.KindLocation {
		return false
	}
	// Offset matters even when Loc/Deref agree: LocStack is shared by
	// every spill slot, so two dereferenced stack operands at
	// different offsets are different memory locations, not the same
	// one written twice.
	return s.Dst.Loc == s.Src.Loc && s.Dst.Deref == s.Src.Deref && s.Dst.Offset == s.Src.Offset
}

/*
 * backend - Instruction-selection constraint language.
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

// Package inssel implements instruction selection: matching each IL
// statement against a cost-ordered macro table and expanding it to
// PASM statements (spec.md §4.2).
package inssel

import "github.com/cclang/backend/symtab"

// descriptor is one parsed "class-char[sign-char][size-digit]" unit
// of a constraint alternative.
type descriptor struct {
	class byte // 's' symbol (register/memory resident), 'a' array, 'i' immediate constant, 'l' label
	sign  byte // 0 (unconstrained), 'u' (unsigned required), 'U' (signed required)
	size  int  // 0 (unconstrained) or required byte width
}

func isClassChar(c byte) bool {
	return c == 's' || c == 'a' || c == 'i' || c == 'l'
}

// parseAlternative splits one packed descriptor run, e.g. "sU4sU4",
// into its constituent descriptors.
func parseAlternative(alt string) []descriptor {
	var out []descriptor
	for i := 0; i < len(alt); i++ {
		c := alt[i]
		switch {
		case isClassChar(c):
			out = append(out, descriptor{class: c})
		case (c == 'u' || c == 'U') && len(out) > 0:
			out[len(out)-1].sign = c
		case c >= '1' && c <= '9' && len(out) > 0:
			out[len(out)-1].size = int(c - '0')
		}
	}
	return out
}

// matches reports whether a descriptor accepts the given symbol.
func (d descriptor) matches(tab *symtab.Table, id symtab.SymbolId) bool {
	sym := tab.Get(id)
	switch d.class {
	case 'l':
		if !sym.IsLabel() {
			return false
		}
	case 'i':
		if !sym.IsConstantSym() {
			return false
		}
	case 'a':
		if !sym.Type.HasArray {
			return false
		}
	case 's':
		if sym.IsConstantSym() || sym.IsLabel() {
			return false
		}
	default:
		return false
	}
	switch d.sign {
	case 'u':
		if sym.Type.IsSigned() {
			return false
		}
	case 'U':
		if !sym.Type.IsSigned() {
			return false
		}
	}
	if d.size != 0 && sym.Bytes() != d.size {
		return false
	}
	return true
}

// matchAlternative reports whether every argument in args satisfies
// the corresponding descriptor of alt, in left-to-right order.
func matchAlternative(tab *symtab.Table, alt []descriptor, args []symtab.SymbolId) bool {
	if len(alt) != len(args) {
		return false
	}
	for i, d := range alt {
		if !d.matches(tab, args[i]) {
			return false
		}
	}
	return true
}

// matchConstraint reports whether any space-separated alternative of
// constraint matches args.
func matchConstraint(tab *symtab.Table, constraint string, args []symtab.SymbolId) bool {
	start := 0
	for i := 0; i <= len(constraint); i++ {
		if i == len(constraint) || constraint[i] == ' ' {
			if i > start {
				alt := parseAlternative(constraint[start:i])
				if matchAlternative(tab, alt, args) {
					return true
				}
			}
			start = i + 1
		}
	}
	return false
}

/*
 * backend - IL statement: opcode, operands, use/def shape.
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

// Package il implements the textual IL grammar of spec.md §6 and the
// IL statement shapes of spec.md §3: tokenizing one line at a time
// into an Opcode plus SymbolId operands.
package il

import "github.com/cclang/backend/symtab"

// MaxArgs bounds the operand count of any single IL statement.
const MaxArgs = 8

// Opcode enumerates the IL instruction set of spec.md §3.
type Opcode int

const (
	OpNone Opcode = iota - 1
	Add
	Ce
	Cl
	Cle
	Cne
	Def
	Div
	Func
	Jmp
	Jnz
	Jz
	Lab
	Mad
	Mfi
	Mod
	Mov
	Mti
	Mtc
	Mul
	Not
	Ret
	Sub
)

var opcodeStrings = [...]string{
	"add", "ce", "cl", "cle", "cne", "def", "div", "func", "jmp", "jnz", "jz",
	"lab", "mad", "mfi", "mod", "mov", "mti", "mtc", "mul", "not", "ret", "sub",
}

func (o Opcode) String() string {
	if o < 0 || int(o) >= len(opcodeStrings) {
		return "none"
	}
	return opcodeStrings[o]
}

// arity gives the exact argument count for fixed-arity opcodes; -1
// means variable (func: >=2), -2 means "not applicable" (unused).
var arity = map[Opcode]int{
	Add: 3, Sub: 3, Mul: 3, Div: 3, Mod: 3,
	Ce: 3, Cl: 3, Cle: 3, Cne: 3,
	Mov: 2, Mtc: 2, Not: 2, Jnz: 2, Jz: 2,
	Ret: 1, Jmp: 1, Lab: 1, Def: 1,
	Func: -1,
	Mad:  3, Mfi: 2, Mti: 2,
}

// ArityOK reports whether n arguments satisfies opcode op's arity
// requirement (spec.md §6's "Arity requirements").
func ArityOK(op Opcode, n int) bool {
	want, ok := arity[op]
	if !ok {
		return false
	}
	if want == -1 {
		return n >= 2
	}
	return n == want
}

// Statement is one IL statement: an opcode plus up to MaxArgs
// SymbolId operands.
type Statement struct {
	Op   Opcode
	Args [MaxArgs]symtab.SymbolId
	N    int
}

func (s Statement) Arg(i int) symtab.SymbolId {
	return s.Args[i]
}

// Kind classifies a statement for the CFG builder's partitioning rule
// (spec.md §4.1).
type Kind int

const (
	KindOther Kind = iota
	KindDecl       // def
	KindFunc       // func
	KindLabel      // lab
	KindUncondJump // jmp
	KindCondJump   // jnz, jz
	KindReturn     // ret
)

func (s Statement) Kind() Kind {
	switch s.Op {
	case Def:
		return KindDecl
	case Func:
		return KindFunc
	case Lab:
		return KindLabel
	case Jmp:
		return KindUncondJump
	case Jnz, Jz:
		return KindCondJump
	case Ret:
		return KindReturn
	default:
		return KindOther
	}
}

// Use appends the symbols used by the statement to dst and returns
// the resulting slice, following the ILIns.h use table: arithmetic
// and compare ops use args 1,2; mov/not/jnz/jz use arg 1; ret uses
// arg 0; def/func/jmp/lab use nothing. mad/mfi/mti (address/memory
// ops, left to the instruction selector by ILIns.h) follow package
// inssel's shapes: mad d,base,off takes the address of base[off] (base
// and, if symbolic, off are used, not d); mfi d,addr loads *addr (addr
// is used); mti addr,v stores v to *addr (both are used).
func (s Statement) Use(dst []symtab.SymbolId) []symtab.SymbolId {
	switch s.Op {
	case Add, Sub, Mul, Div, Mod, Ce, Cl, Cle, Cne:
		return append(dst, s.Args[1], s.Args[2])
	case Ret:
		return append(dst, s.Args[0])
	case Mov, Mtc, Not, Jnz, Jz:
		return append(dst, s.Args[1])
	case Mfi:
		return append(dst, s.Args[1])
	case Mad:
		return append(dst, s.Args[1], s.Args[2])
	case Mti:
		return append(dst, s.Args[0], s.Args[1])
	default:
		return dst
	}
}

// Def appends the symbol defined by the statement to dst, if any.
func (s Statement) Def(dst []symtab.SymbolId) []symtab.SymbolId {
	switch s.Op {
	case Add, Sub, Mul, Div, Mod, Ce, Cl, Cle, Cne, Mov, Mtc, Not, Mfi, Mad:
		return append(dst, s.Args[0])
	default:
		return dst
	}
}

// Label returns the jump target operand for jmp/jnz/jz, or -1.
func (s Statement) Label() symtab.SymbolId {
	switch s.Op {
	case Jmp:
		return s.Args[0]
	case Jnz, Jz:
		return s.Args[0]
	default:
		return -1
	}
}

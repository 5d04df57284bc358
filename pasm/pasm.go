/*
 * backend - Physical-assembly statement model: x86-64 opcodes and operands.
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

// Package pasm models the target physical-assembly statement that
// instruction selection emits and the register allocator rewrites:
// one opcode plus up to two operands, each either resolved to a
// concrete register/stack slot or still an unresolved symbol.
package pasm

import "github.com/cclang/backend/symtab"

// Op is the x86-64 opcode mnemonic the pipeline ever emits. The set
// is bounded by what the instruction-selector macro table (package
// inssel) can produce; this is not a general x86 encoder.
type Op int

const (
	OpNone Op = iota - 1
	OpAdd
	OpCall
	OpCdq
	OpCmp
	OpCqo
	OpIdiv
	OpImul
	OpJe
	OpJmp
	OpJne
	OpLea
	OpLeave
	OpMov
	OpMovzx
	OpNeg
	OpPop
	OpPush
	OpRet
	OpSete
	OpSetl
	OpSetle
	OpSetne
	OpSub
	OpSyscall
	OpXor
)

var opStrings = [...]string{
	"add", "call", "cdq", "cmp", "cqo", "idiv", "imul", "je", "jmp", "jne",
	"lea", "leave", "mov", "movzx", "neg", "pop", "push", "ret",
	"sete", "setl", "setle", "setne", "sub", "syscall", "xor",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opStrings) {
		return "?"
	}
	return opStrings[o]
}

// Kind distinguishes an Operand's storage: a resolved physical
// location, a not-yet-allocated symbol, or a bare jump-target label.
type Kind int

const (
	KindUnresolved Kind = iota // still Sym, not yet colored
	KindLocation               // resolved to symtab.Location (register or Stack)
	KindLabel                  // a jump/call target name
	KindImmediate              // a literal integer
)

// Operand is one operand of a PASM Statement: either an unresolved
// symbol awaiting register allocation, a resolved storage location,
// a label, or an immediate. Deref marks memory indirection
// (`[rbp-8]` vs `rbp-8`); Size is the operand's byte width used to
// pick the size-correct register mnemonic or size directive.
type Operand struct {
	Kind   Kind
	Sym    symtab.SymbolId // valid iff Kind == KindUnresolved
	Loc    symtab.Location // valid iff Kind == KindLocation
	Label  string          // valid iff Kind == KindLabel
	Value  int64           // valid iff Kind == KindImmediate
	Size   int             // operand width in bytes: 1, 2, 4, or 8
	Deref  bool             // true if this operand is a memory reference
	Offset int              // byte offset from rbp when Deref and Loc == LocStack
}

func Unresolved(sym symtab.SymbolId, size int) Operand {
	return Operand{Kind: KindUnresolved, Sym: sym, Size: size}
}

func AtLocation(loc symtab.Location, size int) Operand {
	return Operand{Kind: KindLocation, Loc: loc, Size: size}
}

func Mem(loc symtab.Location, offset int, size int) Operand {
	return Operand{Kind: KindLocation, Loc: loc, Deref: true, Offset: offset, Size: size}
}

func AsLabel(name string) Operand {
	return Operand{Kind: KindLabel, Label: name}
}

func Imm(v int64) Operand {
	return Operand{Kind: KindImmediate, Value: v, Size: 8}
}

// Resolved reports whether every symbol-carrying operand has been
// assigned a concrete Location by the register allocator.
func (o Operand) Resolved() bool {
	return o.Kind != KindUnresolved
}

// Statement is one physical-assembly instruction: an opcode and up to
// two operands, plus the live-in/live-out SymbolId sets the
// register allocator needs for interference-graph construction
// (spec.md §3, §4.5).
type Statement struct {
	Op      Op
	Dst     Operand
	Src     Operand
	NSrc    int // 0, 1, or 2 -- Src valid iff NSrc == 1, both iff this is a two-source form via Dst/Src pairing
	LiveIn  []symtab.SymbolId
	LiveOut []symtab.SymbolId
}

// Operands reports the live operand slots of the statement in
// left-to-right textual order, skipping unused slots (e.g. push/pop
// take one operand, ret takes none).
func (s Statement) Operands() []Operand {
	switch arityOf(s.Op) {
	case 0:
		return nil
	case 1:
		return []Operand{s.Dst}
	default:
		return []Operand{s.Dst, s.Src}
	}
}

// arityOf gives the printed-operand count for each opcode (distinct
// from the IL's arity table: this counts assembly-text operands).
func arityOf(op Op) int {
	switch op {
	case OpRet, OpLeave, OpCdq, OpCqo, OpSyscall:
		return 0
	case OpCall, OpJmp, OpJe, OpJne, OpPush, OpPop, OpIdiv, OpNeg,
		OpSete, OpSetl, OpSetle, OpSetne:
		return 1
	default:
		return 2
	}
}

// UsesSymbol and DefinesSymbol implement the use/def projection the
// interference-graph builder needs once operands are still
// unresolved SymbolIds (pre-allocation) or already colored
// (post-allocation, where neither slot "uses" a SymbolId anymore).
func (s Statement) UsesSymbols(dst []symtab.SymbolId) []symtab.SymbolId {
	for _, op := range s.Operands() {
		if op.Kind != KindUnresolved {
			continue
		}
		if s.definesOperandIndex(op) {
			continue
		}
		dst = append(dst, op.Sym)
	}
	// A destination that is also dereferenced (memory write) or the
	// second source of a two-source op is used, not just defined.
	if s.Dst.Kind == KindUnresolved && (s.Dst.Deref || arityOf(s.Op) == 2 && opReadsDst(s.Op)) {
		dst = append(dst, s.Dst.Sym)
	}
	return dst
}

func (s Statement) definesOperandIndex(op Operand) bool {
	return arityOf(s.Op) >= 1 && op == s.Dst && !op.Deref && opWritesDst(s.Op)
}

func opWritesDst(op Op) bool {
	switch op {
	case OpCmp, OpJe, OpJne, OpJmp, OpCall, OpPush, OpRet:
		return false
	default:
		return true
	}
}

func opReadsDst(op Op) bool {
	switch op {
	case OpAdd, OpSub, OpImul, OpXor, OpCmp:
		return true
	default:
		return false
	}
}

func (s Statement) DefinesSymbols(dst []symtab.SymbolId) []symtab.SymbolId {
	if s.Dst.Kind == KindUnresolved && !s.Dst.Deref && opWritesDst(s.Op) {
		dst = append(dst, s.Dst.Sym)
	}
	return dst
}

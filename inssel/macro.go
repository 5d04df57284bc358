/*
 * backend - Instruction-selection macro table and expansion.
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

package inssel

import (
	"strconv"

	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/il"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// tplKind is the operand-descriptor kind a replacement template slot
// carries, per spec.md §3's instruction-selection macro operand
// descriptors.
type tplKind int

const (
	tplNew tplKind = iota
	tplVirtual
	tplPhysical
	tplOffset
)

// operandTpl is one operand slot of a replacement template.
type operandTpl struct {
	kind   tplKind
	arg    int             // IL argument index: for tplNew, the arg whose type to clone; for tplVirtual/tplOffset's base, the referenced SymbolId
	off    int              // IL argument index of the offset operand, valid iff kind == tplOffset
	loc    symtab.Location  // valid iff kind == tplPhysical
	qword  bool             // valid iff kind == tplPhysical: force 8-byte width regardless of the IL operand size
}

func newT(arg int) operandTpl      { return operandTpl{kind: tplNew, arg: arg} }
func virt(arg int) operandTpl      { return operandTpl{kind: tplVirtual, arg: arg} }
func phys(loc symtab.Location) operandTpl { return operandTpl{kind: tplPhysical, loc: loc} }
func offset(base, off int) operandTpl { return operandTpl{kind: tplOffset, arg: base, off: off} }

// physQ is Physical(R) forced to 8-byte width: used for push/pop save
// -restore operands, since PUSH/POP have no 32-bit-register encoding
// in long mode (only r64 and r16 forms exist) regardless of the IL
// value's own i32/i64 size -- the distinction spec.md §3/§4.2 draws
// between Physical(R), "emitted verbatim", and Location(L), "size-
// overridden from context".
func physQ(loc symtab.Location) operandTpl { return operandTpl{kind: tplPhysical, loc: loc, qword: true} }

// replaceTpl is one PASM statement template within a case's expansion.
type replaceTpl struct {
	op   pasm.Op
	args []operandTpl
}

func r1(op pasm.Op, a operandTpl) replaceTpl           { return replaceTpl{op: op, args: []operandTpl{a}} }
func r2(op pasm.Op, a, b operandTpl) replaceTpl        { return replaceTpl{op: op, args: []operandTpl{a, b}} }

// macroCase is one constraint-guarded expansion of an IL opcode,
// listed in the macro table in non-decreasing cost order.
type macroCase struct {
	constraint string
	replace    []replaceTpl
}

// macroTable maps each IL opcode to its cost-ordered list of cases,
// unifying the richer of the two historical constraint-language forms
// per spec.md §9's redesign note (sign/size digits plus New/Virtual/
// Physical/Offset operand descriptors, not the plain register-class-only
// legacy form).
var macroTable = map[il.Opcode][]macroCase{
	il.Mov: {
		{"ss", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1))}},
		{"si", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1))}},
	},
	il.Mtc: {
		{"ss", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1))}},
		{"si", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1))}},
	},
	il.Add: {
		{"sss", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpAdd, virt(0), virt(2))}},
		{"ssi", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpAdd, virt(0), virt(2))}},
		{"sis", []replaceTpl{r2(pasm.OpMov, virt(0), virt(2)), r2(pasm.OpAdd, virt(0), virt(1))}},
		{"sii", []replaceTpl{r2(pasm.OpMov, virt(0), virt(2)), r2(pasm.OpAdd, virt(0), virt(1))}},
	},
	il.Sub: {
		{"sss", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpSub, virt(0), virt(2))}},
		{"ssi", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpSub, virt(0), virt(2))}},
		{"sis", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpSub, newT(1), virt(2)), r2(pasm.OpMov, virt(0), newT(1))}},
		{"sii", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpSub, newT(1), virt(2)), r2(pasm.OpMov, virt(0), newT(1))}},
	},
	il.Mul: {
		{"sss", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpImul, virt(0), virt(2))}},
		{"ssi", []replaceTpl{r2(pasm.OpMov, virt(0), virt(1)), r2(pasm.OpImul, virt(0), virt(2))}},
		{"sis", []replaceTpl{r2(pasm.OpMov, virt(0), virt(2)), r2(pasm.OpImul, virt(0), virt(1))}},
		{"sii", []replaceTpl{r2(pasm.OpMov, virt(0), virt(2)), r2(pasm.OpImul, virt(0), virt(1))}},
	},
	il.Div: {
		{"sss", []replaceTpl{
			r1(pasm.OpPush, physQ(symtab.LocA)),
			r1(pasm.OpPush, physQ(symtab.LocD)),
			r2(pasm.OpXor, phys(symtab.LocD), phys(symtab.LocD)),
			r2(pasm.OpMov, phys(symtab.LocA), virt(1)),
			r1(pasm.OpIdiv, virt(2)),
			r2(pasm.OpMov, virt(0), phys(symtab.LocA)),
			r1(pasm.OpPop, physQ(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocA)),
		}},
		{"ssi", []replaceTpl{
			r1(pasm.OpPush, physQ(symtab.LocA)),
			r1(pasm.OpPush, physQ(symtab.LocD)),
			r2(pasm.OpXor, phys(symtab.LocD), phys(symtab.LocD)),
			r2(pasm.OpMov, phys(symtab.LocA), virt(1)),
			r2(pasm.OpMov, newT(0), virt(2)),
			r1(pasm.OpIdiv, newT(0)),
			r2(pasm.OpMov, virt(0), phys(symtab.LocA)),
			r1(pasm.OpPop, physQ(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocA)),
		}},
	},
	il.Mod: {
		{"sss", []replaceTpl{
			r1(pasm.OpPush, physQ(symtab.LocA)),
			r1(pasm.OpPush, physQ(symtab.LocD)),
			r2(pasm.OpXor, phys(symtab.LocD), phys(symtab.LocD)),
			r2(pasm.OpMov, phys(symtab.LocA), virt(1)),
			r1(pasm.OpIdiv, virt(2)),
			r2(pasm.OpMov, virt(0), phys(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocA)),
		}},
		{"ssi", []replaceTpl{
			r1(pasm.OpPush, physQ(symtab.LocA)),
			r1(pasm.OpPush, physQ(symtab.LocD)),
			r2(pasm.OpXor, phys(symtab.LocD), phys(symtab.LocD)),
			r2(pasm.OpMov, phys(symtab.LocA), virt(1)),
			r2(pasm.OpMov, newT(0), virt(2)),
			r1(pasm.OpIdiv, newT(0)),
			r2(pasm.OpMov, virt(0), phys(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocD)),
			r1(pasm.OpPop, physQ(symtab.LocA)),
		}},
	},
	il.Ce:  compareCases(pasm.OpSete),
	il.Cl:  compareCases(pasm.OpSetl),
	il.Cle: compareCases(pasm.OpSetle),
	il.Cne: compareCases(pasm.OpSetne),
	il.Not: {
		{"ss", []replaceTpl{r2(pasm.OpCmp, virt(1), virt(1)), r1(pasm.OpSete, virt(0))}},
		{"si", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpCmp, newT(1), newT(1)), r1(pasm.OpSete, virt(0))}},
	},
	il.Jmp: {
		{"l", []replaceTpl{r1(pasm.OpJmp, virt(0))}},
	},
	il.Jnz: {
		{"ls", []replaceTpl{r2(pasm.OpCmp, virt(1), virt(1)), r1(pasm.OpJne, virt(0))}},
		{"li", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpCmp, newT(1), newT(1)), r1(pasm.OpJne, virt(0))}},
	},
	il.Jz: {
		{"ls", []replaceTpl{r2(pasm.OpCmp, virt(1), virt(1)), r1(pasm.OpJe, virt(0))}},
		{"li", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpCmp, newT(1), newT(1)), r1(pasm.OpJe, virt(0))}},
	},
	il.Ret: {
		{"s", []replaceTpl{r2(pasm.OpMov, phys(symtab.LocA), virt(0))}},
		{"i", []replaceTpl{r2(pasm.OpMov, phys(symtab.LocA), virt(0))}},
	},
	il.Mad: {
		{"sss", []replaceTpl{{op: pasm.OpLea, args: []operandTpl{virt(0), offset(1, 2)}}}},
		{"ssi", []replaceTpl{{op: pasm.OpLea, args: []operandTpl{virt(0), offset(1, 2)}}}},
	},
	il.Mfi: {
		{"ss", []replaceTpl{{op: pasm.OpMov, args: []operandTpl{virt(0), offset(1, 1)}}}},
	},
	il.Mti: {
		{"ss", []replaceTpl{{op: pasm.OpMov, args: []operandTpl{offset(0, 0), virt(1)}}}},
		{"si", []replaceTpl{{op: pasm.OpMov, args: []operandTpl{offset(0, 0), virt(1)}}}},
	},
}

func compareCases(op pasm.Op) []macroCase {
	return []macroCase{
		{"sss", []replaceTpl{r2(pasm.OpCmp, virt(1), virt(2)), r1(op, virt(0))}},
		{"ssi", []replaceTpl{r2(pasm.OpCmp, virt(1), virt(2)), r1(op, virt(0))}},
		{"sis", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpCmp, newT(1), virt(2)), r1(op, virt(0))}},
		{"sii", []replaceTpl{r2(pasm.OpMov, newT(1), virt(1)), r2(pasm.OpCmp, newT(1), virt(2)), r1(op, virt(0))}},
	}
}

// Select finds the lowest-cost matching case for stmt and appends its
// expanded PASM statements to dst. Failure to find any matching case
// is an internal error (InvalidInsOp): the macro table is expected to
// cover every operand-class combination instruction selection can see.
func Select(tab *symtab.Table, stmt il.Statement, dst []pasm.Statement) ([]pasm.Statement, error) {
	cases, ok := macroTable[stmt.Op]
	if !ok {
		return dst, errcode.New(errcode.InvalidIns).WithToken(stmt.Op.String())
	}
	args := stmt.Args[:stmt.N]
	for _, c := range cases {
		if !matchConstraint(tab, c.constraint, args) {
			continue
		}
		news := make(map[int]symtab.SymbolId)
		for _, rt := range c.replace {
			dst = append(dst, expand(tab, stmt, rt, news))
		}
		return dst, nil
	}
	return dst, errcode.New(errcode.InvalidInsOp).WithToken(stmt.Op.String())
}

func expand(tab *symtab.Table, stmt il.Statement, rt replaceTpl, news map[int]symtab.SymbolId) pasm.Statement {
	out := pasm.Statement{Op: rt.op}
	size := firstNonLabelSize(tab, stmt)
	slots := []*pasm.Operand{&out.Dst, &out.Src}
	for i, tpl := range rt.args {
		if i >= len(slots) {
			break
		}
		*slots[i] = resolveOperand(tab, stmt, tpl, news, size)
	}
	return out
}

func resolveOperand(tab *symtab.Table, stmt il.Statement, tpl operandTpl, news map[int]symtab.SymbolId, defaultSize int) pasm.Operand {
	switch tpl.kind {
	case tplPhysical:
		size := defaultSize
		if tpl.qword {
			size = 8
		}
		return pasm.AtLocation(tpl.loc, size)
	case tplNew:
		id, ok := news[tpl.arg]
		if !ok {
			typ := tab.Get(stmt.Args[tpl.arg]).Type
			id = tab.NewTemp(typ)
			news[tpl.arg] = id
		}
		return pasm.Unresolved(id, tab.Get(id).Bytes())
	case tplOffset:
		base := stmt.Args[tpl.arg]
		off := constantOffset(tab, stmt.Args[tpl.off])
		return pasm.Operand{Kind: pasm.KindUnresolved, Sym: base, Deref: true, Offset: off, Size: defaultSize}
	default: // tplVirtual
		sym := stmt.Args[tpl.arg]
		if tab.Get(sym).IsConstantSym() {
			v, _ := strconv.ParseInt(tab.Get(sym).Name, 10, 64)
			return pasm.Imm(v)
		}
		return pasm.Unresolved(sym, tab.Get(sym).Bytes())
	}
}

// constantOffset reads a byte offset out of a numeric-constant
// symbol's name; non-constant offsets (a variable index) are not
// supported by this generator and resolve to 0, matching the
// Non-goals that exclude dynamic array indexing.
func constantOffset(tab *symtab.Table, id symtab.SymbolId) int {
	sym := tab.Get(id)
	if !sym.IsConstantSym() {
		return 0
	}
	v, err := strconv.Atoi(sym.Name)
	if err != nil {
		return 0
	}
	return v
}

// firstNonLabelSize implements "Location(L) resolved to a physical
// register whose size is the byte size of the first non-label operand
// in the IL statement" (spec.md §4.2).
func firstNonLabelSize(tab *symtab.Table, stmt il.Statement) int {
	for i := 0; i < stmt.N; i++ {
		sym := tab.Get(stmt.Args[i])
		if !sym.IsLabel() {
			return sym.Bytes()
		}
	}
	return 8
}

/*
 * backend - Operand resolution: symbols to physical locations.
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

package emit

import (
	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// Resolve rewrites every KindUnresolved operand in g to a
// KindLocation operand, consulting the coloring package.Color already
// wrote back into tab. A register-resident symbol becomes a bare
// register operand; a Stack-resident symbol becomes a memory operand
// addressed [rbp+off] via the frame layout, always carrying Deref
// true since an rbp-relative slot is never a bare value.
//
// Resolve must run after regalloc.Color/Apply and before
// regalloc.InsertSpillCode, since spill-code insertion looks for
// KindLocation operands with Loc == LocStack.
//
// A Deref-true operand (a genuine pointer dereference, produced by
// mfi/mti) whose pointer symbol itself colored to Stack cannot be
// expressed as a single x86-64 operand -- that would need the pointer
// value reloaded into a register first, a second level of spill code
// this generator does not synthesize (see DESIGN.md). Such a program
// is rejected with an internal error rather than emitting the
// impossible operand.
func Resolve(tab *symtab.Table, f *Frame, g *cfg.Graph) error {
	for _, b := range g.Blocks {
		for i := range b.PASM {
			if err := resolveOperand(tab, f, &b.PASM[i].Dst); err != nil {
				return err
			}
			if err := resolveOperand(tab, f, &b.PASM[i].Src); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveOperand(tab *symtab.Table, f *Frame, op *pasm.Operand) error {
	if op.Kind != pasm.KindUnresolved {
		return nil
	}
	sym := tab.Get(op.Sym)
	if sym.IsLabel() {
		op.Kind = pasm.KindLabel
		op.Label = sym.Name
		return nil
	}
	loc := sym.Loc
	if loc.IsRegister() {
		op.Kind = pasm.KindLocation
		op.Loc = loc
		return nil
	}
	if loc == symtab.LocStack {
		if op.Deref {
			return errcode.New(errcode.OutOfMemory).WithToken(sym.Name)
		}
		off, ok := f.Offset[op.Sym]
		if !ok {
			return errcode.New(errcode.OutOfMemory).WithToken(sym.Name)
		}
		op.Kind = pasm.KindLocation
		op.Loc = symtab.LocStack
		op.Deref = true
		op.Offset = off
		return nil
	}
	if loc == symtab.LocConstant {
		op.Kind = pasm.KindLabel
		op.Label = sym.Name
		return nil
	}
	return errcode.New(errcode.OutOfMemory).WithToken(sym.Name)
}

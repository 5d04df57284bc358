/*
 * backend - PASM statement model test set.
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

package pasm

import (
	"testing"

	"github.com/cclang/backend/symtab"
)

func TestOperandsArity(t *testing.T) {
	ret := Statement{Op: OpRet}
	if len(ret.Operands()) != 0 {
		t.Errorf("ret: got %d operands, want 0", len(ret.Operands()))
	}
	push := Statement{Op: OpPush, Dst: AtLocation(symtab.LocA, 8)}
	if len(push.Operands()) != 1 {
		t.Errorf("push: got %d operands, want 1", len(push.Operands()))
	}
	mov := Statement{Op: OpMov, Dst: AtLocation(symtab.LocA, 4), Src: Imm(5)}
	if len(mov.Operands()) != 2 {
		t.Errorf("mov: got %d operands, want 2", len(mov.Operands()))
	}
}

func TestUsesAndDefinesSymbols(t *testing.T) {
	a := symtab.SymbolId(1)
	b := symtab.SymbolId(2)
	mov := Statement{Op: OpMov, Dst: Unresolved(a, 4), Src: Unresolved(b, 4)}

	uses := mov.UsesSymbols(nil)
	if len(uses) != 1 || uses[0] != b {
		t.Errorf("mov uses: got %v, want [%v]", uses, b)
	}
	defs := mov.DefinesSymbols(nil)
	if len(defs) != 1 || defs[0] != a {
		t.Errorf("mov defs: got %v, want [%v]", defs, a)
	}
}

func TestCmpUsesBothNoDef(t *testing.T) {
	a := symtab.SymbolId(1)
	b := symtab.SymbolId(2)
	cmp := Statement{Op: OpCmp, Dst: Unresolved(a, 4), Src: Unresolved(b, 4)}
	uses := cmp.UsesSymbols(nil)
	if len(uses) != 2 {
		t.Errorf("cmp uses: got %v, want both operands", uses)
	}
	if defs := cmp.DefinesSymbols(nil); len(defs) != 0 {
		t.Errorf("cmp defs: got %v, want none", defs)
	}
}

func TestDerefDestinationIsUsedNotDefined(t *testing.T) {
	a := symtab.SymbolId(1)
	dst := Unresolved(a, 4)
	dst.Deref = true
	store := Statement{Op: OpMov, Dst: dst, Src: Imm(9)}
	uses := store.UsesSymbols(nil)
	if len(uses) != 1 || uses[0] != a {
		t.Errorf("store uses: got %v, want [%v]", uses, a)
	}
	if defs := store.DefinesSymbols(nil); len(defs) != 0 {
		t.Errorf("store defs: got %v, want none (memory write is a use)", defs)
	}
}

func TestOpString(t *testing.T) {
	if OpMov.String() != "mov" {
		t.Errorf("OpMov.String() = %q, want mov", OpMov.String())
	}
	if Op(999).String() != "?" {
		t.Errorf("out-of-range Op.String() = %q, want ?", Op(999).String())
	}
}

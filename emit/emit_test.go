/*
 * backend - Emit test set.
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
	"strings"
	"testing"

	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/il"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

func singleBlockGraph(t *testing.T, tab *symtab.Table, stmts []pasm.Statement) *cfg.Graph {
	t.Helper()
	fn := tab.Declare("f", symtab.TypeInt, false)
	g, err := cfg.Build(tab, fn, []il.Statement{{Op: il.Ret}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	g.Entry.PASM = stmts
	return g
}

func declVar(tab *symtab.Table, name string) symtab.SymbolId {
	return tab.Declare(name, symtab.TypeInt, true)
}

func TestFunctionRendersPrologueAndLabel(t *testing.T) {
	tab := symtab.New()
	g := singleBlockGraph(t, tab, []pasm.Statement{
		{Op: pasm.OpRet},
	})
	f := &Frame{Offset: map[symtab.SymbolId]int{}}
	out := Function(tab, "add", f, g)
	if !strings.HasPrefix(out, "f@add:\n\tpush rbp\n\tmov rbp, rsp\n") {
		t.Fatalf("unexpected prologue, got:\n%s", out)
	}
	if !strings.Contains(out, "\tleave\n\tret\n") {
		t.Errorf("ret must expand to leave+ret, got:\n%s", out)
	}
	if strings.Contains(out, "sub rsp") {
		t.Errorf("a frame with no stack slots should not emit sub rsp, got:\n%s", out)
	}
}

func TestFunctionEmitsSubRspForFrameSize(t *testing.T) {
	tab := symtab.New()
	g := singleBlockGraph(t, tab, []pasm.Statement{{Op: pasm.OpRet}})
	f := &Frame{Offset: map[symtab.SymbolId]int{}, Size: 16}
	out := Function(tab, "f", f, g)
	if !strings.Contains(out, "\tsub rsp, 16\n") {
		t.Errorf("want sub rsp, 16 in prologue, got:\n%s", out)
	}
}

func TestFunctionEmitsStartShimOnlyForMain(t *testing.T) {
	tab := symtab.New()
	g := singleBlockGraph(t, tab, []pasm.Statement{{Op: pasm.OpRet}})
	f := &Frame{Offset: map[symtab.SymbolId]int{}}

	main := Function(tab, "main", f, g)
	if !strings.Contains(main, "_start:") {
		t.Errorf("main must get the _start shim, got:\n%s", main)
	}
	if !strings.Contains(main, "call f@main") {
		t.Errorf("_start must call f@main, got:\n%s", main)
	}

	other := Function(tab, "helper", f, g)
	if strings.Contains(other, "_start:") {
		t.Errorf("non-main functions must not get the _start shim, got:\n%s", other)
	}
}

func TestRenderOperandRegister(t *testing.T) {
	got := renderOperand(pasm.AtLocation(symtab.LocA, 4))
	if got != "eax" {
		t.Errorf("want eax for 4-byte LocA, got %q", got)
	}
	got = renderOperand(pasm.AtLocation(symtab.LocDi, 8))
	if got != "rdi" {
		t.Errorf("want rdi for 8-byte LocDi, got %q", got)
	}
}

func TestRenderOperandStackSlot(t *testing.T) {
	op := pasm.Operand{Kind: pasm.KindLocation, Loc: symtab.LocStack, Deref: true, Offset: -8, Size: 4}
	got := renderOperand(op)
	if got != "dword [rbp-8]" {
		t.Errorf("want %q, got %q", "dword [rbp-8]", got)
	}
}

func TestRenderOperandDerefRegister(t *testing.T) {
	op := pasm.Operand{Kind: pasm.KindLocation, Loc: symtab.LocC, Deref: true, Size: 8}
	got := renderOperand(op)
	if got != "qword [rcx]" {
		t.Errorf("want %q, got %q", "qword [rcx]", got)
	}
}

func TestRenderOperandImmediateAndLabel(t *testing.T) {
	if got := renderOperand(pasm.Imm(42)); got != "42" {
		t.Errorf("want 42, got %q", got)
	}
	if got := renderOperand(pasm.AsLabel("l0")); got != "l0" {
		t.Errorf("want l0, got %q", got)
	}
}

func TestBuildFrameSumsStackSymbolSizes(t *testing.T) {
	tab := symtab.New()
	a := declVar(tab, "a")
	b := declVar(tab, "b")
	tab.Get(a).Loc = symtab.LocStack
	tab.Get(b).Loc = symtab.LocStack
	g := singleBlockGraph(t, tab, []pasm.Statement{
		{Op: pasm.OpMov, Dst: pasm.Unresolved(a, 4), Src: pasm.Unresolved(b, 4)},
		{Op: pasm.OpRet},
	})
	f := BuildFrame(tab, g)
	if f.Size != 8 {
		t.Fatalf("want frame size 8 (two 4-byte slots), got %d", f.Size)
	}
	if f.Offset[a] == f.Offset[b] {
		t.Errorf("distinct symbols must get distinct offsets")
	}
}

func TestResolveRewritesRegisterAndStackOperands(t *testing.T) {
	tab := symtab.New()
	a := declVar(tab, "a")
	b := declVar(tab, "b")
	tab.Get(a).Loc = symtab.LocA
	tab.Get(b).Loc = symtab.LocStack
	g := singleBlockGraph(t, tab, []pasm.Statement{
		{Op: pasm.OpMov, Dst: pasm.Unresolved(a, 4), Src: pasm.Unresolved(b, 4)},
	})
	f := BuildFrame(tab, g)
	if err := Resolve(tab, f, g); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	stmt := g.Entry.PASM[0]
	if stmt.Dst.Kind != pasm.KindLocation || stmt.Dst.Loc != symtab.LocA {
		t.Errorf("dst should resolve to register LocA, got %+v", stmt.Dst)
	}
	if stmt.Src.Kind != pasm.KindLocation || stmt.Src.Loc != symtab.LocStack || !stmt.Src.Deref {
		t.Errorf("src should resolve to a dereferenced stack slot, got %+v", stmt.Src)
	}
	if stmt.Src.Offset != f.Offset[b] {
		t.Errorf("resolved stack offset must match the frame layout")
	}
}

func TestResolveRewritesLabelSymbols(t *testing.T) {
	tab := symtab.New()
	lbl := tab.NewLabel("l0")
	g := singleBlockGraph(t, tab, []pasm.Statement{
		{Op: pasm.OpJmp, Dst: pasm.Unresolved(lbl, 0)},
	})
	f := BuildFrame(tab, g)
	if err := Resolve(tab, f, g); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	dst := g.Entry.PASM[0].Dst
	if dst.Kind != pasm.KindLabel || dst.Label != "l0" {
		t.Errorf("jump target must resolve to its label name, got %+v", dst)
	}
}

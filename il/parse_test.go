/*
 * backend - IL ingestion test set.
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

package il

import (
	"testing"

	"github.com/cclang/backend/symtab"
)

func TestParseFuncDecl(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	stat, err := p.Parse("func main,i32 i32 argc,i8** argv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat.Op != Func || stat.N != 3 {
		t.Fatalf("got Op=%v N=%d, want Func/3", stat.Op, stat.N)
	}
	argc := tab.Get(stat.Args[1])
	if argc.Name != "argc" || !argc.IsParam {
		t.Errorf("argc: got %+v", argc)
	}
	argv := tab.Get(stat.Args[2])
	if argv.Name != "argv" || argv.Type.Pointers != 2 {
		t.Errorf("argv: got %+v", argv)
	}
}

func TestParseFuncMainBadArgcPointer(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("func main,i32 i32* argc,i8** argv"); err == nil {
		t.Errorf("expected BadMain error for pointer argc")
	}
}

func TestParseFuncMainBadArgvArity(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("func main,i32 i32 argc,i8* argv"); err == nil {
		t.Errorf("expected BadMain error for single-indirection argv")
	}
}

func TestParseDef(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	stat, err := p.Parse("def i32 x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat.Op != Def || stat.N != 1 {
		t.Fatalf("got Op=%v N=%d, want Def/1", stat.Op, stat.N)
	}
	sym := tab.Get(stat.Args[0])
	if sym.Name != "x" || sym.Type.Spec != symtab.SpecI32 {
		t.Errorf("got %+v", sym)
	}
}

func TestParseArithmetic(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("def i32 x"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse("def i32 y"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse("def i32 z"); err != nil {
		t.Fatal(err)
	}
	stat, err := p.Parse("add x,y,z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat.Op != Add || stat.N != 3 {
		t.Fatalf("got Op=%v N=%d, want Add/3", stat.Op, stat.N)
	}
}

func TestParseUnknownSymbol(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("add x,y,z"); err == nil {
		t.Errorf("expected UnknownSym error for undeclared operands")
	}
}

func TestParseLabelAndJumps(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("def i32 cond"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse("lab l1"); err != nil {
		t.Fatal(err)
	}
	stat, err := p.Parse("jnz l1,cond")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat.Label() != stat.Args[0] {
		t.Errorf("jnz label mismatch")
	}
	again, err := p.Parse("jmp l1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Args[0] != stat.Args[0] {
		t.Errorf("expected jmp to resolve to the same label symbol as lab/jnz, got %v and %v", again.Args[0], stat.Args[0])
	}
}

func TestParseConstantOperand(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("def i32 x"); err != nil {
		t.Fatal(err)
	}
	stat, err := p.Parse("mov x,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := tab.Get(stat.Args[1])
	if !sym.IsConstantSym() || sym.Name != "5" {
		t.Errorf("got %+v", sym)
	}
}

func TestParseBadArity(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("def i32 x"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse("add x,x"); err == nil {
		t.Errorf("expected arity error for add with two args")
	}
}

func TestParseUnknownOpcode(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	if _, err := p.Parse("frobnicate x,y"); err == nil {
		t.Errorf("expected InvalidIns error for unknown opcode")
	}
}

func TestParseArrayDecl(t *testing.T) {
	tab := symtab.New()
	p := NewIngester(tab)
	stat, err := p.Parse("def i8[16] buf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym := tab.Get(stat.Args[0])
	if !sym.Type.HasArray || sym.Type.ArrayLen != 16 {
		t.Errorf("got %+v", sym.Type)
	}
	if sym.Bytes() != 16 {
		t.Errorf("Bytes() = %d, want 16", sym.Bytes())
	}
}

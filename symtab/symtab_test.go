/*
 * backend - Symbol table test set.
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

package symtab

import "testing"

func TestTypeEqual(t *testing.T) {
	a := NewStandard(SpecI32, 0)
	b := NewStandard(SpecI32, 0)
	c := NewStandard(SpecI32, 1)
	if !a.Equal(b) {
		t.Errorf("expected %v == %v", a, b)
	}
	if a.Equal(c) {
		t.Errorf("expected %v != %v", a, c)
	}
}

func TestTypeBytes(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{NewStandard(SpecI8, 0), 1},
		{NewStandard(SpecI32, 0), 4},
		{NewStandard(SpecI64, 0), 8},
		{NewStandard(SpecI32, 1), 8}, // pointer, any pointee
		{NewArray(SpecI32, 0, 10), 40},
	}
	for _, tc := range tests {
		if got := tc.typ.Bytes(); got != tc.want {
			t.Errorf("Bytes(%v) = %d, want %d", tc.typ, got, tc.want)
		}
	}
}

func TestIsConstant(t *testing.T) {
	cases := map[string]bool{
		"0":    true,
		"123":  true,
		"-5":   true,
		"x":    false,
		"argc": false,
	}
	for name, want := range cases {
		if got := IsConstant(name); got != want {
			t.Errorf("IsConstant(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestDeclareAndLookup(t *testing.T) {
	tab := New()
	id := tab.Declare("x", NewStandard(SpecI32, 0), true)
	got, ok := tab.Lookup("x", Type{})
	if !ok || got != id {
		t.Errorf("Lookup(x) = (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestScopeShadowing(t *testing.T) {
	tab := New()
	outer := tab.Declare("x", NewStandard(SpecI32, 0), true)
	tab.PushScope()
	inner := tab.Declare("x", NewStandard(SpecI64, 0), true)
	got, _ := tab.Lookup("x", Type{})
	if got != inner {
		t.Errorf("expected inner scope to shadow, got %v want %v", got, inner)
	}
	tab.PopScope()
	got, _ = tab.Lookup("x", Type{})
	if got != outer {
		t.Errorf("expected outer scope after pop, got %v want %v", got, outer)
	}
}

func TestConstantDedup(t *testing.T) {
	tab := New()
	a, _ := tab.Lookup("5", TypeInt)
	b, _ := tab.Lookup("5", TypeInt)
	if a != b {
		t.Errorf("expected constant 5 to dedup to the same SymbolId, got %v and %v", a, b)
	}
	if sym := tab.Get(a); !sym.IsConstantSym() {
		t.Errorf("expected constant symbol, got Loc=%v", sym.Loc)
	}
}

func TestClearResetsScopesNotConstants(t *testing.T) {
	tab := New()
	c, _ := tab.Lookup("7", TypeInt)
	tab.Declare("x", NewStandard(SpecI32, 0), true)
	tab.Clear()
	if _, ok := tab.Lookup("x", Type{}); ok {
		t.Errorf("expected x to be gone after Clear")
	}
	c2, _ := tab.Lookup("7", TypeInt)
	if c != c2 {
		t.Errorf("expected constant pool to survive Clear, got %v and %v", c, c2)
	}
}

func TestNewTempUnique(t *testing.T) {
	tab := New()
	a := tab.NewTemp(NewStandard(SpecI32, 0))
	b := tab.NewTemp(NewStandard(SpecI32, 0))
	if a == b {
		t.Errorf("expected distinct temporaries, got both %v", a)
	}
}

func TestLocationPalette(t *testing.T) {
	if len(Palette) != PaletteSize {
		t.Errorf("Palette has %d entries, want %d", len(Palette), PaletteSize)
	}
	for _, l := range Palette {
		if !l.IsRegister() {
			t.Errorf("Palette entry %v should be a register location", l)
		}
	}
}

func TestCalleeSaved(t *testing.T) {
	if !CalleeSaved(LocB) {
		t.Errorf("expected b to be callee-saved")
	}
	if CalleeSaved(LocA) {
		t.Errorf("expected a to be caller-saved")
	}
}

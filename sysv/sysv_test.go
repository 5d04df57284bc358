/*
 * backend - System V calling-convention assignment test set.
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

package sysv

import (
	"testing"

	"github.com/cclang/backend/symtab"
)

func TestArgLocOrder(t *testing.T) {
	want := []symtab.Location{symtab.LocDi, symtab.LocSi, symtab.LocD, symtab.LocC, symtab.Loc8, symtab.Loc9}
	dat := NewCallData()
	for i, w := range want {
		got, err := dat.ArgLoc()
		if err != nil {
			t.Fatalf("arg %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("arg %d: got %v, want %v", i, got, w)
		}
	}
}

func TestArgLocExhausted(t *testing.T) {
	dat := NewCallData()
	for i := 0; i < 6; i++ {
		if _, err := dat.ArgLoc(); err != nil {
			t.Fatalf("arg %d: unexpected error %v", i, err)
		}
	}
	if _, err := dat.ArgLoc(); err == nil {
		t.Errorf("expected an error for a 7th argument")
	}
}

func TestRetLocIsA(t *testing.T) {
	tab := symtab.New()
	id := tab.Declare("x", symtab.NewStandard(symtab.SpecI32, 0), true)
	loc, err := RetLoc(tab.Get(id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != symtab.LocA {
		t.Errorf("got %v, want LocA", loc)
	}
}

func TestCallerSave(t *testing.T) {
	if !CallerSave(symtab.LocA) {
		t.Errorf("expected a to be caller-saved")
	}
	if CallerSave(symtab.LocB) {
		t.Errorf("expected b to be callee-saved, not caller-saved")
	}
	if CallerSave(symtab.LocStack) {
		t.Errorf("expected non-register Location to report false")
	}
}

func TestAssignParams(t *testing.T) {
	tab := symtab.New()
	a := tab.Declare("a", symtab.NewStandard(symtab.SpecI32, 0), true)
	b := tab.Declare("b", symtab.NewStandard(symtab.SpecI32, 0), true)
	if err := AssignParams(tab, []symtab.SymbolId{a, b}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab.Get(a).Loc != symtab.LocDi {
		t.Errorf("first param: got %v, want LocDi", tab.Get(a).Loc)
	}
	if tab.Get(b).Loc != symtab.LocSi {
		t.Errorf("second param: got %v, want LocSi", tab.Get(b).Loc)
	}
}

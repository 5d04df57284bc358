/*
 * backend - System V AMD64 calling-convention assignment.
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

// Package sysv assigns argument and return locations per the System V
// AMD64 ABI: the subset the code generator needs (integer-class
// arguments only, up to six in registers, no varargs, no SSE class).
package sysv

import (
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/symtab"
)

// intArgLoc is the integer-class argument register order, left to
// right, per the ABI and asmgen/sysv.h's call_arg_loc.
var intArgLoc = [...]symtab.Location{
	symtab.LocDi, symtab.LocSi, symtab.LocD, symtab.LocC, symtab.Loc8, symtab.Loc9,
}

// CallData tracks how many integer-class argument slots a call site
// (or a function's own parameter list) has consumed so far.
type CallData struct {
	intLoc int
}

func NewCallData() *CallData {
	return &CallData{}
}

// ArgLoc returns the Location the next integer-class argument should
// occupy, consuming one slot. Once all six integer argument registers
// are spoken for, additional arguments would need stack passing; this
// generator's Non-goals exclude that, so a seventh argument is an
// internal error (ArgBufExceed) rather than a stack-passed argument.
func (d *CallData) ArgLoc() (symtab.Location, error) {
	if d.intLoc >= len(intArgLoc) {
		return symtab.LocNone, errcode.New(errcode.ArgBufExceed)
	}
	loc := intArgLoc[d.intLoc]
	d.intLoc++
	return loc, nil
}

// RetLoc returns the Location a function's return value occupies:
// always the "a" location for any integer/pointer width this
// generator supports.
func RetLoc(sym *symtab.Symbol) (symtab.Location, error) {
	if sym.Bytes() > 8 {
		return symtab.LocNone, errcode.New(errcode.OutOfMemory).WithToken(sym.Name)
	}
	return symtab.LocA, nil
}

// CallerSave reports whether the ABI requires the caller to preserve
// loc across a call site (the complement of symtab.CalleeSaved, save
// for bp/sp which neither list names since the allocator never hands
// them out).
func CallerSave(loc symtab.Location) bool {
	if !loc.IsRegister() {
		return false
	}
	return !symtab.CalleeSaved(loc)
}

// AssignParams walks a function's declared parameters in order and
// assigns each its incoming-argument Location, per call_arg_loc.
func AssignParams(tab *symtab.Table, params []symtab.SymbolId) error {
	dat := NewCallData()
	for _, id := range params {
		loc, err := dat.ArgLoc()
		if err != nil {
			return err
		}
		tab.Get(id).Loc = loc
	}
	return nil
}

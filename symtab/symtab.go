/*
 * backend - Symbol table: names, constants, temporaries, scopes.
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

import (
	"strconv"
)

// SymbolId is an opaque, stable handle into the Table. It survives
// across Table growth; never treat it as an index without asking the
// Table to resolve it.
type SymbolId int

const invalidID SymbolId = -1

// Symbol is {name, type, value-category, storage location}.
type Symbol struct {
	Name     string
	Type     Type
	LValue   bool
	Loc      Location
	IsParam  bool // function parameter; consumed by package sysv for arg-register assignment
	AddrTaken bool // forced to Stack by regalloc's precolor pass once a lea is seen
}

// IsConstant reports whether name would be treated as a numeric
// constant per spec.md §3 ("begins with a digit or '-'").
func IsConstant(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return (c >= '0' && c <= '9') || c == '-'
}

func (s *Symbol) IsLabel() bool {
	return s.Type.Equal(TypeLabel) && !IsConstant(s.Name)
}

func (s *Symbol) IsVar() bool {
	return s.Loc != LocConstant && !s.Type.IsFunction() && !s.IsLabel()
}

func (s *Symbol) InRegister() bool {
	return s.Loc.IsRegister()
}

func (s *Symbol) OnStack() bool {
	return s.Loc == LocStack
}

func (s *Symbol) IsConstantSym() bool {
	return s.Loc == LocConstant
}

func (s *Symbol) Bytes() int {
	return s.Type.Bytes()
}

// scope is one lexical level of named symbols; function parameters
// and locals live in a stack of these, named symbols are looked up
// innermost-first.
type scope struct {
	names map[string]SymbolId
}

func newScope() *scope {
	return &scope{names: make(map[string]SymbolId)}
}

// Table is the symbol table for a single function: a global
// constant pool plus a stack of named-symbol scopes. clear_func
// (Table.Clear) tears it down between functions. Constants live in
// their own slice, addressed by negative SymbolIds, so that Clear
// truncating the per-function symbol slice never invalidates a
// constant another function already created (the constant pool is
// shared across the whole translation unit, per asm_gen.c's
// clear_func, which only frees the per-function symbol table).
type Table struct {
	symbols   []Symbol
	constSyms []Symbol
	constants map[string]SymbolId // name -> constant SymbolId, shared across the whole translation unit
	scopes    []*scope
}

func New() *Table {
	t := &Table{
		constants: make(map[string]SymbolId),
	}
	t.PushScope()
	return t
}

// isConstID reports whether id addresses the constant pool rather
// than the per-function symbol slice.
func isConstID(id SymbolId) bool {
	return id < 0
}

func constIndex(id SymbolId) int {
	return int(-id - 1)
}

// PushScope opens a new nested named-symbol scope (entering a
// function or a lexical block).
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, newScope())
}

// PopScope closes the innermost named-symbol scope.
func (t *Table) PopScope() {
	if len(t.scopes) > 0 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Clear tears down the symbol table for the next function
// (asm_gen.c's clear_func); the constant pool, being global, survives.
func (t *Table) Clear() {
	t.symbols = t.symbols[:0]
	t.scopes = t.scopes[:0]
	t.PushScope()
}

func (t *Table) at(id SymbolId) *Symbol {
	if isConstID(id) {
		return &t.constSyms[constIndex(id)]
	}
	return &t.symbols[id]
}

// Get resolves a SymbolId to its Symbol.
func (t *Table) Get(id SymbolId) *Symbol {
	return t.at(id)
}

// Declare introduces a new named symbol in the innermost scope.
func (t *Table) Declare(name string, typ Type, lvalue bool) SymbolId {
	id := SymbolId(len(t.symbols))
	t.symbols = append(t.symbols, Symbol{Name: name, Type: typ, LValue: lvalue, Loc: LocNone})
	t.scopes[len(t.scopes)-1].names[name] = id
	return id
}

// DeclareParam is Declare plus the IsParam tag package sysv consumes.
func (t *Table) DeclareParam(name string, typ Type) SymbolId {
	id := t.Declare(name, typ, true)
	t.at(id).IsParam = true
	return id
}

// NewTemp allocates a fresh, unnamed temporary of the given type,
// used by instruction selection's New(k) operand descriptor.
func (t *Table) NewTemp(typ Type) SymbolId {
	name := "%t" + strconv.Itoa(len(t.symbols))
	return t.Declare(name, typ, true)
}

// NewLabel allocates a fresh control-flow label symbol.
func (t *Table) NewLabel(name string) SymbolId {
	return t.Declare(name, TypeLabel, false)
}

// Lookup finds a named symbol, searching scopes innermost-first, or
// constant-dedupes/creates a numeric-constant symbol if name looks
// like one.
func (t *Table) Lookup(name string, typ Type) (SymbolId, bool) {
	if IsConstant(name) {
		return t.constant(name, typ), true
	}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if id, ok := t.scopes[i].names[name]; ok {
			return id, true
		}
	}
	return invalidID, false
}

// constant deduplicates a numeric-constant symbol in the global
// constant scope shared by the whole translation unit.
func (t *Table) constant(name string, typ Type) SymbolId {
	if id, ok := t.constants[name]; ok {
		return id
	}
	id := SymbolId(-(len(t.constSyms) + 1))
	t.constSyms = append(t.constSyms, Symbol{Name: name, Type: typ, Loc: LocConstant})
	t.constants[name] = id
	return id
}

// Constants returns every deduplicated constant symbol in the order
// each was first interned, for -dprint-symtab's full dump
// (SPEC_FULL.md §10). Reading off t.constSyms directly, rather than
// ranging the name->id map, keeps the dump's order reproducible run
// to run regardless of Go's randomized map iteration.
func (t *Table) Constants() []SymbolId {
	ids := make([]SymbolId, len(t.constSyms))
	for i := range t.constSyms {
		ids[i] = SymbolId(-(i + 1))
	}
	return ids
}

// Count returns the number of symbols ever allocated since the last Clear.
func (t *Table) Count() int {
	return len(t.symbols)
}


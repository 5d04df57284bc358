/*
 * backend - Type representation and arithmetic.
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

// Package symtab holds the Type/Symbol/SymbolId data model and the
// per-function scope stack described by the data model.
package symtab

// Specifier is the scalar type specifier, distinguishing "long" and
// "long double" from their same-width cousins so usual-arithmetic
// promotion rules pick the right rank.
type Specifier int

const (
	SpecNone Specifier = iota - 1
	SpecVoid
	SpecI8
	SpecI16
	SpecI32
	SpecLong // distinct "long" rank, same width as I32 on this target
	SpecI64
	SpecU8
	SpecU16
	SpecU32
	SpecULong // distinct "unsigned long" rank
	SpecU64
	SpecF32
	SpecF64
	SpecLongDouble
)

var specifierStrings = [...]string{
	"void", "i8", "i16", "i32", "long", "i64",
	"u8", "u16", "u32", "ulong", "u64",
	"f32", "f64", "long double",
}

func (s Specifier) String() string {
	if s < 0 || int(s) >= len(specifierStrings) {
		return "none"
	}
	return specifierStrings[s]
}

// specifierBytes gives bytes(t) for the scalar specifier alone, before
// pointer/array adjustment.
var specifierBytes = [...]int{
	0, // void
	1, // i8
	2, // i16
	4, // i32
	4, // long
	8, // i64
	1, // u8
	2, // u16
	4, // u32
	4, // ulong
	8, // u64
	4, // f32
	8, // f64
	8, // long double (no float register class is allocated, but bytes() must still answer)
}

// Category distinguishes a standard scalar/array type from a function type.
type Category int

const (
	CategoryStandard Category = iota
	CategoryFunction
)

// Type is the tagged-variant type of spec.md §3: a standard type or a
// function type, carrying a pointer-indirection count and up to one
// array dimension.
type Type struct {
	Category  Category
	Spec      Specifier
	Pointers  int
	ArrayLen  int  // 0 if not an array
	HasArray  bool
	ReturnOf  *Type // set iff Category == CategoryFunction
}

// NewStandard builds a standard (non-function) type.
func NewStandard(spec Specifier, pointers int) Type {
	return Type{Category: CategoryStandard, Spec: spec, Pointers: pointers}
}

// NewArray builds a standard array type of the given element count.
func NewArray(spec Specifier, pointers, length int) Type {
	return Type{Category: CategoryStandard, Spec: spec, Pointers: pointers, ArrayLen: length, HasArray: true}
}

// NewFunction builds a function type with the given return type.
func NewFunction(ret Type) Type {
	r := ret
	return Type{Category: CategoryFunction, Spec: ret.Spec, Pointers: ret.Pointers, ReturnOf: &r}
}

// Equal implements spec.md's "two types are equal iff their category,
// type-specifier, and pointer count match".
func (t Type) Equal(o Type) bool {
	return t.Category == o.Category && t.Spec == o.Spec && t.Pointers == o.Pointers
}

func (t Type) IsPointer() bool {
	return t.Pointers > 0
}

func (t Type) IsFunction() bool {
	return t.Category == CategoryFunction
}

// Bytes implements bytes(t): 8 for any pointer, otherwise the
// specifier's width, multiplied by the element count for arrays.
func (t Type) Bytes() int {
	var b int
	if t.Pointers > 0 {
		b = 8
	} else if int(t.Spec) >= 0 && int(t.Spec) < len(specifierBytes) {
		b = specifierBytes[t.Spec]
	}
	if t.HasArray && t.ArrayLen > 0 {
		b *= t.ArrayLen
	}
	return b
}

// IsSigned reports whether the scalar specifier is a signed integer
// type. Used by the instruction selector's sign-char constraint match.
func (t Type) IsSigned() bool {
	switch t.Spec {
	case SpecI8, SpecI16, SpecI32, SpecLong, SpecI64:
		return true
	default:
		return false
	}
}

// Label and void-ish helper types used throughout the pipeline for
// control-flow symbols and constant offsetting.
var (
	TypeLabel     = NewStandard(SpecVoid, 0)
	TypeInt       = NewStandard(SpecI32, 0)
	TypePtrOffset = NewStandard(SpecI64, 0)
)

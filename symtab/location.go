/*
 * backend - x86-64 register and storage-location enumeration.
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

// Location is where a Symbol lives: unassigned, a deduplicated
// constant, the stack, or one of the fourteen allocatable register
// slots. loc_bp/loc_sp from the original design are reserved for the
// frame and stack pointers and never handed out by the allocator, so
// they are omitted from the palette.
type Location int

const (
	LocNone     Location = iota - 3
	LocConstant          // -2
	LocStack             // -1
	LocA                 // 0
	LocB
	LocC
	LocD
	LocSi
	LocDi
	Loc8
	Loc9
	Loc10
	Loc11
	Loc12
	Loc13
	Loc14
	Loc15
)

// PaletteSize is the number of physical register slots the allocator
// may assign (§4.9 of spec.md).
const PaletteSize = 14

// Palette lists every allocatable Location in a fixed, stable order;
// the register allocator iterates it when picking an unused slot.
var Palette = [PaletteSize]Location{
	LocA, LocB, LocC, LocD, LocSi, LocDi,
	Loc8, Loc9, Loc10, Loc11, Loc12, Loc13, Loc14, Loc15,
}

var locStrings = [...]string{"a", "b", "c", "d", "si", "di", "8", "9", "10", "11", "12", "13", "14", "15"}

func (l Location) String() string {
	switch l {
	case LocNone:
		return "none"
	case LocConstant:
		return "constant"
	case LocStack:
		return "stack"
	}
	if l >= LocA && int(l) < len(locStrings) {
		return locStrings[l]
	}
	return "invalid"
}

// IsRegister reports whether l names one of the fourteen palette slots.
func (l Location) IsRegister() bool {
	return l >= LocA && int(l-LocA) < PaletteSize
}

// Index returns the palette index of a register Location, or -1.
func (l Location) Index() int {
	if !l.IsRegister() {
		return -1
	}
	return int(l - LocA)
}

// Register is a concrete, size-specific x86-64 register (e.g. al vs
// eax vs rax all name the "a" Location at different widths).
type Register int

const (
	RegNone Register = iota - 1
	RegAl
	RegBl
	RegCl
	RegDl
	RegSil
	RegDil
	RegBpl
	RegSpl
	RegR8b
	RegR9b
	RegR10b
	RegR11b
	RegR12b
	RegR13b
	RegR14b
	RegR15b

	RegAx
	RegBx
	RegCx
	RegDx
	RegSi
	RegDi
	RegBp
	RegSp
	RegR8w
	RegR9w
	RegR10w
	RegR11w
	RegR12w
	RegR13w
	RegR14w
	RegR15w

	RegEax
	RegEbx
	RegEcx
	RegEdx
	RegEsi
	RegEdi
	RegEbp
	RegEsp
	RegR8d
	RegR9d
	RegR10d
	RegR11d
	RegR12d
	RegR13d
	RegR14d
	RegR15d

	RegRax
	RegRbx
	RegRcx
	RegRdx
	RegRsi
	RegRdi
	RegRbp
	RegRsp
	RegR8
	RegR9
	RegR10
	RegR11
	RegR12
	RegR13
	RegR14
	RegR15
)

var regStrings = [...]string{
	"al", "bl", "cl", "dl", "sil", "dil", "bpl", "spl",
	"r8b", "r9b", "r10b", "r11b", "r12b", "r13b", "r14b", "r15b",
	"ax", "bx", "cx", "dx", "si", "di", "bp", "sp",
	"r8w", "r9w", "r10w", "r11w", "r12w", "r13w", "r14w", "r15w",
	"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "esp",
	"r8d", "r9d", "r10d", "r11d", "r12d", "r13d", "r14d", "r15d",
	"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

func (r Register) String() string {
	if r < 0 || int(r) >= len(regStrings) {
		return "invalid"
	}
	return regStrings[r]
}

// locBase is the "size 8" (byte) register index offset for each of
// the fourteen locations plus bp/sp, in Palette-adjacent order used
// to index into regStrings by size class.
var locBase = map[Location]int{
	LocA: 0, LocB: 1, LocC: 2, LocD: 3, LocSi: 4, LocDi: 5,
	Loc8: 8, Loc9: 9, Loc10: 10, Loc11: 11, Loc12: 12, Loc13: 13, Loc14: 14, Loc15: 15,
}

// RegForSize resolves a Location to the concrete Register of the
// requested byte size (1, 2, 4, or 8). bp and sp are handled
// separately from the Palette since they are reserved.
func RegForSize(loc Location, size int) Register {
	base, ok := locBase[loc]
	if !ok {
		return RegNone
	}
	switch size {
	case 1:
		return Register(base)
	case 2:
		return Register(16 + base)
	case 4:
		return Register(32 + base)
	case 8:
		return Register(48 + base)
	default:
		return RegNone
	}
}

// BpReg and SpReg resolve the reserved frame/stack pointer to the
// register of the requested size; they exist outside Location since
// bp/sp are never handed out by the allocator.
func BpReg(size int) Register {
	switch size {
	case 1:
		return RegBpl
	case 2:
		return RegBp
	case 4:
		return RegEbp
	default:
		return RegRbp
	}
}

func SpReg(size int) Register {
	switch size {
	case 1:
		return RegSpl
	case 2:
		return RegSp
	case 4:
		return RegEsp
	default:
		return RegRsp
	}
}

// CalleeSaved reports whether the System V ABI requires the callee to
// preserve this location across a call (asmgen/sysv.h's
// call_callee_save). Only bp, b, and r12-r15 are callee-saved; every
// other allocatable location is caller-saved.
func CalleeSaved(loc Location) bool {
	switch loc {
	case LocB, Loc12, Loc13, Loc14, Loc15:
		return true
	default:
		return false
	}
}

/*
 * backend - Assembly text emission.
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
	"fmt"
	"strings"

	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// Function renders one fully allocated function (spec.md §4.12): the
// f@<name> label, prologue, every block's label(s) and statements in
// order, and, when name is "main", the process entry shim that the
// platform actually calls.
//
// g's blocks must already carry final PASM: instruction-selected,
// register-allocated (Resolve already run), spill-coded, and
// peephole-cleaned. Function does not mutate g.
func Function(tab *symtab.Table, name string, f *Frame, g *cfg.Graph) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "f@%s:\n", name)
	sb.WriteString("\tpush rbp\n")
	sb.WriteString("\tmov rbp, rsp\n")
	if f.Size > 0 {
		fmt.Fprintf(&sb, "\tsub rsp, %d\n", f.Size)
	}

	for _, b := range g.Blocks {
		for _, lbl := range b.Labels {
			fmt.Fprintf(&sb, "%s:\n", tab.Get(lbl).Name)
		}
		for _, stmt := range b.PASM {
			renderStatement(&sb, stmt)
		}
	}

	if name == "main" {
		sb.WriteString(startShim)
	}

	return sb.String()
}

func renderStatement(sb *strings.Builder, stmt pasm.Statement) {
	if stmt.Op == pasm.OpRet {
		sb.WriteString("\tleave\n\tret\n")
		return
	}
	ops := stmt.Operands()
	if len(ops) == 0 {
		fmt.Fprintf(sb, "\t%s\n", stmt.Op)
		return
	}
	rendered := make([]string, len(ops))
	for i, op := range ops {
		rendered[i] = renderOperand(op)
	}
	fmt.Fprintf(sb, "\t%s %s\n", stmt.Op, strings.Join(rendered, ", "))
}

func renderOperand(op pasm.Operand) string {
	switch op.Kind {
	case pasm.KindImmediate:
		return fmt.Sprintf("%d", op.Value)
	case pasm.KindLabel:
		return op.Label
	case pasm.KindLocation:
		if op.Loc == symtab.LocStack {
			return fmt.Sprintf("%s [rbp%+d]", directive(op.Size), op.Offset)
		}
		reg := symtab.RegForSize(op.Loc, op.Size)
		if op.Deref {
			return fmt.Sprintf("%s [%s]", directive(op.Size), reg)
		}
		return reg.String()
	default:
		return "?"
	}
}

// directive names the size-directive keyword x86 assemblers expect in
// front of a memory operand so the assembler knows the access width.
func directive(size int) string {
	switch size {
	case 1:
		return "byte"
	case 2:
		return "word"
	case 4:
		return "dword"
	default:
		return "qword"
	}
}

// startShim is the process entry point emitted exactly once, only
// for a translation unit defining main: it reads argc/argv off the
// initial stack layout the kernel hands a freshly exec'd process,
// calls f@main, and exits with its return value via the exit syscall
// rather than falling off the end of _start.
const startShim = `_start:
	mov rdi, [rsp]
	lea rsi, [rsp+8]
	call f@main
	mov rdi, rax
	mov rax, 60
	syscall
`

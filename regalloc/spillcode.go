/*
 * backend - Post-coloring spill-code insertion.
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

package regalloc

import (
	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// InsertSpillCode walks every PASM statement after coloring and
// rewrites any statement with more than one Stack-resident operand:
// x86 permits at most one memory operand per instruction, so every
// Stack operand beyond the first is reloaded into a temporary drawn
// from a small rotating pool (spec.md §4.10). A use is wrapped
// push/mov-in/.../pop; a def also gets a mov-out before the pop so
// the written value reaches its stack slot.
func InsertSpillCode(g *cfg.Graph) error {
	for _, b := range g.Blocks {
		var out []pasm.Statement
		for _, stmt := range b.PASM {
			expanded, err := spillStatement(stmt)
			if err != nil {
				return err
			}
			out = append(out, expanded...)
		}
		b.PASM = out
	}
	return nil
}

func isStackOperand(op pasm.Operand) bool {
	return op.Kind == pasm.KindLocation && op.Loc == symtab.LocStack
}

// pool is the rotating spill-temp register order; loc_a/loc_d are
// skipped since div/mod's macro expansion already claims them across
// statement boundaries and a second claim within the same statement
// would stomp a live save/restore window.
var pool = []symtab.Location{symtab.LocC, symtab.LocSi, symtab.LocDi, symtab.Loc8, symtab.Loc9,
	symtab.Loc10, symtab.Loc11, symtab.Loc12, symtab.Loc13, symtab.Loc14, symtab.Loc15, symtab.LocB}

func spillStatement(stmt pasm.Statement) ([]pasm.Statement, error) {
	operands := stmt.Operands()
	stackCount := 0
	for _, op := range operands {
		if isStackOperand(op) {
			stackCount++
		}
	}
	if stackCount <= 1 {
		return []pasm.Statement{stmt}, nil
	}

	var pre, post []pasm.Statement
	next := 0
	rewrite := func(op *pasm.Operand, isDef bool) error {
		if !isStackOperand(*op) {
			return nil
		}
		if next >= len(pool) {
			return errcode.New(errcode.OutOfMemory).WithToken("spill temp pool exhausted")
		}
		tmp := pool[next]
		next++
		size := op.Size
		pre = append(pre, pasm.Statement{Op: pasm.OpPush, Dst: pasm.AtLocation(tmp, 8)})
		if !isDef {
			pre = append(pre, pasm.Statement{Op: pasm.OpMov, Dst: pasm.AtLocation(tmp, size), Src: *op})
		}
		original := *op
		*op = pasm.AtLocation(tmp, size)
		if isDef {
			post = append([]pasm.Statement{{Op: pasm.OpMov, Dst: original, Src: pasm.AtLocation(tmp, size)}}, post...)
		}
		post = append(post, pasm.Statement{Op: pasm.OpPop, Dst: pasm.AtLocation(tmp, 8)})
		return nil
	}

	// Keep the first Stack operand as the instruction's direct memory
	// operand; reload every later one.
	seenFirst := false
	isDefSlot := func(i int) bool {
		return i == 0 && opWritesSlot(stmt.Op)
	}
	for i := range operands {
		if !isStackOperand(operands[i]) {
			continue
		}
		if !seenFirst {
			seenFirst = true
			continue
		}
		slot := operandSlot(&stmt, i)
		if err := rewrite(slot, isDefSlot(i)); err != nil {
			return nil, err
		}
	}

	result := make([]pasm.Statement, 0, len(pre)+1+len(post))
	result = append(result, pre...)
	result = append(result, stmt)
	result = append(result, post...)
	return result, nil
}

func operandSlot(stmt *pasm.Statement, i int) *pasm.Operand {
	if i == 0 {
		return &stmt.Dst
	}
	return &stmt.Src
}

func opWritesSlot(op pasm.Op) bool {
	switch op {
	case pasm.OpCmp, pasm.OpJe, pasm.OpJne, pasm.OpJmp, pasm.OpCall, pasm.OpPush, pasm.OpRet:
		return false
	default:
		return true
	}
}

/*
 * backend - Control-flow graph construction from IL statements.
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

// Package cfg builds the per-function control-flow graph from a
// stream of IL statements, and hosts the liveness and loop-depth
// passes that run over it before instruction selection.
package cfg

import (
	"github.com/cclang/backend/errcode"
	"github.com/cclang/backend/il"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// MaxSuccessors bounds a Block's outgoing edges: every terminator in
// this IL (jmp/jnz/jz/ret, or fall-through) has at most two.
const MaxSuccessors = 2

// Block is one basic block: control enters only at its first
// statement and leaves only at its last. Go slices of *Block survive
// append-driven Graph growth without invalidating existing pointers,
// so successor links are plain *Block fields rather than the
// offset-into-storage scheme a reallocating array would need.
type Block struct {
	Labels []symtab.SymbolId
	IL     []il.Statement
	PASM   []pasm.Statement

	Next [MaxSuccessors]*Block
	nSucc int

	Use []symtab.SymbolId
	Def []symtab.SymbolId

	In  []symtab.SymbolId
	Out []symtab.SymbolId

	LoopDepth int

	id int
}

func (b *Block) Successors() []*Block {
	return b.Next[:b.nSucc]
}

func (b *Block) addSuccessor(s *Block) {
	if s == nil || b.nSucc >= MaxSuccessors {
		return
	}
	for _, existing := range b.Next[:b.nSucc] {
		if existing == s {
			return
		}
	}
	b.Next[b.nSucc] = s
	b.nSucc++
}

func (b *Block) HasLabel(id symtab.SymbolId) bool {
	for _, l := range b.Labels {
		if l == id {
			return true
		}
	}
	return false
}

func (b *Block) Empty() bool {
	return len(b.IL) == 0
}

func (b *Block) terminator() (il.Statement, bool) {
	if len(b.IL) == 0 {
		return il.Statement{}, false
	}
	return b.IL[len(b.IL)-1], true
}

// Graph is one function's control-flow graph: entry block plus every
// block reachable from it, in creation order.
type Graph struct {
	Func   symtab.SymbolId
	Blocks []*Block
	Entry  *Block
}

func newGraph() *Graph {
	g := &Graph{}
	g.Entry = g.newBlock()
	return g
}

func (g *Graph) newBlock() *Block {
	b := &Block{id: len(g.Blocks)}
	g.Blocks = append(g.Blocks, b)
	return b
}

// Build ingests one function's IL statements (the statement carrying
// the `func` opcode must have already been consumed by the caller and
// is passed in separately) and produces its CFG, per spec.md §4.1's
// partitioning rule.
func Build(tab *symtab.Table, fn symtab.SymbolId, stmts []il.Statement) (*Graph, error) {
	g := newGraph()
	g.Func = fn

	type pendingJump struct {
		block *Block
		label symtab.SymbolId
	}
	var jumps []pendingJump

	cur := g.Entry
	for _, s := range stmts {
		switch s.Kind() {
		case il.KindLabel:
			target := s.Arg(0)
			if cur.Empty() {
				cur.Labels = append(cur.Labels, target)
				continue
			}
			next := g.newBlock()
			cur.addSuccessor(next)
			next.Labels = append(next.Labels, target)
			cur = next

		case il.KindUncondJump:
			cur.IL = append(cur.IL, s)
			jumps = append(jumps, pendingJump{cur, s.Label()})
			cur = g.newBlock()

		case il.KindCondJump:
			cur.IL = append(cur.IL, s)
			jumps = append(jumps, pendingJump{cur, s.Label()})
			next := g.newBlock()
			cur.addSuccessor(next)
			cur = next

		case il.KindReturn:
			cur.IL = append(cur.IL, s)
			cur = g.newBlock()

		default:
			cur.IL = append(cur.IL, s)
		}
	}

	for _, j := range jumps {
		target := findLabel(g, j.label)
		if target == nil {
			return nil, errcode.New(errcode.InvalidLabel).WithFunc(tab.Get(fn).Name).WithToken(tab.Get(j.label).Name)
		}
		j.block.addSuccessor(target)
	}

	return g, nil
}

func findLabel(g *Graph, label symtab.SymbolId) *Block {
	for _, b := range g.Blocks {
		if b.HasLabel(label) {
			return b
		}
	}
	return nil
}

/*
 * backend - Pre-coloring, move coalescing, and register-preference scoring.
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
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// Precolor forces the addressed symbol of every lea PASM statement to
// Stack (spec.md §4.6): a symbol whose address is taken cannot later
// be handed a register, since the register would stop being a valid
// address. If the symbol previously held a register (e.g. it is a
// function parameter), a spill mov is inserted before the lea so the
// value reaches the stack slot before it is addressed.
func Precolor(tab *symtab.Table, ig *Graph, g *cfg.Graph) {
	for _, b := range g.Blocks {
		var out []pasm.Statement
		for _, stmt := range b.PASM {
			if stmt.Op == pasm.OpLea && stmt.Src.Kind == pasm.KindUnresolved {
				sym := stmt.Src.Sym
				s := tab.Get(sym)
				if s.Loc.IsRegister() {
					out = append(out, pasm.Statement{
						Op:  pasm.OpMov,
						Dst: pasm.Unresolved(sym, s.Bytes()),
						Src: pasm.AtLocation(s.Loc, s.Bytes()),
					})
				}
				s.Loc = symtab.LocStack
				s.AddrTaken = true
				if n := ig.NodeFor(sym); n != nil {
					n.Loc = symtab.LocStack
					n.Precolored = true
				}
			}
			out = append(out, stmt)
		}
		b.PASM = out
	}
}

// canCoalesce applies spec.md §4.6's location tie-break rule.
func canCoalesce(a, b *Node) (symtab.Location, bool) {
	if a.Neighbors[b] {
		return symtab.LocNone, false
	}
	if a.Loc == symtab.LocStack || b.Loc == symtab.LocStack {
		return symtab.LocNone, false
	}
	switch {
	case a.Loc == symtab.LocNone && b.Loc == symtab.LocNone:
		return symtab.LocNone, true
	case a.Loc == symtab.LocNone:
		return b.Loc, true
	case b.Loc == symtab.LocNone:
		return a.Loc, true
	case a.Loc == b.Loc:
		return a.Loc, true
	default:
		return symtab.LocNone, false
	}
}

// merge folds dst's node into src's node: neighbor sets union, member
// lists union, dst's node is marked dead (its Members cleared) while
// its SymbolIds keep resolving to src's node via mergedInto.
func merge(dst, src *Node) {
	if dst == src {
		return
	}
	loc, _ := canCoalesce(dst, src)
	for nb := range dst.Neighbors {
		if nb == src {
			continue
		}
		delete(nb.Neighbors, dst)
		addEdge(nb, src)
	}
	src.Members = append(src.Members, dst.Members...)
	src.Loc = loc
	src.Precolored = src.Precolored || dst.Precolored
	dst.Members = nil
	dst.Neighbors = nil
	dst.mergedInto = src
}

// Coalesce merges move-related, non-interfering nodes per spec.md
// §4.6; it must run after Precolor so a lea-forced Stack symbol can
// never be coalesced into a register-resident one first.
func Coalesce(ig *Graph, g *cfg.Graph) {
	for _, b := range g.Blocks {
		for _, stmt := range b.PASM {
			if stmt.Op != pasm.OpMov {
				continue
			}
			if stmt.Dst.Kind != pasm.KindUnresolved || stmt.Src.Kind != pasm.KindUnresolved {
				continue
			}
			if stmt.Dst.Deref || stmt.Src.Deref {
				continue
			}
			dn := ig.NodeFor(stmt.Dst.Sym)
			sn := ig.NodeFor(stmt.Src.Sym)
			if dn == nil || sn == nil || dn == sn {
				continue
			}
			if _, ok := canCoalesce(dn, sn); ok {
				merge(dn, sn)
			}
		}
	}
}

// ScoreSaveRestore implements spec.md §4.7: within each block, track
// outstanding pushes of a physical location; on the matching pop,
// every symbol live across [push+1, pop] has its preference score for
// that register decremented, discouraging the allocator from picking
// a register that forces extra save/restore traffic.
func ScoreSaveRestore(ig *Graph, g *cfg.Graph) {
	for _, b := range g.Blocks {
		pushIdx := make(map[symtab.Location]int)
		for i, stmt := range b.PASM {
			switch stmt.Op {
			case pasm.OpPush:
				if stmt.Dst.Kind == pasm.KindLocation {
					pushIdx[stmt.Dst.Loc] = i
				}
			case pasm.OpPop:
				if stmt.Dst.Kind != pasm.KindLocation {
					continue
				}
				loc := stmt.Dst.Loc
				start, ok := pushIdx[loc]
				if !ok || !loc.IsRegister() {
					continue
				}
				delete(pushIdx, loc)
				decrementWindow(ig, b, start+1, i, loc)
			}
		}
	}
}

func decrementWindow(ig *Graph, b *cfg.Block, from, to int, loc symtab.Location) {
	idx := loc.Index()
	seen := make(map[symtab.SymbolId]bool)
	mark := func(id symtab.SymbolId) {
		if seen[id] {
			return
		}
		seen[id] = true
		if n := ig.NodeFor(id); n != nil {
			n.Pref[idx]--
		}
	}
	for i := from; i <= to && i < len(b.PASM); i++ {
		for _, id := range b.PASM[i].LiveIn {
			mark(id)
		}
		if i == to {
			for _, id := range b.PASM[i].LiveOut {
				mark(id)
			}
		}
	}
}

/*
 * backend - Interference graph construction.
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

// Package regalloc implements graph-coloring register allocation:
// interference-graph construction, pre-coloring and move coalescing,
// register-preference scoring, spill-cost accumulation, the coloring
// algorithm itself, and post-coloring spill-code insertion (spec.md
// §4.5-§4.10).
package regalloc

import (
	"sort"

	"github.com/cclang/backend/cfg"
	"github.com/cclang/backend/pasm"
	"github.com/cclang/backend/symtab"
)

// Node is one interference-graph node. A node may represent several
// SymbolIds at once after coalescing merges one node into another;
// Members is cleared (not removed) on a merged-away node so existing
// Node pointers remain valid.
type Node struct {
	Members  []symtab.SymbolId
	Neighbors map[*Node]bool
	Loc      symtab.Location
	Precolored bool
	SpillCost int64
	Pref      [symtab.PaletteSize]int // register-preference score, indexed by Palette position
	mergedInto *Node
}

func newNode(sym symtab.SymbolId, loc symtab.Location) *Node {
	return &Node{Members: []symtab.SymbolId{sym}, Neighbors: make(map[*Node]bool), Loc: loc}
}

// alive reports whether the node still represents any symbol (i.e.
// it was not merged away by coalescing).
func (n *Node) alive() bool {
	return len(n.Members) > 0
}

// minMember is the smallest SymbolId among a node's members, used as
// a deterministic sort key wherever a node list is otherwise read off
// map iteration order (spec.md §8: identical IL must yield identical
// output on every run).
func (n *Node) minMember() symtab.SymbolId {
	min := n.Members[0]
	for _, m := range n.Members[1:] {
		if m < min {
			min = m
		}
	}
	return min
}

// Graph is the interference graph for one function: one Node per
// variable symbol (labels, functions, and constants are excluded per
// spec.md §4.5).
type Graph struct {
	nodes map[symtab.SymbolId]*Node
}

// resolve follows merge links to the live node currently representing sym.
func (g *Graph) resolve(n *Node) *Node {
	for n.mergedInto != nil {
		n = n.mergedInto
	}
	return n
}

// NodeFor returns the interference-graph node for sym, or nil if sym
// is not a variable (never has a node).
func (g *Graph) NodeFor(sym symtab.SymbolId) *Node {
	n, ok := g.nodes[sym]
	if !ok {
		return nil
	}
	return g.resolve(n)
}

func (g *Graph) nodeFor(tab *symtab.Table, sym symtab.SymbolId) *Node {
	if n, ok := g.nodes[sym]; ok {
		return g.resolve(n)
	}
	s := tab.Get(sym)
	n := newNode(sym, s.Loc)
	n.Precolored = s.Loc != symtab.LocNone && s.Loc != symtab.LocStack
	g.nodes[sym] = n
	return n
}

func addEdge(a, b *Node) {
	if a == b {
		return
	}
	a.Neighbors[b] = true
	b.Neighbors[a] = true
}

// Build constructs the interference graph of g's function: one node
// per variable symbol, with edges per spec.md §4.5's def/live-out rule
// applied over every PASM statement of every block.
func Build(tab *symtab.Table, g *cfg.Graph) *Graph {
	ig := &Graph{nodes: make(map[symtab.SymbolId]*Node)}
	for _, sym := range varSymbols(tab, g) {
		ig.nodeFor(tab, sym)
	}
	for _, b := range g.Blocks {
		for _, stmt := range b.PASM {
			defs := stmt.DefinesSymbols(nil)
			if len(defs) == 0 {
				continue
			}
			d := defs[0]
			dn := ig.nodeFor(tab, d)
			for _, x := range stmt.LiveOut {
				if x == d {
					continue
				}
				if !isVar(tab, x) {
					continue
				}
				addEdge(dn, ig.nodeFor(tab, x))
			}
		}
	}
	return ig
}

func isVar(tab *symtab.Table, sym symtab.SymbolId) bool {
	return tab.Get(sym).IsVar()
}

// Nodes returns every still-alive node of the graph, sorted by its
// minimum member SymbolId so repeated runs over identical IL dump
// identical -dprint-ig output (SPEC_FULL.md §6.3) regardless of the
// backing map's iteration order.
func (g *Graph) Nodes() []*Node {
	seen := make(map[*Node]bool)
	var out []*Node
	for _, n := range g.nodes {
		r := g.resolve(n)
		if seen[r] || !r.alive() {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].minMember() < out[j].minMember()
	})
	return out
}

// varSymbols collects every distinct variable symbol referenced by
// any PASM statement's operands across the whole function.
func varSymbols(tab *symtab.Table, g *cfg.Graph) []symtab.SymbolId {
	seen := make(map[symtab.SymbolId]bool)
	var out []symtab.SymbolId
	add := func(id symtab.SymbolId) {
		if !isVar(tab, id) || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, b := range g.Blocks {
		for _, stmt := range b.PASM {
			for _, op := range stmt.Operands() {
				if op.Kind == pasm.KindUnresolved {
					add(op.Sym)
				}
			}
		}
	}
	return out
}

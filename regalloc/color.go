/*
 * backend - Graph-coloring register assignment.
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
	"sort"

	"github.com/cclang/backend/symtab"
)

// Color implements spec.md §4.9: nodes are visited in descending
// spill-cost order (ties broken by ascending minimum member SymbolId,
// so equal-cost nodes have a fixed relative order regardless of the
// interference graph's internal map iteration); a node already
// precolored or merged away is skipped; among the register slots not
// used by any neighbor, the one maximizing this node's preference
// score is picked, ties broken by lowest Palette index; a node with no
// free slot is spilled to Stack. Coloring is monotone: once a node's
// Loc is set here it is never revisited.
func Color(ig *Graph) {
	nodes := ig.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SpillCost != nodes[j].SpillCost {
			return nodes[i].SpillCost < nodes[j].SpillCost
		}
		return nodes[i].minMember() < nodes[j].minMember()
	})

	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.Precolored {
			continue
		}
		used := make(map[symtab.Location]bool)
		for nb := range n.Neighbors {
			nb = ig.resolve(nb)
			if nb.alive() && nb.Loc.IsRegister() {
				used[nb.Loc] = true
			}
		}
		best := -1
		bestScore := 0
		for idx, loc := range symtab.Palette {
			if used[loc] {
				continue
			}
			if best == -1 || n.Pref[idx] > bestScore {
				best = idx
				bestScore = n.Pref[idx]
			}
		}
		if best == -1 {
			n.Loc = symtab.LocStack
			continue
		}
		n.Loc = symtab.Palette[best]
	}
}

// Apply writes each node's final Loc back into the symbol table for
// every symbol the node represents (including those folded in by
// coalescing).
func Apply(tab *symtab.Table, ig *Graph) {
	for _, n := range ig.nodes {
		n = ig.resolve(n)
		if !n.alive() {
			continue
		}
		for _, sym := range n.Members {
			tab.Get(sym).Loc = n.Loc
		}
	}
}

/*
 * backend - Spill-cost accumulation.
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
)

// AccumulateSpillCost implements spec.md §4.8: every PASM use of a
// variable symbol in a block of loop depth d adds 10^d to that
// symbol's node spill cost. Higher cost means the allocator prefers
// to keep the symbol in a register rather than spill it.
func AccumulateSpillCost(ig *Graph, g *cfg.Graph) {
	for _, b := range g.Blocks {
		weight := pow10(b.LoopDepth)
		for _, stmt := range b.PASM {
			for _, id := range stmt.UsesSymbols(nil) {
				if n := ig.NodeFor(id); n != nil {
					n.SpillCost += weight
				}
			}
		}
	}
}

func pow10(d int) int64 {
	if d < 0 {
		d = 0
	}
	v := int64(1)
	for i := 0; i < d; i++ {
		v *= 10
	}
	return v
}

/*
 * backend - Loop-depth estimation via DFS back-edge detection.
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

package cfg

// EstimateLoopDepth is an under-approximation of loop nesting depth,
// chosen for implementation simplicity over exact natural-loop
// analysis (spec.md §4.4): DFS from the entry block, carrying the
// current path. A back-edge to a block on the path bumps every
// path block from the re-entered block to the tail. A cross-edge to a
// fully visited block propagates that block's already-settled depth
// backward along the path, stopping at the first fully visited block.
func EstimateLoopDepth(g *Graph) {
	onPath := make(map[*Block]int) // block -> index in path
	done := make(map[*Block]bool)
	var path []*Block

	var visit func(b *Block)
	visit = func(b *Block) {
		if idx, inPath := onPath[b]; inPath {
			for i := idx; i < len(path); i++ {
				path[i].LoopDepth++
			}
			return
		}
		if done[b] {
			propagate(path, b.LoopDepth, done)
			return
		}

		onPath[b] = len(path)
		path = append(path, b)

		for _, s := range b.Successors() {
			visit(s)
		}

		path = path[:len(path)-1]
		delete(onPath, b)
		done[b] = true
	}
	visit(g.Entry)
}

// propagate walks the path from its tail backward, raising any
// block's depth that is below target, stopping at the first block
// already marked done (a previously fully-visited block bounds how
// far the propagation is allowed to travel).
func propagate(path []*Block, target int, done map[*Block]bool) {
	for i := len(path) - 1; i >= 0; i-- {
		b := path[i]
		if b.LoopDepth < target {
			b.LoopDepth = target
		}
		if done[b] {
			break
		}
	}
}

// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listdiff

import (
	"slices"

	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/edits"
)

// assemble translates the forward edit script es into steps and classifies all elements.
//
// Steps are emitted in the order of es. Keeps never become steps. Consecutive deletions and
// insertions become Remove and Add steps, one per edit or, with batching, one per run. An insertion
// that is paired with a deletion becomes a Move at the position of the insertion, the deletion
// doesn't produce a step and splits runs like a keep.
func assemble[T any](x, y []T, es []edits.Edit, eq func(a, b T) bool, cfg config.Config) Result[T] {
	var pm pairing
	if cfg.Moves {
		pm = pairMoves(x, y, es, eq)
	}

	// Without moves, the positions follow directly from the edit script: Everything before the
	// current edit is already in its final position. Moves leave elements behind that are yet to be
	// moved, positions are then tracked by replaying the steps.
	var rp *replay
	if pm.n > 0 {
		rp = newReplay(len(x), len(y))
	}

	var r Result[T]
	t := 0 // number of elements of y in place
	for k := 0; k < len(es); {
		e := es[k]
		switch {
		case e.Op == edits.Keep:
			it := Item[T]{OldSeqIndex: e.S, NewSeqIndex: e.T, OldValue: x[e.S], NewValue: y[e.T]}
			r.NotMovedItems = append(r.NotMovedItems, it)
			r.SameItems = append(r.SameItems, it)
			if rp != nil {
				rp.keep(e.S, e.T)
			}
			t++
			k++

		case e.Op == edits.Delete && pm.isMoved(e.S):
			// Handled by the paired insertion.
			k++

		case e.Op == edits.Insert && pm.from(e.T) >= 0:
			s := pm.from(e.T)
			it := Item[T]{OldSeqIndex: s, NewSeqIndex: e.T, OldValue: x[s], NewValue: y[e.T]}
			from, to := rp.move(s, e.T)
			r.Steps = append(r.Steps, Step[T]{
				Status:        Move,
				OldStartIndex: from,
				NewStartIndex: to,
				Items:         []Item[T]{it},
			})
			r.MovedItems = append(r.MovedItems, it)
			r.SameItems = append(r.SameItems, it)
			t++
			k++

		case e.Op == edits.Delete:
			end := k + 1
			for cfg.Batching && end < len(es) && es[end].Op == edits.Delete && !pm.isMoved(es[end].S) {
				end++
			}
			items := make([]Item[T], 0, end-k)
			for _, e := range es[k:end] {
				items = append(items, Item[T]{OldSeqIndex: e.S, NewSeqIndex: -1, OldValue: x[e.S]})
			}
			pos := t
			if rp != nil {
				pos = rp.remove(e.S, len(items))
			}
			r.Steps = append(r.Steps, Step[T]{
				Status:        Remove,
				OldStartIndex: pos,
				NewStartIndex: -1,
				Items:         items,
			})
			r.RemovedItems = append(r.RemovedItems, items...)
			k = end

		case e.Op == edits.Insert:
			end := k + 1
			for cfg.Batching && end < len(es) && es[end].Op == edits.Insert && pm.from(es[end].T) < 0 {
				end++
			}
			items := make([]Item[T], 0, end-k)
			for _, e := range es[k:end] {
				items = append(items, Item[T]{OldSeqIndex: -1, NewSeqIndex: e.T, NewValue: y[e.T]})
			}
			pos := e.T
			if rp != nil {
				pos = rp.insert(e.T, len(items))
			}
			r.Steps = append(r.Steps, Step[T]{
				Status:        Add,
				OldStartIndex: -1,
				NewStartIndex: pos,
				Items:         items,
			})
			r.AddedItems = append(r.AddedItems, items...)
			t += len(items)
			k = end

		default:
			panic("never reached")
		}
	}
	return r
}

// pairing records which insertions are paired with deletions to form moves.
type pairing struct {
	src   []int  // src[t] is the index in x that y[t] is moved from or -1
	moved []bool // moved[s] is set if x[s] is moved
	n     int    // number of pairs
}

func (pm pairing) from(t int) int {
	if pm.n == 0 {
		return -1
	}
	return pm.src[t]
}

func (pm pairing) isMoved(s int) bool {
	return pm.n > 0 && pm.moved[s]
}

// pairMoves pairs insertions with deletions of equal elements. Insertions are visited in order of
// their index in y, each is paired with the deletion with the smallest index in x that is equal and
// not paired yet.
func pairMoves[T any](x, y []T, es []edits.Edit, eq func(a, b T) bool) pairing {
	var dels []int
	for _, e := range es {
		if e.Op == edits.Delete {
			dels = append(dels, e.S)
		}
	}
	if len(dels) == 0 {
		return pairing{}
	}

	pm := pairing{
		src:   make([]int, len(y)),
		moved: make([]bool, len(x)),
	}
	for t := range pm.src {
		pm.src[t] = -1
	}
	for _, e := range es {
		if e.Op != edits.Insert || len(dels) == 0 {
			continue
		}
		for i, s := range dels {
			if eq(x[s], y[e.T]) {
				pm.src[e.T] = s
				pm.moved[s] = true
				pm.n++
				dels = slices.Delete(dels, i, i+1)
				break
			}
		}
	}
	return pm
}

// replay tracks the positions of elements while the steps are applied. Elements of x are identified
// by their index in x, inserted elements of y by len(x) plus their index in y.
//
// Processing the edit script in order, the sequence always consists of all elements of y that were
// already handled, in order, interspersed with moved elements that are not yet in their final
// position, followed by the remaining elements of x.
type replay struct {
	n    int
	seq  []int
	elem []int // elem[t] identifies the element in place for y[t]
}

func newReplay(n, m int) *replay {
	rp := &replay{
		n:    n,
		seq:  make([]int, n, n+m),
		elem: make([]int, m),
	}
	for s := range rp.seq {
		rp.seq[s] = s
	}
	return rp
}

func (rp *replay) keep(s, t int) {
	rp.elem[t] = s
}

// after returns the position right behind y[t-1].
func (rp *replay) after(t int) int {
	if t == 0 {
		return 0
	}
	return slices.Index(rp.seq, rp.elem[t-1]) + 1
}

// remove removes count elements starting with x[s] and returns the position of x[s].
func (rp *replay) remove(s, count int) int {
	pos := slices.Index(rp.seq, s)
	rp.seq = slices.Delete(rp.seq, pos, pos+count)
	return pos
}

// insert inserts y[t:t+count] and returns the insert position.
func (rp *replay) insert(t, count int) int {
	pos := rp.after(t)
	ids := make([]int, count)
	for i := range ids {
		ids[i] = rp.n + t + i
		rp.elem[t+i] = ids[i]
	}
	rp.seq = slices.Insert(rp.seq, pos, ids...)
	return pos
}

// move moves x[s] into the position of y[t] and returns the old and new position.
func (rp *replay) move(s, t int) (from, to int) {
	from = slices.Index(rp.seq, s)
	rp.seq = slices.Delete(rp.seq, from, from+1)
	to = rp.after(t)
	rp.seq = slices.Insert(rp.seq, to, s)
	rp.elem[t] = s
	return from, to
}

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

// Package observable provides a list that reports every change to its subscribers.
//
// A [Collection] can be brought into a new state with [Collection.Update]. The update computes the
// difference between the current and the new contents using [listdiff.ComputeFunc] and applies
// every step individually, subscribers receive one [Event] per step. Replaying the events on a
// copy of the previous contents results in the new contents.
package observable

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/eapache/queue"

	"znkr.io/listdiff"
)

// ErrIndexOutOfRange is returned if an index or range is not within the collection.
var ErrIndexOutOfRange = errors.New("index out of range")

// Event describes a single change of a collection.
//
//   - Add: NewItems were inserted at NewStartingIndex. OldStartingIndex is -1.
//   - Remove: OldItems were removed at OldStartingIndex. NewStartingIndex is -1. If the removed
//     items were not contiguous, OldStartingIndex is -1 as well.
//   - Move: The single item in OldItems and NewItems was moved from OldStartingIndex to
//     NewStartingIndex.
type Event[T any] struct {
	Action                             listdiff.Status
	OldStartingIndex, NewStartingIndex int
	OldItems, NewItems                 []T
}

// Collection is a list that notifies subscribers about changes. It is safe for concurrent use.
//
// Events are delivered in the order of the changes, after the change is complete and without
// holding any lock. Delivery is never nested: If a subscriber changes the collection, the
// resulting events are delivered after all subscribers received the current event.
type Collection[T any] struct {
	eq func(a, b T) bool

	mu          sync.Mutex
	items       []T
	subs        []*subscription[T]
	pending     *queue.Queue // of Event[T]
	dispatching bool
}

type subscription[T any] struct {
	fn func(Event[T])
}

// New creates a collection of comparable elements with the given initial contents.
func New[T comparable](items ...T) *Collection[T] {
	return NewFunc(func(a, b T) bool { return a == b }, items...)
}

// NewFunc creates a collection that uses eq to compare elements. It panics if eq is nil.
func NewFunc[T any](eq func(a, b T) bool, items ...T) *Collection[T] {
	if eq == nil {
		panic("observable: nil equality function")
	}
	return &Collection[T]{
		eq:      eq,
		items:   slices.Clone(items),
		pending: queue.New(),
	}
}

// Items returns a copy of the current contents.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Len returns the number of elements in the collection.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subscribe registers fn to receive all future events. Calling cancel stops the delivery of
// events that are not yet dispatched.
func (c *Collection[T]) Subscribe(fn func(Event[T])) (cancel func()) {
	s := &subscription[T]{fn: fn}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(o *subscription[T]) bool { return o == s })
	}
}

// AddRange appends items to the collection.
func (c *Collection[T]) AddRange(items ...T) {
	c.mu.Lock()
	c.insert(len(c.items), items)
	c.mu.Unlock()
	c.dispatch()
}

// InsertRange inserts items at index.
func (c *Collection[T]) InsertRange(index int, items ...T) error {
	c.mu.Lock()
	if index < 0 || index > len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: insert at %d into %d elements", ErrIndexOutOfRange, index, len(c.items))
	}
	c.insert(index, items)
	c.mu.Unlock()
	c.dispatch()
	return nil
}

// RemoveRange removes count elements starting at index.
func (c *Collection[T]) RemoveRange(index, count int) error {
	c.mu.Lock()
	if index < 0 || count < 0 || index+count > len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: remove [%d:%d] from %d elements", ErrIndexOutOfRange, index, index+count, len(c.items))
	}
	c.remove(index, count)
	c.mu.Unlock()
	c.dispatch()
	return nil
}

// RemoveItems removes the first occurrence of every element of items and returns the number of
// removed elements. Elements that are not found are ignored. All removals are reported as a single
// event with OldStartingIndex -1.
func (c *Collection[T]) RemoveItems(items ...T) int {
	c.mu.Lock()
	var removed []T
	for _, v := range items {
		i := slices.IndexFunc(c.items, func(e T) bool { return c.eq(e, v) })
		if i < 0 {
			continue
		}
		removed = append(removed, c.items[i])
		c.items = slices.Delete(c.items, i, i+1)
	}
	if len(removed) > 0 {
		c.pending.Add(Event[T]{
			Action:           listdiff.Remove,
			OldStartingIndex: -1,
			NewStartingIndex: -1,
			OldItems:         removed,
		})
	}
	c.mu.Unlock()
	c.dispatch()
	return len(removed)
}

// Move moves the element at oldIndex to newIndex. newIndex refers to the collection without the
// element.
func (c *Collection[T]) Move(oldIndex, newIndex int) error {
	c.mu.Lock()
	if oldIndex < 0 || oldIndex >= len(c.items) || newIndex < 0 || newIndex >= len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: move %d to %d in %d elements", ErrIndexOutOfRange, oldIndex, newIndex, len(c.items))
	}
	c.move(oldIndex, newIndex)
	c.mu.Unlock()
	c.dispatch()
	return nil
}

// Apply applies a single step as computed by [listdiff.Compute] to the collection.
func (c *Collection[T]) Apply(st listdiff.Step[T]) error {
	c.mu.Lock()
	if err := check(len(c.items), st); err != nil {
		c.mu.Unlock()
		return err
	}
	c.apply(st)
	c.mu.Unlock()
	c.dispatch()
	return nil
}

// Update changes the contents of the collection to items by applying the steps necessary to
// transform the current contents. The options are passed on to [listdiff.ComputeFunc].
//
// Either all steps are applied or, if an error occurs, the collection remains unchanged and no
// events are delivered.
func (c *Collection[T]) Update(items []T, opts ...listdiff.Option) (listdiff.Result[T], error) {
	c.mu.Lock()
	r, err := listdiff.ComputeFunc(c.items, items, c.eq, opts...)
	if err != nil {
		c.mu.Unlock()
		return listdiff.Result[T]{}, err
	}

	// Validate all steps on a working copy first, the collection is only changed if all steps
	// can be applied.
	work := &Collection[T]{items: slices.Clone(c.items), pending: queue.New()}
	for i, st := range r.Steps {
		if err := check(len(work.items), st); err != nil {
			c.mu.Unlock()
			return listdiff.Result[T]{}, fmt.Errorf("step %d: %w", i, err)
		}
		work.apply(st)
	}
	c.items = work.items
	for work.pending.Length() > 0 {
		c.pending.Add(work.pending.Remove())
	}
	c.mu.Unlock()
	c.dispatch()
	return r, nil
}

// check reports an error if st cannot be applied to a collection with n elements.
func check[T any](n int, st listdiff.Step[T]) error {
	switch st.Status {
	case listdiff.Add:
		if st.NewStartIndex < 0 || st.NewStartIndex > n {
			return fmt.Errorf("%w: add at %d to %d elements", ErrIndexOutOfRange, st.NewStartIndex, n)
		}
	case listdiff.Remove:
		if st.OldStartIndex < 0 || st.OldStartIndex+len(st.Items) > n {
			return fmt.Errorf("%w: remove [%d:%d] from %d elements", ErrIndexOutOfRange, st.OldStartIndex, st.OldStartIndex+len(st.Items), n)
		}
	case listdiff.Move:
		if len(st.Items) != 1 {
			return fmt.Errorf("move of %d items", len(st.Items))
		}
		if st.OldStartIndex < 0 || st.OldStartIndex >= n || st.NewStartIndex < 0 || st.NewStartIndex >= n {
			return fmt.Errorf("%w: move %d to %d in %d elements", ErrIndexOutOfRange, st.OldStartIndex, st.NewStartIndex, n)
		}
	default:
		return fmt.Errorf("unknown status %v", st.Status)
	}
	return nil
}

// The following methods require c.mu to be held and the arguments to be valid.

func (c *Collection[T]) apply(st listdiff.Step[T]) {
	switch st.Status {
	case listdiff.Add:
		vals := make([]T, len(st.Items))
		for i, it := range st.Items {
			vals[i] = it.NewValue
		}
		c.insert(st.NewStartIndex, vals)
	case listdiff.Remove:
		c.remove(st.OldStartIndex, len(st.Items))
	case listdiff.Move:
		c.move(st.OldStartIndex, st.NewStartIndex)
	}
}

func (c *Collection[T]) insert(index int, items []T) {
	if len(items) == 0 {
		return
	}
	c.items = slices.Insert(c.items, index, items...)
	c.pending.Add(Event[T]{
		Action:           listdiff.Add,
		OldStartingIndex: -1,
		NewStartingIndex: index,
		NewItems:         slices.Clone(items),
	})
}

func (c *Collection[T]) remove(index, count int) {
	if count == 0 {
		return
	}
	removed := slices.Clone(c.items[index : index+count])
	c.items = slices.Delete(c.items, index, index+count)
	c.pending.Add(Event[T]{
		Action:           listdiff.Remove,
		OldStartingIndex: index,
		NewStartingIndex: -1,
		OldItems:         removed,
	})
}

func (c *Collection[T]) move(oldIndex, newIndex int) {
	v := c.items[oldIndex]
	c.items = slices.Delete(c.items, oldIndex, oldIndex+1)
	c.items = slices.Insert(c.items, newIndex, v)
	c.pending.Add(Event[T]{
		Action:           listdiff.Move,
		OldStartingIndex: oldIndex,
		NewStartingIndex: newIndex,
		OldItems:         []T{v},
		NewItems:         []T{v},
	})
}

// dispatch delivers pending events unless another call is already delivering them.
func (c *Collection[T]) dispatch() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	done := false
	defer func() {
		if !done {
			// A subscriber panicked, the lock is not held.
			c.mu.Lock()
			c.dispatching = false
			c.mu.Unlock()
		}
	}()

	for c.pending.Length() > 0 {
		ev := c.pending.Remove().(Event[T])
		subs := slices.Clone(c.subs)
		c.mu.Unlock()
		for _, s := range subs {
			s.fn(ev)
		}
		c.mu.Lock()
	}
	c.dispatching = false
	done = true
	c.mu.Unlock()
}

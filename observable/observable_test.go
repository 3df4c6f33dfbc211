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

package observable

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"znkr.io/listdiff"
)

func chars(s string) []byte { return []byte(s) }

// record subscribes to c and returns a pointer to all received events.
func record[T any](c *Collection[T]) *[]Event[T] {
	var evs []Event[T]
	c.Subscribe(func(ev Event[T]) { evs = append(evs, ev) })
	return &evs
}

func TestAddRange(t *testing.T) {
	c := New[byte]()
	evs := record(c)

	c.AddRange(chars("abc")...)

	require.Len(t, *evs, 1)
	ev := (*evs)[0]
	assert.Equal(t, listdiff.Add, ev.Action)
	assert.Equal(t, 0, ev.NewStartingIndex)
	assert.Equal(t, -1, ev.OldStartingIndex)
	assert.Equal(t, chars("abc"), ev.NewItems)
	assert.Equal(t, chars("abc"), c.Items())
}

func TestInsertRange(t *testing.T) {
	c := New(chars("ad")...)
	evs := record(c)

	require.NoError(t, c.InsertRange(1, chars("bc")...))

	require.Len(t, *evs, 1)
	ev := (*evs)[0]
	assert.Equal(t, listdiff.Add, ev.Action)
	assert.Equal(t, 1, ev.NewStartingIndex)
	assert.Equal(t, chars("bc"), ev.NewItems)
	assert.Equal(t, chars("abcd"), c.Items())
}

func TestRemoveItems(t *testing.T) {
	c := New(chars("abcd")...)
	evs := record(c)

	assert.Equal(t, 2, c.RemoveItems(chars("bcx")...))

	require.Len(t, *evs, 1)
	ev := (*evs)[0]
	assert.Equal(t, listdiff.Remove, ev.Action)
	assert.Equal(t, -1, ev.OldStartingIndex)
	assert.Equal(t, chars("bc"), ev.OldItems)
	assert.Equal(t, chars("ad"), c.Items())

	assert.Equal(t, 0, c.RemoveItems(chars("x")...))
	assert.Len(t, *evs, 1, "no event without removal")
}

func TestRemoveRange(t *testing.T) {
	c := New(chars("abcd")...)
	evs := record(c)

	require.NoError(t, c.RemoveRange(1, 2))

	require.Len(t, *evs, 1)
	ev := (*evs)[0]
	assert.Equal(t, listdiff.Remove, ev.Action)
	assert.Equal(t, 1, ev.OldStartingIndex)
	assert.Equal(t, chars("bc"), ev.OldItems)
	assert.Equal(t, chars("ad"), c.Items())
}

func TestMove(t *testing.T) {
	c := New(chars("abcd")...)
	evs := record(c)

	require.NoError(t, c.Move(1, 2))

	require.Len(t, *evs, 1)
	ev := (*evs)[0]
	assert.Equal(t, listdiff.Move, ev.Action)
	assert.Equal(t, 1, ev.OldStartingIndex)
	assert.Equal(t, 2, ev.NewStartingIndex)
	assert.Equal(t, chars("b"), ev.OldItems)
	assert.Equal(t, chars("b"), ev.NewItems)
	assert.Equal(t, chars("acbd"), c.Items())
}

func TestIndexOutOfRange(t *testing.T) {
	c := New(chars("abc")...)
	evs := record(c)

	assert.ErrorIs(t, c.InsertRange(4, 'x'), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.InsertRange(-1, 'x'), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.RemoveRange(2, 2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.RemoveRange(0, -1), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Move(0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Move(3, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Apply(listdiff.Step[byte]{
		Status:        listdiff.Remove,
		OldStartIndex: 2,
		NewStartIndex: -1,
		Items:         make([]listdiff.Item[byte], 2),
	}), ErrIndexOutOfRange)

	assert.Empty(t, *evs)
	assert.Equal(t, chars("abc"), c.Items())
}

func TestApply(t *testing.T) {
	x, y := chars("abcde"), chars("cdeab")
	r, err := listdiff.Compute(x, y)
	require.NoError(t, err)

	c := New(x...)
	evs := record(c)
	for _, st := range r.Steps {
		require.NoError(t, c.Apply(st))
	}
	assert.Equal(t, y, c.Items())
	assert.Len(t, *evs, len(r.Steps))
}

func TestUpdate(t *testing.T) {
	var inputs [][2]string
	for i := range 100 {
		rng := rand.New(rand.NewChaCha8(sha256.Sum256(fmt.Append(nil, i))))
		gen := func() string {
			var sb strings.Builder
			for range rng.IntN(20) {
				sb.WriteByte(byte('a' + rng.IntN(6)))
			}
			return sb.String()
		}
		inputs = append(inputs, [2]string{gen(), gen()})
	}

	for _, opts := range [][]listdiff.Option{
		nil,
		{listdiff.AllowBatching(false)},
		{listdiff.DetectMoves(false)},
		{listdiff.LinearSpace()},
	} {
		for _, in := range inputs {
			x, y := chars(in[0]), chars(in[1])
			c := New(x...)

			// Replaying the events on a copy must result in the same contents.
			mirror := slices.Clone(x)
			c.Subscribe(func(ev Event[byte]) {
				switch ev.Action {
				case listdiff.Add:
					mirror = slices.Insert(mirror, ev.NewStartingIndex, ev.NewItems...)
				case listdiff.Remove:
					mirror = slices.Delete(mirror, ev.OldStartingIndex, ev.OldStartingIndex+len(ev.OldItems))
				case listdiff.Move:
					mirror = slices.Delete(mirror, ev.OldStartingIndex, ev.OldStartingIndex+1)
					mirror = slices.Insert(mirror, ev.NewStartingIndex, ev.NewItems...)
				}
			})

			r, err := c.Update(y, opts...)
			require.NoError(t, err)
			require.Equal(t, y, c.Items(), "Update(%q) from %q", y, x)
			require.Equal(t, y, mirror, "replay of Update(%q) from %q", y, x)
			require.Equal(t, len(x), len(r.RemovedItems)+len(r.SameItems))
			require.Equal(t, len(y), len(r.AddedItems)+len(r.SameItems))
		}
	}
}

func TestUpdateFunc(t *testing.T) {
	c := NewFunc(strings.EqualFold, "Hello", "World")
	evs := record(c)

	r, err := c.Update([]string{"hello", "world", "!"})
	require.NoError(t, err)

	assert.Len(t, r.Steps, 1)
	require.Len(t, *evs, 1)
	assert.Equal(t, Event[string]{
		Action:           listdiff.Add,
		OldStartingIndex: -1,
		NewStartingIndex: 2,
		NewItems:         []string{"!"},
	}, (*evs)[0])
	// Equal elements are not replaced.
	assert.Equal(t, []string{"Hello", "World", "!"}, c.Items())
}

func TestUpdateError(t *testing.T) {
	c := New(chars("abcdef")...)
	evs := record(c)

	_, err := c.Update(chars("fedcba"), listdiff.MaxTableSize(1))
	assert.ErrorIs(t, err, listdiff.ErrTooLarge)
	assert.Empty(t, *evs)
	assert.Equal(t, chars("abcdef"), c.Items())
}

func TestCancel(t *testing.T) {
	c := New[int]()
	var n int
	cancel := c.Subscribe(func(Event[int]) { n++ })

	c.AddRange(1)
	cancel()
	c.AddRange(2)

	assert.Equal(t, 1, n)
	assert.Equal(t, []int{1, 2}, c.Items())
}

func TestReentrantDelivery(t *testing.T) {
	c := New[int]()

	var got []string
	depth := 0
	c.Subscribe(func(ev Event[int]) {
		depth++
		defer func() { depth-- }()
		assert.Equal(t, 1, depth, "nested delivery")
		got = append(got, fmt.Sprintf("first %v %v", ev.Action, ev.NewItems))
		if ev.Action == listdiff.Add && ev.NewItems[0] == 1 {
			c.AddRange(2)
		}
	})
	c.Subscribe(func(ev Event[int]) {
		got = append(got, fmt.Sprintf("second %v %v", ev.Action, ev.NewItems))
	})

	c.AddRange(1)

	assert.Equal(t, []string{
		"first Add [1]",
		"second Add [1]",
		"first Add [2]",
		"second Add [2]",
	}, got)
	assert.Equal(t, []int{1, 2}, c.Items())
}

func TestSubscriberPanic(t *testing.T) {
	c := New[int]()
	cancel := c.Subscribe(func(Event[int]) { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { c.AddRange(1) })
	cancel()

	var evs []Event[int]
	c.Subscribe(func(ev Event[int]) { evs = append(evs, ev) })
	c.AddRange(2)
	require.Len(t, evs, 1)
	assert.Equal(t, []int{2}, evs[0].NewItems)
}

func TestConcurrent(t *testing.T) {
	c := New[int]()
	var (
		mu sync.Mutex
		n  int
	)
	c.Subscribe(func(ev Event[int]) {
		mu.Lock()
		n += len(ev.NewItems)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.AddRange(i*100 + j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, c.Len())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 800, n)
}

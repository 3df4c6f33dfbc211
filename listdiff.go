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
	"fmt"

	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/edits"
	"znkr.io/listdiff/internal/lcs"
	"znkr.io/listdiff/internal/linear"
)

// Status describes the kind of a step.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Status
type Status int

const (
	Add    Status = iota // Elements are inserted
	Remove               // Elements are removed
	Move                 // An element is relocated
)

// Item describes a single element and its position in the old sequence x and the new sequence y.
//
//   - For an added element, OldSeqIndex is -1 and OldValue is unset (zero value).
//   - For a removed element, NewSeqIndex is -1 and NewValue is unset (zero value).
//   - For moved and unchanged elements, both indices and values are set.
//
// Indices always refer to the positions in x and y, not to positions during the application of
// steps.
type Item[T any] struct {
	OldSeqIndex, NewSeqIndex int
	OldValue, NewValue       T
}

// Step describes a change of the sequence.
//
// Steps are applied in order and the start indices refer to the sequence after all previous steps
// have been applied:
//
//   - Add: Insert the NewValue of all items at NewStartIndex. OldStartIndex is -1.
//   - Remove: Remove len(Items) elements at OldStartIndex. NewStartIndex is -1.
//   - Move: Remove the element at OldStartIndex and insert it at NewStartIndex (an index into the
//     sequence without the element). A move always has exactly one item.
type Step[T any] struct {
	Status                       Status
	OldStartIndex, NewStartIndex int
	Items                        []Item[T]
}

// Result is the result of a comparison.
//
// Every element of x is either in RemovedItems, NotMovedItems, or MovedItems and every element of y
// is either in AddedItems, NotMovedItems, or MovedItems.
type Result[T any] struct {
	Steps []Step[T] // Steps to transform x into y, in application order

	AddedItems    []Item[T] // Items of all Add steps
	RemovedItems  []Item[T] // Items of all Remove steps
	MovedItems    []Item[T] // Items of all Move steps
	NotMovedItems []Item[T] // Elements that are unchanged and keep their relative order
	SameItems     []Item[T] // Union of MovedItems and NotMovedItems, ordered by NewSeqIndex
}

// Compute compares the contents of x (the old sequence) and y (the new sequence) and returns the
// steps necessary to convert from one to the other.
//
// If x and y are identical, the result has no steps and all elements are in NotMovedItems.
//
// The following options are supported: [AllowBatching], [DetectMoves], [LinearSpace],
// [MaxTableSize]
func Compute[T comparable](x, y []T, opts ...Option) (Result[T], error) {
	return compute(x, y, func(a, b T) bool { return a == b }, opts)
}

// ComputeFunc compares the contents of x (the old sequence) and y (the new sequence) using the
// provided equality comparison and returns the steps necessary to convert from one to the other.
//
// The first argument of eq is always an element of x, the second one an element of y. If eq
// panics, the panic is propagated to the caller.
//
// The following options are supported: [AllowBatching], [DetectMoves], [LinearSpace],
// [MaxTableSize]
func ComputeFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) (Result[T], error) {
	if eq == nil {
		return Result[T]{}, fmt.Errorf("%w: nil equality function", ErrInvalidArgument)
	}
	return compute(x, y, eq, opts)
}

// ComputeComparer is like [ComputeFunc] but uses a [Comparer].
func ComputeComparer[T any](x, y []T, c Comparer[T], opts ...Option) (Result[T], error) {
	if c == nil {
		return Result[T]{}, fmt.Errorf("%w: nil comparer", ErrInvalidArgument)
	}
	return compute(x, y, c.Equal, opts)
}

func compute[T any](x, y []T, eq func(a, b T) bool, opts []Option) (Result[T], error) {
	cfg, err := config.FromOptions(opts)
	if err != nil {
		return Result[T]{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var es []edits.Edit
	if cfg.LinearSpace {
		es = linear.Diff(x, y, eq)
	} else {
		es, err = lcs.Diff(x, y, eq, cfg.MaxTableSize)
		if err != nil {
			return Result[T]{}, err
		}
	}
	return assemble(x, y, es, eq, cfg), nil
}

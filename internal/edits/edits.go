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

// Package edits contains the primitive edit representation that's produced by the alignment
// algorithms and is then translated to the user facing step API.
package edits

import (
	"fmt"
	"strings"
)

// Op is the kind of a primitive edit.
type Op uint8

const (
	Keep   Op = iota // x[S] and y[T] are equal and stay in place
	Delete           // x[S] is removed
	Insert           // y[T] is inserted
)

func (op Op) String() string {
	switch op {
	case Keep:
		return "keep"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprint(uint8(op))
	}
}

// Edit is a single primitive edit. S is an index into x and T is an index into y, the index that
// doesn't apply to the operation (T for Delete, S for Insert) is -1.
type Edit struct {
	Op   Op
	S, T int
}

// Keeps returns n Keep edits starting at s and t.
func Keeps(es []Edit, s, t, n int) []Edit {
	for i := range n {
		es = append(es, Edit{Keep, s + i, t + i})
	}
	return es
}

// Cost, Validate, and Render are used by the tests of the aligners in lcs and linear.

// Cost returns the number of non-Keep edits.
func Cost(es []Edit) int {
	n := 0
	for _, e := range es {
		if e.Op != Keep {
			n++
		}
	}
	return n
}

// Validate checks that es is a well formed forward edit script for inputs of length n and m: every
// index in x and y is visited exactly once, in increasing order.
func Validate(es []Edit, n, m int) error {
	s, t := 0, 0
	for i, e := range es {
		switch e.Op {
		case Keep:
			if e.S != s || e.T != t {
				return fmt.Errorf("edit %d: %v at (%d, %d), want (%d, %d)", i, e.Op, e.S, e.T, s, t)
			}
			s++
			t++
		case Delete:
			if e.S != s || e.T != -1 {
				return fmt.Errorf("edit %d: %v at (%d, %d), want (%d, -1)", i, e.Op, e.S, e.T, s)
			}
			s++
		case Insert:
			if e.S != -1 || e.T != t {
				return fmt.Errorf("edit %d: %v at (%d, %d), want (-1, %d)", i, e.Op, e.S, e.T, t)
			}
			t++
		default:
			return fmt.Errorf("edit %d: unknown op %v", i, e.Op)
		}
	}
	if s != n || t != m {
		return fmt.Errorf("edit script ends at (%d, %d), want (%d, %d)", s, t, n, m)
	}
	return nil
}

// Render renders es as a string of M (keep), D (delete) and I (insert) characters.
func Render(es []Edit) string {
	var sb strings.Builder
	for _, e := range es {
		switch e.Op {
		case Keep:
			sb.WriteRune('M')
		case Delete:
			sb.WriteRune('D')
		case Insert:
			sb.WriteRune('I')
		}
	}
	return sb.String()
}

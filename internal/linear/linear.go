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

// Package linear computes edit scripts in linear space.
//
// It delegates to Myers' algorithm as implemented by znkr.io/diff and translates the result into
// primitive edits. Memory use is O(N+M) instead of the O(NM) of the LCS table. For very large inputs
// with many differences, the underlying implementation applies heuristics, so the edit script is
// not guaranteed to be minimal. It's always a valid script.
package linear

import (
	"fmt"

	"znkr.io/diff"
	"znkr.io/listdiff/internal/edits"
)

// Diff compares x and y using eq and returns a forward edit script.
func Diff[T any](x, y []T, eq func(a, b T) bool) []edits.Edit {
	in := diff.EditsFunc(x, y, eq)
	es := make([]edits.Edit, 0, len(in))
	s, t := 0, 0
	for _, e := range in {
		switch e.Op {
		case diff.Match:
			es = append(es, edits.Edit{Op: edits.Keep, S: s, T: t})
			s++
			t++
		case diff.Delete:
			es = append(es, edits.Edit{Op: edits.Delete, S: s, T: -1})
			s++
		case diff.Insert:
			es = append(es, edits.Edit{Op: edits.Insert, S: -1, T: t})
			t++
		default:
			panic(fmt.Sprintf("unknown op: %v", e.Op))
		}
	}
	return es
}

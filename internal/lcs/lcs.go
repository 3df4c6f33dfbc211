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

// Package lcs computes edit scripts from the dynamic programming table of the longest common
// subsequence (LCS) of two inputs.
//
// The table L has (N+1)×(M+1) entries where L[i][j] is the length of the LCS of x[:i] and y[:j]:
//
//	L[i][j] = 0                          if i = 0 or j = 0
//	L[i][j] = L[i-1][j-1] + 1            if x[i-1] == y[j-1]
//	L[i][j] = max(L[i-1][j], L[i][j-1])  otherwise
//
// The edit script is found by walking the table backwards from (N, M) to (0, 0). At every vertex,
// a match is always taken. Otherwise the walk deletes if that doesn't shorten the LCS compared to
// inserting, i.e. deletions win ties. The result is always minimal (N+M-2·L[N][M] deletions and
// insertions) and deterministic for identical inputs.
//
// Time and space complexity are O(NM), which is why the table size can be bounded.
package lcs

import (
	"errors"
	"fmt"
	"slices"

	"znkr.io/listdiff/internal/edits"
)

// ErrTooLarge is returned if the table exceeds the configured size limit.
var ErrTooLarge = errors.New("alignment table too large")

// Diff compares x and y using eq and returns a forward edit script. If limit > 0 and the table
// would have more than limit cells, Diff fails with ErrTooLarge without allocating the table.
func Diff[T any](x, y []T, eq func(a, b T) bool, limit int) ([]edits.Edit, error) {
	n, m := len(x), len(y)

	// Strip common suffix. The backward walk starts in the bottom right corner and always takes
	// matches first, so these end up as keeps either way.
	for n > 0 && m > 0 && eq(x[n-1], y[m-1]) {
		n--
		m--
	}
	suffix := len(x) - n

	if limit > 0 && n+1 > limit/(m+1) {
		return nil, fmt.Errorf("%w: %d×%d cells exceed limit of %d", ErrTooLarge, n+1, m+1, limit)
	}

	tab := build(x[:n], y[:m], eq)
	es := make([]edits.Edit, 0, n+m-int(tab.at(n, m))+suffix)
	es = backtrack(es, tab, x[:n], y[:m], eq)
	slices.Reverse(es)
	return edits.Keeps(es, n, m, suffix), nil
}

// table is the LCS table stored as a single row-major slice.
type table struct {
	l    []int32
	cols int
}

func (tab table) at(i, j int) int32 { return tab.l[i*tab.cols+j] }

func build[T any](x, y []T, eq func(a, b T) bool) table {
	n, m := len(x), len(y)
	tab := table{
		l:    make([]int32, (n+1)*(m+1)),
		cols: m + 1,
	}
	for i := 1; i <= n; i++ {
		prev := tab.l[(i-1)*tab.cols : i*tab.cols]
		cur := tab.l[i*tab.cols : (i+1)*tab.cols]
		for j := 1; j <= m; j++ {
			if eq(x[i-1], y[j-1]) {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
	}
	return tab
}

// backtrack walks from (len(x), len(y)) to (0, 0) and appends the edits in reverse order.
func backtrack[T any](es []edits.Edit, tab table, x, y []T, eq func(a, b T) bool) []edits.Edit {
	for i, j := len(x), len(y); i > 0 || j > 0; {
		switch {
		case i > 0 && j > 0 && eq(x[i-1], y[j-1]):
			es = append(es, edits.Edit{Op: edits.Keep, S: i - 1, T: j - 1})
			i--
			j--
		case j == 0 || i > 0 && tab.at(i-1, j) >= tab.at(i, j-1):
			es = append(es, edits.Edit{Op: edits.Delete, S: i - 1, T: -1})
			i--
		default:
			es = append(es, edits.Edit{Op: edits.Insert, S: -1, T: j - 1})
			j--
		}
	}
	return es
}

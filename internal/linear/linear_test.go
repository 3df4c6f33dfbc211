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

package linear

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/listdiff/internal/edits"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		x, y []string
		want string
	}{
		{
			name: "identical",
			x:    []string{"foo", "bar", "baz"},
			y:    []string{"foo", "bar", "baz"},
			want: "MMM",
		},
		{
			name: "empty",
			want: "",
		},
		{
			name: "x-empty",
			y:    []string{"foo", "bar", "baz"},
			want: "III",
		},
		{
			name: "y-empty",
			x:    []string{"foo", "bar", "baz"},
			want: "DDD",
		},
		{
			name: "appended",
			x:    strings.Split("abc", ""),
			y:    strings.Split("abcd", ""),
			want: "MMMI",
		},
		{
			name: "prepended",
			x:    strings.Split("bcd", ""),
			y:    strings.Split("abcd", ""),
			want: "IMMM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := Diff(tt.x, tt.y, func(a, b string) bool { return a == b })
			if err := edits.Validate(es, len(tt.x), len(tt.y)); err != nil {
				t.Fatalf("Diff(...) returned invalid edit script: %v", err)
			}
			if diff := cmp.Diff(tt.want, edits.Render(es)); diff != "" {
				t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffRandom(t *testing.T) {
	eq := func(a, b int32) bool { return a == b }
	for i := range 20 {
		seed := sha256.Sum256(fmt.Append(nil, i))
		t.Run(fmt.Sprintf("seed=%x", seed[:4]), func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewChaCha8(seed))
			x := make([]int32, rng.IntN(2000))
			for s := range x {
				x[s] = int32(rng.IntN(10))
			}
			y := make([]int32, rng.IntN(2000))
			for t := range y {
				y[t] = int32(rng.IntN(10))
			}

			es := Diff(x, y, eq)
			if err := edits.Validate(es, len(x), len(y)); err != nil {
				t.Fatalf("Diff(...) returned invalid edit script: %v", err)
			}
			for _, e := range es {
				if e.Op == edits.Keep && x[e.S] != y[e.T] {
					t.Fatalf("Diff(...) keeps non-matching elements %d, %d", e.S, e.T)
				}
			}
		})
	}
}

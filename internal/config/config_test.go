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

package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/config"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "no-batching",
			opts: []config.Option{
				listdiff.AllowBatching(false),
			},
			want: config.Config{
				Batching:     false,
				Moves:        config.Default.Moves,
				LinearSpace:  config.Default.LinearSpace,
				MaxTableSize: config.Default.MaxTableSize,
			},
		},
		{
			name: "no-moves",
			opts: []config.Option{
				listdiff.DetectMoves(false),
			},
			want: config.Config{
				Batching:     config.Default.Batching,
				Moves:        false,
				LinearSpace:  config.Default.LinearSpace,
				MaxTableSize: config.Default.MaxTableSize,
			},
		},
		{
			name: "override",
			opts: []config.Option{
				listdiff.DetectMoves(false),
				listdiff.MaxTableSize(10),
				listdiff.DetectMoves(true),
				listdiff.MaxTableSize(20),
			},
			want: config.Config{
				Batching:     config.Default.Batching,
				Moves:        true,
				LinearSpace:  config.Default.LinearSpace,
				MaxTableSize: 20,
			},
		},
		{
			name: "nil-option",
			opts: []config.Option{nil, listdiff.LinearSpace()},
			want: config.Config{
				Batching:     config.Default.Batching,
				Moves:        config.Default.Moves,
				LinearSpace:  true,
				MaxTableSize: config.Default.MaxTableSize,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				listdiff.AllowBatching(false),
				listdiff.DetectMoves(false),
				listdiff.LinearSpace(),
				listdiff.MaxTableSize(1 << 20),
			},
			want: config.Config{
				Batching:     false,
				Moves:        false,
				LinearSpace:  true,
				MaxTableSize: 1 << 20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.FromOptions(tt.opts)
			if err != nil {
				t.Fatalf("FromOptions(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestFromOptionsInvalid(t *testing.T) {
	if _, err := config.FromOptions([]config.Option{listdiff.MaxTableSize(-1)}); err == nil {
		t.Errorf("FromOptions(MaxTableSize(-1)) succeeded, want error")
	}
}

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

import "znkr.io/listdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// AllowBatching controls whether consecutive additions or removals are merged into a single step
// carrying multiple items. The default is true.
//
// Without batching, every added or removed element is a separate step.
func AllowBatching(enabled bool) Option {
	return func(cfg *config.Config) {
		cfg.Batching = enabled
	}
}

// DetectMoves controls whether the removal and the addition of equal elements are reported as a
// [Move] step. The default is true.
//
// Moves are detected per element. When multiple removed elements are equal to an added element,
// the added elements are matched in order of their position in y, each with the first remaining
// removed element in x.
func DetectMoves(enabled bool) Option {
	return func(cfg *config.Config) {
		cfg.Moves = enabled
	}
}

// LinearSpace uses Myers' algorithm in linear space instead of the longest common subsequence
// table to align x and y.
//
// This reduces the memory use from O(NM) to O(N+M). The steps are equally valid, but for ties a
// different alignment may be chosen and for very large inputs with many differences, the result
// may contain more steps than necessary. [MaxTableSize] has no effect with this option.
func LinearSpace() Option {
	return func(cfg *config.Config) {
		cfg.LinearSpace = true
	}
}

// MaxTableSize limits the number of cells of the longest common subsequence table. Comparisons
// that would need a larger table fail with [ErrTooLarge]. Common suffixes don't count towards the
// limit. The default is 0, which means no limit.
func MaxTableSize(cells int) Option {
	return func(cfg *config.Config) {
		cfg.MaxTableSize = cells
	}
}

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

// Package listdiff computes the steps that transform one slice into another: additions, removals
// and moves. The steps are designed to be replayed against a live collection one by one, e.g. to
// update a bound list in place instead of replacing it.
//
// The main functions are [Compute], which compares elements with ==, and [ComputeFunc] and
// [ComputeComparer], which use a custom equality. All of them return a [Result] with the ordered
// steps and the classification of every compared element.
//
// By default, adjacent additions and removals are batched into ranged steps and a removal and an
// addition of equal elements are reported as a single move. Use [AllowBatching] and [DetectMoves]
// to change that.
//
// Performance: The alignment uses the longest common subsequence table with O(NM) time and space
// where N = len(x) and M = len(y). Use [MaxTableSize] to bound the memory or [LinearSpace] to
// switch to an O(N+M) space algorithm for very large inputs. Move detection is O(D²) and computing
// the step positions with moves is O((N+M)·D) where D is the number of edits.
//
// See [znkr.io/listdiff/observable] for a collection that applies steps and notifies observers.
package listdiff

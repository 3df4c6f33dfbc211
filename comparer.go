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

// Comparer reports if an element a of the old sequence is equal to an element b of the new
// sequence.
type Comparer[T any] interface {
	Equal(a, b T) bool
}

// EqualFunc adapts an ordinary function to a [Comparer].
type EqualFunc[T any] func(a, b T) bool

// Equal calls f(a, b).
func (f EqualFunc[T]) Equal(a, b T) bool { return f(a, b) }

// ValueEqual returns a [Comparer] that compares with ==.
func ValueEqual[T comparable]() Comparer[T] {
	return EqualFunc[T](func(a, b T) bool { return a == b })
}

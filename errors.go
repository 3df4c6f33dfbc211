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
	"errors"

	"znkr.io/listdiff/internal/lcs"
)

var (
	// ErrInvalidArgument is returned for a missing comparer or invalid options.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTooLarge is returned if the alignment table exceeds [MaxTableSize].
	ErrTooLarge = lcs.ErrTooLarge
)

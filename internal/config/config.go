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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// listdiff.Option.
package config

import "fmt"

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// If set, consecutive insertions and deletions are merged into ranged steps.
	Batching bool

	// If set, a removal and an addition of equal elements are reported as a single move.
	Moves bool

	// If set, the alignment is computed with a linear space algorithm instead of the LCS table.
	LinearSpace bool

	// Upper bound for the number of cells in the LCS table, 0 means unbounded.
	MaxTableSize int
}

// Default is the default configuration.
var Default = Config{
	Batching:     true,
	Moves:        true,
	LinearSpace:  false,
	MaxTableSize: 0,
}

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config)

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option) (Config, error) {
	cfg := Default
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.MaxTableSize < 0 {
		return Config{}, fmt.Errorf("max table size must be >= 0, got %d", cfg.MaxTableSize)
	}
	return cfg, nil
}

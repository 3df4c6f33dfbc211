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

// listdiff compares two files element by element and prints the steps that transform one into the
// other. Elements are lines or, with --chars, characters.
//
// Usage:
//
//	listdiff diff [flags] OLD NEW
//	listdiff watch [flags] FILE
//
// The watch command keeps the contents of FILE in an observable collection and logs every change
// notification whenever the file is written.
package main

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"znkr.io/listdiff"
)

// flags holds the options shared by all commands.
type flags struct {
	verbose      bool
	chars        bool
	noBatching   bool
	noMoves      bool
	linear       bool
	maxTableSize int
}

func (f *flags) options() []listdiff.Option {
	opts := []listdiff.Option{
		listdiff.AllowBatching(!f.noBatching),
		listdiff.DetectMoves(!f.noMoves),
		listdiff.MaxTableSize(f.maxTableSize),
	}
	if f.linear {
		opts = append(opts, listdiff.LinearSpace())
	}
	return opts
}

// split splits data into elements.
//
// Lines are separated by "\n", a trailing newline doesn't start another line. A file that only
// contains "\n" therefore has a single empty line, an empty file has none.
//
// Characters are UTF-8 encoded runes. Bytes that are not valid UTF-8 are separate elements with the
// original byte, they are not replaced with U+FFFD.
func (f *flags) split(data []byte) []string {
	s := string(data)
	if f.chars {
		var out []string
		for len(s) > 0 {
			_, size := utf8.DecodeRuneInString(s)
			out = append(out, s[:size])
			s = s[size:]
		}
		return out
	}
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:          "listdiff [command]",
		Short:        "Compare files element by element",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if f.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&f.chars, "chars", false, "compare characters (UTF-8 encoded runes) instead of lines")
	pf.BoolVar(&f.noBatching, "no-batching", false, "report every added or removed element as a separate step")
	pf.BoolVar(&f.noMoves, "no-moves", false, "disable move detection")
	pf.BoolVar(&f.linear, "linear", false, "use the linear space algorithm")
	pf.IntVar(&f.maxTableSize, "max-table-size", 0, "maximum number of cells of the alignment table (0 means unlimited)")

	rootCmd.AddCommand(diffCmd(&f))
	rootCmd.AddCommand(watchCmd(&f))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

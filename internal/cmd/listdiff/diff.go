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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"znkr.io/listdiff"
)

func diffCmd(f *flags) *cobra.Command {
	var (
		format string
		width  int
	)
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the steps to transform OLD into NEW",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading old file: %v", err)
			}
			y, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading new file: %v", err)
			}

			start := time.Now()
			r, err := listdiff.Compute(f.split(x), f.split(y), f.options()...)
			if err != nil {
				return err
			}
			slog.Debug("computed diff", "steps", len(r.Steps), "duration", time.Since(start))

			switch format {
			case "text":
				return writeText(cmd.OutOrStdout(), r.Steps, width)
			case "yaml":
				return writeYAML(cmd.OutOrStdout(), r)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	cmd.Flags().IntVar(&width, "width", 60, "maximum display width of a value in text output (0 means unlimited)")
	return cmd
}

// writeText writes one line per step: status, start indices and the quoted values, each truncated
// to width.
func writeText(w io.Writer, steps []listdiff.Step[string], width int) error {
	for _, st := range steps {
		vals := values(st)
		for i, v := range vals {
			if width > 0 {
				v = runewidth.Truncate(v, width, "…")
			}
			vals[i] = fmt.Sprintf("%q", v)
		}
		_, err := fmt.Fprintf(w, "%-6s %3d %3d %s\n", st.Status, st.OldStartIndex, st.NewStartIndex, strings.Join(vals, " "))
		if err != nil {
			return err
		}
	}
	return nil
}

type report struct {
	Steps     []reportStep `yaml:"steps"`
	Added     int          `yaml:"added"`
	Removed   int          `yaml:"removed"`
	Moved     int          `yaml:"moved"`
	Unchanged int          `yaml:"unchanged"`
}

type reportStep struct {
	Status   string   `yaml:"status"`
	OldIndex int      `yaml:"old_index"`
	NewIndex int      `yaml:"new_index"`
	Values   []string `yaml:"values"`
}

func newReport(r listdiff.Result[string]) report {
	rep := report{
		Added:     len(r.AddedItems),
		Removed:   len(r.RemovedItems),
		Moved:     len(r.MovedItems),
		Unchanged: len(r.NotMovedItems),
	}
	for _, st := range r.Steps {
		rep.Steps = append(rep.Steps, reportStep{
			Status:   st.Status.String(),
			OldIndex: st.OldStartIndex,
			NewIndex: st.NewStartIndex,
			Values:   values(st),
		})
	}
	return rep
}

func writeYAML(w io.Writer, r listdiff.Result[string]) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newReport(r)); err != nil {
		return fmt.Errorf("encoding report: %v", err)
	}
	return enc.Close()
}

// values returns the values a step inserts or, for removals, removes.
func values(st listdiff.Step[string]) []string {
	out := make([]string, 0, len(st.Items))
	for _, it := range st.Items {
		if st.Status == listdiff.Remove {
			out = append(out, it.OldValue)
		} else {
			out = append(out, it.NewValue)
		}
	}
	return out
}

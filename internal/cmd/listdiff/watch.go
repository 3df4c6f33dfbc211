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
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"znkr.io/listdiff"
	"znkr.io/listdiff/observable"
)

func watchCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Log every change of FILE as a sequence of collection changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newFileWatch(f, args[0])
			if err != nil {
				return err
			}
			w.c.Subscribe(logEvent)

			// Watch the directory, files that are replaced instead of written are otherwise lost.
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("starting watcher: %v", err)
			}
			defer watcher.Close()
			if err := watcher.Add(filepath.Dir(w.file)); err != nil {
				return fmt.Errorf("starting watch: %v", err)
			}
			slog.Info("watching", "file", w.file, "elements", w.c.Len())

			// Setup signals to react to Ctrl-C.
			sigint := make(chan os.Signal, 1)
			signal.Notify(sigint, os.Interrupt)
			defer signal.Stop(sigint)

			if err := w.loop(watcher.Events, watcher.Errors, sigint); err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), "\r") // remove Ctrl-C output characters
			return nil
		},
	}
}

// fileWatch keeps the contents of a file in a collection.
type fileWatch struct {
	f    *flags
	file string
	c    *observable.Collection[string]
}

func newFileWatch(f *flags, file string) (*fileWatch, error) {
	file = filepath.Clean(file)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %v", err)
	}
	return &fileWatch{
		f:    f,
		file: file,
		c:    observable.New(f.split(data)...),
	}, nil
}

// loop handles file system events until stop receives a signal or the watcher shuts down.
func (w *fileWatch) loop(events <-chan fsnotify.Event, errs <-chan error, stop <-chan os.Signal) error {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				slog.Info("watcher closed, shutting down")
				return nil
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				slog.Debug("ignoring event", "op", event.Op.String())
				continue
			}
			if err := w.reload(); err != nil {
				slog.Error("failed to update", "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				slog.Info("watcher closed, shutting down")
				return nil
			}
			return fmt.Errorf("watching: %v", err)
		case <-stop:
			slog.Info("received Ctrl-C, shutting down")
			return nil
		}
	}
}

// reload reads the file and updates the collection.
func (w *fileWatch) reload() error {
	data, err := os.ReadFile(w.file)
	if err != nil {
		return fmt.Errorf("reading file: %v", err)
	}
	r, err := w.c.Update(w.f.split(data), w.f.options()...)
	if err != nil {
		return err
	}
	slog.Debug("updated", "steps", len(r.Steps), "elements", w.c.Len())
	return nil
}

func logEvent(ev observable.Event[string]) {
	items := ev.NewItems
	if ev.Action == listdiff.Remove {
		items = ev.OldItems
	}
	slog.Info("changed",
		"action", ev.Action.String(),
		"old_index", ev.OldStartingIndex,
		"new_index", ev.NewStartingIndex,
		"items", items,
	)
}

package storage

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies an external change to the primary state file.
type EventKind int

// External change kinds.
const (
	// EventModified means the primary file was written or created.
	EventModified EventKind = iota

	// EventRemoved means the primary file was deleted or renamed away.
	EventRemoved
)

// Event reports an external change to the primary state file.
type Event struct {
	Kind EventKind
	Path string
	Time time.Time
}

// debounceWindow coalesces rapid successive write events, such as a temp
// write followed by a rename, into a single event.
const debounceWindow = 100 * time.Millisecond

// Watch emits an event whenever another process modifies or removes the
// primary state file. The watcher runs until the context is cancelled;
// the returned channel is closed when watching stops.
//
// The base directory is watched rather than the file itself so atomic
// rename-over saves are observed as modifications.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, pathErr("watch", s.policy.BaseDirectory, err)
	}
	if err := fw.Add(s.policy.BaseDirectory); err != nil {
		fw.Close()
		return nil, pathErr("watch", s.policy.BaseDirectory, err)
	}

	events := make(chan Event, 16)
	primary := s.PrimaryPath()

	go func() {
		defer close(events)
		defer fw.Close()

		var lastModified time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != primary {
					continue
				}

				now := time.Now()
				switch {
				case ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create):
					if now.Sub(lastModified) < debounceWindow {
						continue
					}
					lastModified = now
					select {
					case events <- Event{Kind: EventModified, Path: primary, Time: now}:
					case <-ctx.Done():
						return
					}
				case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
					select {
					case events <- Event{Kind: EventRemoved, Path: primary, Time: now}:
					case <-ctx.Done():
						return
					}
				}

			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
				// Watch errors are transient; keep watching.
			}
		}
	}()

	return events, nil
}

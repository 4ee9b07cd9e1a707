package storage

import (
	"sync"
	"time"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

// AutoSaveConfig controls the background save loop.
type AutoSaveConfig struct {
	// Enabled turns automatic saving on.
	Enabled bool

	// DebounceDelay is how long after the last change notification a
	// save is deferred, coalescing bursts of changes.
	DebounceDelay time.Duration

	// PeriodicInterval saves on a fixed cadence regardless of change
	// notifications. Zero disables the periodic save.
	PeriodicInterval time.Duration

	// SaveOnExit performs a final save when the saver is closed.
	SaveOnExit bool
}

// DefaultAutoSaveConfig returns the auto-save defaults.
func DefaultAutoSaveConfig() AutoSaveConfig {
	return AutoSaveConfig{
		Enabled:          true,
		DebounceDelay:    2 * time.Second,
		PeriodicInterval: 30 * time.Second,
		SaveOnExit:       true,
	}
}

// StateSource returns the current tree to persist. The callback owns
// synchronization of the tree it snapshots.
type StateSource func() *state.State

// AutoSaver persists the tree in the background: debounced after change
// notifications and optionally on a periodic cadence. Errors from
// background saves are delivered to an optional error handler since there
// is no caller to return them to.
type AutoSaver struct {
	store  *Store
	config AutoSaveConfig
	source StateSource
	onErr  func(error)

	notify chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	tracker *state.ChangeTracker
}

// NewAutoSaver starts a background saver for the given store. The source
// callback supplies the tree to persist; handler receives background save
// errors and may be nil.
func NewAutoSaver(store *Store, config AutoSaveConfig, source StateSource, handler func(error)) *AutoSaver {
	a := &AutoSaver{
		store:   store,
		config:  config,
		source:  source,
		onErr:   handler,
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		tracker: &state.ChangeTracker{},
	}
	if config.Enabled {
		a.wg.Add(1)
		go a.loop()
	}
	return a
}

// NotifyChanged schedules a debounced save.
func (a *AutoSaver) NotifyChanged() {
	a.tracker.MarkChanged()
	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Flush saves immediately if there are unsaved changes.
func (a *AutoSaver) Flush() error {
	if !a.tracker.HasChanged() {
		return nil
	}
	return a.save()
}

// Close stops the background loop, performing a final save when
// configured. Close is idempotent.
func (a *AutoSaver) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.done)
	a.mu.Unlock()

	a.wg.Wait()

	if a.config.SaveOnExit && a.tracker.HasChanged() {
		return a.save()
	}
	return nil
}

func (a *AutoSaver) loop() {
	defer a.wg.Done()

	var periodic <-chan time.Time
	if a.config.PeriodicInterval > 0 {
		ticker := time.NewTicker(a.config.PeriodicInterval)
		defer ticker.Stop()
		periodic = ticker.C
	}

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-a.done:
			return

		case <-a.notify:
			if debounce == nil {
				debounce = time.NewTimer(a.config.DebounceDelay)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(a.config.DebounceDelay)
			}

		case <-fire:
			debounce = nil
			fire = nil
			a.saveBackground()

		case <-periodic:
			if a.tracker.HasChanged() {
				a.saveBackground()
			}
		}
	}
}

func (a *AutoSaver) saveBackground() {
	if err := a.save(); err != nil && a.onErr != nil {
		a.onErr(err)
	}
}

func (a *AutoSaver) save() error {
	st := a.source()
	if st == nil {
		return nil
	}
	if err := a.store.Save(st); err != nil {
		return err
	}
	a.tracker.Reset()
	return nil
}

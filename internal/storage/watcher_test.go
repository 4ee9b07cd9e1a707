package storage

import (
	"context"
	"testing"
	"time"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

func TestWatch_ReportsExternalSave(t *testing.T) {
	store := newTestStore(t, 3)
	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Another handle to the same directory stands in for an external
	// process rewriting the state file.
	other, err := New(store.policy, WithClock(fakeClock()))
	if err != nil {
		t.Fatal(err)
	}
	if err := other.Save(state.New()); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Kind != EventModified {
			t.Errorf("event kind = %v, want modified", ev.Kind)
		}
		if ev.Path != store.PrimaryPath() {
			t.Errorf("event path = %q, want primary path", ev.Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event for external save")
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	store := newTestStore(t, 3)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := store.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			// An event raced the cancellation; the channel must still
			// close afterwards.
			if _, ok := <-events; ok {
				t.Fatal("channel still open after cancel")
			}
		}
	case <-time.After(3 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

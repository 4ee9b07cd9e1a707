package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

// fakeClock returns a strictly increasing time source so backup names
// never collide within a test.
func fakeClock() func() time.Time {
	now := time.Unix(1_700_000_000, 0)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func newTestStore(t *testing.T, maxBackups int) *Store {
	t.Helper()

	policy := DefaultPolicy(t.TempDir())
	policy.Backups.MaxBackups = maxBackups

	store, err := New(policy, WithClock(fakeClock()))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t, 3)

	st := state.New()
	st.Audio.MasterVolume = 0.33
	st.Plugins.EnabledPlugins = []string{"term", "browser"}
	st.Input.KeyboardShortcuts["recenter"] = "ctrl+space"

	if err := store.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(st, loaded) {
		t.Errorf("loaded tree differs:\n got %+v\nwant %+v", loaded, st)
	}
}

func TestSave_RejectsInvalidState(t *testing.T) {
	store := newTestStore(t, 3)

	st := state.New()
	st.Audio.MasterVolume = 1.5

	err := store.Save(st)
	if err == nil {
		t.Fatal("saving an invalid tree must fail")
	}
	if !strings.Contains(err.Error(), "master_volume") {
		t.Errorf("error %q should name the violating field", err.Error())
	}
	if store.Exists() {
		t.Error("failed save must not create the primary file")
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	store := newTestStore(t, 3)

	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(store.PrimaryPath() + tempSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Error("temp file must not remain after a successful save")
	}
}

func TestAtomicWrite_InterruptedAttemptLeavesPrimaryIntact(t *testing.T) {
	store := newTestStore(t, 3)

	st := state.New()
	st.Performance.TargetFPS = 72
	if err := store.Save(st); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(store.PrimaryPath())
	if err != nil {
		t.Fatal(err)
	}

	// A crash between temp-write and rename leaves only the temp file.
	garbage := []byte(`{"half written`)
	if err := os.WriteFile(store.PrimaryPath()+tempSuffix, garbage, 0o644); err != nil {
		t.Fatal(err)
	}

	after, err := os.ReadFile(store.PrimaryPath())
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("primary content changed despite the write never completing")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load after interrupted attempt: %v", err)
	}
	if loaded.Performance.TargetFPS != 72 {
		t.Errorf("target fps = %d, want 72 from the intact primary", loaded.Performance.TargetFPS)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store := newTestStore(t, 3)

	_, err := store.Load()
	if !errors.Is(err, ErrStateNotFound) {
		t.Errorf("expected ErrStateNotFound, got %v", err)
	}
}

func TestLoad_CorruptPrimarySurfaced(t *testing.T) {
	store := newTestStore(t, 3)

	if err := os.WriteFile(store.PrimaryPath(), []byte("{{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load()
	if err == nil {
		t.Fatal("corrupt primary must surface an error")
	}
}

func TestLoad_MigratesLegacyDocument(t *testing.T) {
	store := newTestStore(t, 3)

	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(store.PrimaryPath())
	if err != nil {
		t.Fatal(err)
	}
	legacy := strings.Replace(string(data), `"schema_version": "1.0.0"`, `"schema_version": "0.9.0"`, 1)
	if legacy == string(data) {
		t.Fatal("fixture did not rewrite schema_version")
	}
	if err := os.WriteFile(store.PrimaryPath(), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if loaded.SchemaVersion != state.SchemaVersion {
		t.Errorf("schema version = %q, want migrated %q", loaded.SchemaVersion, state.SchemaVersion)
	}
}

func TestBackupRotation(t *testing.T) {
	store := newTestStore(t, 3)

	// Five saves: the first creates no backup (no prior primary), the
	// following four each preserve the previous primary.
	for i := 0; i < 5; i++ {
		st := state.New()
		st.Performance.TargetFPS = 60 + i
		if err := store.Save(st); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	backups, err := store.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3 after rotation", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].CreatedAt.After(backups[i-1].CreatedAt) {
			t.Error("backups must be listed newest first")
		}
	}
}

func TestCleanupOldBackups_PrunesOldestFirst(t *testing.T) {
	policy := DefaultPolicy(t.TempDir())
	policy.Backups.MaxBackups = 2
	store, err := New(policy, WithClock(fakeClock()))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		if err := store.Save(state.New()); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := store.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("got %d backups, want 2", len(backups))
	}

	removed, err := store.CleanupOldBackups()
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("cleanup removed %d entries from an already-pruned set", removed)
	}
}

func TestRestoreFromBackup(t *testing.T) {
	store := newTestStore(t, 5)

	first := state.New()
	first.Performance.TargetFPS = 60
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}

	second := state.New()
	second.Performance.TargetFPS = 120
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}

	backups, err := store.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}

	if err := store.RestoreFromBackup(backups[0].Name); err != nil {
		t.Fatalf("restore: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Performance.TargetFPS != 60 {
		t.Errorf("target fps = %d after restore, want 60 from backup", loaded.Performance.TargetFPS)
	}
}

func TestRestoreFromBackup_RejectsCorruptBackup(t *testing.T) {
	store := newTestStore(t, 5)

	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(store.backupDir(), backupPrefix+"123.json")
	if err := os.WriteFile(bad, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.RestoreFromBackup(backupPrefix + "123.json"); err == nil {
		t.Fatal("restoring a corrupt backup must fail")
	}
}

func TestSave_SizeCap(t *testing.T) {
	policy := DefaultPolicy(t.TempDir())
	policy.MaxFileSize = 64
	store, err := New(policy, WithClock(fakeClock()))
	if err != nil {
		t.Fatal(err)
	}

	err = store.Save(state.New())
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t, 5)

	stats, err := store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.PrimaryExists {
		t.Error("no primary should exist yet")
	}

	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if !stats.PrimaryExists {
		t.Error("primary should exist")
	}
	if stats.PrimarySize <= 0 {
		t.Error("primary size should be positive")
	}
	if stats.BackupCount != 1 {
		t.Errorf("backup count = %d, want 1", stats.BackupCount)
	}
	if stats.TotalSize != stats.PrimarySize+stats.TotalBackupSize {
		t.Error("total size must equal primary plus backups")
	}
	if stats.PrimarySizeHuman() == "" || stats.TotalSizeHuman() == "" {
		t.Error("human-readable sizes must not be empty")
	}
}

func TestLoadWithRecovery(t *testing.T) {
	t.Run("primary ok", func(t *testing.T) {
		store := newTestStore(t, 5)
		if err := store.Save(state.New()); err != nil {
			t.Fatal(err)
		}

		_, outcome, err := store.LoadWithRecovery()
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Source != SourcePrimary {
			t.Errorf("source = %v, want primary", outcome.Source)
		}
	})

	t.Run("corrupt primary falls back to backup", func(t *testing.T) {
		store := newTestStore(t, 5)

		first := state.New()
		first.Performance.TargetFPS = 75
		if err := store.Save(first); err != nil {
			t.Fatal(err)
		}
		if err := store.Save(state.New()); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(store.PrimaryPath(), []byte("corrupt"), 0o644); err != nil {
			t.Fatal(err)
		}

		st, outcome, err := store.LoadWithRecovery()
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Source != SourceBackup {
			t.Fatalf("source = %v, want backup (outcome: %+v)", outcome.Source, outcome)
		}
		if st.Performance.TargetFPS != 75 {
			t.Errorf("target fps = %d, want 75 from backup", st.Performance.TargetFPS)
		}
	})

	t.Run("corrupt backup skipped, defaults returned", func(t *testing.T) {
		store := newTestStore(t, 5)

		if err := os.WriteFile(store.PrimaryPath(), []byte("corrupt"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(store.backupDir(), 0o755); err != nil {
			t.Fatal(err)
		}
		bad := filepath.Join(store.backupDir(), backupPrefix+"42.json")
		if err := os.WriteFile(bad, []byte("also corrupt"), 0o644); err != nil {
			t.Fatal(err)
		}

		st, outcome, err := store.LoadWithRecovery()
		if err != nil {
			t.Fatal(err)
		}
		if outcome.Source != SourceDefaults {
			t.Errorf("source = %v, want defaults", outcome.Source)
		}
		if len(outcome.Skipped) != 1 {
			t.Errorf("skipped = %v, want the corrupt backup listed", outcome.Skipped)
		}
		if err := st.Validate(); err != nil {
			t.Errorf("default fallback must validate: %v", err)
		}
	})
}

func TestOnSaveHandler(t *testing.T) {
	store := newTestStore(t, 3)

	var notified []string
	store.OnSave(func(path string) {
		notified = append(notified, path)
	})

	if err := store.Save(state.New()); err != nil {
		t.Fatal(err)
	}
	if len(notified) != 1 || notified[0] != store.PrimaryPath() {
		t.Errorf("handler calls = %v, want one call with the primary path", notified)
	}
}

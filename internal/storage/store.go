// Package storage persists state trees to disk with crash-safe atomic
// writes, timestamped backup rotation, usage statistics, and a sequential
// batch executor.
//
// A Store provides atomicity for a single operation, not isolation across
// overlapping operations from multiple processes; callers coordinate so
// only one save or load targets the same base directory at a time. The
// internal mutex serializes operations issued through one Store handle.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cyrup-ai/glassdesk/internal/state"
	"github.com/cyrup-ai/glassdesk/internal/state/codec"
	"github.com/cyrup-ai/glassdesk/internal/state/migrate"
)

// StateFileName is the primary state file under the base directory.
const StateFileName = "state.json"

// backupPrefix prefixes timestamp-named backup entries.
const backupPrefix = "state-"

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// SaveHandler is notified after each successful save with the primary path.
type SaveHandler func(path string)

// Option configures a Store.
type Option func(*Store)

// WithSerializer replaces the default serializer.
func WithSerializer(s *codec.Serializer) Option {
	return func(st *Store) {
		st.codec = s
	}
}

// WithMigrator replaces the default migrator.
func WithMigrator(m *migrate.Migrator) Option {
	return func(st *Store) {
		st.migrator = m
	}
}

// WithClock replaces the time source, used by tests to control backup
// timestamps.
func WithClock(clock func() time.Time) Option {
	return func(st *Store) {
		st.clock = clock
	}
}

// Store persists state trees under a base directory.
type Store struct {
	mu       sync.RWMutex
	policy   Policy
	codec    *codec.Serializer
	migrator *migrate.Migrator
	clock    func() time.Time
	onSave   []SaveHandler
}

// New creates a store with the given policy. The base directory and the
// backup subdirectory are created if missing.
func New(policy Policy, opts ...Option) (*Store, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		policy:   policy,
		codec:    codec.New(codec.WithPrettyPrint(true)),
		migrator: migrate.NewMigrator(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(policy.BaseDirectory, dirMode); err != nil {
		return nil, pathErr("create directory", policy.BaseDirectory, err)
	}
	if policy.Backups.Enabled {
		if err := os.MkdirAll(s.backupDir(), dirMode); err != nil {
			return nil, pathErr("create directory", s.backupDir(), err)
		}
	}
	return s, nil
}

// OnSave registers a handler called after each successful save.
func (s *Store) OnSave(h SaveHandler) {
	s.mu.Lock()
	s.onSave = append(s.onSave, h)
	s.mu.Unlock()
}

// PrimaryPath returns the path of the primary state file.
func (s *Store) PrimaryPath() string {
	return filepath.Join(s.policy.BaseDirectory, StateFileName)
}

func (s *Store) backupDir() string {
	return filepath.Join(s.policy.BaseDirectory, s.policy.Backups.Directory)
}

// Save validates, encodes, and durably writes a state tree to the primary
// file. When backups are enabled the previous primary contents are
// preserved first, and entries beyond the retention count are pruned
// oldest-first after the write.
func (s *Store) Save(st *state.State) error {
	s.mu.Lock()
	err := s.saveLocked(st)
	handlers := append([]SaveHandler(nil), s.onSave...)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, h := range handlers {
		h(s.PrimaryPath())
	}
	return nil
}

func (s *Store) saveLocked(st *state.State) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("save: state is invalid: %w", err)
	}

	data, err := s.codec.Encode(st)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if int64(len(data)) > s.policy.MaxFileSize {
		return fmt.Errorf("save: encoded size %d: %w", len(data), ErrFileTooLarge)
	}

	primary := s.PrimaryPath()
	if s.policy.Backups.Enabled {
		if _, err := os.Stat(primary); err == nil {
			if err := s.createBackupLocked(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}

	if s.policy.AtomicWrites {
		if err := writeFileAtomic(primary, data, fileMode); err != nil {
			return pathErr("save", primary, err)
		}
	} else {
		if err := os.WriteFile(primary, data, fileMode); err != nil {
			return pathErr("save", primary, err)
		}
	}

	if s.policy.Backups.Enabled {
		if _, err := s.cleanupLocked(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// Load reads, migrates if necessary, decodes, and validates the primary
// state file. A corrupt primary is surfaced to the caller, never silently
// replaced.
func (s *Store) Load() (*state.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadFile(s.PrimaryPath())
}

func (s *Store) loadFile(path string) (*state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pathErr("load", path, ErrStateNotFound)
		}
		return nil, pathErr("load", path, err)
	}

	if err := s.codec.ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	needs, err := s.migrator.NeedsMigration(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if needs {
		data, _, err = s.migrator.Migrate(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	st, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: state is invalid: %w", path, err)
	}
	if !st.CompatibleWith(st.SchemaVersion) {
		return nil, &state.VersionError{
			Op:       "load",
			Expected: state.SchemaVersion,
			Found:    st.SchemaVersion,
		}
	}
	return st, nil
}

// ValidateStateFile checks that a file holds a syntactically valid state
// document without fully decoding it.
func (s *Store) ValidateStateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return pathErr("validate", path, err)
	}
	return s.codec.ValidateDocument(data)
}

// BackupInfo describes one backup entry.
type BackupInfo struct {
	// Name is the entry's file name within the backup directory.
	Name string

	// Path is the entry's full path.
	Path string

	// CreatedAt is the creation time parsed from the entry name.
	CreatedAt time.Time

	// Size is the entry size in bytes.
	Size int64
}

// ListBackups returns all backup entries, newest first.
func (s *Store) ListBackups() ([]BackupInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBackupsLocked()
}

func (s *Store) listBackupsLocked() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, pathErr("list backups", s.backupDir(), err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Entry disappeared between listing and stat; skip it.
			continue
		}

		created := info.ModTime()
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), ".json")
		if ns, err := strconv.ParseInt(stamp, 10, 64); err == nil {
			created = time.Unix(0, ns)
		}

		backups = append(backups, BackupInfo{
			Name:      name,
			Path:      filepath.Join(s.backupDir(), name),
			CreatedAt: created,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// createBackupLocked copies the current primary into a timestamp-named
// backup entry.
func (s *Store) createBackupLocked() error {
	if err := os.MkdirAll(s.backupDir(), dirMode); err != nil {
		return pathErr("create directory", s.backupDir(), err)
	}

	name := fmt.Sprintf("%s%d.json", backupPrefix, s.clock().UnixNano())
	dst := filepath.Join(s.backupDir(), name)
	if err := copyFile(s.PrimaryPath(), dst, fileMode); err != nil {
		return pathErr("create backup", dst, err)
	}
	return nil
}

// CleanupOldBackups prunes backup entries beyond the retention count,
// oldest first, returning how many were removed.
func (s *Store) CleanupOldBackups() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked()
}

func (s *Store) cleanupLocked() (int, error) {
	backups, err := s.listBackupsLocked()
	if err != nil {
		return 0, err
	}
	if len(backups) <= s.policy.Backups.MaxBackups {
		return 0, nil
	}

	removed := 0
	for _, old := range backups[s.policy.Backups.MaxBackups:] {
		if err := os.Remove(old.Path); err != nil {
			return removed, pathErr("remove backup", old.Path, err)
		}
		removed++
	}
	return removed, nil
}

// RestoreFromBackup replaces the primary file with a backup entry. The
// backup document is checked for validity first, and the current primary
// (if any) is preserved as a new backup before being replaced.
func (s *Store) RestoreFromBackup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.policy.Backups.Enabled {
		return ErrBackupsDisabled
	}

	src := filepath.Join(s.backupDir(), filepath.Base(name))
	data, err := os.ReadFile(src)
	if err != nil {
		return pathErr("restore", src, err)
	}
	if err := s.codec.ValidateDocument(data); err != nil {
		return fmt.Errorf("restore %s: %w", src, err)
	}

	primary := s.PrimaryPath()
	if _, err := os.Stat(primary); err == nil {
		if err := s.createBackupLocked(); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}

	if err := writeFileAtomic(primary, data, fileMode); err != nil {
		return pathErr("restore", primary, err)
	}
	return nil
}

// Exists reports whether the primary state file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.PrimaryPath())
	return err == nil
}

// Delete removes the primary state file. Backups are left in place.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.PrimaryPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return pathErr("delete", s.PrimaryPath(), err)
	}
	return nil
}

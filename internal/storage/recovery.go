package storage

import (
	"github.com/cyrup-ai/glassdesk/internal/state"
)

// RecoverySource identifies where a recovered tree came from.
type RecoverySource int

// Recovery sources, in preference order.
const (
	// SourcePrimary means the primary file loaded cleanly.
	SourcePrimary RecoverySource = iota

	// SourceBackup means a backup entry was used.
	SourceBackup

	// SourceDefaults means no file was usable and defaults were returned.
	SourceDefaults
)

// String returns the source name.
func (s RecoverySource) String() string {
	switch s {
	case SourcePrimary:
		return "primary"
	case SourceBackup:
		return "backup"
	case SourceDefaults:
		return "defaults"
	}
	return "unknown"
}

// RecoveryOutcome reports how a recovery load was satisfied.
type RecoveryOutcome struct {
	// Source is where the returned tree came from.
	Source RecoverySource

	// BackupName is the backup entry used, when Source is SourceBackup.
	BackupName string

	// Skipped lists backup entries that were present but unusable.
	Skipped []string

	// PrimaryErr is the error that made the primary unusable, if any.
	PrimaryErr error
}

// LoadWithRecovery loads the state tree with a fallback chain: the
// primary file first, then each backup newest-first (corrupt backups are
// skipped), and finally a default tree. The returned outcome records
// which source satisfied the load; the error is non-nil only when even
// constructing defaults is impossible, which cannot currently happen, so
// callers may rely on a usable tree.
func (s *Store) LoadWithRecovery() (*state.State, RecoveryOutcome, error) {
	outcome := RecoveryOutcome{}

	st, err := s.Load()
	if err == nil {
		outcome.Source = SourcePrimary
		return st, outcome, nil
	}
	outcome.PrimaryErr = err

	backups, listErr := s.ListBackups()
	if listErr == nil {
		for _, b := range backups {
			s.mu.RLock()
			st, err := s.loadFile(b.Path)
			s.mu.RUnlock()
			if err != nil {
				outcome.Skipped = append(outcome.Skipped, b.Name)
				continue
			}
			outcome.Source = SourceBackup
			outcome.BackupName = b.Name
			return st, outcome, nil
		}
	}

	outcome.Source = SourceDefaults
	return state.New(), outcome, nil
}

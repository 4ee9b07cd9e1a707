package storage

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats summarizes disk usage of the primary file and its backups.
type Stats struct {
	// BaseDirectory is the directory the store operates on.
	BaseDirectory string

	// PrimaryExists reports whether the primary file is present.
	PrimaryExists bool

	// PrimarySize is the primary file size in bytes.
	PrimarySize int64

	// PrimaryModified is the primary file's last modification time.
	PrimaryModified time.Time

	// BackupCount is the number of backup entries.
	BackupCount int

	// TotalBackupSize is the aggregate backup size in bytes.
	TotalBackupSize int64

	// TotalSize is the aggregate size of primary plus backups in bytes.
	TotalSize int64
}

// PrimarySizeHuman returns the primary size in human-readable form.
func (s Stats) PrimarySizeHuman() string {
	return humanize.Bytes(uint64(s.PrimarySize))
}

// TotalBackupSizeHuman returns the aggregate backup size in
// human-readable form.
func (s Stats) TotalBackupSizeHuman() string {
	return humanize.Bytes(uint64(s.TotalBackupSize))
}

// TotalSizeHuman returns the aggregate size in human-readable form.
func (s Stats) TotalSizeHuman() string {
	return humanize.Bytes(uint64(s.TotalSize))
}

// Stats gathers usage statistics for the primary file and all backups.
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{BaseDirectory: s.policy.BaseDirectory}

	if info, err := os.Stat(s.PrimaryPath()); err == nil {
		stats.PrimaryExists = true
		stats.PrimarySize = info.Size()
		stats.PrimaryModified = info.ModTime()
	} else if !os.IsNotExist(err) {
		return Stats{}, pathErr("stat", s.PrimaryPath(), err)
	}

	backups, err := s.listBackupsLocked()
	if err != nil {
		return Stats{}, err
	}
	stats.BackupCount = len(backups)
	for _, b := range backups {
		stats.TotalBackupSize += b.Size
	}

	stats.TotalSize = stats.PrimarySize + stats.TotalBackupSize
	return stats, nil
}

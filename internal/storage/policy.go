package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default policy values.
const (
	// DefaultMaxFileSize caps an encoded state document at 10 MiB.
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultMaxBackups is the retention count for backup rotation.
	DefaultMaxBackups = 5

	// DefaultBackupDirectory is the backup subdirectory name.
	DefaultBackupDirectory = "backups"
)

// BackupPolicy controls backup rotation.
type BackupPolicy struct {
	// Enabled turns backup creation on each successful save on or off.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// MaxBackups is the retention count; older entries are pruned first.
	MaxBackups int `toml:"max_backups" yaml:"max_backups"`

	// Directory is the backup subdirectory under the base directory.
	Directory string `toml:"directory" yaml:"directory"`
}

// Policy configures a Store.
type Policy struct {
	// BaseDirectory is the directory holding the primary state file and
	// the backup subdirectory.
	BaseDirectory string `toml:"base_directory" yaml:"base_directory"`

	// AtomicWrites routes saves through a temp-file-then-rename cycle.
	// Disabling it is only intended for filesystems without rename
	// support.
	AtomicWrites bool `toml:"atomic_writes" yaml:"atomic_writes"`

	// MaxFileSize caps the encoded document size in bytes.
	MaxFileSize int64 `toml:"max_file_size" yaml:"max_file_size"`

	// Backups controls backup rotation.
	Backups BackupPolicy `toml:"backups" yaml:"backups"`
}

// DefaultPolicy returns the storage policy defaults rooted at dir.
func DefaultPolicy(dir string) Policy {
	return Policy{
		BaseDirectory: dir,
		AtomicWrites:  true,
		MaxFileSize:   DefaultMaxFileSize,
		Backups: BackupPolicy{
			Enabled:    true,
			MaxBackups: DefaultMaxBackups,
			Directory:  DefaultBackupDirectory,
		},
	}
}

// LoadPolicy reads a policy file, selecting the format by extension
// (.toml, .yaml, .yml). Values absent from the file keep their defaults,
// and environment overrides are applied afterwards.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy("")

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, pathErr("read policy", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &p); err != nil {
			return Policy{}, pathErr("parse policy", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Policy{}, pathErr("parse policy", path, err)
		}
	default:
		return Policy{}, fmt.Errorf("policy file %s: unsupported format %q", path, filepath.Ext(path))
	}

	p.ApplyEnv()
	return p, p.Validate()
}

// ApplyEnv overrides policy fields from GLASSDESK_* environment variables.
func (p *Policy) ApplyEnv() {
	if dir := os.Getenv("GLASSDESK_STATE_DIR"); dir != "" {
		p.BaseDirectory = dir
	}
	if v := os.Getenv("GLASSDESK_MAX_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Backups.MaxBackups = n
		}
	}
	if v := os.Getenv("GLASSDESK_BACKUPS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Backups.Enabled = b
		}
	}
	if v := os.Getenv("GLASSDESK_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			p.MaxFileSize = n
		}
	}
}

// Validate checks the policy for usable values.
func (p *Policy) Validate() error {
	if p.BaseDirectory == "" {
		return fmt.Errorf("policy: base directory must not be empty")
	}
	if p.MaxFileSize <= 0 {
		return fmt.Errorf("policy: max file size must be positive, got %d", p.MaxFileSize)
	}
	if p.Backups.Enabled && p.Backups.MaxBackups < 1 {
		return fmt.Errorf("policy: max backups must be at least 1 when backups are enabled, got %d", p.Backups.MaxBackups)
	}
	if p.Backups.Directory == "" {
		return fmt.Errorf("policy: backup directory must not be empty")
	}
	return nil
}

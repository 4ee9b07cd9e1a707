// Package migrate upgrades stored state documents from older schema
// versions to the current one.
//
// Migrations operate on the raw JSON document rather than decoded trees
// so that fields which no longer exist in the current schema can still be
// read and rewritten. Each migration maps one source version to one
// target version; the migrator walks the transition table until the
// document reaches the current version. A source version with no table
// entry is a fatal error, and the caller must re-validate the migrated
// document — an upgrade that produces an invalid tree is never accepted.
package migrate

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

// maxHops bounds transition-table walks so a malformed table cannot loop.
const maxHops = 16

// Migration transforms a document from one schema version to the next.
type Migration struct {
	// From is the source version this migration applies to.
	From Version

	// To is the version the document carries after the transform.
	To Version

	// Description summarizes the transform for result reporting.
	Description string

	// Apply rewrites the raw document. The schema_version field is
	// rewritten by the migrator afterwards; Apply only moves data.
	Apply func(data []byte) ([]byte, error)
}

// Result records one applied migration step.
type Result struct {
	From        Version
	To          Version
	Description string
}

// Migrator holds the transition table and applies it to documents.
type Migrator struct {
	current    Version
	migrations []Migration
}

// NewMigrator creates a migrator targeting the current schema version,
// with the built-in transition table registered.
func NewMigrator() *Migrator {
	m := &Migrator{current: MustParseVersion(state.SchemaVersion)}
	for _, mig := range builtinMigrations() {
		m.Register(mig)
	}
	return m
}

// Register adds a migration to the transition table, kept sorted by
// source version.
func (m *Migrator) Register(mig Migration) {
	m.migrations = append(m.migrations, mig)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].From.Compare(m.migrations[j].From) < 0
	})
}

// CurrentVersion returns the version documents are migrated to.
func (m *Migrator) CurrentVersion() Version {
	return m.current
}

// NeedsMigration reports whether a raw document carries an older schema
// version than the current one.
func (m *Migrator) NeedsMigration(data []byte) (bool, error) {
	v, err := documentVersion(data)
	if err != nil {
		return false, err
	}
	return v.Compare(m.current) < 0, nil
}

// Migrate upgrades a raw document to the current schema version.
//
// Documents already at the current version pass through unchanged. A
// version newer than current, or an older version with no registered
// transition, fails with a version error.
func (m *Migrator) Migrate(data []byte) ([]byte, []Result, error) {
	v, err := documentVersion(data)
	if err != nil {
		return nil, nil, err
	}

	if v.Compare(m.current) == 0 {
		return data, nil, nil
	}
	if v.Compare(m.current) > 0 {
		return nil, nil, &state.VersionError{
			Op:       "migrate",
			Expected: m.current.String(),
			Found:    v.String(),
		}
	}

	var results []Result
	for hops := 0; v.Compare(m.current) < 0; hops++ {
		if hops >= maxHops {
			return nil, nil, fmt.Errorf("migrate: transition table loops at version %s", v)
		}

		mig, ok := m.lookup(v)
		if !ok {
			return nil, nil, &state.VersionError{
				Op:       "migrate",
				Expected: m.current.String(),
				Found:    v.String(),
			}
		}

		data, err = mig.Apply(data)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate %s to %s: %w", mig.From, mig.To, err)
		}
		data, err = sjson.SetBytes(data, "schema_version", mig.To.String())
		if err != nil {
			return nil, nil, fmt.Errorf("migrate %s to %s: rewriting version: %w", mig.From, mig.To, err)
		}

		results = append(results, Result{From: mig.From, To: mig.To, Description: mig.Description})
		v = mig.To
	}

	return data, results, nil
}

func (m *Migrator) lookup(from Version) (Migration, bool) {
	for _, mig := range m.migrations {
		if mig.From.Compare(from) == 0 {
			return mig, true
		}
	}
	return Migration{}, false
}

func documentVersion(data []byte) (Version, error) {
	raw := gjson.GetBytes(data, "schema_version")
	if !raw.Exists() {
		return Version{}, fmt.Errorf("migrate: document has no schema_version")
	}
	v, err := ParseVersion(raw.String())
	if err != nil {
		return Version{}, fmt.Errorf("migrate: %w", err)
	}
	return v, nil
}

// RenameField returns a transform moving a value from one path to another,
// leaving the document unchanged when the source path is absent.
func RenameField(from, to string) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		val := gjson.GetBytes(data, from)
		if !val.Exists() {
			return data, nil
		}
		data, err := sjson.SetBytes(data, to, val.Value())
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", to, err)
		}
		data, err = sjson.DeleteBytes(data, from)
		if err != nil {
			return nil, fmt.Errorf("deleting %s: %w", from, err)
		}
		return data, nil
	}
}

// SetDefault returns a transform that writes a value at a path only when
// the path is absent.
func SetDefault(path string, value any) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		if gjson.GetBytes(data, path).Exists() {
			return data, nil
		}
		out, err := sjson.SetBytes(data, path, value)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", path, err)
		}
		return out, nil
	}
}

// DeleteField returns a transform that removes a path if present.
func DeleteField(path string) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		out, err := sjson.DeleteBytes(data, path)
		if err != nil {
			return nil, fmt.Errorf("deleting %s: %w", path, err)
		}
		return out, nil
	}
}

// Chain returns a transform applying several transforms in order.
func Chain(steps ...func([]byte) ([]byte, error)) func([]byte) ([]byte, error) {
	return func(data []byte) ([]byte, error) {
		var err error
		for _, step := range steps {
			data, err = step(data)
			if err != nil {
				return nil, err
			}
		}
		return data, nil
	}
}

// builtinMigrations is the fixed transition table for known legacy
// versions.
func builtinMigrations() []Migration {
	return []Migration{
		{
			From:        MustParseVersion("0.9.0"),
			To:          MustParseVersion("1.0.0"),
			Description: "rename legacy preference fields",
			Apply: Chain(
				RenameField("user_preferences.display_distance", "user_preferences.screen_distance"),
				RenameField("user_preferences.brightness", "user_preferences.brightness_level"),
				SetDefault("input_config", state.DefaultInputConfig()),
				SetDefault("audio_settings", state.DefaultAudioSettings()),
				SetDefault("network_config", state.DefaultNetworkConfig()),
				SetDefault("security_settings", state.DefaultSecuritySettings()),
			),
		},
	}
}

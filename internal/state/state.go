// Package state defines the persistent application state tree: a versioned
// root object composed of independently validated and merged sections
// covering user preferences, UI layout, device calibration, plugins,
// performance, display, input, audio, network, and security.
//
// Every section follows the same two-operation contract: Validate reports
// all field bound violations with dot-separated paths, and Merge combines
// an incoming instance into the receiver. The default merge rule is that
// the incoming value wins at field granularity; calibration data and the
// keyed/set-like plugin collections carry documented exceptions.
package state

import (
	"strings"
	"time"
)

// SchemaVersion is the current schema version written to every new tree.
const SchemaVersion = "1.0.0"

// State is the root of the persistent application state tree.
//
// A State is exclusively owned by its holder; sections are owned by the
// root and never shared independently. There is no ambient global
// instance — callers thread their handle explicitly.
type State struct {
	SchemaVersion string `json:"schema_version"`
	LastUpdated   int64  `json:"last_updated"`

	UserPreferences UserPreferences     `json:"user_preferences"`
	UI              UIState             `json:"ui_state"`
	Calibration     CalibrationData     `json:"calibration_data"`
	Plugins         PluginSystemState   `json:"plugin_state"`
	Performance     PerformanceSettings `json:"performance_settings"`
	WindowLayout    WindowLayout        `json:"window_layout"`
	Input           InputConfig         `json:"input_config"`
	Audio           AudioSettings       `json:"audio_settings"`
	Network         NetworkConfig       `json:"network_config"`
	Security        SecuritySettings    `json:"security_settings"`
}

// New creates a state tree with every section at its defaults.
func New() *State {
	return &State{
		SchemaVersion:   SchemaVersion,
		LastUpdated:     time.Now().Unix(),
		UserPreferences: DefaultUserPreferences(),
		UI:              DefaultUIState(),
		Calibration:     DefaultCalibrationData(),
		Plugins:         DefaultPluginSystemState(),
		Performance:     DefaultPerformanceSettings(),
		WindowLayout:    DefaultWindowLayout(),
		Input:           DefaultInputConfig(),
		Audio:           DefaultAudioSettings(),
		Network:         DefaultNetworkConfig(),
		Security:        DefaultSecuritySettings(),
	}
}

// Touch updates the last-modified timestamp to the current time.
func (s *State) Touch() {
	s.LastUpdated = time.Now().Unix()
}

// Age returns how long ago the tree was last updated.
func (s *State) Age() time.Duration {
	return time.Since(time.Unix(s.LastUpdated, 0))
}

// Reset restores every section to its defaults, keeping the current
// schema version and touching the timestamp.
func (s *State) Reset() {
	*s = *New()
}

// CompatibleWith reports whether a stored tree with the given version can
// be used directly: the version must be non-empty and share the current
// major version.
func (s *State) CompatibleWith(version string) bool {
	if version == "" {
		return false
	}
	major, _, ok := strings.Cut(SchemaVersion, ".")
	if !ok {
		return false
	}
	return strings.HasPrefix(version, major+".")
}

// Validate checks every section against its documented field bounds.
// All violations are collected and returned together; a nil return means
// the whole tree is valid.
func (s *State) Validate() error {
	ve := NewValidationErrors()

	if s.SchemaVersion == "" {
		ve.Add("schema_version", "must not be empty")
	}
	if s.LastUpdated > time.Now().Unix()+1 {
		ve.AddWithValue("last_updated", "timestamp is in the future", s.LastUpdated, "past or present unix time")
	}

	s.UserPreferences.validate(ve, "user_preferences")
	s.UI.validate(ve, "ui_state")
	s.Calibration.validate(ve, "calibration_data")
	s.Plugins.validate(ve, "plugin_state")
	s.Performance.validate(ve, "performance_settings")
	s.WindowLayout.validate(ve, "window_layout")
	s.Input.validate(ve, "input_config")
	s.Audio.validate(ve, "audio_settings")
	s.Network.validate(ve, "network_config")
	s.Security.validate(ve, "security_settings")

	return ve.AsError()
}

// Merge combines another tree into this one.
//
// Both trees must carry the same schema version; a mismatch fails the
// whole merge and leaves the receiver untouched. On success every section
// is merged under its own rules and the timestamp is touched.
func (s *State) Merge(other *State) error {
	if s.SchemaVersion != other.SchemaVersion {
		return &VersionError{
			Op:       "merge",
			Expected: s.SchemaVersion,
			Found:    other.SchemaVersion,
		}
	}

	s.UserPreferences.Merge(&other.UserPreferences)
	s.UI.Merge(&other.UI)
	s.Calibration.Merge(&other.Calibration)
	s.Plugins.Merge(&other.Plugins)
	s.Performance.Merge(&other.Performance)
	s.WindowLayout.Merge(&other.WindowLayout)
	s.Input.Merge(&other.Input)
	s.Audio.Merge(&other.Audio)
	s.Network.Merge(&other.Network)
	s.Security.Merge(&other.Security)

	s.Touch()
	return nil
}

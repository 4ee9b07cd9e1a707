package state

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewValidates(t *testing.T) {
	st := New()
	if err := st.Validate(); err != nil {
		t.Fatalf("default state should validate, got: %v", err)
	}
	if st.SchemaVersion != SchemaVersion {
		t.Errorf("schema version = %q, want %q", st.SchemaVersion, SchemaVersion)
	}
}

func TestValidate_OutOfBoundFieldsNamed(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*State)
		wantSub string
	}{
		{
			"master volume too high",
			func(s *State) { s.Audio.MasterVolume = 1.5 },
			"master_volume",
		},
		{
			"bad sample rate",
			func(s *State) { s.Audio.Device.SampleRate = 22050 },
			"sample_rate",
		},
		{
			"buffer size not power of two",
			func(s *State) { s.Audio.Device.BufferSize = 1000 },
			"buffer_size",
		},
		{
			"quality score out of range",
			func(s *State) { s.Calibration.QualityScore = 1.2 },
			"quality_score",
		},
		{
			"temperature too low",
			func(s *State) { s.Calibration.TemperatureCelsius = -60 },
			"temperature_celsius",
		},
		{
			"target fps too high",
			func(s *State) { s.Performance.TargetFPS = 500 },
			"target_fps",
		},
		{
			"shadow map resolution not power of two",
			func(s *State) { s.Performance.Shadows.MapResolution = 3000 },
			"map_resolution",
		},
		{
			"plugin memory cap too low",
			func(s *State) { s.Plugins.MaxMemoryMB = 32 },
			"max_memory_mb",
		},
		{
			"connection timeout too high",
			func(s *State) { s.Network.ConnectionTimeoutSecs = 301 },
			"connection_timeout_secs",
		},
		{
			"ipd out of range",
			func(s *State) { s.WindowLayout.VirtualScreen.IPDMm = 90 },
			"ipd_mm",
		},
		{
			"brightness level too high",
			func(s *State) { s.UserPreferences.BrightnessLevel = 8 },
			"brightness_level",
		},
		{
			"ui scale too small",
			func(s *State) { s.UI.UIScale = 0.1 },
			"ui_scale",
		},
		{
			"gesture durations inverted",
			func(s *State) { s.Input.Gestures.MinDurationMs = 5000 },
			"min_duration_ms",
		},
		{
			"session timeout too short",
			func(s *State) { s.Security.Authentication.SessionTimeoutMins = 1 },
			"session_timeout_mins",
		},
		{
			"proxy enabled without host",
			func(s *State) {
				s.Network.Proxy.Enabled = true
				s.Network.Proxy.Host = ""
			},
			"proxy.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New()
			tt.mutate(st)

			err := st.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not name field %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	st := New()
	st.Audio.MasterVolume = 2.0
	st.Performance.TargetFPS = 10
	st.UI.UIScale = 10.0

	err := st.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if ve.Len() != 3 {
		t.Errorf("collected %d errors, want 3: %v", ve.Len(), ve)
	}
}

func TestMerge_VersionGate(t *testing.T) {
	a := New()
	b := New()
	b.SchemaVersion = "0.9.0"
	b.Audio.MasterVolume = 0.1

	before := a.Audio.MasterVolume
	err := a.Merge(b)
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
	if !errors.Is(err, ErrSchemaVersionMismatch) {
		t.Errorf("expected ErrSchemaVersionMismatch, got %v", err)
	}
	if a.Audio.MasterVolume != before {
		t.Error("failed merge must not modify the receiver")
	}
}

func TestMerge_OtherWins(t *testing.T) {
	a := New()
	b := New()
	b.Audio.MasterVolume = 0.25
	b.Performance.TargetFPS = 120
	b.UserPreferences.BrightnessLevel = 7
	b.Security.SecurityLevel = SecurityMaximum

	if err := a.Merge(b); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if a.Audio.MasterVolume != 0.25 {
		t.Errorf("master volume = %v, want incoming 0.25", a.Audio.MasterVolume)
	}
	if a.Performance.TargetFPS != 120 {
		t.Errorf("target fps = %d, want incoming 120", a.Performance.TargetFPS)
	}
	if a.UserPreferences.BrightnessLevel != 7 {
		t.Errorf("brightness = %d, want incoming 7", a.UserPreferences.BrightnessLevel)
	}
	if a.Security.SecurityLevel != SecurityMaximum {
		t.Errorf("security level = %q, want incoming maximum", a.Security.SecurityLevel)
	}
}

func TestMerge_SelfIsIdempotent(t *testing.T) {
	a := New()
	a.Audio.MasterVolume = 0.4
	a.Plugins.EnabledPlugins = []string{"alpha", "beta"}
	a.Input.KeyboardShortcuts = map[string]string{"save": "ctrl+s"}

	snapshot := *a
	other := *a

	if err := a.Merge(&other); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	// Merging touches the timestamp; restore it before comparing.
	a.LastUpdated = snapshot.LastUpdated
	if !reflect.DeepEqual(*a, snapshot) {
		t.Errorf("merging a tree with itself changed it:\n got %+v\nwant %+v", *a, snapshot)
	}
}

func TestMerge_TouchesTimestamp(t *testing.T) {
	a := New()
	a.LastUpdated = 1000
	b := New()

	if err := a.Merge(b); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if a.LastUpdated == 1000 {
		t.Error("successful merge must update last_updated")
	}
}

func TestReset(t *testing.T) {
	st := New()
	st.Audio.MasterVolume = 0.1
	st.Plugins.EnabledPlugins = []string{"x"}

	st.Reset()

	if st.Audio.MasterVolume != 0.7 {
		t.Errorf("master volume = %v after reset, want default 0.7", st.Audio.MasterVolume)
	}
	if len(st.Plugins.EnabledPlugins) != 0 {
		t.Errorf("enabled plugins = %v after reset, want empty", st.Plugins.EnabledPlugins)
	}
}

func TestCompatibleWith(t *testing.T) {
	st := New()
	tests := []struct {
		version string
		want    bool
	}{
		{"1.0.0", true},
		{"1.2.3", true},
		{"0.9.0", false},
		{"2.0.0", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := st.CompatibleWith(tt.version); got != tt.want {
			t.Errorf("CompatibleWith(%q) = %v, want %v", tt.version, got, tt.want)
		}
	}
}

func TestValidate_FutureTimestamp(t *testing.T) {
	st := New()
	st.LastUpdated = time.Now().Add(time.Hour).Unix()

	err := st.Validate()
	if err == nil || !strings.Contains(err.Error(), "last_updated") {
		t.Errorf("expected last_updated violation, got %v", err)
	}
}

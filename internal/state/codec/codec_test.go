package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cyrup-ai/glassdesk/internal/state"
)

func TestRoundTrip(t *testing.T) {
	st := state.New()
	st.Audio.MasterVolume = 0.42
	st.Plugins.EnabledPlugins = []string{"alpha", "beta"}
	st.Plugins.PluginConfigs["alpha"] = state.DefaultPluginConfig()
	st.Input.KeyboardShortcuts["save"] = "ctrl+s"
	st.Calibration.State = state.CalibrationCalibrated
	st.Calibration.CalibratedAt = 12345
	st.Calibration.QualityScore = 0.9

	if err := st.Validate(); err != nil {
		t.Fatalf("fixture must validate: %v", err)
	}

	for _, pretty := range []bool{false, true} {
		ser := New(WithPrettyPrint(pretty))

		data, err := ser.Encode(st)
		if err != nil {
			t.Fatalf("encode (pretty=%v): %v", pretty, err)
		}
		decoded, err := ser.Decode(data)
		if err != nil {
			t.Fatalf("decode (pretty=%v): %v", pretty, err)
		}
		if !reflect.DeepEqual(st, decoded) {
			t.Errorf("round trip (pretty=%v) changed the tree:\n got %+v\nwant %+v", pretty, decoded, st)
		}
	}
}

func TestDecode_EmptyObjectFailsWithMissingField(t *testing.T) {
	_, err := New().Decode([]byte(`{}`))
	if err == nil {
		t.Fatal("decoding {} must fail")
	}

	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SerializationError, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "missing required field") {
		t.Errorf("error %q should mention the missing required field", err.Error())
	}
}

func TestDecode_MalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", `{"schema_version": "1.0`},
		{"not json", "not json at all"},
		{"array root", `[1,2,3]`},
		{"scalar root", `42`},
	}

	ser := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ser.Decode([]byte(tt.input))
			if err == nil {
				t.Fatal("expected decode failure")
			}
			var serr *SerializationError
			if !errors.As(err, &serr) {
				t.Errorf("expected *SerializationError, got %T", err)
			}
		})
	}
}

func TestValidateDocument_RequiredFields(t *testing.T) {
	ser := New()

	st := state.New()
	full, err := ser.Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	if err := ser.ValidateDocument(full); err != nil {
		t.Fatalf("complete document should pass: %v", err)
	}

	partial := []byte(`{"schema_version": "1.0.0", "last_updated": 100}`)
	err = ser.ValidateDocument(partial)
	if err == nil || !strings.Contains(err.Error(), "missing required field: user_preferences") {
		t.Errorf("expected user_preferences to be reported missing, got %v", err)
	}
}

func TestDecode_PartialDocumentKeepsDefaults(t *testing.T) {
	doc := []byte(`{
		"schema_version": "1.0.0",
		"last_updated": 100,
		"user_preferences": {"brightness_level": 7},
		"ui_state": {},
		"calibration_data": {},
		"plugin_state": {},
		"performance_settings": {},
		"window_layout": {}
	}`)

	st, err := New().Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.UserPreferences.BrightnessLevel != 7 {
		t.Errorf("brightness = %d, want 7 from document", st.UserPreferences.BrightnessLevel)
	}
	if st.Audio.MasterVolume != 0.7 {
		t.Errorf("master volume = %v, want default 0.7 for absent section", st.Audio.MasterVolume)
	}
	if st.Performance.TargetFPS != 90 {
		t.Errorf("target fps = %d, want default 90 for empty section object", st.Performance.TargetFPS)
	}
}

func TestSchemaVersion(t *testing.T) {
	v, err := SchemaVersion([]byte(`{"schema_version": "0.9.0"}`))
	if err != nil {
		t.Fatal(err)
	}
	if v != "0.9.0" {
		t.Errorf("version = %q, want 0.9.0", v)
	}

	if _, err := SchemaVersion([]byte(`{}`)); err == nil {
		t.Error("expected error for document without schema_version")
	}
	if _, err := SchemaVersion([]byte(`garbage`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

package state

// InputConfig holds keyboard shortcuts and gaze/gesture/voice input tuning.
type InputConfig struct {
	// KeyboardShortcuts maps action identifiers to key chords.
	// Merging unions by action; the incoming chord wins on conflict.
	KeyboardShortcuts map[string]string `json:"keyboard_shortcuts"`

	Gaze        GazeInputSettings    `json:"gaze"`
	Gestures    GestureInputSettings `json:"gestures"`
	Voice       VoiceInputSettings   `json:"voice"`
	Sensitivity SensitivitySettings  `json:"sensitivity"`
}

// GazeInputSettings control gaze-based pointing.
type GazeInputSettings struct {
	Enabled             bool `json:"enabled"`
	DwellTimeMs         int  `json:"dwell_time_ms"`
	CursorVisible       bool `json:"cursor_visible"`
	SmoothTracking      bool `json:"smooth_tracking"`
	CalibrationRequired bool `json:"calibration_required"`
}

// GestureInputSettings control hand gesture recognition.
type GestureInputSettings struct {
	Enabled       bool    `json:"enabled"`
	Sensitivity   float64 `json:"sensitivity"`
	MinDurationMs int     `json:"min_duration_ms"`
	MaxDurationMs int     `json:"max_duration_ms"`
}

// VoiceInputSettings control voice command recognition.
type VoiceInputSettings struct {
	Enabled          bool    `json:"enabled"`
	WakeWordRequired bool    `json:"wake_word_required"`
	WakeWord         string  `json:"wake_word"`
	Sensitivity      float64 `json:"sensitivity"`
	Language         string  `json:"language"`
}

// SensitivitySettings scale pointer and tracking responsiveness.
type SensitivitySettings struct {
	Mouse        float64 `json:"mouse"`
	Scroll       float64 `json:"scroll"`
	Touch        float64 `json:"touch"`
	HeadTracking float64 `json:"head_tracking"`
}

// DefaultInputConfig returns input configuration with documented defaults.
func DefaultInputConfig() InputConfig {
	return InputConfig{
		KeyboardShortcuts: make(map[string]string),
		Gaze: GazeInputSettings{
			Enabled:             true,
			DwellTimeMs:         800,
			CursorVisible:       true,
			SmoothTracking:      true,
			CalibrationRequired: false,
		},
		Gestures: GestureInputSettings{
			Enabled:       false,
			Sensitivity:   0.7,
			MinDurationMs: 200,
			MaxDurationMs: 3000,
		},
		Voice: VoiceInputSettings{
			Enabled:          false,
			WakeWordRequired: true,
			WakeWord:         "Hey XREAL",
			Sensitivity:      0.8,
			Language:         "en-US",
		},
		Sensitivity: SensitivitySettings{
			Mouse:        1.0,
			Scroll:       1.0,
			Touch:        1.0,
			HeadTracking: 1.0,
		},
	}
}

func (c *InputConfig) validate(ve *ValidationErrors, path string) {
	inRangeInt(ve, path+".gaze.dwell_time_ms", c.Gaze.DwellTimeMs, 100, 5000)

	inRange(ve, path+".gestures.sensitivity", c.Gestures.Sensitivity, 0.0, 1.0)
	if c.Gestures.MinDurationMs >= c.Gestures.MaxDurationMs {
		ve.AddWithValue(path+".gestures.min_duration_ms",
			"minimum duration must be less than maximum duration",
			c.Gestures.MinDurationMs, "less than max_duration_ms")
	}

	if c.Voice.WakeWordRequired && c.Voice.WakeWord == "" {
		ve.Add(path+".voice.wake_word", "wake word must not be empty when required")
	}
	inRange(ve, path+".voice.sensitivity", c.Voice.Sensitivity, 0.0, 1.0)

	inRange(ve, path+".sensitivity.mouse", c.Sensitivity.Mouse, 0.1, 5.0)
	inRange(ve, path+".sensitivity.scroll", c.Sensitivity.Scroll, 0.1, 5.0)
	inRange(ve, path+".sensitivity.touch", c.Sensitivity.Touch, 0.1, 5.0)
	inRange(ve, path+".sensitivity.head_tracking", c.Sensitivity.HeadTracking, 0.1, 5.0)
}

// Validate checks every input configuration bound.
func (c *InputConfig) Validate() error {
	ve := NewValidationErrors()
	c.validate(ve, "input_config")
	return ve.AsError()
}

// Merge combines another input config into this one. Keyboard shortcuts
// are unioned by action with incoming chords winning; all other fields
// are replaced.
func (c *InputConfig) Merge(other *InputConfig) {
	if c.KeyboardShortcuts == nil && len(other.KeyboardShortcuts) > 0 {
		c.KeyboardShortcuts = make(map[string]string, len(other.KeyboardShortcuts))
	}
	for action, chord := range other.KeyboardShortcuts {
		c.KeyboardShortcuts[action] = chord
	}

	c.Gaze = other.Gaze
	c.Gestures = other.Gestures
	c.Voice = other.Voice
	c.Sensitivity = other.Sensitivity
}

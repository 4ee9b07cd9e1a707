package state

// ColorBlindMode identifies a color vision deficiency compensation profile.
type ColorBlindMode string

// Supported color blind compensation modes.
const (
	ColorBlindNone          ColorBlindMode = "none"
	ColorBlindProtanopia    ColorBlindMode = "protanopia"
	ColorBlindDeuteranopia  ColorBlindMode = "deuteranopia"
	ColorBlindTritanopia    ColorBlindMode = "tritanopia"
	ColorBlindProtanomaly   ColorBlindMode = "protanomaly"
	ColorBlindDeuteranomaly ColorBlindMode = "deuteranomaly"
	ColorBlindTritanomaly   ColorBlindMode = "tritanomaly"
)

func (m ColorBlindMode) valid() bool {
	switch m {
	case ColorBlindNone, ColorBlindProtanopia, ColorBlindDeuteranopia,
		ColorBlindTritanopia, ColorBlindProtanomaly, ColorBlindDeuteranomaly,
		ColorBlindTritanomaly:
		return true
	}
	return false
}

// UserPreferences holds user-facing display and comfort preferences.
type UserPreferences struct {
	// ScreenDistance is the virtual screen distance adjustment in
	// arbitrary units, negative values bring the screen closer.
	ScreenDistance float64 `json:"screen_distance"`

	DisplayMode3D   bool  `json:"display_mode_3d"`
	RollLockEnabled bool  `json:"roll_lock_enabled"`
	BrightnessLevel uint8 `json:"brightness_level"`
	AutoBrightness  bool  `json:"auto_brightness"`

	Comfort       ComfortSettings       `json:"comfort"`
	Accessibility AccessibilitySettings `json:"accessibility"`
	Privacy       PrivacySettings       `json:"privacy"`
	Appearance    AppearanceSettings    `json:"appearance"`
}

// ComfortSettings control motion comfort and eye strain mitigation.
type ComfortSettings struct {
	MotionSicknessReduction bool    `json:"motion_sickness_reduction"`
	ComfortVignette         bool    `json:"comfort_vignette"`
	SnapTurning             bool    `json:"snap_turning"`
	SnapTurnAngle           float64 `json:"snap_turn_angle"`
	SmoothLocomotion        bool    `json:"smooth_locomotion"`
	LocomotionSpeed         float64 `json:"locomotion_speed"`
	EyeStrainReduction      bool    `json:"eye_strain_reduction"`
	BlueLightFilter         float64 `json:"blue_light_filter"`
}

// AccessibilitySettings control assistive display and input features.
type AccessibilitySettings struct {
	TextScale       float64        `json:"text_scale"`
	HighContrast    bool           `json:"high_contrast"`
	ReduceMotion    bool           `json:"reduce_motion"`
	ScreenReader    bool           `json:"screen_reader"`
	HapticFeedback  bool           `json:"haptic_feedback"`
	HapticIntensity float64        `json:"haptic_intensity"`
	ColorBlindMode  ColorBlindMode `json:"color_blind_mode"`
	VoiceCommands   bool           `json:"voice_commands"`
	DwellClicking   bool           `json:"dwell_clicking"`
}

// PrivacySettings control data collection and retention.
type PrivacySettings struct {
	TelemetryEnabled  bool `json:"telemetry_enabled"`
	CrashReporting    bool `json:"crash_reporting"`
	UsageAnalytics    bool `json:"usage_analytics"`
	DataRetentionDays int  `json:"data_retention_days"`
	LocalOnlyMode     bool `json:"local_only_mode"`
}

// AppearanceSettings control theming and UI presentation.
type AppearanceSettings struct {
	Theme              string   `json:"theme"`
	DarkMode           bool     `json:"dark_mode"`
	AccentColor        [3]uint8 `json:"accent_color"`
	AnimationSpeed     float64  `json:"animation_speed"`
	UITransparency     float64  `json:"ui_transparency"`
	FontFamily         string   `json:"font_family"`
	FontSizeMultiplier float64  `json:"font_size_multiplier"`
	ShowAdvanced       bool     `json:"show_advanced"`
}

// DefaultUserPreferences returns preferences with documented defaults.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		ScreenDistance:  -5.0,
		DisplayMode3D:   true,
		RollLockEnabled: false,
		BrightnessLevel: 4,
		AutoBrightness:  false,
		Comfort: ComfortSettings{
			MotionSicknessReduction: true,
			ComfortVignette:         true,
			SnapTurning:             false,
			SnapTurnAngle:           30.0,
			SmoothLocomotion:        true,
			LocomotionSpeed:         1.0,
			EyeStrainReduction:      true,
			BlueLightFilter:         0.2,
		},
		Accessibility: AccessibilitySettings{
			TextScale:       1.0,
			HapticFeedback:  true,
			HapticIntensity: 0.7,
			ColorBlindMode:  ColorBlindNone,
		},
		Privacy: PrivacySettings{
			CrashReporting:    true,
			DataRetentionDays: 90,
			LocalOnlyMode:     false,
		},
		Appearance: AppearanceSettings{
			Theme:              "cyrup_dark",
			DarkMode:           true,
			AccentColor:        [3]uint8{0, 150, 255},
			AnimationSpeed:     1.0,
			UITransparency:     0.95,
			FontFamily:         "Inter",
			FontSizeMultiplier: 1.0,
			ShowAdvanced:       false,
		},
	}
}

func (p *UserPreferences) validate(ve *ValidationErrors, path string) {
	inRange(ve, path+".screen_distance", p.ScreenDistance, -50.0, 50.0)
	if p.BrightnessLevel > 7 {
		ve.AddWithValue(path+".brightness_level", "brightness level too high",
			p.BrightnessLevel, "0 to 7")
	}

	inRange(ve, path+".comfort.snap_turn_angle", p.Comfort.SnapTurnAngle, 5.0, 90.0)
	inRange(ve, path+".comfort.locomotion_speed", p.Comfort.LocomotionSpeed, 0.1, 5.0)
	inRange(ve, path+".comfort.blue_light_filter", p.Comfort.BlueLightFilter, 0.0, 1.0)

	inRange(ve, path+".accessibility.text_scale", p.Accessibility.TextScale, 0.5, 3.0)
	inRange(ve, path+".accessibility.haptic_intensity", p.Accessibility.HapticIntensity, 0.0, 1.0)
	if !p.Accessibility.ColorBlindMode.valid() {
		ve.AddWithValue(path+".accessibility.color_blind_mode", "unknown color blind mode",
			p.Accessibility.ColorBlindMode, "none, protanopia, deuteranopia, tritanopia, protanomaly, deuteranomaly, tritanomaly")
	}

	inRangeInt(ve, path+".privacy.data_retention_days", p.Privacy.DataRetentionDays, 1, 3650)

	inRange(ve, path+".appearance.animation_speed", p.Appearance.AnimationSpeed, 0.0, 2.0)
	inRange(ve, path+".appearance.ui_transparency", p.Appearance.UITransparency, 0.0, 1.0)
	inRange(ve, path+".appearance.font_size_multiplier", p.Appearance.FontSizeMultiplier, 0.5, 3.0)
}

// Validate checks every preference bound.
func (p *UserPreferences) Validate() error {
	ve := NewValidationErrors()
	p.validate(ve, "user_preferences")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (p *UserPreferences) Merge(other *UserPreferences) {
	*p = *other
}

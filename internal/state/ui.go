package state

// ToolbarPosition anchors the toolbar to a screen edge.
type ToolbarPosition string

// Toolbar anchor positions.
const (
	ToolbarTop    ToolbarPosition = "top"
	ToolbarBottom ToolbarPosition = "bottom"
	ToolbarLeft   ToolbarPosition = "left"
	ToolbarRight  ToolbarPosition = "right"
)

func (p ToolbarPosition) valid() bool {
	switch p {
	case ToolbarTop, ToolbarBottom, ToolbarLeft, ToolbarRight:
		return true
	}
	return false
}

// ToolbarSize selects the toolbar button scale.
type ToolbarSize string

// Toolbar sizes.
const (
	ToolbarSmall  ToolbarSize = "small"
	ToolbarMedium ToolbarSize = "medium"
	ToolbarLarge  ToolbarSize = "large"
)

func (s ToolbarSize) valid() bool {
	switch s {
	case ToolbarSmall, ToolbarMedium, ToolbarLarge:
		return true
	}
	return false
}

// NotificationPosition anchors notification toasts to a screen corner.
type NotificationPosition string

// Notification anchor positions.
const (
	NotifyTopLeft     NotificationPosition = "top_left"
	NotifyTopRight    NotificationPosition = "top_right"
	NotifyBottomLeft  NotificationPosition = "bottom_left"
	NotifyBottomRight NotificationPosition = "bottom_right"
)

func (p NotificationPosition) valid() bool {
	switch p {
	case NotifyTopLeft, NotifyTopRight, NotifyBottomLeft, NotifyBottomRight:
		return true
	}
	return false
}

// UIState holds panel visibility, window geometry, toolbar, and
// notification configuration.
type UIState struct {
	SettingsPanelOpen  bool    `json:"settings_panel_open"`
	DebugPanelOpen     bool    `json:"debug_panel_open"`
	PerformanceOverlay bool    `json:"performance_overlay"`
	UIScale            float64 `json:"ui_scale"`

	Windows       WindowPositions      `json:"windows"`
	Panels        PanelConfigs         `json:"panels"`
	Toolbar       ToolbarState         `json:"toolbar"`
	Notifications NotificationSettings `json:"notifications"`
}

// WindowRect is a window position and size in virtual pixels.
type WindowRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowPositions tracks the geometry of the built-in windows.
type WindowPositions struct {
	Main          WindowRect `json:"main"`
	Settings      WindowRect `json:"settings"`
	Debug         WindowRect `json:"debug"`
	PluginManager WindowRect `json:"plugin_manager"`
}

// PanelConfig describes a single dockable panel.
type PanelConfig struct {
	Visible   bool    `json:"visible"`
	Docked    bool    `json:"docked"`
	Opacity   float64 `json:"opacity"`
	Size      [2]int  `json:"size"`
	Position  [2]int  `json:"position"`
	Resizable bool    `json:"resizable"`
	Movable   bool    `json:"movable"`
}

// PanelConfigs holds the per-panel configuration for the built-in panels.
type PanelConfigs struct {
	Settings      PanelConfig `json:"settings"`
	Debug         PanelConfig `json:"debug"`
	Performance   PanelConfig `json:"performance"`
	PluginManager PanelConfig `json:"plugin_manager"`
}

// ToolbarButtons toggles individual toolbar buttons.
type ToolbarButtons struct {
	Settings      bool `json:"settings"`
	Debug         bool `json:"debug"`
	Performance   bool `json:"performance"`
	PluginManager bool `json:"plugin_manager"`
	Calibration   bool `json:"calibration"`
	Help          bool `json:"help"`
}

// ToolbarState configures the main toolbar.
type ToolbarState struct {
	Visible         bool            `json:"visible"`
	Position        ToolbarPosition `json:"position"`
	Size            ToolbarSize     `json:"size"`
	AutoHide        bool            `json:"auto_hide"`
	AutoHideDelayMs int             `json:"auto_hide_delay_ms"`
	Buttons         ToolbarButtons  `json:"buttons"`
}

// NotificationSettings configures toast notifications.
type NotificationSettings struct {
	Enabled          bool                 `json:"enabled"`
	Position         NotificationPosition `json:"position"`
	DurationMs       int                  `json:"duration_ms"`
	MaxNotifications int                  `json:"max_notifications"`
	Sound            bool                 `json:"sound"`
	Animation        bool                 `json:"animation"`
}

func defaultPanelConfig() PanelConfig {
	return PanelConfig{
		Visible:   false,
		Docked:    true,
		Opacity:   0.95,
		Size:      [2]int{300, 400},
		Resizable: true,
		Movable:   true,
	}
}

// DefaultUIState returns UI state with documented defaults.
func DefaultUIState() UIState {
	return UIState{
		UIScale: 1.0,
		Windows: WindowPositions{
			Main:          WindowRect{X: 0, Y: 0, Width: 800, Height: 600},
			Settings:      WindowRect{X: 100, Y: 100, Width: 400, Height: 600},
			Debug:         WindowRect{X: 200, Y: 200, Width: 500, Height: 400},
			PluginManager: WindowRect{X: 150, Y: 150, Width: 600, Height: 500},
		},
		Panels: PanelConfigs{
			Settings:      defaultPanelConfig(),
			Debug:         defaultPanelConfig(),
			Performance:   defaultPanelConfig(),
			PluginManager: defaultPanelConfig(),
		},
		Toolbar: ToolbarState{
			Visible:         true,
			Position:        ToolbarBottom,
			Size:            ToolbarMedium,
			AutoHide:        false,
			AutoHideDelayMs: 3000,
			Buttons: ToolbarButtons{
				Settings:      true,
				Debug:         false,
				Performance:   false,
				PluginManager: true,
				Calibration:   true,
				Help:          true,
			},
		},
		Notifications: NotificationSettings{
			Enabled:          true,
			Position:         NotifyTopRight,
			DurationMs:       5000,
			MaxNotifications: 5,
			Sound:            true,
			Animation:        true,
		},
	}
}

func (r WindowRect) validate(ve *ValidationErrors, path string) {
	if r.Width <= 0 || r.Width > 10000 {
		ve.AddWithValue(path+".width", "window width out of range", r.Width, "1 to 10000")
	}
	if r.Height <= 0 || r.Height > 10000 {
		ve.AddWithValue(path+".height", "window height out of range", r.Height, "1 to 10000")
	}
}

func (p PanelConfig) validate(ve *ValidationErrors, path string) {
	inRange(ve, path+".opacity", p.Opacity, 0.0, 1.0)
	if p.Size[0] <= 0 || p.Size[1] <= 0 {
		ve.AddWithValue(path+".size", "panel size must be positive", p.Size, "positive width and height")
	}
}

func (u *UIState) validate(ve *ValidationErrors, path string) {
	inRange(ve, path+".ui_scale", u.UIScale, 0.5, 3.0)

	u.Windows.Main.validate(ve, path+".windows.main")
	u.Windows.Settings.validate(ve, path+".windows.settings")
	u.Windows.Debug.validate(ve, path+".windows.debug")
	u.Windows.PluginManager.validate(ve, path+".windows.plugin_manager")

	u.Panels.Settings.validate(ve, path+".panels.settings")
	u.Panels.Debug.validate(ve, path+".panels.debug")
	u.Panels.Performance.validate(ve, path+".panels.performance")
	u.Panels.PluginManager.validate(ve, path+".panels.plugin_manager")

	if !u.Toolbar.Position.valid() {
		ve.AddWithValue(path+".toolbar.position", "unknown toolbar position",
			u.Toolbar.Position, "top, bottom, left, right")
	}
	if !u.Toolbar.Size.valid() {
		ve.AddWithValue(path+".toolbar.size", "unknown toolbar size",
			u.Toolbar.Size, "small, medium, large")
	}
	inRangeInt(ve, path+".toolbar.auto_hide_delay_ms", u.Toolbar.AutoHideDelayMs, 100, 30000)

	if !u.Notifications.Position.valid() {
		ve.AddWithValue(path+".notifications.position", "unknown notification position",
			u.Notifications.Position, "top_left, top_right, bottom_left, bottom_right")
	}
	inRangeInt(ve, path+".notifications.duration_ms", u.Notifications.DurationMs, 1000, 60000)
	inRangeInt(ve, path+".notifications.max_notifications", u.Notifications.MaxNotifications, 1, 20)
}

// Validate checks every UI state bound.
func (u *UIState) Validate() error {
	ve := NewValidationErrors()
	u.validate(ve, "ui_state")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (u *UIState) Merge(other *UIState) {
	*u = *other
}

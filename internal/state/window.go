package state

// MonitorArrangement describes how virtual monitors are laid out.
type MonitorArrangement string

// Monitor arrangements.
const (
	ArrangeHorizontal MonitorArrangement = "horizontal"
	ArrangeVertical   MonitorArrangement = "vertical"
	ArrangeGrid       MonitorArrangement = "grid"
	ArrangeCustom     MonitorArrangement = "custom"
)

func (a MonitorArrangement) valid() bool {
	switch a {
	case ArrangeHorizontal, ArrangeVertical, ArrangeGrid, ArrangeCustom:
		return true
	}
	return false
}

// WindowLayout holds display output, virtual screen geometry, and window
// management behavior.
type WindowLayout struct {
	Display       DisplayConfig            `json:"display"`
	VirtualScreen VirtualScreenConfig      `json:"virtual_screen"`
	MultiMonitor  MultiMonitorConfig       `json:"multi_monitor"`
	Management    WindowManagementSettings `json:"management"`
}

// DisplayConfig describes the physical display output.
type DisplayConfig struct {
	Resolution  [2]int  `json:"resolution"`
	RefreshRate int     `json:"refresh_rate"`
	ColorDepth  int     `json:"color_depth"`
	HDR         bool    `json:"hdr"`
	Gamma       float64 `json:"gamma"`
	Brightness  float64 `json:"brightness"`
	Contrast    float64 `json:"contrast"`
}

// VirtualScreenConfig describes the projected virtual screen geometry.
type VirtualScreenConfig struct {
	ScreenSizeInches float64 `json:"screen_size_inches"`
	DistanceMeters   float64 `json:"distance_meters"`
	Curvature        float64 `json:"curvature"`
	TiltAngle        float64 `json:"tilt_angle"`
	Stereo3D         bool    `json:"stereo_3d"`
	IPDMm            float64 `json:"ipd_mm"`
	EyeReliefMm      float64 `json:"eye_relief_mm"`
}

// MultiMonitorConfig describes multi-monitor emulation.
type MultiMonitorConfig struct {
	Enabled           bool               `json:"enabled"`
	Arrangement       MonitorArrangement `json:"arrangement"`
	PrimaryMonitor    int                `json:"primary_monitor"`
	BezelCompensation bool               `json:"bezel_compensation"`
	BezelWidthPx      int                `json:"bezel_width_px"`
}

// WindowManagementSettings control window snapping and animation.
type WindowManagementSettings struct {
	AutoArrange         bool `json:"auto_arrange"`
	SnapToEdges         bool `json:"snap_to_edges"`
	SnapThresholdPx     int  `json:"snap_threshold_px"`
	Transparency        bool `json:"transparency"`
	AlwaysOnTop         bool `json:"always_on_top"`
	Animations          bool `json:"animations"`
	AnimationDurationMs int  `json:"animation_duration_ms"`
}

// DefaultWindowLayout returns window layout with documented defaults.
func DefaultWindowLayout() WindowLayout {
	return WindowLayout{
		Display: DisplayConfig{
			Resolution:  [2]int{1920, 1080},
			RefreshRate: 90,
			ColorDepth:  32,
			HDR:         false,
			Gamma:       2.2,
			Brightness:  1.0,
			Contrast:    1.0,
		},
		VirtualScreen: VirtualScreenConfig{
			ScreenSizeInches: 130.0,
			DistanceMeters:   5.0,
			Curvature:        0.1,
			TiltAngle:        0.0,
			Stereo3D:         true,
			IPDMm:            63.0,
			EyeReliefMm:      12.0,
		},
		MultiMonitor: MultiMonitorConfig{
			Enabled:           false,
			Arrangement:       ArrangeHorizontal,
			PrimaryMonitor:    0,
			BezelCompensation: true,
			BezelWidthPx:      10,
		},
		Management: WindowManagementSettings{
			AutoArrange:         true,
			SnapToEdges:         true,
			SnapThresholdPx:     20,
			Transparency:        true,
			AlwaysOnTop:         false,
			Animations:          true,
			AnimationDurationMs: 200,
		},
	}
}

func (w *WindowLayout) validate(ve *ValidationErrors, path string) {
	res := w.Display.Resolution
	if res[0] < 640 || res[0] > 7680 || res[1] < 480 || res[1] > 4320 {
		ve.AddWithValue(path+".display.resolution", "resolution out of range",
			res, "640x480 to 7680x4320")
	}
	inRangeInt(ve, path+".display.refresh_rate", w.Display.RefreshRate, 30, 240)
	oneOfInt(ve, path+".display.color_depth", w.Display.ColorDepth, 16, 24, 32)
	inRange(ve, path+".display.gamma", w.Display.Gamma, 1.0, 3.0)
	inRange(ve, path+".display.brightness", w.Display.Brightness, 0.1, 2.0)
	inRange(ve, path+".display.contrast", w.Display.Contrast, 0.1, 2.0)

	inRange(ve, path+".virtual_screen.screen_size_inches", w.VirtualScreen.ScreenSizeInches, 50.0, 300.0)
	inRange(ve, path+".virtual_screen.distance_meters", w.VirtualScreen.DistanceMeters, 1.0, 50.0)
	inRange(ve, path+".virtual_screen.curvature", w.VirtualScreen.Curvature, 0.0, 1.0)
	inRange(ve, path+".virtual_screen.tilt_angle", w.VirtualScreen.TiltAngle, -45.0, 45.0)
	inRange(ve, path+".virtual_screen.ipd_mm", w.VirtualScreen.IPDMm, 50.0, 80.0)
	inRange(ve, path+".virtual_screen.eye_relief_mm", w.VirtualScreen.EyeReliefMm, 5.0, 25.0)

	if !w.MultiMonitor.Arrangement.valid() {
		ve.AddWithValue(path+".multi_monitor.arrangement", "unknown monitor arrangement",
			w.MultiMonitor.Arrangement, "horizontal, vertical, grid, custom")
	}
	if w.MultiMonitor.PrimaryMonitor < 0 {
		ve.AddWithValue(path+".multi_monitor.primary_monitor", "monitor index must not be negative",
			w.MultiMonitor.PrimaryMonitor, "0 or greater")
	}
	if w.MultiMonitor.BezelWidthPx < 0 || w.MultiMonitor.BezelWidthPx > 100 {
		ve.AddWithValue(path+".multi_monitor.bezel_width_px", "bezel width out of range",
			w.MultiMonitor.BezelWidthPx, "0 to 100")
	}

	if w.Management.SnapThresholdPx < 0 || w.Management.SnapThresholdPx > 100 {
		ve.AddWithValue(path+".management.snap_threshold_px", "snap threshold out of range",
			w.Management.SnapThresholdPx, "0 to 100")
	}
	inRangeInt(ve, path+".management.animation_duration_ms", w.Management.AnimationDurationMs, 50, 2000)
}

// Validate checks every window layout bound.
func (w *WindowLayout) Validate() error {
	ve := NewValidationErrors()
	w.validate(ve, "window_layout")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (w *WindowLayout) Merge(other *WindowLayout) {
	*w = *other
}

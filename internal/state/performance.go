package state

// QualityLevel is a coarse rendering quality preset.
type QualityLevel string

// Quality presets.
const (
	QualityLow    QualityLevel = "low"
	QualityMedium QualityLevel = "medium"
	QualityHigh   QualityLevel = "high"
	QualityUltra  QualityLevel = "ultra"
)

func (q QualityLevel) valid() bool {
	switch q {
	case QualityLow, QualityMedium, QualityHigh, QualityUltra:
		return true
	}
	return false
}

// AntiAliasingType selects the anti-aliasing algorithm.
type AntiAliasingType string

// Anti-aliasing algorithms.
const (
	AANone AntiAliasingType = "none"
	AAFXAA AntiAliasingType = "fxaa"
	AAMSAA AntiAliasingType = "msaa"
	AATAA  AntiAliasingType = "taa"
)

func (a AntiAliasingType) valid() bool {
	switch a {
	case AANone, AAFXAA, AAMSAA, AATAA:
		return true
	}
	return false
}

// PerformanceSettings holds rendering quality and monitoring thresholds.
type PerformanceSettings struct {
	TargetFPS     int          `json:"target_fps"`
	VSync         bool         `json:"vsync"`
	RenderQuality QualityLevel `json:"render_quality"`
	Monitoring    bool         `json:"monitoring"`

	AntiAliasing AntiAliasingSettings  `json:"anti_aliasing"`
	Shadows      ShadowSettings        `json:"shadows"`
	Textures     TextureSettings       `json:"textures"`
	Thresholds   PerformanceThresholds `json:"thresholds"`
}

// AntiAliasingSettings configure edge smoothing.
type AntiAliasingSettings struct {
	Enabled     bool             `json:"enabled"`
	Type        AntiAliasingType `json:"type"`
	SampleCount int              `json:"sample_count"`
}

// ShadowSettings configure shadow rendering.
type ShadowSettings struct {
	Enabled       bool         `json:"enabled"`
	Quality       QualityLevel `json:"quality"`
	MapResolution int          `json:"map_resolution"`
	Distance      float64      `json:"distance"`
	CascadeCount  int          `json:"cascade_count"`
}

// TextureSettings configure texture quality and streaming.
type TextureSettings struct {
	Quality              QualityLevel `json:"quality"`
	AnisotropicFiltering int          `json:"anisotropic_filtering"`
	Streaming            bool         `json:"streaming"`
	CacheSizeMB          int          `json:"cache_size_mb"`
}

// PerformanceThresholds trigger monitoring warnings.
type PerformanceThresholds struct {
	LowFPSThreshold   int     `json:"low_fps_threshold"`
	HighFrameTimeMs   float64 `json:"high_frame_time_ms"`
	MemoryWarningMB   int     `json:"memory_warning_mb"`
	CPUWarningPercent float64 `json:"cpu_warning_percent"`
	GPUWarningPercent float64 `json:"gpu_warning_percent"`
}

// DefaultPerformanceSettings returns performance settings with documented defaults.
func DefaultPerformanceSettings() PerformanceSettings {
	return PerformanceSettings{
		TargetFPS:     90,
		VSync:         true,
		RenderQuality: QualityHigh,
		Monitoring:    true,
		AntiAliasing: AntiAliasingSettings{
			Enabled:     true,
			Type:        AAMSAA,
			SampleCount: 4,
		},
		Shadows: ShadowSettings{
			Enabled:       true,
			Quality:       QualityMedium,
			MapResolution: 2048,
			Distance:      100.0,
			CascadeCount:  4,
		},
		Textures: TextureSettings{
			Quality:              QualityHigh,
			AnisotropicFiltering: 8,
			Streaming:            true,
			CacheSizeMB:          512,
		},
		Thresholds: PerformanceThresholds{
			LowFPSThreshold:   60,
			HighFrameTimeMs:   16.67,
			MemoryWarningMB:   1024,
			CPUWarningPercent: 80.0,
			GPUWarningPercent: 90.0,
		},
	}
}

func (p *PerformanceSettings) validate(ve *ValidationErrors, path string) {
	inRangeInt(ve, path+".target_fps", p.TargetFPS, 30, 240)
	if !p.RenderQuality.valid() {
		ve.AddWithValue(path+".render_quality", "unknown quality level",
			p.RenderQuality, "low, medium, high, ultra")
	}

	if !p.AntiAliasing.Type.valid() {
		ve.AddWithValue(path+".anti_aliasing.type", "unknown anti-aliasing type",
			p.AntiAliasing.Type, "none, fxaa, msaa, taa")
	}
	powerOfTwoOrZero(ve, path+".anti_aliasing.sample_count", p.AntiAliasing.SampleCount, 16)

	if !p.Shadows.Quality.valid() {
		ve.AddWithValue(path+".shadows.quality", "unknown quality level",
			p.Shadows.Quality, "low, medium, high, ultra")
	}
	powerOfTwo(ve, path+".shadows.map_resolution", p.Shadows.MapResolution, 256, 8192)
	inRange(ve, path+".shadows.distance", p.Shadows.Distance, 1.0, 1000.0)
	inRangeInt(ve, path+".shadows.cascade_count", p.Shadows.CascadeCount, 1, 8)

	if !p.Textures.Quality.valid() {
		ve.AddWithValue(path+".textures.quality", "unknown quality level",
			p.Textures.Quality, "low, medium, high, ultra")
	}
	powerOfTwoOrZero(ve, path+".textures.anisotropic_filtering", p.Textures.AnisotropicFiltering, 16)
	inRangeInt(ve, path+".textures.cache_size_mb", p.Textures.CacheSizeMB, 64, 4096)

	inRangeInt(ve, path+".thresholds.low_fps_threshold", p.Thresholds.LowFPSThreshold, 10, 240)
	inRange(ve, path+".thresholds.high_frame_time_ms", p.Thresholds.HighFrameTimeMs, 1.0, 100.0)
	inRangeInt(ve, path+".thresholds.memory_warning_mb", p.Thresholds.MemoryWarningMB, 128, 16384)
	inRange(ve, path+".thresholds.cpu_warning_percent", p.Thresholds.CPUWarningPercent, 10.0, 100.0)
	inRange(ve, path+".thresholds.gpu_warning_percent", p.Thresholds.GPUWarningPercent, 10.0, 100.0)
}

// Validate checks every performance setting bound.
func (p *PerformanceSettings) Validate() error {
	ve := NewValidationErrors()
	p.validate(ve, "performance_settings")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (p *PerformanceSettings) Merge(other *PerformanceSettings) {
	*p = *other
}

package state

// AudioSettings holds output volume, device, spatial, and effects settings.
type AudioSettings struct {
	MasterVolume float64              `json:"master_volume"`
	Device       AudioDeviceConfig    `json:"device"`
	Spatial      SpatialAudioSettings `json:"spatial"`
	Effects      AudioEffectsSettings `json:"effects"`
}

// AudioDeviceConfig selects the audio devices and stream format.
type AudioDeviceConfig struct {
	OutputDevice string `json:"output_device"`
	InputDevice  string `json:"input_device"`
	SampleRate   int    `json:"sample_rate"`
	BufferSize   int    `json:"buffer_size"`
	BitDepth     int    `json:"bit_depth"`
}

// SpatialAudioSettings control 3D audio rendering.
type SpatialAudioSettings struct {
	Enabled             bool    `json:"enabled"`
	HRTF                bool    `json:"hrtf"`
	RoomSimulation      bool    `json:"room_simulation"`
	DistanceAttenuation float64 `json:"distance_attenuation"`
}

// AudioEffectsSettings control optional audio post-processing.
type AudioEffectsSettings struct {
	Reverb       bool    `json:"reverb"`
	ReverbAmount float64 `json:"reverb_amount"`
	Echo         bool    `json:"echo"`
	EchoDelayMs  int     `json:"echo_delay_ms"`
}

// DefaultAudioSettings returns audio settings with documented defaults.
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{
		MasterVolume: 0.7,
		Device: AudioDeviceConfig{
			OutputDevice: "default",
			InputDevice:  "default",
			SampleRate:   48000,
			BufferSize:   1024,
			BitDepth:     16,
		},
		Spatial: SpatialAudioSettings{
			Enabled:             true,
			HRTF:                true,
			RoomSimulation:      false,
			DistanceAttenuation: 1.0,
		},
		Effects: AudioEffectsSettings{
			Reverb:       false,
			ReverbAmount: 0.3,
			Echo:         false,
			EchoDelayMs:  200,
		},
	}
}

func (a *AudioSettings) validate(ve *ValidationErrors, path string) {
	inRange(ve, path+".master_volume", a.MasterVolume, 0.0, 1.0)

	oneOfInt(ve, path+".device.sample_rate", a.Device.SampleRate, 44100, 48000, 96000)
	powerOfTwo(ve, path+".device.buffer_size", a.Device.BufferSize, 64, 8192)
	oneOfInt(ve, path+".device.bit_depth", a.Device.BitDepth, 16, 24, 32)

	inRange(ve, path+".spatial.distance_attenuation", a.Spatial.DistanceAttenuation, 0.0, 2.0)

	inRange(ve, path+".effects.reverb_amount", a.Effects.ReverbAmount, 0.0, 1.0)
	inRangeInt(ve, path+".effects.echo_delay_ms", a.Effects.EchoDelayMs, 10, 2000)
}

// Validate checks every audio setting bound.
func (a *AudioSettings) Validate() error {
	ve := NewValidationErrors()
	a.validate(ve, "audio_settings")
	return ve.AsError()
}

// Merge replaces every field with the incoming value.
func (a *AudioSettings) Merge(other *AudioSettings) {
	*a = *other
}

package state

import "math"

// CalibrationState tracks the progress of sensor calibration.
type CalibrationState string

// Calibration lifecycle states.
const (
	CalibrationIdle        CalibrationState = "idle"
	CalibrationCalibrating CalibrationState = "calibrating"
	CalibrationCalibrated  CalibrationState = "calibrated"
	CalibrationFailed      CalibrationState = "failed"
)

func (s CalibrationState) valid() bool {
	switch s {
	case CalibrationIdle, CalibrationCalibrating, CalibrationCalibrated, CalibrationFailed:
		return true
	}
	return false
}

// CalibrationData holds IMU sensor bias estimates and calibration quality.
//
// Merging carries a freshness and quality gate: incoming data replaces the
// receiver only when it is both newer and of equal-or-better quality.
type CalibrationData struct {
	State              CalibrationState `json:"state"`
	AccelBias          [3]float64       `json:"accel_bias"`
	GyroBias           [3]float64       `json:"gyro_bias"`
	MagBias            [3]float64       `json:"mag_bias"`
	CalibratedAt       int64            `json:"calibrated_at"`
	SampleCount        int              `json:"sample_count"`
	QualityScore       float64          `json:"quality_score"`
	TemperatureCelsius float64          `json:"temperature_celsius"`
}

// DefaultCalibrationData returns an uncalibrated sensor state.
func DefaultCalibrationData() CalibrationData {
	return CalibrationData{
		State:              CalibrationIdle,
		TemperatureCelsius: 20.0,
	}
}

func validateBias(ve *ValidationErrors, path string, bias [3]float64, limit float64) {
	for _, b := range bias {
		if math.Abs(b) > limit {
			ve.AddWithValue(path, "bias component out of range", b,
				"magnitude at most "+formatFloat(limit))
			return
		}
	}
}

func (c *CalibrationData) validate(ve *ValidationErrors, path string) {
	if !c.State.valid() {
		ve.AddWithValue(path+".state", "unknown calibration state", c.State,
			"idle, calibrating, calibrated, failed")
	}
	validateBias(ve, path+".accel_bias", c.AccelBias, 10.0)
	validateBias(ve, path+".gyro_bias", c.GyroBias, 1000.0)
	validateBias(ve, path+".mag_bias", c.MagBias, 1000.0)
	inRange(ve, path+".quality_score", c.QualityScore, 0.0, 1.0)
	inRange(ve, path+".temperature_celsius", c.TemperatureCelsius, -40.0, 85.0)
	if c.CalibratedAt < 0 {
		ve.AddWithValue(path+".calibrated_at", "timestamp must not be negative",
			c.CalibratedAt, "unix seconds")
	}
}

// Validate checks every calibration bound.
func (c *CalibrationData) Validate() error {
	ve := NewValidationErrors()
	c.validate(ve, "calibration_data")
	return ve.AsError()
}

// Merge replaces the receiver only when the incoming data is newer and its
// quality score has not regressed. Otherwise the receiver is untouched.
func (c *CalibrationData) Merge(other *CalibrationData) {
	if other.CalibratedAt > c.CalibratedAt && other.QualityScore >= c.QualityScore {
		*c = *other
	}
}

// internal/fix/ranges.go
package fix

import (
	"periph.io/x/conn/v3/physic"

	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// fixCore runs the scalar rules in their fixed order.
func (f *fixer) fixCore() {
	f.fixSoftErrorResponse()
	f.fixBaudRate()
	f.fixDeviceNumbers()
	f.fixCommandTimeout()
	f.fixSerialResponses()
	f.fixVIN()
	f.fixInputScaling()
	f.fixOutputScaling()
	f.fixEncoderScaling()
	f.fixCurrentLimits()
	f.fixHoming()
	f.fixSpeeds()
	f.fixAcceleration()
}

// ------------------------------------------------------------
// SERIAL
// ------------------------------------------------------------

func (f *fixer) fixSoftErrorResponse() {
	s := f.s
	if s.SoftErrorResponse == settings.SoftErrorGoToPosition && s.ControlMode.IsSpeed() {
		s.SoftErrorResponse = settings.SoftErrorDecelToHold
		f.warn("soft_error_response", msgGoToPositionInSpeedMode)
	}
}

func (f *fixer) fixBaudRate() {
	s := f.s
	if s.SerialBaudRate < variant.MinBaudRate {
		s.SerialBaudRate = variant.MinBaudRate
		f.warn("serial_baud_rate", msgBaudTooLow, s.SerialBaudRate)
	}
	if s.SerialBaudRate > variant.MaxBaudRate {
		s.SerialBaudRate = variant.MaxBaudRate
		f.warn("serial_baud_rate", msgBaudTooHigh, s.SerialBaudRate)
	}
	s.SerialBaudRate = variant.AchievableBaudRate(s.SerialBaudRate)
}

func (f *fixer) fixDeviceNumbers() {
	s := f.s

	if s.Serial14BitDeviceNumber && f.olderThan(variant.FirmwareSerialExtensions) {
		s.Serial14BitDeviceNumber = false
		f.warn("serial_14bit_device_number", msgNo14Bit)
	}
	if s.SerialEnableAltDeviceNumber && f.olderThan(variant.FirmwareSerialExtensions) {
		s.SerialEnableAltDeviceNumber = false
		f.warn("serial_enable_alt_device_number", msgNoAltNumber)
	}

	mask := variant.DeviceNumberMask7Bit
	if s.Serial14BitDeviceNumber {
		mask = variant.DeviceNumberMask14Bit
	}

	if s.SerialDeviceNumber > mask {
		s.SerialDeviceNumber &= mask
		f.warn("serial_device_number", msgDeviceNumberHigh, mask, s.SerialDeviceNumber)
	}
	if s.SerialAltDeviceNumber > mask {
		s.SerialAltDeviceNumber &= mask
		f.warn("serial_alt_device_number", msgAltDeviceNumberHigh, mask, s.SerialAltDeviceNumber)
	}
}

func (f *fixer) fixCommandTimeout() {
	s := f.s
	if s.CommandTimeout > variant.MaxCommandTimeout {
		s.CommandTimeout = variant.MaxCommandTimeout
		f.warn("command_timeout", msgCommandTimeoutHigh, s.CommandTimeout)
	}
}

func (f *fixer) fixSerialResponses() {
	s := f.s
	if s.SerialCRCForResponses && f.olderThan(variant.FirmwareSerialExtensions) {
		s.SerialCRCForResponses = false
		f.warn("serial_crc_for_responses", msgNoResponseCRC)
	}
	if s.Serial7BitResponses && f.olderThan(variant.FirmwareSerialExtensions) {
		s.Serial7BitResponses = false
		f.warn("serial_7bit_responses", msgNo7BitResponses)
	}
}

// ------------------------------------------------------------
// SUPPLY
// ------------------------------------------------------------

func (f *fixer) fixVIN() {
	s := f.s

	// keeps the +500 steps below inside uint16
	if s.LowVINShutoffVoltage > variant.MaxLowVINShutoff {
		s.LowVINShutoffVoltage = variant.MaxLowVINShutoff
		f.warn("low_vin_shutoff_voltage", msgLowVINShutoff, s.LowVINShutoffVoltage)
	}
	// keeps high_vin_shutoff_voltage inside uint16 once it follows startup
	if s.LowVINStartupVoltage > variant.MaxLowVINStartup {
		s.LowVINStartupVoltage = variant.MaxLowVINStartup
		f.warn("low_vin_startup_voltage", msgLowVINStartup, s.LowVINStartupVoltage)
	}
	if s.LowVINStartupVoltage < s.LowVINShutoffVoltage {
		s.LowVINStartupVoltage = s.LowVINShutoffVoltage + variant.VINHysteresis
		f.warn("low_vin_startup_voltage", msgLowVINStartup, s.LowVINStartupVoltage)
	}
	if s.HighVINShutoffVoltage < s.LowVINStartupVoltage {
		s.HighVINShutoffVoltage = s.LowVINStartupVoltage + variant.VINHysteresis
		f.warn("high_vin_shutoff_voltage", msgHighVINShutoff, s.HighVINShutoffVoltage)
	}

	if s.VINCalibration < variant.MinVINCalibration {
		s.VINCalibration = variant.MinVINCalibration
		f.warn("vin_calibration", msgVINCalibrationLow, s.VINCalibration)
	}
	if s.VINCalibration > variant.MaxVINCalibration {
		s.VINCalibration = variant.MaxVINCalibration
		f.warn("vin_calibration", msgVINCalibrationHigh, s.VINCalibration)
	}
}

// ------------------------------------------------------------
// INPUT / OUTPUT SCALING
// ------------------------------------------------------------

func (f *fixer) fixInputScaling() {
	s := f.s

	if s.InputMin > s.InputNeutralMin ||
		s.InputNeutralMin > s.InputNeutralMax ||
		s.InputNeutralMax > s.InputMax {
		s.InputMin = variant.DefaultInputMin
		s.InputNeutralMin = variant.DefaultInputNeutralMin
		s.InputNeutralMax = variant.DefaultInputNeutralMax
		s.InputMax = variant.DefaultInputMax
		f.warn("input_scaling", msgInputScalingOrder)
	}

	breakpoints := []struct {
		key   string
		label string
		value *uint16
	}{
		{"input_min", "minimum", &s.InputMin},
		{"input_neutral_min", "neutral min", &s.InputNeutralMin},
		{"input_neutral_max", "neutral max", &s.InputNeutralMax},
		{"input_max", "maximum", &s.InputMax},
	}
	for _, bp := range breakpoints {
		if *bp.value > variant.MaxInputScaling {
			*bp.value = variant.MaxInputScaling
			f.warn(bp.key, msgInputTooHigh, bp.label, *bp.value)
		}
	}
}

func (f *fixer) fixOutputScaling() {
	s := f.s
	if s.OutputMin > 0 {
		s.OutputMin = 0
		f.warn("output_min", msgOutputMinAboveZero)
	}
	if s.OutputMax < 0 {
		s.OutputMax = 0
		f.warn("output_max", msgOutputMaxBelowZero)
	}
}

func (f *fixer) fixEncoderScaling() {
	f.fixScaler("encoder_prescaler", "prescaler", &f.s.EncoderPrescaler, variant.MaxEncoderPrescaler)
	f.fixScaler("encoder_postscaler", "postscaler", &f.s.EncoderPostscaler, variant.MaxEncoderPostscaler)
}

func (f *fixer) fixScaler(key, label string, value *uint32, max uint32) {
	if *value > max {
		*value = max
		f.warn(key, msgScalerTooHigh, label, *value)
	}
	if *value < 1 {
		*value = 1
		f.warn(key, msgScalerZero, label)
	}
}

// ------------------------------------------------------------
// CURRENT
// ------------------------------------------------------------

func (f *fixer) fixCurrentLimits() {
	s := f.s

	ceiling := variant.MilliAmps(f.v.CurrentCeiling(s.HPEnableUnrestrictedCurrentLimits))
	if s.CurrentLimit > ceiling {
		s.CurrentLimit = ceiling
		f.warn("current_limit", msgCurrentTooHigh, s.CurrentLimit)
	}
	s.CurrentLimit = f.achievable(s.CurrentLimit)

	duringError := s.CurrentLimitDuringError
	if int64(duringError) > int64(s.CurrentLimit) {
		duringError = settings.CurrentLimitSameAsDefault
		f.warn("current_limit_during_error", msgErrorCurrentAboveLimit)
	}
	if duringError < settings.CurrentLimitSameAsDefault {
		duringError = settings.CurrentLimitSameAsDefault
		f.warn("current_limit_during_error", msgErrorCurrentBadNegative)
	}
	if duringError >= 0 {
		duringError = int32(f.achievable(uint32(duringError)))
	}
	s.CurrentLimitDuringError = duringError
}

func (f *fixer) achievable(milliamps uint32) uint32 {
	return variant.MilliAmps(f.v.AchievableCurrent(variant.FromMilliAmps(milliamps)))
}

// ------------------------------------------------------------
// MOTION
// ------------------------------------------------------------

func (f *fixer) fixHoming() {
	s := f.s
	if s.AutoHoming && f.olderThan(variant.FirmwareHoming) {
		s.AutoHoming = false
		f.warn("auto_homing", msgNoAutoHoming)
	}
}

func (f *fixer) fixSpeeds() {
	s := f.s

	if s.MaxSpeed > variant.MaxSpeed {
		s.MaxSpeed = variant.MaxSpeed
		khz := variant.SpeedFrequency(s.MaxSpeed) / physic.KiloHertz
		f.warn("max_speed", msgMaxSpeedHigh, s.MaxSpeed, int64(khz))
	}

	if s.StartingSpeed > s.MaxSpeed {
		s.StartingSpeed = s.MaxSpeed
		f.warn("starting_speed", msgStartingSpeedHigh, s.StartingSpeed)
	}

	// homing speeds may exceed max_speed
	if s.HomingSpeedTowards > variant.MaxSpeed {
		s.HomingSpeedTowards = variant.MaxSpeed
		f.warn("homing_speed_towards", msgHomingSpeedTooHigh, "towards", s.HomingSpeedTowards)
	}
	if s.HomingSpeedAway > variant.MaxSpeed {
		s.HomingSpeedAway = variant.MaxSpeed
		f.warn("homing_speed_away", msgHomingSpeedTooHigh, "away", s.HomingSpeedAway)
	}
}

func (f *fixer) fixAcceleration() {
	s := f.s

	if s.MaxAccel > variant.MaxAccel {
		s.MaxAccel = variant.MaxAccel
		f.warn("max_accel", msgAccelTooHigh, "acceleration", s.MaxAccel)
	}
	if s.MaxAccel < variant.MinAccel {
		s.MaxAccel = variant.MinAccel
		f.warn("max_accel", msgAccelTooLow, "acceleration", s.MaxAccel)
	}

	// 0 means "same as max_accel"
	if s.MaxDecel > variant.MaxAccel {
		s.MaxDecel = variant.MaxAccel
		f.warn("max_decel", msgAccelTooHigh, "deceleration", s.MaxDecel)
	}
	if s.MaxDecel != 0 && s.MaxDecel < variant.MinAccel {
		s.MaxDecel = variant.MinAccel
		f.warn("max_decel", msgAccelTooLow, "deceleration", s.MaxDecel)
	}
}

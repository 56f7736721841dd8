// internal/fix/messages.go
package fix

import (
	"github.com/tamzrod/tic-settings/internal/settings"
)

// Warning texts. Every message ends with a newline; the presentation layer
// adds any "Warning: " prefix.

const upgradeHint = "  See " + settings.DocumentationURL + " for firmware upgrade instructions.\n"

// ---- enums ----

const (
	msgControlModeInvalid   = "The control mode was invalid so it will be changed to Serial/I2C/USB.\n"
	msgSoftErrorInvalid     = "The soft error response was invalid so it will be changed to \"Decelerate to hold\".\n"
	msgScalingDegreeInvalid = "The scaling degree was invalid so it will be changed to linear.\n"
	msgStepModeInvalid      = "The step mode is invalid so it will be changed to 1 (full step).\n"
	msgDecayModeInvalid     = "The decay mode is invalid so it will be changed to the default.\n"

	msgAGCModeInvalid        = "The AGC mode was invalid so it will be changed to on.\n"
	msgAGCBottomLimitInvalid = "The AGC bottom current limit was invalid so it will be changed to 75%%.\n"
	msgAGCBoostStepsInvalid  = "The AGC current boost steps setting was invalid so it will be changed to 5.\n"
	msgAGCFreqLimitInvalid   = "The AGC frequency limit was invalid so it will be changed to off.\n"

	msgHPDecmodInvalid = "The decay mode was invalid so it will be changed to \"Slow / mixed\".\n"

	msgPinFuncInvalid = "The %s pin function was invalid so it will be changed to the default.\n"
)

// ---- core ----

const (
	msgGoToPositionInSpeedMode = "The soft error response cannot be \"Go to position\" in a " +
		"speed control mode, so it will be changed to \"Decelerate to hold\".\n"

	msgBaudTooLow  = "The serial baud rate is too low so it will be changed to %d.\n"
	msgBaudTooHigh = "The serial baud rate is too high so it will be changed to %d.\n"

	msgNo14Bit = "The firmware version on your device does not support " +
		"14-bit device numbers, so that option will be disabled." + upgradeHint
	msgNoAltNumber = "The firmware version on your device does not support " +
		"the alternative device number, so it will be disabled." + upgradeHint
	msgNoResponseCRC = "The firmware version on your device does not support " +
		"CRC for serial responses, so that option will be disabled." + upgradeHint
	msgNo7BitResponses = "The firmware version on your device does not support " +
		"7-bit serial responses, so that option will be disabled." + upgradeHint

	msgDeviceNumberHigh    = "The device number is higher than %d so it will be changed to %d.\n"
	msgAltDeviceNumberHigh = "The alternative device number is higher than %d so it will be changed to %d.\n"

	msgCommandTimeoutHigh = "The command timeout is too high so it will be changed to %d ms.\n"

	msgLowVINShutoff  = "The low VIN shutoff voltage will be changed to %d mV.\n"
	msgLowVINStartup  = "The low VIN startup voltage will be changed to %d mV.\n"
	msgHighVINShutoff = "The high VIN shutoff voltage will be changed to %d mV.\n"

	msgVINCalibrationLow  = "The VIN calibration is too low so it will be raised to %d.\n"
	msgVINCalibrationHigh = "The VIN calibration is too high so it will be lowered to %d.\n"

	msgInputScalingOrder = "The input scaling values are out of order " +
		"so they will be reset to their default values.\n"
	msgInputTooHigh = "The input %s is too high so it will be lowered to %d.\n"

	msgOutputMinAboveZero = "The scaling output minimum is above 0 so it will be lowered to 0.\n"
	msgOutputMaxBelowZero = "The scaling output maximum is below 0 so it will be raised to 0.\n"

	msgScalerTooHigh = "The encoder %s is too high so it will be lowered to %d.\n"
	msgScalerZero    = "The encoder %s is zero so it will be changed to 1.\n"

	msgCurrentTooHigh          = "The current limit is too high so it will be lowered to %d mA.\n"
	msgErrorCurrentAboveLimit  = "The current limit during error is higher than the default current limit so it will be changed to be the same.\n"
	msgErrorCurrentBadNegative = "The current limit during error is an invalid negative number so it will be changed to be the same as the default current limit.\n"

	msgNoAutoHoming = "The firmware version on your device does not support " +
		"auto homing (or homing in general), so it will be disabled.\n"

	msgMaxSpeedHigh       = "The maximum speed is too high so it will be lowered to %d (%d kHz).\n"
	msgStartingSpeedHigh  = "The starting speed is greater than the maximum speed so it will be lowered to %d.\n"
	msgHomingSpeedTooHigh = "The homing speed %s is too high so it will be lowered to %d.\n"

	msgAccelTooHigh = "The maximum %s is too high so it will be lowered to %d.\n"
	msgAccelTooLow  = "The maximum %s is too low so it will be raised to %d.\n"
)

// ---- pins ----

const (
	msgAnalogPinClaim  = "The SDA pin must be used as an analog input so its function will be changed to the default.\n"
	msgRCPinClaim      = "The RC pin must be used as an RC input so its function will be changed to the default.\n"
	msgEncoderPinClaim = "The %s pin must be used as an encoder input so its function will be changed to the default.\n"

	msgReservedPin = "On the %s, the %s pin is always used for %s and cannot be used for anything else, " +
		"so its function will be changed to the default.\n"

	msgPinCannot = "The %s pin cannot %s so its function will be changed to the default.\n"

	msgNoLimitSwitches = "The firmware version on your device does not support " +
		"limit switches, so any pin configured as a limit switch " +
		"will be changed to its default function." + upgradeHint

	msgPinNotAnalog = "The %s pin cannot be an analog input so that feature will be disabled.\n"

	msgSCLMustFollowSDA = "The SCL pin must be used for I2C if the SDA pin is, " +
		"so the SCL and SDA pin functions will be changed to the default.\n"
	msgSDAMustFollowSCL = "The SDA pin must be used for I2C if the SCL pin is, " +
		"so the SCL and SDA pin functions will be changed to the default.\n"
)

// ---- 36v4 ----

const msgToffRaised = "The fixed off time will be increased to %d ns, " +
	"which is the minimum valid value given other settings.\n"

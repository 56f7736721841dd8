// internal/settings/settings.go
package settings

import (
	"github.com/tamzrod/tic-settings/internal/variant"
)

// ---- CONTROL ----

// ControlMode selects the input that commands the motor.
type ControlMode uint8

const (
	ControlModeSerial          ControlMode = 0
	ControlModeStepDir         ControlMode = 1
	ControlModeRCPosition      ControlMode = 2
	ControlModeRCSpeed         ControlMode = 3
	ControlModeAnalogPosition  ControlMode = 4
	ControlModeAnalogSpeed     ControlMode = 5
	ControlModeEncoderPosition ControlMode = 6
	ControlModeEncoderSpeed    ControlMode = 7
)

var ControlModeNames = variant.NameTable{
	{Name: "serial", Code: uint8(ControlModeSerial)},
	{Name: "step_dir", Code: uint8(ControlModeStepDir)},
	{Name: "rc_position", Code: uint8(ControlModeRCPosition)},
	{Name: "rc_speed", Code: uint8(ControlModeRCSpeed)},
	{Name: "analog_position", Code: uint8(ControlModeAnalogPosition)},
	{Name: "analog_speed", Code: uint8(ControlModeAnalogSpeed)},
	{Name: "encoder_position", Code: uint8(ControlModeEncoderPosition)},
	{Name: "encoder_speed", Code: uint8(ControlModeEncoderSpeed)},
}

// IsSpeed reports whether the input sets a target velocity.
func (m ControlMode) IsSpeed() bool {
	switch m {
	case ControlModeRCSpeed, ControlModeAnalogSpeed, ControlModeEncoderSpeed:
		return true
	}
	return false
}

// IsAnalog reports whether the input is read from the analog pins.
func (m ControlMode) IsAnalog() bool {
	return m == ControlModeAnalogPosition || m == ControlModeAnalogSpeed
}

// IsRC reports whether the input is an RC pulse.
func (m ControlMode) IsRC() bool {
	return m == ControlModeRCPosition || m == ControlModeRCSpeed
}

// IsEncoder reports whether the input is a quadrature encoder.
func (m ControlMode) IsEncoder() bool {
	return m == ControlModeEncoderPosition || m == ControlModeEncoderSpeed
}

// SoftErrorResponse is what the controller does on a soft error.
type SoftErrorResponse uint8

const (
	SoftErrorDeenergize   SoftErrorResponse = 0
	SoftErrorHaltAndHold  SoftErrorResponse = 1
	SoftErrorDecelToHold  SoftErrorResponse = 2
	SoftErrorGoToPosition SoftErrorResponse = 3
)

var SoftErrorResponseNames = variant.NameTable{
	{Name: "deenergize", Code: uint8(SoftErrorDeenergize)},
	{Name: "halt_and_hold", Code: uint8(SoftErrorHaltAndHold)},
	{Name: "decel_to_hold", Code: uint8(SoftErrorDecelToHold)},
	{Name: "go_to_position", Code: uint8(SoftErrorGoToPosition)},
}

// ScalingDegree is the input scaling curve.
type ScalingDegree uint8

const (
	ScalingLinear    ScalingDegree = 0
	ScalingQuadratic ScalingDegree = 1
	ScalingCubic     ScalingDegree = 2
)

var ScalingDegreeNames = variant.NameTable{
	{Name: "linear", Code: uint8(ScalingLinear)},
	{Name: "quadratic", Code: uint8(ScalingQuadratic)},
	{Name: "cubic", Code: uint8(ScalingCubic)},
}

// ---- AGC (T249) ----

type AGCMode uint8

const (
	AGCModeOff       AGCMode = 0
	AGCModeOn        AGCMode = 1
	AGCModeActiveOff AGCMode = 2
)

var AGCModeNames = variant.NameTable{
	{Name: "off", Code: uint8(AGCModeOff)},
	{Name: "on", Code: uint8(AGCModeOn)},
	{Name: "active_off", Code: uint8(AGCModeActiveOff)},
	{Name: "false", Code: uint8(AGCModeOff)},
	{Name: "true", Code: uint8(AGCModeOn)},
}

// AGCBottomCurrentLimit is a percentage code, 45% (0) to 80% (7).
type AGCBottomCurrentLimit uint8

const (
	AGCBottomCurrentLimit75 AGCBottomCurrentLimit = 6
	AGCBottomCurrentLimit80 AGCBottomCurrentLimit = 7
)

var AGCBottomCurrentLimitNames = variant.NameTable{
	{Name: "45", Code: 0},
	{Name: "50", Code: 1},
	{Name: "55", Code: 2},
	{Name: "60", Code: 3},
	{Name: "65", Code: 4},
	{Name: "70", Code: 5},
	{Name: "75", Code: 6},
	{Name: "80", Code: 7},
}

type AGCCurrentBoostSteps uint8

const AGCCurrentBoostSteps5 AGCCurrentBoostSteps = 0

var AGCCurrentBoostStepsNames = variant.NameTable{
	{Name: "5", Code: 0},
	{Name: "7", Code: 1},
	{Name: "9", Code: 2},
	{Name: "11", Code: 3},
}

type AGCFrequencyLimit uint8

const AGCFrequencyLimitOff AGCFrequencyLimit = 0

var AGCFrequencyLimitNames = variant.NameTable{
	{Name: "off", Code: 0},
	{Name: "225", Code: 1},
	{Name: "450", Code: 2},
	{Name: "675", Code: 3},
	{Name: "false", Code: 0},
}

// ---- HP DRIVER (36v4) ----

type HPDecmod uint8

const (
	HPDecmodSlow          HPDecmod = 0
	HPDecmodSlowMixed     HPDecmod = 1
	HPDecmodFast          HPDecmod = 2
	HPDecmodMixed         HPDecmod = 3
	HPDecmodSlowAutoMixed HPDecmod = 4
	HPDecmodAutoMixed     HPDecmod = 5
)

var HPDecmodNames = variant.NameTable{
	{Name: "slow", Code: uint8(HPDecmodSlow)},
	{Name: "slow_mixed", Code: uint8(HPDecmodSlowMixed)},
	{Name: "fast", Code: uint8(HPDecmodFast)},
	{Name: "mixed", Code: uint8(HPDecmodMixed)},
	{Name: "slow_auto_mixed", Code: uint8(HPDecmodSlowAutoMixed)},
	{Name: "auto_mixed", Code: uint8(HPDecmodAutoMixed)},
}

var boolNames = variant.NameTable{
	{Name: "false", Code: 0},
	{Name: "true", Code: 1},
}

// ---- PINS ----

// PinConfig is the function of one pin plus its modifiers.
type PinConfig struct {
	Func       variant.PinFunc
	Pullup     bool
	Analog     bool
	ActiveHigh bool
}

// CurrentLimitSameAsDefault is the current_limit_during_error sentinel.
const CurrentLimitSameAsDefault int32 = -1

// Settings is a complete settings record for one controller.
//
// Currents are in mA, voltages in mV, timeouts in ms and speeds in
// microsteps per 10000 s. Hidden settings are carried and fixed but never
// written to a settings file.
type Settings struct {
	Product variant.Product

	// FirmwareVersion is BCD (0x0106 = 1.06). 0 means unknown, which
	// disables the firmware compatibility rules.
	FirmwareVersion uint16

	ControlMode          ControlMode
	NeverSleep           bool
	DisableSafeStart     bool
	IgnoreErrLineHigh    bool
	AutoClearDriverError bool
	SoftErrorResponse    SoftErrorResponse
	SoftErrorPosition    int32

	// ---- serial ----
	SerialBaudRate              uint32
	SerialDeviceNumber          uint16
	SerialAltDeviceNumber       uint16
	SerialEnableAltDeviceNumber bool
	Serial14BitDeviceNumber     bool
	CommandTimeout              uint16
	SerialCRCForCommands        bool
	SerialCRCForResponses       bool
	Serial7BitResponses         bool
	SerialResponseDelay         uint8

	// ---- supply (hidden except calibration) ----
	LowVINTimeout         uint16
	LowVINShutoffVoltage  uint16
	LowVINStartupVoltage  uint16
	HighVINShutoffVoltage uint16
	VINCalibration        int16

	// ---- RC (hidden) ----
	RCMaxPulsePeriod        uint16
	RCBadSignalTimeout      uint16
	RCConsecutiveGoodPulses uint8

	// ---- input ----
	InputAveragingEnabled bool
	InputHysteresis       uint16
	InputErrorMin         uint16 // hidden
	InputErrorMax         uint16 // hidden
	InputScalingDegree    ScalingDegree
	InputInvert           bool
	InputMin              uint16
	InputNeutralMin       uint16
	InputNeutralMax       uint16
	InputMax              uint16
	OutputMin             int32
	OutputMax             int32

	// ---- encoder ----
	EncoderPrescaler  uint32
	EncoderPostscaler uint32
	EncoderUnlimited  bool

	Pins [variant.PinCount]PinConfig

	// ---- motor ----
	InvertMotorDirection    bool
	MaxSpeed                uint32
	StartingSpeed           uint32
	MaxAccel                uint32
	MaxDecel                uint32 // 0 = same as MaxAccel
	StepMode                variant.StepMode
	CurrentLimit            uint32
	CurrentLimitDuringError int32
	DecayMode               variant.DecayMode

	// ---- homing ----
	AutoHoming         bool
	AutoHomingForward  bool
	HomingSpeedTowards uint32
	HomingSpeedAway    uint32

	// ---- T249 ----
	AGCMode               AGCMode
	AGCBottomCurrentLimit AGCBottomCurrentLimit
	AGCCurrentBoostSteps  AGCCurrentBoostSteps
	AGCFrequencyLimit     AGCFrequencyLimit

	// ---- 36v4 ----
	HPEnableUnrestrictedCurrentLimits bool
	HPToff                            uint8
	HPTblank                          uint8
	HPAbt                             bool
	HPTdecay                          uint8
	HPDecmod                          HPDecmod
}

// Pin returns the configuration of pin.
func (s *Settings) Pin(pin variant.Pin) PinConfig {
	return s.Pins[pin]
}

// Variant returns the variant record for the settings' product.
func (s *Settings) Variant() (*variant.Variant, bool) {
	return variant.Lookup(s.Product)
}

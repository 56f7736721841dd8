// internal/settings/partial.go
package settings

import (
	"github.com/tamzrod/tic-settings/internal/variant"
)

// Partial is a decoded settings file before defaults are applied.
// A nil field was absent from the file. Product is mandatory.
type Partial struct {
	Product variant.Product

	ControlMode          *ControlMode
	NeverSleep           *bool
	DisableSafeStart     *bool
	IgnoreErrLineHigh    *bool
	AutoClearDriverError *bool
	SoftErrorResponse    *SoftErrorResponse
	SoftErrorPosition    *int32

	SerialBaudRate              *uint32
	SerialDeviceNumber          *uint16
	SerialAltDeviceNumber       *uint16
	SerialEnableAltDeviceNumber *bool
	Serial14BitDeviceNumber     *bool
	CommandTimeout              *uint16
	SerialCRCForCommands        *bool
	SerialCRCForResponses       *bool
	Serial7BitResponses         *bool
	SerialResponseDelay         *uint8

	LowVINTimeout         *uint16
	LowVINShutoffVoltage  *uint16
	LowVINStartupVoltage  *uint16
	HighVINShutoffVoltage *uint16
	VINCalibration        *int16

	RCMaxPulsePeriod        *uint16
	RCBadSignalTimeout      *uint16
	RCConsecutiveGoodPulses *uint8

	InputAveragingEnabled *bool
	InputHysteresis       *uint16
	InputErrorMin         *uint16
	InputErrorMax         *uint16
	InputScalingDegree    *ScalingDegree
	InputInvert           *bool
	InputMin              *uint16
	InputNeutralMin       *uint16
	InputNeutralMax       *uint16
	InputMax              *uint16
	OutputMin             *int32
	OutputMax             *int32

	EncoderPrescaler  *uint32
	EncoderPostscaler *uint32
	EncoderUnlimited  *bool

	Pins [variant.PinCount]*PinConfig

	InvertMotorDirection    *bool
	MaxSpeed                *uint32
	StartingSpeed           *uint32
	MaxAccel                *uint32
	MaxDecel                *uint32
	StepMode                *variant.StepMode
	CurrentLimit            *uint32
	CurrentLimitDuringError *int32
	DecayMode               *variant.DecayMode

	AutoHoming         *bool
	AutoHomingForward  *bool
	HomingSpeedTowards *uint32
	HomingSpeedAway    *uint32

	AGCMode               *AGCMode
	AGCBottomCurrentLimit *AGCBottomCurrentLimit
	AGCCurrentBoostSteps  *AGCCurrentBoostSteps
	AGCFrequencyLimit     *AGCFrequencyLimit

	HPEnableUnrestrictedCurrentLimits *bool
	HPToff                            *uint8
	HPTblank                          *uint8
	HPAbt                             *bool
	HPTdecay                          *uint8
	HPDecmod                          *HPDecmod
}

// apply overwrites dst when v is present.
func apply[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Resolve merges the present fields onto the product defaults.
func (p *Partial) Resolve() Settings {
	s := Defaults(p.Product)

	apply(&s.ControlMode, p.ControlMode)
	apply(&s.NeverSleep, p.NeverSleep)
	apply(&s.DisableSafeStart, p.DisableSafeStart)
	apply(&s.IgnoreErrLineHigh, p.IgnoreErrLineHigh)
	apply(&s.AutoClearDriverError, p.AutoClearDriverError)
	apply(&s.SoftErrorResponse, p.SoftErrorResponse)
	apply(&s.SoftErrorPosition, p.SoftErrorPosition)

	apply(&s.SerialBaudRate, p.SerialBaudRate)
	apply(&s.SerialDeviceNumber, p.SerialDeviceNumber)
	apply(&s.SerialAltDeviceNumber, p.SerialAltDeviceNumber)
	apply(&s.SerialEnableAltDeviceNumber, p.SerialEnableAltDeviceNumber)
	apply(&s.Serial14BitDeviceNumber, p.Serial14BitDeviceNumber)
	apply(&s.CommandTimeout, p.CommandTimeout)
	apply(&s.SerialCRCForCommands, p.SerialCRCForCommands)
	apply(&s.SerialCRCForResponses, p.SerialCRCForResponses)
	apply(&s.Serial7BitResponses, p.Serial7BitResponses)
	apply(&s.SerialResponseDelay, p.SerialResponseDelay)

	apply(&s.LowVINTimeout, p.LowVINTimeout)
	apply(&s.LowVINShutoffVoltage, p.LowVINShutoffVoltage)
	apply(&s.LowVINStartupVoltage, p.LowVINStartupVoltage)
	apply(&s.HighVINShutoffVoltage, p.HighVINShutoffVoltage)
	apply(&s.VINCalibration, p.VINCalibration)

	apply(&s.RCMaxPulsePeriod, p.RCMaxPulsePeriod)
	apply(&s.RCBadSignalTimeout, p.RCBadSignalTimeout)
	apply(&s.RCConsecutiveGoodPulses, p.RCConsecutiveGoodPulses)

	apply(&s.InputAveragingEnabled, p.InputAveragingEnabled)
	apply(&s.InputHysteresis, p.InputHysteresis)
	apply(&s.InputErrorMin, p.InputErrorMin)
	apply(&s.InputErrorMax, p.InputErrorMax)
	apply(&s.InputScalingDegree, p.InputScalingDegree)
	apply(&s.InputInvert, p.InputInvert)
	apply(&s.InputMin, p.InputMin)
	apply(&s.InputNeutralMin, p.InputNeutralMin)
	apply(&s.InputNeutralMax, p.InputNeutralMax)
	apply(&s.InputMax, p.InputMax)
	apply(&s.OutputMin, p.OutputMin)
	apply(&s.OutputMax, p.OutputMax)

	apply(&s.EncoderPrescaler, p.EncoderPrescaler)
	apply(&s.EncoderPostscaler, p.EncoderPostscaler)
	apply(&s.EncoderUnlimited, p.EncoderUnlimited)

	for i := range s.Pins {
		apply(&s.Pins[i], p.Pins[i])
	}

	apply(&s.InvertMotorDirection, p.InvertMotorDirection)
	apply(&s.MaxSpeed, p.MaxSpeed)
	apply(&s.StartingSpeed, p.StartingSpeed)
	apply(&s.MaxAccel, p.MaxAccel)
	apply(&s.MaxDecel, p.MaxDecel)
	apply(&s.StepMode, p.StepMode)
	apply(&s.CurrentLimit, p.CurrentLimit)
	apply(&s.CurrentLimitDuringError, p.CurrentLimitDuringError)
	apply(&s.DecayMode, p.DecayMode)

	apply(&s.AutoHoming, p.AutoHoming)
	apply(&s.AutoHomingForward, p.AutoHomingForward)
	apply(&s.HomingSpeedTowards, p.HomingSpeedTowards)
	apply(&s.HomingSpeedAway, p.HomingSpeedAway)

	apply(&s.AGCMode, p.AGCMode)
	apply(&s.AGCBottomCurrentLimit, p.AGCBottomCurrentLimit)
	apply(&s.AGCCurrentBoostSteps, p.AGCCurrentBoostSteps)
	apply(&s.AGCFrequencyLimit, p.AGCFrequencyLimit)

	apply(&s.HPEnableUnrestrictedCurrentLimits, p.HPEnableUnrestrictedCurrentLimits)
	apply(&s.HPToff, p.HPToff)
	apply(&s.HPTblank, p.HPTblank)
	apply(&s.HPAbt, p.HPAbt)
	apply(&s.HPTdecay, p.HPTdecay)
	apply(&s.HPDecmod, p.HPDecmod)

	return s
}

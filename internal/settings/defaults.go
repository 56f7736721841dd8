// internal/settings/defaults.go
package settings

import (
	"github.com/tamzrod/tic-settings/internal/variant"
)

// Defaults returns the factory settings for product p.
// p must be a known product.
func Defaults(p variant.Product) Settings {
	v := variant.MustLookup(p)

	s := Settings{
		Product: p,

		AutoClearDriverError: true,
		SoftErrorResponse:    SoftErrorDecelToHold,

		SerialBaudRate:     9600,
		SerialDeviceNumber: 14,
		CommandTimeout:     1000,

		LowVINTimeout:         250,
		LowVINShutoffVoltage:  v.VIN.LowShutoff,
		LowVINStartupVoltage:  v.VIN.LowStartup,
		HighVINShutoffVoltage: v.VIN.HighShutoff,

		RCMaxPulsePeriod:        100,
		RCBadSignalTimeout:      500,
		RCConsecutiveGoodPulses: 2,

		InputAveragingEnabled: true,
		InputErrorMax:         4095,
		InputMin:              variant.DefaultInputMin,
		InputNeutralMin:       variant.DefaultInputNeutralMin,
		InputNeutralMax:       variant.DefaultInputNeutralMax,
		InputMax:              variant.DefaultInputMax,
		OutputMin:             -200,
		OutputMax:             200,

		EncoderPrescaler:  1,
		EncoderPostscaler: 1,

		MaxSpeed:                2000000,
		MaxAccel:                40000,
		StepMode:                variant.StepModeFull,
		CurrentLimit:            variant.MilliAmps(v.DefaultCurrent),
		CurrentLimitDuringError: CurrentLimitSameAsDefault,

		HomingSpeedTowards: 1000000,
		HomingSpeedAway:    1000000 / 2,
	}

	switch p {
	case variant.TicN825:
		s.Serial7BitResponses = true
		s.SerialResponseDelay = 100
	case variant.TicT249:
		s.AGCBottomCurrentLimit = AGCBottomCurrentLimit80
	case variant.Tic36v4:
		s.HPToff = 50
		s.HPAbt = true
		s.HPTdecay = 16
		s.HPDecmod = HPDecmodAutoMixed
	}

	return s
}

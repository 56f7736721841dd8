// internal/fix/enums.go
package fix

import (
	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// fixEnums replaces coded values that have no meaning.
// These only occur when a record was built by buggy software.
func (f *fixer) fixEnums() {
	s := f.s

	if !settings.ControlModeNames.Has(uint8(s.ControlMode)) {
		s.ControlMode = settings.ControlModeSerial
		f.warn("control_mode", msgControlModeInvalid)
	}

	if !settings.SoftErrorResponseNames.Has(uint8(s.SoftErrorResponse)) {
		s.SoftErrorResponse = settings.SoftErrorDecelToHold
		f.warn("soft_error_response", msgSoftErrorInvalid)
	}

	if !settings.ScalingDegreeNames.Has(uint8(s.InputScalingDegree)) {
		s.InputScalingDegree = settings.ScalingLinear
		f.warn("input_scaling_degree", msgScalingDegreeInvalid)
	}

	if !f.v.StepModeAllowed(s.StepMode) {
		s.StepMode = variant.StepModeFull
		f.warn("step_mode", msgStepModeInvalid)
	}

	// A code that is valid on some other product is dropped silently,
	// the way the firmware does.
	if !f.v.DecayModeAllowed(s.DecayMode) {
		if s.DecayMode > variant.DecayModeGenericMax {
			f.warn("decay_mode", msgDecayModeInvalid)
		}
		s.DecayMode = 0
	}

	f.fixAGC()
	f.fixHPDecmod()

	for _, pin := range variant.Pins {
		if !s.Pins[pin].Func.Valid() {
			s.Pins[pin].Func = variant.PinFuncDefault
			f.warn(pin.Key(), msgPinFuncInvalid, pin)
		}
	}
}

func (f *fixer) fixAGC() {
	s := f.s

	if !f.v.HasAGC {
		s.AGCMode = 0
		s.AGCBottomCurrentLimit = 0
		s.AGCCurrentBoostSteps = 0
		s.AGCFrequencyLimit = 0
		return
	}

	if !settings.AGCModeNames.Has(uint8(s.AGCMode)) {
		s.AGCMode = settings.AGCModeOn
		f.warn("agc_mode", msgAGCModeInvalid)
	}
	if !settings.AGCBottomCurrentLimitNames.Has(uint8(s.AGCBottomCurrentLimit)) {
		s.AGCBottomCurrentLimit = settings.AGCBottomCurrentLimit75
		f.warn("agc_bottom_current_limit", msgAGCBottomLimitInvalid)
	}
	if !settings.AGCCurrentBoostStepsNames.Has(uint8(s.AGCCurrentBoostSteps)) {
		s.AGCCurrentBoostSteps = settings.AGCCurrentBoostSteps5
		f.warn("agc_current_boost_steps", msgAGCBoostStepsInvalid)
	}
	if !settings.AGCFrequencyLimitNames.Has(uint8(s.AGCFrequencyLimit)) {
		s.AGCFrequencyLimit = settings.AGCFrequencyLimitOff
		f.warn("agc_frequency_limit", msgAGCFreqLimitInvalid)
	}
}

func (f *fixer) fixHPDecmod() {
	s := f.s

	if !f.v.HasHP {
		s.HPDecmod = 0
		return
	}
	if !settings.HPDecmodNames.Has(uint8(s.HPDecmod)) {
		s.HPDecmod = settings.HPDecmodSlowMixed
		f.warn("hp_decmod", msgHPDecmodInvalid)
	}
}

// internal/fix/pins.go
package fix

import (
	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// restrictionPhrases completes "The X pin cannot ..." per function.
var restrictionPhrases = map[variant.PinFunc]string{
	variant.PinFuncUserIO:   "be a user I/O pin",
	variant.PinFuncPotPower: "be used as a potentiometer power pin",
	variant.PinFuncSerial:   "be a serial pin",
	variant.PinFuncRC:       "be used as an RC input",
	variant.PinFuncEncoder:  "be used as an encoder input",
}

// fixPins resolves pin functions against the control mode, the product and
// the pin capability matrix. A reset pin keeps its modifiers.
func (f *fixer) fixPins() {
	f.claimControlPins()
	f.releaseReservedPins()
	f.applyRestrictions()
	f.dropLimitSwitches()
	f.dropUnsupportedAnalog()
	f.pairI2C()
}

func (f *fixer) pin(p variant.Pin) *settings.PinConfig {
	return &f.s.Pins[p]
}

func (f *fixer) resetPin(p variant.Pin, format string, args ...any) {
	f.pin(p).Func = variant.PinFuncDefault
	f.warn(p.Key(), format, args...)
}

// claimControlPins makes the control mode's input pins serve it.
func (f *fixer) claimControlPins() {
	mode := f.s.ControlMode

	switch {
	case mode.IsAnalog():
		if fn := f.pin(variant.PinSDA).Func; fn != variant.PinFuncDefault && fn != variant.PinFuncUserInput {
			f.resetPin(variant.PinSDA, msgAnalogPinClaim)
		}

	case mode.IsRC():
		// a reserved RC pin is reset below with a better message
		if _, reserved := f.v.ReservedPin(variant.PinRC); reserved {
			return
		}
		if fn := f.pin(variant.PinRC).Func; fn != variant.PinFuncDefault && fn != variant.PinFuncRC {
			f.resetPin(variant.PinRC, msgRCPinClaim)
		}

	case mode.IsEncoder():
		for _, p := range []variant.Pin{variant.PinTX, variant.PinRX} {
			if fn := f.pin(p).Func; fn != variant.PinFuncDefault && fn != variant.PinFuncEncoder {
				f.resetPin(p, msgEncoderPinClaim, p)
			}
		}
	}
}

func (f *fixer) releaseReservedPins() {
	for _, r := range f.v.Reserved {
		if f.pin(r.Pin).Func != variant.PinFuncDefault {
			f.resetPin(r.Pin, msgReservedPin, f.v.Model, r.Pin, r.Role)
		}
	}
}

func (f *fixer) applyRestrictions() {
	for _, r := range variant.Restrictions {
		if f.pin(r.Pin).Func == r.Func {
			f.resetPin(r.Pin, msgPinCannot, r.Pin, restrictionPhrases[r.Func])
		}
	}
}

func (f *fixer) dropLimitSwitches() {
	if !f.olderThan(variant.FirmwareSerialExtensions) {
		return
	}

	field := ""
	for _, p := range variant.Pins {
		if f.pin(p).Func.IsLimitSwitch() {
			f.pin(p).Func = variant.PinFuncDefault
			if field == "" {
				field = p.Key()
			}
		}
	}
	if field != "" {
		f.warn(field, msgNoLimitSwitches)
	}
}

func (f *fixer) dropUnsupportedAnalog() {
	for _, p := range variant.Pins {
		if f.pin(p).Analog && !variant.AnalogCapable(p) {
			f.pin(p).Analog = false
			f.warn(p.Key(), msgPinNotAnalog, p)
		}
	}
}

// pairI2C makes SCL and SDA agree on I2C use. It runs last because the
// earlier rules can move either pin onto I2C.
func (f *fixer) pairI2C() {
	analog := f.s.ControlMode.IsAnalog()
	isI2C := func(fn variant.PinFunc) bool {
		return (fn == variant.PinFuncDefault && !analog) || fn == variant.PinFuncSerial
	}

	scl := isI2C(f.pin(variant.PinSCL).Func)
	sda := isI2C(f.pin(variant.PinSDA).Func)
	if scl == sda {
		return
	}

	f.pin(variant.PinSCL).Func = variant.PinFuncDefault
	f.pin(variant.PinSDA).Func = variant.PinFuncDefault
	if sda {
		f.warn(variant.PinSCL.Key(), msgSCLMustFollowSDA)
	} else {
		f.warn(variant.PinSDA.Key(), msgSDAMustFollowSCL)
	}
}

// fixGateCharge raises the 36v4 fixed off time until the driver can charge
// its MOSFET gates.
func (f *fixer) fixGateCharge() {
	s := f.s
	if !f.v.HasHP || variant.HPGateChargeOK(s.HPToff, s.HPTblank, s.HPAbt) {
		return
	}
	for s.HPToff < 255 {
		s.HPToff++
		if variant.HPGateChargeOK(s.HPToff, s.HPTblank, s.HPAbt) {
			break
		}
	}
	f.warn("hp_toff", msgToffRaised, variant.HPToffNs(s.HPToff))
}

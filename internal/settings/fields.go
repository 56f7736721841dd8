// internal/settings/fields.go
package settings

import (
	"math"
	"strconv"
	"strings"

	"github.com/tamzrod/tic-settings/internal/intparse"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// field binds one settings-file key to its Partial slot and Settings value.
type field struct {
	key    string
	decode func(p *Partial, value string) error
	encode func(s *Settings, v *variant.Variant) string

	// hidden settings are read but never written
	hidden bool

	// shown limits a visible setting to some variants; nil means all
	shown func(v *variant.Variant) bool
}

func (f field) visible(v *variant.Variant) bool {
	if f.hidden {
		return false
	}
	return f.shown == nil || f.shown(v)
}

// ---- builders ----

type integer interface {
	~int16 | ~int32 | ~uint8 | ~uint16 | ~uint32
}

func number[T integer](key string, min, max int64, slot func(*Partial) **T, get func(*Settings) T) field {
	return field{
		key: key,
		decode: func(p *Partial, value string) error {
			n, err := intparse.Parse(value, min, max)
			if err != nil {
				return &ParseError{Key: key, Err: err}
			}
			v := T(n)
			*slot(p) = &v
			return nil
		},
		encode: func(s *Settings, _ *variant.Variant) string {
			return strconv.FormatInt(int64(get(s)), 10)
		},
	}
}

func flag(key string, slot func(*Partial) **bool, get func(*Settings) bool) field {
	return field{
		key: key,
		decode: func(p *Partial, value string) error {
			code, ok := boolNames.Code(value)
			if !ok {
				return &ParseError{Key: key, Err: ErrUnrecognizedValue}
			}
			b := code == 1
			*slot(p) = &b
			return nil
		},
		encode: func(s *Settings, _ *variant.Variant) string {
			return strconv.FormatBool(get(s))
		},
	}
}

// named decodes an enum through a name table. unknown is the error kind
// reported for names outside the table.
func named[T ~uint8](key string, names variant.NameTable, unknown error, slot func(*Partial) **T, get func(*Settings) T) field {
	return field{
		key: key,
		decode: func(p *Partial, value string) error {
			code, ok := names.Code(value)
			if !ok {
				return &ParseError{Key: key, Err: unknown}
			}
			v := T(code)
			*slot(p) = &v
			return nil
		},
		encode: func(s *Settings, _ *variant.Variant) string {
			code := uint8(get(s))
			if name, ok := names.Name(code); ok {
				return name
			}
			return strconv.Itoa(int(code))
		},
	}
}

func pinField(pin variant.Pin) field {
	key := pin.Key()
	return field{
		key: key,
		decode: func(p *Partial, value string) error {
			cfg, ok := ParsePinConfig(value)
			if !ok {
				return &ParseError{Key: key, Err: ErrInvalidValue}
			}
			p.Pins[pin] = &cfg
			return nil
		},
		encode: func(s *Settings, _ *variant.Variant) string {
			return s.Pins[pin].String()
		},
	}
}

func decayField() field {
	const key = "decay_mode"
	return field{
		key: key,
		decode: func(p *Partial, value string) error {
			code, ok := variant.DecayModeCode(value)
			if !ok {
				return &ParseError{Key: key, Err: ErrInvalidValue}
			}
			p.DecayMode = &code
			return nil
		},
		encode: func(s *Settings, v *variant.Variant) string {
			if name, ok := v.DecayModeName(s.DecayMode); ok {
				return name
			}
			return strconv.Itoa(int(s.DecayMode))
		},
		shown: func(v *variant.Variant) bool { return v.ShowDecayMode },
	}
}

func hidden(f field) field {
	f.hidden = true
	return f
}

func when(shown func(v *variant.Variant) bool, fields ...field) []field {
	for i := range fields {
		fields[i].shown = shown
	}
	return fields
}

func hasAGC(v *variant.Variant) bool { return v.HasAGC }
func hasHP(v *variant.Variant) bool  { return v.HasHP }

// ---- pin config text ----

// ParsePinConfig reads "func[ pullup][ analog][ active_high]". Tokens are
// separated by single spaces; empty tokens are skipped.
func ParsePinConfig(text string) (PinConfig, bool) {
	var cfg PinConfig
	for _, token := range strings.Split(text, " ") {
		switch token {
		case "":
		case "pullup":
			cfg.Pullup = true
		case "analog":
			cfg.Analog = true
		case "active_high":
			cfg.ActiveHigh = true
		default:
			code, ok := variant.PinFuncNames.Code(token)
			if !ok {
				return PinConfig{}, false
			}
			cfg.Func = variant.PinFunc(code)
		}
	}
	return cfg, true
}

// String renders the pin config in settings-file form.
func (c PinConfig) String() string {
	name, ok := variant.PinFuncNames.Name(uint8(c.Func))
	if !ok {
		name = strconv.Itoa(int(c.Func))
	}
	var b strings.Builder
	b.WriteString(name)
	if c.Pullup {
		b.WriteString(" pullup")
	}
	if c.Analog {
		b.WriteString(" analog")
	}
	if c.ActiveHigh {
		b.WriteString(" active_high")
	}
	return b.String()
}

// ---- table ----

const (
	u8  = math.MaxUint8
	u16 = math.MaxUint16
	u32 = math.MaxUint32
)

// fields lists every setting in settings-file order (product excluded).
var fields = func() []field {
	out := []field{
		named("control_mode", ControlModeNames, ErrUnrecognizedValue,
			func(p *Partial) **ControlMode { return &p.ControlMode },
			func(s *Settings) ControlMode { return s.ControlMode }),
		flag("never_sleep",
			func(p *Partial) **bool { return &p.NeverSleep },
			func(s *Settings) bool { return s.NeverSleep }),
		flag("disable_safe_start",
			func(p *Partial) **bool { return &p.DisableSafeStart },
			func(s *Settings) bool { return s.DisableSafeStart }),
		flag("ignore_err_line_high",
			func(p *Partial) **bool { return &p.IgnoreErrLineHigh },
			func(s *Settings) bool { return s.IgnoreErrLineHigh }),
		flag("auto_clear_driver_error",
			func(p *Partial) **bool { return &p.AutoClearDriverError },
			func(s *Settings) bool { return s.AutoClearDriverError }),
		named("soft_error_response", SoftErrorResponseNames, ErrUnrecognizedValue,
			func(p *Partial) **SoftErrorResponse { return &p.SoftErrorResponse },
			func(s *Settings) SoftErrorResponse { return s.SoftErrorResponse }),
		number("soft_error_position", math.MinInt32, math.MaxInt32,
			func(p *Partial) **int32 { return &p.SoftErrorPosition },
			func(s *Settings) int32 { return s.SoftErrorPosition }),

		number("serial_baud_rate", 0, u32-1,
			func(p *Partial) **uint32 { return &p.SerialBaudRate },
			func(s *Settings) uint32 { return s.SerialBaudRate }),
		number("serial_device_number", 0, u16,
			func(p *Partial) **uint16 { return &p.SerialDeviceNumber },
			func(s *Settings) uint16 { return s.SerialDeviceNumber }),
		number("serial_alt_device_number", 0, u16,
			func(p *Partial) **uint16 { return &p.SerialAltDeviceNumber },
			func(s *Settings) uint16 { return s.SerialAltDeviceNumber }),
		flag("serial_enable_alt_device_number",
			func(p *Partial) **bool { return &p.SerialEnableAltDeviceNumber },
			func(s *Settings) bool { return s.SerialEnableAltDeviceNumber }),
		flag("serial_14bit_device_number",
			func(p *Partial) **bool { return &p.Serial14BitDeviceNumber },
			func(s *Settings) bool { return s.Serial14BitDeviceNumber }),
		number("command_timeout", 0, u16,
			func(p *Partial) **uint16 { return &p.CommandTimeout },
			func(s *Settings) uint16 { return s.CommandTimeout }),
		flag("serial_crc_for_commands",
			func(p *Partial) **bool { return &p.SerialCRCForCommands },
			func(s *Settings) bool { return s.SerialCRCForCommands }),
		flag("serial_crc_for_responses",
			func(p *Partial) **bool { return &p.SerialCRCForResponses },
			func(s *Settings) bool { return s.SerialCRCForResponses }),
		flag("serial_7bit_responses",
			func(p *Partial) **bool { return &p.Serial7BitResponses },
			func(s *Settings) bool { return s.Serial7BitResponses }),
		number("serial_response_delay", 0, u8,
			func(p *Partial) **uint8 { return &p.SerialResponseDelay },
			func(s *Settings) uint8 { return s.SerialResponseDelay }),

		hidden(number("low_vin_timeout", 0, u16,
			func(p *Partial) **uint16 { return &p.LowVINTimeout },
			func(s *Settings) uint16 { return s.LowVINTimeout })),
		hidden(number("low_vin_shutoff_voltage", 0, u16,
			func(p *Partial) **uint16 { return &p.LowVINShutoffVoltage },
			func(s *Settings) uint16 { return s.LowVINShutoffVoltage })),
		hidden(number("low_vin_startup_voltage", 0, u16,
			func(p *Partial) **uint16 { return &p.LowVINStartupVoltage },
			func(s *Settings) uint16 { return s.LowVINStartupVoltage })),
		hidden(number("high_vin_shutoff_voltage", 0, u16,
			func(p *Partial) **uint16 { return &p.HighVINShutoffVoltage },
			func(s *Settings) uint16 { return s.HighVINShutoffVoltage })),
		number("vin_calibration", math.MinInt16, math.MaxInt16,
			func(p *Partial) **int16 { return &p.VINCalibration },
			func(s *Settings) int16 { return s.VINCalibration }),

		hidden(number("rc_max_pulse_period", 0, u16,
			func(p *Partial) **uint16 { return &p.RCMaxPulsePeriod },
			func(s *Settings) uint16 { return s.RCMaxPulsePeriod })),
		hidden(number("rc_bad_signal_timeout", 0, u16,
			func(p *Partial) **uint16 { return &p.RCBadSignalTimeout },
			func(s *Settings) uint16 { return s.RCBadSignalTimeout })),
		hidden(number("rc_consecutive_good_pulses", 0, u8,
			func(p *Partial) **uint8 { return &p.RCConsecutiveGoodPulses },
			func(s *Settings) uint8 { return s.RCConsecutiveGoodPulses })),

		flag("input_averaging_enabled",
			func(p *Partial) **bool { return &p.InputAveragingEnabled },
			func(s *Settings) bool { return s.InputAveragingEnabled }),
		number("input_hysteresis", 0, u16,
			func(p *Partial) **uint16 { return &p.InputHysteresis },
			func(s *Settings) uint16 { return s.InputHysteresis }),
		hidden(number("input_error_min", 0, u16,
			func(p *Partial) **uint16 { return &p.InputErrorMin },
			func(s *Settings) uint16 { return s.InputErrorMin })),
		hidden(number("input_error_max", 0, u16,
			func(p *Partial) **uint16 { return &p.InputErrorMax },
			func(s *Settings) uint16 { return s.InputErrorMax })),
		named("input_scaling_degree", ScalingDegreeNames, ErrUnrecognizedValue,
			func(p *Partial) **ScalingDegree { return &p.InputScalingDegree },
			func(s *Settings) ScalingDegree { return s.InputScalingDegree }),
		flag("input_invert",
			func(p *Partial) **bool { return &p.InputInvert },
			func(s *Settings) bool { return s.InputInvert }),
		number("input_min", 0, u16,
			func(p *Partial) **uint16 { return &p.InputMin },
			func(s *Settings) uint16 { return s.InputMin }),
		number("input_neutral_min", 0, u16,
			func(p *Partial) **uint16 { return &p.InputNeutralMin },
			func(s *Settings) uint16 { return s.InputNeutralMin }),
		number("input_neutral_max", 0, u16,
			func(p *Partial) **uint16 { return &p.InputNeutralMax },
			func(s *Settings) uint16 { return s.InputNeutralMax }),
		number("input_max", 0, u16,
			func(p *Partial) **uint16 { return &p.InputMax },
			func(s *Settings) uint16 { return s.InputMax }),
		number("output_min", math.MinInt32, math.MaxInt32,
			func(p *Partial) **int32 { return &p.OutputMin },
			func(s *Settings) int32 { return s.OutputMin }),
		number("output_max", math.MinInt32, math.MaxInt32,
			func(p *Partial) **int32 { return &p.OutputMax },
			func(s *Settings) int32 { return s.OutputMax }),

		number("encoder_prescaler", 0, u32,
			func(p *Partial) **uint32 { return &p.EncoderPrescaler },
			func(s *Settings) uint32 { return s.EncoderPrescaler }),
		number("encoder_postscaler", 0, u32,
			func(p *Partial) **uint32 { return &p.EncoderPostscaler },
			func(s *Settings) uint32 { return s.EncoderPostscaler }),
		flag("encoder_unlimited",
			func(p *Partial) **bool { return &p.EncoderUnlimited },
			func(s *Settings) bool { return s.EncoderUnlimited }),
	}

	for _, pin := range variant.Pins {
		out = append(out, pinField(pin))
	}

	out = append(out,
		flag("invert_motor_direction",
			func(p *Partial) **bool { return &p.InvertMotorDirection },
			func(s *Settings) bool { return s.InvertMotorDirection }),
		number("max_speed", 0, u32,
			func(p *Partial) **uint32 { return &p.MaxSpeed },
			func(s *Settings) uint32 { return s.MaxSpeed }),
		number("starting_speed", 0, u32,
			func(p *Partial) **uint32 { return &p.StartingSpeed },
			func(s *Settings) uint32 { return s.StartingSpeed }),
		number("max_accel", 0, u32,
			func(p *Partial) **uint32 { return &p.MaxAccel },
			func(s *Settings) uint32 { return s.MaxAccel }),
		number("max_decel", 0, u32,
			func(p *Partial) **uint32 { return &p.MaxDecel },
			func(s *Settings) uint32 { return s.MaxDecel }),
		named("step_mode", variant.StepModeNames, ErrInvalidValue,
			func(p *Partial) **variant.StepMode { return &p.StepMode },
			func(s *Settings) variant.StepMode { return s.StepMode }),
		number("current_limit", 0, u32,
			func(p *Partial) **uint32 { return &p.CurrentLimit },
			func(s *Settings) uint32 { return s.CurrentLimit }),
		number("current_limit_during_error", math.MinInt32, math.MaxInt32,
			func(p *Partial) **int32 { return &p.CurrentLimitDuringError },
			func(s *Settings) int32 { return s.CurrentLimitDuringError }),
		decayField(),

		flag("auto_homing",
			func(p *Partial) **bool { return &p.AutoHoming },
			func(s *Settings) bool { return s.AutoHoming }),
		flag("auto_homing_forward",
			func(p *Partial) **bool { return &p.AutoHomingForward },
			func(s *Settings) bool { return s.AutoHomingForward }),
		number("homing_speed_towards", 0, u32,
			func(p *Partial) **uint32 { return &p.HomingSpeedTowards },
			func(s *Settings) uint32 { return s.HomingSpeedTowards }),
		number("homing_speed_away", 0, u32,
			func(p *Partial) **uint32 { return &p.HomingSpeedAway },
			func(s *Settings) uint32 { return s.HomingSpeedAway }),
	)

	out = append(out, when(hasAGC,
		named("agc_mode", AGCModeNames, ErrInvalidValue,
			func(p *Partial) **AGCMode { return &p.AGCMode },
			func(s *Settings) AGCMode { return s.AGCMode }),
		named("agc_bottom_current_limit", AGCBottomCurrentLimitNames, ErrInvalidValue,
			func(p *Partial) **AGCBottomCurrentLimit { return &p.AGCBottomCurrentLimit },
			func(s *Settings) AGCBottomCurrentLimit { return s.AGCBottomCurrentLimit }),
		named("agc_current_boost_steps", AGCCurrentBoostStepsNames, ErrInvalidValue,
			func(p *Partial) **AGCCurrentBoostSteps { return &p.AGCCurrentBoostSteps },
			func(s *Settings) AGCCurrentBoostSteps { return s.AGCCurrentBoostSteps }),
		named("agc_frequency_limit", AGCFrequencyLimitNames, ErrInvalidValue,
			func(p *Partial) **AGCFrequencyLimit { return &p.AGCFrequencyLimit },
			func(s *Settings) AGCFrequencyLimit { return s.AGCFrequencyLimit }),
	)...)

	out = append(out, when(hasHP,
		flag("hp_enable_unrestricted_current_limits",
			func(p *Partial) **bool { return &p.HPEnableUnrestrictedCurrentLimits },
			func(s *Settings) bool { return s.HPEnableUnrestrictedCurrentLimits }),
		number("hp_toff", 0, u8,
			func(p *Partial) **uint8 { return &p.HPToff },
			func(s *Settings) uint8 { return s.HPToff }),
		number("hp_tblank", 0, u8,
			func(p *Partial) **uint8 { return &p.HPTblank },
			func(s *Settings) uint8 { return s.HPTblank }),
		flag("hp_abt",
			func(p *Partial) **bool { return &p.HPAbt },
			func(s *Settings) bool { return s.HPAbt }),
		number("hp_tdecay", 0, u8,
			func(p *Partial) **uint8 { return &p.HPTdecay },
			func(s *Settings) uint8 { return s.HPTdecay }),
		named("hp_decmod", HPDecmodNames, ErrInvalidValue,
			func(p *Partial) **HPDecmod { return &p.HPDecmod },
			func(s *Settings) HPDecmod { return s.HPDecmod }),
	)...)

	return out
}()

// keyAliases maps legacy spellings onto current keys.
var keyAliases = map[string]string{
	"serial_crc_enabled": "serial_crc_for_commands",
}

var fieldsByKey = func() map[string]field {
	m := make(map[string]field, len(fields)+len(keyAliases))
	for _, f := range fields {
		m[f.key] = f
	}
	for alias, key := range keyAliases {
		m[alias] = m[key]
	}
	return m
}()

// Keys lists the settings-file keys written for product p, in order.
func Keys(p variant.Product) []string {
	v := variant.MustLookup(p)
	keys := []string{"product"}
	for _, f := range fields {
		if f.visible(v) {
			keys = append(keys, f.key)
		}
	}
	return keys
}

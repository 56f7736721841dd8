// internal/fix/fix_test.go
package fix

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// ------------------------------------------------------------
// helpers
// ------------------------------------------------------------

type fixCase struct {
	in       map[string]string
	out      map[string]string
	warnings string
}

// fileValues reads a flat settings file into key/value strings.
func fileValues(t *testing.T, text []byte) map[string]string {
	t.Helper()

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(text, &doc))
	require.Equal(t, yaml.DocumentNode, doc.Kind)
	root := doc.Content[0]

	out := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		out[root.Content[i].Value] = root.Content[i+1].Value
	}
	return out
}

func defaultValues(t *testing.T, p variant.Product) map[string]string {
	t.Helper()
	text, err := settings.Encode(settings.Defaults(p))
	require.NoError(t, err)
	return fileValues(t, text)
}

func settingsText(p variant.Product, values map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "product: %s\n", p)
	for k, v := range values {
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}
	return b.String()
}

func merge(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

type productCurrents struct {
	lowest, low, def, medium, high, max uint32
}

func currentsFor(p variant.Product) productCurrents {
	switch p {
	case variant.TicT500:
		return productCurrents{0, 1, 174, 762, 2056, 3093}
	case variant.TicT249:
		return productCurrents{0, 40, 200, 440, 1440, 4480}
	case variant.Tic36v4:
		return productCurrents{0, 72, 215, 573, 1504, 3939}
	case variant.TicT834:
		return productCurrents{0, 64, 192, 320, 2048, 3456}
	default:
		return productCurrents{0, 64, 192, 320, 2048, 3968}
	}
}

func itoa(n uint32) string { return fmt.Sprint(n) }

// ------------------------------------------------------------
// per-product cases
// ------------------------------------------------------------

func productCases(p variant.Product) []fixCase {
	c := currentsFor(p)

	rcWarn := ""
	if p == variant.TicN825 {
		rcWarn = "Warning: On the Tic N825, the RC pin is always used for controlling " +
			"the RS-485 transceiver and cannot be used for anything else, so its " +
			"function will be changed to the default.\n"
	}
	orRC := func(w string) string {
		if rcWarn != "" {
			return rcWarn
		}
		return w
	}

	cases := []fixCase{
		{
			in:  map[string]string{"control_mode": "rc_speed", "soft_error_response": "go_to_position"},
			out: map[string]string{"soft_error_response": "decel_to_hold"},
			warnings: "Warning: The soft error response cannot be \"Go to position\" in a " +
				"speed control mode, so it will be changed to \"Decelerate to hold\".\n",
		},
		{
			in: map[string]string{"control_mode": "rc_position", "soft_error_response": "go_to_position"},
		},
		{
			in:  map[string]string{"serial_baud_rate": "115200"},
			out: map[string]string{"serial_baud_rate": "115385"},
		},
		{
			in:       map[string]string{"serial_baud_rate": "101"},
			out:      map[string]string{"serial_baud_rate": "200"},
			warnings: "Warning: The serial baud rate is too low so it will be changed to 200.\n",
		},
		{
			in:       map[string]string{"serial_baud_rate": "115386"},
			out:      map[string]string{"serial_baud_rate": "115385"},
			warnings: "Warning: The serial baud rate is too high so it will be changed to 115385.\n",
		},
		{
			in:       map[string]string{"serial_device_number": "128"},
			out:      map[string]string{"serial_device_number": "0"},
			warnings: "Warning: The device number is higher than 127 so it will be changed to 0.\n",
		},
		{
			in:       map[string]string{"serial_alt_device_number": "129"},
			out:      map[string]string{"serial_alt_device_number": "1"},
			warnings: "Warning: The alternative device number is higher than 127 so it will be changed to 1.\n",
		},
		{
			in:       map[string]string{"command_timeout": "60001"},
			out:      map[string]string{"command_timeout": "60000"},
			warnings: "Warning: The command timeout is too high so it will be changed to 60000 ms.\n",
		},
		{
			in:       map[string]string{"vin_calibration": "-501"},
			out:      map[string]string{"vin_calibration": "-500"},
			warnings: "Warning: The VIN calibration is too low so it will be raised to -500.\n",
		},
		{
			in:       map[string]string{"vin_calibration": "501"},
			out:      map[string]string{"vin_calibration": "500"},
			warnings: "Warning: The VIN calibration is too high so it will be lowered to 500.\n",
		},
		{
			in: map[string]string{"input_min": "9", "input_neutral_min": "8",
				"input_neutral_max": "7", "input_max": "6"},
			out: map[string]string{"input_min": "0", "input_neutral_min": "2015",
				"input_neutral_max": "2080", "input_max": "4095"},
			warnings: "Warning: The input scaling values are out of order " +
				"so they will be reset to their default values.\n",
		},
		{
			in: map[string]string{"input_min": "4096", "input_neutral_min": "4097",
				"input_neutral_max": "4098", "input_max": "4099"},
			out: map[string]string{"input_min": "4095", "input_neutral_min": "4095",
				"input_neutral_max": "4095", "input_max": "4095"},
			warnings: "Warning: The input minimum is too high so it will be lowered to 4095.\n" +
				"Warning: The input neutral min is too high so it will be lowered to 4095.\n" +
				"Warning: The input neutral max is too high so it will be lowered to 4095.\n" +
				"Warning: The input maximum is too high so it will be lowered to 4095.\n",
		},
		{
			in:       map[string]string{"output_min": "1"},
			out:      map[string]string{"output_min": "0"},
			warnings: "Warning: The scaling output minimum is above 0 so it will be lowered to 0.\n",
		},
		{
			in:       map[string]string{"output_max": "-1"},
			out:      map[string]string{"output_max": "0"},
			warnings: "Warning: The scaling output maximum is below 0 so it will be raised to 0.\n",
		},
		{
			in:       map[string]string{"encoder_prescaler": "0"},
			out:      map[string]string{"encoder_prescaler": "1"},
			warnings: "Warning: The encoder prescaler is zero so it will be changed to 1.\n",
		},
		{
			in:       map[string]string{"encoder_prescaler": "2147483648"},
			out:      map[string]string{"encoder_prescaler": "2147483647"},
			warnings: "Warning: The encoder prescaler is too high so it will be lowered to 2147483647.\n",
		},
		{
			in:       map[string]string{"encoder_postscaler": "0"},
			out:      map[string]string{"encoder_postscaler": "1"},
			warnings: "Warning: The encoder postscaler is zero so it will be changed to 1.\n",
		},
		{
			in:       map[string]string{"encoder_postscaler": "2147483648"},
			out:      map[string]string{"encoder_postscaler": "2147483647"},
			warnings: "Warning: The encoder postscaler is too high so it will be lowered to 2147483647.\n",
		},
		{
			in: map[string]string{"current_limit": itoa(c.lowest)},
		},
		{
			in:  map[string]string{"current_limit": itoa(c.def + 16)},
			out: map[string]string{"current_limit": itoa(c.def)},
		},
		{
			in:       map[string]string{"current_limit": itoa(c.max + 1)},
			out:      map[string]string{"current_limit": itoa(c.max)},
			warnings: fmt.Sprintf("Warning: The current limit is too high so it will be lowered to %d mA.\n", c.max),
		},
		{
			in: map[string]string{"current_limit": itoa(c.medium), "current_limit_during_error": itoa(c.low)},
		},
		{
			in:  map[string]string{"current_limit": itoa(c.medium), "current_limit_during_error": itoa(c.high)},
			out: map[string]string{"current_limit_during_error": "-1"},
			warnings: "Warning: The current limit during error is higher than the default " +
				"current limit so it will be changed to be the same.\n",
		},
		{
			in:  map[string]string{"current_limit": itoa(c.medium), "current_limit_during_error": "-2"},
			out: map[string]string{"current_limit_during_error": "-1"},
			warnings: "Warning: The current limit during error is an invalid negative number " +
				"so it will be changed to be the same as the default current limit.\n",
		},
		{
			in:       map[string]string{"max_speed": "700000000"},
			out:      map[string]string{"max_speed": "500000000"},
			warnings: "Warning: The maximum speed is too high so it will be lowered to 500000000 (50 kHz).\n",
		},
		{
			in:  map[string]string{"starting_speed": "5000000"},
			out: map[string]string{"starting_speed": "2000000"},
			warnings: "Warning: The starting speed is greater than the maximum speed " +
				"so it will be lowered to 2000000.\n",
		},
		{
			in:       map[string]string{"max_decel": "2147483648"},
			out:      map[string]string{"max_decel": "2147483647"},
			warnings: "Warning: The maximum deceleration is too high so it will be lowered to 2147483647.\n",
		},
		{
			in:       map[string]string{"max_decel": "99"},
			out:      map[string]string{"max_decel": "100"},
			warnings: "Warning: The maximum deceleration is too low so it will be raised to 100.\n",
		},
		{
			in: map[string]string{"max_decel": "0"},
		},
		{
			in:       map[string]string{"max_accel": "2147483648"},
			out:      map[string]string{"max_accel": "2147483647"},
			warnings: "Warning: The maximum acceleration is too high so it will be lowered to 2147483647.\n",
		},
		{
			in:       map[string]string{"max_accel": "99"},
			out:      map[string]string{"max_accel": "100"},
			warnings: "Warning: The maximum acceleration is too low so it will be raised to 100.\n",
		},
		{
			in:       map[string]string{"max_accel": "0"},
			out:      map[string]string{"max_accel": "100"},
			warnings: "Warning: The maximum acceleration is too low so it will be raised to 100.\n",
		},
		{
			in:  map[string]string{"control_mode": "analog_position", "sda_config": "user_io active_high"},
			out: map[string]string{"sda_config": "default active_high"},
			warnings: "Warning: The SDA pin must be used as an analog input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"control_mode": "analog_speed", "sda_config": "user_io pullup"},
			out: map[string]string{"sda_config": "default pullup"},
			warnings: "Warning: The SDA pin must be used as an analog input " +
				"so its function will be changed to the default.\n",
		},
		{
			in: map[string]string{"control_mode": "analog_speed", "sda_config": "user_input pullup"},
		},
		{
			in:  map[string]string{"control_mode": "rc_position", "rc_config": "kill_switch active_high"},
			out: map[string]string{"rc_config": "default active_high"},
			warnings: orRC("Warning: The RC pin must be used as an RC input " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"control_mode": "rc_speed", "rc_config": "user_io pullup"},
			out: map[string]string{"rc_config": "default pullup"},
			warnings: orRC("Warning: The RC pin must be used as an RC input " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"control_mode": "encoder_speed", "tx_config": "kill_switch active_high"},
			out: map[string]string{"tx_config": "default active_high"},
			warnings: "Warning: The TX pin must be used as an encoder input " +
				"so its function will be changed to the default.\n",
		},
		{
			in: map[string]string{"control_mode": "encoder_position", "rx_config": "kill_switch pullup",
				"tx_config": "encoder analog"},
			out: map[string]string{"rx_config": "default pullup"},
			warnings: "Warning: The RX pin must be used as an encoder input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"rc_config": "user_io active_high"},
			out: map[string]string{"rc_config": "default active_high"},
			warnings: orRC("Warning: The RC pin cannot be a user I/O pin " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"sda_config": "pot_power"},
			out: map[string]string{"sda_config": "default"},
			warnings: "Warning: The SDA pin cannot be used as a potentiometer power pin " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"tx_config": "pot_power active_high"},
			out: map[string]string{"tx_config": "default active_high"},
			warnings: "Warning: The TX pin cannot be used as a potentiometer power pin " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"rx_config": "pot_power active_high"},
			out: map[string]string{"rx_config": "default active_high"},
			warnings: "Warning: The RX pin cannot be used as a potentiometer power pin " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"rc_config": "pot_power"},
			out: map[string]string{"rc_config": "default"},
			warnings: orRC("Warning: The RC pin cannot be used as a potentiometer power pin " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"rc_config": "serial pullup active_high"},
			out: map[string]string{"rc_config": "default pullup active_high"},
			warnings: orRC("Warning: The RC pin cannot be a serial pin " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"sda_config": "rc analog"},
			out: map[string]string{"sda_config": "default analog"},
			warnings: "Warning: The SDA pin cannot be used as an RC input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"scl_config": "rc pullup"},
			out: map[string]string{"scl_config": "default pullup"},
			warnings: "Warning: The SCL pin cannot be used as an RC input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"tx_config": "rc active_high"},
			out: map[string]string{"tx_config": "default active_high"},
			warnings: "Warning: The TX pin cannot be used as an RC input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"rx_config": "rc pullup active_high"},
			out: map[string]string{"rx_config": "default pullup active_high"},
			warnings: "Warning: The RX pin cannot be used as an RC input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"scl_config": "encoder analog"},
			out: map[string]string{"scl_config": "default analog"},
			warnings: "Warning: The SCL pin cannot be used as an encoder input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"sda_config": "encoder active_high"},
			out: map[string]string{"sda_config": "default active_high"},
			warnings: "Warning: The SDA pin cannot be used as an encoder input " +
				"so its function will be changed to the default.\n",
		},
		{
			in:  map[string]string{"rc_config": "encoder pullup"},
			out: map[string]string{"rc_config": "default pullup"},
			warnings: orRC("Warning: The RC pin cannot be used as an encoder input " +
				"so its function will be changed to the default.\n"),
		},
		{
			in:  map[string]string{"scl_config": "user_io analog"},
			out: map[string]string{"scl_config": "default analog"},
			warnings: "Warning: The SCL pin must be used for I2C if the SDA pin is, " +
				"so the SCL and SDA pin functions will be changed to the default.\n",
		},
		{
			in:  map[string]string{"sda_config": "user_io pullup"},
			out: map[string]string{"sda_config": "default pullup"},
			warnings: "Warning: The SDA pin must be used for I2C if the SCL pin is, " +
				"so the SCL and SDA pin functions will be changed to the default.\n",
		},
		{
			in: map[string]string{"control_mode": "analog_speed", "scl_config": "user_io"},
		},
	}

	// RC pin as an RC input
	if rcWarn != "" {
		cases = append(cases, fixCase{
			in:       map[string]string{"control_mode": "rc_speed", "rc_config": "rc pullup"},
			out:      map[string]string{"rc_config": "default pullup"},
			warnings: rcWarn,
		})
	} else {
		cases = append(cases, fixCase{
			in: map[string]string{"control_mode": "rc_speed", "rc_config": "rc pullup"},
		})
	}

	// analog modifier on the RC pin
	analogWarn := "Warning: The RC pin cannot be an analog input so that feature will be disabled.\n"
	if rcWarn != "" {
		cases = append(cases, fixCase{
			in:       map[string]string{"rc_config": "user_input analog"},
			out:      map[string]string{"rc_config": "default"},
			warnings: rcWarn + analogWarn,
		})
	} else {
		cases = append(cases, fixCase{
			in:       map[string]string{"rc_config": "user_input analog"},
			out:      map[string]string{"rc_config": "user_input"},
			warnings: analogWarn,
		})
	}

	if p == variant.TicT500 {
		cases = append(cases, fixCase{
			in:       map[string]string{"step_mode": "16"},
			out:      map[string]string{"step_mode": "1"},
			warnings: "Warning: The step mode is invalid so it will be changed to 1 (full step).\n",
		})
	}

	switch p {
	case variant.TicT825, variant.TicN825:
		cases = append(cases, fixCase{
			in:  map[string]string{"decay_mode": "mode4"},
			out: map[string]string{"decay_mode": "mixed"},
		})
	case variant.TicT834:
		cases = append(cases, fixCase{
			in:  map[string]string{"decay_mode": "mode4"},
			out: map[string]string{"decay_mode": "mixed75"},
		})
	}

	if p == variant.TicT249 {
		cases = append(cases, fixCase{
			in: map[string]string{"step_mode": "2_100p"},
		})
	} else {
		cases = append(cases, fixCase{
			in:       map[string]string{"step_mode": "2_100p"},
			out:      map[string]string{"step_mode": "1"},
			warnings: "Warning: The step mode is invalid so it will be changed to 1 (full step).\n",
		})
	}

	if p == variant.Tic36v4 {
		cases = append(cases, fixCase{
			in:       map[string]string{"current_limit": "10000", "hp_enable_unrestricted_current_limits": "true"},
			out:      map[string]string{"current_limit": "9095"},
			warnings: "Warning: The current limit is too high so it will be lowered to 9095 mA.\n",
		})
	}

	return cases
}

func TestFixText_ProductCases(t *testing.T) {
	for _, p := range variant.Products() {
		t.Run(p.String(), func(t *testing.T) {
			defaults := defaultValues(t, p)

			for _, tc := range productCases(p) {
				text := settingsText(p, tc.in)

				res, err := FixText([]byte(text), Options{})
				require.NoError(t, err, text)

				want := merge(defaults, tc.in, tc.out)
				assert.Equal(t, want, fileValues(t, res.Text), text)
				assert.Equal(t, tc.warnings, res.Warnings.Text("Warning: "), text)

				again, ws := Fix(res.Settings)
				assert.Empty(t, ws, text)
				assert.Equal(t, res.Settings, again, text)
			}
		})
	}
}

// ------------------------------------------------------------
// properties
// ------------------------------------------------------------

func TestFix_DefaultsArePure(t *testing.T) {
	for _, p := range variant.Products() {
		d := settings.Defaults(p)
		fixed, ws := Fix(d)
		assert.Empty(t, ws, "product %s", p)
		assert.Equal(t, d, fixed, "product %s", p)
	}
}

func TestFixText_ProductOnlyGivesDefaults(t *testing.T) {
	for _, p := range variant.Products() {
		res, err := FixText([]byte("product: "+p.String()), Options{})
		require.NoError(t, err)
		assert.Empty(t, res.Warnings)

		want, err := settings.Encode(settings.Defaults(p))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(res.Text))
	}
}

// extremes builds records with every field at the bottom or top of its
// storage range.
func extremes(p variant.Product) []settings.Settings {
	low := settings.Settings{Product: p}
	low.SoftErrorPosition = math.MinInt32
	low.VINCalibration = math.MinInt16
	low.OutputMin = math.MinInt32
	low.OutputMax = math.MinInt32
	low.CurrentLimitDuringError = math.MinInt32

	high := settings.Settings{
		Product:                           p,
		ControlMode:                       math.MaxUint8,
		SoftErrorResponse:                 math.MaxUint8,
		SoftErrorPosition:                 math.MaxInt32,
		SerialBaudRate:                    math.MaxUint32,
		SerialDeviceNumber:                math.MaxUint16,
		SerialAltDeviceNumber:             math.MaxUint16,
		SerialEnableAltDeviceNumber:       true,
		Serial14BitDeviceNumber:           true,
		CommandTimeout:                    math.MaxUint16,
		SerialCRCForResponses:             true,
		Serial7BitResponses:               true,
		SerialResponseDelay:               math.MaxUint8,
		LowVINShutoffVoltage:              math.MaxUint16,
		LowVINStartupVoltage:              math.MaxUint16,
		HighVINShutoffVoltage:             math.MaxUint16,
		VINCalibration:                    math.MaxInt16,
		InputScalingDegree:                math.MaxUint8,
		InputMin:                          math.MaxUint16,
		InputNeutralMin:                   math.MaxUint16,
		InputNeutralMax:                   math.MaxUint16,
		InputMax:                          math.MaxUint16,
		OutputMin:                         math.MaxInt32,
		OutputMax:                         math.MaxInt32,
		EncoderPrescaler:                  math.MaxUint32,
		EncoderPostscaler:                 math.MaxUint32,
		MaxSpeed:                          math.MaxUint32,
		StartingSpeed:                     math.MaxUint32,
		MaxAccel:                          math.MaxUint32,
		MaxDecel:                          math.MaxUint32,
		StepMode:                          math.MaxUint8,
		CurrentLimit:                      math.MaxUint32,
		CurrentLimitDuringError:           math.MaxInt32,
		DecayMode:                         math.MaxUint8,
		AutoHoming:                        true,
		HomingSpeedTowards:                math.MaxUint32,
		HomingSpeedAway:                   math.MaxUint32,
		AGCMode:                           math.MaxUint8,
		AGCBottomCurrentLimit:             math.MaxUint8,
		AGCCurrentBoostSteps:              math.MaxUint8,
		AGCFrequencyLimit:                 math.MaxUint8,
		HPEnableUnrestrictedCurrentLimits: true,
		HPToff:                            math.MaxUint8,
		HPTblank:                          math.MaxUint8,
		HPDecmod:                          math.MaxUint8,
	}
	for i := range high.Pins {
		high.Pins[i] = settings.PinConfig{Func: math.MaxUint8, Pullup: true, Analog: true, ActiveHigh: true}
	}

	old := high
	old.FirmwareVersion = 0x0100
	old.Pins[variant.PinTX].Func = variant.PinFuncLimitSwitchForward

	messy := settings.Defaults(p)
	messy.ControlMode = settings.ControlModeAnalogSpeed
	messy.Pins[variant.PinSCL].Func = variant.PinFuncSerial
	messy.Pins[variant.PinSDA].Func = variant.PinFuncPotPower
	messy.Pins[variant.PinRC] = settings.PinConfig{Func: variant.PinFuncEncoder, Analog: true}
	messy.StartingSpeed = messy.MaxSpeed + 1
	messy.CurrentLimitDuringError = 1

	// startup near the top of uint16 with high shutoff below it
	vin := settings.Defaults(p)
	vin.LowVINStartupVoltage = 65300

	return []settings.Settings{low, high, old, messy, vin}
}

// vinEdges are values around the points where the VIN ordering rule adds
// its hysteresis.
var vinEdges = []uint16{0, 500, 64000, 64001, 64500, 64501, 65035, 65036, 65300, 65535}

func TestFix_Idempotent(t *testing.T) {
	for _, p := range variant.Products() {
		for i, s := range extremes(p) {
			once, ws := Fix(s)
			assert.NotEmpty(t, ws, "product %s case %d", p, i)

			twice, ws := Fix(once)
			assert.Empty(t, ws, "product %s case %d", p, i)
			assert.Equal(t, once, twice, "product %s case %d", p, i)
		}
	}
}

func TestFix_RangeInvariant(t *testing.T) {
	for _, p := range variant.Products() {
		v := variant.MustLookup(p)

		for i, s := range extremes(p) {
			got, _ := Fix(s)
			msg := fmt.Sprintf("product %s case %d", p, i)

			assert.GreaterOrEqual(t, got.SerialBaudRate, variant.MinBaudRate, msg)
			assert.LessOrEqual(t, got.SerialBaudRate, variant.MaxBaudRate, msg)
			assert.Equal(t, got.SerialBaudRate, variant.AchievableBaudRate(got.SerialBaudRate), msg)

			mask := variant.DeviceNumberMask7Bit
			if got.Serial14BitDeviceNumber {
				mask = variant.DeviceNumberMask14Bit
			}
			assert.LessOrEqual(t, got.SerialDeviceNumber, mask, msg)
			assert.LessOrEqual(t, got.SerialAltDeviceNumber, mask, msg)
			assert.LessOrEqual(t, got.CommandTimeout, variant.MaxCommandTimeout, msg)

			assert.LessOrEqual(t, got.LowVINShutoffVoltage, got.LowVINStartupVoltage, msg)
			assert.LessOrEqual(t, got.LowVINStartupVoltage, got.HighVINShutoffVoltage, msg)
			assert.LessOrEqual(t, got.LowVINStartupVoltage, variant.MaxLowVINStartup, msg)
			assert.GreaterOrEqual(t, got.VINCalibration, variant.MinVINCalibration, msg)
			assert.LessOrEqual(t, got.VINCalibration, variant.MaxVINCalibration, msg)

			assert.LessOrEqual(t, got.InputMin, got.InputNeutralMin, msg)
			assert.LessOrEqual(t, got.InputNeutralMin, got.InputNeutralMax, msg)
			assert.LessOrEqual(t, got.InputNeutralMax, got.InputMax, msg)
			assert.LessOrEqual(t, got.InputMax, variant.MaxInputScaling, msg)
			assert.LessOrEqual(t, got.OutputMin, int32(0), msg)
			assert.GreaterOrEqual(t, got.OutputMax, int32(0), msg)

			for _, scaler := range []uint32{got.EncoderPrescaler, got.EncoderPostscaler} {
				assert.GreaterOrEqual(t, scaler, uint32(1), msg)
				assert.LessOrEqual(t, scaler, variant.MaxEncoderPrescaler, msg)
			}

			ceiling := variant.MilliAmps(v.CurrentCeiling(got.HPEnableUnrestrictedCurrentLimits))
			assert.LessOrEqual(t, got.CurrentLimit, ceiling, msg)
			if got.CurrentLimitDuringError != settings.CurrentLimitSameAsDefault {
				assert.GreaterOrEqual(t, got.CurrentLimitDuringError, int32(0), msg)
				assert.LessOrEqual(t, int64(got.CurrentLimitDuringError), int64(got.CurrentLimit), msg)
			}

			assert.LessOrEqual(t, got.MaxSpeed, variant.MaxSpeed, msg)
			assert.LessOrEqual(t, got.StartingSpeed, got.MaxSpeed, msg)
			assert.LessOrEqual(t, got.HomingSpeedTowards, variant.MaxSpeed, msg)
			assert.LessOrEqual(t, got.HomingSpeedAway, variant.MaxSpeed, msg)
			assert.GreaterOrEqual(t, got.MaxAccel, variant.MinAccel, msg)
			assert.LessOrEqual(t, got.MaxAccel, variant.MaxAccel, msg)
			if got.MaxDecel != 0 {
				assert.GreaterOrEqual(t, got.MaxDecel, variant.MinAccel, msg)
				assert.LessOrEqual(t, got.MaxDecel, variant.MaxAccel, msg)
			}

			assert.True(t, v.StepModeAllowed(got.StepMode), msg)
			if v.DecayModes != nil {
				assert.True(t, v.DecayModeAllowed(got.DecayMode), msg)
			} else {
				assert.Equal(t, variant.DecayMode(0), got.DecayMode, msg)
			}

			for _, pin := range variant.Pins {
				cfg := got.Pins[pin]
				assert.True(t, cfg.Func.Valid(), msg)
				assert.True(t, variant.CanHold(pin, cfg.Func), "%s pin %s", msg, pin)
				if cfg.Analog {
					assert.True(t, variant.AnalogCapable(pin), msg)
				}
			}
			if _, reserved := v.ReservedPin(variant.PinRC); reserved {
				assert.Equal(t, variant.PinFuncDefault, got.Pins[variant.PinRC].Func, msg)
			}

			if v.HasHP {
				assert.True(t, variant.HPGateChargeOK(got.HPToff, got.HPTblank, got.HPAbt), msg)
			}
		}
	}
}

func TestFix_DoesNotMutateInput(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.MaxSpeed = math.MaxUint32
	s.Pins[variant.PinRC].Func = variant.PinFuncSerial

	_, ws := Fix(s)
	require.Len(t, ws, 2)
	assert.Equal(t, uint32(math.MaxUint32), s.MaxSpeed)
	assert.Equal(t, variant.PinFuncSerial, s.Pins[variant.PinRC].Func)
}

// ------------------------------------------------------------
// rules outside the per-product cases
// ------------------------------------------------------------

func TestFix_OldFirmware(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.FirmwareVersion = 0x0104
	s.Serial14BitDeviceNumber = true
	s.SerialEnableAltDeviceNumber = true
	s.SerialDeviceNumber = 200
	s.SerialCRCForResponses = true
	s.Serial7BitResponses = true
	s.AutoHoming = true
	s.Pins[variant.PinTX].Func = variant.PinFuncLimitSwitchForward
	s.Pins[variant.PinRX] = settings.PinConfig{Func: variant.PinFuncLimitSwitchReverse, Pullup: true}

	got, ws := Fix(s)

	see := "  See https://www.pololu.com/docs/0J71 for firmware upgrade instructions.\n"
	want := "The firmware version on your device does not support 14-bit device numbers, so that option will be disabled." + see +
		"The firmware version on your device does not support the alternative device number, so it will be disabled." + see +
		"The device number is higher than 127 so it will be changed to 72.\n" +
		"The firmware version on your device does not support CRC for serial responses, so that option will be disabled." + see +
		"The firmware version on your device does not support 7-bit serial responses, so that option will be disabled." + see +
		"The firmware version on your device does not support auto homing (or homing in general), so it will be disabled.\n" +
		"The firmware version on your device does not support limit switches, so any pin configured as a limit switch will be changed to its default function." + see
	assert.Equal(t, want, ws.Text(""))

	assert.False(t, got.Serial14BitDeviceNumber)
	assert.False(t, got.SerialEnableAltDeviceNumber)
	assert.Equal(t, uint16(72), got.SerialDeviceNumber)
	assert.False(t, got.SerialCRCForResponses)
	assert.False(t, got.Serial7BitResponses)
	assert.False(t, got.AutoHoming)
	assert.Equal(t, settings.PinConfig{}, got.Pins[variant.PinTX])
	assert.Equal(t, settings.PinConfig{Pullup: true}, got.Pins[variant.PinRX])
	assert.Equal(t, "tx_config", ws[len(ws)-1].Field)
}

func TestFix_FirmwareGates(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.AutoHoming = true
	s.Serial14BitDeviceNumber = true
	s.Pins[variant.PinTX].Func = variant.PinFuncLimitSwitchForward

	// 1.05 has the serial extensions but not homing
	s.FirmwareVersion = 0x0105
	got, ws := Fix(s)
	require.Len(t, ws, 1)
	assert.Equal(t, "auto_homing", ws[0].Field)
	assert.True(t, got.Serial14BitDeviceNumber)
	assert.Equal(t, variant.PinFuncLimitSwitchForward, got.Pins[variant.PinTX].Func)

	s.FirmwareVersion = 0x0106
	_, ws = Fix(s)
	assert.Empty(t, ws)

	// unknown firmware trusts the settings
	s.FirmwareVersion = 0
	_, ws = Fix(s)
	assert.Empty(t, ws)
}

func TestFix_DeviceNumber14Bit(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.Serial14BitDeviceNumber = true
	s.SerialDeviceNumber = 0x4005
	s.SerialAltDeviceNumber = 0x3FFF

	got, ws := Fix(s)
	require.Len(t, ws, 1)
	assert.Equal(t, "The device number is higher than 16383 so it will be changed to 5.\n", ws[0].Message)
	assert.Equal(t, uint16(5), got.SerialDeviceNumber)
	assert.Equal(t, uint16(0x3FFF), got.SerialAltDeviceNumber)
}

func TestFix_VINVoltages(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.LowVINShutoffVoltage = 9001
	s.LowVINStartupVoltage = 9000
	s.HighVINShutoffVoltage = 8999

	got, ws := Fix(s)
	assert.Equal(t,
		"The low VIN startup voltage will be changed to 9501 mV.\n"+
			"The high VIN shutoff voltage will be changed to 10001 mV.\n",
		ws.Text(""))
	assert.Equal(t, uint16(9001), got.LowVINShutoffVoltage)
	assert.Equal(t, uint16(9501), got.LowVINStartupVoltage)
	assert.Equal(t, uint16(10001), got.HighVINShutoffVoltage)

	s = settings.Defaults(variant.TicT825)
	s.LowVINShutoffVoltage = 65000
	got, ws = Fix(s)
	require.Len(t, ws, 3)
	assert.Equal(t, "The low VIN shutoff voltage will be changed to 64000 mV.\n", ws[0].Message)
	assert.Equal(t, uint16(64500), got.LowVINStartupVoltage)
	assert.Equal(t, uint16(65000), got.HighVINShutoffVoltage)

	// a startup voltage this high would push high shutoff past uint16
	res, err := FixText([]byte("product: T825\nlow_vin_startup_voltage: 65300\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t,
		"The low VIN startup voltage will be changed to 64500 mV.\n"+
			"The high VIN shutoff voltage will be changed to 65000 mV.\n",
		res.Warnings.Text(""))
	assert.Equal(t, uint16(64500), res.Settings.LowVINStartupVoltage)
	assert.Equal(t, uint16(65000), res.Settings.HighVINShutoffVoltage)

	again, ws := Fix(res.Settings)
	assert.Empty(t, ws)
	assert.Equal(t, res.Settings, again)
}

func TestFix_VINEdgesAreFixedPoints(t *testing.T) {
	for _, p := range variant.Products() {
		for _, shutoff := range vinEdges {
			for _, startup := range vinEdges {
				for _, high := range vinEdges {
					s := settings.Defaults(p)
					s.LowVINShutoffVoltage = shutoff
					s.LowVINStartupVoltage = startup
					s.HighVINShutoffVoltage = high
					msg := fmt.Sprintf("%s shutoff=%d startup=%d high=%d", p, shutoff, startup, high)

					once, _ := Fix(s)
					assert.LessOrEqual(t, once.LowVINShutoffVoltage, once.LowVINStartupVoltage, msg)
					assert.LessOrEqual(t, once.LowVINStartupVoltage, once.HighVINShutoffVoltage, msg)

					twice, ws := Fix(once)
					if !assert.Empty(t, ws, msg) {
						return
					}
					assert.Equal(t, once, twice, msg)
				}
			}
		}
	}
}

func TestFix_MessagesAreFormatted(t *testing.T) {
	for _, p := range variant.Products() {
		for i, s := range extremes(p) {
			_, ws := Fix(s)
			for _, w := range ws {
				assert.NotContains(t, w.Message, "%!", "product %s case %d", p, i)
				assert.NotContains(t, w.Message, "%%", "product %s case %d", p, i)
				assert.True(t, strings.HasSuffix(w.Message, "\n"), "product %s case %d", p, i)
			}
		}
	}

	s := settings.Defaults(variant.TicT249)
	s.AGCBottomCurrentLimit = 8
	_, ws := Fix(s)
	require.Len(t, ws, 1)
	assert.Equal(t, "The AGC bottom current limit was invalid so it will be changed to 75%.\n", ws[0].Message)
}

func TestFix_InvalidEnums(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.ControlMode = 8
	s.SoftErrorResponse = 4
	s.InputScalingDegree = 3
	s.StepMode = 10
	s.DecayMode = 9
	s.Pins[variant.PinRX].Func = 42

	got, ws := Fix(s)
	assert.Equal(t,
		"The control mode was invalid so it will be changed to Serial/I2C/USB.\n"+
			"The soft error response was invalid so it will be changed to \"Decelerate to hold\".\n"+
			"The scaling degree was invalid so it will be changed to linear.\n"+
			"The step mode is invalid so it will be changed to 1 (full step).\n"+
			"The decay mode is invalid so it will be changed to the default.\n"+
			"The RX pin function was invalid so it will be changed to the default.\n",
		ws.Text(""))
	assert.Equal(t, settings.Defaults(variant.TicT825), got)

	// a code another product understands is dropped silently
	s = settings.Defaults(variant.TicT825)
	s.DecayMode = 5
	got, ws = Fix(s)
	assert.Empty(t, ws)
	assert.Equal(t, variant.DecayMode(0), got.DecayMode)
}

func TestFix_AGC(t *testing.T) {
	s := settings.Defaults(variant.TicT249)
	s.AGCMode = 3
	s.AGCBottomCurrentLimit = 8
	s.AGCCurrentBoostSteps = 4
	s.AGCFrequencyLimit = 4

	got, ws := Fix(s)
	assert.Equal(t,
		"The AGC mode was invalid so it will be changed to on.\n"+
			"The AGC bottom current limit was invalid so it will be changed to 75%.\n"+
			"The AGC current boost steps setting was invalid so it will be changed to 5.\n"+
			"The AGC frequency limit was invalid so it will be changed to off.\n",
		ws.Text(""))
	assert.Equal(t, settings.AGCModeOn, got.AGCMode)
	assert.Equal(t, settings.AGCBottomCurrentLimit75, got.AGCBottomCurrentLimit)
	assert.Equal(t, settings.AGCCurrentBoostSteps5, got.AGCCurrentBoostSteps)
	assert.Equal(t, settings.AGCFrequencyLimitOff, got.AGCFrequencyLimit)

	// other products never carry AGC settings
	s = settings.Defaults(variant.TicT825)
	s.AGCMode = settings.AGCModeOn
	s.AGCBottomCurrentLimit = 3
	got, ws = Fix(s)
	assert.Empty(t, ws)
	assert.Equal(t, settings.AGCModeOff, got.AGCMode)
	assert.Equal(t, settings.AGCBottomCurrentLimit(0), got.AGCBottomCurrentLimit)
}

func TestFix_HPDriver(t *testing.T) {
	s := settings.Defaults(variant.Tic36v4)
	s.HPDecmod = 6
	s.HPToff = 0
	s.HPTblank = 0
	s.HPAbt = true

	got, ws := Fix(s)
	assert.Equal(t,
		"The decay mode was invalid so it will be changed to \"Slow / mixed\".\n"+
			"The fixed off time will be increased to 2000 ns, which is the minimum valid value given other settings.\n",
		ws.Text(""))
	assert.Equal(t, settings.HPDecmodSlowMixed, got.HPDecmod)
	assert.Equal(t, uint8(3), got.HPToff)

	s = settings.Defaults(variant.TicT825)
	s.HPDecmod = settings.HPDecmodFast
	got, ws = Fix(s)
	assert.Empty(t, ws)
	assert.Equal(t, settings.HPDecmodSlow, got.HPDecmod)
}

func TestFix_RestrictedCurrent(t *testing.T) {
	s := settings.Defaults(variant.Tic36v4)
	s.CurrentLimit = 5000

	got, ws := Fix(s)
	require.Len(t, ws, 1)
	assert.Equal(t, "The current limit is too high so it will be lowered to 3939 mA.\n", ws[0].Message)
	assert.Equal(t, uint32(3939), got.CurrentLimit)

	s.HPEnableUnrestrictedCurrentLimits = true
	got, ws = Fix(s)
	assert.Empty(t, ws)
	assert.LessOrEqual(t, got.CurrentLimit, uint32(5000))
	assert.Greater(t, got.CurrentLimit, uint32(4900))
}

func TestFix_HomingSpeeds(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.MaxSpeed = 1000
	s.HomingSpeedTowards = 500000001
	s.HomingSpeedAway = 500000002

	got, ws := Fix(s)
	assert.Equal(t,
		"The homing speed towards is too high so it will be lowered to 500000000.\n"+
			"The homing speed away is too high so it will be lowered to 500000000.\n",
		ws.Text(""))
	assert.Equal(t, uint32(1000), got.MaxSpeed)
	assert.Equal(t, variant.MaxSpeed, got.HomingSpeedAway)
}

func TestFix_WarningFields(t *testing.T) {
	s := settings.Defaults(variant.TicT825)
	s.InputMin = 10
	s.InputNeutralMin = 5
	s.Pins[variant.PinSDA].Func = variant.PinFuncUserIO

	_, ws := Fix(s)
	require.Len(t, ws, 2)
	assert.Equal(t, "input_scaling", ws[0].Field)
	assert.Equal(t, "sda_config", ws[1].Field)
}

func TestFixText_ReadErrors(t *testing.T) {
	tests := map[string]string{
		"product: T825\nserial_baud_rate: 1111111111111111111": "There was an error reading the settings file.  The serial_baud_rate value is out of range.",
		"product: T825\nserial_baud_rate: -1111111111111111111": "There was an error reading the settings file.  The serial_baud_rate value is out of range.",
		"product: T825\nserial_baud_rate: -11a":                 "There was an error reading the settings file.  Invalid serial_baud_rate value.",
	}
	for text, want := range tests {
		_, err := FixText([]byte(text), Options{})
		require.Error(t, err)

		var re *ReadError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, want, err.Error())
	}
}

func TestFixText_FirmwareOption(t *testing.T) {
	res, err := FixText([]byte("product: N825\n"), Options{FirmwareVersion: 0x0104})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "serial_7bit_responses", res.Warnings[0].Field)
	assert.Contains(t, string(res.Text), "\nserial_7bit_responses: false\n")
	assert.Equal(t, uint16(0x0104), res.Settings.FirmwareVersion)
}

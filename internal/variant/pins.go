// internal/variant/pins.go
package variant

// Pin identifies one of the five multiplexed I/O pins.
type Pin uint8

const (
	PinSCL Pin = 0
	PinSDA Pin = 1
	PinTX  Pin = 2
	PinRX  Pin = 3
	PinRC  Pin = 4
)

// PinCount is the number of multiplexed pins.
const PinCount = 5

var pinLabels = [PinCount]string{"SCL", "SDA", "TX", "RX", "RC"}

var pinKeys = [PinCount]string{
	"scl_config",
	"sda_config",
	"tx_config",
	"rx_config",
	"rc_config",
}

// String returns the pin label as printed on the board.
func (p Pin) String() string {
	if p >= PinCount {
		return "?"
	}
	return pinLabels[p]
}

// Key returns the settings-file key holding the pin configuration.
func (p Pin) Key() string {
	if p >= PinCount {
		return ""
	}
	return pinKeys[p]
}

// Pins lists every pin in settings-file order.
var Pins = [PinCount]Pin{PinSCL, PinSDA, PinTX, PinRX, PinRC}

// PinFunc is the logical role assigned to a pin.
type PinFunc uint8

const (
	PinFuncDefault            PinFunc = 0
	PinFuncUserIO             PinFunc = 1
	PinFuncUserInput          PinFunc = 2
	PinFuncPotPower           PinFunc = 3
	PinFuncSerial             PinFunc = 4
	PinFuncRC                 PinFunc = 5
	PinFuncEncoder            PinFunc = 6
	PinFuncLimitSwitchForward PinFunc = 7
	PinFuncLimitSwitchReverse PinFunc = 8
	PinFuncKillSwitch         PinFunc = 9
)

// PinFuncNames is the settings-file spelling of pin functions.
var PinFuncNames = NameTable{
	{"default", uint8(PinFuncDefault)},
	{"user_io", uint8(PinFuncUserIO)},
	{"user_input", uint8(PinFuncUserInput)},
	{"pot_power", uint8(PinFuncPotPower)},
	{"serial", uint8(PinFuncSerial)},
	{"rc", uint8(PinFuncRC)},
	{"encoder", uint8(PinFuncEncoder)},
	{"kill_switch", uint8(PinFuncKillSwitch)},
	{"limit_switch_forward", uint8(PinFuncLimitSwitchForward)},
	{"limit_switch_reverse", uint8(PinFuncLimitSwitchReverse)},
}

// Valid reports whether f is a known function.
func (f PinFunc) Valid() bool {
	return PinFuncNames.Has(uint8(f))
}

// IsLimitSwitch reports whether f is one of the limit switch functions.
func (f PinFunc) IsLimitSwitch() bool {
	return f == PinFuncLimitSwitchForward || f == PinFuncLimitSwitchReverse
}

// ------------------------------------------------------------
// PIN CAPABILITY MATRIX
// ------------------------------------------------------------

// Restriction records a function a pin is electrically unable to serve.
type Restriction struct {
	Pin  Pin
	Func PinFunc
}

// Restrictions is the capability matrix shared by all variants.
// Entries are grouped by function; checks and warnings follow this order.
var Restrictions = []Restriction{
	{PinRC, PinFuncUserIO},

	{PinSDA, PinFuncPotPower},
	{PinTX, PinFuncPotPower},
	{PinRX, PinFuncPotPower},
	{PinRC, PinFuncPotPower},

	{PinRC, PinFuncSerial},

	{PinSDA, PinFuncRC},
	{PinSCL, PinFuncRC},
	{PinTX, PinFuncRC},
	{PinRX, PinFuncRC},

	{PinSCL, PinFuncEncoder},
	{PinSDA, PinFuncEncoder},
	{PinRC, PinFuncEncoder},
}

// CanHold reports whether pin may be assigned fn.
func CanHold(pin Pin, fn PinFunc) bool {
	for _, r := range Restrictions {
		if r.Pin == pin && r.Func == fn {
			return false
		}
	}
	return true
}

// AnalogCapable reports whether the pin has an analog input channel.
func AnalogCapable(pin Pin) bool {
	return pin != PinRC
}

// ReservedPin describes a pin a variant dedicates to an on-board function.
type ReservedPin struct {
	Pin  Pin
	Role string
}

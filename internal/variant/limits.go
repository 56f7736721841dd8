// internal/variant/limits.go
package variant

import (
	"periph.io/x/conn/v3/physic"
)

// Hardware limits shared by all variants.
// These values are fixed by firmware and MUST NOT be configurable.

// ---- SERIAL ----

const (
	MinBaudRate uint32 = 200
	MaxBaudRate uint32 = 115385

	// baudRateGeneratorFactor is the UART clock divided by the oversampling.
	baudRateGeneratorFactor uint32 = 12000000
)

// DeviceNumberMask7Bit and DeviceNumberMask14Bit bound serial device numbers.
const (
	DeviceNumberMask7Bit  uint16 = 0x7F
	DeviceNumberMask14Bit uint16 = 0x3FFF
)

// MaxCommandTimeout is in milliseconds.
const MaxCommandTimeout uint16 = 60000

// ---- VIN ----

const (
	MaxLowVINShutoff  uint16 = 64000
	VINHysteresis     uint16 = 500
	MaxLowVINStartup  uint16 = MaxLowVINShutoff + VINHysteresis
	MinVINCalibration int16  = -500
	MaxVINCalibration int16  = 500
)

// ---- INPUT SCALING ----

const MaxInputScaling uint16 = 4095

// Default input scaling breakpoints.
const (
	DefaultInputMin        uint16 = 0
	DefaultInputNeutralMin uint16 = 2015
	DefaultInputNeutralMax uint16 = 2080
	DefaultInputMax        uint16 = 4095
)

// ---- ENCODER ----

const (
	MaxEncoderPrescaler  uint32 = 0x7FFFFFFF
	MaxEncoderPostscaler uint32 = 0x7FFFFFFF
)

// ---- MOTION ----

const (
	// MaxSpeed is in microsteps per 10000 s.
	MaxSpeed uint32 = 500000000

	// SpeedUnitsPerHz converts speed units to steps per second.
	SpeedUnitsPerHz uint32 = 10000

	MinAccel uint32 = 100
	MaxAccel uint32 = 0x7FFFFFFF
)

// ---- FIRMWARE ----

// Firmware versions (BCD) that introduced features.
const (
	FirmwareSerialExtensions uint16 = 0x0105 // 14-bit numbers, alt number, CRC/7-bit responses, limit switches
	FirmwareHoming           uint16 = 0x0106
)

// ---- 36v4 DRIVER TIMING ----

const (
	hpDeadTimeNs       = 850
	hpMinTblank        = 0x32
	hpGateChargeBudget = 4000
)

// AchievableBaudRate returns the rate the UART actually produces when
// asked for baud. Requests outside [MinBaudRate, MaxBaudRate] are clamped.
func AchievableBaudRate(baud uint32) uint32 {
	return baudRateFromBRG(baudRateToBRG(baud))
}

func baudRateToBRG(baud uint32) uint32 {
	if baud < MinBaudRate {
		baud = MinBaudRate
	}
	if baud > MaxBaudRate {
		baud = MaxBaudRate
	}
	return (baudRateGeneratorFactor + baud/2) / baud
}

func baudRateFromBRG(brg uint32) uint32 {
	if brg == 0 {
		return 0
	}
	return (baudRateGeneratorFactor + brg/2) / brg
}

// SpeedFrequency converts a speed in microsteps per 10000 s to a step rate.
func SpeedFrequency(speed uint32) physic.Frequency {
	return physic.Frequency(speed) * 100 * physic.MicroHertz
}

// HPToffNs is the fixed off time of the 36v4 driver for a TOFF register value.
func HPToffNs(toff uint8) uint32 {
	return (uint32(toff) + 1) * 500
}

// HPGateChargeOK reports whether the 36v4 driver timing leaves enough time
// to charge the MOSFET gates (DRV8711 datasheet, equation 3), assuming a
// dead time of 850 ns and a gate charge of at most 20 nC.
func HPGateChargeOK(toff, tblank uint8, abt bool) bool {
	if tblank < hpMinTblank {
		tblank = hpMinTblank
	}
	tblankNs := uint32(tblank) * 20
	if abt {
		tblankNs /= 2
	}
	return 2*hpDeadTimeNs+tblankNs+HPToffNs(toff) > hpGateChargeBudget
}

// internal/variant/firmware.go
package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFirmwareVersion accepts the displayed form "1.06" or the BCD value
// "0x0106". An empty string means unknown (0).
func ParseFirmwareVersion(text string) (uint16, error) {
	if text == "" {
		return 0, nil
	}

	if hex, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return 0, fmt.Errorf("invalid firmware version %q", text)
		}
		return uint16(v), nil
	}

	major, minor, ok := strings.Cut(text, ".")
	if !ok || !bcdDigits(major, 2) || len(minor) != 2 || !bcdDigits(minor, 2) {
		return 0, fmt.Errorf("invalid firmware version %q", text)
	}

	// decimal digits read as hex give the BCD encoding
	hi, _ := strconv.ParseUint(major, 16, 8)
	lo, _ := strconv.ParseUint(minor, 16, 8)
	return uint16(hi)<<8 | uint16(lo), nil
}

// FormatFirmwareVersion renders a BCD version the way the device reports it.
func FormatFirmwareVersion(v uint16) string {
	return fmt.Sprintf("%x.%02x", v>>8, v&0xFF)
}

func bcdDigits(s string, max int) bool {
	if s == "" || len(s) > max {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

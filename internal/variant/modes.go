// internal/variant/modes.go
package variant

// StepMode is the microstepping mode code.
type StepMode uint8

const (
	StepModeFull            StepMode = 0
	StepModeHalf            StepMode = 1
	StepModeMicrostep4      StepMode = 2
	StepModeMicrostep8      StepMode = 3
	StepModeMicrostep16     StepMode = 4
	StepModeMicrostep32     StepMode = 5
	StepModeMicrostep2_100p StepMode = 6
	StepModeMicrostep64     StepMode = 7
	StepModeMicrostep128    StepMode = 8
	StepModeMicrostep256    StepMode = 9
)

// StepModeNames is the settings-file spelling of step modes.
var StepModeNames = NameTable{
	{"1", uint8(StepModeFull)},
	{"2", uint8(StepModeHalf)},
	{"2_100p", uint8(StepModeMicrostep2_100p)},
	{"4", uint8(StepModeMicrostep4)},
	{"8", uint8(StepModeMicrostep8)},
	{"16", uint8(StepModeMicrostep16)},
	{"32", uint8(StepModeMicrostep32)},
	{"64", uint8(StepModeMicrostep64)},
	{"128", uint8(StepModeMicrostep128)},
	{"256", uint8(StepModeMicrostep256)},
	{"full", uint8(StepModeFull)},
	{"half", uint8(StepModeHalf)},
}

// DecayMode is the raw decay mode code.
// Its meaning depends on the variant: code 0 is "mixed" on the T825 but
// "mixed50" on the T834.
type DecayMode uint8

// DecayModeGenericMax is the highest code any driver understands.
const DecayModeGenericMax DecayMode = 7

// ---- decay name tables (settings-file spelling) ----

var decayNamesGeneric = NameTable{
	{"mixed", 0},
	{"slow", 1},
	{"fast", 2},
	{"mode3", 3},
	{"mode4", 4},
	{"mode5", 5},
	{"mode6", 6},
	{"mode7", 7},
}

var decayNamesT825 = NameTable{
	{"mixed", 0},
	{"slow", 1},
	{"fast", 2},
}

var decayNamesT834 = NameTable{
	{"slow", 1},
	{"mixed25", 3},
	{"mixed50", 0},
	{"mixed75", 4},
	{"fast", 2},
}

var decayNamesT500 = NameTable{
	{"auto", 0},
}

var decayNamesT249 = NameTable{
	{"mixed", 0},
}

// DecayModeCode resolves a decay mode name written for any variant.
// Validity for a particular variant is decided later by the fixer.
func DecayModeCode(name string) (DecayMode, bool) {
	for _, t := range []NameTable{
		decayNamesGeneric,
		decayNamesT825,
		decayNamesT834,
		decayNamesT500,
		decayNamesT249,
	} {
		if code, ok := t.Code(name); ok {
			return DecayMode(code), true
		}
	}
	return 0, false
}

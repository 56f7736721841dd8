// internal/variant/names.go
package variant

// Name binds a settings-file name to a numeric code.
type Name struct {
	Name string
	Code uint8
}

// NameTable is an ordered name/code list.
// Several names may share a code (aliases); the first one wins on output.
type NameTable []Name

// Code returns the code for name.
func (t NameTable) Code(name string) (uint8, bool) {
	for _, n := range t {
		if n.Name == name {
			return n.Code, true
		}
	}
	return 0, false
}

// Name returns the first name registered for code.
func (t NameTable) Name(code uint8) (string, bool) {
	for _, n := range t {
		if n.Code == code {
			return n.Name, true
		}
	}
	return "", false
}

// Has reports whether code has a name in the table.
func (t NameTable) Has(code uint8) bool {
	_, ok := t.Name(code)
	return ok
}

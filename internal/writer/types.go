// internal/writer/types.go
package writer

import "github.com/tamzrod/tic-settings/internal/batch"

// ModeFile writes the single fixed file to Plan.Path ("-" = stdout).
// The other modes are the config.Output* batch modes.
const ModeFile = "file"

// Plan is the fully-built output plan for one command.
type Plan struct {
	Mode string
	Dir  string // ModeDir only
	Path string // ModeFile only

	// Label prefixes warnings and errors with the file path.
	Label bool
}

// Writer delivers one fix result: diagnostics first, then the settings text.
type Writer interface {
	Write(res batch.Result) error
}

// Files abstracts the filesystem writes the writer performs.
type Files interface {
	WriteFile(path string, data []byte) error
}

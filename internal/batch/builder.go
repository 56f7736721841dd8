// internal/batch/builder.go
package batch

import (
	"errors"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cfg "github.com/tamzrod/tic-settings/internal/config"
)

// StdioPath names standard input (and, for writers, standard output).
const StdioPath = "-"

// Build constructs a Runner reading from the filesystem, with "-" read
// from stdin.
func Build(b cfg.BatchConfig, paths []string, firmware uint16, stdin io.Reader, log *zap.Logger) (*Runner, error) {
	return New(
		Config{
			Workers:         b.Workers,
			FirmwareVersion: firmware,
			Paths:           paths,
		},
		&FileSource{Stdin: stdin},
		log,
	)
}

// FileSource reads settings files from disk. Stdin can be read only once.
type FileSource struct {
	Stdin io.Reader

	mu        sync.Mutex
	stdinRead bool
}

var errStdinConsumed = errors.New("standard input already read")

func (s *FileSource) ReadFile(path string) ([]byte, error) {
	if path != StdioPath {
		return os.ReadFile(path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Stdin == nil || s.stdinRead {
		return nil, errStdinConsumed
	}
	s.stdinRead = true
	return io.ReadAll(s.Stdin)
}

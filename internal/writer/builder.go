// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tamzrod/tic-settings/internal/batch"
	cfg "github.com/tamzrod/tic-settings/internal/config"
)

// BuildPlan converts the batch output config into a Plan for paths.
// Assumes config has already passed Validate and Normalize.
func BuildPlan(b cfg.BatchConfig, paths []string) (Plan, error) {
	if len(paths) == 0 {
		return Plan{}, errors.New("writer: at least one path required")
	}

	plan := Plan{
		Mode:  b.Output,
		Dir:   b.Dir,
		Label: len(paths) > 1,
	}

	switch b.Output {
	case cfg.OutputStdout:
		if len(paths) > 1 {
			return Plan{}, errors.New("writer: stdout output takes exactly one file")
		}
	case cfg.OutputInPlace, cfg.OutputDir:
		for _, p := range paths {
			if p == batch.StdioPath {
				return Plan{}, fmt.Errorf("writer: %s output cannot be used with standard input", b.Output)
			}
		}
		if b.Output == cfg.OutputDir {
			if err := checkDistinctNames(paths); err != nil {
				return Plan{}, err
			}
		}
	case cfg.OutputNone:
	default:
		return Plan{}, fmt.Errorf("writer: unknown output %q", b.Output)
	}

	return plan, nil
}

// checkDistinctNames rejects inputs that would land on the same file in
// the output directory.
func checkDistinctNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("writer: %s and %s would both be written to %s", prev, p, name)
		}
		seen[name] = p
	}
	return nil
}

// FilePlan is the plan for fixing one file into out ("-" = stdout).
func FilePlan(out string) Plan {
	return Plan{Mode: ModeFile, Path: out}
}

// OSFiles writes to the local filesystem.
type OSFiles struct{}

func (OSFiles) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

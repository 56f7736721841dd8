// internal/config/config.go
package config

import "time"

// Config is the tool configuration. It never carries Tic settings.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug | info | warn | error
	Format string `mapstructure:"format" yaml:"format"` // json | console
	Output string `mapstructure:"output" yaml:"output"` // stderr | stdout | file path

	// File rotation, used only when Output is a path.
	MaxSize    int  `mapstructure:"max_size" yaml:"max_size"` // MB
	MaxBackups int  `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int  `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool `mapstructure:"compress" yaml:"compress"`
}

// ---- SERVER ----

type ServerConfig struct {
	Listen          string        `mapstructure:"listen" yaml:"listen"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// MaxBodyBytes bounds one uploaded settings file.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// ---- BATCH ----

// Batch output modes.
const (
	OutputStdout  = "stdout"
	OutputInPlace = "inplace"
	OutputDir     = "dir"
	OutputNone    = "none"
)

type BatchConfig struct {
	Workers int    `mapstructure:"workers" yaml:"workers"` // 0 = one per CPU
	Output  string `mapstructure:"output" yaml:"output"`
	Dir     string `mapstructure:"dir" yaml:"dir"` // required when Output is "dir"
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Server: ServerConfig{
			Listen:          "127.0.0.1:8625",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Batch: BatchConfig{
			Output: OutputNone,
		},
	}
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/thisisjab/dbir/api"
	"github.com/thisisjab/dbir/engine"
	"github.com/thisisjab/dbir/sink"
	"github.com/thisisjab/dbir/source"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	Logger  LoggerConfig   `yaml:"logger"`
	Engine  EngineConfig   `yaml:"engine"`
	Sink    SinkConfig     `yaml:"sink"`
	Sources []SourceConfig `yaml:"sources"`
	API     api.Config     `yaml:"api"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Type   string `yaml:"type"`
	Output string `yaml:"output"`
}

type EngineConfig struct {
	Workers           uint          `yaml:"workers"`
	UnitsBufferSize   uint          `yaml:"units_buffer_size"`
	SinkBufferSize    uint          `yaml:"sink_buffer_size"`
	SinkFlushInterval time.Duration `yaml:"sink_flush_interval"`
	LogDiagnostics    bool          `yaml:"log_diagnostics"`
}

type SinkConfig struct {
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

type SourceConfig struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

// Default is used when no config file is given.
func Default() Config {
	return Config{
		Logger: LoggerConfig{Level: "info", Type: "colored-text", Output: "stderr"},
		Engine: EngineConfig{Workers: 4, UnitsBufferSize: 16},
		Sink:   SinkConfig{Type: "stdout"},
		API:    api.Config{Addr: "localhost:8000"},
	}
}

// Load reads a YAML config file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file content: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the logger described by the logger section.
func (cfg Config) NewLogger() (*slog.Logger, error) {
	return parseLoggerConfig(cfg.Logger)
}

// Parse builds the engine config. stdout is where a "stdout" sink writes.
// Sources given in the config file are only used when sources is empty.
func (cfg Config) Parse(logger *slog.Logger, stdout io.Writer, sources map[string]engine.UnitSource) (*engine.Config, error) {
	sk, err := parseSinkConfig(cfg.Sink, stdout)
	if err != nil {
		return nil, fmt.Errorf("cannot create sink: %w", err)
	}

	if len(sources) == 0 {
		sources = make(map[string]engine.UnitSource, len(cfg.Sources))
		for _, sc := range cfg.Sources {
			s, err := parseSourceConfig(logger, sc)
			if err != nil {
				return nil, fmt.Errorf("cannot create source `%s`: %w", sc.Name, err)
			}
			sources[s.Name()] = s
		}
	}

	return &engine.Config{
		Sources:           sources,
		Sink:              sk,
		SinkBufferMaxSize: cfg.Engine.SinkBufferSize,
		SinkFlushInterval: cfg.Engine.SinkFlushInterval,
		UnitsBufferSize:   cfg.Engine.UnitsBufferSize,
		WorkersCount:      cfg.Engine.Workers,
		LogDiagnostics:    cfg.Engine.LogDiagnostics,
	}, nil
}

func parseLoggerConfig(cfg LoggerConfig) (*slog.Logger, error) {
	var handler slog.Handler

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var w io.Writer
	switch cfg.Output {
	case "stderr", "":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	switch cfg.Type {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "colored-text", "":
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	default:
		return nil, fmt.Errorf("invalid log type: %s", cfg.Type)
	}

	return slog.New(handler), nil
}

func parseSinkConfig(cfg SinkConfig, stdout io.Writer) (engine.Sink, error) {
	switch cfg.Type {
	case "stdout", "":
		var c struct {
			Format string `yaml:"format"`
		}
		if err := remarshal(cfg.Config, &c); err != nil {
			return nil, fmt.Errorf("cannot parse stdout sink config: %w", err)
		}

		format, err := sink.ParseFormat(c.Format)
		if err != nil {
			return nil, err
		}

		return sink.NewWriterSink(stdout, format)

	case "file":
		var fileConfig sink.FileSinkConfig
		if err := remarshal(cfg.Config, &fileConfig); err != nil {
			return nil, fmt.Errorf("cannot parse file sink config: %w", err)
		}

		return sink.NewFileSink(fileConfig)

	default:
		return nil, fmt.Errorf("invalid sink type: %s", cfg.Type)
	}
}

func parseSourceConfig(logger *slog.Logger, cfg SourceConfig) (engine.UnitSource, error) {
	switch cfg.Type {
	case "file":
		var fileConfig source.FileSourceConfig
		if err := remarshal(cfg.Config, &fileConfig); err != nil {
			return nil, fmt.Errorf("cannot parse file source config: %w", err)
		}

		if cfg.Name != "" {
			fileConfig.Name = cfg.Name
		}

		return source.NewFileSource(logger, fileConfig)

	default:
		return nil, fmt.Errorf("invalid unit source type: %s", cfg.Type)
	}
}

// remarshal converts a generic value decoded from YAML, such as a
// map[string]any, into a concrete struct. output must be a pointer.
func remarshal(input any, output any) error {
	if input == nil {
		return nil
	}

	yamlBytes, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}

	if err := yaml.Unmarshal(yamlBytes, output); err != nil {
		return fmt.Errorf("failed to unmarshal from YAML: %w", err)
	}

	return nil
}

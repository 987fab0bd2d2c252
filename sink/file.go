package sink

import (
	"fmt"
	"os"
)

type FileSinkConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// FileSink appends compiled units to a file.
type FileSink struct {
	*WriterSink
	file *os.File
}

func NewFileSink(cfg FileSinkConfig) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}

	w, err := NewWriterSink(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileSink{WriterSink: w, file: f}, nil
}

func (s *FileSink) Close() error {
	return s.file.Close()
}

// Command dbirc compiles DBIR schema-migration sources.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/thisisjab/dbir/api"
	"github.com/thisisjab/dbir/config"
	"github.com/thisisjab/dbir/engine"
	"github.com/thisisjab/dbir/sink"
	"github.com/thisisjab/dbir/source"
)

var version = "dev"

type Globals struct {
	Config string `name:"config" short:"c" help:"Path to a YAML config file." type:"existingfile"`
	Format string `name:"format" short:"f" help:"Output format of compiled units: text, json or yaml. Overrides the config file."`
}

var CLI struct {
	Globals

	Compile CompileCmd `cmd:"" help:"Compile DBIR files once."`
	Watch   WatchCmd   `cmd:"" help:"Compile DBIR files again whenever they change."`
	Run     RunCmd     `cmd:"" help:"Compile the sources listed in the config file."`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP compile service."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

type CompileCmd struct {
	Files []string `arg:"" help:"DBIR files to compile."`
}

func (c *CompileCmd) Run(g *Globals) error {
	return g.compile(c.Files, false)
}

type WatchCmd struct {
	Files []string `arg:"" help:"DBIR files to watch."`
}

func (c *WatchCmd) Run(g *Globals) error {
	return g.compile(c.Files, true)
}

type RunCmd struct{}

func (c *RunCmd) Run(g *Globals) error {
	return g.compile(nil, false)
}

type ServeCmd struct {
	Addr string `help:"Address to listen on. Overrides the config file."`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	if c.Addr != "" {
		cfg.API.Addr = c.Addr
	}

	server, err := api.NewServer(cfg.API, logger)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("server stopped.")
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("dbirc version %s\n", version)
	return nil
}

func (g *Globals) load() (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return cfg, nil, err
		}
	}

	if g.Format != "" {
		if _, err := sink.ParseFormat(g.Format); err != nil {
			return cfg, nil, err
		}
		if cfg.Sink.Type == "" || cfg.Sink.Type == "stdout" {
			cfg.Sink = config.SinkConfig{Type: "stdout", Config: map[string]any{"format": g.Format}}
		}
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return cfg, nil, fmt.Errorf("cannot create logger: %w", err)
	}

	return cfg, logger, nil
}

// compile runs the engine over files, or over the configured sources when
// files is empty.
func (g *Globals) compile(files []string, watch bool) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	sources := make(map[string]engine.UnitSource, len(files))
	for _, f := range files {
		s, err := source.NewFileSource(logger, source.FileSourceConfig{Path: f, Watch: watch})
		if err != nil {
			return fmt.Errorf("cannot create source `%s`: %w", f, err)
		}
		sources[s.Name()] = s
	}

	engineCfg, err := cfg.Parse(logger, os.Stdout, sources)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}
	if c, ok := engineCfg.Sink.(io.Closer); ok {
		defer c.Close()
	}

	e, err := engine.New(*engineCfg, logger)
	if err != nil {
		return fmt.Errorf("cannot create engine: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("engine error: %w", err)
	}

	stats := e.Stats()
	logger.Debug("engine stopped.", "compiled", stats.Compiled, "failed", stats.Failed)

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d unit(s) failed to compile", stats.Failed, stats.Compiled)
	}
	return nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal. shutting down.", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dbirc"),
		kong.Description("Compiler frontend for DBIR schema-migration sources."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}

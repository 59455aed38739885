package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/jagged/layout"
)

// Context is shared by every command.
type Context struct {
	Out    io.Writer
	Logger *zap.Logger
	// Width truncates printed lines; zero leaves them whole.
	Width int
}

// CLI is the command-line interface.
var CLI struct {
	LogLevel string `help:"Log level" default:"warn" enum:"debug,info,warn,error"`
	NoColor  bool   `help:"Disable colored output"`

	Show    ShowCmd    `cmd:"" help:"Print an array"`
	Slice   SliceCmd   `cmd:"" help:"Slice an array and print the result"`
	Type    TypeCmd    `cmd:"" help:"Print the WIT type of an array's rows"`
	Explore ExploreCmd `cmd:"" help:"Slice an array interactively"`
	Op      OpCmd      `cmd:"" help:"Apply a structural operation to an array"`
	Guest   GuestCmd   `cmd:"" help:"Read a list out of a wasm module's memory"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jagged"),
		kong.Description("Inspect and slice nested array layouts described in YAML."),
	)

	if CLI.NoColor {
		color.NoColor = true
	}

	logger, err := newLogger(CLI.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	layout.SetLogger(logger.Named("layout"))

	appCtx := &Context{Out: os.Stdout, Logger: logger}
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			appCtx.Width = w
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

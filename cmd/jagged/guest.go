package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/index"
	"github.com/wippyai/jagged/layout"
	"github.com/wippyai/jagged/wasmview"
)

// GuestCmd reads a list out of a core module's exported memory.
type GuestCmd struct {
	Module      string `arg:"" help:"Core wasm module exporting its memory" type:"existingfile"`
	Offsets     uint32 `help:"Address of the row offsets" required:""`
	Rows        uint32 `help:"Number of rows" required:""`
	Data        uint32 `help:"Address of the values" required:""`
	Width       string `help:"Offset width" default:"i32" enum:"i8,u8,i32,u32,i64"`
	DType       string `name:"dtype" help:"Value type" default:"int32"`
	MemoryLimit uint32 `help:"Memory limit in 64KiB pages; zero keeps the runtime default"`
}

func (cmd *GuestCmd) Run(ctx *Context) error {
	width, ok := index.ParseWidth(cmd.Width)
	if !ok {
		return errors.InvalidInput(errors.PhaseLoad, "unknown offset width "+cmd.Width)
	}
	dt, ok := layout.ParseDType(cmd.DType)
	if !ok {
		return errors.InvalidInput(errors.PhaseLoad, "unknown dtype "+cmd.DType)
	}
	wasm, err := os.ReadFile(cmd.Module)
	if err != nil {
		return errors.Load("read module", err)
	}

	bg := context.Background()
	g, err := wasmview.Instantiate(bg, wasm, &wasmview.Config{MemoryLimitPages: cmd.MemoryLimit})
	if err != nil {
		return err
	}
	defer func() { _ = g.Close(bg) }()

	mem, err := g.Memory()
	if err != nil {
		return err
	}
	list, err := wasmview.ReadJagged(mem, cmd.Offsets, cmd.Rows, width, cmd.Data, dt)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("read guest list",
		zap.String("module", cmd.Module),
		zap.Uint32("memory_bytes", mem.Size()),
		zap.Int64("rows", list.Len()),
	)

	printHeader(ctx, "", list)
	s, err := layout.Format(list)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, fit(s, ctx.Width))
	return nil
}

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/layout"
)

// OpCmd applies a structural operation to an array.
type OpCmd struct {
	File   string `arg:"" help:"Layout file" type:"existingfile"`
	Op     string `arg:"" help:"Operation to apply" enum:"num,flatten,localindex,rpad,rpad-clip,fillna,simplify"`
	Array  string `short:"a" help:"Array name when the file holds several"`
	Axis   int    `help:"Axis to work on; negative values count from the innermost lists" default:"1"`
	Target int64  `help:"Length to pad lists to (rpad, rpad-clip)"`
	With   string `help:"One-row array of the same file to fill missing values with (fillna)"`
}

func (cmd *OpCmd) Run(ctx *Context) error {
	c, err := loadArray(ctx, cmd.File, cmd.Array)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("structural operation",
		zap.String("op", cmd.Op),
		zap.Int("axis", cmd.Axis),
	)

	var out any
	switch cmd.Op {
	case "num":
		out, err = layout.Num(c, cmd.Axis)
	case "flatten":
		out, err = layout.Flatten(c, cmd.Axis)
	case "localindex":
		out, err = layout.LocalIndex(c, cmd.Axis)
	case "rpad":
		out, err = layout.RPad(c, cmd.Target, cmd.Axis)
	case "rpad-clip":
		out, err = layout.RPadAndClip(c, cmd.Target, cmd.Axis)
	case "fillna":
		if cmd.With == "" {
			return errors.InvalidInput(errors.PhaseTransform, "fillna needs --with")
		}
		var value layout.Content
		if value, err = loadArray(ctx, cmd.File, cmd.With); err != nil {
			return err
		}
		out, err = layout.FillNA(c, value)
	case "simplify":
		out, err = layout.Simplify(c)
	default:
		return errors.Unsupported(errors.PhaseTransform, "operation "+cmd.Op)
	}
	if err != nil {
		return err
	}

	s, err := layout.Format(out)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, fit(s, ctx.Width))
	return nil
}

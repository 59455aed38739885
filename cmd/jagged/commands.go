package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/wippyai/jagged/errors"
	"github.com/wippyai/jagged/form"
	"github.com/wippyai/jagged/layout"
	"github.com/wippyai/jagged/slice"
	"github.com/wippyai/jagged/witform"
)

var (
	headerFmt = color.New(color.FgBlue, color.Bold).SprintfFunc()
	labelFmt  = color.New(color.FgCyan).SprintFunc()
	typeFmt   = color.New(color.FgGreen).SprintFunc()
)

// ShowCmd prints an array.
type ShowCmd struct {
	File  string `arg:"" help:"Layout file" type:"existingfile"`
	Array string `short:"a" help:"Array name when the file holds several"`
	Tree  bool   `short:"t" help:"Print the node tree"`
}

func (cmd *ShowCmd) Run(ctx *Context) error {
	c, err := loadArray(ctx, cmd.File, cmd.Array)
	if err != nil {
		return err
	}
	printHeader(ctx, cmd.Array, c)
	if cmd.Tree {
		for _, line := range tree(c) {
			fmt.Fprintln(ctx.Out, fit(line, ctx.Width))
		}
	}
	s, err := layout.Format(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, fit(s, ctx.Width))
	return nil
}

// SliceCmd applies a slice expression.
type SliceCmd struct {
	File  string `arg:"" help:"Layout file" type:"existingfile"`
	Expr  string `arg:"" optional:"" help:"Slice expression, as written between brackets"`
	Array string `short:"a" help:"Array name when the file holds several"`
	By    string `help:"Array of the same file to index with, applied before the expression"`
}

func (cmd *SliceCmd) Run(ctx *Context) error {
	if cmd.Expr == "" && cmd.By == "" {
		return errors.InvalidInput(errors.PhaseParse, "nothing to slice with: give an expression or --by")
	}
	c, err := loadArray(ctx, cmd.File, cmd.Array)
	if err != nil {
		return err
	}

	var s slice.Slice
	if cmd.Expr != "" {
		if s, err = slice.Parse(cmd.Expr); err != nil {
			return err
		}
	}
	if cmd.By != "" {
		by, err := loadArray(ctx, cmd.File, cmd.By)
		if err != nil {
			return err
		}
		item, err := layout.AsSlice(by)
		if err != nil {
			return err
		}
		s = append(slice.Slice{item}, s...)
	}

	out, err := apply(ctx.Logger, c, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, fit(out, ctx.Width))
	return nil
}

// TypeCmd prints the WIT type of the rows.
type TypeCmd struct {
	File  string `arg:"" help:"Layout file" type:"existingfile"`
	Array string `short:"a" help:"Array name when the file holds several"`
}

func (cmd *TypeCmd) Run(ctx *Context) error {
	c, err := loadArray(ctx, cmd.File, cmd.Array)
	if err != nil {
		return err
	}
	t, err := witform.Type(c)
	if err != nil {
		return err
	}
	info := witform.Layout(t)
	fmt.Fprintln(ctx.Out, typeFmt(witform.Render(t)))
	fmt.Fprintf(ctx.Out, "%s %d  %s %d\n", labelFmt("size"), info.Size, labelFmt("align"), info.Align)
	return nil
}

func loadArray(ctx *Context, path, name string) (layout.Content, error) {
	f, err := form.LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := f.Build(name)
	if err != nil {
		return nil, err
	}
	ctx.Logger.Debug("loaded array",
		zap.String("file", path),
		zap.String("array", name),
		zap.Stringer("kind", c.Kind()),
		zap.Int64("length", c.Len()),
	)
	return c, nil
}

// evaluate slices c and formats the result.
func evaluate(logger *zap.Logger, c layout.Content, expr string) (string, error) {
	s, err := slice.Parse(expr)
	if err != nil {
		return "", err
	}
	return apply(logger, c, s)
}

func apply(logger *zap.Logger, c layout.Content, s slice.Slice) (string, error) {
	logger.Debug("slice", zap.Stringer("items", s))
	out, err := layout.Getitem(c, s)
	if err != nil {
		return "", err
	}
	return layout.Format(out)
}

func printHeader(ctx *Context, name string, c layout.Content) {
	title := c.Kind().String()
	if name != "" {
		title = name + ": " + title
	}
	minDepth, maxDepth := c.MinMaxDepth()
	depth := fmt.Sprint(minDepth)
	if minDepth != maxDepth {
		depth = fmt.Sprintf("%d-%d", minDepth, maxDepth)
	}
	fmt.Fprintf(ctx.Out, "%s  %s %d  %s %s\n",
		headerFmt("%s", title), labelFmt("length"), c.Len(), labelFmt("depth"), depth)
}

// fit cuts s to width runes, marking the cut with an ellipsis.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return strings.TrimRight(string(runes[:width-3]), " ") + "..."
}

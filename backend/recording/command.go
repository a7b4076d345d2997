package recording

import (
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdClearRect CommandType = iota
	CmdFillPath
	CmdStrokePath
	CmdNewTarget
	CmdSetTarget
	CmdComposite
	CmdReleaseTarget
)

var commandTypeNames = [...]string{
	CmdClearRect:     "ClearRect",
	CmdFillPath:      "FillPath",
	CmdStrokePath:    "StrokePath",
	CmdNewTarget:     "NewTarget",
	CmdSetTarget:     "SetTarget",
	CmdComposite:     "Composite",
	CmdReleaseTarget: "ReleaseTarget",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	Type() CommandType
}

// ClearRectCommand replaces a device-space rectangle of the current target.
type ClearRectCommand struct {
	Rect  geom.Rect
	Color backend.Color
}

// Type implements Command.
func (ClearRectCommand) Type() CommandType { return CmdClearRect }

// FillPathCommand fills a path in user space. Transform and Opacity are the
// context state at the time of the call, with the style opacity folded in.
type FillPathCommand struct {
	Path      *geom.Path
	Paint     Paint
	Opacity   float64
	Transform geom.Matrix
	Rule      backend.FillRule
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// StrokePathCommand strokes a path in user space.
type StrokePathCommand struct {
	Path      *geom.Path
	Paint     Paint
	Opacity   float64
	Transform geom.Matrix
	Stroke    backend.StrokeStyle
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// NewTargetCommand records the allocation of an offscreen target.
type NewTargetCommand struct {
	Target backend.Target
}

// Type implements Command.
func (NewTargetCommand) Type() CommandType { return CmdNewTarget }

// SetTargetCommand redirects drawing.
type SetTargetCommand struct {
	Target backend.Target
}

// Type implements Command.
func (SetTargetCommand) Type() CommandType { return CmdSetTarget }

// CompositeCommand combines Src into Dst.
type CompositeCommand struct {
	Dst, Src backend.Target
	Op       backend.CompositeOp
}

// Type implements Command.
func (CompositeCommand) Type() CommandType { return CmdComposite }

// ReleaseTargetCommand records that a target was freed.
type ReleaseTargetCommand struct {
	Target backend.Target
}

// Type implements Command.
func (ReleaseTargetCommand) Type() CommandType { return CmdReleaseTarget }
